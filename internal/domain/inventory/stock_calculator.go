package inventory

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/parts-catalog/internal/domain"
)

// Las cantidades se persisten como NUMERIC(18, 4): cuatro decimales y catorce dígitos enteros.
const QuantityScale = 4

// MaxQuantity es la primera cantidad que ya no cabe en una ubicación.
var MaxQuantity = decimal.New(1, 14)

// ValidateQuantity exige una cantidad estrictamente positiva, con a lo sumo QuantityScale
// decimales y menor que MaxQuantity.
func ValidateQuantity(qty decimal.Decimal) error {
	if !qty.GreaterThan(decimal.Zero) {
		return fmt.Errorf("%w: la cantidad debe ser mayor que cero", domain.ErrInvalidInput)
	}
	if !qty.Equal(qty.Truncate(QuantityScale)) {
		return fmt.Errorf("%w: la cantidad admite como máximo %d decimales", domain.ErrInvalidInput, QuantityScale)
	}
	if qty.GreaterThanOrEqual(MaxQuantity) {
		return fmt.Errorf("%w: la cantidad debe ser menor que %s", domain.ErrInvalidInput, MaxQuantity.String())
	}
	return nil
}

// ValidateStockLevel comprueba que el stock resultante de una entrada siga cabiendo en la ubicación.
func ValidateStockLevel(total decimal.Decimal) error {
	if total.GreaterThanOrEqual(MaxQuantity) {
		return fmt.Errorf("%w: el stock resultante %s excede el máximo", domain.ErrInvalidInput, total.String())
	}
	return nil
}

// ApplyWithdraw calcula la cantidad resultante de un retiro (servicio de dominio).
// Nunca produce un valor negativo: si qty supera current devuelve ErrInsufficientStock.
func ApplyWithdraw(current, qty decimal.Decimal) (decimal.Decimal, error) {
	if err := ValidateQuantity(qty); err != nil {
		return current, err
	}
	if current.LessThan(qty) {
		return current, fmt.Errorf("%w: disponible %s, solicitado %s",
			domain.ErrInsufficientStock, current.String(), qty.String())
	}
	return current.Sub(qty), nil
}
