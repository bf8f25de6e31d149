package sqlite

import (
	"database/sql/driver"

	msqlite "modernc.org/sqlite"

	"github.com/jhoicas/parts-catalog/internal/domain/catalog"
)

// foldFunc nombre de la función SQL que aplica catalog.Fold; LIKE y lower() de SQLite solo
// conocen mayúsculas ASCII.
const foldFunc = "casefold"

func init() {
	msqlite.MustRegisterDeterministicScalarFunction(foldFunc, 1, foldValue)
}

func foldValue(_ *msqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	switch v := args[0].(type) {
	case nil:
		return nil, nil
	case string:
		return catalog.Fold(v), nil
	case []byte:
		return catalog.Fold(string(v)), nil
	default:
		return v, nil
	}
}
