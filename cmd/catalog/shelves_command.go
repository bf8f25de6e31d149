package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jhoicas/parts-catalog/internal/application/usecase"
)

func newShelvesCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "shelves [estante]",
		Short: "Listar estantes o mostrar el contenido de uno",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			backend, err := ctx.openBackend(cmd.Context())
			if err != nil {
				return err
			}
			uc := usecase.NewShelfUseCase(backend.Locations)
			out := cmd.OutOrStdout()

			if len(args) == 0 {
				list, err := uc.Summary(cmd.Context())
				if err != nil {
					return err
				}
				if len(list) == 0 {
					fmt.Fprintln(out, "No hay estantes")
					return nil
				}
				rows := make([][]string, 0, len(list))
				for _, s := range list {
					rows = append(rows, []string{s.Shelf, strconv.Itoa(s.PartCount), strconv.Itoa(s.LocationCount)})
				}
				fmt.Fprintln(out, renderTable([]string{"Estante", "Piezas", "Ubicaciones"}, rows,
					[]columnAlignment{alignLeft, alignRight, alignRight}))
				return nil
			}

			view, err := uc.View(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(view.Items))
			for _, it := range view.Items {
				rows = append(rows, []string{it.Section, it.Code, it.Description, it.Quantity.String()})
			}
			fmt.Fprintf(out, "Estante %s\n", view.Shelf)
			fmt.Fprintln(out, renderTable([]string{"Sección", "Código", "Descripción", "Cantidad"}, rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight}))
			return nil
		},
	}
}
