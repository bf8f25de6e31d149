package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jhoicas/parts-catalog/internal/application/ports"
	"github.com/jhoicas/parts-catalog/internal/application/report"
	infrapdf "github.com/jhoicas/parts-catalog/internal/infrastructure/pdf"
)

func newExportCommand(ctx *commandContext) *cobra.Command {
	var mode, outPath string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Exportar la lista de piezas en PDF",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			backend, err := ctx.openBackend(cmd.Context())
			if err != nil {
				return err
			}
			uc := report.NewUseCase(backend.Locations, infrapdf.NewMarotoReportRenderer())
			exp, err := uc.Export(cmd.Context(), mode)
			if err != nil {
				return err
			}
			if outPath == "" {
				outPath = exp.Filename
			}
			if err := os.WriteFile(outPath, exp.Content, 0o644); err != nil {
				return fmt.Errorf("escribir %s: %w", outPath, err)
			}
			ctx.log.Info().Str("mode", mode).Str("path", outPath).Int("bytes", len(exp.Content)).Msg("reporte exportado")
			fmt.Fprintln(cmd.OutOrStdout(), outPath)
			return nil
		},
	}
	cmd.Flags().StringVar(&mode, "mode", ports.ReportModeByShelf, "Modo: by-shelf o full")
	cmd.Flags().StringVar(&outPath, "out", "", "Archivo de salida (por defecto el nombre sugerido)")
	return cmd
}
