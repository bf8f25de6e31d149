package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jhoicas/parts-catalog/internal/application/dto"
	"github.com/jhoicas/parts-catalog/internal/application/usecase"
	infraai "github.com/jhoicas/parts-catalog/internal/infrastructure/ai"
)

func newClassifyCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "classify [archivo.json]",
		Short: "Clasificar fragmentos OCR (JSON {\"fragments\":[...]} desde archivo o stdin)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			var r io.Reader = cmd.InOrStdin()
			if len(args) == 1 {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				r = f
			}
			var req dto.ClassifyRequest
			if err := json.NewDecoder(r).Decode(&req); err != nil {
				return fmt.Errorf("leer fragmentos: %w", err)
			}

			uc := usecase.NewClassifyUseCase(infraai.NewFromConfig(cfg.Classifier, ctx.log), cfg.Classifier.MinConfidence)
			res, err := uc.Categorize(cmd.Context(), req)
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(res.Codes)+len(res.Descriptions))
			for _, c := range res.Codes {
				rows = append(rows, []string{c.Label, c.Text, formatFloat(c.CodeScore), formatFloat(c.Confidence)})
			}
			for _, d := range res.Descriptions {
				rows = append(rows, []string{d.Label, d.Text, formatFloat(d.CodeScore), formatFloat(d.Confidence)})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Tipo", "Texto", "Puntaje", "Confianza"}, rows,
				[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight}))
			return nil
		},
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}
