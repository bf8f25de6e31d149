package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/parts-catalog/internal/infrastructure/migrations"
)

func newMigrateCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Aplicar o revertir migraciones del esquema",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Aplicar todas las migraciones pendientes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if err := migrations.Up(cfg.DB, ctx.log); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Migraciones aplicadas")
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Revertir la última migración",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if err := migrations.Down(cfg.DB, ctx.log); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Última migración revertida")
			return nil
		},
	})
	return cmd
}
