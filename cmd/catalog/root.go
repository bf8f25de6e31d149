package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var sqliteFlag string
	var logLevelFlag string

	ctx := newCommandContext(&sqliteFlag, &logLevelFlag)

	rootCmd := &cobra.Command{
		Use:           "catalog",
		Short:         "Herramientas del catálogo de piezas",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			_, err := ctx.ensureConfig()
			return err
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return ctx.close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVar(&sqliteFlag, "sqlite", "", "Usar SQLite en esta ruta (ignora DB_DRIVER)")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "Nivel de log (debug, info, warn, error)")

	rootCmd.AddCommand(newMigrateCommand(ctx))
	rootCmd.AddCommand(newUserCommand(ctx))
	rootCmd.AddCommand(newShelvesCommand(ctx))
	rootCmd.AddCommand(newExportCommand(ctx))
	rootCmd.AddCommand(newClassifyCommand(ctx))

	return rootCmd
}
