package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/parts-catalog/internal/application/auth"
	"github.com/jhoicas/parts-catalog/internal/application/dto"
	"github.com/jhoicas/parts-catalog/internal/domain/entity"
)

func newUserCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Gestionar usuarios",
	}

	var in dto.RegisterRequest
	create := &cobra.Command{
		Use:   "create",
		Short: "Crear un usuario (el primer admin se crea aquí)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			backend, err := ctx.openBackend(cmd.Context())
			if err != nil {
				return err
			}
			uc := auth.NewAuthUseCase(backend.Users, auth.JWTConfig{
				Secret:     cfg.JWT.Secret,
				ExpMinutes: cfg.JWT.Expiration,
				Issuer:     cfg.JWT.Issuer,
			})
			user, err := uc.RegisterUser(cmd.Context(), in)
			if err != nil {
				return fmt.Errorf("crear usuario: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Usuario %s creado (rol %s, id %s)\n", user.Email, user.Role, user.ID)
			return nil
		},
	}
	create.Flags().StringVar(&in.Email, "email", "", "Email del usuario")
	create.Flags().StringVar(&in.Password, "password", "", "Contraseña (mínimo 8 caracteres)")
	create.Flags().StringVar(&in.Name, "name", "", "Nombre visible")
	create.Flags().StringVar(&in.Role, "role", entity.RoleConsulta, "Rol: admin, bodeguero o consulta")
	_ = create.MarkFlagRequired("email")
	_ = create.MarkFlagRequired("password")

	cmd.AddCommand(create)
	return cmd
}
