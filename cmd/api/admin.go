package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jwalitptl/hospital-api/internal/repository/postgres"
	"github.com/jwalitptl/hospital-api/internal/service/rbac"
	"github.com/jwalitptl/hospital-api/internal/service/specialty"
	"github.com/jwalitptl/hospital-api/internal/service/user"
	apperrors "github.com/jwalitptl/hospital-api/pkg/errors"
	"github.com/jwalitptl/hospital-api/pkg/security"
	"github.com/jwalitptl/hospital-api/pkg/storage"
)

func createAdminCmd() *cobra.Command {
	var email, password, firstName, lastName string

	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create an administrator or promote an existing user",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := bootstrap(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			base := postgres.NewBaseRepository(a.db)
			access := rbac.NewService(postgres.NewDoctorRepository(base), postgres.NewPatientRepository(base), a.logger)
			media, err := storage.NewLocalStore(a.cfg.Storage.MediaDir, a.cfg.Storage.MediaURL, a.cfg.Storage.MaxFileBytes)
			if err != nil {
				return err
			}
			svc := user.NewService(postgres.NewUserRepository(base), access,
				security.NewBcryptHasher(a.cfg.Security.BcryptCost), media, a.logger)

			admin, created, err := svc.CreateAdmin(cmd.Context(), email, password, firstName, lastName)
			if err != nil {
				if appErr, ok := apperrors.As(err); ok && len(appErr.Fields) > 0 {
					return fmt.Errorf("%s: %v", appErr.Message, appErr.Fields)
				}
				return err
			}

			if created {
				printf("Created admin %s (%s)\n", admin.Email, admin.ID)
			} else {
				printf("Promoted existing user %s (%s) to admin\n", admin.Email, admin.ID)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "admin email address")
	cmd.Flags().StringVar(&password, "password", "", "admin password")
	cmd.Flags().StringVar(&firstName, "first-name", "", "first name")
	cmd.Flags().StringVar(&lastName, "last-name", "", "last name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func seedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load reference data",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "specialties",
		Short: "Create the default medical specialties",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := bootstrap(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			base := postgres.NewBaseRepository(a.db)
			access := rbac.NewService(postgres.NewDoctorRepository(base), postgres.NewPatientRepository(base), a.logger)
			svc := specialty.NewService(postgres.NewSpecialtyRepository(base), access, a.logger)

			n, err := svc.Seed(cmd.Context())
			if err != nil {
				return err
			}
			printf("Created %d specialties\n", n)
			return nil
		},
	})
	return cmd
}
