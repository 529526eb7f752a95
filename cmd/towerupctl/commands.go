package main

import (
	"errors"
	"fmt"
	"sort"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"towerup-backend/internal/app"
	"towerup-backend/internal/auth"
	"towerup-backend/internal/config"
	"towerup-backend/internal/logger"
	"towerup-backend/internal/seed"
)

func setup() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger.New(cfg.Environment, cfg.LogLevel), nil
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup()
			if err != nil {
				return err
			}
			defer log.Sync()

			applied, err := app.Migrate(cmd.Context(), cfg, log)
			if err != nil {
				return err
			}
			if len(applied) == 0 {
				fmt.Println("Schema is up to date")
				return nil
			}
			for _, name := range applied {
				fmt.Printf("Applied %s\n", name)
			}
			return nil
		},
	}
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Populate empty tables with the built-in datasets",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup()
			if err != nil {
				return err
			}
			defer log.Sync()

			backends, err := app.Open(cfg, log)
			if err != nil {
				return err
			}
			defer backends.Close()

			result, err := seed.NewSeeder(backends.Repos, log).Run(cmd.Context())
			if err != nil {
				return fmt.Errorf("seeding failed: %w", err)
			}

			tables := make([]string, 0, len(result))
			for table := range result {
				tables = append(tables, table)
			}
			sort.Strings(tables)
			fmt.Printf("%-24s  %s\n", "Table", "Inserted")
			for _, table := range tables {
				fmt.Printf("%-24s  %d\n", table, result[table])
			}
			return nil
		},
	}
}

func createAdminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create a back office account",
		RunE: func(cmd *cobra.Command, args []string) error {
			email, _ := cmd.Flags().GetString("email")
			name, _ := cmd.Flags().GetString("name")
			password, _ := cmd.Flags().GetString("password")
			if email == "" || password == "" {
				return errors.New("--email and --password are required")
			}

			cfg, log, err := setup()
			if err != nil {
				return err
			}
			defer log.Sync()

			backends, err := app.Open(cfg, log)
			if err != nil {
				return err
			}
			defer backends.Close()

			service := auth.NewService(backends.Repos.Admins, auth.NewTokenService(cfg.JWTSecret, cfg.JWTTTL), log)
			admin, err := service.CreateAdmin(cmd.Context(), email, name, password)
			if err != nil {
				return err
			}
			fmt.Printf("Created admin %s (%s)\n", admin.Email, admin.ID)
			return nil
		},
	}

	cmd.Flags().String("email", "", "Login email")
	cmd.Flags().String("name", "Administrator", "Display name")
	cmd.Flags().String("password", "", "Password, at least 8 characters")

	return cmd
}
