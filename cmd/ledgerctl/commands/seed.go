package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ignatzorin/contract-ledger/internal/db"
	"github.com/ignatzorin/contract-ledger/internal/repository"
	"github.com/ignatzorin/contract-ledger/internal/service"
)

func seedCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Replace all profiles, contracts and jobs with the demo dataset",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cfg.IsDevelopment() && !force {
				return fmt.Errorf("refusing to wipe a %s database without --force", cfg.Env)
			}
			if err := db.RunMigrations(cmd.Context(), dbConn); err != nil {
				return err
			}

			data, err := service.NewSeedService(repository.NewSeedRepository(dbConn)).Seed(cmd.Context())
			if err != nil {
				return err
			}

			for _, p := range data.Profiles {
				fmt.Printf("%s  %-10s  %-40s  %s\n", p.ID, p.Type, p.FullName(), p.Balance.StringFixed(2))
			}
			fmt.Printf("%d contracts, %d jobs\n", len(data.Contracts), len(data.Jobs))
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "allow seeding outside development")
	return cmd
}
