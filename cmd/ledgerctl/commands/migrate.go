package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ignatzorin/contract-ledger/internal/db"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := db.RunMigrations(cmd.Context(), dbConn); err != nil {
				return err
			}
			fmt.Println("migrations applied")
			return nil
		},
	}
}
