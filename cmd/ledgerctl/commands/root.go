package commands

import (
	"encoding/json"
	"os"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"

	"github.com/ignatzorin/contract-ledger/internal/config"
	"github.com/ignatzorin/contract-ledger/internal/db"
	"github.com/ignatzorin/contract-ledger/internal/logger"
)

var (
	databaseURL string

	cfg    *config.Config
	dbConn *sqlx.DB
)

func Execute() error {
	root := &cobra.Command{
		Use:           "ledgerctl",
		Short:         "Operator CLI for the contract ledger",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.Load()
			if err != nil {
				return err
			}
			cfg = loaded
			logger.Setup(cfg.Env)

			if databaseURL != "" {
				cfg.DatabaseURL = databaseURL
			}
			conn, err := db.NewPostgres(cmd.Context(), cfg.DatabaseURL)
			if err != nil {
				return err
			}
			dbConn = conn
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if dbConn != nil {
				return dbConn.Close()
			}
			return nil
		},
	}

	root.PersistentFlags().StringVar(&databaseURL, "database-url", "", "postgres DSN (default from DATABASE_URL)")

	root.AddCommand(migrateCmd(), seedCmd(), tokenCmd(), reportCmd())
	return root.Execute()
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
