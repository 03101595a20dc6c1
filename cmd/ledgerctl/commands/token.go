package commands

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/ignatzorin/contract-ledger/internal/repository"
	"github.com/ignatzorin/contract-ledger/internal/service"
)

func tokenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "token <profile-id>",
		Short: "Issue an access token for a profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid profile id %q: %w", args[0], err)
			}

			profile, err := repository.NewProfileRepository(dbConn).GetByID(cmd.Context(), id)
			if err != nil {
				return err
			}

			token, exp, err := service.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTL).Issue(profile)
			if err != nil {
				return err
			}
			fmt.Println(token)
			fmt.Printf("# %s (%s), expires %s\n", profile.FullName(), profile.Type, exp.Format("2006-01-02 15:04:05Z07:00"))
			return nil
		},
	}
}
