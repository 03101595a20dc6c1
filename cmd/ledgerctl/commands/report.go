package commands

import (
	"github.com/spf13/cobra"

	"github.com/ignatzorin/contract-ledger/internal/dto"
	"github.com/ignatzorin/contract-ledger/internal/repository"
	"github.com/ignatzorin/contract-ledger/internal/service"
	"github.com/ignatzorin/contract-ledger/internal/validation"
)

func reportCmd() *cobra.Command {
	var start, end string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Paid-job reports over an inclusive date range",
	}
	cmd.PersistentFlags().StringVar(&start, "start", "", "range start (YYYY-MM-DD or RFC3339)")
	cmd.PersistentFlags().StringVar(&end, "end", "", "range end (YYYY-MM-DD or RFC3339)")

	reports := func() *service.ReportService {
		return service.NewReportService(repository.NewReportRepository(dbConn))
	}

	bestProfession := &cobra.Command{
		Use:   "best-profession",
		Short: "Profession that earned the most",
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := reports().BestProfession(cmd.Context(), start, end)
			if err != nil {
				return err
			}
			if report.NoData {
				return printJSON(dto.NoPaidJobResponse())
			}
			return printJSON(report.Top)
		},
	}

	var limit int
	bestClients := &cobra.Command{
		Use:   "best-clients",
		Short: "Clients that paid the most",
		RunE: func(cmd *cobra.Command, args []string) error {
			var l *int
			if cmd.Flags().Changed("limit") {
				l = &limit
			}
			report, err := reports().BestClients(cmd.Context(), start, end, l)
			if err != nil {
				return err
			}
			if report.NoData {
				return printJSON(dto.NoPaidJobResponse())
			}
			return printJSON(report.Rows)
		},
	}
	bestClients.Flags().IntVar(&limit, "limit", validation.DefaultBestClientsLimit, "number of clients")

	cmd.AddCommand(bestProfession, bestClients)
	return cmd
}
