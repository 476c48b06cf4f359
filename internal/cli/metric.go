package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/pratik-mahalle/campwatch/pkg/client"
	"github.com/spf13/cobra"
)

func newMetricCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "metric",
		Short: "Ingest campaign metrics",
	}

	cmd.AddCommand(newMetricIngestCmd())

	return cmd
}

func newMetricIngestCmd() *cobra.Command {
	var (
		campaignID  int64
		file        string
		ts          string
		impressions int64
		clicks      int64
		spend       float64
		revenue     float64
	)

	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Append hourly metric rows to a campaign",
		Long: `Append hourly metric rows to a campaign, either from a JSON file
containing an array of observations or as a single row from flags.`,
		Example: `  campwatch metric ingest --campaign 1 --file observations.json
  campwatch metric ingest --campaign 1 --ts 2026-08-29T14:00:00Z --impressions 1200 --clicks 36 --spend 18.50 --revenue 92.00`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var observations []client.Observation

			if file != "" {
				data, err := os.ReadFile(file)
				if err != nil {
					return fmt.Errorf("failed to read %s: %w", file, err)
				}
				if err := json.Unmarshal(data, &observations); err != nil {
					return fmt.Errorf("failed to parse %s: %w", file, err)
				}
			} else {
				when := time.Now().UTC().Truncate(time.Hour)
				if ts != "" {
					parsed, err := time.Parse(time.RFC3339, ts)
					if err != nil {
						return fmt.Errorf("invalid --ts value %q: %w", ts, err)
					}
					when = parsed
				}
				observations = []client.Observation{{
					TS:          when,
					Impressions: impressions,
					Clicks:      clicks,
					Spend:       spend,
					Revenue:     revenue,
				}}
			}

			if len(observations) == 0 {
				return fmt.Errorf("no observations to ingest")
			}

			err := apiClient.Metrics().Ingest(context.Background(), &client.IngestRequest{
				CampaignID:   campaignID,
				Observations: observations,
			})
			if err != nil {
				return fmt.Errorf("failed to ingest metrics: %w", err)
			}

			fmt.Printf("Ingested %d observations for campaign %d\n", len(observations), campaignID)
			return nil
		},
	}

	cmd.Flags().Int64Var(&campaignID, "campaign", 0, "campaign ID (required)")
	cmd.Flags().StringVar(&file, "file", "", "JSON file with an array of observations")
	cmd.Flags().StringVar(&ts, "ts", "", "observation timestamp, RFC3339 (default: current hour)")
	cmd.Flags().Int64Var(&impressions, "impressions", 0, "ad impressions in the hour")
	cmd.Flags().Int64Var(&clicks, "clicks", 0, "clicks in the hour")
	cmd.Flags().Float64Var(&spend, "spend", 0, "spend in the hour")
	cmd.Flags().Float64Var(&revenue, "revenue", 0, "attributed revenue in the hour")
	_ = cmd.MarkFlagRequired("campaign")

	return cmd
}
