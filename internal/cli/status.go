package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/pratik-mahalle/campwatch/pkg/client"
	"github.com/spf13/cobra"
)

func newStatusCmd() *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show monitoring summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			format := getOutputFormat()
			if format != "table" {
				summary := map[string]interface{}{}

				campaigns, err := apiClient.Campaigns().List(ctx)
				if err == nil {
					summary["campaigns"] = len(campaigns)
				}
				triggers, err := apiClient.Triggers().List(ctx, nil)
				if err == nil {
					summary["triggers"] = len(triggers)
				}
				stats, err := apiClient.Alerts().Stats(ctx, days)
				if err == nil {
					summary["alert_stats"] = stats
				}
				return printOutput(summary)
			}

			fmt.Println("CampWatch Dashboard")
			fmt.Println(strings.Repeat("=", 40))

			// Campaigns
			campaigns, err := apiClient.Campaigns().List(ctx)
			if err != nil {
				fmt.Printf("  Campaigns:   (error: %v)\n", err)
			} else {
				fmt.Printf("  Campaigns:   %d monitored\n", len(campaigns))
			}

			// Triggers
			triggers, err := apiClient.Triggers().List(ctx, nil)
			if err != nil {
				fmt.Printf("  Triggers:    (error: %v)\n", err)
			} else {
				active := 0
				for _, t := range triggers {
					if t.Active {
						active++
					}
				}
				fmt.Printf("  Triggers:    %d active (%d total)\n", active, len(triggers))
			}

			// Recent alerts per trigger
			stats, err := apiClient.Alerts().Stats(ctx, days)
			if err != nil {
				fmt.Printf("  Alerts:      (error: %v)\n", err)
			} else {
				var total int64
				for _, s := range stats {
					total += s.Count
				}
				fmt.Printf("  Alerts:      %d fired in the last %d days", total, days)
				if len(stats) > 0 {
					fmt.Printf(" (%d triggers firing)", len(stats))
				}
				fmt.Println()
			}

			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", 7, "alert stats window in days")

	return cmd
}

func newEvaluateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "evaluate",
		Short: "Kick off an evaluation pass on the server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := apiClient.RunEvaluation(context.Background()); err != nil {
				return fmt.Errorf("failed to start evaluation pass: %w", err)
			}
			fmt.Println("Evaluation pass started")
			return nil
		},
	}
}

// triggerLabel renders a trigger in a compact human-readable form.
func triggerLabel(t *client.Trigger) string {
	if t.Name != "" {
		return t.Name
	}
	return t.Condition
}
