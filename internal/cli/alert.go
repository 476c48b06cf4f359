package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/pratik-mahalle/campwatch/pkg/client"
	"github.com/spf13/cobra"
)

func newAlertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "alert",
		Short: "Review fired alerts",
	}

	cmd.AddCommand(newAlertListCmd())
	cmd.AddCommand(newAlertGetCmd())
	cmd.AddCommand(newAlertStatsCmd())

	return cmd
}

func newAlertListCmd() *cobra.Command {
	var triggerID, campaignID int64
	var metric, severity string
	var page, pageSize int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List alerts, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := &client.AlertListOptions{
				ListOptions: client.ListOptions{Page: page, PageSize: pageSize},
				TriggerID:   triggerID,
				CampaignID:  campaignID,
				Metric:      metric,
				Severity:    severity,
			}

			alerts, err := apiClient.Alerts().List(context.Background(), opts)
			if err != nil {
				return fmt.Errorf("failed to list alerts: %w", err)
			}

			format := getOutputFormat()
			if format != "table" {
				return printOutput(alerts)
			}

			t := NewTable("ID", "TRIGGER", "METRIC", "VALUE", "SEVERITY", "FIRED AT")
			for _, a := range alerts.Data {
				t.AddRow(
					strconv.FormatInt(a.ID, 10),
					strconv.FormatInt(a.TriggerID, 10),
					a.Metric,
					formatValue(a.Value),
					formatSeverity(a.Severity),
					a.CreatedAt.Format("2006-01-02 15:04"),
				)
			}
			t.Render()
			fmt.Printf("\nPage %d of %d (%d alerts)\n", alerts.Page, alerts.TotalPages, alerts.TotalItems)
			return nil
		},
	}

	cmd.Flags().Int64Var(&triggerID, "trigger", 0, "filter by trigger ID")
	cmd.Flags().Int64Var(&campaignID, "campaign", 0, "filter by campaign ID")
	cmd.Flags().StringVar(&metric, "metric", "", "filter by metric")
	cmd.Flags().StringVar(&severity, "severity", "", "filter by severity")
	cmd.Flags().IntVar(&page, "page", 1, "page number")
	cmd.Flags().IntVar(&pageSize, "page-size", 20, "alerts per page")

	return cmd
}

func newAlertGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Get alert details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid alert ID: %s", args[0])
			}

			alert, err := apiClient.Alerts().Get(context.Background(), id)
			if err != nil {
				return fmt.Errorf("failed to get alert: %w", err)
			}

			format := getOutputFormat()
			if format != "table" {
				return printOutput(alert)
			}

			fmt.Printf("ID:        %d\n", alert.ID)
			fmt.Printf("Trigger:   %d\n", alert.TriggerID)
			fmt.Printf("Campaign:  %d\n", alert.CampaignID)
			fmt.Printf("Metric:    %s\n", alert.Metric)
			fmt.Printf("Value:     %s\n", formatValue(alert.Value))
			fmt.Printf("Severity:  %s\n", formatSeverity(alert.Severity))
			fmt.Printf("Message:   %s\n", alert.Message)
			fmt.Printf("Notified:  %t\n", alert.Notified)
			fmt.Printf("Fired at:  %s\n", alert.CreatedAt.Format("2006-01-02 15:04:05"))
			return nil
		},
	}
}

func newAlertStatsCmd() *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show alert counts per trigger",
		RunE: func(cmd *cobra.Command, args []string) error {
			stats, err := apiClient.Alerts().Stats(context.Background(), days)
			if err != nil {
				return fmt.Errorf("failed to get alert stats: %w", err)
			}

			format := getOutputFormat()
			if format != "table" {
				return printOutput(stats)
			}

			t := NewTable("TRIGGER", "ALERTS", "LAST FIRED")
			for _, s := range stats {
				last := "-"
				if s.Last != nil {
					last = s.Last.Format("2006-01-02 15:04")
				}
				t.AddRow(
					strconv.FormatInt(s.TriggerID, 10),
					strconv.FormatInt(s.Count, 10),
					last,
				)
			}
			t.Render()
			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", 7, "stats window in days")

	return cmd
}
