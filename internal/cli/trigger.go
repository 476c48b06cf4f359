package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/pratik-mahalle/campwatch/pkg/client"
	"github.com/spf13/cobra"
)

func newTriggerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trigger",
		Short: "Manage alerting triggers",
	}

	cmd.AddCommand(newTriggerListCmd())
	cmd.AddCommand(newTriggerGetCmd())
	cmd.AddCommand(newTriggerCreateCmd())
	cmd.AddCommand(newTriggerDeleteCmd())
	cmd.AddCommand(newTriggerPauseCmd())
	cmd.AddCommand(newTriggerResumeCmd())
	cmd.AddCommand(newTriggerSimulateCmd())
	cmd.AddCommand(newTriggerSuggestCmd())

	return cmd
}

func newTriggerListCmd() *cobra.Command {
	var campaignID int64
	var metric string
	var activeOnly bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List triggers",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := &client.TriggerListOptions{
				CampaignID: campaignID,
				Metric:     metric,
				ActiveOnly: activeOnly,
			}

			triggers, err := apiClient.Triggers().List(context.Background(), opts)
			if err != nil {
				return fmt.Errorf("failed to list triggers: %w", err)
			}

			format := getOutputFormat()
			if format != "table" {
				return printOutput(triggers)
			}

			t := NewTable("ID", "CAMPAIGN", "CONDITION", "SEVERITY", "STATE")
			for _, tr := range triggers {
				t.AddRow(
					strconv.FormatInt(tr.ID, 10),
					strconv.FormatInt(tr.CampaignID, 10),
					truncate(triggerLabel(&tr), 50),
					formatSeverity(tr.Severity),
					formatActive(tr.Active),
				)
			}
			t.Render()
			return nil
		},
	}

	cmd.Flags().Int64Var(&campaignID, "campaign", 0, "filter by campaign ID")
	cmd.Flags().StringVar(&metric, "metric", "", "filter by metric (CTR, Spend, CPM, ROAS)")
	cmd.Flags().BoolVar(&activeOnly, "active", false, "only show active triggers")

	return cmd
}

func newTriggerGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Get trigger details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid trigger ID: %s", args[0])
			}

			tr, err := apiClient.Triggers().Get(context.Background(), id)
			if err != nil {
				return fmt.Errorf("failed to get trigger: %w", err)
			}

			format := getOutputFormat()
			if format != "table" {
				return printOutput(tr)
			}

			fmt.Printf("ID:          %d\n", tr.ID)
			fmt.Printf("Campaign:    %d\n", tr.CampaignID)
			fmt.Printf("Condition:   %s\n", tr.Condition)
			fmt.Printf("Mode:        %s\n", tr.Mode)
			fmt.Printf("Suppression: %dh\n", tr.SuppressionHours)
			fmt.Printf("Severity:    %s\n", formatSeverity(tr.Severity))
			fmt.Printf("State:       %s\n", formatActive(tr.Active))
			if tr.Name != "" {
				fmt.Printf("Name:        %s\n", tr.Name)
			}
			if tr.CustomMessage != "" {
				fmt.Printf("Message:     %s\n", tr.CustomMessage)
			}
			fmt.Printf("Created:     %s\n", tr.CreatedAt.Format("2006-01-02 15:04:05"))
			return nil
		},
	}
}

func newTriggerCreateCmd() *cobra.Command {
	var (
		campaignID       int64
		metric           string
		operator         string
		threshold        float64
		mode             string
		durationHours    int
		suppressionHours int
		severity         string
		name             string
		customMessage    string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Define a new trigger",
		Example: `  campwatch trigger create --campaign 1 --metric CTR --operator "<" --threshold 2.0 --duration 3
  campwatch trigger create --campaign 1 --metric Spend --operator ">" --threshold 20 --mode relative --duration 6 --severity critical`,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := apiClient.Triggers().Create(context.Background(), &client.CreateTriggerRequest{
				CampaignID:       campaignID,
				Metric:           metric,
				Operator:         operator,
				Threshold:        threshold,
				Mode:             mode,
				DurationHours:    durationHours,
				SuppressionHours: suppressionHours,
				Severity:         severity,
				Name:             name,
				CustomMessage:    customMessage,
			})
			if err != nil {
				return fmt.Errorf("failed to create trigger: %w", err)
			}

			fmt.Printf("Trigger %d created\n", id)
			return nil
		},
	}

	cmd.Flags().Int64Var(&campaignID, "campaign", 0, "campaign ID (required)")
	cmd.Flags().StringVar(&metric, "metric", "", "metric: CTR, Spend, CPM or ROAS (required)")
	cmd.Flags().StringVar(&operator, "operator", "", "comparison operator: < or > (required)")
	cmd.Flags().Float64Var(&threshold, "threshold", 0, "threshold value, or percent drop in relative mode (required)")
	cmd.Flags().StringVar(&mode, "mode", "absolute", "threshold mode: absolute or relative")
	cmd.Flags().IntVar(&durationHours, "duration", 0, "sliding window duration in hours (required)")
	cmd.Flags().IntVar(&suppressionHours, "suppression", 0, "suppress repeat alerts for this many hours")
	cmd.Flags().StringVar(&severity, "severity", "info", "alert severity: info, warning or critical")
	cmd.Flags().StringVar(&name, "name", "", "human-readable trigger name")
	cmd.Flags().StringVar(&customMessage, "message", "", "custom message appended to alerts")
	_ = cmd.MarkFlagRequired("campaign")
	_ = cmd.MarkFlagRequired("metric")
	_ = cmd.MarkFlagRequired("operator")
	_ = cmd.MarkFlagRequired("threshold")
	_ = cmd.MarkFlagRequired("duration")

	return cmd
}

func newTriggerDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a trigger",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid trigger ID: %s", args[0])
			}

			if err := apiClient.Triggers().Delete(context.Background(), id); err != nil {
				return fmt.Errorf("failed to delete trigger: %w", err)
			}

			fmt.Printf("Trigger %d deleted\n", id)
			return nil
		},
	}
}

func newTriggerPauseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pause <id>",
		Short: "Pause a trigger",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid trigger ID: %s", args[0])
			}

			if err := apiClient.Triggers().Pause(context.Background(), id); err != nil {
				return fmt.Errorf("failed to pause trigger: %w", err)
			}

			fmt.Printf("Trigger %d paused\n", id)
			return nil
		},
	}
}

func newTriggerResumeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resume <id>",
		Short: "Resume a paused trigger",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid trigger ID: %s", args[0])
			}

			if err := apiClient.Triggers().Resume(context.Background(), id); err != nil {
				return fmt.Errorf("failed to resume trigger: %w", err)
			}

			fmt.Printf("Trigger %d resumed\n", id)
			return nil
		},
	}
}

func newTriggerSimulateCmd() *cobra.Command {
	var (
		campaignID    int64
		metric        string
		operator      string
		threshold     float64
		mode          string
		durationHours int
		lookbackDays  int
	)

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Backtest a trigger definition against history",
		Example: `  campwatch trigger simulate --campaign 1 --metric CTR --operator "<" --threshold 2.0 --duration 3 --lookback 30`,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := apiClient.Triggers().Simulate(context.Background(), &client.SimulateRequest{
				CampaignID:    campaignID,
				Metric:        metric,
				Operator:      operator,
				Threshold:     threshold,
				Mode:          mode,
				DurationHours: durationHours,
				LookbackDays:  lookbackDays,
			})
			if err != nil {
				return fmt.Errorf("simulation failed: %w", err)
			}

			format := getOutputFormat()
			if format != "table" {
				return printOutput(result)
			}

			fmt.Printf("Windows checked:  %d\n", result.WindowsChecked)
			fmt.Printf("Expected alerts:  %d\n", result.ExpectedAlerts)
			fmt.Printf("Threshold used:   %s\n", formatValue(result.Threshold))
			if len(result.Sample) > 0 {
				fmt.Println()
				t := NewTable("WINDOW START", "WINDOW END", "VALUE")
				for _, m := range result.Sample {
					t.AddRow(
						m.WindowStart.Format("2006-01-02 15:04"),
						m.WindowEnd.Format("2006-01-02 15:04"),
						formatValue(m.Value),
					)
				}
				t.Render()
			}
			return nil
		},
	}

	cmd.Flags().Int64Var(&campaignID, "campaign", 0, "campaign ID (required)")
	cmd.Flags().StringVar(&metric, "metric", "", "metric: CTR, Spend, CPM or ROAS (required)")
	cmd.Flags().StringVar(&operator, "operator", "", "comparison operator: < or > (required)")
	cmd.Flags().Float64Var(&threshold, "threshold", 0, "threshold value (required)")
	cmd.Flags().StringVar(&mode, "mode", "absolute", "threshold mode: absolute or relative")
	cmd.Flags().IntVar(&durationHours, "duration", 0, "sliding window duration in hours (required)")
	cmd.Flags().IntVar(&lookbackDays, "lookback", 30, "history to replay in days")
	_ = cmd.MarkFlagRequired("campaign")
	_ = cmd.MarkFlagRequired("metric")
	_ = cmd.MarkFlagRequired("operator")
	_ = cmd.MarkFlagRequired("threshold")
	_ = cmd.MarkFlagRequired("duration")

	return cmd
}

func newTriggerSuggestCmd() *cobra.Command {
	var campaignID int64
	var metric string

	cmd := &cobra.Command{
		Use:   "suggest",
		Short: "Suggest a starting threshold for a campaign metric",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := apiClient.Triggers().SuggestThreshold(context.Background(), campaignID, metric)
			if err != nil {
				return fmt.Errorf("failed to get suggestion: %w", err)
			}

			format := getOutputFormat()
			if format != "table" {
				return printOutput(s)
			}

			fmt.Printf("Baseline (7d median): %s\n", formatValue(s.Baseline))
			fmt.Printf("Spread (IQR):         %s\n", formatValue(s.Spread))
			fmt.Printf("Absolute threshold:   %s\n", formatValue(s.AbsSuggestion))
			opts := make([]string, len(s.RelOptions))
			for i, p := range s.RelOptions {
				opts[i] = strconv.Itoa(p) + "%"
			}
			fmt.Printf("Relative drops:       %s\n", strings.Join(opts, ", "))
			return nil
		},
	}

	cmd.Flags().Int64Var(&campaignID, "campaign", 0, "campaign ID (required)")
	cmd.Flags().StringVar(&metric, "metric", "", "metric: CTR, Spend, CPM or ROAS (required)")
	_ = cmd.MarkFlagRequired("campaign")
	_ = cmd.MarkFlagRequired("metric")

	return cmd
}
