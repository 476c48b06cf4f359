package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/pratik-mahalle/campwatch/pkg/client"
	"github.com/spf13/cobra"
)

func newCampaignCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "campaign",
		Short: "Manage monitored campaigns",
	}

	cmd.AddCommand(newCampaignListCmd())
	cmd.AddCommand(newCampaignGetCmd())
	cmd.AddCommand(newCampaignCreateCmd())
	cmd.AddCommand(newCampaignUpdateCmd())
	cmd.AddCommand(newCampaignDeleteCmd())

	return cmd
}

func newCampaignListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List campaigns",
		RunE: func(cmd *cobra.Command, args []string) error {
			campaigns, err := apiClient.Campaigns().List(context.Background())
			if err != nil {
				return fmt.Errorf("failed to list campaigns: %w", err)
			}

			format := getOutputFormat()
			if format != "table" {
				return printOutput(campaigns)
			}

			t := NewTable("ID", "NAME", "PLATFORM ID", "CREATED")
			for _, c := range campaigns {
				t.AddRow(
					strconv.FormatInt(c.ID, 10),
					truncate(c.Name, 40),
					c.PlatformID,
					c.CreatedAt.Format("2006-01-02"),
				)
			}
			t.Render()
			return nil
		},
	}
}

func newCampaignGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Get campaign details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid campaign ID: %s", args[0])
			}

			campaign, err := apiClient.Campaigns().Get(context.Background(), id)
			if err != nil {
				return fmt.Errorf("failed to get campaign: %w", err)
			}

			format := getOutputFormat()
			if format != "table" {
				return printOutput(campaign)
			}

			fmt.Printf("ID:          %d\n", campaign.ID)
			fmt.Printf("Name:        %s\n", campaign.Name)
			fmt.Printf("Platform ID: %s\n", campaign.PlatformID)
			fmt.Printf("Created:     %s\n", campaign.CreatedAt.Format("2006-01-02 15:04:05"))
			fmt.Printf("Updated:     %s\n", campaign.UpdatedAt.Format("2006-01-02 15:04:05"))
			return nil
		},
	}
}

func newCampaignCreateCmd() *cobra.Command {
	var name, platformID string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Register a new campaign",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := apiClient.Campaigns().Create(context.Background(), &client.CreateCampaignRequest{
				Name:       name,
				PlatformID: platformID,
			})
			if err != nil {
				return fmt.Errorf("failed to create campaign: %w", err)
			}

			fmt.Printf("Campaign %d created\n", id)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "campaign name (required)")
	cmd.Flags().StringVar(&platformID, "platform-id", "", "external ad platform identifier")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newCampaignUpdateCmd() *cobra.Command {
	var name, platformID string

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a campaign",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid campaign ID: %s", args[0])
			}

			req := &client.UpdateCampaignRequest{}
			if cmd.Flags().Changed("name") {
				req.Name = &name
			}
			if cmd.Flags().Changed("platform-id") {
				req.PlatformID = &platformID
			}

			if err := apiClient.Campaigns().Update(context.Background(), id, req); err != nil {
				return fmt.Errorf("failed to update campaign: %w", err)
			}

			fmt.Printf("Campaign %d updated\n", id)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "campaign name")
	cmd.Flags().StringVar(&platformID, "platform-id", "", "external ad platform identifier")

	return cmd
}

func newCampaignDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a campaign and its triggers",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid campaign ID: %s", args[0])
			}

			if err := apiClient.Campaigns().Delete(context.Background(), id); err != nil {
				return fmt.Errorf("failed to delete campaign: %w", err)
			}

			fmt.Printf("Campaign %d deleted\n", id)
			return nil
		},
	}
}
