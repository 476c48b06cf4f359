package client_test

import (
	"context"
	"fmt"
	"log"

	"github.com/pratik-mahalle/campwatch/pkg/client"
)

// Example demonstrates basic usage of the CampWatch client
func Example() {
	c := client.NewClient(client.Config{
		BaseURL: "http://localhost:8080",
	})

	ctx := context.Background()

	campaigns, err := c.Campaigns().List(ctx)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Found %d campaigns\n", len(campaigns))
}

// ExampleTriggerService_Create demonstrates defining an alerting rule
func ExampleTriggerService_Create() {
	c := client.NewClient(client.Config{
		BaseURL: "http://localhost:8080",
	})

	id, err := c.Triggers().Create(context.Background(), &client.CreateTriggerRequest{
		CampaignID:       1,
		Metric:           "CTR",
		Operator:         "<",
		Threshold:        2.0,
		DurationHours:    3,
		SuppressionHours: 6,
		Severity:         "warning",
	})
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Created trigger %d\n", id)
}

// ExampleTriggerService_Simulate demonstrates backtesting a trigger
// definition before saving it
func ExampleTriggerService_Simulate() {
	c := client.NewClient(client.Config{
		BaseURL: "http://localhost:8080",
	})

	result, err := c.Triggers().Simulate(context.Background(), &client.SimulateRequest{
		CampaignID:    1,
		Metric:        "Spend",
		Operator:      ">",
		Threshold:     300,
		DurationHours: 3,
		LookbackDays:  30,
	})
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Checked %d windows, expected %d alerts\n", result.WindowsChecked, result.ExpectedAlerts)
}
