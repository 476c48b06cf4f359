package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pratik-mahalle/campwatch/internal/api/dto"
	"github.com/pratik-mahalle/campwatch/internal/domain/campaign"
	"github.com/pratik-mahalle/campwatch/internal/domain/metric"
	"github.com/pratik-mahalle/campwatch/internal/evaluator"
	"github.com/pratik-mahalle/campwatch/internal/pkg/logger"
	"github.com/pratik-mahalle/campwatch/internal/pkg/validator"
	"github.com/pratik-mahalle/campwatch/internal/services"
	"github.com/pratik-mahalle/campwatch/internal/testutil"
)

type triggerHandlerFixture struct {
	handler    *TriggerHandler
	campaignID int64
	metrics    *testutil.MockMetricRepository
}

func newTriggerHandlerFixture(t *testing.T) *triggerHandlerFixture {
	t.Helper()

	campaignRepo := testutil.NewMockCampaignRepository()
	triggerRepo := testutil.NewMockTriggerRepository()
	metricRepo := testutil.NewMockMetricRepository()
	log := logger.New(logger.Config{Level: "error", Format: "json"})
	val := validator.New()

	campaignID, err := campaignRepo.Create(context.Background(), &campaign.Campaign{Name: "Summer Sale"})
	if err != nil {
		t.Fatalf("Failed to seed campaign: %v", err)
	}

	service := services.NewTriggerService(triggerRepo, campaignRepo, log)
	ev := evaluator.New(metricRepo, evaluator.DefaultConfig(), log)

	return &triggerHandlerFixture{
		handler:    NewTriggerHandler(service, ev, log, val),
		campaignID: campaignID,
		metrics:    metricRepo,
	}
}

func TestTriggerHandler_Create(t *testing.T) {
	f := newTriggerHandlerFixture(t)

	tests := []struct {
		name           string
		requestBody    dto.CreateTriggerRequest
		expectedStatus int
	}{
		{
			name: "create valid trigger",
			requestBody: dto.CreateTriggerRequest{
				CampaignID:    f.campaignID,
				Metric:        "CTR",
				Operator:      "<",
				Threshold:     2.0,
				DurationHours: 3,
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "unknown metric rejected",
			requestBody: dto.CreateTriggerRequest{
				CampaignID:    f.campaignID,
				Metric:        "CVR",
				Operator:      "<",
				Threshold:     2.0,
				DurationHours: 3,
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "unknown operator rejected",
			requestBody: dto.CreateTriggerRequest{
				CampaignID:    f.campaignID,
				Metric:        "CTR",
				Operator:      "<=",
				Threshold:     2.0,
				DurationHours: 3,
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "missing duration rejected",
			requestBody: dto.CreateTriggerRequest{
				CampaignID: f.campaignID,
				Metric:     "CTR",
				Operator:   "<",
				Threshold:  2.0,
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "unknown campaign rejected",
			requestBody: dto.CreateTriggerRequest{
				CampaignID:    999,
				Metric:        "CTR",
				Operator:      "<",
				Threshold:     2.0,
				DurationHours: 3,
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, _ := json.Marshal(tt.requestBody)
			req := httptest.NewRequest(http.MethodPost, "/api/v1/triggers", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")
			rr := httptest.NewRecorder()

			f.handler.Create(rr, req)

			if status := rr.Code; status != tt.expectedStatus {
				t.Errorf("handler returned wrong status code: got %v want %v, body: %s", status, tt.expectedStatus, rr.Body.String())
			}
		})
	}
}

func TestTriggerHandler_Get(t *testing.T) {
	f := newTriggerHandlerFixture(t)

	body, _ := json.Marshal(dto.CreateTriggerRequest{
		CampaignID:    f.campaignID,
		Metric:        "Spend",
		Operator:      ">",
		Threshold:     500,
		DurationHours: 6,
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/triggers", bytes.NewBuffer(body))
	rr := httptest.NewRecorder()
	f.handler.Create(rr, req)
	if rr.Code != http.StatusCreated {
		t.Fatalf("Failed to seed trigger: %s", rr.Body.String())
	}

	var created struct {
		Data struct {
			ID int64 `json:"id"`
		} `json:"data"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&created); err != nil {
		t.Fatalf("Failed to decode create response: %v", err)
	}

	tests := []struct {
		name           string
		triggerID      string
		expectedStatus int
	}{
		{
			name:           "get existing trigger",
			triggerID:      strconv.FormatInt(created.Data.ID, 10),
			expectedStatus: http.StatusOK,
		},
		{
			name:           "get non-existing trigger",
			triggerID:      "999",
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/triggers/"+tt.triggerID, nil)

			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", tt.triggerID)
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

			rr := httptest.NewRecorder()
			f.handler.Get(rr, req)

			if status := rr.Code; status != tt.expectedStatus {
				t.Errorf("handler returned wrong status code: got %v want %v", status, tt.expectedStatus)
			}
		})
	}
}

func TestTriggerHandler_Simulate(t *testing.T) {
	f := newTriggerHandlerFixture(t)

	// Hourly spend history: a steady 100/hour for two days.
	now := time.Now().UTC().Truncate(time.Hour)
	for i := 1; i <= 48; i++ {
		_, err := f.metrics.Insert(context.Background(), &metric.Observation{
			CampaignID: f.campaignID,
			TS:         now.Add(-time.Duration(i) * time.Hour),
			Spend:      100,
		})
		if err != nil {
			t.Fatalf("Failed to seed metrics: %v", err)
		}
	}

	body, _ := json.Marshal(dto.SimulateTriggerRequest{
		CampaignID:    f.campaignID,
		Metric:        "Spend",
		Operator:      ">",
		Threshold:     250,
		DurationHours: 3,
		LookbackDays:  7,
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/triggers/simulate", bytes.NewBuffer(body))
	rr := httptest.NewRecorder()

	f.handler.Simulate(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Simulate failed with status %v, body: %s", rr.Code, rr.Body.String())
	}

	var response struct {
		Data evaluator.SimulationResult `json:"data"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if response.Data.WindowsChecked != 48 {
		t.Errorf("WindowsChecked = %d, want 48", response.Data.WindowsChecked)
	}
	if response.Data.ExpectedAlerts == 0 {
		t.Error("expected matching windows for a 3h spend sum of 300 against threshold 250")
	}
}

func TestTriggerHandler_SimulateRejectsInvalidBody(t *testing.T) {
	f := newTriggerHandlerFixture(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/triggers/simulate", bytes.NewBufferString("{not json"))
	rr := httptest.NewRecorder()

	f.handler.Simulate(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("handler returned wrong status code: got %v want %v", rr.Code, http.StatusBadRequest)
	}
}
