package testutil

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/pratik-mahalle/campwatch/internal/domain/alert"
	"github.com/pratik-mahalle/campwatch/internal/domain/campaign"
	"github.com/pratik-mahalle/campwatch/internal/domain/metric"
	"github.com/pratik-mahalle/campwatch/internal/domain/trigger"
	"github.com/pratik-mahalle/campwatch/internal/pkg/errors"
)

// MockCampaignRepository is a mock implementation of campaign.Repository
type MockCampaignRepository struct {
	Campaigns   map[int64]*campaign.Campaign
	NextID      int64
	CreateError error
	GetError    error
}

func NewMockCampaignRepository() *MockCampaignRepository {
	return &MockCampaignRepository{
		Campaigns: make(map[int64]*campaign.Campaign),
		NextID:    1,
	}
}

func (m *MockCampaignRepository) Create(ctx context.Context, c *campaign.Campaign) (int64, error) {
	if m.CreateError != nil {
		return 0, m.CreateError
	}
	c.ID = m.NextID
	m.NextID++
	m.Campaigns[c.ID] = c
	return c.ID, nil
}

func (m *MockCampaignRepository) GetByID(ctx context.Context, id int64) (*campaign.Campaign, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	c, ok := m.Campaigns[id]
	if !ok {
		return nil, errors.NotFound("Campaign")
	}
	return c, nil
}

func (m *MockCampaignRepository) Update(ctx context.Context, c *campaign.Campaign) error {
	if _, ok := m.Campaigns[c.ID]; !ok {
		return errors.NotFound("Campaign")
	}
	m.Campaigns[c.ID] = c
	return nil
}

func (m *MockCampaignRepository) Delete(ctx context.Context, id int64) error {
	if _, ok := m.Campaigns[id]; !ok {
		return errors.NotFound("Campaign")
	}
	delete(m.Campaigns, id)
	return nil
}

func (m *MockCampaignRepository) List(ctx context.Context) ([]*campaign.Campaign, error) {
	result := make([]*campaign.Campaign, 0, len(m.Campaigns))
	for _, c := range m.Campaigns {
		result = append(result, c)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

// MockMetricRepository is a mock implementation of metric.Repository
type MockMetricRepository struct {
	Rows      []*metric.Observation
	NextID    int64
	ListError error
}

func NewMockMetricRepository() *MockMetricRepository {
	return &MockMetricRepository{NextID: 1}
}

func (m *MockMetricRepository) Insert(ctx context.Context, o *metric.Observation) (int64, error) {
	o.ID = m.NextID
	m.NextID++
	m.Rows = append(m.Rows, o)
	return o.ID, nil
}

func (m *MockMetricRepository) InsertBatch(ctx context.Context, rows []*metric.Observation) error {
	for _, o := range rows {
		if _, err := m.Insert(ctx, o); err != nil {
			return err
		}
	}
	return nil
}

func (m *MockMetricRepository) ListRange(ctx context.Context, campaignID int64, from, to time.Time) ([]*metric.Observation, error) {
	if m.ListError != nil {
		return nil, m.ListError
	}
	var result []*metric.Observation
	for _, o := range m.Rows {
		if o.CampaignID != campaignID {
			continue
		}
		if o.TS.Before(from) || !o.TS.Before(to) {
			continue
		}
		result = append(result, o)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].TS.Before(result[j].TS) })
	return result, nil
}

// MockTriggerRepository is a mock implementation of trigger.Repository
type MockTriggerRepository struct {
	Triggers    map[int64]*trigger.Trigger
	NextID      int64
	CreateError error
}

func NewMockTriggerRepository() *MockTriggerRepository {
	return &MockTriggerRepository{
		Triggers: make(map[int64]*trigger.Trigger),
		NextID:   1,
	}
}

func (m *MockTriggerRepository) Create(ctx context.Context, t *trigger.Trigger) (int64, error) {
	if m.CreateError != nil {
		return 0, m.CreateError
	}
	t.ID = m.NextID
	m.NextID++
	m.Triggers[t.ID] = t
	return t.ID, nil
}

func (m *MockTriggerRepository) GetByID(ctx context.Context, id int64) (*trigger.Trigger, error) {
	t, ok := m.Triggers[id]
	if !ok {
		return nil, errors.NotFound("Trigger")
	}
	return t, nil
}

func (m *MockTriggerRepository) Update(ctx context.Context, t *trigger.Trigger) error {
	if _, ok := m.Triggers[t.ID]; !ok {
		return errors.NotFound("Trigger")
	}
	m.Triggers[t.ID] = t
	return nil
}

func (m *MockTriggerRepository) Delete(ctx context.Context, id int64) error {
	if _, ok := m.Triggers[id]; !ok {
		return errors.NotFound("Trigger")
	}
	delete(m.Triggers, id)
	return nil
}

func (m *MockTriggerRepository) List(ctx context.Context, filter trigger.Filter) ([]*trigger.Trigger, error) {
	var result []*trigger.Trigger
	for _, t := range m.Triggers {
		if filter.CampaignID != 0 && t.CampaignID != filter.CampaignID {
			continue
		}
		if filter.Metric != "" && string(t.Metric) != filter.Metric {
			continue
		}
		if filter.ActiveOnly && !t.Active {
			continue
		}
		result = append(result, t)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID > result[j].ID })
	return result, nil
}

func (m *MockTriggerRepository) ListActive(ctx context.Context) ([]*trigger.Trigger, error) {
	return m.List(ctx, trigger.Filter{ActiveOnly: true})
}

// MockAlertRepository is a mock implementation of alert.Repository.
// It is safe for concurrent use so worker tests can emit from multiple
// goroutines.
type MockAlertRepository struct {
	mu          sync.Mutex
	Alerts      map[int64]*alert.Alert
	NextID      int64
	CreateError error
}

func NewMockAlertRepository() *MockAlertRepository {
	return &MockAlertRepository{
		Alerts: make(map[int64]*alert.Alert),
		NextID: 1,
	}
}

func (m *MockAlertRepository) Create(ctx context.Context, a *alert.Alert) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CreateError != nil {
		return 0, m.CreateError
	}
	a.ID = m.NextID
	m.NextID++
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}
	m.Alerts[a.ID] = a
	return a.ID, nil
}

func (m *MockAlertRepository) GetByID(ctx context.Context, id int64) (*alert.Alert, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.Alerts[id]
	if !ok {
		return nil, errors.NotFound("Alert")
	}
	return a, nil
}

func (m *MockAlertRepository) LatestByTrigger(ctx context.Context, triggerID int64) (*alert.Alert, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var latest *alert.Alert
	for _, a := range m.Alerts {
		if a.TriggerID != triggerID {
			continue
		}
		if latest == nil || a.CreatedAt.After(latest.CreatedAt) {
			latest = a
		}
	}
	return latest, nil
}

func (m *MockAlertRepository) MarkNotified(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.Alerts[id]
	if !ok {
		return errors.NotFound("Alert")
	}
	a.Notified = true
	return nil
}

func (m *MockAlertRepository) ListWithPagination(ctx context.Context, filter alert.Filter, limit, offset int) ([]*alert.Alert, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var all []*alert.Alert
	for _, a := range m.Alerts {
		if filter.TriggerID != 0 && a.TriggerID != filter.TriggerID {
			continue
		}
		if filter.CampaignID != 0 && a.CampaignID != filter.CampaignID {
			continue
		}
		if filter.Metric != "" && string(a.Metric) != filter.Metric {
			continue
		}
		if filter.Severity != "" && a.Severity != filter.Severity {
			continue
		}
		all = append(all, a)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })
	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (m *MockAlertRepository) StatsSince(ctx context.Context, since time.Time) (map[int64]*alert.Stats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stats := make(map[int64]*alert.Stats)
	for _, a := range m.Alerts {
		if a.CreatedAt.Before(since) {
			continue
		}
		s, ok := stats[a.TriggerID]
		if !ok {
			s = &alert.Stats{TriggerID: a.TriggerID}
			stats[a.TriggerID] = s
		}
		s.Count++
		created := a.CreatedAt
		if s.Last == nil || created.After(*s.Last) {
			s.Last = &created
		}
	}
	return stats, nil
}

// MockNotifier is a mock implementation of alert.Notifier
type MockNotifier struct {
	mu      sync.Mutex
	Sent    []*alert.Alert
	SendErr error
}

func NewMockNotifier() *MockNotifier {
	return &MockNotifier{}
}

func (m *MockNotifier) Notify(ctx context.Context, a *alert.Alert) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SendErr != nil {
		return m.SendErr
	}
	m.Sent = append(m.Sent, a)
	return nil
}

// SentCount returns how many alerts were delivered
func (m *MockNotifier) SentCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Sent)
}
