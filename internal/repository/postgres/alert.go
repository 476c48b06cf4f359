package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/pratik-mahalle/campwatch/internal/domain/alert"
	"github.com/pratik-mahalle/campwatch/internal/pkg/errors"
)

type AlertRepository struct {
	db *DB
}

func NewAlertRepository(db *DB) alert.Repository {
	return &AlertRepository{db: db}
}

func (r *AlertRepository) Create(ctx context.Context, a *alert.Alert) (int64, error) {
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO alerts (trigger_id, campaign_id, metric, value, message, severity, notified, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	id, err := r.db.InsertID(ctx, query,
		a.TriggerID, a.CampaignID, a.Metric, a.Value, a.Message, a.Severity,
		a.Notified, a.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return 0, errors.DatabaseError("Failed to create alert", err)
	}

	return id, nil
}

func (r *AlertRepository) GetByID(ctx context.Context, id int64) (*alert.Alert, error) {
	query := `
		SELECT id, trigger_id, campaign_id, metric, value, message, severity, notified, created_at
		FROM alerts WHERE id = ?
	`

	var a alert.Alert
	var createdAt string
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&a.ID, &a.TriggerID, &a.CampaignID, &a.Metric, &a.Value, &a.Message,
		&a.Severity, &a.Notified, &createdAt,
	)

	if err == sql.ErrNoRows {
		return nil, errors.NotFound("Alert")
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get alert", err)
	}

	a.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return &a, nil
}

func (r *AlertRepository) LatestByTrigger(ctx context.Context, triggerID int64) (*alert.Alert, error) {
	query := `
		SELECT id, trigger_id, campaign_id, metric, value, message, severity, notified, created_at
		FROM alerts WHERE trigger_id = ?
		ORDER BY created_at DESC, id DESC LIMIT 1
	`

	var a alert.Alert
	var createdAt string
	err := r.db.QueryRowContext(ctx, query, triggerID).Scan(
		&a.ID, &a.TriggerID, &a.CampaignID, &a.Metric, &a.Value, &a.Message,
		&a.Severity, &a.Notified, &createdAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get latest alert", err)
	}

	a.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return &a, nil
}

func (r *AlertRepository) MarkNotified(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "UPDATE alerts SET notified = ? WHERE id = ?", true, id)
	if err != nil {
		return errors.DatabaseError("Failed to mark alert notified", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.DatabaseError("Failed to get affected rows", err)
	}
	if rows == 0 {
		return errors.NotFound("Alert")
	}

	return nil
}

func (r *AlertRepository) ListWithPagination(ctx context.Context, filter alert.Filter, limit, offset int) ([]*alert.Alert, int64, error) {
	where := []string{"1=1"}
	args := []interface{}{}

	if filter.TriggerID != 0 {
		where = append(where, "trigger_id = ?")
		args = append(args, filter.TriggerID)
	}
	if filter.CampaignID != 0 {
		where = append(where, "campaign_id = ?")
		args = append(args, filter.CampaignID)
	}
	if filter.Metric != "" {
		where = append(where, "metric = ?")
		args = append(args, filter.Metric)
	}
	if filter.Severity != "" {
		where = append(where, "severity = ?")
		args = append(args, filter.Severity)
	}

	whereClause := strings.Join(where, " AND ")

	var total int64
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM alerts WHERE %s", whereClause)
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, errors.DatabaseError("Failed to count alerts", err)
	}

	query := fmt.Sprintf(`
		SELECT id, trigger_id, campaign_id, metric, value, message, severity, notified, created_at
		FROM alerts WHERE %s ORDER BY id DESC LIMIT ? OFFSET ?
	`, whereClause)

	rows, err := r.db.QueryContext(ctx, query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, errors.DatabaseError("Failed to list alerts", err)
	}
	defer rows.Close()

	alerts := make([]*alert.Alert, 0, limit)
	for rows.Next() {
		var a alert.Alert
		var createdAt string
		if err := rows.Scan(&a.ID, &a.TriggerID, &a.CampaignID, &a.Metric, &a.Value,
			&a.Message, &a.Severity, &a.Notified, &createdAt); err != nil {
			return nil, 0, errors.DatabaseError("Failed to scan alert", err)
		}
		a.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		alerts = append(alerts, &a)
	}

	return alerts, total, rows.Err()
}

func (r *AlertRepository) StatsSince(ctx context.Context, since time.Time) (map[int64]*alert.Stats, error) {
	query := `
		SELECT trigger_id, COUNT(*), MAX(created_at)
		FROM alerts WHERE created_at >= ?
		GROUP BY trigger_id
	`

	rows, err := r.db.QueryContext(ctx, query, since.UTC().Format(time.RFC3339))
	if err != nil {
		return nil, errors.DatabaseError("Failed to query alert stats", err)
	}
	defer rows.Close()

	stats := make(map[int64]*alert.Stats)
	for rows.Next() {
		var s alert.Stats
		var last string
		if err := rows.Scan(&s.TriggerID, &s.Count, &last); err != nil {
			return nil, errors.DatabaseError("Failed to scan alert stats", err)
		}
		if t, err := time.Parse(time.RFC3339, last); err == nil {
			s.Last = &t
		}
		stats[s.TriggerID] = &s
	}

	return stats, rows.Err()
}
