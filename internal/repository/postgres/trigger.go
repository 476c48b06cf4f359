package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/pratik-mahalle/campwatch/internal/domain/trigger"
	"github.com/pratik-mahalle/campwatch/internal/pkg/errors"
)

type TriggerRepository struct {
	db *DB
}

func NewTriggerRepository(db *DB) trigger.Repository {
	return &TriggerRepository{db: db}
}

const triggerColumns = `id, campaign_id, metric, operator, threshold, mode, duration_hours,
	suppression_hours, severity, name, custom_message, active, created_at, updated_at`

func (r *TriggerRepository) Create(ctx context.Context, t *trigger.Trigger) (int64, error) {
	now := time.Now().UTC()
	t.CreatedAt = now
	t.UpdatedAt = now

	query := `
		INSERT INTO triggers (campaign_id, metric, operator, threshold, mode, duration_hours,
			suppression_hours, severity, name, custom_message, active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	id, err := r.db.InsertID(ctx, query,
		t.CampaignID, t.Metric, t.Operator, t.Threshold, t.Mode, t.DurationHours,
		t.SuppressionHours, t.Severity, t.Name, t.CustomMessage, t.Active,
		now.Format(time.RFC3339), now.Format(time.RFC3339),
	)
	if err != nil {
		return 0, errors.DatabaseError("Failed to create trigger", err)
	}

	return id, nil
}

func (r *TriggerRepository) GetByID(ctx context.Context, id int64) (*trigger.Trigger, error) {
	query := fmt.Sprintf(`SELECT %s FROM triggers WHERE id = ?`, triggerColumns)

	t, err := r.scanTrigger(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("Trigger")
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get trigger", err)
	}

	return t, nil
}

func (r *TriggerRepository) Update(ctx context.Context, t *trigger.Trigger) error {
	t.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE triggers SET campaign_id = ?, metric = ?, operator = ?, threshold = ?, mode = ?,
			duration_hours = ?, suppression_hours = ?, severity = ?, name = ?, custom_message = ?,
			active = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		t.CampaignID, t.Metric, t.Operator, t.Threshold, t.Mode,
		t.DurationHours, t.SuppressionHours, t.Severity, t.Name, t.CustomMessage,
		t.Active, t.UpdatedAt.Format(time.RFC3339), t.ID,
	)
	if err != nil {
		return errors.DatabaseError("Failed to update trigger", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.DatabaseError("Failed to get affected rows", err)
	}
	if rows == 0 {
		return errors.NotFound("Trigger")
	}

	return nil
}

func (r *TriggerRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM triggers WHERE id = ?", id)
	if err != nil {
		return errors.DatabaseError("Failed to delete trigger", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.DatabaseError("Failed to get affected rows", err)
	}
	if rows == 0 {
		return errors.NotFound("Trigger")
	}

	return nil
}

func (r *TriggerRepository) List(ctx context.Context, filter trigger.Filter) ([]*trigger.Trigger, error) {
	where := []string{"1=1"}
	args := []interface{}{}

	if filter.CampaignID != 0 {
		where = append(where, "campaign_id = ?")
		args = append(args, filter.CampaignID)
	}
	if filter.Metric != "" {
		where = append(where, "metric = ?")
		args = append(args, filter.Metric)
	}
	if filter.ActiveOnly {
		where = append(where, "active = ?")
		args = append(args, true)
	}

	query := fmt.Sprintf(`SELECT %s FROM triggers WHERE %s ORDER BY id DESC`,
		triggerColumns, strings.Join(where, " AND "))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list triggers", err)
	}
	defer rows.Close()

	triggers := make([]*trigger.Trigger, 0, 50)
	for rows.Next() {
		t, err := r.scanTrigger(rows)
		if err != nil {
			return nil, errors.DatabaseError("Failed to scan trigger", err)
		}
		triggers = append(triggers, t)
	}

	return triggers, rows.Err()
}

func (r *TriggerRepository) ListActive(ctx context.Context) ([]*trigger.Trigger, error) {
	return r.List(ctx, trigger.Filter{ActiveOnly: true})
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *TriggerRepository) scanTrigger(row rowScanner) (*trigger.Trigger, error) {
	var t trigger.Trigger
	var name, customMessage sql.NullString
	var createdAt, updatedAt string
	err := row.Scan(
		&t.ID, &t.CampaignID, &t.Metric, &t.Operator, &t.Threshold, &t.Mode, &t.DurationHours,
		&t.SuppressionHours, &t.Severity, &name, &customMessage, &t.Active, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}
	t.Name = name.String
	t.CustomMessage = customMessage.String
	t.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	t.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return &t, nil
}
