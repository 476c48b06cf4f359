package postgres

import (
	"context"
	"time"

	"github.com/pratik-mahalle/campwatch/internal/domain/metric"
	"github.com/pratik-mahalle/campwatch/internal/pkg/errors"
)

type MetricRepository struct {
	db *DB
}

func NewMetricRepository(db *DB) metric.Repository {
	return &MetricRepository{db: db}
}

func (r *MetricRepository) Insert(ctx context.Context, o *metric.Observation) (int64, error) {
	o.CreatedAt = time.Now().UTC()

	query := `
		INSERT INTO metrics (campaign_id, ts, impressions, clicks, spend, revenue, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	id, err := r.db.InsertID(ctx, query,
		o.CampaignID, o.TS.UTC().Format(time.RFC3339), o.Impressions, o.Clicks,
		o.Spend, o.Revenue, o.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return 0, errors.DatabaseError("Failed to insert metric observation", err)
	}

	return id, nil
}

func (r *MetricRepository) InsertBatch(ctx context.Context, rows []*metric.Observation) error {
	if len(rows) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.DatabaseError("Failed to start transaction", err)
	}

	stmt, err := tx.PrepareContext(ctx, r.db.rebind(`
		INSERT INTO metrics (campaign_id, ts, impressions, clicks, spend, revenue, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`))
	if err != nil {
		tx.Rollback()
		return errors.DatabaseError("Failed to prepare insert", err)
	}
	defer stmt.Close()

	now := time.Now().UTC()
	for _, o := range rows {
		o.CreatedAt = now
		if _, err := stmt.ExecContext(ctx,
			o.CampaignID, o.TS.UTC().Format(time.RFC3339), o.Impressions, o.Clicks,
			o.Spend, o.Revenue, now.Format(time.RFC3339),
		); err != nil {
			tx.Rollback()
			return errors.DatabaseError("Failed to insert metric observation", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.DatabaseError("Failed to commit metric batch", err)
	}

	return nil
}

func (r *MetricRepository) ListRange(ctx context.Context, campaignID int64, from, to time.Time) ([]*metric.Observation, error) {
	query := `
		SELECT id, campaign_id, ts, impressions, clicks, spend, revenue
		FROM metrics
		WHERE campaign_id = ? AND ts >= ? AND ts < ?
		ORDER BY ts ASC, id ASC
	`

	rows, err := r.db.QueryContext(ctx, query,
		campaignID, from.UTC().Format(time.RFC3339), to.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return nil, errors.DatabaseError("Failed to query metric observations", err)
	}
	defer rows.Close()

	observations := make([]*metric.Observation, 0, 256)
	for rows.Next() {
		var o metric.Observation
		var ts string
		if err := rows.Scan(&o.ID, &o.CampaignID, &ts, &o.Impressions, &o.Clicks, &o.Spend, &o.Revenue); err != nil {
			return nil, errors.DatabaseError("Failed to scan metric observation", err)
		}
		o.TS, _ = time.Parse(time.RFC3339, ts)
		observations = append(observations, &o)
	}

	return observations, rows.Err()
}
