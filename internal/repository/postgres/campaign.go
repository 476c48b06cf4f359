package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/pratik-mahalle/campwatch/internal/domain/campaign"
	"github.com/pratik-mahalle/campwatch/internal/pkg/errors"
)

type CampaignRepository struct {
	db *DB
}

func NewCampaignRepository(db *DB) campaign.Repository {
	return &CampaignRepository{db: db}
}

func (r *CampaignRepository) Create(ctx context.Context, c *campaign.Campaign) (int64, error) {
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now

	query := `
		INSERT INTO campaigns (name, platform_id, created_at, updated_at)
		VALUES (?, ?, ?, ?)
	`

	id, err := r.db.InsertID(ctx, query,
		c.Name, c.PlatformID, now.Format(time.RFC3339), now.Format(time.RFC3339),
	)
	if err != nil {
		return 0, errors.DatabaseError("Failed to create campaign", err)
	}

	return id, nil
}

func (r *CampaignRepository) GetByID(ctx context.Context, id int64) (*campaign.Campaign, error) {
	query := `
		SELECT id, name, platform_id, created_at, updated_at
		FROM campaigns WHERE id = ?
	`

	var c campaign.Campaign
	var createdAt, updatedAt string
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&c.ID, &c.Name, &c.PlatformID, &createdAt, &updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, errors.NotFound("Campaign")
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get campaign", err)
	}

	c.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	c.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return &c, nil
}

func (r *CampaignRepository) Update(ctx context.Context, c *campaign.Campaign) error {
	c.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE campaigns SET name = ?, platform_id = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		c.Name, c.PlatformID, c.UpdatedAt.Format(time.RFC3339), c.ID,
	)
	if err != nil {
		return errors.DatabaseError("Failed to update campaign", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.DatabaseError("Failed to get affected rows", err)
	}
	if rows == 0 {
		return errors.NotFound("Campaign")
	}

	return nil
}

func (r *CampaignRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM campaigns WHERE id = ?", id)
	if err != nil {
		return errors.DatabaseError("Failed to delete campaign", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.DatabaseError("Failed to get affected rows", err)
	}
	if rows == 0 {
		return errors.NotFound("Campaign")
	}

	return nil
}

func (r *CampaignRepository) List(ctx context.Context) ([]*campaign.Campaign, error) {
	query := `
		SELECT id, name, platform_id, created_at, updated_at
		FROM campaigns ORDER BY name
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list campaigns", err)
	}
	defer rows.Close()

	campaigns := make([]*campaign.Campaign, 0, 50)
	for rows.Next() {
		var c campaign.Campaign
		var createdAt, updatedAt string
		if err := rows.Scan(&c.ID, &c.Name, &c.PlatformID, &createdAt, &updatedAt); err != nil {
			return nil, errors.DatabaseError("Failed to scan campaign", err)
		}
		c.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		c.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
		campaigns = append(campaigns, &c)
	}

	return campaigns, rows.Err()
}
