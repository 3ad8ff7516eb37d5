package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/squirtledeb/oneplaygameupdatebot/database"
	"github.com/squirtledeb/oneplaygameupdatebot/models"
)

// Queryable abstracts over a connection pool and a transaction
type Queryable interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// GuildSettingsRepository implements the service.GuildSettingsRepository interface
type GuildSettingsRepository struct {
	q Queryable
}

// NewGuildSettingsRepository creates a new guild settings repository
func NewGuildSettingsRepository(db *database.DB) *GuildSettingsRepository {
	return &GuildSettingsRepository{q: db.Pool}
}

// newGuildSettingsRepositoryWithTx creates a new guild settings repository with a transaction
func newGuildSettingsRepositoryWithTx(tx Queryable) *GuildSettingsRepository {
	return &GuildSettingsRepository{q: tx}
}

// GetOrCreateGuildSettings retrieves guild settings or creates default ones if
// not found. A missing row is never an error; it is materialized as an
// all-empty record. Any other failure propagates wrapped.
func (r *GuildSettingsRepository) GetOrCreateGuildSettings(ctx context.Context, guildID int64) (*models.GuildSettings, error) {
	query := `
		SELECT guild_id, log_channel_id, update_channel_id, status_channel_id, management_role_ids
		FROM guild_settings
		WHERE guild_id = $1
	`

	var settings models.GuildSettings
	err := r.q.QueryRow(ctx, query, guildID).Scan(
		&settings.GuildID,
		&settings.LogChannelID,
		&settings.UpdateChannelID,
		&settings.StatusChannelID,
		&settings.ManagementRoleIDs,
	)

	if err == nil {
		return &settings, nil
	}

	if err != pgx.ErrNoRows {
		return nil, fmt.Errorf("failed to get guild settings for guild %d: %w", guildID, err)
	}

	insertQuery := `
		INSERT INTO guild_settings (guild_id, log_channel_id, update_channel_id, status_channel_id, management_role_ids)
		VALUES ($1, NULL, NULL, NULL, '{}')
		RETURNING guild_id, log_channel_id, update_channel_id, status_channel_id, management_role_ids
	`

	err = r.q.QueryRow(ctx, insertQuery, guildID).Scan(
		&settings.GuildID,
		&settings.LogChannelID,
		&settings.UpdateChannelID,
		&settings.StatusChannelID,
		&settings.ManagementRoleIDs,
	)

	if err != nil {
		return nil, fmt.Errorf("failed to create guild settings for guild %d: %w", guildID, err)
	}

	return &settings, nil
}

// UpdateGuildSettings updates guild settings
func (r *GuildSettingsRepository) UpdateGuildSettings(ctx context.Context, settings *models.GuildSettings) error {
	query := `
		UPDATE guild_settings
		SET log_channel_id = $2,
		    update_channel_id = $3,
		    status_channel_id = $4,
		    management_role_ids = $5
		WHERE guild_id = $1
	`

	roleIDs := settings.ManagementRoleIDs
	if roleIDs == nil {
		roleIDs = []int64{}
	}

	result, err := r.q.Exec(ctx, query,
		settings.GuildID,
		settings.LogChannelID,
		settings.UpdateChannelID,
		settings.StatusChannelID,
		roleIDs,
	)

	if err != nil {
		return fmt.Errorf("failed to update guild settings for guild %d: %w", settings.GuildID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("guild settings for guild %d not found", settings.GuildID)
	}

	return nil
}
