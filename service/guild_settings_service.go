package service

import (
	"context"
	"fmt"

	"github.com/squirtledeb/oneplaygameupdatebot/events"
	"github.com/squirtledeb/oneplaygameupdatebot/models"
)

// guildSettingsService implements the GuildSettingsService interface
type guildSettingsService struct {
	uowFactory UnitOfWorkFactory
}

// NewGuildSettingsService creates a new guild settings service
func NewGuildSettingsService(uowFactory UnitOfWorkFactory) GuildSettingsService {
	return &guildSettingsService{
		uowFactory: uowFactory,
	}
}

// GetOrCreateSettings retrieves guild settings or creates default ones if not found
func (s *guildSettingsService) GetOrCreateSettings(ctx context.Context, guildID int64) (*models.GuildSettings, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback() // No-op if already committed

	settings, err := uow.GuildSettingsRepository().GetOrCreateGuildSettings(ctx, guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to get or create guild settings: %w", err)
	}

	// Commit the transaction (in case new settings were created)
	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return settings, nil
}

// UpdateLogChannel sets the channel where requests are posted for moderators
func (s *guildSettingsService) UpdateLogChannel(ctx context.Context, guildID, channelID, actorID int64) error {
	return s.mutate(ctx, guildID, actorID, "log_channel", func(settings *models.GuildSettings) {
		settings.LogChannelID = &channelID
	})
}

// UpdateUpdateChannel sets the channel holding the request entry point
func (s *guildSettingsService) UpdateUpdateChannel(ctx context.Context, guildID, channelID, actorID int64) error {
	return s.mutate(ctx, guildID, actorID, "update_channel", func(settings *models.GuildSettings) {
		settings.UpdateChannelID = &channelID
	})
}

// UpdateStatusChannel sets the channel where public statuses appear
func (s *guildSettingsService) UpdateStatusChannel(ctx context.Context, guildID, channelID, actorID int64) error {
	return s.mutate(ctx, guildID, actorID, "status_channel", func(settings *models.GuildSettings) {
		settings.StatusChannelID = &channelID
	})
}

// AddManagementRole adds a role to the guild's management role list. Adding a
// role that is already present is a no-op.
func (s *guildSettingsService) AddManagementRole(ctx context.Context, guildID, roleID, actorID int64) error {
	return s.mutate(ctx, guildID, actorID, "management_roles", func(settings *models.GuildSettings) {
		for _, id := range settings.ManagementRoleIDs {
			if id == roleID {
				return
			}
		}
		settings.ManagementRoleIDs = append(settings.ManagementRoleIDs, roleID)
	})
}

// RemoveManagementRole removes a role from the guild's management role list
func (s *guildSettingsService) RemoveManagementRole(ctx context.Context, guildID, roleID, actorID int64) error {
	return s.mutate(ctx, guildID, actorID, "management_roles", func(settings *models.GuildSettings) {
		kept := settings.ManagementRoleIDs[:0]
		for _, id := range settings.ManagementRoleIDs {
			if id != roleID {
				kept = append(kept, id)
			}
		}
		settings.ManagementRoleIDs = kept
	})
}

// mutate applies fn to the guild's settings inside a single transaction.
//
// Known limitation: the role-list operations are a read-modify-write, so two
// concurrent mutations from separate processes can both read the old list and
// the second write wins, losing the first change.
func (s *guildSettingsService) mutate(ctx context.Context, guildID, actorID int64, field string, fn func(*models.GuildSettings)) error {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback() // No-op if already committed

	settings, err := uow.GuildSettingsRepository().GetOrCreateGuildSettings(ctx, guildID)
	if err != nil {
		return fmt.Errorf("failed to get guild settings: %w", err)
	}

	fn(settings)

	if err := uow.GuildSettingsRepository().UpdateGuildSettings(ctx, settings); err != nil {
		return fmt.Errorf("failed to update guild settings: %w", err)
	}

	uow.EventBus().Publish(events.SettingsUpdatedEvent{
		GuildID: guildID,
		Field:   field,
		ActorID: actorID,
	})

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
