package service

import (
	"context"
	"fmt"

	"github.com/squirtledeb/oneplaygameupdatebot/models"
)

// authorizationGate implements the Authorizer interface against stored guild
// settings.
type authorizationGate struct {
	settings GuildSettingsService
}

// NewAuthorizationGate creates a new authorization gate
func NewAuthorizationGate(settings GuildSettingsService) Authorizer {
	return &authorizationGate{settings: settings}
}

// IsAuthorized returns true iff the principal is an administrator or holds one
// of the guild's management roles. Read-only: it never mutates request state.
func (g *authorizationGate) IsAuthorized(ctx context.Context, principal models.Principal, guildID int64) (bool, error) {
	if principal.IsAdministrator {
		return true, nil
	}

	settings, err := g.settings.GetOrCreateSettings(ctx, guildID)
	if err != nil {
		return false, fmt.Errorf("failed to read guild settings: %w", err)
	}

	return settings.HasManagementRole(principal.RoleIDs), nil
}
