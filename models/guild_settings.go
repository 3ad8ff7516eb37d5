package models

// GuildSettings represents per-guild configuration settings
type GuildSettings struct {
	GuildID           int64   `db:"guild_id"`
	LogChannelID      *int64  `db:"log_channel_id"`      // Nullable - channel where moderators see and resolve requests
	UpdateChannelID   *int64  `db:"update_channel_id"`   // Nullable - channel holding the request entry point
	StatusChannelID   *int64  `db:"status_channel_id"`   // Nullable - channel where public statuses appear
	ManagementRoleIDs []int64 `db:"management_role_ids"` // Roles allowed to use privileged commands, beyond Administrator
}

// IsConfigured reports whether the guild has the channels required to accept
// update requests.
func (s *GuildSettings) IsConfigured() bool {
	return s.LogChannelID != nil && s.UpdateChannelID != nil
}

// StatusChannel returns the channel public statuses are posted to: the status
// channel if set, otherwise the update channel. Returns nil if neither is set.
func (s *GuildSettings) StatusChannel() *int64 {
	if s.StatusChannelID != nil {
		return s.StatusChannelID
	}
	return s.UpdateChannelID
}

// HasManagementRole reports whether any of the given role IDs is in the
// guild's management role list.
func (s *GuildSettings) HasManagementRole(roleIDs []int64) bool {
	for _, held := range roleIDs {
		for _, allowed := range s.ManagementRoleIDs {
			if held == allowed {
				return true
			}
		}
	}
	return false
}
