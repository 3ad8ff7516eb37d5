package bot

import (
	"fmt"
	"strconv"

	"github.com/bwmarrin/discordgo"

	"github.com/squirtledeb/oneplaygameupdatebot/models"
)

// parseSnowflake converts a Discord string ID to int64
func parseSnowflake(id string) (int64, error) {
	parsed, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid snowflake %q: %w", id, err)
	}
	return parsed, nil
}

// principalFromInteraction lifts the acting member off an interaction into the
// identity the core services authorize against.
func principalFromInteraction(i *discordgo.InteractionCreate) (models.Principal, error) {
	if i.Member == nil || i.Member.User == nil {
		return models.Principal{}, fmt.Errorf("interaction has no guild member")
	}

	userID, err := parseSnowflake(i.Member.User.ID)
	if err != nil {
		return models.Principal{}, err
	}

	roleIDs := make([]int64, 0, len(i.Member.Roles))
	for _, roleID := range i.Member.Roles {
		parsed, err := parseSnowflake(roleID)
		if err != nil {
			continue
		}
		roleIDs = append(roleIDs, parsed)
	}

	return models.Principal{
		UserID:          userID,
		IsAdministrator: i.Member.Permissions&discordgo.PermissionAdministrator != 0,
		RoleIDs:         roleIDs,
	}, nil
}
