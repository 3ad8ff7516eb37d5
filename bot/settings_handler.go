package bot

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"github.com/squirtledeb/oneplaygameupdatebot/bot/common"
)

// checkPermissions authorizes the acting member for privileged commands and
// responds on their behalf when the check fails. Returns true when the caller
// may proceed.
func (b *Bot) checkPermissions(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, guildID int64) bool {
	principal, err := principalFromInteraction(i)
	if err != nil {
		log.Errorf("Failed to resolve principal: %v", err)
		common.RespondWithError(s, i, "Failed to process command")
		return false
	}

	authorized, err := b.authorizer.IsAuthorized(ctx, principal, guildID)
	if err != nil {
		log.Errorf("Failed to check permissions: %v", err)
		common.RespondWithError(s, i, "Failed to process command")
		return false
	}

	if !authorized {
		common.RespondWithWarning(s, i, "Permission denied!")
		return false
	}

	return true
}

// channelOption extracts the required channel option from a command
func channelOption(s *discordgo.Session, i *discordgo.InteractionCreate) (int64, error) {
	options := i.ApplicationCommandData().Options
	if len(options) == 0 {
		return 0, fmt.Errorf("missing channel option")
	}
	channel := options[0].ChannelValue(s)
	if channel == nil {
		return 0, fmt.Errorf("missing channel option")
	}
	return parseSnowflake(channel.ID)
}

// roleOption extracts the required role option from a command
func roleOption(s *discordgo.Session, i *discordgo.InteractionCreate) (int64, error) {
	options := i.ApplicationCommandData().Options
	if len(options) == 0 {
		return 0, fmt.Errorf("missing role option")
	}
	role := options[0].RoleValue(s, i.GuildID)
	if role == nil {
		return 0, fmt.Errorf("missing role option")
	}
	return parseSnowflake(role.ID)
}

func (b *Bot) handleLogChannel(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	guildID, err := parseSnowflake(i.GuildID)
	if err != nil {
		common.RespondWithError(s, i, "Failed to process command")
		return
	}

	if !b.checkPermissions(ctx, s, i, guildID) {
		return
	}

	channelID, err := channelOption(s, i)
	if err != nil {
		common.RespondWithError(s, i, "Please specify a channel")
		return
	}

	principal, _ := principalFromInteraction(i)
	if err := b.settingsService.UpdateLogChannel(ctx, guildID, channelID, principal.UserID); err != nil {
		log.Errorf("Failed to update log channel for guild %d: %v", guildID, err)
		common.RespondWithError(s, i, "An error occurred while processing your command.")
		return
	}

	common.RespondWithSuccess(s, i, fmt.Sprintf("Log channel set to <#%d>", channelID))
}

func (b *Bot) handleAddRole(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	guildID, err := parseSnowflake(i.GuildID)
	if err != nil {
		common.RespondWithError(s, i, "Failed to process command")
		return
	}

	if !b.checkPermissions(ctx, s, i, guildID) {
		return
	}

	roleID, err := roleOption(s, i)
	if err != nil {
		common.RespondWithError(s, i, "Please specify a role")
		return
	}

	principal, _ := principalFromInteraction(i)
	if err := b.settingsService.AddManagementRole(ctx, guildID, roleID, principal.UserID); err != nil {
		log.Errorf("Failed to add management role for guild %d: %v", guildID, err)
		common.RespondWithError(s, i, "An error occurred while processing your command.")
		return
	}

	common.RespondWithSuccess(s, i, fmt.Sprintf("Added <@&%d> to management roles", roleID))
}

func (b *Bot) handleRemoveRole(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	guildID, err := parseSnowflake(i.GuildID)
	if err != nil {
		common.RespondWithError(s, i, "Failed to process command")
		return
	}

	if !b.checkPermissions(ctx, s, i, guildID) {
		return
	}

	roleID, err := roleOption(s, i)
	if err != nil {
		common.RespondWithError(s, i, "Please specify a role")
		return
	}

	principal, _ := principalFromInteraction(i)
	if err := b.settingsService.RemoveManagementRole(ctx, guildID, roleID, principal.UserID); err != nil {
		log.Errorf("Failed to remove management role for guild %d: %v", guildID, err)
		common.RespondWithError(s, i, "An error occurred while processing your command.")
		return
	}

	common.RespondWithSuccess(s, i, fmt.Sprintf("Removed <@&%d> from management roles", roleID))
}

func (b *Bot) handleViewRoles(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	guildID, err := parseSnowflake(i.GuildID)
	if err != nil {
		common.RespondWithError(s, i, "Failed to process command")
		return
	}

	settings, err := b.settingsService.GetOrCreateSettings(ctx, guildID)
	if err != nil {
		log.Errorf("Failed to load settings for guild %d: %v", guildID, err)
		common.RespondWithError(s, i, "An error occurred while processing your command.")
		return
	}

	if len(settings.ManagementRoleIDs) == 0 {
		common.RespondWithWarning(s, i, "No management roles configured!")
		return
	}

	mentions := make([]string, 0, len(settings.ManagementRoleIDs))
	for _, roleID := range settings.ManagementRoleIDs {
		mentions = append(mentions, fmt.Sprintf("<@&%d>", roleID))
	}

	common.RespondWithSuccess(s, i, "Management Roles: "+strings.Join(mentions, " "))
}

func (b *Bot) handleUpdateChannel(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	guildID, err := parseSnowflake(i.GuildID)
	if err != nil {
		common.RespondWithError(s, i, "Failed to process command")
		return
	}

	if !b.checkPermissions(ctx, s, i, guildID) {
		return
	}

	channelID, err := channelOption(s, i)
	if err != nil {
		common.RespondWithError(s, i, "Please specify a channel")
		return
	}

	principal, _ := principalFromInteraction(i)
	if err := b.settingsService.UpdateUpdateChannel(ctx, guildID, channelID, principal.UserID); err != nil {
		log.Errorf("Failed to update game update channel for guild %d: %v", guildID, err)
		common.RespondWithError(s, i, "An error occurred while processing your command.")
		return
	}

	// Post the request entry point into the freshly configured channel
	embed, components := BuildEntryPointMessage()
	_, err = s.ChannelMessageSendComplex(fmt.Sprintf("%d", channelID), &discordgo.MessageSend{
		Embeds:     []*discordgo.MessageEmbed{embed},
		Components: components,
	})
	if err != nil {
		log.Errorf("Failed to post entry point message to channel %d: %v", channelID, err)
		common.RespondWithError(s, i, "Channel saved, but posting the request button failed.")
		return
	}

	common.RespondWithSuccess(s, i, fmt.Sprintf("Game update system configured in <#%d>", channelID))
}

func (b *Bot) handleStatusChannel(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	guildID, err := parseSnowflake(i.GuildID)
	if err != nil {
		common.RespondWithError(s, i, "Failed to process command")
		return
	}

	if !b.checkPermissions(ctx, s, i, guildID) {
		return
	}

	channelID, err := channelOption(s, i)
	if err != nil {
		common.RespondWithError(s, i, "Please specify a channel")
		return
	}

	principal, _ := principalFromInteraction(i)
	if err := b.settingsService.UpdateStatusChannel(ctx, guildID, channelID, principal.UserID); err != nil {
		log.Errorf("Failed to update status channel for guild %d: %v", guildID, err)
		common.RespondWithError(s, i, "An error occurred while processing your command.")
		return
	}

	common.RespondWithSuccess(s, i, fmt.Sprintf("Game update status channel set to <#%d>", channelID))
}
