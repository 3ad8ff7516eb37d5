package bot

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

func (b *Bot) registerCommands() error {
	textChannels := []discordgo.ChannelType{discordgo.ChannelTypeGuildText}

	commands := []*discordgo.ApplicationCommand{
		{
			Name:        "logchannel",
			Description: "Set the log channel (REQUIRED FIRST)",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:         discordgo.ApplicationCommandOptionChannel,
					Name:         "channel",
					Description:  "Log channel",
					Required:     true,
					ChannelTypes: textChannels,
				},
			},
		},
		{
			Name:        "addrole",
			Description: "Add a management role",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionRole,
					Name:        "role",
					Description: "Role to add",
					Required:    true,
				},
			},
		},
		{
			Name:        "removerole",
			Description: "Remove a management role",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionRole,
					Name:        "role",
					Description: "Role to remove",
					Required:    true,
				},
			},
		},
		{
			Name:        "viewrole",
			Description: "View all management roles",
		},
		{
			Name:        "gameupdatechannel",
			Description: "Set the game update channel",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:         discordgo.ApplicationCommandOptionChannel,
					Name:         "channel",
					Description:  "Update channel",
					Required:     true,
					ChannelTypes: textChannels,
				},
			},
		},
		{
			Name:        "gameupdatestatuschannel",
			Description: "Set the channel where update statuses will appear",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:         discordgo.ApplicationCommandOptionChannel,
					Name:         "channel",
					Description:  "Status channel",
					Required:     true,
					ChannelTypes: textChannels,
				},
			},
		},
	}

	for _, cmd := range commands {
		_, err := b.session.ApplicationCommandCreate(b.session.State.User.ID, "", cmd)
		if err != nil {
			return fmt.Errorf("cannot create '%s' command: %w", cmd.Name, err)
		}
	}

	return nil
}

func (b *Bot) handleCommands(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}
	if i.GuildID == "" {
		return
	}

	switch i.ApplicationCommandData().Name {
	case "logchannel":
		b.handleLogChannel(s, i)
	case "addrole":
		b.handleAddRole(s, i)
	case "removerole":
		b.handleRemoveRole(s, i)
	case "viewrole":
		b.handleViewRoles(s, i)
	case "gameupdatechannel":
		b.handleUpdateChannel(s, i)
	case "gameupdatestatuschannel":
		b.handleStatusChannel(s, i)
	}
}
