package bot

import (
	"github.com/bwmarrin/discordgo"
)

// Custom IDs owned by the request flow.
const (
	// EntryPointCustomID identifies the button members press to open the
	// request modal.
	EntryPointCustomID = "request_update"

	// RequestModalCustomID identifies the submitted request modal.
	RequestModalCustomID = "game_update_modal"
)

// BuildEntryPointMessage builds the persistent embed and button posted to the
// game update channel.
func BuildEntryPointMessage() (*discordgo.MessageEmbed, []discordgo.MessageComponent) {
	embed := &discordgo.MessageEmbed{
		Title:       "🎮 Game Update System",
		Description: "Click below to request a game update",
	}

	components := []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					CustomID: EntryPointCustomID,
					Label:    "Request Update",
					Style:    discordgo.PrimaryButton,
				},
			},
		},
	}

	return embed, components
}

// BuildRequestModal builds the modal members fill to submit a request.
func BuildRequestModal() *discordgo.InteractionResponseData {
	shortInput := func(customID, label, placeholder string) discordgo.ActionsRow {
		return discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.TextInput{
					CustomID:    customID,
					Label:       label,
					Placeholder: placeholder,
					Style:       discordgo.TextInputShort,
					Required:    true,
				},
			},
		}
	}

	return &discordgo.InteractionResponseData{
		CustomID: RequestModalCustomID,
		Title:    "Game Update Request",
		Components: []discordgo.MessageComponent{
			shortInput("game_name", "Game Name", ""),
			shortInput("store", "Store", "Steam, Epic Games, Rockstar Games, Ubisoft"),
			shortInput("server", "Server", "Auto, Mumbai South, Mumbai North, Noida"),
			shortInput("size", "Size", "Mention size in MB or GB"),
		},
	}
}
