package common

import (
	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// RespondWithSuccess sends an ephemeral success message
func RespondWithSuccess(s *discordgo.Session, i *discordgo.InteractionCreate, message string) {
	respond(s, i, "✅ "+message)
}

// RespondWithError sends an ephemeral error message
func RespondWithError(s *discordgo.Session, i *discordgo.InteractionCreate, message string) {
	respond(s, i, "❌ "+message)
}

// RespondWithWarning sends an ephemeral warning message
func RespondWithWarning(s *discordgo.Session, i *discordgo.InteractionCreate, message string) {
	respond(s, i, "⚠️ "+message)
}

func respond(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		log.Errorf("Error responding to interaction: %v", err)
	}
}
