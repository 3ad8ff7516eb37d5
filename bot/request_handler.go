package bot

import (
	"context"
	"errors"
	"strings"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"github.com/squirtledeb/oneplaygameupdatebot/bot/common"
	"github.com/squirtledeb/oneplaygameupdatebot/models"
	"github.com/squirtledeb/oneplaygameupdatebot/service"
)

// handleRequestInteractions dispatches component and modal interactions for
// the request flow.
func (b *Bot) handleRequestInteractions(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.GuildID == "" {
		return
	}

	switch i.Type {
	case discordgo.InteractionMessageComponent:
		customID := i.MessageComponentData().CustomID
		switch {
		case customID == EntryPointCustomID:
			b.handleRequestButton(s, i)
		case strings.HasPrefix(customID, service.ResolveCustomIDPrefix):
			b.handleResolveButton(s, i, strings.TrimPrefix(customID, service.ResolveCustomIDPrefix))
		}

	case discordgo.InteractionModalSubmit:
		if i.ModalSubmitData().CustomID == RequestModalCustomID {
			b.handleRequestModal(s, i)
		}
	}
}

// handleRequestButton opens the request modal
func (b *Bot) handleRequestButton(s *discordgo.Session, i *discordgo.InteractionCreate) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: BuildRequestModal(),
	})
	if err != nil {
		log.Errorf("Error showing request modal: %v", err)
	}
}

// handleRequestModal submits the filled-in request
func (b *Bot) handleRequestModal(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	guildID, err := parseSnowflake(i.GuildID)
	if err != nil {
		common.RespondWithError(s, i, "Failed to submit request")
		return
	}

	principal, err := principalFromInteraction(i)
	if err != nil {
		common.RespondWithError(s, i, "Failed to submit request")
		return
	}

	values := modalValues(i.ModalSubmitData())
	submission := models.RequestSubmission{
		GameName:    values["game_name"],
		Store:       values["store"],
		Server:      values["server"],
		Size:        values["size"],
		RequesterID: principal.UserID,
	}

	_, err = b.requestService.SubmitRequest(ctx, guildID, submission)
	if err != nil {
		if errors.Is(err, service.ErrNotConfigured) {
			common.RespondWithError(s, i, "System not fully configured!")
			return
		}
		log.Errorf("Submission error for guild %d: %v", guildID, err)
		common.RespondWithError(s, i, "Failed to submit request")
		return
	}

	common.RespondWithSuccess(s, i, "Request submitted!")
}

// handleResolveButton marks a request as updated
func (b *Bot) handleResolveButton(s *discordgo.Session, i *discordgo.InteractionCreate, requestID string) {
	ctx := context.Background()

	principal, err := principalFromInteraction(i)
	if err != nil {
		common.RespondWithError(s, i, "Failed to update status")
		return
	}

	if err := b.requestService.ResolveRequest(ctx, requestID, principal); err != nil {
		switch {
		case errors.Is(err, service.ErrRequestNotFound):
			common.RespondWithError(s, i, "Request not found")
		case errors.Is(err, service.ErrPermissionDenied):
			common.RespondWithWarning(s, i, "Permission denied!")
		default:
			log.Errorf("Resolve error for request %s: %v", requestID, err)
			common.RespondWithError(s, i, "Failed to update status")
		}
		return
	}

	common.RespondWithSuccess(s, i, "Status updated!")
}

// modalValues flattens a modal submission into input custom id → value
func modalValues(data discordgo.ModalSubmitInteractionData) map[string]string {
	values := make(map[string]string)
	for _, component := range data.Components {
		row, ok := component.(*discordgo.ActionsRow)
		if !ok {
			continue
		}
		for _, inner := range row.Components {
			if input, ok := inner.(*discordgo.TextInput); ok {
				values[input.CustomID] = input.Value
			}
		}
	}
	return values
}
