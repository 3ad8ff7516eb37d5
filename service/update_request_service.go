package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/squirtledeb/oneplaygameupdatebot/events"
	"github.com/squirtledeb/oneplaygameupdatebot/models"
)

// Status markers shown in the Status field of request messages.
const (
	StatusPending = "⏳ Pending"
	StatusUpdated = "✅ Updated"
)

// RequestTitle is the title of every request message.
const RequestTitle = "Game Update Request"

// ResolveCustomIDPrefix prefixes the custom id of the resolve button; the
// request id follows it. The interaction router strips the prefix before
// calling ResolveRequest.
const ResolveCustomIDPrefix = "resolve:"

// ResolveCustomID builds the resolve button custom id for a request.
func ResolveCustomID(requestID string) string {
	return ResolveCustomIDPrefix + requestID
}

// updateRequestService coordinates the request lifecycle: submit publishes a
// pending request to two channels and registers it; resolve flips both
// messages to updated and retires the registry entry exactly once.
type updateRequestService struct {
	settings  GuildSettingsService
	gate      Authorizer
	registry  *RequestRegistry
	transport MessageTransport
	eventBus  EventEmitter
}

// NewUpdateRequestService creates a new update request service
func NewUpdateRequestService(settings GuildSettingsService, gate Authorizer, registry *RequestRegistry, transport MessageTransport, eventBus EventEmitter) UpdateRequestService {
	return &updateRequestService{
		settings:  settings,
		gate:      gate,
		registry:  registry,
		transport: transport,
		eventBus:  eventBus,
	}
}

// SubmitRequest publishes a pending request and registers it for resolution.
// Returns ErrNotConfigured, with no messages posted, unless the guild has both
// a log channel and an update channel.
func (s *updateRequestService) SubmitRequest(ctx context.Context, guildID int64, submission models.RequestSubmission) (*models.UpdateRequest, error) {
	settings, err := s.settings.GetOrCreateSettings(ctx, guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to load guild settings: %w", err)
	}

	if !settings.IsConfigured() {
		return nil, ErrNotConfigured
	}

	logChannelID := *settings.LogChannelID
	statusChannelID := *settings.StatusChannel()

	requestID := uuid.NewString()
	content := buildRequestContent(submission)

	affordance := &Affordance{
		Label:    "Mark as Updated",
		CustomID: ResolveCustomID(requestID),
	}

	logMessageID, err := s.transport.Publish(ctx, logChannelID, content, affordance)
	if err != nil {
		return nil, fmt.Errorf("failed to post request to log channel: %w", err)
	}

	// A failure here leaves the log message behind; it is surfaced to the
	// submitter and the request is never registered.
	statusMessageID, err := s.transport.Publish(ctx, statusChannelID, content, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to post request to status channel: %w", err)
	}

	request := &models.UpdateRequest{
		ID:              requestID,
		GuildID:         guildID,
		LogChannelID:    logChannelID,
		LogMessageID:    logMessageID,
		StatusChannelID: statusChannelID,
		StatusMessageID: statusMessageID,
	}

	if err := s.registry.Insert(request); err != nil {
		return nil, fmt.Errorf("failed to register request: %w", err)
	}

	s.eventBus.Emit(ctx, events.RequestSubmittedEvent{
		RequestID:   requestID,
		GuildID:     guildID,
		RequesterID: submission.RequesterID,
		GameName:    submission.GameName,
	})

	return request, nil
}

// ResolveRequest marks a request as updated on both messages and removes it
// from the registry. The registry take is the tie-break between concurrent
// resolvers: exactly one caller proceeds to the edits, all others get
// ErrRequestNotFound.
func (s *updateRequestService) ResolveRequest(ctx context.Context, requestID string, principal models.Principal) error {
	// Peek first: authorization is scoped to the request's guild.
	request, ok := s.registry.Get(requestID)
	if !ok {
		return ErrRequestNotFound
	}

	authorized, err := s.gate.IsAuthorized(ctx, principal, request.GuildID)
	if err != nil {
		return fmt.Errorf("failed to check permissions: %w", err)
	}
	if !authorized {
		return ErrPermissionDenied
	}

	request, ok = s.registry.Remove(requestID)
	if !ok {
		return ErrRequestNotFound
	}

	if err := s.markUpdated(ctx, request.LogChannelID, request.LogMessageID); err != nil {
		return fmt.Errorf("failed to update log message: %w", err)
	}

	// Known limitation: if this edit fails after the log edit succeeded, the
	// two messages disagree. The error is surfaced; nothing retries or rolls
	// back, and the registry entry is already gone.
	if err := s.markUpdated(ctx, request.StatusChannelID, request.StatusMessageID); err != nil {
		return fmt.Errorf("failed to update status message: %w", err)
	}

	log.WithFields(log.Fields{
		"requestId": requestID,
		"guildId":   request.GuildID,
		"resolver":  principal.UserID,
	}).Info("Update request resolved")

	s.eventBus.Emit(ctx, events.RequestResolvedEvent{
		RequestID:  requestID,
		GuildID:    request.GuildID,
		ResolverID: principal.UserID,
	})

	return nil
}

// markUpdated fetches a request message, rewrites its Status field, and edits
// it back without an affordance, which also strips the resolve button from the
// log message.
func (s *updateRequestService) markUpdated(ctx context.Context, channelID, messageID int64) error {
	content, err := s.transport.Fetch(ctx, channelID, messageID)
	if err != nil {
		return fmt.Errorf("failed to fetch message: %w", err)
	}

	for i, field := range content.Fields {
		if field.Name == "Status" {
			content.Fields[i].Value = StatusUpdated
		}
	}

	if err := s.transport.Edit(ctx, channelID, messageID, content, nil); err != nil {
		return fmt.Errorf("failed to edit message: %w", err)
	}

	return nil
}

// buildRequestContent constructs the structured content shared by the log and
// status messages.
func buildRequestContent(submission models.RequestSubmission) MessageContent {
	return MessageContent{
		Title: RequestTitle,
		Fields: []MessageField{
			{Name: "Game", Value: submission.GameName, Inline: true},
			{Name: "Store", Value: submission.Store, Inline: true},
			{Name: "Server", Value: submission.Server, Inline: true},
			{Name: "Size", Value: submission.Size, Inline: true},
			{Name: "Requested by", Value: fmt.Sprintf("<@%d>", submission.RequesterID), Inline: true},
			{Name: "Status", Value: StatusPending, Inline: true},
		},
		Timestamp: time.Now().UTC(),
	}
}
