package service

import (
	"context"
	"time"

	"github.com/squirtledeb/oneplaygameupdatebot/events"
	"github.com/squirtledeb/oneplaygameupdatebot/models"
)

// GuildSettingsRepository defines the interface for guild settings data access
type GuildSettingsRepository interface {
	// GetOrCreateGuildSettings retrieves guild settings or creates default ones if not found
	GetOrCreateGuildSettings(ctx context.Context, guildID int64) (*models.GuildSettings, error)

	// UpdateGuildSettings updates guild settings
	UpdateGuildSettings(ctx context.Context, settings *models.GuildSettings) error
}

// GuildSettingsService defines the interface for guild settings operations
type GuildSettingsService interface {
	// GetOrCreateSettings retrieves guild settings or creates default ones if not found
	GetOrCreateSettings(ctx context.Context, guildID int64) (*models.GuildSettings, error)

	// UpdateLogChannel sets the channel where requests are posted for moderators
	UpdateLogChannel(ctx context.Context, guildID, channelID, actorID int64) error

	// UpdateUpdateChannel sets the channel holding the request entry point
	UpdateUpdateChannel(ctx context.Context, guildID, channelID, actorID int64) error

	// UpdateStatusChannel sets the channel where public statuses appear
	UpdateStatusChannel(ctx context.Context, guildID, channelID, actorID int64) error

	// AddManagementRole adds a role to the guild's management role list
	AddManagementRole(ctx context.Context, guildID, roleID, actorID int64) error

	// RemoveManagementRole removes a role from the guild's management role list
	RemoveManagementRole(ctx context.Context, guildID, roleID, actorID int64) error
}

// Authorizer decides whether a member may perform privileged operations in a
// guild.
type Authorizer interface {
	// IsAuthorized returns true iff the principal is an administrator or holds
	// one of the guild's management roles. Errors indicate a settings read
	// failure, never a denial.
	IsAuthorized(ctx context.Context, principal models.Principal, guildID int64) (bool, error)
}

// UpdateRequestService defines the interface for the request lifecycle
type UpdateRequestService interface {
	// SubmitRequest publishes a pending request to the log and status channels
	// and registers it for later resolution
	SubmitRequest(ctx context.Context, guildID int64, submission models.RequestSubmission) (*models.UpdateRequest, error)

	// ResolveRequest marks a request as updated on both messages and retires it
	ResolveRequest(ctx context.Context, requestID string, principal models.Principal) error
}

// MessageField is one name/value entry of a published message.
type MessageField struct {
	Name   string
	Value  string
	Inline bool
}

// MessageContent is the structured content of a published message: a title
// plus an ordered field list.
type MessageContent struct {
	Title     string
	Fields    []MessageField
	Timestamp time.Time
}

// Affordance is a single actionable button attached to a published message.
// Activating it reports CustomID back through the interaction router.
type Affordance struct {
	Label    string
	CustomID string
}

// MessageTransport is the outbound messaging surface. Implemented by the bot
// layer over the Discord session.
type MessageTransport interface {
	// Publish posts content to a channel, optionally with an affordance, and
	// returns the new message id
	Publish(ctx context.Context, channelID int64, content MessageContent, affordance *Affordance) (int64, error)

	// Fetch retrieves the structured content of an existing message
	Fetch(ctx context.Context, channelID, messageID int64) (MessageContent, error)

	// Edit replaces the content of an existing message. A nil affordance
	// removes any attached buttons.
	Edit(ctx context.Context, channelID, messageID int64, content MessageContent, affordance *Affordance) error
}

// EventPublisher defines the interface for publishing events within a unit of
// work; events are delivered only after commit.
type EventPublisher interface {
	Publish(event events.Event)
}

// EventEmitter defines the interface for emitting events immediately.
type EventEmitter interface {
	Emit(ctx context.Context, event events.Event)
}

// UnitOfWork defines the interface for transactional repository operations
type UnitOfWork interface {
	// Begin starts a new transaction
	Begin(ctx context.Context) error

	// Commit commits the transaction
	Commit() error

	// Rollback rolls back the transaction
	Rollback() error

	// GuildSettingsRepository returns the settings repository bound to this transaction
	GuildSettingsRepository() GuildSettingsRepository

	// EventBus returns the transactional event publisher
	EventBus() EventPublisher
}

// UnitOfWorkFactory defines the interface for creating UnitOfWork instances
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}
