package bot

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"github.com/squirtledeb/oneplaygameupdatebot/events"
	"github.com/squirtledeb/oneplaygameupdatebot/service"
)

// Bot routes Discord interactions to the core services.
type Bot struct {
	session         *discordgo.Session
	settingsService service.GuildSettingsService
	requestService  service.UpdateRequestService
	authorizer      service.Authorizer
	eventBus        *events.Bus
}

// NewSession creates a Discord session for the given bot token. The session is
// not opened; New does that after the handlers are attached.
func NewSession(token string) (*discordgo.Session, error) {
	dg, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("error creating discord session: %w", err)
	}
	dg.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMessages
	return dg, nil
}

// New attaches the interaction handlers, opens the gateway connection and
// registers slash commands.
func New(session *discordgo.Session, settingsService service.GuildSettingsService, requestService service.UpdateRequestService, authorizer service.Authorizer, eventBus *events.Bus) (*Bot, error) {
	bot := &Bot{
		session:         session,
		settingsService: settingsService,
		requestService:  requestService,
		authorizer:      authorizer,
		eventBus:        eventBus,
	}

	session.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		log.Infof("Logged in as %s#%s", r.User.Username, r.User.Discriminator)
	})
	session.AddHandler(bot.handleCommands)
	session.AddHandler(bot.handleRequestInteractions)

	if err := session.Open(); err != nil {
		return nil, fmt.Errorf("error opening connection: %w", err)
	}

	if err := bot.registerCommands(); err != nil {
		session.Close()
		return nil, fmt.Errorf("error registering commands: %w", err)
	}

	bot.subscribeAuditLog()

	return bot, nil
}

func (b *Bot) Close() error {
	return b.session.Close()
}

// subscribeAuditLog logs lifecycle events emitted by the core services.
func (b *Bot) subscribeAuditLog() {
	b.eventBus.Subscribe(events.EventTypeSettingsUpdated, func(ctx context.Context, event events.Event) {
		if e, ok := event.(events.SettingsUpdatedEvent); ok {
			log.WithFields(log.Fields{
				"guildId": e.GuildID,
				"field":   e.Field,
				"actor":   e.ActorID,
			}).Info("Guild settings updated")
		}
	})

	b.eventBus.Subscribe(events.EventTypeRequestSubmitted, func(ctx context.Context, event events.Event) {
		if e, ok := event.(events.RequestSubmittedEvent); ok {
			log.WithFields(log.Fields{
				"requestId": e.RequestID,
				"guildId":   e.GuildID,
				"requester": e.RequesterID,
				"game":      e.GameName,
			}).Info("Update request submitted")
		}
	})

	b.eventBus.Subscribe(events.EventTypeRequestResolved, func(ctx context.Context, event events.Event) {
		if e, ok := event.(events.RequestResolvedEvent); ok {
			log.WithFields(log.Fields{
				"requestId": e.RequestID,
				"guildId":   e.GuildID,
				"resolver":  e.ResolverID,
			}).Info("Update request resolved")
		}
	})
}
