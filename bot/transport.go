package bot

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/squirtledeb/oneplaygameupdatebot/service"
)

// SessionTransport implements service.MessageTransport over a Discord session.
type SessionTransport struct {
	session *discordgo.Session
}

// NewSessionTransport creates a transport backed by the given session
func NewSessionTransport(session *discordgo.Session) *SessionTransport {
	return &SessionTransport{session: session}
}

// Publish posts structured content to a channel and returns the message id
func (t *SessionTransport) Publish(ctx context.Context, channelID int64, content service.MessageContent, affordance *service.Affordance) (int64, error) {
	msg, err := t.session.ChannelMessageSendComplex(formatSnowflake(channelID), &discordgo.MessageSend{
		Embeds:     []*discordgo.MessageEmbed{contentToEmbed(content)},
		Components: affordanceToComponents(affordance),
	}, discordgo.WithContext(ctx))
	if err != nil {
		return 0, fmt.Errorf("failed to send message to channel %d: %w", channelID, err)
	}

	messageID, err := parseSnowflake(msg.ID)
	if err != nil {
		return 0, err
	}

	return messageID, nil
}

// Fetch retrieves the structured content of an existing message
func (t *SessionTransport) Fetch(ctx context.Context, channelID, messageID int64) (service.MessageContent, error) {
	msg, err := t.session.ChannelMessage(formatSnowflake(channelID), formatSnowflake(messageID), discordgo.WithContext(ctx))
	if err != nil {
		return service.MessageContent{}, fmt.Errorf("failed to fetch message %d in channel %d: %w", messageID, channelID, err)
	}

	if len(msg.Embeds) == 0 {
		return service.MessageContent{}, fmt.Errorf("message %d in channel %d has no embed", messageID, channelID)
	}

	return embedToContent(msg.Embeds[0]), nil
}

// Edit replaces the content of an existing message. A nil affordance removes
// any attached buttons.
func (t *SessionTransport) Edit(ctx context.Context, channelID, messageID int64, content service.MessageContent, affordance *service.Affordance) error {
	embeds := []*discordgo.MessageEmbed{contentToEmbed(content)}
	components := affordanceToComponents(affordance)

	_, err := t.session.ChannelMessageEditComplex(&discordgo.MessageEdit{
		Channel:    formatSnowflake(channelID),
		ID:         formatSnowflake(messageID),
		Embeds:     &embeds,
		Components: &components,
	}, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("failed to edit message %d in channel %d: %w", messageID, channelID, err)
	}

	return nil
}

func formatSnowflake(id int64) string {
	return strconv.FormatInt(id, 10)
}

// contentToEmbed converts structured content to a Discord embed
func contentToEmbed(content service.MessageContent) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: content.Title,
	}

	if !content.Timestamp.IsZero() {
		embed.Timestamp = content.Timestamp.Format(time.RFC3339)
	}

	for _, field := range content.Fields {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   field.Name,
			Value:  field.Value,
			Inline: field.Inline,
		})
	}

	return embed
}

// embedToContent converts a Discord embed back to structured content
func embedToContent(embed *discordgo.MessageEmbed) service.MessageContent {
	content := service.MessageContent{
		Title: embed.Title,
	}

	if embed.Timestamp != "" {
		if parsed, err := time.Parse(time.RFC3339, embed.Timestamp); err == nil {
			content.Timestamp = parsed
		}
	}

	for _, field := range embed.Fields {
		content.Fields = append(content.Fields, service.MessageField{
			Name:   field.Name,
			Value:  field.Value,
			Inline: field.Inline,
		})
	}

	return content
}

// affordanceToComponents converts an optional affordance to an action row. A
// nil affordance yields an empty component list, which clears buttons on edit.
func affordanceToComponents(affordance *service.Affordance) []discordgo.MessageComponent {
	if affordance == nil {
		return []discordgo.MessageComponent{}
	}

	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					CustomID: affordance.CustomID,
					Label:    affordance.Label,
					Style:    discordgo.SuccessButton,
				},
			},
		},
	}
}
