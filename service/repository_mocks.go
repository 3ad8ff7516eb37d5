package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/squirtledeb/oneplaygameupdatebot/events"
	"github.com/squirtledeb/oneplaygameupdatebot/models"
)

// MockGuildSettingsRepository is a mock implementation of GuildSettingsRepository
type MockGuildSettingsRepository struct {
	mock.Mock
}

func (m *MockGuildSettingsRepository) GetOrCreateGuildSettings(ctx context.Context, guildID int64) (*models.GuildSettings, error) {
	args := m.Called(ctx, guildID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.GuildSettings), args.Error(1)
}

func (m *MockGuildSettingsRepository) UpdateGuildSettings(ctx context.Context, settings *models.GuildSettings) error {
	args := m.Called(ctx, settings)
	return args.Error(0)
}

// MockGuildSettingsService is a mock implementation of GuildSettingsService
type MockGuildSettingsService struct {
	mock.Mock
}

func (m *MockGuildSettingsService) GetOrCreateSettings(ctx context.Context, guildID int64) (*models.GuildSettings, error) {
	args := m.Called(ctx, guildID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.GuildSettings), args.Error(1)
}

func (m *MockGuildSettingsService) UpdateLogChannel(ctx context.Context, guildID, channelID, actorID int64) error {
	args := m.Called(ctx, guildID, channelID, actorID)
	return args.Error(0)
}

func (m *MockGuildSettingsService) UpdateUpdateChannel(ctx context.Context, guildID, channelID, actorID int64) error {
	args := m.Called(ctx, guildID, channelID, actorID)
	return args.Error(0)
}

func (m *MockGuildSettingsService) UpdateStatusChannel(ctx context.Context, guildID, channelID, actorID int64) error {
	args := m.Called(ctx, guildID, channelID, actorID)
	return args.Error(0)
}

func (m *MockGuildSettingsService) AddManagementRole(ctx context.Context, guildID, roleID, actorID int64) error {
	args := m.Called(ctx, guildID, roleID, actorID)
	return args.Error(0)
}

func (m *MockGuildSettingsService) RemoveManagementRole(ctx context.Context, guildID, roleID, actorID int64) error {
	args := m.Called(ctx, guildID, roleID, actorID)
	return args.Error(0)
}

// MockAuthorizer is a mock implementation of Authorizer
type MockAuthorizer struct {
	mock.Mock
}

func (m *MockAuthorizer) IsAuthorized(ctx context.Context, principal models.Principal, guildID int64) (bool, error) {
	args := m.Called(ctx, principal, guildID)
	return args.Bool(0), args.Error(1)
}

// MockMessageTransport is a mock implementation of MessageTransport
type MockMessageTransport struct {
	mock.Mock
}

func (m *MockMessageTransport) Publish(ctx context.Context, channelID int64, content MessageContent, affordance *Affordance) (int64, error) {
	args := m.Called(ctx, channelID, content, affordance)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMessageTransport) Fetch(ctx context.Context, channelID, messageID int64) (MessageContent, error) {
	args := m.Called(ctx, channelID, messageID)
	return args.Get(0).(MessageContent), args.Error(1)
}

func (m *MockMessageTransport) Edit(ctx context.Context, channelID, messageID int64, content MessageContent, affordance *Affordance) error {
	args := m.Called(ctx, channelID, messageID, content, affordance)
	return args.Error(0)
}

// recordingPublisher captures events published inside a unit of work
type recordingPublisher struct {
	events []events.Event
}

func (p *recordingPublisher) Publish(e events.Event) {
	p.events = append(p.events, e)
}

// MockUnitOfWork is a mock implementation of UnitOfWork
type MockUnitOfWork struct {
	mock.Mock
	guildSettingsRepo GuildSettingsRepository
	publisher         *recordingPublisher
}

// SetRepositories configures the repositories returned by this unit of work
func (m *MockUnitOfWork) SetRepositories(guildSettingsRepo GuildSettingsRepository) {
	m.guildSettingsRepo = guildSettingsRepo
	m.publisher = &recordingPublisher{}
}

func (m *MockUnitOfWork) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUnitOfWork) Commit() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockUnitOfWork) Rollback() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockUnitOfWork) GuildSettingsRepository() GuildSettingsRepository {
	return m.guildSettingsRepo
}

func (m *MockUnitOfWork) EventBus() EventPublisher {
	return m.publisher
}

// PublishedEvents returns the events published through this unit of work
func (m *MockUnitOfWork) PublishedEvents() []events.Event {
	return m.publisher.events
}

// MockUnitOfWorkFactory is a mock implementation of UnitOfWorkFactory
type MockUnitOfWorkFactory struct {
	mock.Mock
}

func (m *MockUnitOfWorkFactory) Create() UnitOfWork {
	args := m.Called()
	return args.Get(0).(UnitOfWork)
}
