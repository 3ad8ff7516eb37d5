package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/squirtledeb/oneplaygameupdatebot/events"
	"github.com/squirtledeb/oneplaygameupdatebot/models"
)

func newSettingsServiceMocks() (*MockUnitOfWork, *MockUnitOfWorkFactory, *MockGuildSettingsRepository) {
	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockRepo := new(MockGuildSettingsRepository)

	mockUoW.SetRepositories(mockRepo)
	mockFactory.On("Create").Return(mockUoW)

	return mockUoW, mockFactory, mockRepo
}

func TestGuildSettingsService_GetOrCreateSettings(t *testing.T) {
	ctx := context.Background()

	mockUoW, mockFactory, mockRepo := newSettingsServiceMocks()
	svc := NewGuildSettingsService(mockFactory)

	existing := &models.GuildSettings{GuildID: 42}

	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)
	mockRepo.On("GetOrCreateGuildSettings", ctx, int64(42)).Return(existing, nil)

	settings, err := svc.GetOrCreateSettings(ctx, 42)

	require.NoError(t, err)
	assert.Equal(t, existing, settings)

	mockFactory.AssertExpectations(t)
	mockUoW.AssertExpectations(t)
	mockRepo.AssertExpectations(t)
}

func TestGuildSettingsService_GetOrCreateSettings_StoreError(t *testing.T) {
	ctx := context.Background()

	mockUoW, mockFactory, mockRepo := newSettingsServiceMocks()
	svc := NewGuildSettingsService(mockFactory)

	storeErr := errors.New("connection refused")

	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)
	mockRepo.On("GetOrCreateGuildSettings", ctx, int64(42)).Return(nil, storeErr)

	settings, err := svc.GetOrCreateSettings(ctx, 42)

	require.Error(t, err)
	assert.ErrorIs(t, err, storeErr)
	assert.Nil(t, settings)
	mockUoW.AssertNotCalled(t, "Commit")
}

func TestGuildSettingsService_UpdateLogChannel(t *testing.T) {
	ctx := context.Background()

	mockUoW, mockFactory, mockRepo := newSettingsServiceMocks()
	svc := NewGuildSettingsService(mockFactory)

	updateChannel := int64(555)
	existing := &models.GuildSettings{
		GuildID:         42,
		UpdateChannelID: &updateChannel,
	}

	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)
	mockRepo.On("GetOrCreateGuildSettings", ctx, int64(42)).Return(existing, nil)
	mockRepo.On("UpdateGuildSettings", ctx, mock.MatchedBy(func(s *models.GuildSettings) bool {
		// The new channel is set and untouched fields survive
		return s.LogChannelID != nil && *s.LogChannelID == 999 &&
			s.UpdateChannelID != nil && *s.UpdateChannelID == 555
	})).Return(nil)

	err := svc.UpdateLogChannel(ctx, 42, 999, 1)

	require.NoError(t, err)
	mockRepo.AssertExpectations(t)

	published := mockUoW.PublishedEvents()
	require.Len(t, published, 1)
	event, ok := published[0].(events.SettingsUpdatedEvent)
	require.True(t, ok)
	assert.Equal(t, "log_channel", event.Field)
	assert.Equal(t, int64(42), event.GuildID)
}

func TestGuildSettingsService_AddManagementRole(t *testing.T) {
	ctx := context.Background()

	t.Run("appends new role", func(t *testing.T) {
		mockUoW, mockFactory, mockRepo := newSettingsServiceMocks()
		svc := NewGuildSettingsService(mockFactory)

		existing := &models.GuildSettings{GuildID: 42, ManagementRoleIDs: []int64{10}}

		mockUoW.On("Begin", ctx).Return(nil)
		mockUoW.On("Commit").Return(nil)
		mockUoW.On("Rollback").Return(nil)
		mockRepo.On("GetOrCreateGuildSettings", ctx, int64(42)).Return(existing, nil)
		mockRepo.On("UpdateGuildSettings", ctx, mock.MatchedBy(func(s *models.GuildSettings) bool {
			return assert.ObjectsAreEqual([]int64{10, 20}, s.ManagementRoleIDs)
		})).Return(nil)

		require.NoError(t, svc.AddManagementRole(ctx, 42, 20, 1))
		mockRepo.AssertExpectations(t)
	})

	t.Run("adding an existing role keeps the list unchanged", func(t *testing.T) {
		mockUoW, mockFactory, mockRepo := newSettingsServiceMocks()
		svc := NewGuildSettingsService(mockFactory)

		existing := &models.GuildSettings{GuildID: 42, ManagementRoleIDs: []int64{10, 20}}

		mockUoW.On("Begin", ctx).Return(nil)
		mockUoW.On("Commit").Return(nil)
		mockUoW.On("Rollback").Return(nil)
		mockRepo.On("GetOrCreateGuildSettings", ctx, int64(42)).Return(existing, nil)
		mockRepo.On("UpdateGuildSettings", ctx, mock.MatchedBy(func(s *models.GuildSettings) bool {
			return assert.ObjectsAreEqual([]int64{10, 20}, s.ManagementRoleIDs)
		})).Return(nil)

		require.NoError(t, svc.AddManagementRole(ctx, 42, 20, 1))
		mockRepo.AssertExpectations(t)
	})
}

func TestGuildSettingsService_RemoveManagementRole(t *testing.T) {
	ctx := context.Background()

	mockUoW, mockFactory, mockRepo := newSettingsServiceMocks()
	svc := NewGuildSettingsService(mockFactory)

	existing := &models.GuildSettings{GuildID: 42, ManagementRoleIDs: []int64{10, 20, 30}}

	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)
	mockRepo.On("GetOrCreateGuildSettings", ctx, int64(42)).Return(existing, nil)
	mockRepo.On("UpdateGuildSettings", ctx, mock.MatchedBy(func(s *models.GuildSettings) bool {
		return assert.ObjectsAreEqual([]int64{10, 30}, s.ManagementRoleIDs)
	})).Return(nil)

	require.NoError(t, svc.RemoveManagementRole(ctx, 42, 20, 1))
	mockRepo.AssertExpectations(t)
}
