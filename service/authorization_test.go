package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/squirtledeb/oneplaygameupdatebot/models"
)

func TestAuthorizationGate_IsAuthorized(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		principal models.Principal
		roles     []int64
		want      bool
	}{
		{
			name:      "administrator bypasses role check",
			principal: models.Principal{UserID: 1, IsAdministrator: true},
			roles:     nil,
			want:      true,
		},
		{
			name:      "member with a management role",
			principal: models.Principal{UserID: 2, RoleIDs: []int64{100, 200}},
			roles:     []int64{200},
			want:      true,
		},
		{
			name:      "member without a management role",
			principal: models.Principal{UserID: 3, RoleIDs: []int64{100}},
			roles:     []int64{200, 300},
			want:      false,
		},
		{
			name:      "member with no roles and empty management list",
			principal: models.Principal{UserID: 4},
			roles:     nil,
			want:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSettings := new(MockGuildSettingsService)
			gate := NewAuthorizationGate(mockSettings)

			if !tt.principal.IsAdministrator {
				mockSettings.On("GetOrCreateSettings", ctx, int64(42)).Return(&models.GuildSettings{
					GuildID:           42,
					ManagementRoleIDs: tt.roles,
				}, nil)
			}

			got, err := gate.IsAuthorized(ctx, tt.principal, 42)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			if tt.principal.IsAdministrator {
				mockSettings.AssertNotCalled(t, "GetOrCreateSettings")
			}
		})
	}
}

func TestAuthorizationGate_IsAuthorized_StoreError(t *testing.T) {
	ctx := context.Background()

	mockSettings := new(MockGuildSettingsService)
	gate := NewAuthorizationGate(mockSettings)

	storeErr := errors.New("connection refused")
	mockSettings.On("GetOrCreateSettings", ctx, int64(42)).Return(nil, storeErr)

	got, err := gate.IsAuthorized(ctx, models.Principal{UserID: 5}, 42)
	require.Error(t, err)
	assert.ErrorIs(t, err, storeErr)
	assert.False(t, got)
}
