package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/halftime-club/paddock-predict/models"
)

func TestPlayerService_UploadAvatarWithoutStorage(t *testing.T) {
	playerRepo := &mockPlayerRepo{players: []models.Player{
		{ID: 1, Name: "alice"},
	}}
	// Хранилище не сконфигурировано: uploader == nil.
	svc := NewPlayerService(playerRepo, nil, discardLogger())

	assert.NotPanics(t, func() {
		_, err := svc.UploadAvatar(context.Background(), 1, "image/png", strings.NewReader("img"))
		assert.ErrorIs(t, err, ErrUploadsDisabled)
	})
}

func TestPlayerService_UploadAvatarRejectsContentType(t *testing.T) {
	playerRepo := &mockPlayerRepo{players: []models.Player{
		{ID: 1, Name: "alice"},
	}}
	svc := NewPlayerService(playerRepo, nil, discardLogger())

	_, err := svc.UploadAvatar(context.Background(), 1, "image/gif", strings.NewReader("img"))
	assert.ErrorIs(t, err, ErrAvatarContentType)
}

func TestPlayerService_GetByIDHidesPassphraseHash(t *testing.T) {
	playerRepo := &mockPlayerRepo{players: []models.Player{
		{ID: 1, Name: "alice", PassphraseHash: "secret"},
	}}
	svc := NewPlayerService(playerRepo, nil, discardLogger())

	player, err := svc.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, player.PassphraseHash)
}
