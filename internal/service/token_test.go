package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/contract-ledger/internal/models"
)

func TestTokenManager_RoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)
	profile := &models.Profile{ID: uuid.New(), Type: models.ProfileTypeClient}

	token, exp, err := tm.Issue(profile)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	id, role, err := tm.ParseAccess(token)
	require.NoError(t, err)
	assert.Equal(t, profile.ID, id)
	assert.Equal(t, models.ProfileTypeClient, role)
}

func TestTokenManager_RejectsForeignSecret(t *testing.T) {
	issuer := NewTokenManager("secret-a", time.Hour)
	verifier := NewTokenManager("secret-b", time.Hour)

	token, _, err := issuer.Issue(&models.Profile{ID: uuid.New()})
	require.NoError(t, err)

	_, _, err = verifier.ParseAccess(token)
	assert.Error(t, err)
}

func TestTokenManager_RejectsExpired(t *testing.T) {
	tm := NewTokenManager("test-secret", -time.Minute)

	token, _, err := tm.Issue(&models.Profile{ID: uuid.New()})
	require.NoError(t, err)

	_, _, err = tm.ParseAccess(token)
	assert.Error(t, err)
}
