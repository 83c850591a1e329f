package airtable_test

import (
	"context"
	"testing"
	"time"

	"formlink/formlink_go_form_service/airtable"
	"formlink/formlink_go_form_service/models"

	"github.com/stretchr/testify/assert"
)

type refreshStubClient struct {
	airtable.ClientI

	token *airtable.TokenResponse
	calls int
}

func (s *refreshStubClient) RefreshToken(ctx context.Context, refreshToken string) (*airtable.TokenResponse, error) {
	s.calls++
	return s.token, nil
}

type userStoreStub struct {
	saved *models.User
}

func (s *userStoreStub) Upsert(ctx context.Context, user *models.User) (*models.User, error) {
	s.saved = user
	return user, nil
}

func TestEnsureFreshTokenRefreshesExpired(t *testing.T) {
	client := &refreshStubClient{
		token: &airtable.TokenResponse{
			AccessToken:  "fresh",
			RefreshToken: "rotated",
			ExpiresIn:    3600,
		},
	}
	store := &userStoreStub{}

	user := &models.User{
		Id:             "u1",
		AccessToken:    "stale",
		RefreshToken:   "refr",
		TokenExpiresAt: time.Now().Add(-time.Hour),
	}

	out, err := airtable.EnsureFreshToken(context.Background(), client, store, user, testLog)

	assert.NoError(t, err)
	assert.Equal(t, 1, client.calls)
	assert.Equal(t, "fresh", out.AccessToken)
	assert.Equal(t, "rotated", out.RefreshToken)
	assert.True(t, out.TokenExpiresAt.After(time.Now()))
	assert.Equal(t, out, store.saved)
}

func TestEnsureFreshTokenKeepsRefreshTokenWhenNotRotated(t *testing.T) {
	client := &refreshStubClient{
		token: &airtable.TokenResponse{AccessToken: "fresh", ExpiresIn: 3600},
	}
	store := &userStoreStub{}

	user := &models.User{
		Id:             "u1",
		RefreshToken:   "refr",
		TokenExpiresAt: time.Now().Add(-time.Hour),
	}

	out, err := airtable.EnsureFreshToken(context.Background(), client, store, user, testLog)

	assert.NoError(t, err)
	assert.Equal(t, "refr", out.RefreshToken)
}

func TestEnsureFreshTokenSkipsValidToken(t *testing.T) {
	client := &refreshStubClient{}
	store := &userStoreStub{}

	user := &models.User{
		Id:             "u1",
		AccessToken:    "current",
		RefreshToken:   "refr",
		TokenExpiresAt: time.Now().Add(time.Hour),
	}

	out, err := airtable.EnsureFreshToken(context.Background(), client, store, user, testLog)

	assert.NoError(t, err)
	assert.Equal(t, 0, client.calls)
	assert.Equal(t, "current", out.AccessToken)
	assert.Nil(t, store.saved)
}

func TestEnsureFreshTokenSkipsUnknownExpiry(t *testing.T) {
	client := &refreshStubClient{}
	store := &userStoreStub{}

	user := &models.User{Id: "u1", AccessToken: "current"}

	out, err := airtable.EnsureFreshToken(context.Background(), client, store, user, testLog)

	assert.NoError(t, err)
	assert.Equal(t, 0, client.calls)
	assert.Equal(t, "current", out.AccessToken)
}

func TestEnsureFreshTokenSkipsWithoutRefreshToken(t *testing.T) {
	client := &refreshStubClient{}
	store := &userStoreStub{}

	user := &models.User{
		Id:             "u1",
		AccessToken:    "stale",
		TokenExpiresAt: time.Now().Add(-time.Hour),
	}

	out, err := airtable.EnsureFreshToken(context.Background(), client, store, user, testLog)

	assert.NoError(t, err)
	assert.Equal(t, 0, client.calls)
	assert.Equal(t, "stale", out.AccessToken)
	assert.Nil(t, store.saved)
}
