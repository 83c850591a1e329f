package airtable

import (
	"context"
	"time"

	"formlink/formlink_go_form_service/models"
	"formlink/formlink_go_form_service/pkg/logger"

	"github.com/pkg/errors"
)

// UserStore is the slice of storage token rotation needs.
type UserStore interface {
	Upsert(ctx context.Context, user *models.User) (*models.User, error)
}

// tokenExpiryMargin refreshes slightly early so a token cannot expire between
// the check and the outbound call that uses it.
const tokenExpiryMargin = time.Minute

// EnsureFreshToken returns a user whose access token is usable, refreshing and
// persisting rotated credentials when the stored token has expired. Users with
// no recorded expiry or no refresh token are returned unchanged.
func EnsureFreshToken(ctx context.Context, client ClientI, users UserStore, user *models.User, log logger.LoggerI) (*models.User, error) {
	if user.TokenExpiresAt.IsZero() || time.Now().Before(user.TokenExpiresAt.Add(-tokenExpiryMargin)) {
		return user, nil
	}

	if user.RefreshToken == "" {
		return user, nil
	}

	log.Info("---EnsureFreshToken--->>> refreshing expired airtable token",
		logger.String("userId", user.Id),
	)

	token, err := client.RefreshToken(ctx, user.RefreshToken)
	if err != nil {
		return nil, errors.Wrap(err, "airtable: refresh expired token")
	}

	user.AccessToken = token.AccessToken
	if token.RefreshToken != "" {
		user.RefreshToken = token.RefreshToken
	}

	user.TokenExpiresAt = time.Now().Add(time.Duration(token.ExpiresIn) * time.Second)

	return users.Upsert(ctx, user)
}
