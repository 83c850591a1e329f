package postgres

import (
	"context"

	"formlink/formlink_go_form_service/models"
	"formlink/formlink_go_form_service/pkg/helper"
	"formlink/formlink_go_form_service/pkg/logger"
	"formlink/formlink_go_form_service/storage"

	"github.com/jackc/pgx/v5/pgxpool"
)

type oauthSessionRepo struct {
	db  *pgxpool.Pool
	log logger.LoggerI
}

func NewOAuthSessionRepo(db *pgxpool.Pool, log logger.LoggerI) storage.OAuthSessionRepoI {
	return &oauthSessionRepo{db: db, log: log}
}

func (r *oauthSessionRepo) Save(ctx context.Context, session *models.OAuthSession) error {
	query := `INSERT INTO "oauth_session" (
		state,
		code_verifier,
		expires_at
	) VALUES (
		$1, $2, $3
	)`

	_, err := r.db.Exec(ctx, query,
		session.State,
		session.CodeVerifier,
		session.ExpiresAt,
	)
	if err != nil {
		return helper.HandleDatabaseError(err, r.log, "SaveOAuthSession: failed to insert session")
	}

	return nil
}

func (r *oauthSessionRepo) Take(ctx context.Context, state string) (*models.OAuthSession, error) {
	// delete-and-return so a state can only be redeemed once, and expired
	// states are unusable regardless of cleanup
	query := `DELETE FROM "oauth_session"
	WHERE state = $1 AND expires_at > now()
	RETURNING state, code_verifier, expires_at`

	var session models.OAuthSession

	err := r.db.QueryRow(ctx, query, state).Scan(
		&session.State,
		&session.CodeVerifier,
		&session.ExpiresAt,
	)
	if err != nil {
		return nil, helper.HandleDatabaseError(err, r.log, "TakeOAuthSession: failed to take session")
	}

	return &session, nil
}
