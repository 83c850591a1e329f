package postgres

import (
	"context"

	"formlink/formlink_go_form_service/models"
	"formlink/formlink_go_form_service/pkg/helper"
	"formlink/formlink_go_form_service/pkg/logger"
	"formlink/formlink_go_form_service/storage"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type userRepo struct {
	db  *pgxpool.Pool
	log logger.LoggerI
}

func NewUserRepo(db *pgxpool.Pool, log logger.LoggerI) storage.UserRepoI {
	return &userRepo{db: db, log: log}
}

func (r *userRepo) Upsert(ctx context.Context, user *models.User) (*models.User, error) {
	if user.Id == "" {
		user.Id = uuid.NewString()
	}

	query := `INSERT INTO "user" (
		id,
		airtable_user_id,
		access_token,
		refresh_token,
		token_expires_at
	) VALUES (
		$1, $2, $3, $4, $5
	)
	ON CONFLICT (airtable_user_id) DO UPDATE SET
		access_token = EXCLUDED.access_token,
		refresh_token = EXCLUDED.refresh_token,
		token_expires_at = EXCLUDED.token_expires_at
	RETURNING id, created_at`

	err := r.db.QueryRow(ctx, query,
		user.Id,
		user.AirtableUserId,
		user.AccessToken,
		user.RefreshToken,
		user.TokenExpiresAt,
	).Scan(&user.Id, &user.CreatedAt)
	if err != nil {
		return nil, helper.HandleDatabaseError(err, r.log, "UpsertUser: failed to upsert user")
	}

	return user, nil
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	query := `SELECT
		id,
		airtable_user_id,
		access_token,
		refresh_token,
		token_expires_at,
		created_at
	FROM "user" WHERE id = $1`

	return r.scanUser(ctx, query, id)
}

func (r *userRepo) GetByAirtableID(ctx context.Context, airtableUserId string) (*models.User, error) {
	query := `SELECT
		id,
		airtable_user_id,
		access_token,
		refresh_token,
		token_expires_at,
		created_at
	FROM "user" WHERE airtable_user_id = $1`

	return r.scanUser(ctx, query, airtableUserId)
}

func (r *userRepo) scanUser(ctx context.Context, query string, args ...any) (*models.User, error) {
	var user models.User

	err := r.db.QueryRow(ctx, query, args...).Scan(
		&user.Id,
		&user.AirtableUserId,
		&user.AccessToken,
		&user.RefreshToken,
		&user.TokenExpiresAt,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, helper.HandleDatabaseError(err, r.log, "GetUser: failed to scan user")
	}

	return &user, nil
}
