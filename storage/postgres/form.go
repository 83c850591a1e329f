package postgres

import (
	"context"
	"encoding/json"

	"formlink/formlink_go_form_service/models"
	"formlink/formlink_go_form_service/pkg/helper"
	"formlink/formlink_go_form_service/pkg/logger"
	"formlink/formlink_go_form_service/storage"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type formRepo struct {
	db  *pgxpool.Pool
	log logger.LoggerI
}

func NewFormRepo(db *pgxpool.Pool, log logger.LoggerI) storage.FormRepoI {
	return &formRepo{db: db, log: log}
}

func (r *formRepo) Create(ctx context.Context, form *models.Form) (*models.Form, error) {
	if form.Id == "" {
		form.Id = uuid.NewString()
	}

	questions, err := json.Marshal(form.Questions)
	if err != nil {
		return nil, helper.HandleDatabaseError(err, r.log, "CreateForm: failed to marshal questions")
	}

	query := `INSERT INTO "form" (
		id,
		owner_user_id,
		airtable_base_id,
		airtable_table_id,
		webhook_id,
		title,
		questions
	) VALUES (
		$1, $2, $3, $4, $5, $6, $7
	) RETURNING created_at`

	err = r.db.QueryRow(ctx, query,
		form.Id,
		form.OwnerUserId,
		form.AirtableBaseId,
		form.AirtableTableId,
		form.WebhookId,
		form.Title,
		questions,
	).Scan(&form.CreatedAt)
	if err != nil {
		return nil, helper.HandleDatabaseError(err, r.log, "CreateForm: failed to insert form")
	}

	return form, nil
}

func (r *formRepo) GetByID(ctx context.Context, id string) (*models.Form, error) {
	query := `SELECT
		id,
		owner_user_id,
		airtable_base_id,
		airtable_table_id,
		webhook_id,
		title,
		questions,
		created_at
	FROM "form" WHERE id = $1`

	return r.scanForm(ctx, query, id)
}

func (r *formRepo) GetByWebhook(ctx context.Context, baseId, webhookId string) (*models.Form, error) {
	query := `SELECT
		id,
		owner_user_id,
		airtable_base_id,
		airtable_table_id,
		webhook_id,
		title,
		questions,
		created_at
	FROM "form" WHERE airtable_base_id = $1 AND webhook_id = $2`

	return r.scanForm(ctx, query, baseId, webhookId)
}

func (r *formRepo) scanForm(ctx context.Context, query string, args ...any) (*models.Form, error) {
	var (
		form      models.Form
		questions []byte
	)

	err := r.db.QueryRow(ctx, query, args...).Scan(
		&form.Id,
		&form.OwnerUserId,
		&form.AirtableBaseId,
		&form.AirtableTableId,
		&form.WebhookId,
		&form.Title,
		&questions,
		&form.CreatedAt,
	)
	if err != nil {
		return nil, helper.HandleDatabaseError(err, r.log, "GetForm: failed to scan form")
	}

	if len(questions) > 0 {
		if err := json.Unmarshal(questions, &form.Questions); err != nil {
			return nil, helper.HandleDatabaseError(err, r.log, "GetForm: failed to unmarshal questions")
		}
	}

	return &form, nil
}
