package postgres

import (
	"context"
	"encoding/json"

	"formlink/formlink_go_form_service/models"
	"formlink/formlink_go_form_service/pkg/helper"
	"formlink/formlink_go_form_service/pkg/logger"
	"formlink/formlink_go_form_service/storage"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type responseRepo struct {
	db  *pgxpool.Pool
	log logger.LoggerI
}

func NewResponseRepo(db *pgxpool.Pool, log logger.LoggerI) storage.ResponseRepoI {
	return &responseRepo{db: db, log: log}
}

func (r *responseRepo) Create(ctx context.Context, response *models.Response) (*models.Response, error) {
	if response.Id == "" {
		response.Id = uuid.NewString()
	}

	if response.Status == "" {
		response.Status = "ok"
	}

	answers, err := json.Marshal(response.Answers)
	if err != nil {
		return nil, helper.HandleDatabaseError(err, r.log, "CreateResponse: failed to marshal answers")
	}

	query := `INSERT INTO "response" (
		id,
		form_id,
		airtable_record_id,
		answers,
		status,
		deleted_in_airtable
	) VALUES (
		$1, $2, $3, $4, $5, $6
	) RETURNING created_at`

	err = r.db.QueryRow(ctx, query,
		response.Id,
		response.FormId,
		response.AirtableRecordId,
		answers,
		response.Status,
		response.DeletedInAirtable,
	).Scan(&response.CreatedAt)
	if err != nil {
		return nil, helper.HandleDatabaseError(err, r.log, "CreateResponse: failed to insert response")
	}

	return response, nil
}

func (r *responseRepo) GetByRecordID(ctx context.Context, airtableRecordId string) (*models.Response, error) {
	query := `SELECT
		id,
		form_id,
		airtable_record_id,
		answers,
		status,
		deleted_in_airtable,
		created_at,
		updated_at
	FROM "response" WHERE airtable_record_id = $1`

	var (
		response models.Response
		answers  []byte
	)

	err := r.db.QueryRow(ctx, query, airtableRecordId).Scan(
		&response.Id,
		&response.FormId,
		&response.AirtableRecordId,
		&answers,
		&response.Status,
		&response.DeletedInAirtable,
		&response.CreatedAt,
		&response.UpdatedAt,
	)
	if err != nil {
		return nil, helper.HandleDatabaseError(err, r.log, "GetResponse: failed to scan response")
	}

	if len(answers) > 0 {
		if err := json.Unmarshal(answers, &response.Answers); err != nil {
			return nil, helper.HandleDatabaseError(err, r.log, "GetResponse: failed to unmarshal answers")
		}
	}

	return &response, nil
}

func (r *responseRepo) Update(ctx context.Context, response *models.Response) error {
	answers, err := json.Marshal(response.Answers)
	if err != nil {
		return helper.HandleDatabaseError(err, r.log, "UpdateResponse: failed to marshal answers")
	}

	query := `UPDATE "response" SET
		answers = $1,
		status = $2,
		deleted_in_airtable = $3,
		updated_at = $4
	WHERE id = $5`

	_, err = r.db.Exec(ctx, query,
		answers,
		response.Status,
		response.DeletedInAirtable,
		response.UpdatedAt,
		response.Id,
	)
	if err != nil {
		return helper.HandleDatabaseError(err, r.log, "UpdateResponse: failed to update response")
	}

	return nil
}

func (r *responseRepo) ListByForm(ctx context.Context, req *models.ListResponsesRequest) ([]*models.Response, error) {
	sb := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

	builder := sb.Select(
		"id",
		"form_id",
		"airtable_record_id",
		"answers",
		"status",
		"deleted_in_airtable",
		"created_at",
		"updated_at",
	).From(`"response"`).
		Where(squirrel.Eq{"form_id": req.FormId}).
		OrderBy("created_at DESC")

	if req.Limit > 0 {
		builder = builder.Limit(req.Limit).Offset(req.Offset)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, helper.HandleDatabaseError(err, r.log, "ListResponses: failed to build query")
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, helper.HandleDatabaseError(err, r.log, "ListResponses: failed to query responses")
	}
	defer rows.Close()

	responses := []*models.Response{}

	for rows.Next() {
		var (
			response models.Response
			answers  []byte
		)

		err := rows.Scan(
			&response.Id,
			&response.FormId,
			&response.AirtableRecordId,
			&answers,
			&response.Status,
			&response.DeletedInAirtable,
			&response.CreatedAt,
			&response.UpdatedAt,
		)
		if err != nil {
			return nil, helper.HandleDatabaseError(err, r.log, "ListResponses: failed to scan row")
		}

		if len(answers) > 0 {
			if err := json.Unmarshal(answers, &response.Answers); err != nil {
				return nil, helper.HandleDatabaseError(err, r.log, "ListResponses: failed to unmarshal answers")
			}
		}

		responses = append(responses, &response)
	}

	if err := rows.Err(); err != nil {
		return nil, helper.HandleDatabaseError(err, r.log, "ListResponses: error after row iteration")
	}

	return responses, nil
}
