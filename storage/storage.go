package storage

import (
	"context"

	"formlink/formlink_go_form_service/models"
)

type StorageI interface {
	CloseDB()
	Form() FormRepoI
	Response() ResponseRepoI
	User() UserRepoI
	OAuthSession() OAuthSessionRepoI
}

type FormRepoI interface {
	Create(ctx context.Context, form *models.Form) (*models.Form, error)
	GetByID(ctx context.Context, id string) (*models.Form, error)
	GetByWebhook(ctx context.Context, baseId, webhookId string) (*models.Form, error)
}

type ResponseRepoI interface {
	Create(ctx context.Context, response *models.Response) (*models.Response, error)
	GetByRecordID(ctx context.Context, airtableRecordId string) (*models.Response, error)
	Update(ctx context.Context, response *models.Response) error
	ListByForm(ctx context.Context, req *models.ListResponsesRequest) ([]*models.Response, error)
}

type UserRepoI interface {
	Upsert(ctx context.Context, user *models.User) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByAirtableID(ctx context.Context, airtableUserId string) (*models.User, error)
}

type OAuthSessionRepoI interface {
	Save(ctx context.Context, session *models.OAuthSession) error
	// Take returns the session for the given state and removes it, so a state
	// can be redeemed at most once.
	Take(ctx context.Context, state string) (*models.OAuthSession, error)
}
