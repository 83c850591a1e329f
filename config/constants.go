package config

import (
	"time"
)

const (
	DatabaseTimeLayout string = time.RFC3339

	ErrNoRows      string = "no rows in result set"
	ErrEnvNodFound string = "No .env file found"

	// Webhook actions as Airtable reports them
	ActionCreate string = "create"
	ActionUpdate string = "update"
	ActionDelete string = "delete"

	// OAuth
	AirtableOAuthScopes string = "data.records:read data.records:write schema.bases:read schema.bases:write webhook:manage"
	OAuthStateLength    int    = 16
	OAuthVerifierLength int    = 64
)

var (
	// Field types a form question may be bound to
	ALLOWED_FIELD_TYPES = map[string]bool{
		"singleLineText":      true,
		"multilineText":       true,
		"singleSelect":        true,
		"multipleSelects":     true,
		"multipleAttachments": true,
	}

	SELECT_FIELD_TYPES = map[string]bool{
		"singleSelect":    true,
		"multipleSelects": true,
	}
)
