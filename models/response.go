package models

import (
	"time"
)

type Response struct {
	Id                string         `json:"id"`
	FormId            string         `json:"formId"`
	AirtableRecordId  string         `json:"airtableRecordId"`
	Answers           map[string]any `json:"answers"`
	Status            string         `json:"status"`
	DeletedInAirtable bool           `json:"deletedInAirtable"`
	CreatedAt         time.Time      `json:"createdAt"`
	UpdatedAt         *time.Time     `json:"updatedAt,omitempty"`
}
