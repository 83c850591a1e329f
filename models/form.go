package models

import (
	"time"
)

type Question struct {
	QuestionKey     string   `json:"questionKey"`
	AirtableFieldId string   `json:"airtableFieldId"`
	Label           string   `json:"label"`
	Type            string   `json:"type"`
	Required        bool     `json:"required"`
	Options         []string `json:"options,omitempty"`
}

type Form struct {
	Id              string     `json:"id"`
	OwnerUserId     string     `json:"ownerUserId"`
	AirtableBaseId  string     `json:"airtableBaseId"`
	AirtableTableId string     `json:"airtableTableId"`
	WebhookId       string     `json:"webhookId"`
	Title           string     `json:"title"`
	Questions       []Question `json:"questions"`
	CreatedAt       time.Time  `json:"createdAt"`
}

type CreateFormRequest struct {
	AirtableBaseId  string     `json:"airtableBaseId" binding:"required"`
	AirtableTableId string     `json:"airtableTableId" binding:"required"`
	Title           string     `json:"title"`
	Questions       []Question `json:"questions"`
}

type SubmitFormRequest struct {
	Answers map[string]any `json:"answers"`
}

type ListResponsesRequest struct {
	FormId string
	Limit  uint64
	Offset uint64
}
