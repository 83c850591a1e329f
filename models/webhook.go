package models

// WebhookNotification is the inbound webhook body. Airtable sends three
// mutually exclusive shapes through the same endpoint: the one-time challenge
// handshake, the "payloads are ready" ping, and the legacy direct event.
type WebhookNotification struct {
	Challenge string `json:"challenge,omitempty"`

	Webhook *WebhookRef `json:"webhook,omitempty"`
	Base    *BaseRef    `json:"base,omitempty"`

	// legacy direct event
	Event    string         `json:"event,omitempty"`
	RecordId string         `json:"recordId,omitempty"`
	Fields   map[string]any `json:"fields,omitempty"`
}

type WebhookRef struct {
	Id string `json:"id"`
}

type BaseRef struct {
	Id string `json:"id"`
}

// ChangeRecord is one normalized record-level change. FieldValues is keyed by
// the Airtable field id (or label for legacy events) and is nil for deletes.
type ChangeRecord struct {
	AirtableRecordId string
	Action           string
	FieldValues      map[string]any
}

// WebhookPayload mirrors the two known payload shapes Airtable delivers from
// the payloads endpoint. Which of the two top-level fields is populated
// decides the shape; neither carries an explicit type tag.
type WebhookPayload struct {
	Changes           []PayloadChange       `json:"changes,omitempty"`
	ChangedTablesById map[string]TableDelta `json:"changedTablesById,omitempty"`
}

type PayloadChange struct {
	Path   string         `json:"path,omitempty"`
	Action string         `json:"action,omitempty"`
	Record *PayloadRecord `json:"record,omitempty"`
}

type PayloadRecord struct {
	Id                  string         `json:"id"`
	Fields              map[string]any `json:"fields,omitempty"`
	CellValuesByFieldId map[string]any `json:"cellValuesByFieldId,omitempty"`
}

// TableDelta carries three independent maps per table; deleted records arrive
// as bare keys with no cell values.
type TableDelta struct {
	CreatedRecordsById map[string]TableDeltaRecord `json:"createdRecordsById,omitempty"`
	ChangedRecordsById map[string]TableDeltaRecord `json:"changedRecordsById,omitempty"`
	DeletedRecordsById map[string]any              `json:"deletedRecordsById,omitempty"`
}

type TableDeltaRecord struct {
	CellValuesByFieldId map[string]any    `json:"cellValuesByFieldId,omitempty"`
	Current             *PayloadCellValues `json:"current,omitempty"`
}

type PayloadCellValues struct {
	CellValuesByFieldId map[string]any `json:"cellValuesByFieldId,omitempty"`
}
