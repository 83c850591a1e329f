package webhook

import (
	"encoding/json"
	"strings"

	"formlink/formlink_go_form_service/config"
	"formlink/formlink_go_form_service/models"
	"formlink/formlink_go_form_service/pkg/logger"
)

// PayloadShape is the closed set of payload layouts Airtable is known to
// deliver. Payloads carry no type tag, so the shape is detected once from
// which top-level field is populated and dispatched exhaustively.
type PayloadShape int

const (
	ShapeUnrecognized PayloadShape = iota
	ShapeFlatChanges
	ShapeChangedTables
)

const shapeLogLimit = 256

func ClassifyPayload(payload *models.WebhookPayload) PayloadShape {
	if len(payload.Changes) > 0 {
		return ShapeFlatChanges
	}

	if len(payload.ChangedTablesById) > 0 {
		return ShapeChangedTables
	}

	return ShapeUnrecognized
}

// ChangeRecords flattens one raw payload into normalized record-level
// changes. A malformed payload or record is logged and skipped so the rest of
// the batch still applies; this function never fails.
func ChangeRecords(raw json.RawMessage, log logger.LoggerI) []models.ChangeRecord {
	var payload models.WebhookPayload

	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Warn("skipping undecodable webhook payload",
			logger.String("payload", truncate(raw)),
			logger.Error(err),
		)

		return nil
	}

	switch ClassifyPayload(&payload) {
	case ShapeFlatChanges:
		return fromFlatChanges(payload.Changes, log)
	case ShapeChangedTables:
		return fromChangedTables(payload.ChangedTablesById)
	default:
		log.Warn("skipping webhook payload of unknown shape",
			logger.String("payload", truncate(raw)),
		)

		return nil
	}
}

func fromFlatChanges(changes []models.PayloadChange, log logger.LoggerI) []models.ChangeRecord {
	records := make([]models.ChangeRecord, 0, len(changes))

	for _, change := range changes {
		if !isRecordLevel(change.Path) {
			continue
		}

		if change.Record == nil || change.Record.Id == "" {
			log.Warn("skipping change without record id",
				logger.String("path", change.Path),
				logger.String("action", change.Action),
			)

			continue
		}

		action := change.Action
		if action == "" {
			action = config.ActionUpdate
		}

		record := models.ChangeRecord{
			AirtableRecordId: change.Record.Id,
			Action:           action,
		}

		if action != config.ActionDelete {
			record.FieldValues = change.Record.Fields
			if len(record.FieldValues) == 0 {
				record.FieldValues = change.Record.CellValuesByFieldId
			}
		}

		records = append(records, record)
	}

	return records
}

func fromChangedTables(tables map[string]models.TableDelta) []models.ChangeRecord {
	records := []models.ChangeRecord{}

	for _, delta := range tables {
		for recordId, entry := range delta.CreatedRecordsById {
			records = append(records, models.ChangeRecord{
				AirtableRecordId: recordId,
				Action:           config.ActionCreate,
				FieldValues:      entry.CellValuesByFieldId,
			})
		}

		for recordId, entry := range delta.ChangedRecordsById {
			fieldValues := entry.CellValuesByFieldId
			if entry.Current != nil {
				fieldValues = entry.Current.CellValuesByFieldId
			}

			records = append(records, models.ChangeRecord{
				AirtableRecordId: recordId,
				Action:           config.ActionUpdate,
				FieldValues:      fieldValues,
			})
		}

		for recordId := range delta.DeletedRecordsById {
			records = append(records, models.ChangeRecord{
				AirtableRecordId: recordId,
				Action:           config.ActionDelete,
			})
		}
	}

	return records
}

// isRecordLevel filters flat changes down to record data. Some API versions
// omit the path entirely; those changes are treated as record-level since the
// embedded record is the only thing they can describe.
func isRecordLevel(path string) bool {
	if path == "" {
		return true
	}

	return strings.Contains(path, "record")
}

func truncate(raw json.RawMessage) string {
	if len(raw) <= shapeLogLimit {
		return string(raw)
	}

	return string(raw[:shapeLogLimit]) + "..."
}
