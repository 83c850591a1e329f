package webhook_test

import (
	"encoding/json"
	"testing"

	"formlink/formlink_go_form_service/config"
	"formlink/formlink_go_form_service/models"
	"formlink/formlink_go_form_service/pkg/logger"
	"formlink/formlink_go_form_service/webhook"

	"github.com/stretchr/testify/assert"
)

var testLog = logger.NewLogger("webhook_test", logger.LevelError)

func TestClassifyPayloadFlatChanges(t *testing.T) {
	payload := &models.WebhookPayload{
		Changes: []models.PayloadChange{{Action: "update"}},
	}

	assert.Equal(t, webhook.ShapeFlatChanges, webhook.ClassifyPayload(payload))
}

func TestClassifyPayloadChangedTables(t *testing.T) {
	payload := &models.WebhookPayload{
		ChangedTablesById: map[string]models.TableDelta{"tbl1": {}},
	}

	assert.Equal(t, webhook.ShapeChangedTables, webhook.ClassifyPayload(payload))
}

func TestClassifyPayloadUnrecognized(t *testing.T) {
	assert.Equal(t, webhook.ShapeUnrecognized, webhook.ClassifyPayload(&models.WebhookPayload{}))
}

func TestChangeRecordsFlatChanges(t *testing.T) {
	raw := json.RawMessage(`{
		"changes": [
			{
				"path": "tableData/tblX/records/recAAA",
				"action": "update",
				"record": {"id": "recAAA", "fields": {"fldName1": "Ada"}}
			},
			{
				"path": "tableData/tblX/records/recBBB",
				"action": "delete",
				"record": {"id": "recBBB"}
			},
			{
				"path": "tableData/tblX/schema",
				"action": "update",
				"record": {"id": "recCCC"}
			}
		]
	}`)

	records := webhook.ChangeRecords(raw, testLog)

	assert.Len(t, records, 2)

	assert.Equal(t, "recAAA", records[0].AirtableRecordId)
	assert.Equal(t, config.ActionUpdate, records[0].Action)
	assert.Equal(t, map[string]any{"fldName1": "Ada"}, records[0].FieldValues)

	assert.Equal(t, "recBBB", records[1].AirtableRecordId)
	assert.Equal(t, config.ActionDelete, records[1].Action)
	assert.Nil(t, records[1].FieldValues)
}

func TestChangeRecordsFlatChangesCellValues(t *testing.T) {
	raw := json.RawMessage(`{
		"changes": [
			{
				"action": "create",
				"record": {"id": "recDDD", "cellValuesByFieldId": {"fldColor2": {"name": "Blue"}}}
			}
		]
	}`)

	records := webhook.ChangeRecords(raw, testLog)

	assert.Len(t, records, 1)
	assert.Equal(t, config.ActionCreate, records[0].Action)
	assert.Equal(t, map[string]any{"fldColor2": map[string]any{"name": "Blue"}}, records[0].FieldValues)
}

func TestChangeRecordsSkipsChangeWithoutRecordId(t *testing.T) {
	raw := json.RawMessage(`{
		"changes": [
			{"action": "update", "record": {"fields": {"fldName1": "x"}}},
			{"action": "update", "record": {"id": "recEEE", "fields": {"fldName1": "y"}}}
		]
	}`)

	records := webhook.ChangeRecords(raw, testLog)

	assert.Len(t, records, 1)
	assert.Equal(t, "recEEE", records[0].AirtableRecordId)
}

func TestChangeRecordsChangedTables(t *testing.T) {
	raw := json.RawMessage(`{
		"changedTablesById": {
			"tblX": {
				"createdRecordsById": {
					"recNew": {"cellValuesByFieldId": {"fldName1": "Grace"}}
				},
				"changedRecordsById": {
					"recChanged": {"current": {"cellValuesByFieldId": {"fldName1": "Edsger"}}}
				},
				"deletedRecordsById": {
					"recGone": {}
				}
			}
		}
	}`)

	records := webhook.ChangeRecords(raw, testLog)

	assert.Len(t, records, 3)

	byId := map[string]models.ChangeRecord{}
	for _, r := range records {
		byId[r.AirtableRecordId] = r
	}

	assert.Equal(t, config.ActionCreate, byId["recNew"].Action)
	assert.Equal(t, map[string]any{"fldName1": "Grace"}, byId["recNew"].FieldValues)

	assert.Equal(t, config.ActionUpdate, byId["recChanged"].Action)
	assert.Equal(t, map[string]any{"fldName1": "Edsger"}, byId["recChanged"].FieldValues)

	assert.Equal(t, config.ActionDelete, byId["recGone"].Action)
	assert.Nil(t, byId["recGone"].FieldValues)
}

func TestChangeRecordsUnknownShape(t *testing.T) {
	raw := json.RawMessage(`{"somethingElse": {"nested": true}}`)

	assert.Empty(t, webhook.ChangeRecords(raw, testLog))
}

func TestChangeRecordsUndecodablePayload(t *testing.T) {
	raw := json.RawMessage(`"just a string"`)

	assert.Empty(t, webhook.ChangeRecords(raw, testLog))
}
