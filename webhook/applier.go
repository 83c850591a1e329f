package webhook

import (
	"context"
	"time"

	"formlink/formlink_go_form_service/config"
	"formlink/formlink_go_form_service/models"
	"formlink/formlink_go_form_service/pkg/helper"
	"formlink/formlink_go_form_service/pkg/logger"
)

// ApplyChange applies one normalized change to the locally stored response.
// The procedure is idempotent: re-applying identical field values yields an
// identical answers map, and re-marking a delete is a no-op. A record with no
// local response is a no-op, not an error — Airtable tables hold records this
// service never created.
func (e *Engine) ApplyChange(ctx context.Context, form *models.Form, change models.ChangeRecord) error {
	if change.AirtableRecordId == "" {
		return nil
	}

	unlock := e.locks.Lock(change.AirtableRecordId)
	defer unlock()

	response, err := e.strg.Response().GetByRecordID(ctx, change.AirtableRecordId)
	if err != nil {
		if helper.IsNotFound(err) {
			e.log.Info("no local response for airtable record, skipping",
				logger.String("recordId", change.AirtableRecordId),
			)

			return nil
		}

		return err
	}

	// A batch fetch can pass a cross-referenced record the wrong form, so
	// re-resolve whenever the supplied form does not own this response.
	if form == nil || form.Id != response.FormId {
		form, err = e.strg.Form().GetByID(ctx, response.FormId)
		if err != nil {
			return err
		}
	}

	now := time.Now()

	if change.Action == config.ActionDelete {
		response.DeletedInAirtable = true
		response.UpdatedAt = &now

		return e.strg.Response().Update(ctx, response)
	}

	mapped := map[string]any{}

	for fieldKey, rawValue := range change.FieldValues {
		question, ok := MatchQuestion(form, fieldKey)
		if !ok {
			continue
		}

		mapped[question.QuestionKey] = NormalizeValue(rawValue)
	}

	if len(mapped) == 0 {
		e.log.Debug("change mapped to no known questions, skipping persist",
			logger.String("recordId", change.AirtableRecordId),
			logger.String("formId", form.Id),
		)

		return nil
	}

	if response.Answers == nil {
		response.Answers = map[string]any{}
	}

	for questionKey, value := range mapped {
		response.Answers[questionKey] = value
	}

	response.UpdatedAt = &now

	return e.strg.Response().Update(ctx, response)
}
