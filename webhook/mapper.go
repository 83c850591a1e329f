package webhook

import (
	"strings"

	"formlink/formlink_go_form_service/models"
)

// MatchQuestion resolves an Airtable field key to one of the form's
// questions. The field id wins over the label: labels are only consulted when
// no question has a matching id. Unmatched keys are dropped by the caller,
// since Airtable tables may carry fields the form never defined.
func MatchQuestion(form *models.Form, fieldKey string) (*models.Question, bool) {
	if form == nil || fieldKey == "" {
		return nil, false
	}

	for i := range form.Questions {
		q := &form.Questions[i]

		if q.AirtableFieldId != "" && strings.EqualFold(q.AirtableFieldId, fieldKey) {
			return q, true
		}
	}

	for i := range form.Questions {
		q := &form.Questions[i]

		if q.Label != "" && strings.EqualFold(q.Label, fieldKey) {
			return q, true
		}
	}

	return nil, false
}
