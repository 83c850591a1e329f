package webhook_test

import (
	"testing"

	"formlink/formlink_go_form_service/models"
	"formlink/formlink_go_form_service/webhook"

	"github.com/stretchr/testify/assert"
)

func sampleForm() *models.Form {
	return &models.Form{
		Id: "f6f0cc84-39b1-4a7c-9f38-6ac4a94f50ea",
		Questions: []models.Question{
			{QuestionKey: "q_name", AirtableFieldId: "fldName1", Label: "Full Name", Type: "singleLineText"},
			{QuestionKey: "q_color", AirtableFieldId: "fldColor2", Label: "Color", Type: "singleSelect"},
		},
	}
}

func TestMatchQuestionByFieldId(t *testing.T) {
	q, ok := webhook.MatchQuestion(sampleForm(), "fldName1")

	assert.True(t, ok)
	assert.Equal(t, "q_name", q.QuestionKey)
}

func TestMatchQuestionFieldIdCaseInsensitive(t *testing.T) {
	q, ok := webhook.MatchQuestion(sampleForm(), "FLDCOLOR2")

	assert.True(t, ok)
	assert.Equal(t, "q_color", q.QuestionKey)
}

func TestMatchQuestionLabelFallback(t *testing.T) {
	q, ok := webhook.MatchQuestion(sampleForm(), "full name")

	assert.True(t, ok)
	assert.Equal(t, "q_name", q.QuestionKey)
}

func TestMatchQuestionIdWinsOverLabel(t *testing.T) {
	// one question's label collides with another question's field id
	form := &models.Form{
		Questions: []models.Question{
			{QuestionKey: "q_one", AirtableFieldId: "fldA", Label: "fldB"},
			{QuestionKey: "q_two", AirtableFieldId: "FLDB", Label: "Other"},
		},
	}

	q, ok := webhook.MatchQuestion(form, "fldB")

	assert.True(t, ok)
	assert.Equal(t, "q_two", q.QuestionKey)
}

func TestMatchQuestionNoMatch(t *testing.T) {
	q, ok := webhook.MatchQuestion(sampleForm(), "fldUnknown")

	assert.False(t, ok)
	assert.Nil(t, q)
}

func TestMatchQuestionEmptyKey(t *testing.T) {
	_, ok := webhook.MatchQuestion(sampleForm(), "")

	assert.False(t, ok)
}

func TestMatchQuestionNilForm(t *testing.T) {
	_, ok := webhook.MatchQuestion(nil, "fldName1")

	assert.False(t, ok)
}
