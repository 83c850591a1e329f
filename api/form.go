package api

import (
	"fmt"
	"net/http"

	"formlink/formlink_go_form_service/airtable"
	"formlink/formlink_go_form_service/config"
	"formlink/formlink_go_form_service/models"
	"formlink/formlink_go_form_service/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cast"
	"github.com/xuri/excelize/v2"
)

func (h *handler) CreateForm(c *gin.Context) {
	var req models.CreateFormRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.getUser(c)
	if err != nil {
		h.handleError(c, err)
		return
	}

	ctx := c.Request.Context()

	// register the webhook before saving so a form never exists without one
	registered, err := h.airtable.RegisterWebhook(ctx, user.AccessToken, req.AirtableBaseId)
	if err != nil {
		h.log.Error("---CreateForm--->>> webhook registration failed", logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	form := &models.Form{
		OwnerUserId:     user.Id,
		AirtableBaseId:  req.AirtableBaseId,
		AirtableTableId: req.AirtableTableId,
		WebhookId:       registered.Id,
		Title:           req.Title,
		Questions:       req.Questions,
	}

	form, err = h.strg.Form().Create(ctx, form)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, form)
}

func (h *handler) GetForm(c *gin.Context) {
	form, err := h.strg.Form().GetByID(c.Request.Context(), c.Param("formId"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, form)
}

func (h *handler) SubmitForm(c *gin.Context) {
	var req models.SubmitFormRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()

	form, err := h.strg.Form().GetByID(ctx, c.Param("formId"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	answers := req.Answers
	if answers == nil {
		answers = map[string]any{}
	}

	if err := validateAnswers(form, answers); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	airtableFields := map[string]any{}

	for _, q := range form.Questions {
		if value, ok := answers[q.QuestionKey]; ok {
			airtableFields[q.Label] = value
		}
	}

	owner, err := h.resolveOwner(c, form.OwnerUserId)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Form owner not found"})
		return
	}

	record, err := h.airtable.CreateRecord(ctx, owner.AccessToken, form.AirtableBaseId, form.AirtableTableId, airtableFields)
	if err != nil {
		h.log.Error("---SubmitForm--->>> airtable record create failed", logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	response := &models.Response{
		FormId:           form.Id,
		AirtableRecordId: record.Id,
		Answers:          answers,
	}

	if _, err := h.strg.Response().Create(ctx, response); err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "recordId": record.Id})
}

func validateAnswers(form *models.Form, answers map[string]any) error {
	for _, q := range form.Questions {
		value, ok := answers[q.QuestionKey]

		if q.Required && (!ok || isEmptyAnswer(value)) {
			return fmt.Errorf("missing required field: %s", q.Label)
		}

		if !ok || value == nil || !config.SELECT_FIELD_TYPES[q.Type] {
			continue
		}

		values, isList := value.([]any)
		if !isList {
			values = []any{value}
		}

		for _, v := range values {
			if !containsOption(q.Options, cast.ToString(v)) {
				return fmt.Errorf("invalid option '%v' for field %s", v, q.Label)
			}
		}
	}

	return nil
}

func isEmptyAnswer(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return v == ""
	case []any:
		return len(v) == 0
	default:
		return false
	}
}

func containsOption(options []string, value string) bool {
	for _, option := range options {
		if option == value {
			return true
		}
	}

	return false
}

// resolveOwner mirrors the webhook engine's owner lookup: internal id first,
// then the Airtable user id, because ownerUserId holds either. The owner's
// token is refreshed if it has expired.
func (h *handler) resolveOwner(c *gin.Context, ownerUserId string) (*models.User, error) {
	ctx := c.Request.Context()

	owner, err := h.lookupUser(ctx, ownerUserId)
	if err != nil {
		return nil, err
	}

	return airtable.EnsureFreshToken(ctx, h.airtable, h.strg.User(), owner, h.log)
}

func (h *handler) ListResponses(c *gin.Context) {
	req := &models.ListResponsesRequest{
		FormId: c.Param("formId"),
		Limit:  cast.ToUint64(c.Query("limit")),
		Offset: cast.ToUint64(c.Query("offset")),
	}

	responses, err := h.strg.Response().ListByForm(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, responses)
}

// ExportResponses writes the form's responses as an xlsx sheet, one column
// per question in form order.
func (h *handler) ExportResponses(c *gin.Context) {
	ctx := c.Request.Context()

	form, err := h.strg.Form().GetByID(ctx, c.Param("formId"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	responses, err := h.strg.Response().ListByForm(ctx, &models.ListResponsesRequest{FormId: form.Id})
	if err != nil {
		h.handleError(c, err)
		return
	}

	file := excelize.NewFile()
	sheet := "Sheet1"

	headers := []string{"Record ID", "Submitted At"}
	for _, q := range form.Questions {
		headers = append(headers, q.Label)
	}

	for col, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		file.SetCellValue(sheet, cell, header)
	}

	for row, response := range responses {
		values := []any{
			response.AirtableRecordId,
			response.CreatedAt.Format(config.DatabaseTimeLayout),
		}

		for _, q := range form.Questions {
			value := response.Answers[q.QuestionKey]

			if list, ok := value.([]any); ok {
				values = append(values, joinAnswers(list))
				continue
			}

			values = append(values, value)
		}

		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			file.SetCellValue(sheet, cell, value)
		}
	}

	c.Header("Content-Disposition", `attachment; filename="responses.xlsx"`)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	if err := file.Write(c.Writer); err != nil {
		h.log.Error("---ExportResponses--->>> failed to write workbook", logger.Error(err))
	}
}

func joinAnswers(values []any) string {
	out := ""

	for i, v := range values {
		if i > 0 {
			out += ", "
		}

		out += cast.ToString(v)
	}

	return out
}
