package api

import (
	"net/http"

	"formlink/formlink_go_form_service/config"
	"formlink/formlink_go_form_service/models"
	"formlink/formlink_go_form_service/pkg/helper"
	"formlink/formlink_go_form_service/pkg/logger"

	"github.com/gin-gonic/gin"
)

// AirtableWebhook is the inbound notification endpoint. Three mutually
// exclusive body shapes, checked in priority order:
//
//  1. challenge handshake — echo the token back unchanged, nothing else;
//  2. ping — acknowledge immediately, then fetch and apply the real payloads
//     on the worker pool (failures never reach this response);
//  3. legacy direct event — apply synchronously and report the outcome.
func (h *handler) AirtableWebhook(c *gin.Context) {
	var body models.WebhookNotification

	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if body.Challenge != "" {
		h.log.Info("---AirtableWebhook--->>> challenge handshake")
		c.JSON(http.StatusOK, gin.H{"challenge": body.Challenge})
		return
	}

	if body.Webhook != nil && body.Base != nil && body.Webhook.Id != "" && body.Base.Id != "" {
		h.log.Info("---AirtableWebhook--->>> ping",
			logger.String("baseId", body.Base.Id),
			logger.String("webhookId", body.Webhook.Id),
		)

		h.engine.EnqueueNotification(body.Base.Id, body.Webhook.Id)

		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Webhook ping received"})
		return
	}

	h.legacyEvent(c, &body)
}

// legacyEvent keeps backward compatibility with the direct delivery mode
// where the notification body itself carries the change.
func (h *handler) legacyEvent(c *gin.Context, body *models.WebhookNotification) {
	if body.RecordId == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "recordId is required"})
		return
	}

	ctx := c.Request.Context()

	response, err := h.strg.Response().GetByRecordID(ctx, body.RecordId)
	if err != nil {
		if helper.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Record not found locally"})
			return
		}

		h.handleError(c, err)
		return
	}

	change := models.ChangeRecord{
		AirtableRecordId: body.RecordId,
		Action:           body.Event,
	}

	if change.Action == "" {
		change.Action = config.ActionUpdate
	}

	if change.Action != config.ActionDelete {
		change.FieldValues = body.Fields
	}

	if err := h.engine.ApplyChange(ctx, nil, change); err != nil {
		h.log.Error("---AirtableWebhook--->>> legacy apply failed",
			logger.String("recordId", body.RecordId),
			logger.Error(err),
		)

		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if change.Action == config.ActionDelete {
		c.JSON(http.StatusOK, gin.H{"ok": true, "deleted": response.Id})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "updated": response.Id})
}
