package webhook

import (
	"context"

	"formlink/formlink_go_form_service/airtable"
	"formlink/formlink_go_form_service/config"
	"formlink/formlink_go_form_service/models"
	"formlink/formlink_go_form_service/pkg/helper"
	span "formlink/formlink_go_form_service/pkg/jaeger"
	"formlink/formlink_go_form_service/pkg/logger"
	"formlink/formlink_go_form_service/storage"

	"github.com/google/uuid"
)

// Engine drives the fetch -> normalize -> apply pipeline behind the webhook
// endpoint. Ping notifications are enqueued and processed on the worker pool;
// the legacy synchronous path calls ApplyChange directly.
type Engine struct {
	cfg    config.Config
	log    logger.LoggerI
	strg   storage.StorageI
	client airtable.ClientI
	pool   *Pool
	locks  *recordLocks
}

func NewEngine(cfg config.Config, log logger.LoggerI, strg storage.StorageI, client airtable.ClientI) *Engine {
	return &Engine{
		cfg:    cfg,
		log:    log,
		strg:   strg,
		client: client,
		pool:   NewPool(cfg.WebhookWorkerCount, cfg.WebhookQueueSize, log),
		locks:  newRecordLocks(),
	}
}

func (e *Engine) Stop() {
	e.pool.Stop()
}

// EnqueueNotification hands a ping off to the worker pool. The caller has
// already acknowledged the notification, so every failure past this point is
// terminal for this unit of work and only reaches the log.
func (e *Engine) EnqueueNotification(baseId, webhookId string) {
	e.pool.Submit(func(ctx context.Context) {
		e.ProcessNotification(ctx, baseId, webhookId)
	})
}

func (e *Engine) ProcessNotification(ctx context.Context, baseId, webhookId string) {
	dbSpan, ctx := span.StartSpanFromContext(ctx, "webhook.ProcessNotification", baseId+"/"+webhookId)
	defer dbSpan.Finish()

	e.log.Info("---ProcessNotification--->>>",
		logger.String("baseId", baseId),
		logger.String("webhookId", webhookId),
	)

	form, err := e.strg.Form().GetByWebhook(ctx, baseId, webhookId)
	if err != nil {
		if helper.IsNotFound(err) {
			e.log.Warn("no form registered for webhook",
				logger.String("baseId", baseId),
				logger.String("webhookId", webhookId),
			)
		} else {
			e.log.Error("---ProcessNotification--->>> form lookup failed", logger.Error(err))
		}

		return
	}

	owner, err := e.resolveOwner(ctx, form.OwnerUserId)
	if err != nil {
		if helper.IsNotFound(err) {
			e.log.Warn("form owner not found",
				logger.String("formId", form.Id),
				logger.String("ownerUserId", form.OwnerUserId),
			)
		} else {
			e.log.Error("---ProcessNotification--->>> owner lookup failed", logger.Error(err))
		}

		return
	}

	payloads, err := e.client.ListWebhookPayloads(ctx, owner.AccessToken, baseId, webhookId)
	if err != nil {
		e.log.Error("---ProcessNotification--->>> failed to fetch payloads", logger.Error(err))
		return
	}

	applied := 0

	for _, raw := range payloads {
		for _, change := range ChangeRecords(raw, e.log) {
			if err := e.ApplyChange(ctx, form, change); err != nil {
				e.log.Error("---ProcessNotification--->>> failed to apply change",
					logger.String("recordId", change.AirtableRecordId),
					logger.String("action", change.Action),
					logger.Error(err),
				)

				continue
			}

			applied++
		}
	}

	e.log.Info("---ProcessNotification--->>> done",
		logger.String("formId", form.Id),
		logger.Int("payloads", len(payloads)),
		logger.Int("applied", applied),
	)
}

// resolveOwner looks the owning user up by internal id first and falls back
// to the Airtable user id. Form.ownerUserId has been populated both ways by
// different callers. Non-uuid values cannot be internal ids, so those skip
// straight to the Airtable lookup. An owner holding an expired access token is
// refreshed before use.
func (e *Engine) resolveOwner(ctx context.Context, ownerUserId string) (*models.User, error) {
	owner, err := e.lookupOwner(ctx, ownerUserId)
	if err != nil {
		return nil, err
	}

	return airtable.EnsureFreshToken(ctx, e.client, e.strg.User(), owner, e.log)
}

func (e *Engine) lookupOwner(ctx context.Context, ownerUserId string) (*models.User, error) {
	if _, err := uuid.Parse(ownerUserId); err == nil {
		owner, err := e.strg.User().GetByID(ctx, ownerUserId)
		if err == nil {
			return owner, nil
		}

		if !helper.IsNotFound(err) {
			return nil, err
		}
	}

	return e.strg.User().GetByAirtableID(ctx, ownerUserId)
}
