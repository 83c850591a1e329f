package api

import (
	"context"
	"net/http"

	"formlink/formlink_go_form_service/airtable"
	"formlink/formlink_go_form_service/config"
	"formlink/formlink_go_form_service/models"
	"formlink/formlink_go_form_service/pkg/helper"
	"formlink/formlink_go_form_service/pkg/logger"
	"formlink/formlink_go_form_service/storage"
	"formlink/formlink_go_form_service/webhook"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type handler struct {
	cfg      config.Config
	log      logger.LoggerI
	strg     storage.StorageI
	airtable airtable.ClientI
	engine   *webhook.Engine
}

// SetUpRouter wires the HTTP surface: the webhook endpoint, the forms API and
// the Airtable OAuth/meta endpoints.
func SetUpRouter(cfg config.Config, log logger.LoggerI, strg storage.StorageI, client airtable.ClientI, engine *webhook.Engine) *gin.Engine {
	h := &handler{
		cfg:      cfg,
		log:      log,
		strg:     strg,
		airtable: client,
		engine:   engine,
	}

	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	webhooks := router.Group("/api/webhooks")
	{
		webhooks.POST("/airtable", h.AirtableWebhook)
	}

	forms := router.Group("/api/forms")
	{
		forms.POST("", h.CreateForm)
		forms.GET("/:formId", h.GetForm)
		forms.POST("/:formId/submit", h.SubmitForm)
		forms.GET("/:formId/responses", h.ListResponses)
		forms.GET("/:formId/responses/export", h.ExportResponses)
	}

	auth := router.Group("/auth/airtable")
	{
		auth.GET("/login", h.Login)
		auth.GET("/callback", h.Callback)
		auth.GET("/bases", h.GetBases)
		auth.GET("/bases/:baseId/tables", h.GetTables)
		auth.GET("/bases/:baseId/tables/:tableId/fields", h.GetFields)
	}

	return router
}

// handleError converts storage-layer status errors to HTTP responses.
func (h *handler) handleError(c *gin.Context, err error) {
	st, ok := status.FromError(err)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(grpcToHTTPStatus(st.Code()), gin.H{"error": st.Message()})
}

func grpcToHTTPStatus(code codes.Code) int {
	switch code {
	case codes.InvalidArgument:
		return http.StatusBadRequest
	case codes.Unauthenticated:
		return http.StatusUnauthorized
	case codes.PermissionDenied:
		return http.StatusForbidden
	case codes.NotFound:
		return http.StatusNotFound
	case codes.AlreadyExists:
		return http.StatusConflict
	case codes.FailedPrecondition:
		return http.StatusPreconditionFailed
	case codes.Unavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// getUser resolves the caller from the x-user-id header. The header has been
// populated with both internal and Airtable user ids by different frontends.
// An expired access token is refreshed before the user is handed back.
func (h *handler) getUser(c *gin.Context) (*models.User, error) {
	userId := c.GetHeader("x-user-id")
	if userId == "" {
		return nil, status.Error(codes.Unauthenticated, "user not authenticated")
	}

	ctx := c.Request.Context()

	user, err := h.lookupUser(ctx, userId)
	if err != nil {
		return nil, err
	}

	return airtable.EnsureFreshToken(ctx, h.airtable, h.strg.User(), user, h.log)
}

func (h *handler) lookupUser(ctx context.Context, userId string) (*models.User, error) {
	if _, err := uuid.Parse(userId); err == nil {
		user, err := h.strg.User().GetByID(ctx, userId)
		if err == nil {
			return user, nil
		}

		if !helper.IsNotFound(err) {
			return nil, err
		}
	}

	return h.strg.User().GetByAirtableID(ctx, userId)
}
