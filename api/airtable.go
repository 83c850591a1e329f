package api

import (
	"net/http"
	"net/url"
	"time"

	"formlink/formlink_go_form_service/airtable"
	"formlink/formlink_go_form_service/config"
	"formlink/formlink_go_form_service/models"
	"formlink/formlink_go_form_service/pkg/helper"
	"formlink/formlink_go_form_service/pkg/logger"

	"github.com/gin-gonic/gin"
)

const oauthSessionTTL = 10 * time.Minute

// Login starts the Airtable OAuth/PKCE flow: generate state and code
// verifier, persist them for the callback, redirect to the authorize page.
func (h *handler) Login(c *gin.Context) {
	state, err := helper.GenerateState(config.OAuthStateLength)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	verifier, err := helper.GenerateCodeVerifier(config.OAuthVerifierLength)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	session := &models.OAuthSession{
		State:        state,
		CodeVerifier: verifier,
		ExpiresAt:    time.Now().Add(oauthSessionTTL),
	}

	if err := h.strg.OAuthSession().Save(c.Request.Context(), session); err != nil {
		h.handleError(c, err)
		return
	}

	query := url.Values{}
	query.Set("client_id", h.cfg.AirtableClientID)
	query.Set("redirect_uri", h.cfg.AirtableRedirectURI)
	query.Set("response_type", "code")
	query.Set("scope", config.AirtableOAuthScopes)
	query.Set("state", state)
	query.Set("code_challenge", helper.CodeChallengeS256(verifier))
	query.Set("code_challenge_method", "S256")

	c.Redirect(http.StatusFound, h.cfg.AirtableAuthURL+"/authorize?"+query.Encode())
}

// Callback finishes the OAuth flow: validate state, exchange the code,
// resolve the Airtable identity and upsert the local user.
func (h *handler) Callback(c *gin.Context) {
	code := c.Query("code")
	state := c.Query("state")

	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No code provided"})
		return
	}

	if state == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No state provided"})
		return
	}

	ctx := c.Request.Context()

	session, err := h.strg.OAuthSession().Take(ctx, state)
	if err != nil {
		if helper.IsNotFound(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid state (CSRF detected)"})
			return
		}

		h.handleError(c, err)
		return
	}

	token, err := h.airtable.ExchangeCode(ctx, code, session.CodeVerifier)
	if err != nil {
		h.log.Error("---Callback--->>> token exchange failed", logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	me, err := h.airtable.WhoAmI(ctx, token.AccessToken)
	if err != nil {
		h.log.Error("---Callback--->>> whoami failed", logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	user := &models.User{
		AirtableUserId: me.Id,
		AccessToken:    token.AccessToken,
		RefreshToken:   token.RefreshToken,
		TokenExpiresAt: time.Now().Add(time.Duration(token.ExpiresIn) * time.Second),
	}

	user, err = h.strg.User().Upsert(ctx, user)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.Redirect(http.StatusFound, h.cfg.FrontendURL+"/oauth/success?userId="+user.Id)
}

func (h *handler) GetBases(c *gin.Context) {
	user, err := h.getUser(c)
	if err != nil {
		h.handleError(c, err)
		return
	}

	bases, err := h.airtable.ListBases(c.Request.Context(), user.AccessToken)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, bases)
}

func (h *handler) GetTables(c *gin.Context) {
	user, err := h.getUser(c)
	if err != nil {
		h.handleError(c, err)
		return
	}

	tables, err := h.airtable.ListTables(c.Request.Context(), user.AccessToken, c.Param("baseId"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, tables)
}

// GetFields lists the fields of one table, filtered down to the types a form
// question can be bound to.
func (h *handler) GetFields(c *gin.Context) {
	user, err := h.getUser(c)
	if err != nil {
		h.handleError(c, err)
		return
	}

	tables, err := h.airtable.ListTables(c.Request.Context(), user.AccessToken, c.Param("baseId"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	fields := []airtable.Field{}

	for _, table := range tables {
		if table.Id != c.Param("tableId") {
			continue
		}

		for _, field := range table.Fields {
			if config.ALLOWED_FIELD_TYPES[field.Type] {
				fields = append(fields, field)
			}
		}
	}

	c.JSON(http.StatusOK, fields)
}
