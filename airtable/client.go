package airtable

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"formlink/formlink_go_form_service/config"
	"formlink/formlink_go_form_service/pkg/logger"

	"github.com/pkg/errors"
)

// ClientI is the outbound Airtable surface the rest of the service depends on.
type ClientI interface {
	ExchangeCode(ctx context.Context, code, codeVerifier string) (*TokenResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*TokenResponse, error)
	WhoAmI(ctx context.Context, accessToken string) (*WhoAmIResponse, error)
	ListBases(ctx context.Context, accessToken string) ([]Base, error)
	ListTables(ctx context.Context, accessToken, baseId string) ([]Table, error)
	CreateRecord(ctx context.Context, accessToken, baseId, tableNameOrId string, fields map[string]any) (*Record, error)
	RegisterWebhook(ctx context.Context, accessToken, baseId string) (*Webhook, error)
	ListWebhookPayloads(ctx context.Context, accessToken, baseId, webhookId string) ([]json.RawMessage, error)
}

type Client struct {
	cfg        config.Config
	httpClient *http.Client
	log        logger.LoggerI
}

func NewClient(cfg config.Config, log logger.LoggerI) *Client {
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		log:        log,
	}
}

func (c *Client) ExchangeCode(ctx context.Context, code, codeVerifier string) (*TokenResponse, error) {
	form := url.Values{}
	form.Set("grant_type", "authorization_code")
	form.Set("code", code)
	form.Set("client_secret", c.cfg.AirtableClientSecret)
	form.Set("redirect_uri", c.cfg.AirtableRedirectURI)
	form.Set("code_verifier", codeVerifier)

	return c.requestToken(ctx, form)
}

func (c *Client) RefreshToken(ctx context.Context, refreshToken string) (*TokenResponse, error) {
	form := url.Values{}
	form.Set("grant_type", "refresh_token")
	form.Set("refresh_token", refreshToken)
	form.Set("client_secret", c.cfg.AirtableClientSecret)

	return c.requestToken(ctx, form)
}

func (c *Client) requestToken(ctx context.Context, form url.Values) (*TokenResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.cfg.AirtableAuthURL+"/token", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, errors.Wrap(err, "airtable: build token request")
	}

	req.SetBasicAuth(c.cfg.AirtableClientID, c.cfg.AirtableClientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var token TokenResponse
	if err := c.do(req, &token); err != nil {
		return nil, err
	}

	return &token, nil
}

func (c *Client) WhoAmI(ctx context.Context, accessToken string) (*WhoAmIResponse, error) {
	var me WhoAmIResponse

	err := c.get(ctx, accessToken, "/meta/whoami", &me)
	if err != nil {
		return nil, err
	}

	return &me, nil
}

func (c *Client) ListBases(ctx context.Context, accessToken string) ([]Base, error) {
	var resp listBasesResponse

	err := c.get(ctx, accessToken, "/meta/bases", &resp)
	if err != nil {
		return nil, err
	}

	return resp.Bases, nil
}

func (c *Client) ListTables(ctx context.Context, accessToken, baseId string) ([]Table, error) {
	var resp listTablesResponse

	err := c.get(ctx, accessToken, "/meta/bases/"+baseId+"/tables", &resp)
	if err != nil {
		return nil, err
	}

	return resp.Tables, nil
}

func (c *Client) CreateRecord(ctx context.Context, accessToken, baseId, tableNameOrId string, fields map[string]any) (*Record, error) {
	var record Record

	path := "/" + baseId + "/" + url.PathEscape(tableNameOrId)

	err := c.post(ctx, accessToken, path, createRecordRequest{Fields: fields}, &record)
	if err != nil {
		return nil, err
	}

	return &record, nil
}

func (c *Client) RegisterWebhook(ctx context.Context, accessToken, baseId string) (*Webhook, error) {
	body := registerWebhookRequest{
		NotificationUrl: c.cfg.WebhookNotifyURL,
		Specification: webhookSpecification{
			Options: webhookOptions{
				Filters: webhookFilters{
					DataTypes: []string{"tableData"},
				},
			},
		},
	}

	var webhook Webhook

	err := c.post(ctx, accessToken, "/bases/"+baseId+"/webhooks", body, &webhook)
	if err != nil {
		return nil, err
	}

	return &webhook, nil
}

// ListWebhookPayloads fetches the pending payload batch for a webhook. The
// envelope key for the list differs between Airtable API versions, so probe
// "payloads", then "data", then fall back to treating the whole body as the
// list.
func (c *Client) ListWebhookPayloads(ctx context.Context, accessToken, baseId, webhookId string) ([]json.RawMessage, error) {
	path := fmt.Sprintf("/bases/%s/webhooks/%s/payloads", baseId, webhookId)

	var body json.RawMessage

	err := c.get(ctx, accessToken, path, &body)
	if err != nil {
		return nil, err
	}

	return ExtractPayloads(body), nil
}

func ExtractPayloads(body json.RawMessage) []json.RawMessage {
	var envelope map[string]json.RawMessage

	if err := json.Unmarshal(body, &envelope); err == nil {
		for _, key := range []string{"payloads", "data"} {
			raw, ok := envelope[key]
			if !ok {
				continue
			}

			var list []json.RawMessage
			if err := json.Unmarshal(raw, &list); err == nil {
				return list
			}
		}

		return nil
	}

	var list []json.RawMessage
	if err := json.Unmarshal(body, &list); err == nil {
		return list
	}

	return nil
}

func (c *Client) get(ctx context.Context, accessToken, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.AirtableAPIURL+path, nil)
	if err != nil {
		return errors.Wrap(err, "airtable: build request")
	}

	req.Header.Set("Authorization", "Bearer "+accessToken)

	return c.do(req, out)
}

func (c *Client) post(ctx context.Context, accessToken, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return errors.Wrap(err, "airtable: marshal request body")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.AirtableAPIURL+path, bytes.NewReader(payload))
	if err != nil {
		return errors.Wrap(err, "airtable: build request")
	}

	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrapf(err, "airtable: %s %s", req.Method, req.URL.Path)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "airtable: read response body")
	}

	if resp.StatusCode >= http.StatusBadRequest {
		c.log.Error("airtable request failed",
			logger.String("method", req.Method),
			logger.String("path", req.URL.Path),
			logger.Int("status", resp.StatusCode),
			logger.String("body", string(body)),
		)

		return errors.Errorf("airtable: %s %s returned %d: %s",
			req.Method, req.URL.Path, resp.StatusCode, string(body))
	}

	if out == nil {
		return nil
	}

	if err := json.Unmarshal(body, out); err != nil {
		return errors.Wrap(err, "airtable: decode response body")
	}

	return nil
}
