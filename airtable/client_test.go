package airtable_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"formlink/formlink_go_form_service/airtable"
	"formlink/formlink_go_form_service/config"
	"formlink/formlink_go_form_service/pkg/logger"

	"github.com/stretchr/testify/assert"
)

var testLog = logger.NewLogger("airtable_test", logger.LevelError)

func TestExtractPayloadsEnvelopeKey(t *testing.T) {
	body := json.RawMessage(`{"payloads": [{"a": 1}, {"b": 2}], "cursor": 3}`)

	payloads := airtable.ExtractPayloads(body)

	assert.Len(t, payloads, 2)
	assert.JSONEq(t, `{"a": 1}`, string(payloads[0]))
}

func TestExtractPayloadsDataKey(t *testing.T) {
	body := json.RawMessage(`{"data": [{"a": 1}]}`)

	assert.Len(t, airtable.ExtractPayloads(body), 1)
}

func TestExtractPayloadsRawList(t *testing.T) {
	body := json.RawMessage(`[{"a": 1}, {"b": 2}, {"c": 3}]`)

	assert.Len(t, airtable.ExtractPayloads(body), 3)
}

func TestExtractPayloadsUnknownEnvelope(t *testing.T) {
	body := json.RawMessage(`{"unexpected": true}`)

	assert.Empty(t, airtable.ExtractPayloads(body))
}

func newTestClient(serverURL string) *airtable.Client {
	cfg := config.Config{
		AirtableAPIURL:   serverURL,
		AirtableAuthURL:  serverURL,
		WebhookNotifyURL: "https://forms.example.com/api/webhooks/airtable",
	}

	return airtable.NewClient(cfg, testLog)
}

func TestListWebhookPayloads(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/bases/appX/webhooks/achY/payloads", r.URL.Path)
		assert.Equal(t, "Bearer token123", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"payloads": [{"changes": []}], "mightHaveMore": false}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	payloads, err := client.ListWebhookPayloads(context.Background(), "token123", "appX", "achY")

	assert.NoError(t, err)
	assert.Len(t, payloads, 1)
}

func TestListWebhookPayloadsErrorIncludesBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error": {"type": "AUTHENTICATION_REQUIRED"}}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	_, err := client.ListWebhookPayloads(context.Background(), "expired", "appX", "achY")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "401")
	assert.Contains(t, err.Error(), "AUTHENTICATION_REQUIRED")
}

func TestRegisterWebhook(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/bases/appX/webhooks", r.URL.Path)

		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "https://forms.example.com/api/webhooks/airtable", body["notificationUrl"])

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id": "achNew", "expirationTime": "2026-10-01T00:00:00.000Z"}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	webhook, err := client.RegisterWebhook(context.Background(), "token123", "appX")

	assert.NoError(t, err)
	assert.Equal(t, "achNew", webhook.Id)
}

func TestCreateRecord(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/appX/Table%201", r.URL.EscapedPath())

		var body map[string]map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Ada", body["fields"]["Full Name"])

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id": "recNew", "fields": {"Full Name": "Ada"}}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	record, err := client.CreateRecord(context.Background(), "token123", "appX", "Table 1",
		map[string]any{"Full Name": "Ada"})

	assert.NoError(t, err)
	assert.Equal(t, "recNew", record.Id)
}
