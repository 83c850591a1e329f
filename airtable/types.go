package airtable

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
	TokenType    string `json:"token_type"`
	Scope        string `json:"scope"`
}

type WhoAmIResponse struct {
	Id    string `json:"id"`
	Email string `json:"email,omitempty"`
}

type Base struct {
	Id              string `json:"id"`
	Name            string `json:"name"`
	PermissionLevel string `json:"permissionLevel,omitempty"`
}

type Table struct {
	Id     string  `json:"id"`
	Name   string  `json:"name"`
	Fields []Field `json:"fields"`
}

type Field struct {
	Id      string         `json:"id"`
	Name    string         `json:"name"`
	Type    string         `json:"type"`
	Options map[string]any `json:"options,omitempty"`
}

type Record struct {
	Id          string         `json:"id"`
	CreatedTime string         `json:"createdTime,omitempty"`
	Fields      map[string]any `json:"fields"`
}

type Webhook struct {
	Id              string `json:"id"`
	MacSecretBase64 string `json:"macSecretBase64,omitempty"`
	ExpirationTime  string `json:"expirationTime,omitempty"`
}

type listBasesResponse struct {
	Bases []Base `json:"bases"`
}

type listTablesResponse struct {
	Tables []Table `json:"tables"`
}

type registerWebhookRequest struct {
	NotificationUrl string               `json:"notificationUrl"`
	Specification   webhookSpecification `json:"specification"`
}

type webhookSpecification struct {
	Options webhookOptions `json:"options"`
}

type webhookOptions struct {
	Filters webhookFilters `json:"filters"`
}

type webhookFilters struct {
	DataTypes []string `json:"dataTypes"`
}

type createRecordRequest struct {
	Fields map[string]any `json:"fields"`
}
