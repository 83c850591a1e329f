package models

import (
	"time"
)

type User struct {
	Id             string    `json:"id"`
	AirtableUserId string    `json:"airtableUserId"`
	AccessToken    string    `json:"-"`
	RefreshToken   string    `json:"-"`
	TokenExpiresAt time.Time `json:"tokenExpiresAt"`
	CreatedAt      time.Time `json:"createdAt"`
}

// OAuthSession holds the PKCE state of one in-flight authorization.
type OAuthSession struct {
	State        string
	CodeVerifier string
	ExpiresAt    time.Time
}
