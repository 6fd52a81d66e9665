package dto

import "time"

// LoginResponse carries the access token pair returned on successful login or
// refresh. The refresh token itself travels in an HTTP-only cookie.
type LoginResponse struct {
	UserID      string    `json:"userID"`
	Name        string    `json:"name"`
	AccessToken string    `json:"accessToken"`
	ExpiresAt   time.Time `json:"expiresAt"`
}
