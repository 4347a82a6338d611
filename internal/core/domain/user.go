package domain

import "time"

// User is the persisted account record. PasswordHash never leaves the
// process: list and login responses are built from sanitized views in the
// transport layer, and the json tag is a second line of defense.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	DisplayName  string    `json:"displayName"`
	PasswordHash string    `json:"-"`
	Image        string    `json:"image"`
	CreatedAt    time.Time `json:"createdAt"`
}
