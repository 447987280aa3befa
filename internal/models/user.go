package models

import "time"

// User is an account holder. The username doubles as the primary key and
// the public handle; password material never leaves the server.
type User struct {
	Username  string    `gorm:"primaryKey;type:text" json:"username"`
	Password  string    `gorm:"type:text;not null" json:"-"` // bcrypt hash
	CreatedAt time.Time `json:"-"`
}

// Session binds an opaque bearer token to a username. Valid until revoked
// (logout), the account is deleted, or the configured TTL elapses.
type Session struct {
	Token    string    `gorm:"primaryKey;type:text" json:"-"`
	Username string    `gorm:"index;type:text;not null" json:"username"`
	IssuedAt time.Time `json:"issued_at"`
}

// UserBlock is a directed block edge. The service-level predicate is
// symmetric: either direction blocks the pair.
type UserBlock struct {
	BlockerID string    `gorm:"primaryKey;type:text" json:"blocker"`
	BlockedID string    `gorm:"primaryKey;type:text" json:"blocked"`
	CreatedAt time.Time `json:"-"`
}
