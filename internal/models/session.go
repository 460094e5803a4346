package models

import "time"

// AdminSession is an opaque token row minted on a successful password check.
// A row is valid while now <= expires_at; expired rows are not proactively
// purged, only deleted when they are looked up.
type AdminSession struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	SessionToken string    `gorm:"size:100;uniqueIndex" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// Expired reports whether the session is past its expiry at the given instant.
func (s *AdminSession) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
