package domain

import "time"

// Session is a dashboard login. The remote API token stays server-side and is
// never returned to the browser.
type Session struct {
	ID          string    `bson:"sessionId" json:"id"`
	AdminName   string    `bson:"adminName,omitempty" json:"adminName,omitempty"`
	Email       string    `bson:"email" json:"email"`
	RemoteToken string    `bson:"remoteToken" json:"-"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
	LastSeenAt  time.Time `bson:"lastSeenAt" json:"lastSeenAt"`
	ExpiresAt   time.Time `bson:"expiresAt" json:"expiresAt"`
}

// Expired reports whether the session is past its expiry at now.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}
