package models

import "time"

// Profile is a local user identity under which applications and attachments
// are scoped.
type Profile struct {
	ID        string
	Name      string
	CreatedAt time.Time
}
