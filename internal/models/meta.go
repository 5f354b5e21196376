package models

import (
	"time"

	"github.com/google/uuid"
)

// TermsKey is the attribute a metadata update must carry, truthy, before
// the update is accepted.
const TermsKey = "terms_and_cond"

// UserMeta is the per-user extension record, keyed 1:1 by user id.
type UserMeta struct {
	UserID     uuid.UUID      `json:"user_id"`
	Attributes map[string]any `json:"attributes"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

// Attr returns the named attribute, or nil when absent.
func (m *UserMeta) Attr(key string) any {
	if m.Attributes == nil {
		return nil
	}
	return m.Attributes[key]
}
