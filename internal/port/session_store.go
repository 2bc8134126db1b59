package port

import (
	"context"

	"github.com/google/uuid"

	"champdoc/internal/domain"
)

// SessionStore holds batch results in process memory. Nothing is persisted;
// a restart discards all sessions.
type SessionStore interface {
	Save(ctx context.Context, session *domain.Session) error
	Get(ctx context.Context, id uuid.UUID) (*domain.Session, error)
}
