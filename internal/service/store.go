package service

import "context"

// SessionStore whitelists one active session id per user.
type SessionStore interface {
	Save(ctx context.Context, userID uint, sessionID string) error
	Get(ctx context.Context, userID uint) (string, error)
	Extend(ctx context.Context, userID uint) error
	Delete(ctx context.Context, userID uint) error
}

// FlashStore holds read-once notices per visitor.
type FlashStore interface {
	Add(ctx context.Context, visitorID, message string) error
	PopAll(ctx context.Context, visitorID string) ([]string, error)
}
