package services

import (
	"time"

	"restaurant_manager/internal/models"
)

// How long a cached default list view may serve reads before a refresh.
// Mutations invalidate eagerly, so this only bounds staleness from writes
// that bypass the service layer.
const listCacheTTL = 30 * time.Minute

// ListCache is the slice of the Redis client the listing services use:
// cache the default view of an entity list, drop it on mutation.
type ListCache interface {
	SetList(entity string, payload interface{}, ttl time.Duration) error
	GetList(entity string, dest interface{}) error
	InvalidateList(entity string) error
}

// CartStore holds one staged order per session.
type CartStore interface {
	SetCart(sessionID string, cart *models.Cart, ttl time.Duration) error
	GetCart(sessionID string) (*models.Cart, error)
	DeleteCart(sessionID string) error
}
