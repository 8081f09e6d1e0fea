package domain

import (
	"context"
	"errors"
)

var (
	ErrInvalidRequest = errors.New("invalid trip request")
	ErrUpstream       = errors.New("itinerary generation failed")
)

// ItineraryGenerator is the external text-generation service.
type ItineraryGenerator interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}
