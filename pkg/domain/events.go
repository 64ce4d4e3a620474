package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventConvert     EventType = "convert"
	EventCacheLookup EventType = "cache_lookup"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// ConversionEvent describes a finished conversion, successful or not.
type ConversionEvent struct {
	EventBase
	Format   string        `json:"format,omitempty"`
	Duration time.Duration `json:"duration"`
	Rules    int           `json:"rules"`
	Bytes    int           `json:"bytes"`
	Err      error         `json:"-"`
}

// CacheEvent describes a document cache lookup.
type CacheEvent struct {
	EventBase
	Key string `json:"key"`
	Hit bool   `json:"hit"`
}

// LifecycleHooks defines callbacks for converter observability.
type LifecycleHooks struct {
	OnConvert     func(context.Context, *ConversionEvent)
	OnCacheLookup func(context.Context, *CacheEvent)
}
