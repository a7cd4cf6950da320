package chatward

import (
	"log/slog"
	"time"

	"github.com/randalmurphal/chatward/pkg/chatward/observability"
	"github.com/randalmurphal/chatward/pkg/chatward/store"
)

// managerConfig holds configuration for a Manager.
type managerConfig struct {
	store      store.Store
	ownedStore bool
	logger     *slog.Logger
	spans      observability.SpanManager
	metrics    observability.MetricsRecorder
	sessionTTL time.Duration
}

// defaultManagerConfig returns the default manager configuration: an
// in-memory store, no logging, no tracing, no metrics.
func defaultManagerConfig() managerConfig {
	return managerConfig{
		store:      store.NewMemoryStore(),
		ownedStore: true,
		spans:      observability.NoopSpanManager{},
		metrics:    observability.NoopMetrics{},
		sessionTTL: time.Hour,
	}
}

// Option configures a Manager.
type Option func(*managerConfig)

// WithStore sets the chat store used to persist chat state. The
// caller keeps ownership: Close does not close a store provided this
// way. Default: an in-memory store.
func WithStore(st store.Store) Option {
	return func(c *managerConfig) {
		if st != nil {
			c.store = st
			c.ownedStore = false
		}
	}
}

// WithLogger enables structured logging.
func WithLogger(logger *slog.Logger) Option {
	return func(c *managerConfig) {
		c.logger = logger
	}
}

// WithTracing enables OpenTelemetry tracing around message handling
// and filter evaluation.
//
// Example:
//
//	mgr := chatward.New("guardbot", chatward.WithTracing())
func WithTracing() Option {
	return func(c *managerConfig) {
		c.spans = observability.NewSpanManager()
	}
}

// WithMetrics enables OpenTelemetry metrics for messages, commands,
// and filter evaluations.
func WithMetrics() Option {
	return func(c *managerConfig) {
		c.metrics = observability.NewMetricsRecorder()
	}
}

// WithSessionTTL sets how long a session may stay idle before
// EvictIdle removes it. Default: one hour.
func WithSessionTTL(ttl time.Duration) Option {
	return func(c *managerConfig) {
		if ttl > 0 {
			c.sessionTTL = ttl
		}
	}
}
