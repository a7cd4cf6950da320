// Package observability provides production-grade observability
// features for chatward: structured logging, metrics, and distributed
// tracing.
//
// Features:
//   - Structured logging via slog (Go stdlib)
//   - Metrics via OpenTelemetry
//   - Tracing via OpenTelemetry
//
// All features are opt-in and have no-op implementations when disabled.
package observability

import (
	"log/slog"
)

// EnrichLogger adds chatward context to a logger.
// Returns a new logger with chat_id and update_id fields.
//
// Example:
//
//	enriched := EnrichLogger(logger, 42, "d3adb33f")
//	enriched.Info("handling message") // includes chat_id, update_id
func EnrichLogger(logger *slog.Logger, chatID int64, updateID string) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With(
		slog.Int64("chat_id", chatID),
		slog.String("update_id", updateID),
	)
}

// LogMessageHandled logs the completion of message handling.
func LogMessageHandled(logger *slog.Logger, chatID int64, updates int, durationMs float64) {
	if logger == nil {
		return
	}
	logger.Debug("message handled",
		slog.Int64("chat_id", chatID),
		slog.Int("updates", updates),
		slog.Float64("duration_ms", durationMs),
	)
}

// LogCommand logs a processed command and its outcome.
func LogCommand(logger *slog.Logger, chatID int64, command string, err error) {
	if logger == nil {
		return
	}
	if err != nil {
		logger.Info("command failed",
			slog.Int64("chat_id", chatID),
			slog.String("command", command),
			slog.String("error", err.Error()),
		)
		return
	}
	logger.Debug("command ok",
		slog.Int64("chat_id", chatID),
		slog.String("command", command),
	)
}

// LogFilterMatch logs a filter evaluation that matched (the message
// will be deleted).
func LogFilterMatch(logger *slog.Logger, chatID int64) {
	if logger == nil {
		return
	}
	logger.Info("filter matched",
		slog.Int64("chat_id", chatID),
	)
}

// LogFilterError logs a filter evaluation failure (non-fatal; the
// message passes through).
func LogFilterError(logger *slog.Logger, chatID int64, err error) {
	if logger == nil {
		return
	}
	logger.Warn("filter evaluation failed",
		slog.Int64("chat_id", chatID),
		slog.String("error", err.Error()),
	)
}

// LogStoreError logs a persistence failure (non-fatal for the current
// reply, but the chat state may be stale on restart).
func LogStoreError(logger *slog.Logger, chatID int64, op string, err error) {
	if logger == nil {
		return
	}
	logger.Error("chat store failed",
		slog.Int64("chat_id", chatID),
		slog.String("operation", op),
		slog.String("error", err.Error()),
	)
}

// LogSessionEvicted logs eviction of an idle session.
func LogSessionEvicted(logger *slog.Logger, chatID int64) {
	if logger == nil {
		return
	}
	logger.Debug("session evicted",
		slog.Int64("chat_id", chatID),
	)
}
