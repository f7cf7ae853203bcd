package logger

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// Logger wraps slog.Logger with additional functionality
type Logger struct {
	*slog.Logger
}

// New creates a new logger instance
func New() *Logger {
	level := getLogLevel(os.Getenv("LOG_LEVEL"))

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: level == slog.LevelDebug,
	}

	// Text handler for development (more readable), JSON for production
	var handler slog.Handler
	if gin.Mode() == gin.DebugMode {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	return &Logger{
		Logger: slog.New(handler),
	}
}

// getLogLevel converts string to slog.Level
func getLogLevel(levelStr string) slog.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// WithRequestID adds request ID to logger context
func (l *Logger) WithRequestID(requestID string) *Logger {
	return &Logger{
		Logger: l.Logger.With(slog.String("request_id", requestID)),
	}
}

// WithError adds error to logger context
func (l *Logger) WithError(err error) *Logger {
	return &Logger{
		Logger: l.Logger.With(slog.String("error", err.Error())),
	}
}

// WithFields adds multiple fields to logger context
func (l *Logger) WithFields(fields map[string]interface{}) *Logger {
	args := make([]interface{}, 0, len(fields)*2)
	for k, v := range fields {
		args = append(args, slog.Any(k, v))
	}
	return &Logger{
		Logger: l.Logger.With(args...),
	}
}

// HTTP logging methods

// LogHTTPRequest logs an HTTP request
func (l *Logger) LogHTTPRequest(c *gin.Context, duration time.Duration) {
	l.Logger.InfoContext(c.Request.Context(),
		"HTTP Request",
		slog.String("method", c.Request.Method),
		slog.String("path", c.Request.URL.Path),
		slog.String("query", c.Request.URL.RawQuery),
		slog.Int("status", c.Writer.Status()),
		slog.Duration("duration", duration),
		slog.String("ip", c.ClientIP()),
		slog.String("user_agent", c.Request.UserAgent()),
		slog.Int("size", c.Writer.Size()),
	)
}

// LogHTTPError logs an HTTP error
func (l *Logger) LogHTTPError(c *gin.Context, err error, statusCode int) {
	l.Logger.ErrorContext(c.Request.Context(),
		"HTTP Error",
		slog.String("method", c.Request.Method),
		slog.String("path", c.Request.URL.Path),
		slog.Int("status", statusCode),
		slog.String("error", err.Error()),
		slog.String("ip", c.ClientIP()),
	)
}

// Business logic logging methods

// LogBookingCreated logs when a customer booking is created
func (l *Logger) LogBookingCreated(ctx context.Context, bookingID, tourTitle, phone string) {
	l.Logger.InfoContext(ctx,
		"Booking Created",
		slog.String("booking_id", bookingID),
		slog.String("tour", tourTitle),
		slog.String("phone", phone),
	)
}

// LogBookingStatusChanged logs an admin status transition
func (l *Logger) LogBookingStatusChanged(ctx context.Context, bookingID, from, to string) {
	l.Logger.InfoContext(ctx,
		"Booking Status Changed",
		slog.String("booking_id", bookingID),
		slog.String("from", from),
		slog.String("to", to),
	)
}

// LogCommissionCredited logs an agent commission credit on confirmation
func (l *Logger) LogCommissionCredited(ctx context.Context, bookingID, agentID string, amount int64) {
	l.Logger.InfoContext(ctx,
		"Commission Credited",
		slog.String("booking_id", bookingID),
		slog.String("agent_id", agentID),
		slog.Int64("amount", amount),
	)
}

// LogNotificationFailed logs a dropped best-effort notification
func (l *Logger) LogNotificationFailed(ctx context.Context, kind, bookingID string, err error) {
	l.Logger.WarnContext(ctx,
		"Notification Dispatch Failed",
		slog.String("kind", kind),
		slog.String("booking_id", bookingID),
		slog.String("error", err.Error()),
	)
}

// Security logging methods

// LogAuthSuccess logs successful authentication
func (l *Logger) LogAuthSuccess(ctx context.Context, userID, method string) {
	l.Logger.InfoContext(ctx,
		"Authentication Success",
		slog.String("user_id", userID),
		slog.String("method", method),
	)
}

// LogAuthFailure logs failed authentication
func (l *Logger) LogAuthFailure(ctx context.Context, reason, ip string) {
	l.Logger.WarnContext(ctx,
		"Authentication Failure",
		slog.String("reason", reason),
		slog.String("ip", ip),
	)
}

// LogRateLimitExceeded logs rate limit exceeded
func (l *Logger) LogRateLimitExceeded(ctx context.Context, ip, endpoint string) {
	l.Logger.WarnContext(ctx,
		"Rate Limit Exceeded",
		slog.String("ip", ip),
		slog.String("endpoint", endpoint),
	)
}

// Helper methods for common patterns

// InfoWithContext logs an info message with context
func (l *Logger) InfoWithContext(ctx context.Context, msg string, fields map[string]interface{}) {
	args := make([]interface{}, 0, len(fields)*2)
	for k, v := range fields {
		args = append(args, slog.Any(k, v))
	}
	l.Logger.InfoContext(ctx, msg, args...)
}

// ErrorWithContext logs an error message with context
func (l *Logger) ErrorWithContext(ctx context.Context, msg string, err error, fields map[string]interface{}) {
	args := make([]interface{}, 0, len(fields)*2+2)
	args = append(args, slog.String("error", err.Error()))
	for k, v := range fields {
		args = append(args, slog.Any(k, v))
	}
	l.Logger.ErrorContext(ctx, msg, args...)
}

// Global logger instance (can be replaced with dependency injection)
var defaultLogger = New()

// GetDefault returns the default logger instance
func GetDefault() *Logger {
	return defaultLogger
}

// SetDefault sets the default logger instance
func SetDefault(logger *Logger) {
	defaultLogger = logger
}
