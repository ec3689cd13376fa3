package audit

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// OperationType represents the type of operation performed
type OperationType string

const (
	OperationUpdate OperationType = "UPDATE"
	OperationReset  OperationType = "RESET"
)

// ResourceType represents the document a destructive operation touched
type ResourceType string

const (
	ResourceSession    ResourceType = "session"
	ResourceProfile    ResourceType = "profile"
	ResourceDailyStats ResourceType = "daily_stats"
	ResourceAllData    ResourceType = "all_data"
)

// Entry represents an audit log entry
type Entry struct {
	ID            string
	OperationType OperationType
	ResourceType  ResourceType
	Timestamp     time.Time
	IPAddress     string
	UserAgent     string
}

// Logger records destructive and irreversible operations. The full reset is
// the only way user data disappears, so it always leaves a trace here.
type Logger struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

// NewLogger creates a new audit logger
func NewLogger(db *pgxpool.Pool, logger *zap.Logger) *Logger {
	return &Logger{
		db:     db,
		logger: logger,
	}
}

// EnsureSchema creates the audit_logs table if it does not exist yet. The
// table deliberately survives ClearAll on the document store.
func (l *Logger) EnsureSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS audit_logs (
			id UUID PRIMARY KEY,
			operation_type TEXT NOT NULL,
			resource_type TEXT NOT NULL,
			timestamp TIMESTAMPTZ NOT NULL,
			ip_address TEXT,
			user_agent TEXT
		)
	`

	if _, err := l.db.Exec(ctx, query); err != nil {
		return fmt.Errorf("failed to create audit_logs table: %w", err)
	}

	return nil
}

// Log creates an audit log entry
func (l *Logger) Log(ctx context.Context, entry Entry) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}

	l.logger.Info("audit log entry",
		zap.String("operation", string(entry.OperationType)),
		zap.String("resource_type", string(entry.ResourceType)),
		zap.Time("timestamp", entry.Timestamp),
		zap.String("ip_address", entry.IPAddress),
	)

	// Without a pool the structured log above is the only trace.
	if l.db == nil {
		return nil
	}

	query := `
		INSERT INTO audit_logs (
			id, operation_type, resource_type, timestamp, ip_address, user_agent
		) VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := l.db.Exec(ctx, query,
		entry.ID,
		entry.OperationType,
		entry.ResourceType,
		entry.Timestamp,
		entry.IPAddress,
		entry.UserAgent,
	)

	if err != nil {
		l.logger.Error("failed to write audit log to database",
			zap.Error(err),
			zap.String("operation", string(entry.OperationType)),
			zap.String("resource_type", string(entry.ResourceType)),
		)
		return err
	}

	return nil
}

// LogReset logs a confirmed full reset of all persisted documents
func (l *Logger) LogReset(ctx context.Context, ipAddress, userAgent string) error {
	return l.Log(ctx, Entry{
		OperationType: OperationReset,
		ResourceType:  ResourceAllData,
		IPAddress:     ipAddress,
		UserAgent:     userAgent,
	})
}
