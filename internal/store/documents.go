package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nutrilens/nutrilens-backend/internal/security"
	"go.uber.org/zap"
)

// Document keys for the three persisted blobs. Keys are stable; there is no
// versioning field, so an absent or undecodable key falls back to defaults.
const (
	KeySession    = "nutrilens_session"
	KeyProfile    = "nutrilens_profile"
	KeyDailyStats = "nutrilens_daily_stats"
)

// Documents persists whole-document JSON blobs under string keys. It is the
// only durable storage in the system: one row per document, rewritten in full
// on every save.
type Documents struct {
	db        *pgxpool.Pool
	encryptor *security.Encryptor // nil disables at-rest encryption
	logger    *zap.Logger
}

// NewDocuments creates a new document store. Pass a nil encryptor to store
// plaintext JSON.
func NewDocuments(db *pgxpool.Pool, encryptor *security.Encryptor, logger *zap.Logger) *Documents {
	return &Documents{
		db:        db,
		encryptor: encryptor,
		logger:    logger,
	}
}

// EnsureSchema creates the documents table if it does not exist yet.
func (s *Documents) EnsureSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS documents (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`

	if _, err := s.db.Exec(ctx, query); err != nil {
		return fmt.Errorf("failed to create documents table: %w", err)
	}

	return nil
}

// Load retrieves the document stored under key. An absent key returns
// (nil, nil). A stored value that cannot be decrypted is indistinguishable
// from an absent one: callers fall back to defaults either way.
func (s *Documents) Load(ctx context.Context, key string) ([]byte, error) {
	query := `SELECT value FROM documents WHERE key = $1`

	var value string
	err := s.db.QueryRow(ctx, query, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		s.logger.Error("failed to load document",
			zap.Error(err),
			zap.String("key", key),
		)
		return nil, fmt.Errorf("failed to load document %s: %w", key, err)
	}

	if s.encryptor == nil {
		return []byte(value), nil
	}

	doc, err := s.encryptor.DecryptDocument(value)
	if err != nil {
		s.logger.Warn("stored document failed to decrypt, treating as absent",
			zap.Error(err),
			zap.String("key", key),
		)
		return nil, nil
	}

	return doc, nil
}

// Save rewrites the document stored under key in full.
func (s *Documents) Save(ctx context.Context, key string, doc []byte) error {
	value := string(doc)
	if s.encryptor != nil {
		encrypted, err := s.encryptor.EncryptDocument(doc)
		if err != nil {
			s.logger.Error("failed to encrypt document",
				zap.Error(err),
				zap.String("key", key),
			)
			return fmt.Errorf("failed to encrypt document %s: %w", key, err)
		}
		value = encrypted
	}

	query := `
		INSERT INTO documents (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
	`

	if _, err := s.db.Exec(ctx, query, key, value); err != nil {
		s.logger.Error("failed to save document",
			zap.Error(err),
			zap.String("key", key),
		)
		return fmt.Errorf("failed to save document %s: %w", key, err)
	}

	return nil
}

// ClearAll removes every stored document. Used only by the full reset, which
// is irreversible.
func (s *Documents) ClearAll(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, `DELETE FROM documents`); err != nil {
		s.logger.Error("failed to clear documents", zap.Error(err))
		return fmt.Errorf("failed to clear documents: %w", err)
	}

	s.logger.Info("all persisted documents cleared")

	return nil
}
