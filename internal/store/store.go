// Package store provides PostgreSQL persistence for CV documents.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jonathan/cv-studio/internal/types"
)

// ErrNotFound indicates no CV exists for the given id or share token.
var ErrNotFound = errors.New("cv not found")

// Store wraps a PostgreSQL connection pool.
type Store struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database.
func Connect(ctx context.Context, databaseURL string) (*Store, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Store{pool: pool}, nil
}

// Close closes the connection pool.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// CreateCV inserts a new CV and returns its id. Each stored CV gets a share
// token at creation; the token grants no access until the CV is made public.
func (s *Store) CreateCV(ctx context.Context, doc *types.CVDocument) (uuid.UUID, error) {
	cols, err := documentColumns(doc)
	if err != nil {
		return uuid.Nil, err
	}

	var id uuid.UUID
	err = s.pool.QueryRow(ctx,
		`INSERT INTO cvs (full_name, email, phone, title, photo, summary,
		                  experience, education, skills, languages, interests, share_token)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		 RETURNING id`,
		doc.Name, doc.Email, doc.Phone, doc.Title, doc.Photo, doc.Summary,
		cols.experience, cols.education, cols.skills, cols.languages, cols.interests,
		uuid.New().String(),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create cv: %w", err)
	}
	return id, nil
}

// GetCV retrieves a CV by id.
func (s *Store) GetCV(ctx context.Context, id uuid.UUID) (*types.CVDocument, error) {
	return s.readOne(ctx,
		`SELECT full_name, email, phone, title, photo, summary,
		        experience, education, skills, languages, interests
		 FROM cvs WHERE id = $1`, id)
}

// GetCVByShareToken retrieves a CV by its share token. Only public CVs are
// readable this way.
func (s *Store) GetCVByShareToken(ctx context.Context, token string) (*types.CVDocument, error) {
	return s.readOne(ctx,
		`SELECT full_name, email, phone, title, photo, summary,
		        experience, education, skills, languages, interests
		 FROM cvs WHERE share_token = $1 AND is_public`, token)
}

// UpdateCV replaces the stored document for an existing id.
func (s *Store) UpdateCV(ctx context.Context, id uuid.UUID, doc *types.CVDocument) error {
	cols, err := documentColumns(doc)
	if err != nil {
		return err
	}

	result, err := s.pool.Exec(ctx,
		`UPDATE cvs SET full_name = $1, email = $2, phone = $3, title = $4, photo = $5,
		        summary = $6, experience = $7, education = $8, skills = $9,
		        languages = $10, interests = $11, updated_at = NOW()
		 WHERE id = $12`,
		doc.Name, doc.Email, doc.Phone, doc.Title, doc.Photo, doc.Summary,
		cols.experience, cols.education, cols.skills, cols.languages, cols.interests, id)
	if err != nil {
		return fmt.Errorf("failed to update cv: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteCV removes a CV.
func (s *Store) DeleteCV(ctx context.Context, id uuid.UUID) error {
	result, err := s.pool.Exec(ctx, `DELETE FROM cvs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete cv: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// SetPublic flips the public-sharing flag and returns the share token. The
// token itself persists across toggles; only the flag gates access.
func (s *Store) SetPublic(ctx context.Context, id uuid.UUID, public bool) (string, error) {
	var token string
	err := s.pool.QueryRow(ctx,
		`UPDATE cvs SET is_public = $1, updated_at = NOW() WHERE id = $2
		 RETURNING share_token`,
		public, id,
	).Scan(&token)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("failed to set public flag: %w", err)
	}
	return token, nil
}

// GetSharing reads the public flag and share token for a CV.
func (s *Store) GetSharing(ctx context.Context, id uuid.UUID) (bool, string, error) {
	var public bool
	var token string
	err := s.pool.QueryRow(ctx,
		`SELECT is_public, share_token FROM cvs WHERE id = $1`, id,
	).Scan(&public, &token)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, "", ErrNotFound
		}
		return false, "", fmt.Errorf("failed to read sharing state: %w", err)
	}
	return public, token, nil
}

// ListCVs retrieves summaries of recent CVs, newest first.
func (s *Store) ListCVs(ctx context.Context, limit int) ([]CVSummary, error) {
	if limit == 0 {
		limit = 50
	}

	rows, err := s.pool.Query(ctx,
		`SELECT id, full_name, title, is_public, created_at, updated_at
		 FROM cvs ORDER BY updated_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list cvs: %w", err)
	}
	defer rows.Close()

	var summaries []CVSummary
	for rows.Next() {
		var summary CVSummary
		if err := rows.Scan(&summary.ID, &summary.Name, &summary.Title, &summary.IsPublic,
			&summary.CreatedAt, &summary.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan cv summary: %w", err)
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

// readOne runs a single-row document query and rebuilds the document from
// its columns. Legacy field aliases in the stored JSON are migrated by the
// entry decoders, so records written before the schema cleanup load into the
// canonical shape.
func (s *Store) readOne(ctx context.Context, query string, arg any) (*types.CVDocument, error) {
	doc := types.NewDocument()
	var experience, education, skills, languages, interests []byte

	err := s.pool.QueryRow(ctx, query, arg).Scan(
		&doc.Name, &doc.Email, &doc.Phone, &doc.Title, &doc.Photo, &doc.Summary,
		&experience, &education, &skills, &languages, &interests)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read cv: %w", err)
	}

	if err := decodeColumn(experience, &doc.Experience); err != nil {
		return nil, err
	}
	if err := decodeColumn(education, &doc.Education); err != nil {
		return nil, err
	}
	if err := decodeColumn(skills, &doc.Skills); err != nil {
		return nil, err
	}
	if err := decodeColumn(languages, &doc.Languages); err != nil {
		return nil, err
	}
	if err := decodeColumn(interests, &doc.Interests); err != nil {
		return nil, err
	}
	return doc, nil
}

// jsonColumns holds the serialized list fields ready for JSONB parameters.
type jsonColumns struct {
	experience []byte
	education  []byte
	skills     []byte
	languages  []byte
	interests  []byte
}

func documentColumns(doc *types.CVDocument) (*jsonColumns, error) {
	cols := &jsonColumns{}
	var err error
	if cols.experience, err = json.Marshal(doc.Experience); err != nil {
		return nil, fmt.Errorf("failed to marshal experience: %w", err)
	}
	if cols.education, err = json.Marshal(doc.Education); err != nil {
		return nil, fmt.Errorf("failed to marshal education: %w", err)
	}
	if cols.skills, err = json.Marshal(doc.Skills); err != nil {
		return nil, fmt.Errorf("failed to marshal skills: %w", err)
	}
	if cols.languages, err = json.Marshal(doc.Languages); err != nil {
		return nil, fmt.Errorf("failed to marshal languages: %w", err)
	}
	if cols.interests, err = json.Marshal(doc.Interests); err != nil {
		return nil, fmt.Errorf("failed to marshal interests: %w", err)
	}
	return cols, nil
}

func decodeColumn(data []byte, target any) error {
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("failed to decode cv column: %w", err)
	}
	return nil
}
