// Package sqlstore persists the session credential in SQLite so a signed-in
// session survives process restarts. It is a drop-in core.TokenStore.
package sqlstore

import (
	"context"
	"fmt"
	"strings"
	"time"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-storefront/core"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type sessionRecord struct {
	bun.BaseModel `bun:"table:storefront_sessions,alias:sfs"`

	ID        string     `bun:"id,pk"`
	Token     string     `bun:"token,notnull"`
	ExpiresAt *time.Time `bun:"expires_at,nullzero"`
	CreatedAt time.Time  `bun:"created_at,notnull"`
	UpdatedAt time.Time  `bun:"updated_at,notnull"`
}

func sessionHandlers() repository.ModelHandlers[*sessionRecord] {
	return repository.ModelHandlers[*sessionRecord]{
		NewRecord: func() *sessionRecord {
			return &sessionRecord{}
		},
		GetID: func(record *sessionRecord) uuid.UUID {
			if record == nil {
				return uuid.Nil
			}
			return parseUUID(record.ID)
		},
		SetID: func(record *sessionRecord, id uuid.UUID) {
			if record == nil {
				return
			}
			record.ID = id.String()
		},
		GetIdentifier: func() string {
			return "id"
		},
		GetIdentifierValue: func(record *sessionRecord) string {
			if record == nil {
				return ""
			}
			return strings.TrimSpace(record.ID)
		},
	}
}

func parseUUID(value string) uuid.UUID {
	parsed, err := uuid.Parse(strings.TrimSpace(value))
	if err != nil {
		return uuid.Nil
	}
	return parsed
}

// TokenStore keeps at most one session row. Writing a new credential replaces
// any previous one; an expired row reads as empty and is removed.
type TokenStore struct {
	db   *bun.DB
	repo repository.Repository[*sessionRecord]
	now  func() time.Time
}

func New(ctx context.Context, db *bun.DB) (*TokenStore, error) {
	if db == nil {
		return nil, fmt.Errorf("sqlstore: bun db is required")
	}
	repo := repository.NewRepository[*sessionRecord](db, sessionHandlers())
	if validator, ok := repo.(repository.Validator); ok {
		if err := validator.Validate(); err != nil {
			return nil, fmt.Errorf("sqlstore: invalid session repository wiring: %w", err)
		}
	}
	if _, err := db.NewCreateTable().
		Model((*sessionRecord)(nil)).
		IfNotExists().
		Exec(ctx); err != nil {
		return nil, fmt.Errorf("sqlstore: ensuring session table: %w", err)
	}
	return &TokenStore{
		db:   db,
		repo: repo,
		now: func() time.Time {
			return time.Now().UTC()
		},
	}, nil
}

func (s *TokenStore) Get(ctx context.Context) (string, error) {
	if s == nil || s.repo == nil {
		return "", fmt.Errorf("sqlstore: token store is not configured")
	}
	records, _, err := s.repo.List(ctx,
		repository.OrderBy("created_at DESC"),
		repository.SelectPaginate(1, 0),
	)
	if err != nil {
		return "", err
	}
	if len(records) == 0 {
		return "", nil
	}

	record := records[0]
	if record.ExpiresAt != nil && !s.now().Before(*record.ExpiresAt) {
		if err := s.Delete(ctx); err != nil {
			return "", err
		}
		return "", nil
	}
	return record.Token, nil
}

func (s *TokenStore) Set(ctx context.Context, raw string, expiresAt time.Time) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("sqlstore: token store is not configured")
	}
	if strings.TrimSpace(raw) == "" {
		return fmt.Errorf("sqlstore: session token is required")
	}

	now := s.now()
	record := &sessionRecord{
		ID:        uuid.NewString(),
		Token:     raw,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if !expiresAt.IsZero() {
		deadline := expiresAt.UTC()
		record.ExpiresAt = &deadline
	}

	return s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().
			Model((*sessionRecord)(nil)).
			Where("1 = 1").
			Exec(ctx); err != nil {
			return err
		}
		_, err := s.repo.CreateTx(ctx, tx, record)
		return err
	})
}

func (s *TokenStore) Delete(ctx context.Context) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("sqlstore: token store is not configured")
	}
	_, err := s.db.NewDelete().
		Model((*sessionRecord)(nil)).
		Where("1 = 1").
		Exec(ctx)
	return err
}

var _ core.TokenStore = (*TokenStore)(nil)
