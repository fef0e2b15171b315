// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/oguzhanozgokce/BootMobileSecure/internal/logger"
	"github.com/oguzhanozgokce/BootMobileSecure/models"
)

const sessionTable = "session_fields"

// Field names of the persisted credential.
const (
	FieldEncryptedCredential = "encrypted_credential"
	FieldNonce               = "nonce"
	FieldScheme              = "scheme"
)

var sessionFields = []string{FieldEncryptedCredential, FieldNonce, FieldScheme}

// sqliteSessionStore keeps the session as rows of a name/value table.
type sqliteSessionStore struct {
	db     *DB
	logger *logger.Logger
	sb     sq.StatementBuilderType
}

// NewSQLiteSessionStore constructs a [SessionStore] over a migrated database.
func NewSQLiteSessionStore(db *DB, logger *logger.Logger) SessionStore {
	logger.Debug().Msg("creating sqlite session store")
	return &sqliteSessionStore{
		db:     db,
		logger: logger,
		sb:     sq.StatementBuilder.PlaceholderFormat(sq.Question),
	}
}

func (s *sqliteSessionStore) LoadSession(ctx context.Context) (models.SessionRecord, error) {
	log := logger.FromContext(ctx)

	query, args, err := s.sb.
		Select("name", "value").
		From(sessionTable).
		Where(sq.Eq{"name": sessionFields}).
		ToSql()
	if err != nil {
		return models.SessionRecord{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*sqliteSessionStore.LoadSession").Msg("failed to query session fields")
		return models.SessionRecord{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	fields := make(map[string]string, len(sessionFields))
	for rows.Next() {
		var name, value string
		if err := rows.Scan(&name, &value); err != nil {
			return models.SessionRecord{}, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		fields[name] = value
	}
	if err := rows.Err(); err != nil {
		return models.SessionRecord{}, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	rec := models.SessionRecord{
		EncryptedCredential: fields[FieldEncryptedCredential],
		Nonce:               fields[FieldNonce],
		Scheme:              fields[FieldScheme],
	}
	if rec.IsZero() {
		return models.SessionRecord{}, ErrSessionNotFound
	}

	return rec, nil
}

func (s *sqliteSessionStore) SaveSession(ctx context.Context, rec models.SessionRecord) (err error) {
	log := logger.FromContext(ctx)

	query, args, err := s.sb.
		Insert(sessionTable).
		Columns("name", "value").
		Values(FieldEncryptedCredential, rec.EncryptedCredential).
		Values(FieldNonce, rec.Nonce).
		Values(FieldScheme, rec.Scheme).
		Suffix("ON CONFLICT(name) DO UPDATE SET value = excluded.value").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "*sqliteSessionStore.SaveSession").Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				log.Err(rbErr).Str("func", "*sqliteSessionStore.SaveSession").Msg("rollback failed")
			}
		}
	}()

	if _, err = tx.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).Str("func", "*sqliteSessionStore.SaveSession").Msg("failed to upsert session fields")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return nil
}

func (s *sqliteSessionStore) DeleteSession(ctx context.Context) error {
	query, args, err := s.sb.
		Delete(sessionTable).
		Where(sq.Eq{"name": sessionFields}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*sqliteSessionStore.DeleteSession").Msg("failed to delete session fields")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}
