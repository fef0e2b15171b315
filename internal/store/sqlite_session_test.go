package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oguzhanozgokce/BootMobileSecure/internal/config"
	"github.com/oguzhanozgokce/BootMobileSecure/internal/logger"
	"github.com/oguzhanozgokce/BootMobileSecure/models"
)

func newMockSessionStore(t *testing.T) (SessionStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	l := logger.Nop()
	return NewSQLiteSessionStore(&DB{DB: db, logger: l}, l), mock
}

var testRecord = models.SessionRecord{
	EncryptedCredential: "Y2lwaGVydGV4dA==",
	Nonce:               "bm9uY2U=",
	Scheme:              "Bearer",
}

func TestSQLiteLoadSession_Success(t *testing.T) {
	s, mock := newMockSessionStore(t)

	rows := sqlmock.NewRows([]string{"name", "value"}).
		AddRow(FieldEncryptedCredential, testRecord.EncryptedCredential).
		AddRow(FieldNonce, testRecord.Nonce).
		AddRow(FieldScheme, testRecord.Scheme)
	mock.ExpectQuery(`SELECT name, value FROM session_fields WHERE name IN \(\?,\?,\?\)`).
		WithArgs(FieldEncryptedCredential, FieldNonce, FieldScheme).
		WillReturnRows(rows)

	rec, err := s.LoadSession(context.Background())

	require.NoError(t, err)
	assert.Equal(t, testRecord, rec)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLiteLoadSession_MissingCiphertextIsNotFound(t *testing.T) {
	s, mock := newMockSessionStore(t)

	rows := sqlmock.NewRows([]string{"name", "value"}).
		AddRow(FieldNonce, "bm9uY2U=").
		AddRow(FieldScheme, "Bearer")
	mock.ExpectQuery("SELECT name, value FROM session_fields").WillReturnRows(rows)

	_, err := s.LoadSession(context.Background())

	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSQLiteLoadSession_QueryError(t *testing.T) {
	s, mock := newMockSessionStore(t)
	mock.ExpectQuery("SELECT name, value FROM session_fields").WillReturnError(errors.New("disk I/O error"))

	_, err := s.LoadSession(context.Background())

	assert.ErrorIs(t, err, ErrExecutingQuery)
}

func TestSQLiteSaveSession_UpsertsInTransaction(t *testing.T) {
	s, mock := newMockSessionStore(t)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO session_fields \(name,value\) VALUES \(\?,\?\),\(\?,\?\),\(\?,\?\) ON CONFLICT\(name\) DO UPDATE SET value = excluded.value`).
		WithArgs(
			FieldEncryptedCredential, testRecord.EncryptedCredential,
			FieldNonce, testRecord.Nonce,
			FieldScheme, testRecord.Scheme,
		).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectCommit()

	require.NoError(t, s.SaveSession(context.Background(), testRecord))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLiteSaveSession_ExecErrorRollsBack(t *testing.T) {
	s, mock := newMockSessionStore(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO session_fields").WillReturnError(errors.New("database is locked"))
	mock.ExpectRollback()

	err := s.SaveSession(context.Background(), testRecord)

	assert.ErrorIs(t, err, ErrExecutingStatement)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLiteSaveSession_BeginError(t *testing.T) {
	s, mock := newMockSessionStore(t)
	mock.ExpectBegin().WillReturnError(errors.New("busy"))

	err := s.SaveSession(context.Background(), testRecord)

	assert.ErrorIs(t, err, ErrBeginningTransaction)
}

func TestSQLiteSaveSession_CommitError(t *testing.T) {
	s, mock := newMockSessionStore(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO session_fields").WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectCommit().WillReturnError(errors.New("disk full"))

	err := s.SaveSession(context.Background(), testRecord)

	assert.ErrorIs(t, err, ErrCommitingTransaction)
}

func TestSQLiteDeleteSession(t *testing.T) {
	s, mock := newMockSessionStore(t)

	mock.ExpectExec(`DELETE FROM session_fields WHERE name IN \(\?,\?,\?\)`).
		WithArgs(FieldEncryptedCredential, FieldNonce, FieldScheme).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, s.DeleteSession(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLiteDeleteSession_Error(t *testing.T) {
	s, mock := newMockSessionStore(t)
	mock.ExpectExec("DELETE FROM session_fields").WillReturnError(errors.New("readonly"))

	assert.ErrorIs(t, s.DeleteSession(context.Background()), ErrExecutingStatement)
}

// TestSQLiteSessionStore_RealDatabase runs the store against a migrated
// SQLite file.
func TestSQLiteSessionStore_RealDatabase(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "session.db")

	s, closeFn, err := NewSessionStore(ctx, config.ClientStorage{DB: config.ClientDB{DSN: dsn}}, logger.Nop())
	require.NoError(t, err)
	defer closeFn()

	_, err = s.LoadSession(ctx)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	require.NoError(t, s.SaveSession(ctx, testRecord))
	got, err := s.LoadSession(ctx)
	require.NoError(t, err)
	assert.Equal(t, testRecord, got)

	second := models.SessionRecord{EncryptedCredential: "b3RoZXI=", Nonce: "bjI=", Scheme: "Token"}
	require.NoError(t, s.SaveSession(ctx, second))
	got, err = s.LoadSession(ctx)
	require.NoError(t, err)
	assert.Equal(t, second, got)

	require.NoError(t, s.DeleteSession(ctx))
	require.NoError(t, s.DeleteSession(ctx))
	_, err = s.LoadSession(ctx)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestNewSessionStore_Memory(t *testing.T) {
	s, closeFn, err := NewSessionStore(context.Background(), config.ClientStorage{DB: config.ClientDB{DSN: MemoryDSN}}, logger.Nop())
	require.NoError(t, err)
	require.NoError(t, closeFn())

	assert.IsType(t, &memorySessionStore{}, s)
}
