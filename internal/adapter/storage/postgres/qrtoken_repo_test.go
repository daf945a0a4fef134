package postgres

import (
	"context"
	"testing"
	"time"

	"prepaid-point-ledger/internal/core/domain"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQrTokenRepo_Consume_Wins(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewQrTokenRepo(mock)
	id := uuid.New()
	now := time.Now().UTC()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE qr_tokens SET state").
		WithArgs(domain.QrStateConsumed, now, id, domain.QrStateIssued).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	tx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	ok, err := repo.Consume(context.Background(), tx, id, now)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQrTokenRepo_Consume_AlreadyTerminal(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewQrTokenRepo(mock)
	id := uuid.New()
	now := time.Now().UTC()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE qr_tokens SET state").
		WithArgs(domain.QrStateConsumed, now, id, domain.QrStateIssued).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	tx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	ok, err := repo.Consume(context.Background(), tx, id, now)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQrTokenRepo_SweepExpired(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewQrTokenRepo(mock)
	now := time.Now().UTC()

	mock.ExpectExec("UPDATE qr_tokens SET state").
		WithArgs(domain.QrStateExpired, domain.QrStateIssued, now).
		WillReturnResult(pgxmock.NewResult("UPDATE", 3))

	count, err := repo.SweepExpired(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}
