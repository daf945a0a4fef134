package service

import (
	"context"
	"fmt"
	"time"

	"prepaid-point-ledger/internal/core/domain"
	"prepaid-point-ledger/internal/core/ports"
	"prepaid-point-ledger/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// QrTokenServiceImpl implements ports.QrTokenService. Single consumption is
// enforced by a compare-and-set in the repository, never by read-then-write.
type QrTokenServiceImpl struct {
	repo       ports.QrTokenRepository
	walletRepo ports.WalletRepository
	transactor ports.DBTransactor
	log        zerolog.Logger
}

// NewQrTokenService creates a new QrTokenServiceImpl.
func NewQrTokenService(repo ports.QrTokenRepository, walletRepo ports.WalletRepository, transactor ports.DBTransactor, log zerolog.Logger) *QrTokenServiceImpl {
	return &QrTokenServiceImpl{repo: repo, walletRepo: walletRepo, transactor: transactor, log: log}
}

// Create issues a scan token for the customer's wallet.
func (s *QrTokenServiceImpl) Create(ctx context.Context, req ports.CreateQrTokenRequest) (*domain.QrToken, error) {
	if !domain.ValidQrTokenMode(string(req.Mode)) {
		return nil, apperror.Validation(fmt.Sprintf("unknown qr mode: %s", req.Mode))
	}
	if req.TTLSeconds < domain.QrTokenMinTTLSeconds || req.TTLSeconds > domain.QrTokenMaxTTLSeconds {
		return nil, apperror.Validation(fmt.Sprintf(
			"ttl_seconds must be between %d and %d", domain.QrTokenMinTTLSeconds, domain.QrTokenMaxTTLSeconds))
	}

	wallet, err := s.walletRepo.GetByID(ctx, req.WalletID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("load wallet: %w", err))
	}
	if wallet == nil {
		return nil, apperror.ErrNotFound("wallet")
	}
	if wallet.OwnerCustomerID == nil || *wallet.OwnerCustomerID != req.CustomerID {
		return nil, apperror.ErrForbidden()
	}
	if !wallet.IsActive() {
		return nil, apperror.Validation("wallet is closed")
	}

	token := domain.NewQrToken(req.CustomerID, req.WalletID, req.Mode, req.StoreID, time.Duration(req.TTLSeconds)*time.Second)
	if err := s.repo.Create(ctx, token); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("create qr token: %w", err))
	}

	s.log.Info().
		Str("token_id", token.ID.String()).
		Str("mode", string(token.Mode)).
		Time("expires_at", token.ExpiresAt).
		Msg("qr token issued")

	return token, nil
}

// Get returns a token by id.
func (s *QrTokenServiceImpl) Get(ctx context.Context, id uuid.UUID) (*domain.QrToken, error) {
	token, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get qr token: %w", err))
	}
	if token == nil {
		return nil, apperror.ErrNotFound("qr token")
	}
	return token, nil
}

// Consume moves an ISSUED, unexpired token to CONSUMED exactly once. Of any
// number of concurrent scans, one wins the compare-and-set; the rest are
// classified by the token's actual state.
func (s *QrTokenServiceImpl) Consume(ctx context.Context, id uuid.UUID) (*domain.QrToken, error) {
	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	now := time.Now().UTC()
	won, err := s.repo.Consume(ctx, dbTx, id, now)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("consume qr token: %w", err))
	}
	if !won {
		return nil, s.classifyConsumeFailure(ctx, id, now)
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	token, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("reload qr token: %w", err))
	}
	if token == nil {
		return nil, apperror.ErrNotFound("qr token")
	}

	s.log.Info().Str("token_id", id.String()).Msg("qr token consumed")
	return token, nil
}

// classifyConsumeFailure explains why the consume compare-and-set missed.
func (s *QrTokenServiceImpl) classifyConsumeFailure(ctx context.Context, id uuid.UUID, now time.Time) error {
	token, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("inspect qr token: %w", err))
	}
	if token == nil {
		return apperror.ErrNotFound("qr token")
	}
	switch token.State {
	case domain.QrStateConsumed:
		return apperror.ErrTokenAlreadyConsumed()
	case domain.QrStateRevoked:
		return apperror.ErrTokenRevoked()
	case domain.QrStateExpired:
		return apperror.ErrTokenExpired()
	}
	if token.IsExpired(now) {
		// Overdue but not yet visited by the sweeper.
		return apperror.ErrTokenExpired()
	}
	return apperror.ErrTokenAlreadyConsumed()
}

// Revoke moves the caller's own ISSUED token to REVOKED.
func (s *QrTokenServiceImpl) Revoke(ctx context.Context, customerID, id uuid.UUID) error {
	token, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("get qr token: %w", err))
	}
	if token == nil {
		return apperror.ErrNotFound("qr token")
	}
	if token.CustomerID != customerID {
		return apperror.ErrForbidden()
	}

	won, err := s.repo.Revoke(ctx, id)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("revoke qr token: %w", err))
	}
	if !won {
		current, err := s.repo.GetByID(ctx, id)
		if err != nil || current == nil {
			return apperror.ErrInvalidStateTransition(string(token.State), string(domain.QrStateRevoked))
		}
		return apperror.ErrInvalidStateTransition(string(current.State), string(domain.QrStateRevoked))
	}

	s.log.Info().Str("token_id", id.String()).Msg("qr token revoked")
	return nil
}

// SweepExpired marks overdue ISSUED tokens EXPIRED.
func (s *QrTokenServiceImpl) SweepExpired(ctx context.Context) (int64, error) {
	count, err := s.repo.SweepExpired(ctx, time.Now().UTC())
	if err != nil {
		return 0, apperror.InternalError(fmt.Errorf("sweep qr tokens: %w", err))
	}
	if count > 0 {
		s.log.Info().Int64("count", count).Msg("expired qr tokens swept")
	}
	return count, nil
}
