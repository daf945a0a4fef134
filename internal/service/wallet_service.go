package service

import (
	"context"
	"fmt"

	"prepaid-point-ledger/internal/core/domain"
	"prepaid-point-ledger/internal/core/ports"
	"prepaid-point-ledger/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// WalletServiceImpl implements ports.WalletService. Each customer owns at
// most one individual wallet; the provider linkage lookup is best effort
// since absent linkage is a normal state.
type WalletServiceImpl struct {
	walletRepo ports.WalletRepository
	provider   ports.ProviderLinkClient
	log        zerolog.Logger
}

// NewWalletService creates a new WalletServiceImpl.
func NewWalletService(walletRepo ports.WalletRepository, provider ports.ProviderLinkClient, log zerolog.Logger) *WalletServiceImpl {
	return &WalletServiceImpl{walletRepo: walletRepo, provider: provider, log: log}
}

// CreateForCustomer creates the customer's individual wallet, resolving the
// provider-side user key when a linkage exists.
func (s *WalletServiceImpl) CreateForCustomer(ctx context.Context, customerID uuid.UUID) (*domain.Wallet, error) {
	existing, err := s.walletRepo.GetByCustomerID(ctx, customerID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("check existing wallet: %w", err))
	}
	if existing != nil {
		return nil, apperror.Validation("customer already has a wallet")
	}

	var userKey *string
	key, err := s.provider.LookupUserKey(ctx, customerID)
	if err != nil {
		// Linkage is optional; a lookup failure must not block wallet creation.
		s.log.Warn().Err(err).Str("customer_id", customerID.String()).Msg("provider linkage lookup failed")
	} else if key != "" {
		userKey = &key
	}

	wallet := domain.NewCustomerWallet(customerID, userKey)
	if err := s.walletRepo.Create(ctx, wallet); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("create wallet: %w", err))
	}

	s.log.Info().
		Str("wallet_id", wallet.ID.String()).
		Str("customer_id", customerID.String()).
		Bool("linked", userKey != nil).
		Msg("wallet created")

	return wallet, nil
}

// Get returns a wallet by id.
func (s *WalletServiceImpl) Get(ctx context.Context, walletID uuid.UUID) (*domain.Wallet, error) {
	wallet, err := s.walletRepo.GetByID(ctx, walletID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get wallet: %w", err))
	}
	if wallet == nil {
		return nil, apperror.ErrNotFound("wallet")
	}
	return wallet, nil
}

// GetByCustomer returns a customer's individual wallet.
func (s *WalletServiceImpl) GetByCustomer(ctx context.Context, customerID uuid.UUID) (*domain.Wallet, error) {
	wallet, err := s.walletRepo.GetByCustomerID(ctx, customerID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get wallet: %w", err))
	}
	if wallet == nil {
		return nil, apperror.ErrNotFound("wallet")
	}
	return wallet, nil
}
