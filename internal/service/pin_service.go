package service

import (
	"context"
	"fmt"
	"time"

	"prepaid-point-ledger/internal/core/ports"
	"prepaid-point-ledger/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// BundledPinService implements ports.PinService with local Argon2id hashes
// and a Redis failure counter. Used when no external authentication service
// is configured.
type BundledPinService struct {
	credRepo      ports.PinCredentialRepository
	hasher        ports.HashService
	lockout       ports.PinLockoutStore
	maxFailures   int64
	lockoutWindow time.Duration
	log           zerolog.Logger
}

// NewBundledPinService creates a new BundledPinService.
func NewBundledPinService(
	credRepo ports.PinCredentialRepository,
	hasher ports.HashService,
	lockout ports.PinLockoutStore,
	maxFailures int64,
	lockoutWindow time.Duration,
	log zerolog.Logger,
) *BundledPinService {
	return &BundledPinService{
		credRepo:      credRepo,
		hasher:        hasher,
		lockout:       lockout,
		maxFailures:   maxFailures,
		lockoutWindow: lockoutWindow,
		log:           log,
	}
}

// Enroll hashes and stores the customer's PIN, replacing any previous one.
func (s *BundledPinService) Enroll(ctx context.Context, customerID uuid.UUID, pin string) error {
	if err := validatePin(pin); err != nil {
		return err
	}
	hash, err := s.hasher.Hash(pin)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("hash pin: %w", err))
	}
	if err := s.credRepo.Upsert(ctx, customerID, hash); err != nil {
		return apperror.InternalError(fmt.Errorf("store pin hash: %w", err))
	}
	if err := s.lockout.Reset(ctx, customerID); err != nil {
		s.log.Warn().Err(err).Str("customer_id", customerID.String()).Msg("failed to reset pin failure counter")
	}
	return nil
}

// Verify checks the PIN and enforces the lockout window. A mismatch that
// reaches the failure ceiling flips straight to locked.
func (s *BundledPinService) Verify(ctx context.Context, customerID uuid.UUID, pin string) error {
	failures, err := s.lockout.Failures(ctx, customerID)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("read pin failures: %w", err))
	}
	if failures >= s.maxFailures {
		return apperror.ErrPinLocked()
	}

	hash, err := s.credRepo.GetHash(ctx, customerID)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("load pin hash: %w", err))
	}
	if hash == "" {
		// No enrolled PIN is indistinguishable from a wrong PIN to the caller.
		return apperror.ErrPinMismatch()
	}

	ok, err := s.hasher.Verify(pin, hash)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("verify pin: %w", err))
	}
	if !ok {
		count, recErr := s.lockout.RecordFailure(ctx, customerID, s.lockoutWindow)
		if recErr != nil {
			return apperror.InternalError(fmt.Errorf("record pin failure: %w", recErr))
		}
		if count >= s.maxFailures {
			s.log.Warn().Str("customer_id", customerID.String()).Int64("failures", count).Msg("pin locked")
			return apperror.ErrPinLocked()
		}
		return apperror.ErrPinMismatch()
	}

	if err := s.lockout.Reset(ctx, customerID); err != nil {
		s.log.Warn().Err(err).Str("customer_id", customerID.String()).Msg("failed to reset pin failure counter")
	}
	return nil
}

// validatePin enforces a 4 to 6 digit PIN.
func validatePin(pin string) error {
	if len(pin) < 4 || len(pin) > 6 {
		return apperror.Validation("pin must be 4 to 6 digits")
	}
	for _, r := range pin {
		if r < '0' || r > '9' {
			return apperror.Validation("pin must be 4 to 6 digits")
		}
	}
	return nil
}

// RemotePinService implements ports.PinService against an external
// authentication service; lockout state lives there, not here.
type RemotePinService struct {
	verifier ports.PinVerifier
}

// NewRemotePinService creates a new RemotePinService.
func NewRemotePinService(verifier ports.PinVerifier) *RemotePinService {
	return &RemotePinService{verifier: verifier}
}

// Enroll is not supported remotely; enrollment happens in the external
// service's own onboarding flow.
func (s *RemotePinService) Enroll(ctx context.Context, customerID uuid.UUID, pin string) error {
	return apperror.Validation("pin enrollment is handled by the authentication service")
}

// Verify delegates to the external verifier and maps its verdicts.
func (s *RemotePinService) Verify(ctx context.Context, customerID uuid.UUID, pin string) error {
	verdict, err := s.verifier.VerifyPin(ctx, customerID, pin)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("verify pin remotely: %w", err))
	}
	switch verdict {
	case ports.PinVerdictOK:
		return nil
	case ports.PinVerdictLocked:
		return apperror.ErrPinLocked()
	default:
		return apperror.ErrPinMismatch()
	}
}
