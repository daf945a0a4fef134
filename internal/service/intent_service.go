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

// IntentServiceImpl implements ports.IntentService. An intent is the only
// path from a QR scan to a ledger spend: the store proposes, the customer
// approves with their PIN, and approval composes the status change with the
// spend in one database transaction.
type IntentServiceImpl struct {
	intentRepo ports.IntentRepository
	qrRepo     ports.QrTokenRepository
	ledger     ports.LedgerService
	pinService ports.PinService
	transactor ports.DBTransactor
	publisher  ports.EventPublisher
	intentTTL  time.Duration
	log        zerolog.Logger
}

// NewIntentService creates a new IntentServiceImpl.
func NewIntentService(
	intentRepo ports.IntentRepository,
	qrRepo ports.QrTokenRepository,
	ledger ports.LedgerService,
	pinService ports.PinService,
	transactor ports.DBTransactor,
	publisher ports.EventPublisher,
	intentTTL time.Duration,
	log zerolog.Logger,
) *IntentServiceImpl {
	return &IntentServiceImpl{
		intentRepo: intentRepo,
		qrRepo:     qrRepo,
		ledger:     ledger,
		pinService: pinService,
		transactor: transactor,
		publisher:  publisher,
		intentTTL:  intentTTL,
		log:        log,
	}
}

// Initiate consumes the scanned token and creates a PENDING intent in the
// same transaction, so a token is never burned without its intent existing.
func (s *IntentServiceImpl) Initiate(ctx context.Context, req ports.InitiateIntentRequest) (*domain.PaymentIntent, error) {
	total, items, err := buildIntentItems(req.Items)
	if err != nil {
		return nil, err
	}

	token, err := s.qrRepo.GetByID(ctx, req.QrTokenID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get qr token: %w", err))
	}
	if token == nil {
		return nil, apperror.ErrNotFound("qr token")
	}
	if token.Mode == domain.QrModeRefund {
		return nil, apperror.Validation("refund tokens cannot initiate a payment")
	}
	// A token bound to a store pays only at that store, whichever side
	// presented it. Unbound customer tokens are free-floating.
	if token.StoreID != uuid.Nil && token.StoreID != req.StoreID {
		return nil, apperror.ErrStoreMismatch()
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	now := time.Now().UTC()
	won, err := s.qrRepo.Consume(ctx, dbTx, token.ID, now)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("consume qr token: %w", err))
	}
	if !won {
		return nil, s.classifyTokenFailure(ctx, token.ID, now)
	}

	intent := domain.NewPaymentIntent(token, req.StoreID, total, s.intentTTL)
	for i := range items {
		items[i].IntentID = intent.ID
	}
	if err := s.intentRepo.Create(ctx, dbTx, intent, items); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("create intent: %w", err))
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	s.log.Info().
		Str("public_id", intent.PublicID.String()).
		Str("store_id", req.StoreID.String()).
		Int64("total_amount", total).
		Int("items", len(items)).
		Msg("payment intent initiated")

	return intent, nil
}

// buildIntentItems validates the proposal lines and totals them.
func buildIntentItems(inputs []ports.IntentItemInput) (int64, []domain.PaymentIntentItem, error) {
	if len(inputs) == 0 {
		return 0, nil, apperror.Validation("at least one item is required")
	}

	var total int64
	items := make([]domain.PaymentIntentItem, 0, len(inputs))
	for i, in := range inputs {
		if in.Name == "" {
			return 0, nil, apperror.Validation("item name is required")
		}
		if in.UnitPrice <= 0 || in.Quantity <= 0 {
			return 0, nil, apperror.ErrInvalidAmount()
		}
		total += in.UnitPrice * int64(in.Quantity)
		items = append(items, domain.PaymentIntentItem{
			ID:        uuid.New(),
			Name:      in.Name,
			UnitPrice: in.UnitPrice,
			Quantity:  in.Quantity,
			Position:  i,
		})
	}
	if total <= 0 {
		return 0, nil, apperror.ErrInvalidAmount()
	}
	return total, items, nil
}

// classifyTokenFailure explains a missed token consume compare-and-set.
func (s *IntentServiceImpl) classifyTokenFailure(ctx context.Context, id uuid.UUID, now time.Time) error {
	token, err := s.qrRepo.GetByID(ctx, id)
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
		return apperror.ErrTokenExpired()
	}
	return apperror.ErrTokenAlreadyConsumed()
}

// Get returns an intent with its line items.
func (s *IntentServiceImpl) Get(ctx context.Context, publicID uuid.UUID) (*domain.PaymentIntent, []domain.PaymentIntentItem, error) {
	intent, err := s.intentRepo.GetByPublicID(ctx, publicID)
	if err != nil {
		return nil, nil, apperror.InternalError(fmt.Errorf("get intent: %w", err))
	}
	if intent == nil {
		return nil, nil, apperror.ErrNotFound("payment intent")
	}
	items, err := s.intentRepo.ListItems(ctx, intent.ID)
	if err != nil {
		return nil, nil, apperror.InternalError(fmt.Errorf("list intent items: %w", err))
	}
	return intent, items, nil
}

// Approve verifies the customer's PIN, then spends the intent total and
// completes the intent atomically. PIN verification happens before any row
// lock is taken; a slow authentication call must not hold up the ledger.
func (s *IntentServiceImpl) Approve(ctx context.Context, req ports.ApproveIntentRequest) (*ports.ApproveResult, error) {
	if err := s.pinService.Verify(ctx, req.CustomerID, req.Pin); err != nil {
		return nil, err
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	intent, err := s.intentRepo.GetByPublicIDForUpdate(ctx, dbTx, req.PublicID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("lock intent: %w", err))
	}
	if intent == nil {
		return nil, apperror.ErrNotFound("payment intent")
	}
	if intent.CustomerID != req.CustomerID {
		return nil, apperror.ErrForbidden()
	}
	if intent.Status != domain.IntentStatusPending {
		return nil, apperror.ErrInvalidStateTransition(string(intent.Status), string(domain.IntentStatusApproved))
	}

	now := time.Now().UTC()
	if intent.IsExpired(now) {
		// Mark it before reporting, so the sweeper has nothing left to do.
		if _, err := s.intentRepo.UpdateStatus(ctx, dbTx, intent.ID, domain.IntentStatusPending, domain.IntentStatusExpired); err != nil {
			return nil, apperror.InternalError(fmt.Errorf("expire intent: %w", err))
		}
		if err := dbTx.Commit(ctx); err != nil {
			return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
		}
		return nil, apperror.ErrIntentExpired()
	}

	useResult, err := s.ledger.UseLotTx(ctx, dbTx, ports.UseRequest{
		WalletID: intent.WalletID,
		StoreID:  intent.StoreID,
		Amount:   intent.TotalAmount,
	})
	if err != nil {
		return nil, err
	}

	if err := s.intentRepo.MarkCompleted(ctx, dbTx, intent.ID, now, now); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("complete intent: %w", err))
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	intent.Status = domain.IntentStatusCompleted
	intent.ApprovedAt = &now
	intent.CompletedAt = &now

	// Post-commit, best effort.
	event := domain.PaymentEvent{
		IntentPublicID:      intent.PublicID,
		TransactionUniqueNo: useResult.Transaction.UniqueNo,
		CustomerID:          intent.CustomerID,
		WalletID:            intent.WalletID,
		StoreID:             intent.StoreID,
		Amount:              intent.TotalAmount,
		OccurredAt:          now,
	}
	if err := s.publisher.PublishPayment(ctx, event); err != nil {
		s.log.Warn().Err(err).Str("public_id", intent.PublicID.String()).Msg("failed to publish payment event")
	}

	s.log.Info().
		Str("public_id", intent.PublicID.String()).
		Str("unique_no", useResult.Transaction.UniqueNo).
		Int64("amount", intent.TotalAmount).
		Msg("payment intent approved")

	return &ports.ApproveResult{
		Intent:      intent,
		Transaction: useResult.Transaction,
		Balance:     useResult.Balance,
	}, nil
}

// Decline lets the customer reject a PENDING intent.
func (s *IntentServiceImpl) Decline(ctx context.Context, customerID, publicID uuid.UUID) error {
	return s.transition(ctx, publicID, domain.IntentStatusDeclined, func(intent *domain.PaymentIntent) error {
		if intent.CustomerID != customerID {
			return apperror.ErrForbidden()
		}
		return nil
	})
}

// Cancel lets the initiating store withdraw a PENDING intent.
func (s *IntentServiceImpl) Cancel(ctx context.Context, storeID, publicID uuid.UUID) error {
	return s.transition(ctx, publicID, domain.IntentStatusCanceled, func(intent *domain.PaymentIntent) error {
		if intent.StoreID != storeID {
			return apperror.ErrForbidden()
		}
		return nil
	})
}

// transition applies a PENDING -> next compare-and-set after an ownership check.
func (s *IntentServiceImpl) transition(ctx context.Context, publicID uuid.UUID, next domain.IntentStatus, authorize func(*domain.PaymentIntent) error) error {
	intent, err := s.intentRepo.GetByPublicID(ctx, publicID)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("get intent: %w", err))
	}
	if intent == nil {
		return apperror.ErrNotFound("payment intent")
	}
	if err := authorize(intent); err != nil {
		return err
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	ok, err := s.intentRepo.UpdateStatus(ctx, dbTx, intent.ID, domain.IntentStatusPending, next)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("update intent status: %w", err))
	}
	if !ok {
		current, err := s.intentRepo.GetByPublicID(ctx, publicID)
		if err != nil || current == nil {
			return apperror.ErrInvalidStateTransition(string(intent.Status), string(next))
		}
		return apperror.ErrInvalidStateTransition(string(current.Status), string(next))
	}

	if err := dbTx.Commit(ctx); err != nil {
		return apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	s.log.Info().
		Str("public_id", publicID.String()).
		Str("status", string(next)).
		Msg("payment intent closed")
	return nil
}

// SweepExpired marks overdue PENDING intents EXPIRED.
func (s *IntentServiceImpl) SweepExpired(ctx context.Context) (int64, error) {
	count, err := s.intentRepo.SweepExpired(ctx, time.Now().UTC())
	if err != nil {
		return 0, apperror.InternalError(fmt.Errorf("sweep intents: %w", err))
	}
	if count > 0 {
		s.log.Info().Int64("count", count).Msg("expired payment intents swept")
	}
	return count, nil
}
