package handler

import (
	"time"

	"prepaid-point-ledger/internal/adapter/http/dto"
	"prepaid-point-ledger/internal/core/domain"
	"prepaid-point-ledger/internal/core/ports"

	"github.com/google/uuid"
)

func fmtTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func fmtTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := fmtTime(*t)
	return &s
}

func uuidPtr(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}

func toWalletResponse(w *domain.Wallet) dto.WalletResponse {
	return dto.WalletResponse{
		ID:              w.ID.String(),
		Kind:            string(w.Kind),
		OwnerCustomerID: uuidPtr(w.OwnerCustomerID),
		OwnerGroupID:    uuidPtr(w.OwnerGroupID),
		Status:          string(w.Status),
		CreatedAt:       fmtTime(w.CreatedAt),
	}
}

func toTransactionResponse(t *domain.Transaction) dto.TransactionResponse {
	return dto.TransactionResponse{
		ID:                    t.ID.String(),
		TransactionUniqueNo:   t.UniqueNo,
		Type:                  string(t.Type),
		WalletID:              t.WalletID.String(),
		StoreID:               t.StoreID.String(),
		Amount:                t.Amount,
		CounterpartyWalletID:  uuidPtr(t.CounterpartyWalletID),
		ReversesTransactionNo: uuidPtr(t.ReversesTransactionID),
		CreatedAt:             fmtTime(t.CreatedAt),
	}
}

func toTransferResponse(r *ports.TransferResult) dto.TransferResponse {
	return dto.TransferResponse{
		OutTransaction: toTransactionResponse(r.Out),
		InTransaction:  toTransactionResponse(r.In),
		FromBalance:    r.FromBalance,
		ToBalance:      r.ToBalance,
	}
}

func toQrTokenResponse(t *domain.QrToken) dto.QrTokenResponse {
	resp := dto.QrTokenResponse{
		ID:         t.ID.String(),
		WalletID:   t.WalletID.String(),
		Mode:       string(t.Mode),
		State:      string(t.State),
		ExpiresAt:  fmtTime(t.ExpiresAt),
		ConsumedAt: fmtTimePtr(t.ConsumedAt),
	}
	if t.StoreID != uuid.Nil {
		resp.StoreID = t.StoreID.String()
	}
	return resp
}

func toIntentResponse(i *domain.PaymentIntent, items []domain.PaymentIntentItem) dto.IntentResponse {
	resp := dto.IntentResponse{
		PublicID:    i.PublicID.String(),
		StoreID:     i.StoreID.String(),
		TotalAmount: i.TotalAmount,
		Status:      string(i.Status),
		ExpiresAt:   fmtTime(i.ExpiresAt),
	}
	for _, item := range items {
		resp.Items = append(resp.Items, dto.IntentItemResponse{
			Name:      item.Name,
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
		})
	}
	return resp
}

func toGroupResponse(g *domain.Group, walletID uuid.UUID, members []domain.GroupMember) dto.GroupResponse {
	resp := dto.GroupResponse{
		ID:     g.ID.String(),
		Name:   g.Name,
		Status: string(g.Status),
	}
	if walletID != uuid.Nil {
		resp.WalletID = walletID.String()
	}
	for _, m := range members {
		resp.Members = append(resp.Members, dto.GroupMemberResponse{
			CustomerID: m.CustomerID.String(),
			WalletID:   m.WalletID.String(),
			JoinedAt:   fmtTime(m.JoinedAt),
		})
	}
	return resp
}
