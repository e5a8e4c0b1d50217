package usecase

import (
	"context"

	"github.com/DRSN-tech/order-backoffice/internal/domain"
	"github.com/DRSN-tech/order-backoffice/internal/editor"
	"github.com/google/uuid"
)

type OrderUC interface {
	StartDraft(ctx context.Context) (*DraftRes, error)
	StartEditDraft(ctx context.Context, orderID int64) (*DraftRes, error)
	GetDraft(ctx context.Context, draftID uuid.UUID) (*DraftRes, error)
	DiscardDraft(ctx context.Context, draftID uuid.UUID) error
	UpdateDraftHeader(ctx context.Context, req *UpdateDraftHeaderReq) (*DraftRes, error)
	AddLine(ctx context.Context, draftID uuid.UUID) (*DraftRes, error)
	SelectProduct(ctx context.Context, req *SelectProductReq) (*DraftRes, error)
	SetQuantity(ctx context.Context, req *SetQuantityReq) (*DraftRes, error)
	ClearQuantity(ctx context.Context, draftID uuid.UUID, line int) (*DraftRes, error)
	RemoveLine(ctx context.Context, draftID uuid.UUID, line int) (*DraftRes, error)
	LineOptions(ctx context.Context, draftID uuid.UUID, line int) ([]editor.ProductOption, error)
	SubmitDraft(ctx context.Context, draftID uuid.UUID) (*domain.Order, error)

	ListOrders(ctx context.Context, req *ListOrdersReq) (*ListOrdersRes, error)
	GetOrder(ctx context.Context, orderID int64) (*domain.Order, error)
	DeleteOrder(ctx context.Context, orderID int64) error
	ListPaymentMethods(ctx context.Context) ([]domain.PaymentMethod, error)
}
