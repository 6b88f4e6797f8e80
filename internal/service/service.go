package service

import (
	"context"
	"time"

	"sisdisfraz-backend/internal/domain"
)

// Identity is the request-scoped caller passed into every operation.
// It is extracted from the access token by the HTTP middleware; no
// ambient session state exists anywhere in the service layer.
type Identity struct {
	ProfileID string
	Name      string
	Role      domain.Role
}

// RegisterRentalInput is the body of a rental registration request.
type RegisterRentalInput struct {
	ClientID     string               `json:"client_id"`
	CostumeID    string               `json:"costume_id"`
	Reservation  bool                 `json:"reservation"`
	PickupDate   string               `json:"pickup_date"`
	DueDate      string               `json:"due_date"`
	DepositCents int64                `json:"deposit_cents"`
	Method       domain.PaymentMethod `json:"method"`
	IDPhotoURL   string               `json:"id_photo_url,omitempty"`
	Notes        string               `json:"notes,omitempty"`
	Reference    string               `json:"reference,omitempty"`
	OriginNumber string               `json:"origin_number,omitempty"`
}

// RentalReceipt is the success payload of a registration.
type RentalReceipt struct {
	RentalID            string              `json:"rental_id"`
	Status              domain.RentalStatus `json:"status"`
	PriceCents          int64               `json:"price_cents"`
	SeasonApplied       domain.SeasonKind   `json:"season_applied"`
	DepositCents        int64               `json:"deposit_cents"`
	BalanceCents        int64               `json:"balance_cents"`
	NotificationQueued  bool                `json:"notification_queued"`
}

// ReturnPieceInput is one checklist row of a return request.
type ReturnPieceInput struct {
	PieceID        string                `json:"piece_id"`
	Condition      domain.PieceCondition `json:"condition"`
	DamagePhotoURL string                `json:"damage_photo_url,omitempty"`
	ChargedCents   int64                 `json:"charged_cents"`
}

// ProcessReturnInput is the body of a return request. Destination is
// "laundry" or "direct_stock".
type ProcessReturnInput struct {
	Pieces      []ReturnPieceInput   `json:"pieces"`
	Destination string               `json:"destination"`
	Urgent      bool                 `json:"urgent"`
	Method      domain.PaymentMethod `json:"method,omitempty"`
	Reference   string               `json:"reference,omitempty"`
}

// RegisterPaymentInput is the body of an additional payment.
type RegisterPaymentInput struct {
	Method       domain.PaymentMethod `json:"method"`
	AmountCents  int64                `json:"amount_cents"`
	Concept      string               `json:"concept"`
	Reference    string               `json:"reference,omitempty"`
	OriginNumber string               `json:"origin_number,omitempty"`
}

type RentalService interface {
	RegisterRental(ctx context.Context, op Identity, in RegisterRentalInput) (*RentalReceipt, error)
	ActivateReservation(ctx context.Context, op Identity, rentalID string, payment *RegisterPaymentInput) (*domain.Rental, error)
	CancelReservation(ctx context.Context, op Identity, rentalID string, reason string) (*domain.Rental, error)
	ProcessReturn(ctx context.Context, op Identity, rentalID string, in ProcessReturnInput) (*domain.Rental, error)
	RegisterPayment(ctx context.Context, op Identity, rentalID string, in RegisterPaymentInput) (*domain.Payment, error)
	GetRental(ctx context.Context, rentalID string) (*domain.Rental, error)
	GetRentalPieces(ctx context.Context, rentalID string) ([]domain.RentalPiece, error)
	ListRentals(ctx context.Context, status string, page, pageSize int32) ([]domain.Rental, int32, error)
}

type PricingService interface {
	// ResolvePrice returns the unit price for the costume on the pickup
	// date together with the season kind that produced it. Idempotent
	// for fixed inputs against the season table as of call time.
	ResolvePrice(ctx context.Context, costume *domain.Costume, pickupDate time.Time) (int64, domain.SeasonKind, error)
}

type AuthService interface {
	Login(ctx context.Context, email, password string) (access, refresh string, profile *domain.Profile, err error)
	Refresh(ctx context.Context, refreshToken string) (access, newRefresh string, err error)
}

type ClientService interface {
	Create(ctx context.Context, op Identity, c *domain.Client) error
	Get(ctx context.Context, id string) (*domain.Client, error)
	FindByNationalID(ctx context.Context, nationalID string) (*domain.Client, error)
	Update(ctx context.Context, op Identity, c *domain.Client) error
	List(ctx context.Context, query string, page, pageSize int32) ([]domain.Client, int32, error)
}

type CostumeService interface {
	Create(ctx context.Context, op Identity, c *domain.Costume, pieces []domain.CostumePiece) error
	Get(ctx context.Context, id string) (*domain.Costume, []domain.CostumePiece, error)
	Update(ctx context.Context, op Identity, c *domain.Costume) error
	Deactivate(ctx context.Context, op Identity, id string) error
	List(ctx context.Context, activeOnly bool, page, pageSize int32) ([]domain.Costume, int32, error)
}

type SeasonService interface {
	Create(ctx context.Context, op Identity, s *domain.Season) error
	Update(ctx context.Context, op Identity, s *domain.Season) error
	List(ctx context.Context) ([]domain.Season, error)
}

type ReportService interface {
	DailyCash(ctx context.Context, day time.Time) ([]domain.MethodSummary, error)
}
