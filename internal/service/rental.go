package service

import (
	"context"
	"errors"
	"time"

	"sisdisfraz-backend/internal/domain"
	"sisdisfraz-backend/internal/logger"
	"sisdisfraz-backend/internal/repository"
	"sisdisfraz-backend/internal/utils"
)

const conflictSuggestion = "puedes crear una reserva o solicitar el traje a un proveedor"

type rentalService struct {
	rentalRepo  repository.RentalRepository
	clientRepo  repository.ClientRepository
	costumeRepo repository.CostumeRepository
	paymentRepo repository.PaymentRepository
	pricing     PricingService
}

func NewRentalService(
	rentalRepo repository.RentalRepository,
	clientRepo repository.ClientRepository,
	costumeRepo repository.CostumeRepository,
	paymentRepo repository.PaymentRepository,
	pricing PricingService,
) RentalService {
	return &rentalService{
		rentalRepo:  rentalRepo,
		clientRepo:  clientRepo,
		costumeRepo: costumeRepo,
		paymentRepo: paymentRepo,
		pricing:     pricing,
	}
}

// RegisterRental runs the full registration pipeline: validators,
// reference checks, stock gate, pricing, payment policy, then the
// atomic write sequence. Every check fails fast; nothing is written
// until all of them pass, and the write sequence itself is one
// transaction in the repository.
func (s *rentalService) RegisterRental(ctx context.Context, op Identity, in RegisterRentalInput) (*RentalReceipt, error) {
	if !op.Role.CanWrite() {
		return nil, Forbidden("role may not register rentals")
	}

	if in.ClientID == "" || in.CostumeID == "" || in.PickupDate == "" || in.DueDate == "" {
		return nil, BadRequest("missing required fields: client_id, costume_id, pickup_date, due_date")
	}
	pickup, err := utils.ParseDate(in.PickupDate)
	if err != nil {
		return nil, BadRequest("invalid pickup_date: use YYYY-MM-DD")
	}
	due, err := utils.ParseDate(in.DueDate)
	if err != nil {
		return nil, BadRequest("invalid due_date: use YYYY-MM-DD")
	}
	if !utils.ValidDateOrder(pickup, due) {
		return nil, BadRequest("due_date must not precede pickup_date")
	}
	if !domain.ValidPaymentMethod(in.Method) {
		return nil, BadRequest("unknown payment method %q", in.Method)
	}
	if in.DepositCents < 0 {
		return nil, BadRequest("deposit_cents must not be negative")
	}

	client, err := s.clientRepo.GetByID(ctx, in.ClientID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, NotFound("client not found")
		}
		return nil, err
	}

	costume, err := s.costumeRepo.GetByID(ctx, in.CostumeID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, NotFound("costume not found or inactive")
		}
		return nil, err
	}
	if !costume.Active {
		return nil, NotFound("costume not found or inactive")
	}

	// Walk-in rentals need a unit on the shelf. Reservations are taken
	// against future stock and skip the gate; they consume a unit at
	// activation time instead. This pre-check gives a friendly error;
	// the authoritative gate is the conditional decrement inside the
	// transaction.
	if !in.Reservation && costume.StockAvailable < 1 {
		return nil, Conflict("no stock available", conflictSuggestion)
	}

	price, season, err := s.pricing.ResolvePrice(ctx, costume, pickup)
	if err != nil {
		return nil, err
	}

	deposit := in.DepositCents
	if !in.Reservation && deposit != price {
		if deposit < price {
			return nil, BadRequest("walk-in rental requires full payment of S/ %s, missing S/ %s",
				utils.FormatCents(price), utils.FormatCents(price-deposit))
		}
		return nil, BadRequest("walk-in rental payment of S/ %s exceeds the price S/ %s",
			utils.FormatCents(deposit), utils.FormatCents(price))
	}
	if in.Reservation {
		if min := MinReservationDepositCents(price); deposit < min {
			return nil, BadRequest("reservation requires a minimum deposit of 30%% (S/ %s)", utils.FormatCents(min))
		}
	}
	balance := price - deposit
	if balance < 0 {
		balance = 0
	}

	pieces, err := s.costumeRepo.GetPieces(ctx, costume.ID)
	if err != nil {
		return nil, err
	}

	status := domain.RentalStatusActive
	concept := "Pago completo alquiler contado"
	kind := domain.NotificationRentalConfirm
	if in.Reservation {
		status = domain.RentalStatusReserved
		concept = "Adelanto de reserva"
		kind = domain.NotificationReservationConfirm
	}

	rental := &domain.Rental{
		ClientID:            client.ID,
		CostumeID:           costume.ID,
		OperatorID:          op.ProfileID,
		Reservation:         in.Reservation,
		Status:              status,
		SeasonApplied:       season,
		PickupDate:          pickup,
		DueDate:             due,
		PriceCents:          price,
		DepositCents:        deposit,
		BalanceCents:        balance,
		TotalCollectedCents: deposit,
		IDPhotoURL:          in.IDPhotoURL,
		Notes:               in.Notes,
	}

	checklist := make([]domain.RentalPiece, 0, len(pieces))
	for _, p := range pieces {
		checklist = append(checklist, domain.RentalPiece{
			PieceID:      p.ID,
			PieceName:    p.Name,
			OutCondition: domain.PieceConditionGood,
		})
	}

	rec := &domain.RentalRecord{
		Rental: rental,
		Payment: &domain.Payment{
			OperatorID:   op.ProfileID,
			Method:       in.Method,
			AmountCents:  deposit,
			Concept:      concept,
			Reference:    in.Reference,
			OriginNumber: in.OriginNumber,
		},
		Pieces: checklist,
		Audit: &domain.AuditEntry{
			ProfileID: op.ProfileID,
			Action:    domain.AuditActionRentalCreated,
			Entity:    "rentals",
			After: map[string]any{
				"client_id":   client.ID,
				"costume_id":  costume.ID,
				"price_cents": price,
				"reservation": in.Reservation,
			},
		},
		Notification: &domain.Notification{
			ClientID: client.ID,
			Phone:    client.Phone,
			Kind:     kind,
			Message: utils.ComposeConfirmation(utils.ConfirmationParams{
				ClientName:   client.Name,
				CostumeName:  costume.Name,
				Size:         costume.Size,
				PickupDate:   pickup,
				DueDate:      due,
				TotalCents:   price,
				PaidCents:    deposit,
				BalanceCents: balance,
				Reservation:  in.Reservation,
			}),
		},
		ConsumeStock: !in.Reservation,
	}

	if err := s.rentalRepo.CreateRecorded(ctx, rec); err != nil {
		if errors.Is(err, repository.ErrNoStock) {
			return nil, Conflict("no stock available", conflictSuggestion)
		}
		return nil, err
	}

	logger.Info("rental registered",
		"rental_id", rental.ID, "client_id", client.ID, "costume_id", costume.ID,
		"reservation", in.Reservation, "season", season, "price_cents", price)

	return &RentalReceipt{
		RentalID:           rental.ID,
		Status:             rental.Status,
		PriceCents:         price,
		SeasonApplied:      season,
		DepositCents:       deposit,
		BalanceCents:       balance,
		NotificationQueued: true,
	}, nil
}

// ActivateReservation turns a reserved rental into an active one when
// the client picks the costume up, consuming one stock unit and, as the
// shop requires, collecting the outstanding balance in full.
func (s *rentalService) ActivateReservation(ctx context.Context, op Identity, rentalID string, payment *RegisterPaymentInput) (*domain.Rental, error) {
	if !op.Role.CanWrite() {
		return nil, Forbidden("role may not activate reservations")
	}

	rental, err := s.rentalRepo.GetByID(ctx, rentalID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, NotFound("rental not found")
		}
		return nil, err
	}
	if rental.Status != domain.RentalStatusReserved {
		return nil, BadRequest("rental is not a pending reservation")
	}

	var paid int64
	var pay *domain.Payment
	if payment != nil {
		if !domain.ValidPaymentMethod(payment.Method) {
			return nil, BadRequest("unknown payment method %q", payment.Method)
		}
		if payment.AmountCents <= 0 {
			return nil, BadRequest("amount_cents must be positive")
		}
		paid = payment.AmountCents
		pay = &domain.Payment{
			OperatorID:   op.ProfileID,
			Method:       payment.Method,
			AmountCents:  paid,
			Concept:      "Saldo al recoger",
			Reference:    payment.Reference,
			OriginNumber: payment.OriginNumber,
		}
	}
	if rental.BalanceCents-paid != 0 {
		return nil, BadRequest("pickup requires settling the balance of S/ %s", utils.FormatCents(rental.BalanceCents))
	}

	rec := &domain.RentalRecord{
		Rental:  rental,
		Payment: pay,
		Audit: &domain.AuditEntry{
			ProfileID: op.ProfileID,
			Action:    domain.AuditActionRentalActivated,
			Entity:    "rentals",
			RecordID:  rental.ID,
			Before:    map[string]any{"status": domain.RentalStatusReserved},
			After:     map[string]any{"status": domain.RentalStatusActive, "paid_cents": paid},
		},
	}

	if err := s.rentalRepo.ActivateReservation(ctx, rec); err != nil {
		if errors.Is(err, repository.ErrNoStock) {
			return nil, Conflict("no stock available to honor the reservation", conflictSuggestion)
		}
		if errors.Is(err, repository.ErrNotFound) {
			return nil, BadRequest("rental is not a pending reservation")
		}
		return nil, err
	}

	return s.rentalRepo.GetByID(ctx, rentalID)
}

// CancelReservation abandons a pending reservation. The deposit stays
// with the shop; the reservation never consumed a stock unit, so there
// is nothing to restore.
func (s *rentalService) CancelReservation(ctx context.Context, op Identity, rentalID string, reason string) (*domain.Rental, error) {
	if !op.Role.CanWrite() {
		return nil, Forbidden("role may not cancel reservations")
	}

	rental, err := s.rentalRepo.GetByID(ctx, rentalID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, NotFound("rental not found")
		}
		return nil, err
	}
	if rental.Status != domain.RentalStatusReserved {
		return nil, BadRequest("only a pending reservation can be cancelled")
	}

	rec := &domain.RentalRecord{
		Rental: rental,
		Audit: &domain.AuditEntry{
			ProfileID: op.ProfileID,
			Action:    domain.AuditActionRentalCancelled,
			Entity:    "rentals",
			RecordID:  rental.ID,
			Before:    map[string]any{"status": domain.RentalStatusReserved},
			After:     map[string]any{"status": domain.RentalStatusCancelled, "reason": reason},
		},
	}
	if err := s.rentalRepo.CancelReservation(ctx, rec); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, BadRequest("only a pending reservation can be cancelled")
		}
		return nil, err
	}

	rental.Status = domain.RentalStatusCancelled
	rental.BalanceCents = 0
	logger.Info("reservation cancelled", "rental_id", rental.ID, "operator_id", op.ProfileID)
	return rental, nil
}

// ProcessReturn is the mirror transaction: checklist completion, damage
// charges, an optional payment covering them, and the stock restore or
// laundry intake, all recorded atomically.
func (s *rentalService) ProcessReturn(ctx context.Context, op Identity, rentalID string, in ProcessReturnInput) (*domain.Rental, error) {
	if !op.Role.CanWrite() {
		return nil, Forbidden("role may not process returns")
	}
	if in.Destination != "laundry" && in.Destination != "direct_stock" {
		return nil, BadRequest("destination must be laundry or direct_stock")
	}

	rental, err := s.rentalRepo.GetByID(ctx, rentalID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, NotFound("rental not found")
		}
		return nil, err
	}
	if rental.Status != domain.RentalStatusActive && rental.Status != domain.RentalStatusOverdue {
		return nil, BadRequest("rental is not out with a client")
	}

	// The checklist rows written at registration are the authority on
	// which pieces this rental carries; a charge against any other
	// piece id must not reach the books.
	checklist, err := s.rentalRepo.GetPieces(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	onChecklist := make(map[string]bool, len(checklist))
	for _, p := range checklist {
		onChecklist[p.PieceID] = true
	}

	var damageCents int64
	seen := make(map[string]bool, len(in.Pieces))
	pieces := make([]domain.RentalPiece, 0, len(in.Pieces))
	for _, p := range in.Pieces {
		switch p.Condition {
		case domain.PieceConditionGood, domain.PieceConditionLightDamage, domain.PieceConditionNotReturned:
		default:
			return nil, BadRequest("unknown piece condition %q", p.Condition)
		}
		if !onChecklist[p.PieceID] {
			return nil, BadRequest("piece %q is not on this rental's checklist", p.PieceID)
		}
		if seen[p.PieceID] {
			return nil, BadRequest("piece %q appears more than once", p.PieceID)
		}
		seen[p.PieceID] = true
		if p.ChargedCents < 0 {
			return nil, BadRequest("charged_cents must not be negative")
		}
		if p.Condition == domain.PieceConditionGood && p.ChargedCents > 0 {
			return nil, BadRequest("a piece in good condition cannot carry a charge")
		}
		damageCents += p.ChargedCents
		pieces = append(pieces, domain.RentalPiece{
			PieceID:         p.PieceID,
			ReturnCondition: p.Condition,
			DamagePhotoURL:  p.DamagePhotoURL,
			ChargedCents:    p.ChargedCents,
		})
	}

	var damagePayment *domain.Payment
	var paid int64
	if in.Method != "" {
		if !domain.ValidPaymentMethod(in.Method) {
			return nil, BadRequest("unknown payment method %q", in.Method)
		}
		if damageCents == 0 {
			return nil, BadRequest("payment supplied but no damage charges recorded")
		}
		paid = damageCents
		damagePayment = &domain.Payment{
			OperatorID:  op.ProfileID,
			Method:      in.Method,
			AmountCents: paid,
			Concept:     "Cobro por daños",
			Reference:   in.Reference,
		}
	}

	now := time.Now()
	before := map[string]any{"status": rental.Status, "balance_cents": rental.BalanceCents}

	rental.ReturnDate = &now
	rental.DamageFeeCents += damageCents
	rental.TotalCollectedCents += paid
	rental.BalanceCents += damageCents - paid
	if rental.BalanceCents < 0 {
		rental.BalanceCents = 0
	}
	rental.Status = domain.RentalStatusReturned

	rec := &domain.ReturnRecord{
		Rental:        rental,
		Pieces:        pieces,
		DamagePayment: damagePayment,
		Audit: &domain.AuditEntry{
			ProfileID: op.ProfileID,
			Action:    domain.AuditActionRentalReturned,
			Entity:    "rentals",
			RecordID:  rental.ID,
			Before:    before,
			After: map[string]any{
				"status":           rental.Status,
				"damage_fee_cents": rental.DamageFeeCents,
				"balance_cents":    rental.BalanceCents,
				"destination":      in.Destination,
			},
		},
		RestoreStock: in.Destination == "direct_stock",
	}
	if in.Destination == "laundry" {
		status := domain.LaundryStatusReceived
		if in.Urgent {
			status = domain.LaundryStatusUrgent
		}
		rec.Laundry = &domain.LaundryItem{
			RentalID:    rental.ID,
			CostumeID:   rental.CostumeID,
			Status:      status,
			Urgent:      in.Urgent,
			ProcessedBy: op.ProfileID,
		}
	}

	if err := s.rentalRepo.RecordReturn(ctx, rec); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, BadRequest("rental is not out with a client")
		}
		return nil, err
	}

	logger.Info("rental returned",
		"rental_id", rental.ID, "damage_cents", damageCents, "destination", in.Destination)
	return rental, nil
}

// RegisterPayment appends a balance or damage payment to an existing
// rental. The repository keeps the rental balance and client lifetime
// spend in step within the same transaction.
func (s *rentalService) RegisterPayment(ctx context.Context, op Identity, rentalID string, in RegisterPaymentInput) (*domain.Payment, error) {
	if !op.Role.CanWrite() {
		return nil, Forbidden("role may not register payments")
	}
	if !domain.ValidPaymentMethod(in.Method) {
		return nil, BadRequest("unknown payment method %q", in.Method)
	}
	if in.AmountCents <= 0 {
		return nil, BadRequest("amount_cents must be positive")
	}
	if in.Concept == "" {
		return nil, BadRequest("concept is required")
	}

	rental, err := s.rentalRepo.GetByID(ctx, rentalID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, NotFound("rental not found")
		}
		return nil, err
	}
	if rental.Status == domain.RentalStatusCancelled {
		return nil, BadRequest("cancelled rentals do not accept payments")
	}

	payment := &domain.Payment{
		RentalID:     rental.ID,
		OperatorID:   op.ProfileID,
		Method:       in.Method,
		AmountCents:  in.AmountCents,
		Concept:      in.Concept,
		Reference:    in.Reference,
		OriginNumber: in.OriginNumber,
	}
	audit := &domain.AuditEntry{
		ProfileID: op.ProfileID,
		Action:    domain.AuditActionPaymentRegistered,
		Entity:    "rentals",
		After:     map[string]any{"amount_cents": in.AmountCents, "method": in.Method},
	}
	if err := s.paymentRepo.Create(ctx, payment, audit); err != nil {
		return nil, err
	}
	return payment, nil
}

func (s *rentalService) GetRental(ctx context.Context, rentalID string) (*domain.Rental, error) {
	rental, err := s.rentalRepo.GetByID(ctx, rentalID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, NotFound("rental not found")
	}
	return rental, err
}

func (s *rentalService) GetRentalPieces(ctx context.Context, rentalID string) ([]domain.RentalPiece, error) {
	return s.rentalRepo.GetPieces(ctx, rentalID)
}

func (s *rentalService) ListRentals(ctx context.Context, status string, page, pageSize int32) ([]domain.Rental, int32, error) {
	return s.rentalRepo.List(ctx, status, page, pageSize)
}
