package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"sisdisfraz-backend/internal/domain"
	"sisdisfraz-backend/internal/service"
)

type MockRentalService struct {
	mock.Mock
}

func (m *MockRentalService) RegisterRental(ctx context.Context, op service.Identity, in service.RegisterRentalInput) (*service.RentalReceipt, error) {
	args := m.Called(ctx, op, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.RentalReceipt), args.Error(1)
}
func (m *MockRentalService) ActivateReservation(ctx context.Context, op service.Identity, rentalID string, payment *service.RegisterPaymentInput) (*domain.Rental, error) {
	args := m.Called(ctx, op, rentalID, payment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}
func (m *MockRentalService) CancelReservation(ctx context.Context, op service.Identity, rentalID string, reason string) (*domain.Rental, error) {
	args := m.Called(ctx, op, rentalID, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}
func (m *MockRentalService) ProcessReturn(ctx context.Context, op service.Identity, rentalID string, in service.ProcessReturnInput) (*domain.Rental, error) {
	args := m.Called(ctx, op, rentalID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}
func (m *MockRentalService) RegisterPayment(ctx context.Context, op service.Identity, rentalID string, in service.RegisterPaymentInput) (*domain.Payment, error) {
	args := m.Called(ctx, op, rentalID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}
func (m *MockRentalService) GetRental(ctx context.Context, rentalID string) (*domain.Rental, error) {
	args := m.Called(ctx, rentalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}
func (m *MockRentalService) GetRentalPieces(ctx context.Context, rentalID string) ([]domain.RentalPiece, error) {
	args := m.Called(ctx, rentalID)
	return args.Get(0).([]domain.RentalPiece), args.Error(1)
}
func (m *MockRentalService) ListRentals(ctx context.Context, status string, page, pageSize int32) ([]domain.Rental, int32, error) {
	args := m.Called(ctx, status, page, pageSize)
	return args.Get(0).([]domain.Rental), args.Get(1).(int32), args.Error(2)
}

var testIdentity = service.Identity{ProfileID: "op-1", Name: "Rosa", Role: domain.RoleOperator}

func authedRequest(method, target string, body []byte) *http.Request {
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	return req.WithContext(context.WithValue(req.Context(), identityKey, testIdentity))
}

func TestRentalHandler_Register(t *testing.T) {
	t.Run("Success returns 201 with receipt", func(t *testing.T) {
		svc := new(MockRentalService)
		handler := NewRentalHandler(svc)

		receipt := &service.RentalReceipt{
			RentalID:      "r-1",
			Status:        domain.RentalStatusActive,
			PriceCents:    10000,
			SeasonApplied: domain.SeasonStandard,
		}
		svc.On("RegisterRental", mock.Anything, testIdentity, mock.AnythingOfType("service.RegisterRentalInput")).
			Return(receipt, nil)

		body, _ := json.Marshal(service.RegisterRentalInput{
			ClientID:     "cl-1",
			CostumeID:    "co-1",
			PickupDate:   "2026-05-10",
			DueDate:      "2026-05-13",
			DepositCents: 10000,
			Method:       domain.PaymentMethodCash,
		})
		rr := httptest.NewRecorder()
		handler.Register(rr, authedRequest(http.MethodPost, "/api/v1/rentals", body))

		assert.Equal(t, http.StatusCreated, rr.Code)
		var got service.RentalReceipt
		assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		assert.Equal(t, "r-1", got.RentalID)
	})

	t.Run("Stock conflict carries the suggestion", func(t *testing.T) {
		svc := new(MockRentalService)
		handler := NewRentalHandler(svc)
		svc.On("RegisterRental", mock.Anything, testIdentity, mock.Anything).
			Return(nil, service.Conflict("no stock available", "puedes crear una reserva"))

		rr := httptest.NewRecorder()
		handler.Register(rr, authedRequest(http.MethodPost, "/api/v1/rentals", []byte(`{}`)))

		assert.Equal(t, http.StatusConflict, rr.Code)
		var body map[string]string
		assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
		assert.Equal(t, "no stock available", body["error"])
		assert.Contains(t, body["suggestion"], "reserva")
	})

	t.Run("Malformed JSON is 400", func(t *testing.T) {
		svc := new(MockRentalService)
		handler := NewRentalHandler(svc)

		rr := httptest.NewRecorder()
		handler.Register(rr, authedRequest(http.MethodPost, "/api/v1/rentals", []byte(`{not json`)))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		svc.AssertNotCalled(t, "RegisterRental", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Missing identity is 401", func(t *testing.T) {
		svc := new(MockRentalService)
		handler := NewRentalHandler(svc)

		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/rentals", bytes.NewReader([]byte(`{}`)))
		handler.Register(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestRentalHandler_Return(t *testing.T) {
	svc := new(MockRentalService)
	handler := NewRentalHandler(svc)

	returned := &domain.Rental{ID: "r-1", Status: domain.RentalStatusReturned}
	svc.On("ProcessReturn", mock.Anything, testIdentity, "r-1", mock.AnythingOfType("service.ProcessReturnInput")).
		Return(returned, nil)

	body, _ := json.Marshal(service.ProcessReturnInput{Destination: "direct_stock"})
	req := authedRequest(http.MethodPost, "/api/v1/rentals/r-1/return", body)
	req = mux.SetURLVars(req, map[string]string{"id": "r-1"})

	rr := httptest.NewRecorder()
	handler.Return(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	var got domain.Rental
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, domain.RentalStatusReturned, got.Status)
}

func TestRentalHandler_Cancel(t *testing.T) {
	svc := new(MockRentalService)
	handler := NewRentalHandler(svc)

	cancelled := &domain.Rental{ID: "r-1", Status: domain.RentalStatusCancelled}
	svc.On("CancelReservation", mock.Anything, testIdentity, "r-1", "client never came").
		Return(cancelled, nil)

	req := authedRequest(http.MethodPost, "/api/v1/rentals/r-1/cancel", []byte(`{"reason":"client never came"}`))
	req = mux.SetURLVars(req, map[string]string{"id": "r-1"})

	rr := httptest.NewRecorder()
	handler.Cancel(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	var got domain.Rental
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, domain.RentalStatusCancelled, got.Status)
}

func TestRentalHandler_Get_NotFound(t *testing.T) {
	svc := new(MockRentalService)
	handler := NewRentalHandler(svc)
	svc.On("GetRental", mock.Anything, "missing").Return(nil, service.NotFound("rental not found"))

	req := authedRequest(http.MethodGet, "/api/v1/rentals/missing", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "missing"})

	rr := httptest.NewRecorder()
	handler.Get(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}
