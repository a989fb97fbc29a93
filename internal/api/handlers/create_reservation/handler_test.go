package create_reservation

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/internal/engine/availability"
	createReservation "github.com/m04kA/SMC-RentalService/internal/usecase/create_reservation"
)

type MockUseCase struct {
	mock.Mock
}

func (m *MockUseCase) Execute(ctx context.Context, req *createReservation.Request) (*createReservation.Response, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*createReservation.Response), args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func serve(h *Handler, storeID, body string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/stores/{storeId}/reservations", h.Handle).Methods(http.MethodPost)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/stores/"+storeID+"/reservations", strings.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHandler_Created(t *testing.T) {
	storeID := uuid.New()
	productID := uuid.New()
	reservationID := uuid.New()
	now := time.Date(2025, 5, 20, 12, 0, 0, 0, time.UTC)

	uc := new(MockUseCase)
	uc.On("Execute", mock.Anything, mock.MatchedBy(func(req *createReservation.Request) bool {
		return req.StoreID == storeID && req.CustomerName == "Anna" && len(req.Lines) == 2 && req.Lines[1].IsCustom()
	})).Return(&createReservation.Response{
		ID:           reservationID,
		StoreID:      storeID,
		Number:       "RSV-20250520-ABCDEF12",
		CustomerName: "Anna",
		StartDate:    time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:      time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC),
		Status:       string(domain.StatusPending),
		Currency:     "EUR",
		Items: []domain.ReservationItem{
			{ID: uuid.New(), ProductID: &productID, Name: "Kayak", Quantity: 1, UnitPrice: decimal.NewFromInt(20), TotalPrice: decimal.NewFromInt(20), Duration: 2, BillingUnit: domain.BillingDay},
			{ID: uuid.New(), Name: "Delivery", Quantity: 1, UnitPrice: decimal.NewFromInt(5), TotalPrice: decimal.NewFromInt(5), IsCustom: true, PriceOverridden: true},
		},
		Subtotal:  decimal.NewFromInt(25),
		Warnings:  []availability.Warning{{ProductID: productID, ProductName: "Kayak", Requested: 1, Available: 0, ConflictingReservations: 3}},
		CreatedAt: now,
		UpdatedAt: now,
	}, nil)

	body := fmt.Sprintf(`{
		"startDate":"2025-06-01","endDate":"2025-06-03","customerName":"Anna",
		"lines":[{"productId":"%s","quantity":1},{"customName":"Delivery","quantity":1,"priceOverride":"5"}]
	}`, productID)
	w := serve(NewHandler(uc, nopLogger{}), storeID.String(), body)

	require.Equal(t, http.StatusCreated, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, reservationID.String(), resp["id"])
	assert.Equal(t, "RSV-20250520-ABCDEF12", resp["number"])
	assert.Equal(t, "EUR", resp["currency"])
	assert.Equal(t, "pending", resp["status"])
	assert.Len(t, resp["items"], 2)
	assert.Len(t, resp["warnings"], 1)
	uc.AssertExpectations(t)
}

func TestHandler_Errors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{name: "invalid input", err: createReservation.ErrInvalidInput, status: http.StatusBadRequest},
		{name: "store not found", err: createReservation.ErrStoreNotFound, status: http.StatusNotFound},
		{name: "store inactive", err: createReservation.ErrStoreInactive, status: http.StatusBadRequest},
		{name: "product not found", err: createReservation.ErrProductNotFound, status: http.StatusNotFound},
		{name: "capacity", err: fmt.Errorf("%w: line l1", createReservation.ErrQuantityExceedsCapacity), status: http.StatusConflict},
		{name: "internal", err: createReservation.ErrInternal, status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := new(MockUseCase)
			uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.err)

			w := serve(NewHandler(uc, nopLogger{}), uuid.NewString(),
				`{"startDate":"2025-06-01","endDate":"2025-06-02","customerName":"Anna","lines":[]}`)
			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestHandler_InvalidRequest(t *testing.T) {
	h := NewHandler(new(MockUseCase), nopLogger{})

	assert.Equal(t, http.StatusBadRequest, serve(h, "not-a-uuid", `{}`).Code)
	assert.Equal(t, http.StatusBadRequest, serve(h, uuid.NewString(), `{"unknown":true}`).Code)
	assert.Equal(t, http.StatusBadRequest, serve(h, uuid.NewString(), `{"startDate":"tomorrow","endDate":"2025-06-02"}`).Code)
}
