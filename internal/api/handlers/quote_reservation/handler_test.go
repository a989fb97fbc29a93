package quote_reservation

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
	"github.com/m04kA/SMC-RentalService/internal/engine/pricing"
	"github.com/m04kA/SMC-RentalService/internal/engine/quote"
	quoteReservation "github.com/m04kA/SMC-RentalService/internal/usecase/quote_reservation"
)

type MockUseCase struct {
	mock.Mock
}

func (m *MockUseCase) Execute(ctx context.Context, req *quoteReservation.Request) (*quoteReservation.Response, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*quoteReservation.Response), args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func serve(h *Handler, storeID, body string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/stores/{storeId}/reservations/quote", h.Handle).Methods(http.MethodPost)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/stores/"+storeID+"/reservations/quote", strings.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHandler_Success(t *testing.T) {
	storeID := uuid.New()
	productID := uuid.New()
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 4, 0, 0, 0, 0, time.UTC)

	uc := new(MockUseCase)
	uc.On("Execute", mock.Anything, mock.MatchedBy(func(req *quoteReservation.Request) bool {
		return req.StoreID == storeID && req.StartDate.Equal(start) && req.EndDate.Equal(end) &&
			len(req.Lines) == 1 && *req.Lines[0].ProductID == productID && req.Lines[0].Quantity == 2
	})).Return(&quoteReservation.Response{
		StoreID:   storeID,
		Currency:  "EUR",
		StartDate: start,
		EndDate:   end,
		Lines: []quote.Line{{
			LineID:      "l1",
			ProductID:   &productID,
			Name:        "Kayak",
			Quantity:    2,
			BillingUnit: domain.BillingDay,
			Price: pricing.Resolution{
				Computed:        true,
				Duration:        3,
				BasePrice:       decimal.NewFromInt(10),
				CalculatedPrice: decimal.NewFromInt(30),
				EffectivePrice:  decimal.NewFromInt(30),
			},
			Total:     decimal.NewFromInt(60),
			Available: 1,
		}},
		Subtotal: decimal.NewFromInt(60),
		Warnings: []availability.Warning{{ProductID: productID, ProductName: "Kayak", Requested: 2, Available: 1, ConflictingReservations: 1}},
	}, nil)

	body := fmt.Sprintf(`{"startDate":"2025-06-01","endDate":"2025-06-04T00:00:00Z","lines":[{"id":"l1","productId":"%s","quantity":2}]}`, productID)
	w := serve(NewHandler(uc, nopLogger{}), storeID.String(), body)

	require.Equal(t, http.StatusOK, w.Code)

	var resp QuoteResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "EUR", resp.Currency)
	require.Len(t, resp.Lines, 1)
	assert.Equal(t, 3, resp.Lines[0].Duration)
	assert.True(t, decimal.NewFromInt(60).Equal(resp.Lines[0].Total))
	assert.Equal(t, map[string]string{}, resp.Lines[0].SelectedAttributes)
	require.Len(t, resp.Warnings, 1)
	assert.Equal(t, 1, resp.Warnings[0].Available)
	assert.NotNil(t, resp.Products)
	uc.AssertExpectations(t)
}

func TestHandler_BadRequests(t *testing.T) {
	h := NewHandler(new(MockUseCase), nopLogger{})

	tests := []struct {
		name    string
		storeID string
		body    string
	}{
		{name: "invalid store id", storeID: "abc", body: `{}`},
		{name: "malformed body", storeID: uuid.NewString(), body: `{"startDate":`},
		{name: "invalid date", storeID: uuid.NewString(), body: `{"startDate":"01.06.2025","endDate":"2025-06-04"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(h, tt.storeID, tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestHandler_UseCaseErrors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{name: "invalid input", err: fmt.Errorf("%w: empty lines", quoteReservation.ErrInvalidInput), status: http.StatusBadRequest},
		{name: "store not found", err: quoteReservation.ErrStoreNotFound, status: http.StatusNotFound},
		{name: "store inactive", err: quoteReservation.ErrStoreInactive, status: http.StatusBadRequest},
		{name: "product not found", err: quoteReservation.ErrProductNotFound, status: http.StatusNotFound},
		{name: "internal", err: quoteReservation.ErrInternal, status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := new(MockUseCase)
			uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.err)

			w := serve(NewHandler(uc, nopLogger{}), uuid.NewString(), `{"startDate":"2025-06-01","endDate":"2025-06-02","lines":[]}`)
			assert.Equal(t, tt.status, w.Code)
		})
	}
}
