package quote_reservation

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
	quoteReservation "github.com/m04kA/SMC-RentalService/internal/usecase/quote_reservation"
)

const (
	msgInvalidStoreID     = "некорректный ID магазина"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается RFC3339 или YYYY-MM-DD"
	msgInvalidInput       = "некорректные данные черновика бронирования"
	msgStoreNotFound      = "магазин не найден"
	msgStoreInactive      = "магазин не принимает бронирования"
	msgProductNotFound    = "товар не найден"
)

type Handler struct {
	useCase QuoteReservationUseCase
	logger  Logger
}

func NewHandler(useCase QuoteReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/stores/{storeId}/reservations/quote
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	storeID, err := handlers.PathUUID(r, "storeId")
	if err != nil {
		h.logger.Warn("POST /reservations/quote - Invalid store ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStoreID)
		return
	}

	var req QuoteRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations/quote - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(storeID)
	if err != nil {
		h.logger.Warn("POST /reservations/quote - Failed to parse dates: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, quoteReservation.ErrInvalidInput):
			h.logger.Warn("POST /reservations/quote - Invalid input: store_id=%s, error=%v", storeID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, quoteReservation.ErrStoreNotFound):
			h.logger.Warn("POST /reservations/quote - Store not found: store_id=%s", storeID)
			handlers.RespondNotFound(w, msgStoreNotFound)

		case errors.Is(err, quoteReservation.ErrStoreInactive):
			h.logger.Warn("POST /reservations/quote - Store inactive: store_id=%s", storeID)
			handlers.RespondBadRequest(w, msgStoreInactive)

		case errors.Is(err, quoteReservation.ErrProductNotFound):
			h.logger.Warn("POST /reservations/quote - Product not found: store_id=%s, error=%v", storeID, err)
			handlers.RespondNotFound(w, msgProductNotFound)

		default:
			h.logger.Error("POST /reservations/quote - Failed to build quote: store_id=%s, error=%v", storeID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservations/quote - Quote built: store_id=%s, lines=%d, warnings=%d",
		storeID, len(result.Lines), len(result.Warnings))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
