package create_reservation

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
	createReservation "github.com/m04kA/SMC-RentalService/internal/usecase/create_reservation"
)

const (
	msgInvalidStoreID       = "некорректный ID магазина"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidDate          = "некорректный формат даты, ожидается RFC3339 или YYYY-MM-DD"
	msgInvalidInput         = "некорректные данные бронирования"
	msgStoreNotFound        = "магазин не найден"
	msgStoreInactive        = "магазин не принимает бронирования"
	msgProductNotFound      = "товар не найден"
	msgQuantityExceedsLimit = "количество превышает доступное для выбранной комбинации"
)

type Handler struct {
	useCase CreateReservationUseCase
	logger  Logger
}

func NewHandler(useCase CreateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/stores/{storeId}/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	storeID, err := handlers.PathUUID(r, "storeId")
	if err != nil {
		h.logger.Warn("POST /reservations - Invalid store ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStoreID)
		return
	}

	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(storeID)
	if err != nil {
		h.logger.Warn("POST /reservations - Failed to parse dates: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createReservation.ErrInvalidInput):
			h.logger.Warn("POST /reservations - Invalid input: store_id=%s, error=%v", storeID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createReservation.ErrStoreNotFound):
			h.logger.Warn("POST /reservations - Store not found: store_id=%s", storeID)
			handlers.RespondNotFound(w, msgStoreNotFound)

		case errors.Is(err, createReservation.ErrStoreInactive):
			h.logger.Warn("POST /reservations - Store inactive: store_id=%s", storeID)
			handlers.RespondBadRequest(w, msgStoreInactive)

		case errors.Is(err, createReservation.ErrProductNotFound):
			h.logger.Warn("POST /reservations - Product not found: store_id=%s, error=%v", storeID, err)
			handlers.RespondNotFound(w, msgProductNotFound)

		case errors.Is(err, createReservation.ErrQuantityExceedsCapacity):
			h.logger.Warn("POST /reservations - Quantity exceeds capacity: store_id=%s, error=%v", storeID, err)
			handlers.RespondConflict(w, msgQuantityExceedsLimit)

		default:
			h.logger.Error("POST /reservations - Failed to create reservation: store_id=%s, error=%v", storeID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservations - Reservation created successfully: reservation_id=%s, number=%s, store_id=%s",
		result.ID, result.Number, storeID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
