package get_store_reservations

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
	"github.com/m04kA/SMC-RentalService/internal/service/reservations"
	"github.com/m04kA/SMC-RentalService/internal/service/reservations/models"
	"github.com/m04kA/SMC-RentalService/pkg/ptr"
)

const (
	msgInvalidStoreID = "некорректный ID магазина"
	msgInvalidFrom    = "некорректный параметр from"
	msgInvalidTo      = "некорректный параметр to"
	msgInvalidFlag    = "некорректный параметр includeInactive"
	msgInvalidFilter  = "некорректный фильтр бронирований"
)

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/stores/{storeId}/reservations?from=...&to=...&status=pending,confirmed&includeInactive=true
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	storeID, err := handlers.PathUUID(r, "storeId")
	if err != nil {
		h.logger.Warn("GET /reservations - Invalid store ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStoreID)
		return
	}

	req, msg, err := parseQuery(r, storeID)
	if err != nil {
		h.logger.Warn("GET /reservations - Invalid query: store_id=%s, error=%v", storeID, err)
		handlers.RespondBadRequest(w, msg)
		return
	}

	result, err := h.service.GetStoreReservations(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrInvalidInput):
			h.logger.Warn("GET /reservations - Invalid filter: store_id=%s, error=%v", storeID, err)
			handlers.RespondBadRequest(w, msgInvalidFilter)

		default:
			h.logger.Error("GET /reservations - Failed to get reservations: store_id=%s, error=%v", storeID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /reservations - Reservations retrieved: store_id=%s, count=%d", storeID, len(result.Reservations))
	handlers.RespondJSON(w, http.StatusOK, result)
}

// parseQuery разбирает query параметры; вторым значением возвращается сообщение для клиента
func parseQuery(r *http.Request, storeID uuid.UUID) (*models.GetStoreReservationsRequest, string, error) {
	query := r.URL.Query()
	req := &models.GetStoreReservationsRequest{StoreID: storeID}

	if raw := query.Get("from"); raw != "" {
		from, err := handlers.ParseRentalTime(raw)
		if err != nil {
			return nil, msgInvalidFrom, err
		}
		req.From = ptr.Ptr(from)
	}

	if raw := query.Get("to"); raw != "" {
		to, err := handlers.ParseRentalTime(raw)
		if err != nil {
			return nil, msgInvalidTo, err
		}
		req.To = ptr.Ptr(to)
	}

	if raw := query.Get("status"); raw != "" {
		for _, s := range strings.Split(raw, ",") {
			if s = strings.TrimSpace(s); s != "" {
				req.Statuses = append(req.Statuses, s)
			}
		}
	}

	if raw := query.Get("includeInactive"); raw != "" {
		flag, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, msgInvalidFlag, err
		}
		req.IncludeInactive = flag
	}

	return req, "", nil
}
