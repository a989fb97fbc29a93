package create_reservation

import (
	"github.com/google/uuid"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/internal/service/reservations/models"
	createReservation "github.com/m04kA/SMC-RentalService/internal/usecase/create_reservation"
)

// CreateReservationRequest HTTP request model
type CreateReservationRequest struct {
	StartDate     string                 `json:"startDate"` // RFC3339 или "2025-06-01"
	EndDate       string                 `json:"endDate"`
	CustomerName  string                 `json:"customerName"`
	CustomerEmail string                 `json:"customerEmail,omitempty"`
	Notes         *string                `json:"notes,omitempty"`
	Lines         []handlers.LineRequest `json:"lines"`
}

// CreateReservationResponse HTTP response model
type CreateReservationResponse struct {
	*models.ReservationResponse
	Currency string                     `json:"currency"`
	Warnings []handlers.WarningResponse `json:"warnings"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateReservationRequest) ToUseCaseRequest(storeID uuid.UUID) (*createReservation.Request, error) {
	start, err := handlers.ParseRentalTime(r.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := handlers.ParseRentalTime(r.EndDate)
	if err != nil {
		return nil, err
	}

	return &createReservation.Request{
		StoreID:       storeID,
		StartDate:     start,
		EndDate:       end,
		CustomerName:  r.CustomerName,
		CustomerEmail: r.CustomerEmail,
		Notes:         r.Notes,
		Lines:         handlers.ToDomainLines(r.Lines),
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createReservation.Response) *CreateReservationResponse {
	reservation := &domain.Reservation{
		ID:            resp.ID,
		StoreID:       resp.StoreID,
		Number:        resp.Number,
		CustomerName:  resp.CustomerName,
		CustomerEmail: resp.CustomerEmail,
		StartDate:     resp.StartDate,
		EndDate:       resp.EndDate,
		Status:        domain.ReservationStatus(resp.Status),
		Items:         resp.Items,
		Subtotal:      resp.Subtotal,
		Notes:         resp.Notes,
		CreatedAt:     resp.CreatedAt,
		UpdatedAt:     resp.UpdatedAt,
	}

	return &CreateReservationResponse{
		ReservationResponse: models.FromDomainReservation(reservation),
		Currency:            resp.Currency,
		Warnings:            handlers.FromWarnings(resp.Warnings),
	}
}
