package reservations

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	reservationRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-RentalService/internal/service/reservations/models"
)

// Service сервис для работы с бронированиями
type Service struct {
	reservationRepo ReservationRepository
	txManager       TransactionManager
	logger          Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	reservationRepo ReservationRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		txManager:       txManager,
		logger:          logger,
	}
}

// GetByID получает бронирование магазина по ID
func (s *Service) GetByID(ctx context.Context, storeID, id uuid.UUID) (*models.ReservationResponse, error) {
	s.logger.Info("GetByID: fetching reservation id=%s for store=%s", id, storeID)

	reservation, err := s.reservationRepo.GetByID(ctx, storeID, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("GetByID: reservation id=%s not found", id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("GetByID: repository error for reservation id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %w", ErrInternal, err)
	}

	return models.FromDomainReservation(reservation), nil
}

// GetStoreReservations получает бронирования магазина с фильтрацией по периоду и статусам
// Без статусов и IncludeInactive возвращаются только активные бронирования
func (s *Service) GetStoreReservations(ctx context.Context, req *models.GetStoreReservationsRequest) (*models.ReservationListResponse, error) {
	s.logger.Info("GetStoreReservations: fetching reservations for store=%s, statuses=%v, includeInactive=%t",
		req.StoreID, req.Statuses, req.IncludeInactive)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetStoreReservations: invalid filter for store=%s: %v", req.StoreID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if filter.From != nil && filter.To != nil && !filter.To.After(*filter.From) {
		return nil, fmt.Errorf("%w: 'to' must be after 'from'", ErrInvalidInput)
	}

	var reservations []*domain.Reservation
	err = s.txManager.DoReadOnly(ctx, func(ctx context.Context) error {
		var err error
		reservations, err = s.reservationRepo.GetByStoreWithFilter(ctx, filter)
		return err
	})
	if err != nil {
		s.logger.Error("GetStoreReservations: repository error for store=%s: %v", req.StoreID, err)
		return nil, fmt.Errorf("%w: GetStoreReservations - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("GetStoreReservations: fetched %d reservations for store=%s", len(reservations), req.StoreID)
	return models.FromDomainReservationList(reservations), nil
}

// UpdateStatus обновляет статус бронирования
// Завершенные, отмененные и отклоненные бронирования не меняются
func (s *Service) UpdateStatus(ctx context.Context, storeID, id uuid.UUID, req *models.UpdateStatusRequest) (*models.ReservationResponse, error) {
	s.logger.Info("UpdateStatus: updating reservation id=%s to status=%s", id, req.Status)

	newStatus, err := models.ToDomainReservationStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for reservation id=%s", req.Status, id)
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	var updated *domain.Reservation
	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		reservation, err := s.reservationRepo.GetByID(ctx, storeID, id)
		if err != nil {
			return err
		}

		if reservation.Status.IsTerminal() && reservation.Status != newStatus {
			return fmt.Errorf("%w: current status %s", ErrStatusLocked, reservation.Status)
		}

		if err := s.reservationRepo.UpdateStatus(ctx, storeID, id, newStatus); err != nil {
			return err
		}

		reservation.Status = newStatus
		updated = reservation
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, reservationRepo.ErrReservationNotFound):
			s.logger.Warn("UpdateStatus: reservation id=%s not found", id)
			return nil, ErrReservationNotFound
		case errors.Is(err, ErrStatusLocked):
			s.logger.Warn("UpdateStatus: reservation id=%s: %v", id, err)
			return nil, err
		default:
			s.logger.Error("UpdateStatus: repository error for reservation id=%s: %v", id, err)
			return nil, fmt.Errorf("%w: UpdateStatus - repository error: %w", ErrInternal, err)
		}
	}

	s.logger.Info("UpdateStatus: reservation id=%s now has status=%s", id, newStatus)
	return models.FromDomainReservation(updated), nil
}
