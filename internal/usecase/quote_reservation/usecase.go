package quote_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/internal/engine/combination"
	"github.com/m04kA/SMC-RentalService/internal/engine/quote"
	storeClient "github.com/m04kA/SMC-RentalService/internal/integrations/storeservice"
)

// UseCase use case для расчета черновика бронирования без сохранения
type UseCase struct {
	storeClient     StoreServiceClient
	productLoader   ProductLoader
	reservationRepo ReservationRepository
	txManager       TransactionManager
	metrics         Metrics
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	storeClient StoreServiceClient,
	productLoader ProductLoader,
	reservationRepo ReservationRepository,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		storeClient:     storeClient,
		productLoader:   productLoader,
		reservationRepo: reservationRepo,
		txManager:       txManager,
		metrics:         metrics,
		logger:          logger,
	}
}

// Execute рассчитывает цены, ограничения количества и доступность строк на период
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("QuoteReservation: store=%s, period=%s..%s, lines=%d",
		req.StoreID, req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat), len(req.Lines))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("QuoteReservation: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем магазин
	store, err := uc.storeClient.GetActiveStore(ctx, req.StoreID)
	if err != nil {
		switch {
		case errors.Is(err, storeClient.ErrStoreNotFound):
			return nil, ErrStoreNotFound
		case errors.Is(err, storeClient.ErrStoreInactive):
			return nil, ErrStoreInactive
		}
		uc.logger.Error("QuoteReservation: failed to get store id=%s: %v", req.StoreID, err)
		return nil, fmt.Errorf("%w: failed to get store: %w", ErrInternal, err)
	}

	// 3. Загружаем товары строк
	ids := productIDs(req.Lines)
	products, err := uc.productLoader.LoadMany(ctx, req.StoreID, ids)
	if err != nil {
		uc.logger.Error("QuoteReservation: failed to load products: %v", err)
		return nil, fmt.Errorf("%w: failed to load products: %w", ErrInternal, err)
	}
	if id, missing := missingProduct(ids, products); missing {
		uc.logger.Warn("QuoteReservation: product id=%s not found in store=%s", id, req.StoreID)
		return nil, fmt.Errorf("%w: %s", ErrProductNotFound, id)
	}

	// 4. Получаем активные бронирования, пересекающиеся с периодом
	period := domain.Period{Start: req.StartDate, End: req.EndDate}
	var others []*domain.Reservation
	err = uc.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		var err error
		others, err = uc.reservationRepo.GetByStoreWithFilter(txCtx, domain.StoreReservationsFilter{
			StoreID: req.StoreID,
			From:    &period.Start,
			To:      &period.End,
		})
		return err
	})
	if err != nil {
		uc.logger.Error("QuoteReservation: failed to get reservations: %v", err)
		return nil, fmt.Errorf("%w: failed to get reservations: %w", ErrInternal, err)
	}

	// 5. Рассчитываем черновик
	q, err := quote.Build(period, products, req.Lines, derefReservations(others))
	if err != nil {
		uc.logger.Warn("QuoteReservation: quote rejected: %v", err)
		return nil, mapQuoteError(err)
	}

	if len(q.Warnings) > 0 {
		uc.metrics.AddAvailabilityWarnings(len(q.Warnings))
		uc.logger.Info("QuoteReservation: %d availability warnings for store=%s", len(q.Warnings), req.StoreID)
	}

	return &Response{
		StoreID:   req.StoreID,
		Currency:  store.Currency,
		StartDate: period.Start,
		EndDate:   period.End,
		Lines:     q.Lines,
		Subtotal:  q.Subtotal,
		Warnings:  q.Warnings,
		Products:  q.Products,
	}, nil
}

// mapQuoteError переводит ошибки расчета в ошибки use case
func mapQuoteError(err error) error {
	switch {
	case errors.Is(err, quote.ErrUnknownProduct):
		return fmt.Errorf("%w: %v", ErrProductNotFound, err)
	case errors.Is(err, combination.ErrUnknownAttribute), errors.Is(err, quote.ErrCustomLineWithoutPrice):
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	default:
		return fmt.Errorf("%w: %w", ErrInternal, err)
	}
}

func derefReservations(reservations []*domain.Reservation) []domain.Reservation {
	result := make([]domain.Reservation, 0, len(reservations))
	for _, r := range reservations {
		result = append(result, *r)
	}
	return result
}
