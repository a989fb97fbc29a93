package create_reservation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/internal/engine/combination"
	"github.com/m04kA/SMC-RentalService/internal/engine/quote"
	"github.com/m04kA/SMC-RentalService/internal/infra/events"
	storeClient "github.com/m04kA/SMC-RentalService/internal/integrations/storeservice"
)

// UseCase use case для создания бронирования
type UseCase struct {
	reservationRepo ReservationRepository
	productRepo     ProductRepository
	storeClient     StoreServiceClient
	publisher       EventPublisher
	txManager       TransactionManager
	metrics         Metrics
	timeProvider    TimeProvider
	logger          Logger
	numberPrefix    string
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	productRepo ProductRepository,
	storeClient StoreServiceClient,
	publisher EventPublisher,
	txManager TransactionManager,
	metrics Metrics,
	numberPrefix string,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		productRepo:     productRepo,
		storeClient:     storeClient,
		publisher:       publisher,
		txManager:       txManager,
		metrics:         metrics,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
		numberPrefix:    numberPrefix,
	}
}

// Execute выполняет use case создания бронирования
// Товары и пересекающиеся бронирования читаются в сериализуемой транзакции,
// чтобы два параллельных бронирования не заняли одну и ту же емкость
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateReservation: store=%s, period=%s..%s, lines=%d",
		req.StoreID, req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat), len(req.Lines))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем магазин
	store, err := uc.storeClient.GetActiveStore(ctx, req.StoreID)
	if err != nil {
		switch {
		case errors.Is(err, storeClient.ErrStoreNotFound):
			return nil, ErrStoreNotFound
		case errors.Is(err, storeClient.ErrStoreInactive):
			return nil, ErrStoreInactive
		}
		uc.logger.Error("CreateReservation: failed to get store id=%s: %v", req.StoreID, err)
		return nil, fmt.Errorf("%w: failed to get store: %w", ErrInternal, err)
	}

	period := domain.Period{Start: req.StartDate, End: req.EndDate}
	ids := productIDs(req.Lines)

	var (
		result *domain.Reservation
		q      *quote.Quote
	)

	// 4. Выполняем расчет и сохранение в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4.1. Товары читаются из БД, а не из кеша
		loaded, err := uc.productRepo.GetByIDs(txCtx, req.StoreID, ids)
		if err != nil {
			return fmt.Errorf("%w: failed to get products: %w", ErrInternal, err)
		}
		products := make(map[uuid.UUID]*domain.Product, len(loaded))
		for _, p := range loaded {
			products[p.ID] = p
		}
		for _, id := range ids {
			if _, ok := products[id]; !ok {
				return fmt.Errorf("%w: %s", ErrProductNotFound, id)
			}
		}

		// 4.2. Пересекающиеся активные бронирования с блокировкой (FOR UPDATE)
		others, err := uc.reservationRepo.GetByStoreWithFilter(txCtx, domain.StoreReservationsFilter{
			StoreID: req.StoreID,
			From:    &period.Start,
			To:      &period.End,
			Lock:    true,
		})
		if err != nil {
			return fmt.Errorf("%w: failed to get reservations: %w", ErrInternal, err)
		}

		// 4.3. Расчет строк
		q, err = quote.Build(period, products, req.Lines, derefReservations(others))
		if err != nil {
			return mapQuoteError(err)
		}

		// 4.4. Количество каждой строки должно помещаться в емкость
		if err := validateCapacity(q); err != nil {
			return err
		}

		// 4.5. Сохраняем бронирование
		reservation := &domain.Reservation{
			StoreID:       req.StoreID,
			Number:        uc.generateNumber(now),
			CustomerName:  req.CustomerName,
			CustomerEmail: req.CustomerEmail,
			StartDate:     period.Start,
			EndDate:       period.End,
			Status:        domain.StatusPending,
			Items:         toItems(q.Lines),
			Subtotal:      q.Subtotal,
			Notes:         req.Notes,
		}

		created, err := uc.reservationRepo.Create(txCtx, reservation)
		if err != nil {
			return fmt.Errorf("%w: failed to create reservation: %w", ErrInternal, err)
		}

		result = created
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrInternal) {
			uc.logger.Error("CreateReservation: %v", err)
		} else {
			uc.logger.Warn("CreateReservation: rejected: %v", err)
		}
		return nil, err
	}

	uc.metrics.IncReservationsCreated()
	if len(q.Warnings) > 0 {
		uc.metrics.AddAvailabilityWarnings(len(q.Warnings))
		uc.logger.Warn("CreateReservation: reservation id=%s created with %d availability warnings",
			result.ID, len(q.Warnings))
	}

	// 5. Публикуем событие после коммита; ошибка публикации не отменяет бронирование
	if err := uc.publisher.Publish(ctx, events.EventReservationCreated, result.ID.String(), createdPayload(result)); err != nil {
		uc.logger.Error("CreateReservation: failed to publish event for reservation id=%s: %v", result.ID, err)
	}

	uc.logger.Info("CreateReservation: successfully created reservation id=%s number=%s", result.ID, result.Number)

	return &Response{
		ID:            result.ID,
		StoreID:       result.StoreID,
		Number:        result.Number,
		CustomerName:  result.CustomerName,
		CustomerEmail: result.CustomerEmail,
		StartDate:     result.StartDate,
		EndDate:       result.EndDate,
		Status:        string(result.Status),
		Currency:      store.Currency,
		Items:         result.Items,
		Subtotal:      result.Subtotal,
		Notes:         result.Notes,
		Warnings:      q.Warnings,
		CreatedAt:     result.CreatedAt,
		UpdatedAt:     result.UpdatedAt,
	}, nil
}

// generateNumber формирует номер вида PREFIX-20260110-1A2B3C4D
func (uc *UseCase) generateNumber(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("%s-%s-%s", uc.numberPrefix, now.Format("20060102"), suffix)
}

// toItems переводит строки расчета в позиции бронирования
func toItems(lines []quote.Line) []domain.ReservationItem {
	items := make([]domain.ReservationItem, 0, len(lines))
	for _, line := range lines {
		item := domain.ReservationItem{
			ProductID:          line.ProductID,
			Name:               line.Name,
			Quantity:           line.Quantity,
			UnitPrice:          line.Price.EffectivePrice,
			TotalPrice:         line.Total,
			Duration:           line.Price.Duration,
			BillingUnit:        line.BillingUnit,
			CombinationKey:     line.CombinationKey,
			SelectedAttributes: line.SelectedAttributes,
			PriceOverridden:    line.Price.HasPriceOverride,
			IsCustom:           line.IsCustom,
		}
		if line.IsCustom {
			item.Duration = 0
		}
		items = append(items, item)
	}
	return items
}

func createdPayload(r *domain.Reservation) events.ReservationCreatedPayload {
	items := make([]events.ReservationItemPayload, 0, len(r.Items))
	for _, item := range r.Items {
		items = append(items, events.ReservationItemPayload{
			ProductID:      item.ProductID,
			Quantity:       item.Quantity,
			CombinationKey: item.CombinationKey,
		})
	}

	return events.ReservationCreatedPayload{
		ReservationID: r.ID,
		StoreID:       r.StoreID,
		Number:        r.Number,
		Status:        string(r.Status),
		StartDate:     r.StartDate,
		EndDate:       r.EndDate,
		Subtotal:      r.Subtotal.StringFixed(2),
		Items:         items,
	}
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
