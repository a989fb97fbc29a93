package reservation

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/pkg/dbmetrics"
	"github.com/m04kA/SMC-RentalService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-RentalService/pkg/ptr"
)

var reservationColumns = []string{
	"id",
	"store_id",
	"number",
	"customer_name",
	"customer_email",
	"start_date",
	"end_date",
	"status",
	"subtotal",
	"notes",
	"created_at",
	"updated_at",
}

var itemColumns = []string{
	"id",
	"reservation_id",
	"product_id",
	"name",
	"quantity",
	"unit_price",
	"total_price",
	"duration",
	"billing_unit",
	"combination_key",
	"selected_attributes",
	"price_overridden",
	"is_custom",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает бронирование вместе с позициями
// Вызывается внутри транзакции вместе с проверкой доступности
func (r *Repository) Create(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if reservation.ID == uuid.Nil {
		reservation.ID = uuid.New()
	}

	query, args, err := psqlbuilder.Insert("reservations").
		Columns(
			"id",
			"store_id",
			"number",
			"customer_name",
			"customer_email",
			"start_date",
			"end_date",
			"status",
			"subtotal",
			"notes",
		).
		Values(
			reservation.ID.String(),
			reservation.StoreID.String(),
			reservation.Number,
			reservation.CustomerName,
			reservation.CustomerEmail,
			reservation.StartDate,
			reservation.EndDate,
			string(reservation.Status),
			reservation.Subtotal,
			reservation.Notes,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}
	reservation.CreatedAt = createdAt.Time
	reservation.UpdatedAt = updatedAt.Time

	if len(reservation.Items) == 0 {
		return reservation, nil
	}

	insertBuilder := psqlbuilder.Insert("reservation_items").Columns(itemColumns...)
	for i := range reservation.Items {
		item := &reservation.Items[i]
		if item.ID == uuid.Nil {
			item.ID = uuid.New()
		}
		item.ReservationID = reservation.ID

		attrs, err := encodeAttributes(item.SelectedAttributes)
		if err != nil {
			return nil, fmt.Errorf("%w: Create - encode attributes: %w", ErrEncodeJSON, err)
		}

		insertBuilder = insertBuilder.Values(
			item.ID.String(),
			item.ReservationID.String(),
			nullUUID(item.ProductID),
			item.Name,
			item.Quantity,
			item.UnitPrice,
			item.TotalPrice,
			item.Duration,
			string(item.BillingUnit),
			item.CombinationKey,
			attrs,
			item.PriceOverridden,
			item.IsCustom,
		)
	}

	query, args, err = insertBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build items insert query: %w", ErrBuildQuery, err)
	}
	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("%w: Create - execute items insert: %w", ErrExecQuery, err)
	}

	return reservation, nil
}

// GetByID получает бронирование магазина с позициями
func (r *Repository) GetByID(ctx context.Context, storeID, id uuid.UUID) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"id": id.String(), "store_id": storeID.String()}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %w", ErrBuildQuery, err)
	}

	reservation, err := scanReservation(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan reservation: %w", ErrScanRow, err)
	}

	if err := r.attachItems(ctx, []*domain.Reservation{reservation}); err != nil {
		return nil, err
	}

	return reservation, nil
}

// GetByStoreWithFilter получает бронирования магазина с фильтрацией
// Поддерживает фильтрацию по:
// - пересечению с периодом [From, To) - опционально, каждая граница отдельно
// - списку статусов (Statuses) - опционально
// - включению завершенных и отмененных бронирований (IncludeInactive)
//
// С Lock внутри транзакции строки блокируются (FOR UPDATE), чтобы параллельное создание
// бронирования на тот же период ждало завершения текущего.
func (r *Repository) GetByStoreWithFilter(ctx context.Context, filter domain.StoreReservationsFilter) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"store_id": filter.StoreID.String()})

	// Пересечение полуинтервалов: start < To AND end > From
	if filter.From != nil {
		selectBuilder = selectBuilder.Where(squirrel.Gt{"end_date": *filter.From})
	}
	if filter.To != nil {
		selectBuilder = selectBuilder.Where(squirrel.Lt{"start_date": *filter.To})
	}

	switch {
	case len(filter.Statuses) > 0:
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": statusStrings(filter.Statuses)})
	case !filter.IncludeInactive:
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": statusStrings(domain.InactiveStatuses)})
	}

	selectBuilder = selectBuilder.OrderBy("start_date ASC", "created_at ASC")

	if filter.Lock && dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByStoreWithFilter - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByStoreWithFilter - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	reservations := make([]*domain.Reservation, 0)
	for rows.Next() {
		reservation, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByStoreWithFilter - scan reservation: %w", ErrScanRow, err)
		}
		reservations = append(reservations, reservation)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByStoreWithFilter - rows error: %w", ErrScanRow, err)
	}

	if err := r.attachItems(ctx, reservations); err != nil {
		return nil, err
	}

	return reservations, nil
}

// GetActiveItemRowsByProduct получает позиции товара в активных бронированиях,
// которые заканчиваются не раньше now
func (r *Repository) GetActiveItemRowsByProduct(ctx context.Context, productID uuid.UUID, now time.Time) ([]domain.ReservationItemRow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"r.id",
		"i.product_id",
		"r.status",
		"r.start_date",
		"r.end_date",
		"i.quantity",
		"i.combination_key",
	).
		From("reservation_items i").
		Join("reservations r ON r.id = i.reservation_id").
		Where(squirrel.Eq{"i.product_id": productID.String()}).
		Where(squirrel.Eq{"r.status": statusStrings(domain.ActiveStatuses)}).
		Where(squirrel.GtOrEq{"r.end_date": now}).
		OrderBy("r.start_date ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR SHARE OF r")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveItemRowsByProduct - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveItemRowsByProduct - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]domain.ReservationItemRow, 0)
	for rows.Next() {
		var row domain.ReservationItemRow
		if err := rows.Scan(
			&row.ReservationID,
			&row.ProductID,
			&row.Status,
			&row.StartDate,
			&row.EndDate,
			&row.Quantity,
			&row.CombinationKey,
		); err != nil {
			return nil, fmt.Errorf("%w: GetActiveItemRowsByProduct - scan row: %w", ErrScanRow, err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetActiveItemRowsByProduct - rows error: %w", ErrScanRow, err)
	}

	return result, nil
}

// UpdateStatus обновляет статус бронирования
func (r *Repository) UpdateStatus(ctx context.Context, storeID, id uuid.UUID, status domain.ReservationStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservations").
		Set("status", string(status)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id.String(), "store_id": storeID.String()}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %w", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrReservationNotFound
	}

	return nil
}

// attachItems догружает позиции для списка бронирований одним запросом
func (r *Repository) attachItems(ctx context.Context, reservations []*domain.Reservation) error {
	if len(reservations) == 0 {
		return nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	byID := make(map[uuid.UUID]*domain.Reservation, len(reservations))
	ids := make([]string, 0, len(reservations))
	for _, res := range reservations {
		byID[res.ID] = res
		ids = append(ids, res.ID.String())
	}

	query, args, err := psqlbuilder.Select(itemColumns...).
		From("reservation_items").
		Where(squirrel.Eq{"reservation_id": ids}).
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: attachItems - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: attachItems - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			item      domain.ReservationItem
			productID uuid.NullUUID
			attrs     []byte
		)
		if err := rows.Scan(
			&item.ID,
			&item.ReservationID,
			&productID,
			&item.Name,
			&item.Quantity,
			&item.UnitPrice,
			&item.TotalPrice,
			&item.Duration,
			&item.BillingUnit,
			&item.CombinationKey,
			&attrs,
			&item.PriceOverridden,
			&item.IsCustom,
		); err != nil {
			return fmt.Errorf("%w: attachItems - scan item: %w", ErrScanRow, err)
		}

		if productID.Valid {
			item.ProductID = ptr.Ptr(productID.UUID)
		}
		if len(attrs) > 0 {
			if err := json.Unmarshal(attrs, &item.SelectedAttributes); err != nil {
				return fmt.Errorf("%w: attachItems - decode attributes: %w", ErrScanRow, err)
			}
		}

		if res, ok := byID[item.ReservationID]; ok {
			res.Items = append(res.Items, item)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: attachItems - rows error: %w", ErrScanRow, err)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanReservation(row rowScanner) (*domain.Reservation, error) {
	var (
		reservation          domain.Reservation
		createdAt, updatedAt sql.NullTime
	)

	err := row.Scan(
		&reservation.ID,
		&reservation.StoreID,
		&reservation.Number,
		&reservation.CustomerName,
		&reservation.CustomerEmail,
		&reservation.StartDate,
		&reservation.EndDate,
		&reservation.Status,
		&reservation.Subtotal,
		&reservation.Notes,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	reservation.CreatedAt = createdAt.Time
	reservation.UpdatedAt = updatedAt.Time

	return &reservation, nil
}

func encodeAttributes(attrs map[string]string) ([]byte, error) {
	if attrs == nil {
		attrs = map[string]string{}
	}
	return json.Marshal(attrs)
}

func nullUUID(id *uuid.UUID) uuid.NullUUID {
	if id == nil {
		return uuid.NullUUID{}
	}
	return uuid.NullUUID{UUID: *id, Valid: true}
}

func statusStrings(statuses []domain.ReservationStatus) []string {
	result := make([]string, len(statuses))
	for i, s := range statuses {
		result[i] = string(s)
	}
	return result
}
