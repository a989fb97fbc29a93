package product

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/pkg/dbmetrics"
	"github.com/m04kA/SMC-RentalService/pkg/psqlbuilder"
)

var productColumns = []string{
	"id",
	"store_id",
	"name",
	"billing_unit",
	"base_price",
	"quantity",
	"track_units",
	"booking_attribute_axes",
	"enforce_strict_tiers",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с товарами, их единицами и тарифами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория товаров
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает товар магазина вместе с единицами и тарифами
// Внутри транзакции строка товара блокируется (FOR UPDATE) до конца транзакции,
// чтобы проверка и запись изменения инвентаря шли по одному состоянию.
func (r *Repository) GetByID(ctx context.Context, storeID, productID uuid.UUID) (*domain.Product, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(productColumns...).
		From("products").
		Where(squirrel.Eq{"id": productID.String(), "store_id": storeID.String()})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %w", ErrBuildQuery, err)
	}

	product, err := scanProduct(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan product: %w", ErrScanRow, err)
	}

	if err := r.attachChildren(ctx, []*domain.Product{product}); err != nil {
		return nil, err
	}

	return product, nil
}

// GetByIDs получает товары магазина по списку ID
// Отсутствующие товары в результат не попадают
func (r *Repository) GetByIDs(ctx context.Context, storeID uuid.UUID, ids []uuid.UUID) ([]*domain.Product, error) {
	if len(ids) == 0 {
		return []*domain.Product{}, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(productColumns...).
		From("products").
		Where(squirrel.Eq{"store_id": storeID.String(), "id": uuidStrings(ids)}).
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByIDs - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByIDs - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	products := make([]*domain.Product, 0, len(ids))
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByIDs - scan product: %w", ErrScanRow, err)
		}
		products = append(products, product)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByIDs - rows error: %w", ErrScanRow, err)
	}

	if err := r.attachChildren(ctx, products); err != nil {
		return nil, err
	}

	return products, nil
}

// Update обновляет поля инвентаря и цены товара
func (r *Repository) Update(ctx context.Context, product *domain.Product) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	axes, err := encodeAxes(product.BookingAttributeAxes)
	if err != nil {
		return fmt.Errorf("%w: Update - encode axes: %w", ErrEncodeJSON, err)
	}

	query, args, err := psqlbuilder.Update("products").
		Set("billing_unit", string(product.BillingUnit)).
		Set("base_price", product.BasePrice).
		Set("quantity", product.Quantity).
		Set("track_units", product.TrackUnits).
		Set("booking_attribute_axes", axes).
		Set("enforce_strict_tiers", product.EnforceStrictTiers).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": product.ID.String(), "store_id": product.StoreID.String()}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %w", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&product.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrProductNotFound
	}
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %w", ErrExecQuery, err)
	}

	return nil
}

// ReplaceTiers заменяет список тарифов товара целиком
func (r *Repository) ReplaceTiers(ctx context.Context, productID uuid.UUID, tiers []domain.Tier) ([]domain.Tier, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("product_pricing_tiers").
		Where(squirrel.Eq{"product_id": productID.String()}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ReplaceTiers - build delete query: %w", ErrBuildQuery, err)
	}
	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("%w: ReplaceTiers - execute delete: %w", ErrExecQuery, err)
	}

	if len(tiers) == 0 {
		return []domain.Tier{}, nil
	}

	saved := make([]domain.Tier, 0, len(tiers))
	insertBuilder := psqlbuilder.Insert("product_pricing_tiers").
		Columns("id", "product_id", "min_duration", "discount_percent")
	for _, tier := range tiers {
		if tier.ID == uuid.Nil {
			tier.ID = uuid.New()
		}
		insertBuilder = insertBuilder.Values(tier.ID.String(), productID.String(), tier.MinDuration, tier.DiscountPercent)
		saved = append(saved, tier)
	}

	query, args, err = insertBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ReplaceTiers - build insert query: %w", ErrBuildQuery, err)
	}
	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("%w: ReplaceTiers - execute insert: %w", ErrExecQuery, err)
	}

	return saved, nil
}

// ReconcileUnits приводит единицы товара к переданному списку:
// новые вставляются, существующие обновляются по ID, отсутствующие удаляются
func (r *Repository) ReconcileUnits(ctx context.Context, productID uuid.UUID, units []domain.Unit) ([]domain.Unit, error) {
	existing, err := r.unitIDs(ctx, productID)
	if err != nil {
		return nil, err
	}

	keep := make(map[uuid.UUID]struct{}, len(units))
	saved := make([]domain.Unit, 0, len(units))

	for _, unit := range units {
		unit.ProductID = productID

		if _, ok := existing[unit.ID]; ok && unit.ID != uuid.Nil {
			if err := r.updateUnit(ctx, unit); err != nil {
				return nil, err
			}
		} else {
			if unit.ID == uuid.Nil {
				unit.ID = uuid.New()
			}
			if err := r.insertUnit(ctx, unit); err != nil {
				return nil, err
			}
		}

		keep[unit.ID] = struct{}{}
		saved = append(saved, unit)
	}

	var removed []uuid.UUID
	for id := range existing {
		if _, ok := keep[id]; !ok {
			removed = append(removed, id)
		}
	}
	if err := r.deleteUnits(ctx, productID, removed); err != nil {
		return nil, err
	}

	return saved, nil
}

func (r *Repository) unitIDs(ctx context.Context, productID uuid.UUID) (map[uuid.UUID]struct{}, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id").
		From("product_units").
		Where(squirrel.Eq{"product_id": productID.String()}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ReconcileUnits - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ReconcileUnits - execute select: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	ids := make(map[uuid.UUID]struct{})
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: ReconcileUnits - scan id: %w", ErrScanRow, err)
		}
		ids[id] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ReconcileUnits - rows error: %w", ErrScanRow, err)
	}

	return ids, nil
}

func (r *Repository) insertUnit(ctx context.Context, unit domain.Unit) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	attrs, err := encodeAttributes(unit.Attributes)
	if err != nil {
		return fmt.Errorf("%w: insertUnit - encode attributes: %w", ErrEncodeJSON, err)
	}

	query, args, err := psqlbuilder.Insert("product_units").
		Columns("id", "product_id", "identifier", "status", "attributes", "notes").
		Values(unit.ID.String(), unit.ProductID.String(), unit.Identifier, string(unit.Status), attrs, unit.Notes).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: insertUnit - build insert query: %w", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: insertUnit - execute insert: %w", ErrExecQuery, err)
	}
	return nil
}

func (r *Repository) updateUnit(ctx context.Context, unit domain.Unit) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	attrs, err := encodeAttributes(unit.Attributes)
	if err != nil {
		return fmt.Errorf("%w: updateUnit - encode attributes: %w", ErrEncodeJSON, err)
	}

	query, args, err := psqlbuilder.Update("product_units").
		Set("identifier", unit.Identifier).
		Set("status", string(unit.Status)).
		Set("attributes", attrs).
		Set("notes", unit.Notes).
		Where(squirrel.Eq{"id": unit.ID.String(), "product_id": unit.ProductID.String()}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: updateUnit - build update query: %w", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: updateUnit - execute update: %w", ErrExecQuery, err)
	}
	return nil
}

func (r *Repository) deleteUnits(ctx context.Context, productID uuid.UUID, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("product_units").
		Where(squirrel.Eq{"product_id": productID.String(), "id": uuidStrings(ids)}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: deleteUnits - build delete query: %w", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: deleteUnits - execute delete: %w", ErrExecQuery, err)
	}
	return nil
}

// attachChildren догружает единицы и тарифы для списка товаров двумя запросами
func (r *Repository) attachChildren(ctx context.Context, products []*domain.Product) error {
	if len(products) == 0 {
		return nil
	}

	byID := make(map[uuid.UUID]*domain.Product, len(products))
	ids := make([]uuid.UUID, 0, len(products))
	for _, p := range products {
		byID[p.ID] = p
		ids = append(ids, p.ID)
	}

	if err := r.loadUnits(ctx, ids, byID); err != nil {
		return err
	}
	return r.loadTiers(ctx, ids, byID)
}

func (r *Repository) loadUnits(ctx context.Context, ids []uuid.UUID, byID map[uuid.UUID]*domain.Product) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "product_id", "identifier", "status", "attributes", "notes").
		From("product_units").
		Where(squirrel.Eq{"product_id": uuidStrings(ids)}).
		OrderBy("identifier ASC").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: loadUnits - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: loadUnits - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			unit  domain.Unit
			attrs []byte
		)
		if err := rows.Scan(&unit.ID, &unit.ProductID, &unit.Identifier, &unit.Status, &attrs, &unit.Notes); err != nil {
			return fmt.Errorf("%w: loadUnits - scan unit: %w", ErrScanRow, err)
		}
		if unit.Attributes, err = decodeAttributes(attrs); err != nil {
			return fmt.Errorf("%w: loadUnits - decode attributes: %w", ErrScanRow, err)
		}
		if p, ok := byID[unit.ProductID]; ok {
			p.Units = append(p.Units, unit)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: loadUnits - rows error: %w", ErrScanRow, err)
	}

	return nil
}

func (r *Repository) loadTiers(ctx context.Context, ids []uuid.UUID, byID map[uuid.UUID]*domain.Product) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "product_id", "min_duration", "discount_percent").
		From("product_pricing_tiers").
		Where(squirrel.Eq{"product_id": uuidStrings(ids)}).
		OrderBy("min_duration ASC").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: loadTiers - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: loadTiers - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			tier      domain.Tier
			productID uuid.UUID
		)
		if err := rows.Scan(&tier.ID, &productID, &tier.MinDuration, &tier.DiscountPercent); err != nil {
			return fmt.Errorf("%w: loadTiers - scan tier: %w", ErrScanRow, err)
		}
		if p, ok := byID[productID]; ok {
			p.PricingTiers = append(p.PricingTiers, tier)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: loadTiers - rows error: %w", ErrScanRow, err)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProduct(row rowScanner) (*domain.Product, error) {
	var (
		product              domain.Product
		axes                 []byte
		createdAt, updatedAt sql.NullTime
	)

	err := row.Scan(
		&product.ID,
		&product.StoreID,
		&product.Name,
		&product.BillingUnit,
		&product.BasePrice,
		&product.Quantity,
		&product.TrackUnits,
		&axes,
		&product.EnforceStrictTiers,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if product.BookingAttributeAxes, err = decodeAxes(axes); err != nil {
		return nil, err
	}

	product.CreatedAt = createdAt.Time
	product.UpdatedAt = updatedAt.Time

	return &product, nil
}

func uuidStrings(ids []uuid.UUID) []string {
	result := make([]string, 0, len(ids))
	for _, id := range ids {
		result = append(result, id.String())
	}
	return result
}
