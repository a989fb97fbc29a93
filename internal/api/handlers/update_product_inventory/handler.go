package update_product_inventory

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
	"github.com/m04kA/SMC-RentalService/internal/engine/inventoryguard"
	"github.com/m04kA/SMC-RentalService/internal/service/products/models"
	updateProduct "github.com/m04kA/SMC-RentalService/internal/usecase/update_product"
)

const (
	msgInvalidStoreID       = "некорректный ID магазина"
	msgInvalidProductID     = "некорректный ID товара"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidInput         = "некорректные данные инвентаря"
	msgNotFound             = "товар не найден"
	msgDisableTracking      = "нельзя отключить учет единиц, пока есть бронирования конкретных комбинаций"
	msgUnitsConflict        = "изменение единиц противоречит активным бронированиям"
	msgInventoryConflictAny = "изменение инвентаря противоречит активным бронированиям"
)

type Handler struct {
	useCase UpdateProductUseCase
	logger  Logger
}

func NewHandler(useCase UpdateProductUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PUT /api/v1/stores/{storeId}/products/{productId}/inventory
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	storeID, err := handlers.PathUUID(r, "storeId")
	if err != nil {
		h.logger.Warn("PUT /products/{id}/inventory - Invalid store ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStoreID)
		return
	}

	productID, err := handlers.PathUUID(r, "productId")
	if err != nil {
		h.logger.Warn("PUT /products/{id}/inventory - Invalid product ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProductID)
		return
	}

	var req UpdateInventoryRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /products/{id}/inventory - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(storeID, productID))
	if err != nil {
		var conflict *inventoryguard.ConflictError

		switch {
		case errors.Is(err, updateProduct.ErrInvalidInput):
			h.logger.Warn("PUT /products/{id}/inventory - Invalid input: product_id=%s, error=%v", productID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, updateProduct.ErrProductNotFound):
			h.logger.Warn("PUT /products/{id}/inventory - Product not found: product_id=%s, store_id=%s", productID, storeID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.As(err, &conflict):
			h.logger.Warn("PUT /products/{id}/inventory - Inventory conflict: product_id=%s, error=%v", productID, err)
			handlers.RespondErrorWithDetails(w, http.StatusConflict, conflictMessage(conflict), FromConflicts(conflict.Conflicts))

		case errors.Is(err, updateProduct.ErrInventoryConflict):
			h.logger.Warn("PUT /products/{id}/inventory - Inventory conflict: product_id=%s, error=%v", productID, err)
			handlers.RespondConflict(w, msgInventoryConflictAny)

		default:
			h.logger.Error("PUT /products/{id}/inventory - Failed to update product: product_id=%s, error=%v", productID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /products/{id}/inventory - Product updated: product_id=%s, quantity=%d, units=%d",
		productID, result.Product.Quantity, len(result.Product.Units))
	handlers.RespondJSON(w, http.StatusOK, models.FromDomainProduct(result.Product, result.Combinations))
}

func conflictMessage(conflict *inventoryguard.ConflictError) string {
	switch {
	case errors.Is(conflict, inventoryguard.ErrCannotDisableUnitTrackingWithCombinations):
		return msgDisableTracking
	case errors.Is(conflict, inventoryguard.ErrUnitStatusConflictsWithReservations):
		return msgUnitsConflict
	default:
		return msgInventoryConflictAny
	}
}
