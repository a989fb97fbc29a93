package get_product

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
	"github.com/m04kA/SMC-RentalService/internal/service/products"
)

const (
	msgInvalidStoreID   = "некорректный ID магазина"
	msgInvalidProductID = "некорректный ID товара"
	msgNotFound         = "товар не найден"
)

type Handler struct {
	service ProductService
	logger  Logger
}

func NewHandler(service ProductService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/stores/{storeId}/products/{productId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	storeID, err := handlers.PathUUID(r, "storeId")
	if err != nil {
		h.logger.Warn("GET /products/{id} - Invalid store ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStoreID)
		return
	}

	productID, err := handlers.PathUUID(r, "productId")
	if err != nil {
		h.logger.Warn("GET /products/{id} - Invalid product ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProductID)
		return
	}

	product, err := h.service.GetByID(r.Context(), storeID, productID)
	if err != nil {
		switch {
		case errors.Is(err, products.ErrProductNotFound):
			h.logger.Warn("GET /products/{id} - Product not found: product_id=%s, store_id=%s", productID, storeID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /products/{id} - Failed to get product: product_id=%s, error=%v", productID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /products/{id} - Product retrieved: product_id=%s, combinations=%d",
		productID, len(product.Combinations))
	handlers.RespondJSON(w, http.StatusOK, product)
}
