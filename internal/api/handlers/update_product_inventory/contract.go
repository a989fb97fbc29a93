package update_product_inventory

import (
	"context"

	updateProduct "github.com/m04kA/SMC-RentalService/internal/usecase/update_product"
)

type UpdateProductUseCase interface {
	Execute(ctx context.Context, req *updateProduct.Request) (*updateProduct.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
