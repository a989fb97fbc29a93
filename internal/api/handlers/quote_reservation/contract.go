package quote_reservation

import (
	"context"

	quoteReservation "github.com/m04kA/SMC-RentalService/internal/usecase/quote_reservation"
)

type QuoteReservationUseCase interface {
	Execute(ctx context.Context, req *quoteReservation.Request) (*quoteReservation.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
