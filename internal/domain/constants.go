package domain

// Business validation constants
const (
	MaxNotesLength         = 500
	MaxNameLength          = 255
	MaxLinesPerReservation = 100
	MaxUnitsPerProduct     = 1000
	MaxTierDiscount        = 100
)

// Time format constants
const (
	DateFormat = "2006-01-02"
)

// ActiveStatuses список статусов, бронирования в которых занимают товар
var ActiveStatuses = []ReservationStatus{
	StatusPending,
	StatusConfirmed,
	StatusOngoing,
}

// InactiveStatuses список статусов, которые не учитываются при подсчёте доступности
var InactiveStatuses = []ReservationStatus{
	StatusCompleted,
	StatusCancelled,
	StatusRejected,
}
