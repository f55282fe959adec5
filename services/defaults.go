package services

// Search and booking defaults used when the caller supplies no preference.
const (
	DefaultGuestNationality = "AE"
	DefaultCurrency         = "USD"
	DefaultResponseTime     = 23
	DefaultAdults           = 2
	DefaultChildren         = 0
	DefaultRooms            = 1
)
