package handlers

import "github.com/gin-gonic/gin"

// Register wires every API route onto the given group.
func Register(api *gin.RouterGroup) {
	api.GET("/test", TestHandler)

	// Verbatim relays to the hotel inventory API.
	api.POST("/hotel-search", HotelSearchHandler)
	api.POST("/hotel-details", HotelDetailsHandler)
	api.POST("/hotel-room", HotelRoomHandler)
	api.POST("/hotel-prebook", HotelPrebookHandler)
	api.POST("/hotel-book", HotelBookHandler)
	api.POST("/hotel-cancel", HotelCancelHandler)

	api.GET("/CountryList", CountryListHandler)
	api.POST("/CityList", CityListHandler)
	api.POST("/HotelCodeList", HotelCodeListHandler)

	// Customer microservice relays.
	api.GET("/customer/:email", CustomerLookupHandler)
	api.POST("/bookings/reference", BookingReferenceHandler)

	// Server-side composite flows.
	api.POST("/destination-search", DestinationSearchHandler)
	api.POST("/booking-code", BookingCodeHandler)
	api.POST("/reservation/prebook", ReservationPrebookHandler)
	api.POST("/reservation/book", ReservationBookHandler)
	api.POST("/reservation/cancel", ReservationCancelHandler)
	api.GET("/reservation/:reference", ReservationLookupHandler)
}
