package handlers

import (
	"github.com/gin-gonic/gin"

	"hotelrbs/services"
)

// Reference-data relays: the country, city and hotel-code lists the search
// bar's destination picker walks through.

func CountryListHandler(c *gin.Context) {
	if raw, ok := forwardTravzilla(c, "CountryList", services.EndpointCountryList); ok {
		relayJSON(c, raw)
	}
}

func CityListHandler(c *gin.Context) {
	if raw, ok := forwardTravzilla(c, "CityList", services.EndpointCityList); ok {
		relayJSON(c, raw)
	}
}

func HotelCodeListHandler(c *gin.Context) {
	if raw, ok := forwardTravzilla(c, "HotelCodeList", services.EndpointHotelCodeList); ok {
		relayJSON(c, raw)
	}
}
