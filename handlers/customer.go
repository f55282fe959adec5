package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"hotelrbs/services"
)

// Relays to the customer/booking-reference microservice.

func CustomerLookupHandler(c *gin.Context) {
	email := c.Param("email")
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Customer lookup proxy error", "message": "missing email"})
		return
	}

	raw, err := services.GetCustomerClient().Forward(c.Request.Context(), http.MethodGet, "/customer/"+email, nil)
	if err != nil {
		log.Printf("❌ Customer lookup proxy error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Customer lookup proxy error",
			"message": err.Error(),
		})
		return
	}
	relayJSON(c, raw)
}

func BookingReferenceHandler(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Booking reference proxy error", "message": "unreadable request body"})
		return
	}

	raw, err := services.GetCustomerClient().Forward(c.Request.Context(), http.MethodPost, "/bookings/reference", body)
	if err != nil {
		log.Printf("❌ Booking reference proxy error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Booking reference proxy error",
			"message": err.Error(),
		})
		return
	}
	relayJSON(c, raw)
}
