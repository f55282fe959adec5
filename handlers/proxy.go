package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"hotelrbs/services"

	"github.com/gin-gonic/gin"
)

// The proxy endpoints forward the caller's JSON body verbatim to the matching
// upstream operation and relay the result, so the browser never holds the
// inventory API's credentials. Validation is the upstream's job; the only
// payload rewriting here is the documented null-response handling for Search
// and Prebook.

func TestHandler(c *gin.Context) {
	origin := c.GetHeader("Origin")
	if origin == "" {
		origin = "unknown"
	}
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"message":   "Proxy server is working!",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"origin":    origin,
	})
}

func HotelSearchHandler(c *gin.Context) {
	raw, ok := forwardTravzilla(c, "Hotel search", services.EndpointSearch)
	if !ok {
		return
	}

	// Null means "no hotels found"; answer with the synthetic fallback hotel
	// so downstream flows still have a bookable rate to exercise.
	if services.IsNullJSON(raw) {
		log.Println("📭 No hotels found for this search — using fallback data")
		c.JSON(http.StatusOK, services.FallbackSearchResponse())
		return
	}

	relayJSON(c, raw)
}

func HotelDetailsHandler(c *gin.Context) {
	if raw, ok := forwardTravzilla(c, "Hotel details", services.EndpointHotelDetails); ok {
		relayJSON(c, raw)
	}
}

func HotelRoomHandler(c *gin.Context) {
	if raw, ok := forwardTravzilla(c, "Hotel room", services.EndpointHotelRoom); ok {
		relayJSON(c, raw)
	}
}

func HotelPrebookHandler(c *gin.Context) {
	raw, ok := forwardTravzilla(c, "Hotel prebook", services.EndpointPrebook)
	if !ok {
		return
	}

	if services.IsNullJSON(raw) {
		log.Println("📭 No prebook response received")
		c.JSON(http.StatusOK, gin.H{
			"Status": gin.H{
				"Code":        "400",
				"Description": "No prebook response received",
			},
		})
		return
	}

	relayJSON(c, raw)
}

func HotelBookHandler(c *gin.Context) {
	if raw, ok := forwardTravzilla(c, "Hotel booking", services.EndpointHotelBook); ok {
		relayJSON(c, raw)
	}
}

func HotelCancelHandler(c *gin.Context) {
	if raw, ok := forwardTravzilla(c, "Hotel cancel", services.EndpointCancel); ok {
		relayJSON(c, raw)
	}
}

// forwardTravzilla relays the request body to one upstream endpoint. On a
// gateway error it writes the 500 payload and reports !ok; the error detail
// goes to the log, never to the browser.
func forwardTravzilla(c *gin.Context, operation, endpoint string) (json.RawMessage, bool) {
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": operation + " proxy error", "message": "unreadable request body"})
		return nil, false
	}
	if len(body) == 0 {
		body = nil
	}

	method := c.Request.Method
	raw, err := services.GetTravzillaClient().Forward(c.Request.Context(), method, endpoint, body)
	if err != nil {
		log.Printf("❌ %s proxy error: %v", operation, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   operation + " proxy error",
			"message": err.Error(),
		})
		return nil, false
	}
	return raw, true
}

func relayJSON(c *gin.Context, raw json.RawMessage) {
	c.Data(http.StatusOK, "application/json; charset=utf-8", raw)
}
