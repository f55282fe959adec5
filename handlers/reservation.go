package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"hotelrbs/database"
	"hotelrbs/services"
)

// Composite endpoints hosting the server-side booking flows: destination
// resolution + search, booking-code discovery, and the prebook/book/cancel
// workflow. The browser calls these instead of re-implementing the flows.

type DestinationSearchRequest struct {
	Destination string `json:"destination" binding:"required"`
	CheckIn     string `json:"check_in" binding:"required"`
	CheckOut    string `json:"check_out" binding:"required"`
	Adults      int    `json:"adults"`
	Children    int    `json:"children"`
	Rooms       int    `json:"rooms"`
}

func DestinationSearchHandler(c *gin.Context) {
	var req DestinationSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	if req.Adults <= 0 {
		req.Adults = services.DefaultAdults
	}
	if req.Rooms <= 0 {
		req.Rooms = services.DefaultRooms
	}

	resolved, err := services.GetResolver().Resolve(c.Request.Context(), req.Destination)
	if err != nil {
		var notFound *services.DestinationNotFoundError
		if errors.As(err, &notFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Destination not found",
				"stage": notFound.Stage,
			})
			return
		}
		log.Printf("❌ Destination resolution error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Destination search error", "message": err.Error()})
		return
	}

	paxRooms := make([]services.PaxRoom, req.Rooms)
	for i := range paxRooms {
		paxRooms[i] = services.PaxRoom{Adults: req.Adults, Children: req.Children, ChildrenAges: []int{}}
	}

	search := &services.SearchRequest{
		CheckIn:               req.CheckIn,
		CheckOut:              req.CheckOut,
		HotelCodes:            resolved.SearchCodes(),
		GuestNationality:      services.DefaultGuestNationality,
		PreferredCurrencyCode: services.DefaultCurrency,
		PaxRooms:              paxRooms,
		IsDetailResponse:      true,
		ResponseTime:          services.DefaultResponseTime,
	}

	result, err := services.GetTravzillaClient().Search(c.Request.Context(), search)
	if err != nil {
		log.Printf("❌ Destination search error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Destination search error", "message": err.Error()})
		return
	}
	if result == nil {
		log.Println("📭 No hotels found for this search — using fallback data")
		result = services.FallbackSearchResponse()
	}

	c.JSON(http.StatusOK, gin.H{
		"country":     resolved.Country,
		"city":        resolved.City,
		"hotel_codes": resolved.HotelCodes,
		"search":      result,
	})
}

type BookingCodeRequest struct {
	HotelCode string `json:"hotel_code" binding:"required"`
	CheckIn   string `json:"check_in"`
	CheckOut  string `json:"check_out"`
	Guests    string `json:"guests"`
	Rooms     string `json:"rooms"`
}

func BookingCodeHandler(c *gin.Context) {
	var req BookingCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	stay := services.StayParams{
		CheckIn:  req.CheckIn,
		CheckOut: req.CheckOut,
		Guests:   req.Guests,
		Rooms:    req.Rooms,
	}

	code, err := services.GetBookingCodeFinder().Find(c.Request.Context(), req.HotelCode, stay)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"hotel_code": req.HotelCode, "booking_code": code})
	case errors.Is(err, services.ErrLookupInFlight):
		c.JSON(http.StatusConflict, gin.H{"error": "Booking code lookup already in progress"})
	case errors.Is(err, services.ErrBookingCodeNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Booking code not found"})
	default:
		log.Printf("❌ Booking code lookup error: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Booking code lookup error", "message": err.Error()})
	}
}

type ReservationPrebookRequest struct {
	BookingCode string `json:"booking_code" binding:"required"`
}

func ReservationPrebookHandler(c *gin.Context) {
	var req ReservationPrebookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	outcome, err := services.GetReservationWorkflow().Prebook(c.Request.Context(), req.BookingCode)
	if err != nil {
		log.Printf("❌ Prebook error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Hotel prebook proxy error", "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, outcome)
}

type ReservationBookRequest struct {
	BookingCode        string             `json:"booking_code" binding:"required"`
	BookingReferenceID string             `json:"booking_reference_id"`
	HotelCode          string             `json:"hotel_code"`
	CheckIn            string             `json:"check_in"`
	CheckOut           string             `json:"check_out"`
	TotalFare          float64            `json:"total_fare"`
	Rooms              int                `json:"rooms"`
	Guests             int                `json:"guests"`
	Form               services.GuestForm `json:"form" binding:"required"`
}

func ReservationBookHandler(c *gin.Context) {
	var req ReservationBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	// An explicit reference wins; otherwise resolve the customer by email,
	// falling back to the guest identity path for first-time users.
	identity := &services.Identity{BookingReferenceID: req.BookingReferenceID}
	if identity.BookingReferenceID == "" {
		identity = services.GetCustomerClient().ResolveIdentity(c.Request.Context(), req.Form.Email)
	}

	outcome, err := services.GetReservationWorkflow().Book(c.Request.Context(), services.BookParams{
		BookingCode:        req.BookingCode,
		BookingReferenceID: identity.BookingReferenceID,
		Form:               req.Form,
		TotalFare:          req.TotalFare,
		Rooms:              req.Rooms,
		Guests:             req.Guests,
	})
	if err != nil {
		log.Printf("❌ Hotel booking error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Hotel booking proxy error", "message": err.Error()})
		return
	}

	if outcome.Succeeded && database.Enabled() {
		record := &database.Booking{
			ID:                 uuid.New().String(),
			ConfirmationNumber: outcome.ConfirmationNumber,
			ClientReferenceID:  outcome.ClientReferenceID,
			BookingReferenceID: identity.BookingReferenceID,
			HotelCode:          req.HotelCode,
			CheckIn:            req.CheckIn,
			CheckOut:           req.CheckOut,
			GuestEmail:         req.Form.Email,
			TotalFare:          req.TotalFare,
			Status:             "Confirmed",
		}
		if err := database.SaveBooking(record); err != nil {
			log.Printf("❌ Failed to save booking record: %v", err)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"booking_reference_id": identity.BookingReferenceID,
		"guest":                identity.Guest,
		"outcome":              outcome,
	})
}

type ReservationCancelRequest struct {
	ConfirmationNumber string `json:"confirmation_number" binding:"required"`
}

func ReservationCancelHandler(c *gin.Context) {
	var req ReservationCancelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	raw, err := services.GetReservationWorkflow().Cancel(c.Request.Context(), req.ConfirmationNumber)
	if err != nil {
		log.Printf("❌ Hotel cancel error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Hotel cancel proxy error", "message": err.Error()})
		return
	}

	if database.Enabled() {
		if err := database.MarkBookingCancelled(req.ConfirmationNumber); err != nil {
			log.Printf("⚠️  Failed to mark booking cancelled: %v", err)
		}
	}

	relayJSON(c, raw)
}

func ReservationLookupHandler(c *gin.Context) {
	if !database.Enabled() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Reservation audit store is not configured"})
		return
	}

	reference := c.Param("reference")
	booking, err := database.GetBookingByReference(reference)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Reservation not found"})
		return
	}
	c.JSON(http.StatusOK, booking)
}
