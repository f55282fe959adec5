package services

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"
)

// ─── Reservation Workflow ─────────────────────────────────────────────────────
//
// Sequences Prebook → identity resolution → Book, carrying the booking code
// and the fare snapshot captured at prebook time between steps. Cancel is an
// independent terminal action; the server imposes no ordering on it. No step
// retries automatically — retry is a user decision in the UI.

type ReservationWorkflow struct {
	api       *TravzillaClient
	customers *CustomerClient
}

func NewReservationWorkflow(api *TravzillaClient, customers *CustomerClient) *ReservationWorkflow {
	return &ReservationWorkflow{api: api, customers: customers}
}

func GetReservationWorkflow() *ReservationWorkflow {
	return NewReservationWorkflow(travzillaClient, customerClient)
}

// PrebookOutcome is the rate hold result. TotalFare is the fare snapshot the
// Book step must reuse; it is never recomputed from search data.
type PrebookOutcome struct {
	Succeeded bool             `json:"succeeded"`
	Message   string           `json:"message"`
	TotalFare float64          `json:"total_fare,omitempty"`
	Response  *PrebookResponse `json:"response,omitempty"`
}

// Prebook holds the rate behind a booking code. Success is strictly
// Status.Code == "200"; any other code — even one arriving with a populated
// HotelResult — is a failure carrying the upstream description verbatim.
func (w *ReservationWorkflow) Prebook(ctx context.Context, bookingCode string) (*PrebookOutcome, error) {
	if bookingCode == "" {
		return nil, fmt.Errorf("booking code is required")
	}

	resp, err := w.api.Prebook(ctx, &PrebookRequest{BookingCode: bookingCode, PaymentMode: "Limit"})
	if err != nil {
		return nil, err
	}
	if resp == nil {
		return &PrebookOutcome{Message: "No prebook response received"}, nil
	}

	if !resp.Status.OK() {
		msg := resp.Status.Description
		if msg == "" {
			msg = "Prebook failed"
		}
		return &PrebookOutcome{Message: msg, Response: resp}, nil
	}

	return &PrebookOutcome{
		Succeeded: true,
		Message:   resp.Status.Description,
		TotalFare: prebookFare(resp),
		Response:  resp,
	}, nil
}

func prebookFare(resp *PrebookResponse) float64 {
	var total float64
	for _, hotel := range resp.HotelResult {
		for _, room := range hotel.Rooms {
			if fare, err := room.TotalFare.Float64(); err == nil {
				total += fare
			}
		}
	}
	return total
}

// GuestForm is the contact form the lead guest fills in before booking.
type GuestForm struct {
	Title     string `json:"title"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Email     string `json:"email" binding:"required"`
	Phone     string `json:"phone"`
}

// BookParams is everything the Book step needs: the code and fare captured
// earlier plus the guest form and occupancy counts.
type BookParams struct {
	BookingCode        string
	BookingReferenceID string
	Form               GuestForm
	TotalFare          float64
	Rooms              int
	Guests             int
}

type BookOutcome struct {
	Succeeded          bool          `json:"succeeded"`
	Message            string        `json:"message"`
	ConfirmationNumber string        `json:"confirmation_number,omitempty"`
	ClientReferenceID  string        `json:"client_reference_id,omitempty"`
	Response           *BookResponse `json:"response,omitempty"`
}

// Book issues the final booking. Success requires both a "200" Status and a
// BookingStatus other than "Failed" — the upstream can report a failed
// reservation inside an otherwise successful response.
func (w *ReservationWorkflow) Book(ctx context.Context, p BookParams) (*BookOutcome, error) {
	if p.BookingCode == "" {
		return nil, fmt.Errorf("booking code is required")
	}
	if p.BookingReferenceID == "" {
		return nil, fmt.Errorf("booking reference is required")
	}

	clientRef := NewClientReferenceID()
	req := &BookingRequest{
		BookingCode:        p.BookingCode,
		CustomerDetails:    BuildCustomerDetails(p.Form, p.Rooms, p.Guests),
		BookingType:        "Voucher",
		ClientReferenceId:  clientRef,
		BookingReferenceId: p.BookingReferenceID,
		PaymentMode:        "Limit",
		GuestNationality:   DefaultGuestNationality,
		TotalFare:          p.TotalFare,
		EmailId:            p.Form.Email,
		PhoneNumber:        parsePhone(p.Form.Phone),
	}

	resp, err := w.api.Book(ctx, req)
	if err != nil {
		return nil, err
	}
	if resp == nil {
		return &BookOutcome{Message: "No booking response received", ClientReferenceID: clientRef}, nil
	}

	outcome := &BookOutcome{
		ConfirmationNumber: resp.ConfirmationNumber,
		ClientReferenceID:  clientRef,
		Response:           resp,
	}

	if !resp.Status.OK() || resp.BookingStatus == "Failed" {
		msg := resp.Status.Description
		if msg == "" {
			msg = "Booking failed"
		}
		if resp.BookingStatus == "Failed" {
			msg = fmt.Sprintf("Booking failed: %s", msg)
		}
		outcome.Message = msg
		return outcome, nil
	}

	outcome.Succeeded = true
	outcome.Message = "Booking completed successfully"
	return outcome, nil
}

// Cancel relays a cancellation for a booking reference. The upstream response
// is returned raw; the UI decides how to present it.
func (w *ReservationWorkflow) Cancel(ctx context.Context, confirmationNumber string) (json.RawMessage, error) {
	if confirmationNumber == "" {
		return nil, fmt.Errorf("confirmation number is required")
	}
	return w.api.Cancel(ctx, &CancelRequest{ConfirmationNumber: confirmationNumber})
}

// BuildCustomerDetails assembles one CustomerDetails entry per room, each with
// one CustomerNames entry per occupant. The first occupant of every room is
// always an adult; remaining occupants follow the lead guest's surname.
func BuildCustomerDetails(form GuestForm, rooms, guests int) []CustomerDetail {
	if rooms < 1 {
		rooms = DefaultRooms
	}
	if guests < 1 {
		guests = 1
	}

	title := form.Title
	if title == "" {
		title = "Mr"
	}

	details := make([]CustomerDetail, 0, rooms)
	for r := 0; r < rooms; r++ {
		names := make([]CustomerName, 0, guests)
		names = append(names, CustomerName{
			Title:     title,
			FirstName: form.FirstName,
			LastName:  form.LastName,
			Type:      "Adult",
		})
		for g := 1; g < guests; g++ {
			occupantType := "Child"
			if g == 1 {
				occupantType = "Adult"
			}
			names = append(names, CustomerName{
				Title:     "Mr",
				FirstName: fmt.Sprintf("Guest%d", g+1),
				LastName:  form.LastName,
				Type:      occupantType,
			})
		}
		details = append(details, CustomerDetail{CustomerNames: names})
	}
	return details
}

// NewClientReferenceID builds a per-request reference: a 14-digit UTC
// timestamp and a 3-digit random suffix, e.g. "20260831142501#417".
func NewClientReferenceID() string {
	return fmt.Sprintf("%s#%03d", time.Now().UTC().Format("20060102150405"), rand.Intn(1000))
}

func parsePhone(phone string) int64 {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, phone)
	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0
	}
	return n
}
