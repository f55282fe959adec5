package services

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"sync"
	"time"
)

// ─── Booking-Code Pipeline ────────────────────────────────────────────────────
//
// Discovers the opaque booking code a Prebook/Book call needs for a hotel.
// Ordered attempts, first hit wins:
//
//  1. hotel details lookup — some rates embed a booking code there (cheapest)
//  2. parameterized search with the caller's stay, matched back by hotel code
//  3. the same search with default dates (today → tomorrow) and one room
//
// A missed attempt moves on to the next; only malformed numeric input aborts
// the pipeline. All attempts missing is the defined ErrBookingCodeNotFound
// state, not a panic.

type BookingCodeFinder struct {
	api *TravzillaClient

	mu       sync.Mutex
	inFlight map[string]struct{} // keyed by hotel code
}

func NewBookingCodeFinder(api *TravzillaClient) *BookingCodeFinder {
	return &BookingCodeFinder{
		api:      api,
		inFlight: make(map[string]struct{}),
	}
}

func GetBookingCodeFinder() *BookingCodeFinder {
	return codeFinder
}

// StayParams carries the optional stay parameters as the browser sends them.
// Dates may be ISO timestamps or bare YYYY-MM-DD; guests and rooms are
// decimal strings.
type StayParams struct {
	CheckIn  string
	CheckOut string
	Guests   string
	Rooms    string
}

func (p StayParams) complete() bool {
	return p.CheckIn != "" && p.CheckOut != "" && p.Guests != ""
}

// Find runs the pipeline for one hotel. A second concurrent call for the same
// hotel is refused with ErrLookupInFlight: duplicate lookups are wasted
// upstream calls against a rate-limited API.
func (f *BookingCodeFinder) Find(ctx context.Context, hotelCode string, stay StayParams) (string, error) {
	if hotelCode == "" {
		return "", fmt.Errorf("hotel code is required")
	}

	f.mu.Lock()
	if _, busy := f.inFlight[hotelCode]; busy {
		f.mu.Unlock()
		return "", ErrLookupInFlight
	}
	f.inFlight[hotelCode] = struct{}{}
	f.mu.Unlock()

	defer func() {
		f.mu.Lock()
		delete(f.inFlight, hotelCode)
		f.mu.Unlock()
	}()

	// Attempt 1: booking code embedded in hotel details.
	if details, err := f.api.HotelDetails(ctx, hotelCode); err == nil && details != nil {
		if code := firstBookingCode(details.Rooms); code != "" {
			return code, nil
		}
	} else if err != nil {
		log.Printf("⚠️  Hotel details lookup failed for %s: %v — falling back to search", hotelCode, err)
	}

	// Attempt 2: search with the caller's stay parameters.
	if stay.complete() {
		guests, err := strconv.Atoi(stay.Guests)
		if err != nil {
			return "", fmt.Errorf("invalid guest count %q: %w", stay.Guests, err)
		}
		rooms := DefaultRooms
		if stay.Rooms != "" {
			rooms, err = strconv.Atoi(stay.Rooms)
			if err != nil {
				return "", fmt.Errorf("invalid room count %q: %w", stay.Rooms, err)
			}
		}

		req := buildCodeSearchRequest(hotelCode, normalizeDate(stay.CheckIn), normalizeDate(stay.CheckOut), guests, rooms)
		if code := f.searchForCode(ctx, hotelCode, req); code != "" {
			return code, nil
		}
	}

	// Attempt 3: retry with default dates and a single room.
	today := time.Now().UTC()
	req := buildCodeSearchRequest(hotelCode, today.Format("2006-01-02"), today.AddDate(0, 0, 1).Format("2006-01-02"), DefaultAdults, DefaultRooms)
	if code := f.searchForCode(ctx, hotelCode, req); code != "" {
		return code, nil
	}

	return "", ErrBookingCodeNotFound
}

func (f *BookingCodeFinder) searchForCode(ctx context.Context, hotelCode string, req *SearchRequest) string {
	resp, err := f.api.Search(ctx, req)
	if err != nil {
		log.Printf("⚠️  Booking-code search failed for %s: %v", hotelCode, err)
		return ""
	}
	return bookingCodeFromSearch(resp, hotelCode)
}

func buildCodeSearchRequest(hotelCode, checkIn, checkOut string, guests, rooms int) *SearchRequest {
	if rooms < 1 {
		rooms = DefaultRooms
	}
	paxRooms := make([]PaxRoom, rooms)
	for i := range paxRooms {
		paxRooms[i] = PaxRoom{Adults: guests, Children: DefaultChildren, ChildrenAges: []int{}}
	}

	return &SearchRequest{
		CheckIn:               checkIn,
		CheckOut:              checkOut,
		HotelCodes:            hotelCode,
		GuestNationality:      DefaultGuestNationality,
		PreferredCurrencyCode: DefaultCurrency,
		PaxRooms:              paxRooms,
		IsDetailResponse:      true,
		ResponseTime:          DefaultResponseTime,
	}
}

// bookingCodeFromSearch picks the booking code for the requested hotel out of
// a search response. HotelResult and Rooms shape variance is already
// normalized by the wire types.
func bookingCodeFromSearch(resp *SearchResponse, hotelCode string) string {
	if resp == nil {
		return ""
	}
	for _, hotel := range resp.HotelResult {
		if hotel.HotelCode != hotelCode {
			continue
		}
		if code := firstBookingCode(hotel.Rooms); code != "" {
			return code
		}
	}
	return ""
}

func firstBookingCode(rooms RoomList) string {
	for _, room := range rooms {
		if room.BookingCode != "" {
			return room.BookingCode
		}
	}
	return ""
}

// normalizeDate strips the time part off an ISO timestamp; the upstream API
// only accepts bare YYYY-MM-DD dates.
func normalizeDate(date string) string {
	if idx := strings.IndexByte(date, 'T'); idx > 0 {
		return date[:idx]
	}
	return date
}
