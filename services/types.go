package services

import (
	"bytes"
	"encoding/json"
)

// ─── Wire types ───────────────────────────────────────────────────────────────
//
// Request/response shapes of the Travzilla hotel inventory API. The API is
// loose about shapes: several fields arrive either as a single object or as an
// array, and booleans arrive as the strings "true"/"false". All of that is
// normalized here, at the boundary, so the rest of the code never branches on
// shape.

type Status struct {
	Code        string `json:"Code"`
	Description string `json:"Description"`
}

// OK reports a successful business status. The upstream can return HTTP 200
// with any Status code; only the literal "200" means success.
func (s Status) OK() bool {
	return s.Code == "200"
}

type Country struct {
	Code string `json:"Code"`
	Name string `json:"Name"`
}

type CountryListResponse struct {
	Status      Status    `json:"Status"`
	CountryList []Country `json:"CountryList"`
}

type City struct {
	CityCode string `json:"CityCode"`
	CityName string `json:"CityName"`
}

type CityListRequest struct {
	CountryCode string `json:"CountryCode"`
}

type CityListResponse struct {
	Status   Status `json:"Status"`
	CityList []City `json:"CityList"`
}

type HotelCodeListRequest struct {
	CountryCode        string `json:"CountryCode"`
	CityCode           string `json:"CityCode"`
	IsDetailedResponse bool   `json:"IsDetailedResponse"`
}

type HotelListing struct {
	HotelCode string `json:"HotelCode"`
	HotelName string `json:"HotelName"`
	CityCode  string `json:"CityCode"`
	Address   string `json:"Address,omitempty"`
}

type HotelCodeListResponse struct {
	Status Status         `json:"Status"`
	Hotels []HotelListing `json:"Hotels"`
}

type PaxRoom struct {
	Adults       int   `json:"Adults"`
	Children     int   `json:"Children"`
	ChildrenAges []int `json:"ChildrenAges"`
}

type SearchRequest struct {
	CheckIn               string    `json:"CheckIn"`
	CheckOut              string    `json:"CheckOut"`
	HotelCodes            string    `json:"HotelCodes"`
	GuestNationality      string    `json:"GuestNationality"`
	PreferredCurrencyCode string    `json:"PreferredCurrencyCode"`
	PaxRooms              []PaxRoom `json:"PaxRooms"`
	IsDetailResponse      bool      `json:"IsDetailResponse"`
	ResponseTime          int       `json:"ResponseTime"`
}

type Room struct {
	Name          string      `json:"Name"`
	BookingCode   string      `json:"BookingCode"`
	Inclusion     string      `json:"Inclusion"`
	Price         float64     `json:"Price,omitempty"`
	Currency      string      `json:"Currency,omitempty"`
	TotalFare     json.Number `json:"TotalFare"`
	TotalTax      json.Number `json:"TotalTax"`
	MealType      string      `json:"MealType"`
	IsRefundable  StringBool  `json:"IsRefundable"`
	WithTransfers StringBool  `json:"WithTransfers"`
	Amenities     []string    `json:"Amenities,omitempty"`
}

type HotelSearchResult struct {
	HotelCode  string   `json:"HotelCode"`
	HotelName  string   `json:"HotelName"`
	Address    string   `json:"Address"`
	StarRating string   `json:"StarRating"`
	FrontImage string   `json:"FrontImage"`
	Currency   string   `json:"Currency"`
	Rooms      RoomList `json:"Rooms"`
}

type SearchResponse struct {
	Status      Status          `json:"Status"`
	HotelResult HotelResultList `json:"HotelResult"`
}

type HotelDetailsRequest struct {
	Hotelcodes string `json:"Hotelcodes"`
	Language   string `json:"Language"`
}

type HotelDetails struct {
	HotelCode       string   `json:"HotelCode"`
	HotelName       string   `json:"HotelName"`
	Address         string   `json:"Address"`
	CityName        string   `json:"CityName"`
	CountryName     string   `json:"CountryName"`
	StarRating      string   `json:"StarRating"`
	FrontImage      string   `json:"FrontImage"`
	Images          []string `json:"Images,omitempty"`
	Description     string   `json:"Description,omitempty"`
	HotelFacilities []string `json:"HotelFacilities,omitempty"`
}

// HotelDetailsResponse sometimes carries a room (with a booking code) at the
// top level next to the descriptive details.
type HotelDetailsResponse struct {
	Status       Status       `json:"Status"`
	HotelDetails HotelDetails `json:"HotelDetails"`
	Rooms        RoomList     `json:"Rooms,omitempty"`
}

type PrebookRequest struct {
	BookingCode string `json:"BookingCode"`
	PaymentMode string `json:"PaymentMode"`
}

type PrebookResponse struct {
	Status      Status          `json:"Status"`
	HotelResult HotelResultList `json:"HotelResult,omitempty"`
}

type CustomerName struct {
	Title     string `json:"Title"`
	FirstName string `json:"FirstName"`
	LastName  string `json:"LastName"`
	Type      string `json:"Type"` // "Adult" or "Child"
}

type CustomerDetail struct {
	CustomerNames []CustomerName `json:"CustomerNames"`
}

type BookingRequest struct {
	BookingCode        string           `json:"BookingCode"`
	CustomerDetails    []CustomerDetail `json:"CustomerDetails"`
	BookingType        string           `json:"BookingType"`
	ClientReferenceId  string           `json:"ClientReferenceId"`
	BookingReferenceId string           `json:"BookingReferenceId"`
	PaymentMode        string           `json:"PaymentMode"`
	GuestNationality   string           `json:"GuestNationality"`
	TotalFare          float64          `json:"TotalFare"`
	EmailId            string           `json:"EmailId"`
	PhoneNumber        int64            `json:"PhoneNumber"`
}

// BookResponse carries two independent verdicts: the transport-level Status
// and the reservation-level BookingStatus. A booking has succeeded only when
// Status is "200" AND BookingStatus is not "Failed".
type BookResponse struct {
	Status             Status `json:"Status"`
	BookingStatus      string `json:"BookingStatus,omitempty"`
	ConfirmationNumber string `json:"ConfirmationNumber,omitempty"`
	ClientReferenceId  string `json:"ClientReferenceId,omitempty"`
}

type CancelRequest struct {
	ConfirmationNumber string `json:"ConfirmationNumber"`
}

// ─── Shape normalization ──────────────────────────────────────────────────────

// RoomList decodes the upstream "Rooms" field, which is a single room object
// for some rates and an array of rooms for others. It always marshals back as
// an array.
type RoomList []Room

func (rl *RoomList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*rl = nil
		return nil
	}
	if data[0] == '[' {
		var rooms []Room
		if err := json.Unmarshal(data, &rooms); err != nil {
			return err
		}
		*rl = rooms
		return nil
	}
	var room Room
	if err := json.Unmarshal(data, &room); err != nil {
		return err
	}
	*rl = RoomList{room}
	return nil
}

// HotelResultList decodes the upstream "HotelResult" field, which is an array
// for multi-hotel searches and a bare object for single-hotel ones.
type HotelResultList []HotelSearchResult

func (hl *HotelResultList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*hl = nil
		return nil
	}
	if data[0] == '[' {
		var hotels []HotelSearchResult
		if err := json.Unmarshal(data, &hotels); err != nil {
			return err
		}
		*hl = hotels
		return nil
	}
	var hotel HotelSearchResult
	if err := json.Unmarshal(data, &hotel); err != nil {
		return err
	}
	*hl = HotelResultList{hotel}
	return nil
}

// StringBool decodes the upstream string-typed booleans ("true"/"false") as
// well as real JSON booleans, and marshals back in the upstream's string form.
type StringBool bool

func (b *StringBool) UnmarshalJSON(data []byte) error {
	switch string(bytes.TrimSpace(data)) {
	case `"true"`, `true`:
		*b = true
	case `"false"`, `false`, `""`, `null`:
		*b = false
	default:
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*b = s == "true"
	}
	return nil
}

func (b StringBool) MarshalJSON() ([]byte, error) {
	if b {
		return []byte(`"true"`), nil
	}
	return []byte(`"false"`), nil
}
