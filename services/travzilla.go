package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"
)

// ─── Travzilla Client ─────────────────────────────────────────────────────────
//
// Thin authenticated client for the Travzilla hotel inventory API. One method
// per upstream operation; no retries here — retry policy, if any, belongs to
// the caller. A literal null body is a valid "no results" payload, not an
// error: typed methods report it as a nil response with a nil error.

const (
	defaultTravzillaBaseURL = "http://api.travzillapro.com/HotelServiceRest"

	EndpointSearch        = "/Search"
	EndpointHotelDetails  = "/Hoteldetails"
	EndpointHotelRoom     = "/HotelRoom"
	EndpointPrebook       = "/Prebook"
	EndpointHotelBook     = "/HotelBook"
	EndpointCancel        = "/Cancel"
	EndpointCountryList   = "/CountryList"
	EndpointCityList      = "/CityList"
	EndpointHotelCodeList = "/HotelCodeList"
)

type TravzillaClient struct {
	baseURL    string
	username   string
	password   string
	httpClient *http.Client
}

var (
	travzillaClient *TravzillaClient
	codeFinder      *BookingCodeFinder
)

// InitTravzilla builds the shared client from API_BASE_URL / API_USERNAME /
// API_PASSWORD. Credentials are mandatory: the server must fail closed rather
// than issue unauthenticated calls.
func InitTravzilla() error {
	baseURL := os.Getenv("API_BASE_URL")
	if baseURL == "" {
		baseURL = defaultTravzillaBaseURL
	}

	username := os.Getenv("API_USERNAME")
	password := os.Getenv("API_PASSWORD")

	var missing []string
	if username == "" {
		missing = append(missing, "API_USERNAME")
	}
	if password == "" {
		missing = append(missing, "API_PASSWORD")
	}
	if len(missing) > 0 {
		return &ConfigurationError{Missing: missing}
	}

	travzillaClient = NewTravzillaClient(baseURL, username, password)
	codeFinder = NewBookingCodeFinder(travzillaClient)

	log.Printf("✅ Travzilla client configured for %s", baseURL)
	return nil
}

func NewTravzillaClient(baseURL, username, password string) *TravzillaClient {
	return &TravzillaClient{
		baseURL:  baseURL,
		username: username,
		password: password,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func GetTravzillaClient() *TravzillaClient {
	return travzillaClient
}

// Forward relays a caller-supplied JSON body verbatim to the given upstream
// endpoint and returns the raw response body. The proxy endpoints are built
// on this so request and response pass through byte-for-byte.
func (c *TravzillaClient) Forward(ctx context.Context, method, endpoint string, body []byte) (json.RawMessage, error) {
	return c.doRequest(ctx, method, endpoint, body)
}

func (c *TravzillaClient) doRequest(ctx context.Context, method, endpoint string, body []byte) (json.RawMessage, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.SetBasicAuth(c.username, c.password)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrUpstreamUnavailable, endpoint, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: read body: %v", ErrUpstreamUnavailable, endpoint, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &UpstreamError{Endpoint: endpoint, StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	return respBody, nil
}

// IsNullJSON reports whether a raw upstream body is the literal null payload
// the API uses for "no results".
func IsNullJSON(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

// ─── Typed operations ─────────────────────────────────────────────────────────

func (c *TravzillaClient) Search(ctx context.Context, req *SearchRequest) (*SearchResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal search request: %w", err)
	}
	raw, err := c.doRequest(ctx, http.MethodPost, EndpointSearch, body)
	if err != nil {
		return nil, err
	}
	if IsNullJSON(raw) {
		return nil, nil
	}
	var resp SearchResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}
	return &resp, nil
}

func (c *TravzillaClient) HotelDetails(ctx context.Context, hotelCode string) (*HotelDetailsResponse, error) {
	body, err := json.Marshal(&HotelDetailsRequest{Hotelcodes: hotelCode, Language: "en"})
	if err != nil {
		return nil, fmt.Errorf("marshal hotel details request: %w", err)
	}
	raw, err := c.doRequest(ctx, http.MethodPost, EndpointHotelDetails, body)
	if err != nil {
		return nil, err
	}
	if IsNullJSON(raw) {
		return nil, nil
	}
	var resp HotelDetailsResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("decode hotel details response: %w", err)
	}
	return &resp, nil
}

func (c *TravzillaClient) Prebook(ctx context.Context, req *PrebookRequest) (*PrebookResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal prebook request: %w", err)
	}
	raw, err := c.doRequest(ctx, http.MethodPost, EndpointPrebook, body)
	if err != nil {
		return nil, err
	}
	if IsNullJSON(raw) {
		return nil, nil
	}
	var resp PrebookResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("decode prebook response: %w", err)
	}
	return &resp, nil
}

func (c *TravzillaClient) Book(ctx context.Context, req *BookingRequest) (*BookResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal booking request: %w", err)
	}
	raw, err := c.doRequest(ctx, http.MethodPost, EndpointHotelBook, body)
	if err != nil {
		return nil, err
	}
	if IsNullJSON(raw) {
		return nil, nil
	}
	var resp BookResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("decode booking response: %w", err)
	}
	return &resp, nil
}

func (c *TravzillaClient) Cancel(ctx context.Context, req *CancelRequest) (json.RawMessage, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal cancel request: %w", err)
	}
	return c.doRequest(ctx, http.MethodPost, EndpointCancel, body)
}

func (c *TravzillaClient) CountryList(ctx context.Context) (*CountryListResponse, error) {
	raw, err := c.doRequest(ctx, http.MethodGet, EndpointCountryList, nil)
	if err != nil {
		return nil, err
	}
	if IsNullJSON(raw) {
		return nil, nil
	}
	var resp CountryListResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("decode country list: %w", err)
	}
	return &resp, nil
}

func (c *TravzillaClient) CityList(ctx context.Context, countryCode string) (*CityListResponse, error) {
	body, err := json.Marshal(&CityListRequest{CountryCode: countryCode})
	if err != nil {
		return nil, fmt.Errorf("marshal city list request: %w", err)
	}
	raw, err := c.doRequest(ctx, http.MethodPost, EndpointCityList, body)
	if err != nil {
		return nil, err
	}
	if IsNullJSON(raw) {
		return nil, nil
	}
	var resp CityListResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("decode city list: %w", err)
	}
	return &resp, nil
}

func (c *TravzillaClient) HotelCodeList(ctx context.Context, countryCode, cityCode string) (*HotelCodeListResponse, error) {
	body, err := json.Marshal(&HotelCodeListRequest{CountryCode: countryCode, CityCode: cityCode})
	if err != nil {
		return nil, fmt.Errorf("marshal hotel code list request: %w", err)
	}
	raw, err := c.doRequest(ctx, http.MethodPost, EndpointHotelCodeList, body)
	if err != nil {
		return nil, err
	}
	if IsNullJSON(raw) {
		return nil, nil
	}
	var resp HotelCodeListResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("decode hotel code list: %w", err)
	}
	return &resp, nil
}
