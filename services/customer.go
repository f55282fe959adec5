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

	"github.com/google/uuid"
)

// ─── Customer API Client ──────────────────────────────────────────────────────
//
// Client for the customer/booking-reference microservice. Separate deployment
// from the inventory API, no authentication.

const defaultCustomerBaseURL = "http://hotelrbs.us-east-1.elasticbeanstalk.com"

type CustomerClient struct {
	baseURL    string
	httpClient *http.Client
}

var customerClient *CustomerClient

func InitCustomerAPI() {
	baseURL := os.Getenv("CUSTOMER_API_BASE_URL")
	if baseURL == "" {
		baseURL = defaultCustomerBaseURL
	}

	customerClient = NewCustomerClient(baseURL)
	log.Printf("✅ Customer API client configured for %s", baseURL)
}

func NewCustomerClient(baseURL string) *CustomerClient {
	return &CustomerClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

func GetCustomerClient() *CustomerClient {
	return customerClient
}

type CustomerProfile struct {
	CustomerID  string `json:"customer_id"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	Nationality string `json:"nationality,omitempty"`
	Phone       string `json:"phone,omitempty"`
}

type customerLookupResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Data    CustomerProfile `json:"data"`
}

type bookingReferenceResponse struct {
	Success            bool   `json:"success"`
	Message            string `json:"message"`
	BookingReferenceID string `json:"booking_reference_id"`
}

// Forward relays a request verbatim, for the proxy endpoints.
func (c *CustomerClient) Forward(ctx context.Context, method, path string, body []byte) (json.RawMessage, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrUpstreamUnavailable, path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: read body: %v", ErrUpstreamUnavailable, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &UpstreamError{Endpoint: path, StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	return respBody, nil
}

func (c *CustomerClient) LookupCustomer(ctx context.Context, email string) (*CustomerProfile, error) {
	raw, err := c.Forward(ctx, http.MethodGet, "/customer/"+email, nil)
	if err != nil {
		return nil, err
	}

	var resp customerLookupResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("decode customer lookup: %w", err)
	}
	if !resp.Success || resp.Data.CustomerID == "" {
		return nil, fmt.Errorf("customer not found: %s", email)
	}
	return &resp.Data, nil
}

func (c *CustomerClient) GenerateBookingReference(ctx context.Context, customerID string) (string, error) {
	body, err := json.Marshal(map[string]string{"customer_id": customerID})
	if err != nil {
		return "", fmt.Errorf("marshal booking reference request: %w", err)
	}

	raw, err := c.Forward(ctx, http.MethodPost, "/bookings/reference", body)
	if err != nil {
		return "", err
	}

	var resp bookingReferenceResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return "", fmt.Errorf("decode booking reference: %w", err)
	}
	if !resp.Success || resp.BookingReferenceID == "" {
		return "", fmt.Errorf("booking reference generation failed: %s", resp.Message)
	}
	return resp.BookingReferenceID, nil
}

// ─── Identity resolution ──────────────────────────────────────────────────────

// Identity is what the booking step needs to know about who is booking.
type Identity struct {
	Customer           CustomerProfile
	BookingReferenceID string
	Guest              bool
}

// SynthesizeGuestIdentity fabricates a temporary customer id and booking
// reference for first-time users. There is no signup API upstream; this is an
// explicit placeholder so a real signup integration can replace it without
// touching the booking workflow's contract.
func SynthesizeGuestIdentity(email string) *Identity {
	return &Identity{
		Customer: CustomerProfile{
			CustomerID: "guest_" + uuid.New().String(),
			FirstName:  "Guest",
			Email:      email,
		},
		BookingReferenceID: fmt.Sprintf("GUEST_%d", time.Now().UTC().UnixMilli()),
		Guest:              true,
	}
}

// ResolveIdentity looks up an existing customer by email and generates a
// booking reference for them, falling back to guest identity synthesis when
// the customer service cannot serve either step.
func (c *CustomerClient) ResolveIdentity(ctx context.Context, email string) *Identity {
	profile, err := c.LookupCustomer(ctx, email)
	if err != nil {
		log.Printf("⚠️  Customer lookup failed for %s: %v — using guest identity", email, err)
		return SynthesizeGuestIdentity(email)
	}

	ref, err := c.GenerateBookingReference(ctx, profile.CustomerID)
	if err != nil {
		log.Printf("⚠️  Booking reference generation failed for %s: %v — using guest identity", profile.CustomerID, err)
		return SynthesizeGuestIdentity(email)
	}

	return &Identity{Customer: *profile, BookingReferenceID: ref}
}
