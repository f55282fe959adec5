package services

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestForwardSendsBasicAuthAndRelaysBody(t *testing.T) {
	var gotUser, gotPass string
	var gotBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser, gotPass, _ = r.BasicAuth()
		gotBody, _ = io.ReadAll(r.Body)
		w.Write([]byte(`{"Status":{"Code":"200"}}`))
	}))
	defer srv.Close()

	client := NewTravzillaClient(srv.URL, "user", "secret")
	raw, err := client.Forward(context.Background(), http.MethodPost, EndpointSearch, []byte(`{"CheckIn":"2026-09-01"}`))
	require.NoError(t, err)
	require.Equal(t, "user", gotUser)
	require.Equal(t, "secret", gotPass)
	require.JSONEq(t, `{"CheckIn":"2026-09-01"}`, string(gotBody))
	require.JSONEq(t, `{"Status":{"Code":"200"}}`, string(raw))
}

func TestForwardReportsUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "authentication failed", http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := NewTravzillaClient(srv.URL, "user", "wrong")
	_, err := client.Forward(context.Background(), http.MethodPost, EndpointSearch, nil)

	var upstreamErr *UpstreamError
	require.ErrorAs(t, err, &upstreamErr)
	require.Equal(t, http.StatusUnauthorized, upstreamErr.StatusCode)
	require.Equal(t, EndpointSearch, upstreamErr.Endpoint)
}

func TestForwardWrapsNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	client := NewTravzillaClient(srv.URL, "user", "secret")
	_, err := client.Forward(context.Background(), http.MethodPost, EndpointSearch, nil)
	require.ErrorIs(t, err, ErrUpstreamUnavailable)
}

func TestSearchTreatsNullAsNoResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("null"))
	}))
	defer srv.Close()

	client := NewTravzillaClient(srv.URL, "user", "secret")
	resp, err := client.Search(context.Background(), &SearchRequest{})
	require.NoError(t, err)
	require.Nil(t, resp)
}

func TestInitTravzillaFailsClosedWithoutCredentials(t *testing.T) {
	t.Setenv("API_USERNAME", "")
	t.Setenv("API_PASSWORD", "")

	err := InitTravzilla()
	var confErr *ConfigurationError
	require.ErrorAs(t, err, &confErr)
	require.ElementsMatch(t, []string{"API_USERNAME", "API_PASSWORD"}, confErr.Missing)
}

func TestIsNullJSON(t *testing.T) {
	require.True(t, IsNullJSON([]byte("null")))
	require.True(t, IsNullJSON([]byte("  null\n")))
	require.True(t, IsNullJSON(nil))
	require.False(t, IsNullJSON([]byte("{}")))
}

func TestCancelRelaysRawBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, EndpointCancel, r.URL.Path)
		w.Write([]byte(`{"Status":{"Code":"200","Description":"Cancelled"}}`))
	}))
	defer srv.Close()

	client := NewTravzillaClient(srv.URL, "user", "secret")
	raw, err := client.Cancel(context.Background(), &CancelRequest{ConfirmationNumber: "CN-1"})
	require.NoError(t, err)
	require.JSONEq(t, `{"Status":{"Code":"200","Description":"Cancelled"}}`, string(raw))
}

func TestContextCancellationPassesThrough(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	client := NewTravzillaClient(srv.URL, "user", "secret")
	_, err := client.Forward(ctx, http.MethodGet, EndpointCountryList, nil)
	require.True(t, errors.Is(err, context.Canceled))
}
