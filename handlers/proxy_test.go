package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"hotelrbs/services"
)

// newTestRouter points the shared clients at a fake upstream and returns a
// router with the full route table mounted.
func newTestRouter(t *testing.T, upstream http.Handler) *gin.Engine {
	t.Helper()
	srv := httptest.NewServer(upstream)
	t.Cleanup(srv.Close)

	t.Setenv("API_BASE_URL", srv.URL)
	t.Setenv("API_USERNAME", "user")
	t.Setenv("API_PASSWORD", "secret")
	t.Setenv("CUSTOMER_API_BASE_URL", srv.URL)
	require.NoError(t, services.InitTravzilla())
	services.InitCustomerAPI()

	gin.SetMode(gin.TestMode)
	r := gin.New()
	Register(r.Group("/api"))
	return r
}

func doJSON(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestTestEndpoint(t *testing.T) {
	r := newTestRouter(t, http.NotFoundHandler())

	w := doJSON(r, http.MethodGet, "/api/test", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, true, resp["success"])
	require.Equal(t, "Proxy server is working!", resp["message"])
	require.NotEmpty(t, resp["timestamp"])
	require.Equal(t, "unknown", resp["origin"])
}

func TestHotelSearchRelaysVerbatim(t *testing.T) {
	upstreamBody := `{"Status":{"Code":"200"},"HotelResult":[{"HotelCode":"100"}]}`
	var gotPath, gotBody string
	r := newTestRouter(t, http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		gotPath = req.URL.Path
		b, _ := io.ReadAll(req.Body)
		gotBody = string(b)
		w.Write([]byte(upstreamBody))
	}))

	w := doJSON(r, http.MethodPost, "/api/hotel-search", `{"CheckIn":"2026-09-01","HotelCodes":"100"}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, services.EndpointSearch, gotPath)
	require.JSONEq(t, `{"CheckIn":"2026-09-01","HotelCodes":"100"}`, gotBody)
	require.JSONEq(t, upstreamBody, w.Body.String())
}

func TestHotelSearchNullFallsBackToSyntheticHotel(t *testing.T) {
	r := newTestRouter(t, http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte("null"))
	}))

	w := doJSON(r, http.MethodPost, "/api/hotel-search", `{"HotelCodes":"does-not-exist"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp services.SearchResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.HotelResult, 1)
	require.Equal(t, "414792", resp.HotelResult[0].HotelCode)
	require.NotEmpty(t, resp.HotelResult[0].Rooms[0].BookingCode)
}

func TestHotelPrebookNullBecomesStatus400Payload(t *testing.T) {
	r := newTestRouter(t, http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte("null"))
	}))

	w := doJSON(r, http.MethodPost, "/api/hotel-prebook", `{"BookingCode":"x"}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"Status":{"Code":"400","Description":"No prebook response received"}}`, w.Body.String())
}

func TestProxyErrorIsReportedAs500(t *testing.T) {
	r := newTestRouter(t, http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))

	w := doJSON(r, http.MethodPost, "/api/hotel-book", `{"BookingCode":"x"}`)
	require.Equal(t, http.StatusInternalServerError, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "Hotel booking proxy error", resp["error"])
	require.NotEmpty(t, resp["message"])
}

func TestCountryListForwardsAsGet(t *testing.T) {
	var gotMethod string
	r := newTestRouter(t, http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		gotMethod = req.Method
		w.Write([]byte(`{"Status":{"Code":"200"},"CountryList":[{"Code":"AE","Name":"United Arab Emirates"}]}`))
	}))

	w := doJSON(r, http.MethodGet, "/api/CountryList", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, http.MethodGet, gotMethod)
	require.Contains(t, w.Body.String(), "United Arab Emirates")
}

func TestCustomerLookupRelay(t *testing.T) {
	r := newTestRouter(t, http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		require.Equal(t, "/customer/jane@example.com", req.URL.Path)
		w.Write([]byte(`{"success":true,"data":{"customer_id":"cust-1"}}`))
	}))

	w := doJSON(r, http.MethodGet, "/api/customer/jane@example.com", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "cust-1")
}
