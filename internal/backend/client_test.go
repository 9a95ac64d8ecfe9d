package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio-web/api"
	"portfolio-web/pkg/response"
)

func TestPublicBookings(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/api/v1/bookings/public", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":1,"booking_date":"2024-03-11T10:00:00Z","notes":"Duration: 2 hour(s)"}]`))
	}))
	defer srv.Close()

	client := New(srv.URL, 5*time.Second)

	bookings, err := client.PublicBookings(context.Background())
	require.NoError(t, err)
	require.Len(t, bookings, 1)
	assert.Equal(t, time.Date(2024, time.March, 11, 10, 0, 0, 0, time.UTC), bookings[0].BookingDate)
	assert.Equal(t, "Duration: 2 hour(s)", bookings[0].Notes)
}

func TestCreateBookingSurfacesDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/bookings/", r.URL.Path)

		var req api.BookingRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Anna Nowak", req.ClientName)

		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"detail":"Slot already booked"}`))
	}))
	defer srv.Close()

	client := New(srv.URL, 5*time.Second)

	_, err := client.CreateBooking(context.Background(), &api.BookingRequest{
		ClientName:  "Anna Nowak",
		ClientEmail: "anna@example.com",
		ServiceName: "Photo Session",
		BookingDate: time.Date(2024, time.March, 13, 9, 0, 0, 0, time.UTC),
	})
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.Status)
	assert.Equal(t, "Slot already booked", apiErr.Detail)
	assert.Equal(t, "Slot already booked", Detail(err))
}

func TestCreateBookingWithoutDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`boom`))
	}))
	defer srv.Close()

	client := New(srv.URL, 5*time.Second)

	_, err := client.CreateBooking(context.Background(), &api.BookingRequest{})
	require.Error(t, err)
	assert.Equal(t, "", Detail(err))
}

func TestLoginSendsForm(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/login/token", r.URL.Path)
		require.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "admin@example.com", r.PostForm.Get("username"))
		assert.Equal(t, "secret", r.PostForm.Get("password"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"tok123","token_type":"bearer"}`))
	}))
	defer srv.Close()

	client := New(srv.URL, 5*time.Second)

	token, err := client.Login(context.Background(), "admin@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "tok123", token.AccessToken)
}

func TestAuthorizedRequestsCarryBearerToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer tok123", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	client := New(srv.URL, 5*time.Second)

	_, err := client.ListBookings(context.Background(), "tok123")
	require.NoError(t, err)
}

func TestNotFoundMapsToSentinel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"detail":"Album not found"}`))
	}))
	defer srv.Close()

	client := New(srv.URL, 5*time.Second)

	_, err := client.GetAlbum(context.Background(), 42)
	assert.ErrorIs(t, err, response.ErrNotFound)
}
