package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"portfolio-web/api"
	"portfolio-web/pkg/response"
)

// Client talks to the portfolio backend REST API. The backend is the
// sole arbiter of booking conflicts; this client performs single
// attempts and never retries.
type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// APIError carries the backend's HTTP status and its human-readable
// detail string, verbatim.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("backend: %d: %s", e.Status, e.Detail)
	}

	return fmt.Sprintf("backend: %d", e.Status)
}

// Detail returns the backend-provided message from err if there is one.
func Detail(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Detail
	}

	return ""
}

type errorBody struct {
	Detail string `json:"detail"`
}

func (c *Client) do(ctx context.Context, method, path, token string, body, out interface{}) error {
	const op = "backend.Client.do"

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return response.ErrNotFound
	}

	if resp.StatusCode >= 400 {
		var eb errorBody
		json.NewDecoder(resp.Body).Decode(&eb)

		return &APIError{Status: resp.StatusCode, Detail: eb.Detail}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	return nil
}

// Login exchanges admin credentials for a bearer token. The backend's
// token endpoint takes a urlencoded form, not JSON.
func (c *Client) Login(ctx context.Context, email, password string) (*api.TokenResponse, error) {
	const op = "backend.Client.Login"

	form := url.Values{}
	form.Set("username", email)
	form.Set("password", password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1/login/token", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var eb errorBody
		json.NewDecoder(resp.Body).Decode(&eb)

		return nil, &APIError{Status: resp.StatusCode, Detail: eb.Detail}
	}

	var token api.TokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &token, nil
}

// Albums

func (c *Client) ListAlbums(ctx context.Context) ([]api.AlbumResponse, error) {
	var albums []api.AlbumResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/albums/", "", nil, &albums); err != nil {
		return nil, err
	}

	return albums, nil
}

func (c *Client) GetAlbum(ctx context.Context, id int) (*api.AlbumResponse, error) {
	var album api.AlbumResponse
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/v1/albums/%d", id), "", nil, &album); err != nil {
		return nil, err
	}

	return &album, nil
}

func (c *Client) CreateAlbum(ctx context.Context, token string, req *api.AlbumRequest) (*api.AlbumResponse, error) {
	var album api.AlbumResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/albums/", token, req, &album); err != nil {
		return nil, err
	}

	return &album, nil
}

func (c *Client) UpdateAlbum(ctx context.Context, token string, id int, req *api.AlbumRequest) (*api.AlbumResponse, error) {
	var album api.AlbumResponse
	if err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/api/v1/albums/%d", id), token, req, &album); err != nil {
		return nil, err
	}

	return &album, nil
}

func (c *Client) DeleteAlbum(ctx context.Context, token string, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/v1/albums/%d", id), token, nil, nil)
}

func (c *Client) ReorderAlbums(ctx context.Context, token string, albumIDs []int) error {
	req := api.AlbumReorderRequest{AlbumIDs: albumIDs}

	return c.do(ctx, http.MethodPost, "/api/v1/albums/reorder", token, &req, nil)
}

// Photos

func (c *Client) ListPhotos(ctx context.Context) ([]api.PhotoResponse, error) {
	var photos []api.PhotoResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/photos/", "", nil, &photos); err != nil {
		return nil, err
	}

	return photos, nil
}

func (c *Client) PhotosByAlbum(ctx context.Context, albumID int) ([]api.PhotoResponse, error) {
	var photos []api.PhotoResponse
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/v1/photos/album/%d", albumID), "", nil, &photos); err != nil {
		return nil, err
	}

	return photos, nil
}

func (c *Client) UpdatePhoto(ctx context.Context, token string, id int, req *api.PhotoUpdateRequest) (*api.PhotoResponse, error) {
	var photo api.PhotoResponse
	if err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/api/v1/photos/%d", id), token, req, &photo); err != nil {
		return nil, err
	}

	return &photo, nil
}

func (c *Client) DeletePhoto(ctx context.Context, token string, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/v1/photos/%d", id), token, nil, nil)
}

// Bookings

func (c *Client) PublicBookings(ctx context.Context) ([]api.PublicBookingResponse, error) {
	var bookings []api.PublicBookingResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/bookings/public", "", nil, &bookings); err != nil {
		return nil, err
	}

	return bookings, nil
}

func (c *Client) CreateBooking(ctx context.Context, req *api.BookingRequest) (*api.BookingResponse, error) {
	var booking api.BookingResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/bookings/", "", req, &booking); err != nil {
		return nil, err
	}

	return &booking, nil
}

func (c *Client) ListBookings(ctx context.Context, token string) ([]api.BookingResponse, error) {
	var bookings []api.BookingResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/bookings/", token, nil, &bookings); err != nil {
		return nil, err
	}

	return bookings, nil
}

func (c *Client) UpdateBookingStatus(ctx context.Context, token string, id int, status string) (*api.BookingResponse, error) {
	req := api.BookingStatusRequest{Status: status}

	var booking api.BookingResponse
	if err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/api/v1/bookings/%d", id), token, &req, &booking); err != nil {
		return nil, err
	}

	return &booking, nil
}

func (c *Client) DeleteBooking(ctx context.Context, token string, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/v1/bookings/%d", id), token, nil, nil)
}
