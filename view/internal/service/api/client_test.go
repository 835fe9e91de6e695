package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Astemirdum/library-view/pkg/circuit_breaker"
	"github.com/Astemirdum/library-view/view/config"
	"github.com/Astemirdum/library-view/view/internal/errs"
	"github.com/Astemirdum/library-view/view/internal/model"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type staticToken string

func (s staticToken) Token() string { return string(s) }

func newTestClient(t *testing.T, h http.HandlerFunc, token string, opts ...Option) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	opts = append([]Option{WithClock(func() time.Time { return time.UnixMilli(1700000000123) })}, opts...)
	c, err := NewClient(zap.NewNop(), config.API{BaseURL: srv.URL + "/api"}, staticToken(token), opts...)
	require.NoError(t, err)
	return c
}

func TestClient_RequestDecoration(t *testing.T) {
	t.Parallel()
	type seen struct {
		path, query, auth, reqID, cacheControl string
	}
	calls := make(chan seen, 2)
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls <- seen{
			path:         r.URL.Path,
			query:        r.URL.RawQuery,
			auth:         r.Header.Get("Authorization"),
			reqID:        r.Header.Get("X-Request-ID"),
			cacheControl: r.Header.Get("Cache-Control"),
		}
		switch r.URL.Path {
		case "/api/books":
			_, _ = w.Write([]byte(`{"items":[{"id":1,"title":"Dune","created_at":"2024-01-02T10:00:00.123456"}],"total":11}`))
		case "/api/profile":
			_, _ = w.Write([]byte(`{"user":{"id":4,"email":"ann@example.com","role":"member"}}`))
		}
	}, "tok")

	page, err := c.ListBooks(context.Background(), model.Query{Skip: 10, Limit: 10, Search: "dune"})
	require.NoError(t, err)
	require.Equal(t, 11, page.Total)
	require.Len(t, page.Items, 1)
	require.Equal(t, 2024, page.Items[0].CreatedAt.Year())

	got := <-calls
	require.Equal(t, "/api/books", got.path)
	require.Equal(t, "_t=1700000000123&limit=10&search=dune&skip=10", got.query)
	require.Equal(t, "Bearer tok", got.auth)
	require.NotEmpty(t, got.reqID)
	require.Equal(t, "no-cache, no-store, must-revalidate", got.cacheControl)

	profile, err := c.GetProfile(context.Background())
	require.NoError(t, err)
	require.Equal(t, "ann@example.com", profile.User.Email)

	got = <-calls
	require.Equal(t, "/api/profile", got.path)
	require.Empty(t, got.query)
	require.Empty(t, got.cacheControl)
}

func TestClient_Anonymous(t *testing.T) {
	t.Parallel()
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Empty(t, r.Header.Get("Authorization"))
		require.Equal(t, http.MethodPost, r.Method)
		var cred model.Credentials
		require.NoError(t, json.NewDecoder(r.Body).Decode(&cred))
		require.Equal(t, "ann@example.com", cred.Email)
		_, _ = w.Write([]byte(`{"access_token":"abc","token_type":"bearer","role":"admin","user_id":1}`))
	}, "")

	token, err := c.Login(context.Background(), model.Credentials{Email: "ann@example.com", Password: "secret"})
	require.NoError(t, err)
	require.Equal(t, model.Token{AccessToken: "abc", TokenType: "bearer", Role: model.RoleAdmin, UserID: 1}, token)
}

func TestClient_Unauthorized(t *testing.T) {
	t.Parallel()
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail":"Could not validate credentials"}`))
	}, "expired")
	var hooked atomic.Int32
	c.OnUnauthorized(func() { hooked.Add(1) })

	_, err := c.Dashboard(context.Background())
	require.ErrorIs(t, err, errs.ErrUnauthorized)
	_, err = c.UserDashboard(context.Background())
	require.ErrorIs(t, err, errs.ErrUnauthorized)
	require.EqualValues(t, 2, hooked.Load())
}

func TestClient_BackendError(t *testing.T) {
	t.Parallel()
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"detail":"Book not available"}`))
	}, "tok")

	_, err := c.CreateBorrowing(context.Background(), model.BorrowingRequest{BookID: 3, DueDate: model.NewDate(time.Now())})
	var apiErr *errs.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusBadRequest, apiErr.Status)
	require.Equal(t, "Book not available", errs.Message(err, "Failed to borrow book"))
}

func TestClient_ValidationBeforeDispatch(t *testing.T) {
	t.Parallel()
	var hits atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}, "tok")
	ctx := context.Background()

	_, err := c.CreateBorrowing(ctx, model.BorrowingRequest{BookID: 3})
	require.ErrorIs(t, err, errs.ErrValidation)

	req := model.NewBookRequest()
	req.Title, req.Author, req.AvailableCopies = "Dune", "Herbert", 3
	_, err = c.CreateBook(ctx, req)
	require.ErrorIs(t, err, errs.ErrValidation)

	_, err = c.CreateMember(ctx, model.MemberRequest{Name: "Ann", Email: "ann@example.com", CreateUserAccount: true})
	require.ErrorIs(t, err, errs.ErrValidation)

	_, err = c.ReturnBook(ctx, 1, -1)
	require.ErrorIs(t, err, errs.ErrValidation)

	require.Zero(t, hits.Load())
}

func TestClient_ReturnBookFine(t *testing.T) {
	t.Parallel()
	queries := make(chan string, 2)
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "/api/borrowings/7/return", r.URL.Path)
		queries <- r.URL.RawQuery
		_, _ = w.Write([]byte(`{"id":7,"status":"returned","fine_amount":0}`))
	}, "tok")

	b, err := c.ReturnBook(context.Background(), 7, 0)
	require.NoError(t, err)
	require.Equal(t, model.StatusReturned, b.Status)
	require.Empty(t, <-queries)

	_, err = c.ReturnBook(context.Background(), 7, 2.5)
	require.NoError(t, err)
	require.Equal(t, "fine_amount=2.5", <-queries)
}

func TestClient_BareArrayLists(t *testing.T) {
	t.Parallel()
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "borrowed", r.URL.Query().Get("status_filter"))
		_, _ = w.Write([]byte(`[{"id":1,"status":"borrowed"},{"id":2,"status":"borrowed"}]`))
	}, "tok")

	items, err := c.ListMemberBorrowings(context.Background(), 5, model.StatusBorrowed)
	require.NoError(t, err)
	require.Len(t, items, 2)

	page, err := c.ListBorrowings(context.Background(), model.StatusBorrowed, model.Query{})
	require.NoError(t, err)
	require.Equal(t, 2, page.Total)
}

func TestClient_BreakerIgnoresClientErrors(t *testing.T) {
	t.Parallel()
	var status atomic.Int32
	status.Store(http.StatusNotFound)
	cb := circuit_breaker.New(2, time.Minute, 0.5, 1)
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(int(status.Load()))
	}, "tok", WithBreaker(cb))
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := c.GetBook(ctx, 1)
		var apiErr *errs.APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, http.StatusNotFound, apiErr.Status)
	}
	require.Equal(t, circuit_breaker.Closed, cb.State())

	status.Store(http.StatusBadGateway)
	_, err := c.GetBook(ctx, 1)
	require.Error(t, err)
	require.Equal(t, circuit_breaker.Open, cb.State())

	_, err = c.GetBook(ctx, 1)
	require.ErrorIs(t, err, circuit_breaker.ErrOpenCB)
}
