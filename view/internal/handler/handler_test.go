package handler_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Astemirdum/library-view/view/internal/errs"
	"github.com/Astemirdum/library-view/view/internal/handler"
	"github.com/Astemirdum/library-view/view/internal/model"
	"github.com/Astemirdum/library-view/view/internal/service/session"
	"github.com/golang/mock/gomock"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	service_mocks "github.com/Astemirdum/library-view/view/internal/handler/mocks"
)

type mocks struct {
	library *service_mocks.MockLibraryService
	profile *service_mocks.MockProfileService
	session *service_mocks.MockSessionService
	greeter *service_mocks.MockGreeter
}

func newRouter(t *testing.T) (*echo.Echo, mocks) {
	t.Helper()
	c := gomock.NewController(t)
	m := mocks{
		library: service_mocks.NewMockLibraryService(c),
		profile: service_mocks.NewMockProfileService(c),
		session: service_mocks.NewMockSessionService(c),
		greeter: service_mocks.NewMockGreeter(c),
	}
	log := zap.NewExample().Named("test")
	h := handler.New(log, m.library, m.profile, m.session, m.greeter, handler.NewEnqueuer(nil, ""), 10)
	return h.NewRouter(), m
}

var (
	admin  = session.Session{Token: "tok", User: session.User{Role: model.RoleAdmin, UserID: 1}}
	member = session.Session{Token: "tok", User: session.User{Role: model.RoleMember, UserID: 7}}
)

func serve(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, target, nil)
	} else {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
		r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	w := httptest.NewRecorder()
	e.ServeHTTP(w, r)
	return w
}

func TestHandler_Guards(t *testing.T) {
	t.Parallel()
	type response struct {
		expectedCode     int
		expectedLocation string
	}
	type mockBehavior func(m mocks)

	tests := []struct {
		name         string
		method       string
		target       string
		mockBehavior mockBehavior
		response     response
	}{
		{
			name:   "anonymous to protected view",
			method: http.MethodGet,
			target: "/books",
			mockBehavior: func(m mocks) {
				m.session.EXPECT().Current().Return(session.Session{}, false)
			},
			response: response{expectedCode: http.StatusFound, expectedLocation: "/login"},
		},
		{
			name:   "anonymous to admin view",
			method: http.MethodGet,
			target: "/members",
			mockBehavior: func(m mocks) {
				m.session.EXPECT().Current().Return(session.Session{}, false)
			},
			response: response{expectedCode: http.StatusFound, expectedLocation: "/login"},
		},
		{
			name:   "member to admin view",
			method: http.MethodGet,
			target: "/dashboard",
			mockBehavior: func(m mocks) {
				m.session.EXPECT().Current().Return(member, true)
			},
			response: response{expectedCode: http.StatusFound, expectedLocation: "/user/dashboard"},
		},
		{
			name:   "logged in user on login view",
			method: http.MethodGet,
			target: "/login",
			mockBehavior: func(m mocks) {
				m.session.EXPECT().Current().Return(admin, true)
			},
			response: response{expectedCode: http.StatusFound, expectedLocation: "/dashboard"},
		},
		{
			name:   "backend 401 on mutation",
			method: http.MethodDelete,
			target: "/books/3",
			mockBehavior: func(m mocks) {
				m.session.EXPECT().Current().Return(admin, true)
				m.library.EXPECT().DeleteBook(gomock.Any(), 3).Return(errs.NewAPIError(http.StatusUnauthorized, nil))
			},
			response: response{expectedCode: http.StatusFound, expectedLocation: "/login"},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			e, m := newRouter(t)
			tt.mockBehavior(m)

			w := serve(e, tt.method, tt.target, "")

			require.Equal(t, tt.response.expectedCode, w.Code)
			require.Equal(t, tt.response.expectedLocation, w.Header().Get(echo.HeaderLocation))
		})
	}
}

func TestHandler_Mutations(t *testing.T) {
	t.Parallel()
	type response struct {
		expectedCode int
		expectedBody string
	}
	type mockBehavior func(m mocks)

	tests := []struct {
		name         string
		method       string
		target       string
		body         string
		mockBehavior mockBehavior
		response     response
	}{
		{
			name:   "borrow. backend detail",
			method: http.MethodPost,
			target: "/books/3/borrow",
			mockBehavior: func(m mocks) {
				m.session.EXPECT().Current().Return(member, true)
				m.library.EXPECT().CreateBorrowing(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ any, req model.BorrowingRequest) (model.Borrowing, error) {
						require.Equal(t, 3, req.BookID)
						require.False(t, req.DueDate.IsZero())
						return model.Borrowing{}, errs.NewAPIError(http.StatusBadRequest, []byte(`{"detail":"Book not available"}`))
					})
			},
			response: response{expectedCode: http.StatusBadRequest, expectedBody: `{"message":"Book not available"}`},
		},
		{
			name:   "return. negative fine",
			method: http.MethodPost,
			target: "/borrowings/9/return",
			body:   `{"fine_amount":-1}`,
			mockBehavior: func(m mocks) {
				m.session.EXPECT().Current().Return(admin, true)
				m.library.EXPECT().ReturnBook(gomock.Any(), 9, -1.0).Return(model.Borrowing{}, errs.Invalid("FineAmount", "must be 0 or more"))
			},
			response: response{expectedCode: http.StatusBadRequest, expectedBody: `{"message":"FineAmount: must be 0 or more"}`},
		},
		{
			name:   "delete member. network error",
			method: http.MethodDelete,
			target: "/members/4",
			mockBehavior: func(m mocks) {
				m.session.EXPECT().Current().Return(admin, true)
				m.library.EXPECT().DeleteMember(gomock.Any(), 4).Return(errors.New("dial tcp: connection refused"))
			},
			response: response{expectedCode: http.StatusBadGateway, expectedBody: `{"message":"Failed to delete member"}`},
		},
		{
			name:   "invalid id",
			method: http.MethodPut,
			target: "/books/abc",
			body:   `{}`,
			mockBehavior: func(m mocks) {
				m.session.EXPECT().Current().Return(admin, true)
			},
			response: response{expectedCode: http.StatusBadRequest, expectedBody: `{"message":"invalid id"}`},
		},
		{
			name:   "login",
			method: http.MethodPost,
			target: "/login",
			body:   `{"email":"ann@example.com","password":"secret"}`,
			mockBehavior: func(m mocks) {
				m.session.EXPECT().Login(gomock.Any(), model.Credentials{Email: "ann@example.com", Password: "secret"}).Return(admin, nil)
			},
			response: response{expectedCode: http.StatusOK, expectedBody: `{"message":"logged in","role":"admin","user_id":1,"redirect":"/dashboard"}`},
		},
		{
			name:   "login. wrong password",
			method: http.MethodPost,
			target: "/login",
			body:   `{"email":"ann@example.com","password":"nope"}`,
			mockBehavior: func(m mocks) {
				m.session.EXPECT().Login(gomock.Any(), gomock.Any()).
					Return(session.Session{}, errs.NewAPIError(http.StatusUnauthorized, []byte(`{"detail":"Incorrect email or password"}`)))
			},
			response: response{expectedCode: http.StatusUnauthorized, expectedBody: `{"message":"Incorrect email or password"}`},
		},
		{
			name:   "nav. anonymous",
			method: http.MethodGet,
			target: "/nav",
			mockBehavior: func(m mocks) {
				m.session.EXPECT().Current().Return(session.Session{}, false)
			},
			response: response{expectedCode: http.StatusOK, expectedBody: `{"authenticated":false,"tabs":[]}`},
		},
		{
			name:   "nav. member",
			method: http.MethodGet,
			target: "/nav",
			mockBehavior: func(m mocks) {
				m.session.EXPECT().Current().Return(member, true)
				m.greeter.EXPECT().Name().Return("Ann")
			},
			response: response{
				expectedCode: http.StatusOK,
				expectedBody: `{"authenticated":true,"role":"member","greeting":"Ann","tabs":[{"path":"/user/dashboard","label":"Dashboard"},{"path":"/books","label":"Books"},{"path":"/profile","label":"My Profile"}]}`,
			},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			e, m := newRouter(t)
			tt.mockBehavior(m)

			w := serve(e, tt.method, tt.target, tt.body)

			require.Equal(t, tt.response.expectedCode, w.Code)
			require.Equal(t, tt.response.expectedBody, strings.Trim(w.Body.String(), "\n"))
		})
	}
}

func TestHandler_BorrowWithoutBody(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		body io.Reader
	}{
		{name: "no body", body: nil},
		// a chunked empty body has unknown length and no Content-Type
		{name: "empty chunked body", body: http.NoBody},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			e, m := newRouter(t)
			want := model.DefaultDueDate(time.Now())
			m.session.EXPECT().Current().Return(member, true)
			m.library.EXPECT().CreateBorrowing(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ any, req model.BorrowingRequest) (model.Borrowing, error) {
					require.Equal(t, 3, req.BookID)
					require.Equal(t, want, req.DueDate)
					return model.Borrowing{ID: 11, BookID: 3, Status: model.StatusBorrowed}, nil
				})
			m.library.EXPECT().ListBooks(gomock.Any(), gomock.Any()).Return(model.Page[model.Book]{}, nil).AnyTimes()

			r := httptest.NewRequest(http.MethodPost, "/books/3/borrow", tt.body)
			w := httptest.NewRecorder()
			e.ServeHTTP(w, r)

			require.Equal(t, http.StatusCreated, w.Code)
			require.Contains(t, w.Body.String(), `"id":11`)
		})
	}
}

func TestHandler_ListBooksUnauthorizedCancelsLoans(t *testing.T) {
	t.Parallel()
	e, m := newRouter(t)
	m.session.EXPECT().Current().Return(member, true)
	m.library.EXPECT().ListBooks(gomock.Any(), gomock.Any()).
		Return(model.Page[model.Book]{}, errs.NewAPIError(http.StatusUnauthorized, nil))
	canceled := make(chan bool, 1)
	m.library.EXPECT().UserDashboard(gomock.Any()).
		DoAndReturn(func(ctx context.Context) ([]model.Borrowing, error) {
			select {
			case <-ctx.Done():
				canceled <- true
				return nil, ctx.Err()
			case <-time.After(5 * time.Second):
				canceled <- false
				return nil, nil
			}
		})

	w := serve(e, http.MethodGet, "/books", "")

	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/login", w.Header().Get(echo.HeaderLocation))
	require.True(t, <-canceled)
}

func TestHandler_Logout(t *testing.T) {
	t.Parallel()
	e, m := newRouter(t)
	gomock.InOrder(
		m.session.EXPECT().Current().Return(member, true),
		m.session.EXPECT().Logout().Return(nil),
	)

	w := serve(e, http.MethodPost, "/logout", "")

	require.Equal(t, http.StatusSeeOther, w.Code)
	require.Equal(t, "/", w.Header().Get(echo.HeaderLocation))
}

type listBody struct {
	Items []struct {
		ID           int  `json:"id"`
		BorrowedByMe bool `json:"borrowed_by_me"`
	} `json:"items"`
	SearchTerm string `json:"search_term"`
	Pagination struct {
		CurrentPage int  `json:"current_page"`
		TotalItems  int  `json:"total_items"`
		Visible     bool `json:"visible"`
	} `json:"pagination"`
	Error string `json:"error"`
}

func decodeList(t *testing.T, w *httptest.ResponseRecorder) listBody {
	t.Helper()
	require.Equal(t, http.StatusOK, w.Code)
	var body listBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestHandler_ListBooks(t *testing.T) {
	t.Parallel()

	t.Run("failure keeps the view", func(t *testing.T) {
		t.Parallel()
		e, m := newRouter(t)
		m.session.EXPECT().Current().Return(admin, true)
		m.library.EXPECT().ListBooks(gomock.Any(), model.Query{Skip: 0, Limit: 10}).Return(model.Page[model.Book]{}, errors.New("dial tcp: connection refused"))

		body := decodeList(t, serve(e, http.MethodGet, "/books", ""))
		require.Empty(t, body.Items)
		require.Equal(t, "Failed to load books", body.Error)
		require.False(t, body.Pagination.Visible)
	})

	t.Run("search resets page", func(t *testing.T) {
		t.Parallel()
		e, m := newRouter(t)
		m.session.EXPECT().Current().Return(admin, true).Times(2)
		gomock.InOrder(
			m.library.EXPECT().ListBooks(gomock.Any(), model.Query{Skip: 20, Limit: 10}).
				Return(model.Page[model.Book]{Items: []model.Book{{ID: 21}}, Total: 42}, nil),
			m.library.EXPECT().ListBooks(gomock.Any(), model.Query{Skip: 0, Limit: 10, Search: "dune"}).
				Return(model.Page[model.Book]{Items: []model.Book{{ID: 1}}, Total: 1}, nil),
		)

		body := decodeList(t, serve(e, http.MethodGet, "/books?page=3", ""))
		require.Equal(t, 3, body.Pagination.CurrentPage)
		require.True(t, body.Pagination.Visible)

		body = decodeList(t, serve(e, http.MethodGet, "/books?page=3&q=dune", ""))
		require.Equal(t, 1, body.Pagination.CurrentPage)
		require.Equal(t, "dune", body.SearchTerm)
		require.False(t, body.Pagination.Visible)
	})

	t.Run("member sees own loans", func(t *testing.T) {
		t.Parallel()
		e, m := newRouter(t)
		m.session.EXPECT().Current().Return(member, true)
		m.library.EXPECT().ListBooks(gomock.Any(), gomock.Any()).
			Return(model.Page[model.Book]{Items: []model.Book{{ID: 1}, {ID: 2}}, Total: 2}, nil)
		m.library.EXPECT().UserDashboard(gomock.Any()).
			Return([]model.Borrowing{{ID: 5, Book: model.Book{ID: 2}, Status: model.StatusBorrowed}}, nil)

		body := decodeList(t, serve(e, http.MethodGet, "/books", ""))
		require.Len(t, body.Items, 2)
		require.False(t, body.Items[0].BorrowedByMe)
		require.True(t, body.Items[1].BorrowedByMe)
	})
}

func TestHandler_ListMembersHidesOwnRecord(t *testing.T) {
	t.Parallel()
	e, m := newRouter(t)
	own := 2
	m.session.EXPECT().Current().Return(admin, true)
	m.library.EXPECT().Me(gomock.Any()).Return(model.User{ID: 1, Role: model.RoleAdmin, MemberID: &own}, nil)
	m.library.EXPECT().ListMembers(gomock.Any(), gomock.Any()).
		Return(model.Page[model.Member]{Items: []model.Member{{ID: 1}, {ID: 2}, {ID: 3}}, Total: 3}, nil)

	body := decodeList(t, serve(e, http.MethodGet, "/members", ""))
	require.Len(t, body.Items, 2)
	require.Equal(t, 1, body.Items[0].ID)
	require.Equal(t, 3, body.Items[1].ID)
	require.Equal(t, 2, body.Pagination.TotalItems)
}
