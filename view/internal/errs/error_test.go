package errs_test

import (
	"net/http"
	"testing"

	"github.com/Astemirdum/library-view/pkg/validate"
	"github.com/Astemirdum/library-view/view/internal/errs"
	"github.com/Astemirdum/library-view/view/internal/model"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestNewAPIError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{name: "detail string", status: http.StatusBadRequest, body: `{"detail":"Book not available"}`, want: "Book not available"},
		{name: "detail list", status: http.StatusUnprocessableEntity, body: `{"detail":[{"loc":["body","email"],"msg":"value is not a valid email address"}]}`, want: "value is not a valid email address"},
		{name: "message", status: http.StatusConflict, body: `{"message":"duplicate"}`, want: "duplicate"},
		{name: "no payload", status: http.StatusInternalServerError, body: ``, want: "Internal Server Error"},
		{name: "html", status: http.StatusBadGateway, body: `<html>bad gateway</html>`, want: "Bad Gateway"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := errs.NewAPIError(tt.status, []byte(tt.body))
			require.Equal(t, tt.want, err.Detail)
			require.Equal(t, tt.status, err.Status)
		})
	}
}

func TestAPIError_IsUnauthorized(t *testing.T) {
	t.Parallel()
	err := errors.Wrap(errs.NewAPIError(http.StatusUnauthorized, nil), "GetProfile")
	require.ErrorIs(t, err, errs.ErrUnauthorized)
	require.NotErrorIs(t, errs.NewAPIError(http.StatusForbidden, nil), errs.ErrUnauthorized)
}

func TestMessage(t *testing.T) {
	t.Parallel()
	require.Equal(t, "", errs.Message(nil, "fallback"))
	require.Equal(t, "Book not available", errs.Message(errs.NewAPIError(400, []byte(`{"detail":"Book not available"}`)), "Failed to borrow book"))
	require.Equal(t, "Failed to load books", errs.Message(errors.New("dial tcp: refused"), "Failed to load books"))

	verr := errs.FromValidator(validate.Struct(model.Credentials{Email: "not-an-email", Password: "x"}))
	require.ErrorIs(t, verr, errs.ErrValidation)
	require.Equal(t, "Email: must be a valid email", errs.Message(verr, "fallback"))
}
