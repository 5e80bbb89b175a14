package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	domainerrors "roster/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func newErrorTestContext(t *testing.T) (echo.Context, *httptest.ResponseRecorder, *ErrorMiddleware) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	m := NewErrorMiddleware(slog.New(slog.NewTextHandler(io.Discard, nil)))

	return c, rec, m
}

func TestErrorMiddleware_AppErrorMapsToHTTPCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantBody string
	}{
		{
			name:     "not found",
			err:      domainerrors.ErrUserNotFound.WrapMessage("user not found"),
			wantCode: http.StatusNotFound,
			wantBody: "USER_NOT_FOUND",
		},
		{
			name:     "conflict",
			err:      domainerrors.ErrEmailAlreadyRegistered.WrapMessage("email already registered"),
			wantCode: http.StatusConflict,
			wantBody: "EMAIL_ALREADY_REGISTERED",
		},
		{
			name:     "invalid page request",
			err:      domainerrors.ErrInvalidPageRequest.WrapMessage("bad page"),
			wantCode: http.StatusBadRequest,
			wantBody: "INVALID_PAGE_REQUEST",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec, m := newErrorTestContext(t)

			m.HandleHTTPError(tt.err, c)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
			assert.Contains(t, rec.Body.String(), `"success":false`)
		})
	}
}

func TestErrorMiddleware_EchoHTTPError(t *testing.T) {
	c, rec, m := newErrorTestContext(t)

	m.HandleHTTPError(echo.NewHTTPError(http.StatusMethodNotAllowed, "Method Not Allowed"), c)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Contains(t, rec.Body.String(), "HTTP_ERROR")
}

func TestErrorMiddleware_UnclassifiedErrorBecomesInternal(t *testing.T) {
	c, rec, m := newErrorTestContext(t)

	m.HandleHTTPError(errors.New("connection reset by peer"), c)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "INTERNAL_ERROR")
}
