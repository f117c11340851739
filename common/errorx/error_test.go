package errorx

import (
	"database/sql/driver"
	"fmt"
	"net/http"
	"testing"

	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	cases := map[int]int{
		CodeActivityNotFound:   http.StatusNotFound,
		CodeAlreadyEnrolled:    http.StatusBadRequest,
		CodeNotEnrolled:        http.StatusBadRequest,
		CodeServiceUnavailable: http.StatusInternalServerError,
		CodeInvalidParams:      http.StatusUnprocessableEntity,
		CodeNotFound:           http.StatusNotFound,
		9999:                   http.StatusInternalServerError,
	}
	for code, want := range cases {
		assert.Equal(t, want, HTTPStatus(code), "code %d", code)
	}
}

func TestFromError(t *testing.T) {
	assert.Nil(t, FromError(nil))

	biz := ErrAlreadyEnrolled()
	assert.Same(t, biz, FromError(biz))
	assert.Same(t, biz, FromError(pkgerrors.Wrap(biz, "enroll")))
	assert.Same(t, biz, FromError(fmt.Errorf("enroll: %w", biz)))

	got := FromError(driver.ErrBadConn)
	assert.Equal(t, CodeInternalError, got.Code)
	assert.Equal(t, "Internal Server Error", got.Message)
}

func TestWrapKeepsCauseOutOfMessage(t *testing.T) {
	err := ErrStorageUnavailable(driver.ErrBadConn)

	assert.Equal(t, "Storage unavailable", err.Message)
	assert.ErrorIs(t, err, driver.ErrBadConn)
	assert.Contains(t, err.Error(), "bad connection")
	assert.True(t, Is(err, CodeServiceUnavailable))
}

func TestIsDomain(t *testing.T) {
	assert.True(t, IsDomain(ErrActivityNotFound()))
	assert.True(t, IsDomain(fmt.Errorf("wrapped: %w", ErrNotEnrolled())))
	assert.True(t, IsDomain(ErrAlreadyEnrolled()))
	assert.False(t, IsDomain(ErrStorageUnavailable(nil)))
	assert.False(t, IsDomain(driver.ErrBadConn))
	assert.False(t, IsDomain(nil))
}
