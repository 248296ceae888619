package errors

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew_MapsHTTPStatus(t *testing.T) {
	tests := []struct {
		code   ErrorCode
		status int
	}{
		{CodeInvalidParam, http.StatusBadRequest},
		{CodeValidationFailed, http.StatusBadRequest},
		{CodeUnauthorized, http.StatusUnauthorized},
		{CodeTokenExpired, http.StatusUnauthorized},
		{CodePermissionDenied, http.StatusForbidden},
		{CodeProjectNotFound, http.StatusNotFound},
		{CodeConflict, http.StatusConflict},
		{CodeTooManyRequests, http.StatusTooManyRequests},
		{CodeGenerationFailed, http.StatusInternalServerError},
		{CodeGenerationParseFailed, http.StatusInternalServerError},
		{CodeDatabaseError, http.StatusInternalServerError},
		{CodeLLMProviderError, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		err := New(tt.code, "msg")
		assert.Equal(t, tt.status, err.HTTPStatus, "code %s", tt.code)
	}
}

func TestWrap_PreservesCause(t *testing.T) {
	cause := errors.New("underlying")
	err := Wrap(cause, CodeDatabaseError, "query failed")

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "query failed")
	assert.Contains(t, err.Error(), "underlying")
}

func TestIsCode(t *testing.T) {
	err := New(CodeGenerationParseFailed, "bad output")

	assert.True(t, IsCode(err, CodeGenerationParseFailed))
	assert.False(t, IsCode(err, CodeDatabaseError))
	assert.False(t, IsCode(errors.New("plain"), CodeGenerationParseFailed))
}

func TestAsAppError_WrapsUnknown(t *testing.T) {
	appErr := AsAppError(errors.New("plain"))
	assert.Equal(t, CodeUnknown, appErr.Code)

	original := New(CodeInvalidParam, "bad input")
	assert.Same(t, original, AsAppError(original))
}

func TestWithDetail(t *testing.T) {
	err := New(CodeInvalidParam, "bad input").WithDetail("field name is empty")
	assert.Equal(t, "field name is empty", err.Detail)
}
