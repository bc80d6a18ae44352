package httpkit

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kurscrm_backend/platform/apperr"
)

func testContext(t *testing.T) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	return c, recorder
}

func TestHandleErrorNil(t *testing.T) {
	c, _ := testContext(t)
	assert.False(t, HandleError(c, nil))
}

func TestHandleErrorDomainError(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
	}{
		{apperr.NotFound("lead not found"), http.StatusNotFound},
		{apperr.Validation("bad payload"), http.StatusBadRequest},
		{apperr.Conflict("already converted"), http.StatusConflict},
		{apperr.Unauthorized("invalid credentials"), http.StatusUnauthorized},
		{apperr.Internal("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		c, recorder := testContext(t)
		require.True(t, HandleError(c, tt.err))
		assert.Equal(t, tt.wantStatus, recorder.Code)

		var body ErrorResponse
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
		assert.NotEmpty(t, body.Error)
	}
}

func TestHandleErrorForeignErrorIsBadRequest(t *testing.T) {
	c, recorder := testContext(t)
	require.True(t, HandleError(c, errors.New("plain failure")))
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestHandleErrorIncludesDetails(t *testing.T) {
	c, recorder := testContext(t)
	err := apperr.Validation("invalid payload").WithDetails(map[string]string{"field": "email"})
	require.True(t, HandleError(c, err))

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.NotNil(t, body.Details)
}
