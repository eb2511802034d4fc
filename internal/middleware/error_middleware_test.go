package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rafael/coursehub/internal/app/models/dto"
	"github.com/rafael/coursehub/internal/pkg/apperrors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func recordAPIError(t *testing.T, err error) (*httptest.ResponseRecorder, dto.APIResponse) {
	t.Helper()

	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = httptest.NewRequest(http.MethodGet, "/test", nil)

	HandleAPIError(c, err)

	var body dto.APIResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	return recorder, body
}

func TestHandleAPIError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   dto.ErrorCode
	}{
		{
			name:       "missing resource",
			err:        apperrors.ErrCourseNotFound,
			wantStatus: http.StatusNotFound,
			wantCode:   dto.ErrorCodeResourceNotFound,
		},
		{
			name:       "cross tenant lesson looks missing",
			err:        apperrors.ErrLessonNotFound,
			wantStatus: http.StatusNotFound,
			wantCode:   dto.ErrorCodeResourceNotFound,
		},
		{
			name:       "owner only action",
			err:        apperrors.ErrNotOrganizationOwner,
			wantStatus: http.StatusForbidden,
			wantCode:   dto.ErrorCodeForbidden,
		},
		{
			name:       "pending approval",
			err:        apperrors.ErrAccountNotApproved,
			wantStatus: http.StatusForbidden,
			wantCode:   dto.ErrorCodeAccountNotApproved,
		},
		{
			name:       "bad credentials",
			err:        apperrors.ErrInvalidCredentials,
			wantStatus: http.StatusUnauthorized,
			wantCode:   dto.ErrorCodeInvalidCredentials,
		},
		{
			name:       "expired refresh token",
			err:        apperrors.ErrTokenExpired,
			wantStatus: http.StatusUnauthorized,
			wantCode:   dto.ErrorCodeExpiredToken,
		},
		{
			name:       "unrecognizable video url",
			err:        apperrors.ErrInvalidVideoURL,
			wantStatus: http.StatusBadRequest,
			wantCode:   dto.ErrorCodeValidationFailed,
		},
		{
			name:       "option cap reached",
			err:        apperrors.ErrTooManyOptions,
			wantStatus: http.StatusBadRequest,
			wantCode:   dto.ErrorCodeValidationFailed,
		},
		{
			name:       "foreign category on course",
			err:        apperrors.ErrCategoryOrganizationMismatch,
			wantStatus: http.StatusBadRequest,
			wantCode:   dto.ErrorCodeValidationFailed,
		},
		{
			name:       "duplicate email",
			err:        apperrors.ErrEmailAlreadyExists,
			wantStatus: http.StatusConflict,
			wantCode:   dto.ErrorCodeResourceAlreadyExists,
		},
		{
			name:       "unknown error",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   dto.ErrorCodeInternalServer,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder, body := recordAPIError(t, tt.err)

			assert.Equal(t, tt.wantStatus, recorder.Code)
			require.NotNil(t, body.Error)
			assert.Equal(t, tt.wantCode, body.Error.Code)
		})
	}
}

func TestHandleAPIErrorWrappedSentinel(t *testing.T) {
	wrapped := apperrors.NewValidationError("videoUrl", apperrors.ErrInvalidVideoURL.Error())

	recorder, body := recordAPIError(t, wrapped)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	require.NotNil(t, body.Error)
	assert.Equal(t, dto.ErrorCodeValidationFailed, body.Error.Code)
	assert.Equal(t, "videoUrl", body.Error.Field)
}

func TestHandleAPIErrorInternalHidesDetails(t *testing.T) {
	_, body := recordAPIError(t, errors.New("pq: connection refused"))

	require.NotNil(t, body.Error)
	assert.Equal(t, "Internal server error", body.Error.Message)
	assert.NotContains(t, body.Error.Message, "connection refused")
}
