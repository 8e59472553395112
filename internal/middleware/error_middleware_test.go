package middleware

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/anirudh/campuspoints/internal/app/models/dto"
	"github.com/anirudh/campuspoints/internal/pkg/apperrors"
)

func TestHandleAPIError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   dto.ErrorCode
	}{
		{"unknown identity", apperrors.ErrIdentityNotFound, 404, dto.ErrorCodeIdentityNotFound},
		{"already approved", apperrors.ErrAlreadyApproved, 409, dto.ErrorCodeAlreadyApproved},
		{"missing activity", apperrors.ErrActivityNotFound, 404, dto.ErrorCodeResourceNotFound},
		{"permission denied", apperrors.ErrPermissionDenied, 403, dto.ErrorCodeForbidden},
		{"bad credentials", apperrors.ErrInvalidCredentials, 401, dto.ErrorCodeInvalidCredentials},
		{"expired token", apperrors.ErrTokenExpired, 401, dto.ErrorCodeExpiredToken},
		{"invalid usn", apperrors.ErrInvalidUSN, 400, dto.ErrorCodeValidationFailed},
		{"duplicate email", apperrors.ErrEmailAlreadyExists, 409, dto.ErrorCodeResourceAlreadyExists},
		{"coordinator conflict", apperrors.ErrCoordinatorHasClub, 409, dto.ErrorCodeResourceAlreadyExists},
		{"wrapped sentinel still maps", errors.Join(errors.New("context"), apperrors.ErrStudentNotFound), 404, dto.ErrorCodeResourceNotFound},
		{"unclassified error hides detail", errors.New("pool exhausted"), 500, dto.ErrorCodeInternalServer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rec)

			HandleAPIError(c, tt.err)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}

			var resp struct {
				Error struct {
					Code    dto.ErrorCode `json:"code"`
					Message string        `json:"message"`
				} `json:"error"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("response is not JSON: %v", err)
			}
			if resp.Error.Code != tt.wantCode {
				t.Errorf("error code = %s, want %s", resp.Error.Code, tt.wantCode)
			}
			if tt.wantStatus == 500 && resp.Error.Message != "Internal server error" {
				t.Errorf("internal error leaked message: %q", resp.Error.Message)
			}
		})
	}
}
