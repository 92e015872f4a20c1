package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tutorslink/api/services"
	"github.com/tutorslink/api/utils/response"
	"gorm.io/gorm"
)

func TestServiceErrorMapping(t *testing.T) {
	cases := []struct {
		name        string
		err         error
		wantStatus  int
		wantCode    string
		wantMessage string
	}{
		{
			name:        "validation maps to 400",
			err:         fmt.Errorf("%w: rating must be 1..5", services.ErrValidation),
			wantStatus:  fiber.StatusBadRequest,
			wantCode:    "BAD_REQUEST",
			wantMessage: "rating must be 1..5",
		},
		{
			name:        "not found maps to 404",
			err:         fmt.Errorf("%w: tutor not found", services.ErrNotFound),
			wantStatus:  fiber.StatusNotFound,
			wantCode:    "NOT_FOUND",
			wantMessage: "tutor not found",
		},
		{
			name:        "forbidden maps to 403",
			err:         fmt.Errorf("%w: you must have studied with this tutor", services.ErrForbidden),
			wantStatus:  fiber.StatusForbidden,
			wantCode:    "FORBIDDEN",
			wantMessage: "you must have studied with this tutor",
		},
		{
			name:        "duplicate maps to conflict 400",
			err:         fmt.Errorf("%w: you already have an active enrollment with this tutor", services.ErrDuplicate),
			wantStatus:  fiber.StatusBadRequest,
			wantCode:    "CONFLICT",
			wantMessage: "you already have an active enrollment with this tutor",
		},
		{
			name:        "unwrapped record-not-found maps to 404",
			err:         gorm.ErrRecordNotFound,
			wantStatus:  fiber.StatusNotFound,
			wantCode:    "NOT_FOUND",
			wantMessage: "Resource not found",
		},
		{
			name:       "unknown errors become opaque 500s",
			err:        errors.New("pq: connection reset"),
			wantStatus: fiber.StatusInternalServerError,
			wantCode:   "INTERNAL_ERROR",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error {
				return ServiceError(c, tc.err)
			})

			resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
			require.NoError(t, err)
			assert.Equal(t, tc.wantStatus, resp.StatusCode)

			raw, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			var body response.Response
			require.NoError(t, json.Unmarshal(raw, &body))

			assert.False(t, body.Success)
			require.NotNil(t, body.Error)
			assert.Equal(t, tc.wantCode, body.Error.Code)
			if tc.wantMessage != "" {
				assert.Equal(t, tc.wantMessage, body.Error.Message)
			} else {
				// Internal detail never leaks to the client.
				assert.NotContains(t, body.Error.Message, "pq:")
			}
		})
	}
}
