package common_test

import (
	"fmt"
	"net/http"
	"testing"

	"contesthub/internal/common"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestHTTPStatusFromError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, http.StatusOK},
		{"not found", common.ErrNotFound, http.StatusNotFound},
		{"unauthorized", common.ErrUnauthorized, http.StatusUnauthorized},
		{"forbidden", common.ErrForbidden, http.StatusForbidden},
		{"bad request", common.ErrBadRequest, http.StatusBadRequest},
		{"validation", common.ErrValidation, http.StatusBadRequest},
		{"conflict", common.ErrConflict, http.StatusConflict},
		{"wrapped sentinel", fmt.Errorf("contest not found: %w", common.ErrNotFound), http.StatusNotFound},
		{"unique violation", &pgconn.PgError{Code: "23505"}, http.StatusConflict},
		{"unknown", fmt.Errorf("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, common.HTTPStatusFromError(tc.err))
		})
	}
}
