package respond

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	appErrors "github.com/unclebandit/campaign-builder/internal/errors"
)

func TestStatusFor(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{appErrors.NewDraftNotFound("x"), http.StatusNotFound},
		{appErrors.NewDraftIncomplete("audience"), http.StatusUnprocessableEntity},
		{appErrors.NewGenerationFailed(errors.New("timeout")), http.StatusBadGateway},
		{appErrors.ErrGenerationInProgress, http.StatusConflict},
		{appErrors.ErrGenerationSuperseded, http.StatusConflict},
		{appErrors.ErrAlreadySubmitted, http.StatusConflict},
		{fmt.Errorf("wrapped: %w", appErrors.ErrStatusRegression), http.StatusConflict},
		{appErrors.ErrChannelNotSelected, http.StatusBadRequest},
		{appErrors.ErrEmptyText, http.StatusBadRequest},
		{errors.New("disk on fire"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := StatusFor(tc.err); got != tc.want {
			t.Errorf("StatusFor(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}
