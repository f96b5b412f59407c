package http

import (
	"errors"
	"fmt"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"

	domainLending "crowdlending/internal/domain/lending"
	domainRegistry "crowdlending/internal/domain/registry"
	domainRep "crowdlending/internal/domain/reputation"

	"github.com/labstack/echo/v4"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{domainLending.ErrUnauthorized, stdhttp.StatusForbidden},
		{fmt.Errorf("%w: investor missing", domainLending.ErrUnauthorized), stdhttp.StatusForbidden},
		{domainRegistry.ErrUnauthorized, stdhttp.StatusForbidden},
		{domainLending.ErrNotFound, stdhttp.StatusNotFound},
		{fmt.Errorf("abc: %w", domainRegistry.ErrNotFound), stdhttp.StatusNotFound},
		{domainLending.ErrWrongState, stdhttp.StatusConflict},
		{domainLending.ErrAlreadyClaimed, stdhttp.StatusConflict},
		{domainLending.ErrOutstandingClaims, stdhttp.StatusConflict},
		{domainLending.ErrAmountMismatch, stdhttp.StatusUnprocessableEntity},
		{domainRep.ErrRegistrationMissing, stdhttp.StatusUnprocessableEntity},
		{errors.New("disk on fire"), stdhttp.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := StatusFor(tt.err); got != tt.want {
			t.Fatalf("StatusFor(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestWriteError_HidesInternalErrors(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(stdhttp.MethodGet, "/", nil), rec)

	if err := writeError(c, errors.New("dsn user:secret@tcp")); err != nil {
		t.Fatalf("writeError: %v", err)
	}
	if rec.Code != stdhttp.StatusInternalServerError {
		t.Fatalf("status = %d", rec.Code)
	}
	if er := errorOf(t, rec); er.Error != "internal error" {
		t.Fatalf("error = %q, want it masked", er.Error)
	}
}
