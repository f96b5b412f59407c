package http

import (
	"errors"
	"net/http"

	domainLending "crowdlending/internal/domain/lending"
	domainRegistry "crowdlending/internal/domain/registry"
	domainRep "crowdlending/internal/domain/reputation"
	"crowdlending/pkg/fixedpoint"

	"github.com/labstack/echo/v4"
)

var statusByErr = []struct {
	err  error
	code int
}{
	{domainLending.ErrUnauthorized, http.StatusForbidden},
	{domainRegistry.ErrUnauthorized, http.StatusForbidden},
	{domainRep.ErrUnregisteredContract, http.StatusForbidden},

	{domainLending.ErrNotFound, http.StatusNotFound},
	{domainLending.ErrNoContribution, http.StatusNotFound},
	{domainRegistry.ErrNotFound, http.StatusNotFound},
	{domainRep.ErrNotFound, http.StatusNotFound},

	{domainLending.ErrWrongState, http.StatusConflict},
	{domainLending.ErrWindowClosed, http.StatusConflict},
	{domainLending.ErrWindowNotOpen, http.StatusConflict},
	{domainLending.ErrCapExceeded, http.StatusConflict},
	{domainLending.ErrAlreadyClaimed, http.StatusConflict},
	{domainLending.ErrNotYetDue, http.StatusConflict},
	{domainLending.ErrOutstandingClaims, http.StatusConflict},

	{domainLending.ErrAmountMismatch, http.StatusUnprocessableEntity},
	{domainLending.ErrInvalidInput, http.StatusUnprocessableEntity},
	{domainLending.ErrRegistrationMissing, http.StatusUnprocessableEntity},
	{domainRep.ErrRegistrationMissing, http.StatusUnprocessableEntity},
	{domainRep.ErrNoCompletedProjects, http.StatusUnprocessableEntity},
	{domainRegistry.ErrInvalidRole, http.StatusUnprocessableEntity},
	{domainRegistry.ErrInvalidID, http.StatusUnprocessableEntity},
	{fixedpoint.ErrInvalid, http.StatusUnprocessableEntity},
	{fixedpoint.ErrNegative, http.StatusUnprocessableEntity},
}

// StatusFor maps a usecase error to the response code; unknown errors are 500.
func StatusFor(err error) int {
	for _, s := range statusByErr {
		if errors.Is(err, s.err) {
			return s.code
		}
	}
	return http.StatusInternalServerError
}

func writeError(c echo.Context, err error) error {
	code := StatusFor(err)
	msg := err.Error()
	if code == http.StatusInternalServerError {
		log.Errorw("request failed", "path", c.Path(), "err", err)
		msg = "internal error"
	}
	return c.JSON(code, ErrorResponse{Error: msg})
}

func bindAndValidate(c echo.Context, req any) (bool, error) {
	if err := c.Bind(req); err != nil {
		return false, c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(req); err != nil {
		return false, c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	return true, nil
}
