package http

import (
	"net/http"
	"strings"

	"crowdlending/internal/adapter/middleware"
	"crowdlending/pkg/id"

	logging "github.com/ipfs/go-log/v2"
	"github.com/labstack/echo/v4"
)

var log = logging.Logger("http")

// HeaderCallerID carries the identity a request acts as.
const HeaderCallerID = middleware.HeaderCallerID

// callerID reads and checks the acting identity. ok is false once an error
// response has been written.
func callerID(c echo.Context) (caller string, ok bool, err error) {
	caller = strings.TrimSpace(c.Request().Header.Get(HeaderCallerID))
	if caller == "" {
		return "", false, c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing " + HeaderCallerID})
	}
	if !id.Valid(caller) {
		return "", false, c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid " + HeaderCallerID})
	}
	return caller, true, nil
}
