package http

import (
	"context"
	"net/http"

	"crowdlending/internal/usecase/reputation"

	"github.com/labstack/echo/v4"
)

type ReputationHandler struct{ engine *reputation.Engine }

func NewReputationHandler(engine *reputation.Engine) *ReputationHandler {
	return &ReputationHandler{engine: engine}
}

func (h *ReputationHandler) Community(c echo.Context) error {
	return h.read(c, h.engine.CommunityReputation)
}

func (h *ReputationHandler) LocalNode(c echo.Context) error {
	return h.read(c, h.engine.LocalNodeReputation)
}

func (h *ReputationHandler) read(c echo.Context, fn func(context.Context, string) (*reputation.ScoreDTO, error)) error {
	dto, err := fn(c.Request().Context(), c.Param("identity"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
