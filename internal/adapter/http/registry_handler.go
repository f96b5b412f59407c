package http

import (
	"net/http"

	"crowdlending/internal/usecase/registry"

	"github.com/labstack/echo/v4"
)

type RegistryHandler struct{ uc *registry.Usecase }

func NewRegistryHandler(uc *registry.Usecase) *RegistryHandler { return &RegistryHandler{uc: uc} }

func (h *RegistryHandler) Register(c echo.Context) error {
	caller, ok, err := callerID(c)
	if !ok {
		return err
	}
	var req registry.RegisterInput
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	req.Caller = caller
	dto, err := h.uc.Register(c.Request().Context(), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *RegistryHandler) ChangeStatus(c echo.Context) error {
	caller, ok, err := callerID(c)
	if !ok {
		return err
	}
	var req registry.ChangeStatusInput
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	req.Caller = caller
	out, err := h.uc.ChangeStatus(c.Request().Context(), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"registrations": out})
}

func (h *RegistryHandler) Status(c echo.Context) error {
	dto, err := h.uc.IsRegistered(c.Request().Context(), c.Param("identity"), c.Param("role"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
