package http

import (
	"context"
	"net/http"

	"crowdlending/internal/usecase/lending"

	"github.com/labstack/echo/v4"
)

type AgreementHandler struct{ uc *lending.Usecase }

func NewAgreementHandler(uc *lending.Usecase) *AgreementHandler { return &AgreementHandler{uc: uc} }

func (h *AgreementHandler) Create(c echo.Context) error {
	caller, ok, err := callerID(c)
	if !ok {
		return err
	}
	var req lending.CreateInput
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	req.Caller = caller
	dto, err := h.uc.Create(c.Request().Context(), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *AgreementHandler) Get(c echo.Context) error {
	dto, err := h.uc.Get(c.Request().Context(), c.Param("agreement_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *AgreementHandler) Activate(c echo.Context) error {
	caller, ok, err := callerID(c)
	if !ok {
		return err
	}
	var req lending.ActivateInput
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	req.Caller, req.AgreementID = caller, c.Param("agreement_id")
	dto, err := h.uc.Activate(c.Request().Context(), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *AgreementHandler) Contribute(c echo.Context) error {
	caller, ok, err := callerID(c)
	if !ok {
		return err
	}
	var req lending.ContributeInput
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	req.Caller, req.AgreementID = caller, c.Param("agreement_id")
	res, err := h.uc.Contribute(c.Request().Context(), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

func (h *AgreementHandler) FinishExchange(c echo.Context) error {
	return h.rate(c, h.uc.FinishInitialExchange)
}

func (h *AgreementHandler) SetReturnRate(c echo.Context) error {
	return h.rate(c, h.uc.SetReturnRate)
}

func (h *AgreementHandler) rate(c echo.Context, fn func(context.Context, lending.RateInput) (*lending.AgreementDTO, error)) error {
	caller, ok, err := callerID(c)
	if !ok {
		return err
	}
	var req lending.RateInput
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	req.Caller, req.AgreementID = caller, c.Param("agreement_id")
	dto, err := fn(c.Request().Context(), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *AgreementHandler) ReturnFunds(c echo.Context) error {
	caller, ok, err := callerID(c)
	if !ok {
		return err
	}
	var req lending.ReturnInput
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	req.Caller, req.AgreementID = caller, c.Param("agreement_id")
	dto, err := h.uc.ReturnFunds(c.Request().Context(), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *AgreementHandler) DeclareNotFunded(c echo.Context) error {
	return h.action(c, h.uc.DeclareNotFunded)
}

func (h *AgreementHandler) DeclareDefault(c echo.Context) error {
	return h.action(c, h.uc.DeclareDefault)
}

func (h *AgreementHandler) Close(c echo.Context) error {
	return h.action(c, h.uc.Close)
}

// action runs a body-less transition acting as the caller.
func (h *AgreementHandler) action(c echo.Context, fn func(ctx context.Context, caller, agreementID string) (*lending.AgreementDTO, error)) error {
	caller, ok, err := callerID(c)
	if !ok {
		return err
	}
	dto, err := fn(c.Request().Context(), caller, c.Param("agreement_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *AgreementHandler) Reclaim(c echo.Context) error {
	return h.reclaim(c, h.uc.ReclaimContribution)
}

func (h *AgreementHandler) ReclaimWithInterest(c echo.Context) error {
	return h.reclaim(c, h.uc.ReclaimContributionWithInterest)
}

func (h *AgreementHandler) reclaim(c echo.Context, fn func(context.Context, lending.ReclaimInput) (*lending.PayoutDTO, error)) error {
	caller, ok, err := callerID(c)
	if !ok {
		return err
	}
	p, err := fn(c.Request().Context(), lending.ReclaimInput{
		Caller:      caller,
		AgreementID: c.Param("agreement_id"),
		Beneficiary: c.Param("investor"),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *AgreementHandler) ReclaimLocalNodeFee(c echo.Context) error {
	return h.fee(c, h.uc.ReclaimLocalNodeFee)
}

func (h *AgreementHandler) ReclaimTeamFee(c echo.Context) error {
	return h.fee(c, h.uc.ReclaimTeamFee)
}

func (h *AgreementHandler) fee(c echo.Context, fn func(ctx context.Context, caller, agreementID string) (*lending.PayoutDTO, error)) error {
	caller, ok, err := callerID(c)
	if !ok {
		return err
	}
	p, err := fn(c.Request().Context(), caller, c.Param("agreement_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *AgreementHandler) GetContribution(c echo.Context) error {
	dto, err := h.uc.Contribution(c.Request().Context(), c.Param("agreement_id"), c.Param("investor"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *AgreementHandler) ListPayouts(c echo.Context) error {
	ps, err := h.uc.Payouts(c.Request().Context(), c.Param("agreement_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"payouts": ps})
}
