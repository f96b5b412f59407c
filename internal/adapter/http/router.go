package http

import "github.com/labstack/echo/v4"

type Handlers struct {
	Health     *Handler
	Agreements *AgreementHandler
	Registry   *RegistryHandler
	Reputation *ReputationHandler
}

// Routes mounts the API on e. mw wraps every route except /health.
func Routes(e *echo.Echo, h Handlers, mw ...echo.MiddlewareFunc) {
	e.GET("/health", h.Health.Health)

	ag := e.Group("/agreements", mw...)
	ag.POST("", h.Agreements.Create)
	ag.GET("/:agreement_id", h.Agreements.Get)
	ag.POST("/:agreement_id/activate", h.Agreements.Activate)
	ag.POST("/:agreement_id/contributions", h.Agreements.Contribute)
	ag.POST("/:agreement_id/not-funded", h.Agreements.DeclareNotFunded)
	ag.POST("/:agreement_id/exchange", h.Agreements.FinishExchange)
	ag.POST("/:agreement_id/return-rate", h.Agreements.SetReturnRate)
	ag.POST("/:agreement_id/return", h.Agreements.ReturnFunds)
	ag.POST("/:agreement_id/default", h.Agreements.DeclareDefault)
	ag.POST("/:agreement_id/close", h.Agreements.Close)
	ag.GET("/:agreement_id/contributions/:investor", h.Agreements.GetContribution)
	ag.POST("/:agreement_id/contributions/:investor/reclaim", h.Agreements.Reclaim)
	ag.POST("/:agreement_id/contributions/:investor/reclaim-with-interest", h.Agreements.ReclaimWithInterest)
	ag.POST("/:agreement_id/fees/local-node", h.Agreements.ReclaimLocalNodeFee)
	ag.POST("/:agreement_id/fees/team", h.Agreements.ReclaimTeamFee)
	ag.GET("/:agreement_id/payouts", h.Agreements.ListPayouts)

	reg := e.Group("/registry", mw...)
	reg.POST("/users", h.Registry.Register)
	reg.PUT("/users/status", h.Registry.ChangeStatus)
	reg.GET("/users/:identity/roles/:role", h.Registry.Status)

	rep := e.Group("/reputation", mw...)
	rep.GET("/communities/:identity", h.Reputation.Community)
	rep.GET("/local-nodes/:identity", h.Reputation.LocalNode)
}
