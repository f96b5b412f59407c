package http

import (
	"bytes"
	"encoding/json"
	"io"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"crowdlending/internal/adapter/repository/mysql"
	"crowdlending/internal/testutil/dbtest"
	"crowdlending/internal/usecase/lending"
	"crowdlending/internal/usecase/registry"
	"crowdlending/internal/usecase/reputation"
	"crowdlending/pkg/id"

	"github.com/benbjohnson/clock"
	"github.com/labstack/echo/v4"
)

func containsFieldMsg(list []FieldError, field, substr string) bool {
	for _, e := range list {
		if e.Field == field && strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}

func newEchoWithValidator() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func mustJSON(v any) *bytes.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

var fundingStart = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

// api is the whole router over sqlite with a mock clock.
type api struct {
	t   *testing.T
	e   *echo.Echo
	clk *clock.Mock

	admin, operator, borrower, localNode, team, community, investor string
}

func newAPI(t *testing.T) *api {
	t.Helper()
	db := dbtest.Open(t)
	a := &api{
		t:         t,
		e:         newEchoWithValidator(),
		clk:       clock.NewMock(),
		admin:     id.NewID32(),
		operator:  id.NewID32(),
		borrower:  id.NewID32(),
		localNode: id.NewID32(),
		team:      id.NewID32(),
		community: id.NewID32(),
		investor:  id.NewID32(),
	}
	a.clk.Set(fundingStart.Add(-time.Hour))

	tx := mysql.NewGormUoW(db)
	engine := reputation.NewEngine(mysql.NewReputationRepository(db))
	Routes(a.e, Handlers{
		Health:     NewHandler(a.clk),
		Agreements: NewAgreementHandler(lending.NewUsecase(tx, engine, lending.WithClock(a.clk))),
		Registry:   NewRegistryHandler(registry.NewUsecase(tx, a.admin)),
		Reputation: NewReputationHandler(engine),
	})
	return a
}

func (a *api) do(method, path, caller string, body any) *httptest.ResponseRecorder {
	a.t.Helper()
	var r io.Reader
	switch b := body.(type) {
	case nil:
	case io.Reader:
		r = b
	default:
		r = mustJSON(b)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if caller != "" {
		req.Header.Set(HeaderCallerID, caller)
	}
	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)
	return rec
}

// ok fails the test unless the response has the wanted status, then decodes it into out.
func (a *api) ok(rec *httptest.ResponseRecorder, want int, out any) {
	a.t.Helper()
	if rec.Code != want {
		a.t.Fatalf("status = %d, want %d; body=%s", rec.Code, want, rec.Body.String())
	}
	if out != nil {
		if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
			a.t.Fatalf("bad json: %v; raw=%s", err, rec.Body.String())
		}
	}
}

func (a *api) registerAll() {
	a.t.Helper()
	for who, role := range map[string]string{
		a.borrower:  "representative",
		a.localNode: "local_node",
		a.community: "community",
		a.investor:  "investor",
	} {
		a.ok(a.do(stdhttp.MethodPost, "/registry/users", a.admin, map[string]any{"identity": who, "role": role}), stdhttp.StatusCreated, nil)
	}
}

// activeAgreement registers every party, then creates and activates an agreement.
func (a *api) activeAgreement() string {
	a.t.Helper()
	a.registerAll()
	var created lending.AgreementDTO
	a.ok(a.do(stdhttp.MethodPost, "/agreements", a.operator, map[string]any{
		"borrower":                   a.borrower,
		"local_node":                 a.localNode,
		"team":                       a.team,
		"funding_start_time":         fundingStart,
		"funding_end_time":           fundingStart.Add(40 * 24 * time.Hour),
		"lending_days":               90,
		"annual_interest_hundredths": 1500,
		"target_amount":              "3000000000000000000",
	}), stdhttp.StatusCreated, &created)

	a.ok(a.do(stdhttp.MethodPost, "/agreements/"+created.AgreementID+"/activate", a.operator, map[string]any{
		"max_default_days":  10,
		"tier":              3,
		"community_members": 100,
		"community":         a.community,
	}), stdhttp.StatusOK, nil)
	return created.AgreementID
}

func errorOf(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var er ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &er); err != nil {
		t.Fatalf("bad json: %v; raw=%s", err, rec.Body.String())
	}
	return er
}
