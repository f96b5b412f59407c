package http

import (
	stdhttp "net/http"
	"testing"

	"crowdlending/internal/usecase/reputation"
	"crowdlending/pkg/id"
)

func TestReputationHandler_SeededOnRegistration(t *testing.T) {
	a := newAPI(t)
	a.registerAll()

	var s reputation.ScoreDTO
	a.ok(a.do(stdhttp.MethodGet, "/reputation/local-nodes/"+a.localNode, "", nil), stdhttp.StatusOK, &s)
	if s.Value != 500 || s.Max != 1000 || s.Kind != "local_node" {
		t.Fatalf("unexpected score: %+v", s)
	}
	a.ok(a.do(stdhttp.MethodGet, "/reputation/communities/"+a.community, "", nil), stdhttp.StatusOK, &s)
	if s.Value != 500 || s.Kind != "community" {
		t.Fatalf("unexpected score: %+v", s)
	}

	// investors carry no score
	rec := a.do(stdhttp.MethodGet, "/reputation/communities/"+a.investor, "", nil)
	if rec.Code != stdhttp.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	rec = a.do(stdhttp.MethodGet, "/reputation/local-nodes/"+id.NewID32(), "", nil)
	if rec.Code != stdhttp.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}
