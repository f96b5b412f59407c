package http

import (
	stdhttp "net/http"
	"testing"

	"crowdlending/internal/usecase/registry"
	"crowdlending/pkg/id"
)

func TestRegistryHandler_RegisterAndStatus(t *testing.T) {
	a := newAPI(t)
	who := id.NewID32()

	var dto registry.RegistrationDTO
	a.ok(a.do(stdhttp.MethodPost, "/registry/users", a.admin, map[string]any{"identity": who, "role": "investor"}), stdhttp.StatusCreated, &dto)
	if !dto.Active || dto.Role != "investor" {
		t.Fatalf("unexpected dto: %+v", dto)
	}

	a.ok(a.do(stdhttp.MethodGet, "/registry/users/"+who+"/roles/investor", "", nil), stdhttp.StatusOK, &dto)
	if !dto.Active {
		t.Fatalf("expected active registration")
	}
	a.ok(a.do(stdhttp.MethodGet, "/registry/users/"+who+"/roles/community", "", nil), stdhttp.StatusOK, &dto)
	if dto.Active {
		t.Fatalf("role not granted must read inactive")
	}

	var out struct {
		Registrations []registry.RegistrationDTO `json:"registrations"`
	}
	a.ok(a.do(stdhttp.MethodPut, "/registry/users/status", a.admin, map[string]any{
		"identities": []string{who}, "role": "investor", "active": false,
	}), stdhttp.StatusOK, &out)
	if len(out.Registrations) != 1 || out.Registrations[0].Active {
		t.Fatalf("unexpected registrations: %+v", out.Registrations)
	}
	a.ok(a.do(stdhttp.MethodGet, "/registry/users/"+who+"/roles/investor", "", nil), stdhttp.StatusOK, &dto)
	if dto.Active {
		t.Fatalf("expected deactivated registration")
	}
}

func TestRegistryHandler_Errors(t *testing.T) {
	a := newAPI(t)
	who := id.NewID32()

	tests := []struct {
		name   string
		method string
		path   string
		caller string
		body   any
		want   int
	}{
		{"not admin", stdhttp.MethodPost, "/registry/users", who, map[string]any{"identity": who, "role": "investor"}, stdhttp.StatusForbidden},
		{"bad role", stdhttp.MethodPost, "/registry/users", a.admin, map[string]any{"identity": who, "role": "admin"}, stdhttp.StatusUnprocessableEntity},
		{"bad identity", stdhttp.MethodPost, "/registry/users", a.admin, map[string]any{"identity": "x", "role": "investor"}, stdhttp.StatusUnprocessableEntity},
		{"empty batch", stdhttp.MethodPut, "/registry/users/status", a.admin, map[string]any{"identities": []string{}, "role": "investor"}, stdhttp.StatusUnprocessableEntity},
		{"unknown in batch", stdhttp.MethodPut, "/registry/users/status", a.admin, map[string]any{"identities": []string{who}, "role": "investor", "active": true}, stdhttp.StatusNotFound},
		{"status bad role", stdhttp.MethodGet, "/registry/users/" + who + "/roles/admin", "", nil, stdhttp.StatusUnprocessableEntity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := a.do(tt.method, tt.path, tt.caller, tt.body)
			if rec.Code != tt.want {
				t.Fatalf("status = %d, want %d; body=%s", rec.Code, tt.want, rec.Body.String())
			}
		})
	}
}
