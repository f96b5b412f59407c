package http

import (
	"errors"
	"strings"
	"testing"

	"crowdlending/pkg/fixedpoint"
)

func TestHex32Validation(t *testing.T) {
	type P struct {
		Identity string `validate:"hex32"`
	}
	cv := NewValidator()

	ok := P{Identity: strings.Repeat("a", 32)}
	if err := cv.Validate(ok); err != nil {
		t.Fatalf("expected valid hex32, got err: %v", err)
	}

	for _, s := range []string{
		"",                                  // empty
		strings.Repeat("A", 32),             // uppercase
		"deadbeef",                          // too short
		strings.Repeat("g", 32),             // non-hex char
		"3f9a6a1b3d544fbe8b3a6b3e8d6b2c8",   // 31 chars
		"3f9a6a1b3d544fbe8b3a6b3e8d6b2c88x", // 33 with extra
	} {
		err := cv.Validate(P{Identity: s})
		if err == nil {
			t.Fatalf("expected error for %q", s)
		}
		if !containsFieldMsg(ToFieldErrors(err), "Identity", "32-char lowercase hex") {
			t.Fatalf("expected hex32 message for %q, got: %+v", s, ToFieldErrors(err))
		}
	}
}

func TestAmountValidation(t *testing.T) {
	type P struct {
		Amount fixedpoint.Amount `validate:"amount"`
	}
	cv := NewValidator()

	for _, a := range []fixedpoint.Amount{fixedpoint.NewAmount(1), fixedpoint.MustUnits("1000000")} {
		if err := cv.Validate(P{Amount: a}); err != nil {
			t.Fatalf("expected amount OK for %s, got %v", a, err)
		}
	}
	err := cv.Validate(P{})
	if err == nil {
		t.Fatalf("expected zero amount to fail")
	}
	if !containsFieldMsg(ToFieldErrors(err), "Amount", "positive integer amount") {
		t.Fatalf("unexpected mapping: %+v", ToFieldErrors(err))
	}
}

func TestRoleValidation(t *testing.T) {
	type P struct {
		Role string `validate:"role"`
	}
	cv := NewValidator()

	for _, r := range []string{"investor", "local_node", "community", "representative"} {
		if err := cv.Validate(P{Role: r}); err != nil {
			t.Fatalf("expected role OK for %q, got %v", r, err)
		}
	}
	for _, r := range []string{"", "admin", "Investor"} {
		err := cv.Validate(P{Role: r})
		if err == nil {
			t.Fatalf("expected role error for %q", r)
		}
		if !containsFieldMsg(ToFieldErrors(err), "Role", "must be one of") {
			t.Fatalf("unexpected mapping for %q: %+v", r, ToFieldErrors(err))
		}
	}
}

func TestRequiredAndBoundsMapping(t *testing.T) {
	type P struct {
		Name  string   `validate:"required"`
		Min   int      `validate:"gte=10"`
		Max   int      `validate:"lte=5"`
		Days  int64    `validate:"gt=0"`
		Items []string `validate:"min=1"`
	}
	cv := NewValidator()

	err := cv.Validate(P{Name: "", Min: 9, Max: 6, Items: []string{}})
	if err == nil {
		t.Fatalf("expected validation errors")
	}
	fe := ToFieldErrors(err)

	if !containsFieldMsg(fe, "Name", "is required") {
		t.Fatalf("missing 'is required' for Name: %+v", fe)
	}
	if !containsFieldMsg(fe, "Min", "greater than or equal to 10") {
		t.Fatalf("missing gte message for Min: %+v", fe)
	}
	if !containsFieldMsg(fe, "Max", "less than or equal to 5") {
		t.Fatalf("missing lte message for Max: %+v", fe)
	}
	if !containsFieldMsg(fe, "Days", "greater than 0") {
		t.Fatalf("missing gt message for Days: %+v", fe)
	}
	if !containsFieldMsg(fe, "Items", "at least 1") {
		t.Fatalf("missing min message for Items: %+v", fe)
	}
}

func TestToFieldErrors_NonValidation(t *testing.T) {
	err := errors.New("boom")
	fe := ToFieldErrors(err)
	if len(fe) != 1 {
		t.Fatalf("expected 1 field error, got %d", len(fe))
	}
	if fe[0].Field != "_" || fe[0].Message != "boom" {
		t.Fatalf("unexpected mapping: %+v", fe[0])
	}
}
