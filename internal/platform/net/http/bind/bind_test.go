package bind

import (
	"net/http/httptest"
	"strings"
	"testing"

	perr "tsudoi/internal/platform/errors"
)

type commitIn struct {
	Operator string `json:"operator" validate:"required,uuid4"`
	Count    int    `json:"count"    validate:"gte=0"`
}

func TestParseJSON_OK(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(
		`{"operator":"0b93cf10-6f4c-4e0a-9f3e-cc5a0bd0a111","count":3}`))
	in, err := ParseJSON[commitIn](r)
	if err != nil {
		t.Fatalf("ParseJSON: %v", err)
	}
	if in.Count != 3 {
		t.Fatalf("count = %d", in.Count)
	}
}

func TestParseJSON_EmptyBody(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(""))
	if _, err := ParseJSON[commitIn](r); !perr.IsCode(err, perr.ErrorCodeJSON) {
		t.Fatalf("want JSON error, got %v", err)
	}
}

func TestParseJSON_UnknownField(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(
		`{"operator":"0b93cf10-6f4c-4e0a-9f3e-cc5a0bd0a111","count":1,"bogus":true}`))
	if _, err := ParseJSON[commitIn](r); !perr.IsCode(err, perr.ErrorCodeJSON) {
		t.Fatalf("want JSON error for unknown field, got %v", err)
	}
}

func TestParseJSON_ValidationFailure(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"operator":"nope","count":1}`))
	_, err := ParseJSON[commitIn](r)
	if !perr.IsCode(err, perr.ErrorCodeValidation) {
		t.Fatalf("want validation error, got %v", err)
	}
	if e, ok := perr.As(err); !ok || e.Field() != "operator" {
		t.Fatalf("want field=operator, got %+v", err)
	}
}

func TestValidate_NonStructPassesThrough(t *testing.T) {
	if err := Validate(map[string]int{"a": 1}); err != nil {
		t.Fatalf("non-struct should pass: %v", err)
	}
}
