package validation

import (
	"errors"
	"testing"
)

type item struct {
	Name  string `json:"name" validate:"required"`
	Level int    `json:"level" validate:"min=1,max=5"`
}

type envelope struct {
	Items []item `json:"items" validate:"required,min=1,dive"`
	Count *int   `json:"count" validate:"required"`
}

func TestStructValid(t *testing.T) {
	zero := 0
	env := envelope{Items: []item{{Name: "a", Level: 3}}, Count: &zero}
	if err := Struct(&env); err != nil {
		t.Errorf("expected valid struct, got %v", err)
	}
}

func TestStructReportsJSONNames(t *testing.T) {
	env := envelope{Items: []item{{Name: "", Level: 9}}}

	err := Struct(&env)
	if err == nil {
		t.Fatal("expected validation error")
	}

	var ve *RequestValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *RequestValidationError, got %T", err)
	}

	got := map[string]string{}
	for _, f := range ve.Fields {
		got[f.Field] = f.Tag
	}

	want := map[string]string{
		"items[0].name":  "required",
		"items[0].level": "max",
		"count":          "required",
	}
	for field, tag := range want {
		if got[field] != tag {
			t.Errorf("field %s: expected tag %q, got %q (all: %v)", field, tag, got[field], got)
		}
	}
}

func TestStructMessages(t *testing.T) {
	one := 1
	err := Struct(&envelope{Items: []item{}, Count: &one})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if err.Error() != "items must be at least 1" {
		t.Errorf("unexpected message %q", err.Error())
	}
}

func TestRequiredPointerAcceptsZeroValue(t *testing.T) {
	type req struct {
		Name *string `json:"name" validate:"required"`
	}
	empty := ""
	if err := Struct(&req{Name: &empty}); err != nil {
		t.Errorf("empty string behind pointer should satisfy required, got %v", err)
	}
	if err := Struct(&req{}); err == nil {
		t.Error("nil pointer should fail required")
	}
}
