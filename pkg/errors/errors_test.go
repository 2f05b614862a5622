package errors

import (
	stderrors "errors"
	"math"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidDocument, "segment %q: missing diameter", "journal")
	want := `INVALID_DOCUMENT: segment "journal": missing diameter`
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestWrap(t *testing.T) {
	cause := stderrors.New("disk full")
	err := Wrap(ErrCodeInternal, cause, "render %s", "svg")

	if !stderrors.Is(err, cause) {
		t.Error("wrapped error does not match its cause with errors.Is")
	}
	want := "INTERNAL_ERROR: render svg: disk full"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestIs(t *testing.T) {
	err := New(ErrCodeInvalidPage, "unknown page")
	if !Is(err, ErrCodeInvalidPage) {
		t.Error("Is() = false, want true for matching code")
	}
	if Is(err, ErrCodeInvalidUnit) {
		t.Error("Is() = true, want false for different code")
	}
	if Is(stderrors.New("plain"), ErrCodeInvalidPage) {
		t.Error("Is() = true, want false for non-Error")
	}

	// Codes survive wrapping.
	wrapped := Wrap(ErrCodeInvalidDocument, err, "validate")
	if !Is(wrapped, ErrCodeInvalidDocument) {
		t.Error("Is() = false, want outer code of wrapped error")
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeNotFound, "gone")); got != ErrCodeNotFound {
		t.Errorf("GetCode() = %q, want %q", got, ErrCodeNotFound)
	}
	if got := GetCode(stderrors.New("plain")); got != "" {
		t.Errorf("GetCode() = %q, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	err := New(ErrCodeInvalidUnit, "unknown unit \"furlong\"")
	if got := UserMessage(err); got != "unknown unit \"furlong\"" {
		t.Errorf("UserMessage() = %q, want message without code prefix", got)
	}
	plain := stderrors.New("plain failure")
	if got := UserMessage(plain); got != "plain failure" {
		t.Errorf("UserMessage() = %q, want %q", got, "plain failure")
	}
}

func TestValidateFinite(t *testing.T) {
	if err := ValidateFinite("x", 1.5); err != nil {
		t.Errorf("ValidateFinite(1.5) = %v, want nil", err)
	}
	if err := ValidateFinite("x", math.NaN()); err == nil {
		t.Error("ValidateFinite(NaN) = nil, want error")
	}
	if err := ValidateFinite("x", math.Inf(-1)); err == nil {
		t.Error("ValidateFinite(-Inf) = nil, want error")
	}
}

func TestValidateLength(t *testing.T) {
	if err := ValidateLength("length", 0); err != nil {
		t.Errorf("ValidateLength(0) = %v, want nil", err)
	}
	if err := ValidateLength("length", -1); err == nil {
		t.Error("ValidateLength(-1) = nil, want error")
	}
}

func TestValidatePositive(t *testing.T) {
	if err := ValidatePositive("width", 297); err != nil {
		t.Errorf("ValidatePositive(297) = %v, want nil", err)
	}
	if err := ValidatePositive("width", 0); err == nil {
		t.Error("ValidatePositive(0) = nil, want error")
	}
}
