package apperr

import (
	"errors"
	"net/http"
	"testing"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		kind Kind
		want int
	}{
		{KindNotFound, http.StatusNotFound},
		{KindValidation, http.StatusBadRequest},
		{KindBadRequest, http.StatusBadRequest},
		{KindConflict, http.StatusConflict},
		{KindForbidden, http.StatusForbidden},
		{KindUnauthorized, http.StatusUnauthorized},
		{KindInternal, http.StatusInternalServerError},
		{KindUnknown, http.StatusBadRequest},
	}
	for _, tt := range tests {
		if got := New(tt.kind, "x").HTTPStatus(); got != tt.want {
			t.Errorf("kind %d: status = %d, want %d", tt.kind, got, tt.want)
		}
	}
}

func TestWrapPreservesUnderlying(t *testing.T) {
	underlying := errors.New("connection refused")
	err := Wrap(KindInternal, "storage failure", underlying)

	if !errors.Is(err, underlying) {
		t.Error("wrapped error lost the underlying error")
	}
	if GetKind(err) != KindInternal {
		t.Errorf("kind = %d, want KindInternal", GetKind(err))
	}
}

func TestErrorStringIncludesOp(t *testing.T) {
	err := NotFound("lead not found").WithOp("leads.Get")
	if err.Error() != "leads.Get: lead not found" {
		t.Errorf("got %q", err.Error())
	}
}

func TestGetKindOnForeignError(t *testing.T) {
	if GetKind(errors.New("plain")) != KindUnknown {
		t.Error("foreign error should map to KindUnknown")
	}
}
