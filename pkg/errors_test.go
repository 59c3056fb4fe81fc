package pkg

import (
	"errors"
	"net/http"
	"testing"
)

func TestAppError(t *testing.T) {
	cause := errors.New("db down")
	appErr := NewDomainError("INTERNAL_ERROR", "An internal error occurred", cause, http.StatusInternalServerError)

	if !errors.Is(appErr, cause) {
		t.Fatalf("expected wrapped cause to be reachable")
	}
	if appErr.Error() != "An internal error occurred: db down" {
		t.Fatalf("unexpected error string: %s", appErr.Error())
	}

	he := appErr.ToHTTPError()
	if he.Code != "INTERNAL_ERROR" || he.Message != "An internal error occurred" {
		t.Fatalf("unexpected http error: %+v", he)
	}

	simple := NewDomainErrorSimple("ORDER_NOT_FOUND", "Order not found", http.StatusNotFound)
	if simple.Error() != "Order not found" || simple.HTTPStatus != http.StatusNotFound {
		t.Fatalf("unexpected simple error: %+v", simple)
	}
}
