package errors

import (
	stderrors "errors"
	"net/http"
	"testing"
)

func TestWrap(t *testing.T) {
	cause := stderrors.New("disk full")
	err := Wrap(ErrInternalServer, cause)

	if err.Code != "INTERNAL_ERROR" {
		t.Errorf("expected INTERNAL_ERROR, got %s", err.Code)
	}
	if !stderrors.Is(err, cause) {
		t.Error("expected wrapped error to unwrap to its cause")
	}
	if ErrInternalServer.Internal != nil {
		t.Error("sentinel must not be mutated")
	}
}

func TestWithDetails(t *testing.T) {
	err := WithDetails(ErrInsufficientQuantity, "not enough", map[string]any{"symbol": "AAPL"})

	if err.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", err.StatusCode)
	}
	if err.Details["symbol"] != "AAPL" {
		t.Errorf("expected symbol detail, got %v", err.Details)
	}
	if ErrInsufficientQuantity.Details != nil {
		t.Error("sentinel must not carry details")
	}
}

func TestStatusCodes(t *testing.T) {
	cases := map[*AppError]int{
		ErrValidation:           http.StatusBadRequest,
		ErrNotFound:             http.StatusNotFound,
		ErrForeignKey:           http.StatusBadRequest,
		ErrInsufficientQuantity: http.StatusBadRequest,
		ErrInternalServer:       http.StatusInternalServerError,
	}
	for sentinel, status := range cases {
		if sentinel.StatusCode != status {
			t.Errorf("%s: expected %d, got %d", sentinel.Code, status, sentinel.StatusCode)
		}
	}
}

func TestEnvelopeFor(t *testing.T) {
	status, body := EnvelopeFor(WithDetails(ErrForeignKey, "missing", map[string]any{"reference": "portfolio"}))
	if status != http.StatusBadRequest || body.Error.Code != "FK_VIOLATION" {
		t.Errorf("unexpected envelope: %d %+v", status, body.Error)
	}

	status, body = EnvelopeFor(stderrors.New("connection reset by peer"))
	if status != http.StatusInternalServerError || body.Error.Message != ErrInternalServer.Message {
		t.Errorf("expected generic internal error, got %d %+v", status, body.Error)
	}
}
