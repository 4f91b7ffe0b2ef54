package errors

import (
	"errors"
	"net/http"
	"testing"
)

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(CodeUpstream, cause, "fetch catalog")

	if !errors.Is(err, cause) {
		t.Fatalf("expected wrapped cause to survive errors.Is")
	}
	if err.Code() != CodeUpstream {
		t.Fatalf("expected upstream code, got %s", err.Code())
	}
	if err.Error() != "UPSTREAM_ERROR: fetch catalog" {
		t.Fatalf("unexpected error string: %q", err.Error())
	}
}

func TestWrapNilCauseBehavesLikeNew(t *testing.T) {
	err := Wrap(CodeValidation, nil, "quantity required")
	if err.Unwrap() != nil {
		t.Fatalf("expected no cause, got %v", err.Unwrap())
	}
}

func TestAsFindsTypedErrorInChain(t *testing.T) {
	inner := New(CodeNotFound, "product not found")
	wrapped := Wrap(CodeUpstream, inner, "detail fetch")

	typed := As(wrapped)
	if typed == nil {
		t.Fatal("expected typed error")
	}
	if typed.Code() != CodeUpstream {
		t.Fatalf("expected outermost code, got %s", typed.Code())
	}

	if As(errors.New("plain")) != nil {
		t.Fatal("plain error should not match")
	}
}

func TestMetadataForUnknownCodeFallsBackToInternal(t *testing.T) {
	meta := MetadataFor(Code("BOGUS"))
	if meta.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("expected 500 fallback, got %d", meta.HTTPStatus)
	}

	upstream := MetadataFor(CodeUpstream)
	if upstream.HTTPStatus != http.StatusServiceUnavailable || !upstream.Retryable {
		t.Fatalf("unexpected upstream metadata: %+v", upstream)
	}
}

func TestDumpCollectsChain(t *testing.T) {
	cause := errors.New("dial tcp: timeout")
	err := Wrap(CodeUpstream, cause, "fetch catalog")

	d := Dump(err)
	if d.Code != CodeUpstream {
		t.Fatalf("expected code in dump, got %q", d.Code)
	}
	if len(d.Chain) != 2 {
		t.Fatalf("expected 2 chain entries, got %d", len(d.Chain))
	}

	if got := Dump(nil); got.TopMessage != "" || len(got.Chain) != 0 {
		t.Fatalf("expected empty dump for nil error, got %+v", got)
	}
}
