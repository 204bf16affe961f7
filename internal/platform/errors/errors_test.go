package errors

import (
	stderrs "errors"
	"net/http"
	"testing"
)

func TestHTTPStatusCode(t *testing.T) {
	cases := []struct {
		code ErrorCode
		want int
	}{
		{ErrorCodeNotFound, http.StatusNotFound},
		{ErrorCodeInvalidArgument, http.StatusUnprocessableEntity},
		{ErrorCodeConflict, http.StatusConflict},
		{ErrorCodeValidation, http.StatusBadRequest},
		{ErrorCodeJSON, http.StatusBadRequest},
		{ErrorCodeTooManyRequests, http.StatusTooManyRequests},
		{ErrorCodeUnavailable, http.StatusServiceUnavailable},
		{ErrorCodeUpstream, http.StatusBadGateway},
		{ErrorCodePanic, http.StatusInternalServerError},
		{ErrorCodeUnknown, http.StatusInternalServerError},
		{ErrorCode(9999), http.StatusInternalServerError},
	}
	for _, c := range cases {
		if got := HTTPStatusCode(c.code); got != c.want {
			t.Fatalf("code %d -> %d want %d", c.code, got, c.want)
		}
	}
}

func TestWrappingAndCodes(t *testing.T) {
	src := stderrs.New("boom")

	e1 := New(ErrorCodeValidation, "bad input")
	if e1.Error() != "bad input" {
		t.Fatalf("msg %q", e1.Error())
	}

	e2 := Newf(ErrorCodeNotFound, "run %s", "abc")
	if e2.Error() != "run abc" {
		t.Fatalf("msg %q", e2.Error())
	}

	e3 := Wrap(src, ErrorCodeUpstream, "recognition call failed")
	if !stderrs.Is(e3, src) {
		t.Fatalf("expected wrapped cause to survive Is")
	}
	if CodeOf(e3) != ErrorCodeUpstream {
		t.Fatalf("code %d", CodeOf(e3))
	}
	if Root(e3) != src {
		t.Fatalf("root mismatch")
	}

	e4 := Wrapf(src, ErrorCodeConflict, "busy %s", "here")
	if got, ok := As(e4); !ok || got.Code() != ErrorCodeConflict {
		t.Fatalf("As failed: %+v", got)
	}
}

func TestFieldAndOpMutators(t *testing.T) {
	e := New(ErrorCodeValidation, "too long")

	withField := WithField(e, "text")
	fe, ok := As(withField)
	if !ok || fe.Field() != "text" {
		t.Fatalf("WithField failed: %+v", fe)
	}
	// original untouched (copy-on-write)
	orig, _ := As(e)
	if orig.Field() != "" {
		t.Fatalf("original mutated")
	}

	withOp := WithOp(e, "submit")
	oe, _ := As(withOp)
	if oe.Op() != "submit" {
		t.Fatalf("WithOp failed: %+v", oe)
	}

	// foreign errors pass through unchanged
	foreign := stderrs.New("nope")
	if WithField(foreign, "x") != foreign {
		t.Fatalf("foreign error should be returned unchanged")
	}
}

func TestWire(t *testing.T) {
	w := (&Error{code: ErrorCodeValidation, msg: "nothing to process", field: "text"}).ToWire()
	if w.Code != ErrorCodeValidation || w.Message != "nothing to process" || w.Field != "text" {
		t.Fatalf("wire mismatch: %+v", w)
	}

	if wf := WireFrom(nil); wf.Code != ErrorCodeUnknown || wf.Message != "" {
		t.Fatalf("nil WireFrom should be zero: %+v", wf)
	}
	if wf := WireFrom(stderrs.New("raw")); wf.Code != ErrorCodeUnknown || wf.Message != "raw" {
		t.Fatalf("foreign WireFrom mismatch: %+v", wf)
	}
}

func TestSugarCodes(t *testing.T) {
	if !IsCode(NotFoundf("x"), ErrorCodeNotFound) ||
		!IsCode(InvalidArgf("x"), ErrorCodeInvalidArgument) ||
		!IsCode(Validationf("x"), ErrorCodeValidation) ||
		!IsCode(JSONErrf("x"), ErrorCodeJSON) ||
		!IsCode(PanicErrf("x"), ErrorCodePanic) ||
		!IsCode(Conflictf("x"), ErrorCodeConflict) ||
		!IsCode(Unavailablef("x"), ErrorCodeUnavailable) ||
		!IsCode(Upstreamf("x"), ErrorCodeUpstream) ||
		!IsCode(Internalf("x"), ErrorCodeUnknown) {
		t.Fatalf("sugar constructor produced wrong code")
	}
}

func TestWrapIf(t *testing.T) {
	if WrapIf(nil, ErrorCodeUpstream, "ignored") != nil {
		t.Fatalf("WrapIf(nil) should be nil")
	}
	src := stderrs.New("boom")
	if WrapIf(src, ErrorCodeUpstream, "up") == nil {
		t.Fatalf("WrapIf(err) should wrap")
	}
}

func TestRetryable(t *testing.T) {
	if !Retryable(Unavailablef("transient")) {
		t.Fatalf("unavailable should be retryable")
	}
	if !Retryable(New(ErrorCodeTooManyRequests, "slow down")) {
		t.Fatalf("rate limited should be retryable")
	}
	if Retryable(Validationf("bad")) || Retryable(Upstreamf("dead")) || Retryable(nil) {
		t.Fatalf("non-transient must not be retryable")
	}
}

func TestHTTPBundle(t *testing.T) {
	status, w := HTTP(nil)
	if status != http.StatusOK || w.Message != "" {
		t.Fatalf("nil HTTP mismatch: %d %+v", status, w)
	}
	status, w = HTTP(Conflictf("request already in flight"))
	if status != http.StatusConflict || w.Message != "request already in flight" {
		t.Fatalf("HTTP mismatch: %d %+v", status, w)
	}
}
