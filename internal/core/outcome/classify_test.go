package outcome

import (
	"context"
	"errors"
	"net"
	"net/http"
	"syscall"
	"testing"
)

type payload struct {
	Name string `json:"name"`
}

func httpResponse(status int) *http.Response {
	return &http.Response{StatusCode: status}
}

// timeoutError mimics a net.Error produced by an exceeded deadline.
type timeoutError struct{}

func (timeoutError) Error() string   { return "i/o timeout" }
func (timeoutError) Timeout() bool   { return true }
func (timeoutError) Temporary() bool { return true }

func TestClassify_Success(t *testing.T) {
	res := Classify[payload](httpResponse(200), []byte(`{"name":"margherita"}`), nil)
	if !res.OK() {
		t.Fatalf("expected success, got %+v", res.Failure())
	}
	if res.Value().Name != "margherita" {
		t.Fatalf("unexpected value: %+v", res.Value())
	}
}

func TestClassify_EmptyBody(t *testing.T) {
	res := Classify[payload](httpResponse(200), nil, nil)
	f := res.Failure()
	if f == nil || f.Category != InvalidResponse {
		t.Fatalf("expected InvalidResponse, got %+v", f)
	}
	if f.Message != "response missing expected data" {
		t.Fatalf("unexpected message: %q", f.Message)
	}
}

func TestClassify_UndecodableBody(t *testing.T) {
	res := Classify[payload](httpResponse(200), []byte("<html>not json</html>"), nil)
	if f := res.Failure(); f == nil || f.Category != InvalidResponse {
		t.Fatalf("expected InvalidResponse, got %+v", f)
	}
}

func TestClassify_StatusTable(t *testing.T) {
	cases := []struct {
		status  int
		message string
	}{
		{400, "invalid input"},
		{401, "invalid credentials or session expired"},
		{403, "access forbidden"},
		{404, "resource not found"},
		{409, "account already exists"},
		{500, "server error, please try again later"},
		{503, "server error, please try again later"},
		{418, "request failed with status 418"},
	}

	for _, tc := range cases {
		res := Classify[payload](httpResponse(tc.status), []byte(`{"detail":"boom"}`), nil)
		f := res.Failure()
		if f == nil {
			t.Fatalf("status %d: expected failure, got success", tc.status)
		}
		if f.Category != RemoteRejected {
			t.Fatalf("status %d: expected RemoteRejected, got %s", tc.status, f.Category)
		}
		if f.Message != tc.message {
			t.Fatalf("status %d: expected %q, got %q", tc.status, tc.message, f.Message)
		}
		if f.Status != tc.status {
			t.Fatalf("status %d: raw status not preserved: %d", tc.status, f.Status)
		}
		if f.ServerDetail != "boom" {
			t.Fatalf("status %d: server detail not preserved: %q", tc.status, f.ServerDetail)
		}
	}
}

func TestClassify_NonJSONErrorBody(t *testing.T) {
	res := Classify[payload](httpResponse(500), []byte("gateway exploded"), nil)
	f := res.Failure()
	if f == nil || f.Category != RemoteRejected {
		t.Fatalf("expected RemoteRejected, got %+v", f)
	}
	if f.ServerDetail != "" {
		t.Fatalf("expected empty detail for non-JSON body, got %q", f.ServerDetail)
	}
}

func TestClassify_DNSFailure(t *testing.T) {
	err := &net.DNSError{Err: "no such host", Name: "api.invalid", IsNotFound: true}
	res := Classify[payload](nil, nil, err)
	f := res.Failure()
	if f == nil || f.Category != Unreachable {
		t.Fatalf("expected Unreachable, got %+v", f)
	}
	if f.Message != "cannot connect to server" {
		t.Fatalf("unexpected message: %q", f.Message)
	}
}

func TestClassify_ConnectionRefused(t *testing.T) {
	err := &net.OpError{Op: "dial", Err: syscall.ECONNREFUSED}
	res := Classify[payload](nil, nil, err)
	if f := res.Failure(); f == nil || f.Category != Unreachable {
		t.Fatalf("expected Unreachable, got %+v", f)
	}
}

func TestClassify_Timeout(t *testing.T) {
	for _, err := range []error{
		context.DeadlineExceeded,
		timeoutError{},
		&net.OpError{Op: "read", Err: timeoutError{}},
	} {
		res := Classify[payload](nil, nil, err)
		f := res.Failure()
		if f == nil || f.Category != Timeout {
			t.Fatalf("%v: expected Timeout, got %+v", err, f)
		}
		if f.Message != "connection timed out" {
			t.Fatalf("unexpected message: %q", f.Message)
		}
	}
}

func TestClassify_UnknownFault(t *testing.T) {
	res := Classify[payload](nil, nil, errors.New("tls handshake broke"))
	f := res.Failure()
	if f == nil || f.Category != Unknown {
		t.Fatalf("expected Unknown, got %+v", f)
	}
	if f.Message != "tls handshake broke" {
		t.Fatalf("expected underlying message passed through, got %q", f.Message)
	}
}

func TestClassifyNoContent(t *testing.T) {
	if res := ClassifyNoContent(httpResponse(204), nil, nil); !res.OK() {
		t.Fatalf("expected success for 204, got %+v", res.Failure())
	}
	res := ClassifyNoContent(httpResponse(404), []byte(`{"detail":"Food not found"}`), nil)
	f := res.Failure()
	if f == nil || f.Category != RemoteRejected || f.ServerDetail != "Food not found" {
		t.Fatalf("unexpected failure: %+v", f)
	}
}

func TestOutcome_ExactlyOneHalf(t *testing.T) {
	ok := Success(payload{Name: "x"})
	if !ok.OK() || ok.Failure() != nil {
		t.Fatalf("success outcome carries a failure")
	}
	bad := Fail[payload](Timeout, "connection timed out")
	if bad.OK() || bad.Failure() == nil {
		t.Fatalf("failed outcome reports OK")
	}
	if bad.Value().Name != "" {
		t.Fatalf("failed outcome carries a value")
	}
}
