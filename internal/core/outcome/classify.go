package outcome

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"syscall"
)

const (
	msgUnreachable     = "cannot connect to server"
	msgTimeout         = "connection timed out"
	msgInvalidResponse = "response missing expected data"
)

// serverError mirrors the backend's error envelope: {"detail": "..."}.
type serverError struct {
	Detail string `json:"detail"`
}

// Classify maps a raw transport result onto an Outcome. It handles the three
// possible shapes: a transport-level error before any response, an HTTP
// response with a non-2xx status, and a 2xx response whose body is decoded
// into T.
func Classify[T any](resp *http.Response, body []byte, err error) Outcome[T] {
	if err != nil {
		return Fail[T](classifyTransport(err), transportMessage(err))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return FailWith[T](Failure{
			Category:     RemoteRejected,
			Message:      statusMessage(resp.StatusCode),
			Status:       resp.StatusCode,
			ServerDetail: serverDetail(body),
		})
	}

	var value T
	if len(bytes.TrimSpace(body)) == 0 {
		return Fail[T](InvalidResponse, msgInvalidResponse)
	}
	if err := json.Unmarshal(body, &value); err != nil {
		return Fail[T](InvalidResponse, msgInvalidResponse)
	}
	return Success(value)
}

// ClassifyNoContent is Classify for operations whose success carries no
// body, such as DELETE /api/foods/{id}.
func ClassifyNoContent(resp *http.Response, body []byte, err error) Outcome[struct{}] {
	if err != nil {
		return Fail[struct{}](classifyTransport(err), transportMessage(err))
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return FailWith[struct{}](Failure{
			Category:     RemoteRejected,
			Message:      statusMessage(resp.StatusCode),
			Status:       resp.StatusCode,
			ServerDetail: serverDetail(body),
		})
	}
	return Success(struct{}{})
}

func classifyTransport(err error) Category {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return Unreachable
	}
	if errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.EHOSTUNREACH) || errors.Is(err, syscall.ENETUNREACH) {
		return Unreachable
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return Timeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return Timeout
	}
	return Unknown
}

func transportMessage(err error) string {
	switch classifyTransport(err) {
	case Unreachable:
		return msgUnreachable
	case Timeout:
		return msgTimeout
	default:
		return err.Error()
	}
}

// statusMessage is the fixed status→message table. It is deliberately the
// only place these strings exist.
func statusMessage(status int) string {
	switch {
	case status == http.StatusBadRequest:
		return "invalid input"
	case status == http.StatusUnauthorized:
		return "invalid credentials or session expired"
	case status == http.StatusForbidden:
		return "access forbidden"
	case status == http.StatusNotFound:
		return "resource not found"
	case status == http.StatusConflict:
		return "account already exists"
	case status >= 500:
		return "server error, please try again later"
	default:
		return fmt.Sprintf("request failed with status %d", status)
	}
}

func serverDetail(body []byte) string {
	var se serverError
	if err := json.Unmarshal(body, &se); err != nil {
		return ""
	}
	return se.Detail
}
