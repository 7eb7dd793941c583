// Package gateway enumerates every remote operation the client can invoke,
// one method per capability, and routes them all through a single call
// helper so the failure taxonomy is applied identically at every call site.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/fooddelivery/marketplace-go/internal/core/outcome"
	"github.com/fooddelivery/marketplace-go/internal/gateway/metrics"
	"github.com/fooddelivery/marketplace-go/internal/infrastructure/transport"
)

// Gateway is the typed façade over the remote API.
type Gateway struct {
	t   *transport.Client
	log zerolog.Logger

	onUnauthorized func()
}

// New builds a Gateway on top of the shared transport client.
func New(t *transport.Client, log zerolog.Logger) *Gateway {
	return &Gateway{t: t, log: log}
}

// OnUnauthorized registers the hook invoked when an authenticated operation
// is rejected with 401. The account service uses it to clear the session.
func (g *Gateway) OnUnauthorized(fn func()) { g.onUnauthorized = fn }

// callSpec describes one round trip. Exactly one of form and body may be
// set.
type callSpec struct {
	op     string
	method string
	path   string
	query  url.Values
	form   url.Values
	body   any
	// protected marks operations whose 401 means the session is dead,
	// as opposed to login where 401 is just bad credentials.
	protected bool
}

// call performs the round trip and classifies the result into an Outcome.
// Every gateway operation with a JSON response body goes through here.
func call[T any](ctx context.Context, g *Gateway, spec callSpec) outcome.Outcome[T] {
	resp, raw, err := g.roundTrip(ctx, spec)
	res := outcome.Classify[T](resp, raw, err)
	g.finish(spec, res.Failure())
	return res
}

// callNoContent is call for operations whose success carries no body.
func callNoContent(ctx context.Context, g *Gateway, spec callSpec) outcome.Outcome[struct{}] {
	resp, raw, err := g.roundTrip(ctx, spec)
	res := outcome.ClassifyNoContent(resp, raw, err)
	g.finish(spec, res.Failure())
	return res
}

func (g *Gateway) roundTrip(ctx context.Context, spec callSpec) (*http.Response, []byte, error) {
	timer := prometheus.NewTimer(metrics.RequestDuration.WithLabelValues(spec.op))
	defer timer.ObserveDuration()

	var body io.Reader
	var contentType string
	switch {
	case spec.form != nil:
		body = strings.NewReader(spec.form.Encode())
		contentType = "application/x-www-form-urlencoded"
	case spec.body != nil:
		raw, err := json.Marshal(spec.body)
		if err != nil {
			return nil, nil, fmt.Errorf("encode request body: %w", err)
		}
		body = bytes.NewReader(raw)
		contentType = "application/json"
	}

	req, err := g.t.NewRequest(ctx, spec.method, spec.path, spec.query, body)
	if err != nil {
		return nil, nil, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := g.t.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		// Reading the body can hit the same deadline as the dial; let
		// the classifier sort out which category it lands in.
		return nil, nil, err
	}
	return resp, raw, nil
}

// finish records metrics and fires the unauthorized hook for dead sessions.
func (g *Gateway) finish(spec callSpec, f *outcome.Failure) {
	result := "success"
	if f != nil {
		result = string(f.Category)
	}
	metrics.RequestsTotal.WithLabelValues(spec.op, result).Inc()

	if f == nil {
		return
	}

	g.log.Warn().
		Str("operation", spec.op).
		Str("category", string(f.Category)).
		Int("status", f.Status).
		Str("detail", f.ServerDetail).
		Msg("operation failed")

	if spec.protected && f.Status == http.StatusUnauthorized {
		metrics.AuthFailuresTotal.Inc()
		if g.onUnauthorized != nil {
			g.onUnauthorized()
		}
	}
}

// failInput is the uniform shape for payloads rejected before submission.
func failInput[T any](err error) outcome.Outcome[T] {
	return outcome.Fail[T](outcome.Unknown, err.Error())
}
