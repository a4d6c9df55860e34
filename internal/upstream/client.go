// Package upstream holds the typed clients for the two remote APIs this
// gateway fronts: the Conceal DC appointments service and the BracketWrap
// tournament service. Both speak snake_case JSON over HTTPS; bodies are
// key-normalized to camelCase before decoding.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/concealdc/webgate/pkg/circuitbreaker"
	"github.com/concealdc/webgate/pkg/errors"
	"github.com/concealdc/webgate/pkg/jsonkey"
	"github.com/concealdc/webgate/pkg/metrics"
)

const defaultTimeout = 15 * time.Second

// Config configures a remote API endpoint.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// rest is the shared HTTP core under both API clients.
type rest struct {
	baseURL string
	http    *http.Client
	cb      *circuitbreaker.CircuitBreaker
	metrics *metrics.Metrics
}

func newRest(cfg Config, name string, m *metrics.Metrics) *rest {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &rest{
		baseURL: cfg.BaseURL,
		http:    &http.Client{Timeout: timeout},
		cb: circuitbreaker.NewCircuitBreaker(circuitbreaker.Settings{
			Name:        name,
			MaxFailures: 5,
			Timeout:     30 * time.Second,
		}),
		metrics: m,
	}
}

// call performs one request against the upstream. Response bodies are
// camelized before decoding into out. failMsg is the static caller-facing
// message for any transport or non-2xx failure.
func (r *rest) call(ctx context.Context, op, method, path string, body interface{}, bearer, failMsg string, out interface{}) error {
	start := time.Now()
	err := r.cb.Execute(func() error {
		return r.doOnce(ctx, method, path, body, bearer, out)
	})
	r.observe(op, time.Since(start), err)

	if err != nil {
		if se, ok := err.(*statusError); ok && se.code == http.StatusUnauthorized {
			return errors.Unauthenticated()
		}
		log.Error().Err(err).Str("operation", op).Str("path", path).Msg("upstream call failed")
		return errors.Upstream(failMsg, err)
	}
	return nil
}

func (r *rest) doOnce(ctx context.Context, method, path string, body interface{}, bearer string, out interface{}) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		// Upstream expects snake_case request bodies.
		raw, err = jsonkey.SnakeRaw(raw)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, r.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := r.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &statusError{code: resp.StatusCode}
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	raw, err = jsonkey.CamelizeRaw(raw)
	if err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return json.Unmarshal(raw, out)
}

func (r *rest) observe(op string, d time.Duration, err error) {
	if r.metrics == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "error"
	}
	r.metrics.UpstreamRequests.WithLabelValues(op, status).Inc()
	r.metrics.UpstreamLatency.WithLabelValues(op).Observe(d.Seconds())
}

type statusError struct {
	code int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("unexpected status %d", e.code)
}

// StatusCode satisfies the error-handler middleware contract.
func (e *statusError) StatusCode() int {
	return e.code
}
