package gap

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/diirtv/stations/pkg/internal/metrics"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker/v2"
)

// ResponseError is returned when a sibling service answers with a non 2xx status.
type ResponseError struct {
	Service string
	Route   string
	Status  int
	Body    string
}

func (v *ResponseError) Error() string {
	return fmt.Sprintf("%s %s responded %d: %s", v.Service, v.Route, v.Status, v.Body)
}

// Conn is a connection to one sibling service.
type Conn struct {
	service     string
	baseURL     string
	development bool
	client      *http.Client
	tokens      *ServiceTokenSource
	breaker     *gobreaker.CircuitBreaker[[]byte]
}

func NewConn(service, baseURL string, cfg Config, tokens *ServiceTokenSource) *Conn {
	conn := &Conn{
		service:     service,
		baseURL:     strings.TrimSuffix(baseURL, "/"),
		development: cfg.Development,
		client:      &http.Client{Timeout: cfg.Timeout},
		tokens:      tokens,
	}
	conn.breaker = gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        service,
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		IsSuccessful: func(err error) bool {
			var resp *ResponseError
			if errors.As(err, &resp) {
				return resp.Status < http.StatusInternalServerError
			}
			return err == nil
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			metrics.CollaboratorBreakerState.WithLabelValues(name).Set(float64(to))
			log.Warn().Str("service", name).Str("from", from.String()).Str("to", to.String()).Msg("Sibling service circuit breaker changed state.")
		},
	})
	return conn
}

// Do sends the request and decodes the JSON answer into out when out is not nil.
func (v *Conn) Do(ctx context.Context, method, route, idToken string, body, out any) error {
	raw, err := v.breaker.Execute(func() ([]byte, error) {
		return v.send(ctx, method, route, idToken, body)
	})

	result := "ok"
	if err != nil {
		result = "error"
	}
	metrics.CollaboratorRequestsTotal.WithLabelValues(v.service, routeLabel(route), result).Inc()

	if err != nil {
		return err
	}
	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("unable to decode %s %s response: %v", v.service, route, err)
	}
	return nil
}

func (v *Conn) send(ctx context.Context, method, route, idToken string, body any) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("unable to encode request body: %v", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, v.baseURL+"/"+strings.TrimPrefix(route, "/"), reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("id-token", idToken)
	if !v.development && v.tokens != nil {
		token, err := v.tokens.Token(v.baseURL)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := v.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &ResponseError{
			Service: v.service,
			Route:   route,
			Status:  resp.StatusCode,
			Body:    strings.TrimSpace(string(raw)),
		}
	}
	return raw, nil
}

// routeLabel keeps path parameters out of metric labels.
func routeLabel(route string) string {
	parts := strings.Split(strings.Trim(route, "/"), "/")
	if len(parts) > 2 {
		parts = parts[:2]
	}
	return strings.Join(parts, "/")
}
