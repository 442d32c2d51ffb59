// internal/memegen/client.go
package memegen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("memerelay/memegen")

// Client calls Instance_Create. It is safe for concurrent use.
type Client struct {
	BaseURL string

	creds   Credentials
	timeout time.Duration
	http    *http.Client
}

// NewClient creates a client pointing at baseURL (e.g. http://version1.api.memegenerator.net).
// Every call is bounded by timeout.
func NewClient(baseURL string, creds Credentials, timeout time.Duration) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		creds:   creds,
		timeout: timeout,
		http:    &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)},
	}
}

// Create asks the API to render inst. A non-2xx answer is a declined Result,
// not an error.
func (c *Client) Create(ctx context.Context, inst Instance) (Result, error) {
	ctx, span := tracer.Start(ctx, "InstanceCreate",
		trace.WithAttributes(
			attribute.String("memegen.image_id", inst.ImageID),
			attribute.String("memegen.generator_id", GeneratorID),
		),
	)
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req := NewRequest(c.creds, inst)
	u := c.BaseURL + instanceCreatePath + "?" + req.Values().Encode()
	r, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		span.RecordError(err)
		return Result{}, fmt.Errorf("build request: %w", err)
	}

	hresp, err := c.http.Do(r)
	if err != nil {
		err = classify(err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Result{}, err
	}
	defer hresp.Body.Close()

	span.SetAttributes(attribute.Int("http.status_code", hresp.StatusCode))
	if hresp.StatusCode < 200 || hresp.StatusCode > 299 {
		zap.S().Infow("memegenerator declined",
			"image_id", inst.ImageID,
			"status", hresp.StatusCode,
		)
		return Result{Outcome: OutcomeDeclined}, nil
	}

	body, err := io.ReadAll(hresp.Body)
	if err != nil {
		err = classify(err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Result{}, err
	}

	var doc instanceResponse
	if err := json.Unmarshal(body, &doc); err != nil || doc.Result == nil || doc.Result.InstanceImageURL == nil {
		uerr := &UnexpectedResponseError{Body: body}
		span.RecordError(uerr)
		span.SetStatus(codes.Error, "unexpected response shape")
		return Result{}, uerr
	}

	imageURL := *doc.Result.InstanceImageURL
	if imageURL == "" {
		return Result{Outcome: OutcomeDeclined}, nil
	}
	return Result{Outcome: OutcomeGenerated, ImageURL: imageURL}, nil
}

// classify maps a transport error onto ErrTimeout or ErrTransport. The
// request URL is dropped since its query carries the password.
func classify(err error) error {
	var uerr *url.Error
	if errors.As(err, &uerr) {
		err = uerr.Err
	}
	var nerr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &nerr) && nerr.Timeout()) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	return fmt.Errorf("%w: %v", ErrTransport, err)
}
