package client

import (
	"context"
	"fmt"
	"time"

	"block_scanner/internal/pkg/metrics"

	jsoniter "github.com/json-iterator/go"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// httpGetter performs single-attempt GET requests with fasthttp.
type httpGetter struct {
	client  *fasthttp.Client
	service string
	timeout time.Duration
	logger  *zap.Logger
}

func newHTTPGetter(service string, timeout time.Duration, logger *zap.Logger) httpGetter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return httpGetter{
		client:  &fasthttp.Client{Name: "block-scanner"},
		service: service,
		timeout: timeout,
		logger:  logger,
	}
}

// get returns the status code and a copy of the body. The context deadline, if any,
// takes precedence over the client's default timeout.
func (g httpGetter) get(ctx context.Context, requestURL string) (int, []byte, error) {
	started := time.Now()

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	req.SetRequestURI(requestURL)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "application/json")

	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	if err := ctx.Err(); err != nil {
		return 0, nil, err
	}

	var err error
	if deadline, ok := ctx.Deadline(); ok {
		err = g.client.DoDeadline(req, resp, deadline)
	} else {
		err = g.client.DoTimeout(req, resp, g.timeout)
	}
	if err != nil {
		metrics.ObserveUpstream(g.service, "transport_error", started)
		g.logger.Error("Upstream request failed", zap.String("url", redact(requestURL)), zap.Error(err))
		return 0, nil, fmt.Errorf("failed to execute request to %s: %w", g.service, err)
	}

	status := resp.StatusCode()
	body := append([]byte(nil), resp.Body()...)

	outcome := "ok"
	if status != fasthttp.StatusOK {
		outcome = "http_error"
		g.logger.Warn("Upstream returned non-success status",
			zap.String("url", redact(requestURL)),
			zap.Int("statusCode", status),
			zap.ByteString("responseBody", truncate(body, 512)))
	} else {
		g.logger.Debug("Upstream request succeeded", zap.String("url", redact(requestURL)), zap.Duration("took", time.Since(started)))
	}
	metrics.ObserveUpstream(g.service, outcome, started)
	return status, body, nil
}

func truncate(b []byte, n int) []byte {
	if len(b) <= n {
		return b
	}
	return b[:n]
}
