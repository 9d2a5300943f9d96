package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/taskboard/client/domain"
	"github.com/taskboard/client/pkg/logger"
)

// Config carries the transport settings for the REST client.
type Config struct {
	BaseURL         string
	ReadTimeout     time.Duration
	MutationTimeout time.Duration
}

// Client issues authenticated JSON requests against the task-management
// backend. Every failure path resolves to a *domain.Error; nothing escapes
// untyped.
type Client struct {
	http            *fasthttp.Client
	baseURL         string
	readTimeout     time.Duration
	mutationTimeout time.Duration
	logger          *zap.Logger
}

// New builds a REST client for the given backend.
func New(cfg Config, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.ReadTimeout <= 0 {
		cfg.ReadTimeout = 10 * time.Second
	}
	if cfg.MutationTimeout <= 0 {
		cfg.MutationTimeout = 30 * time.Second
	}
	return &Client{
		http: &fasthttp.Client{
			ReadTimeout:  cfg.MutationTimeout,
			WriteTimeout: cfg.MutationTimeout,
		},
		baseURL:         strings.TrimRight(cfg.BaseURL, "/"),
		readTimeout:     cfg.ReadTimeout,
		mutationTimeout: cfg.MutationTimeout,
		logger:          log,
	}
}

// get issues a read call bounded by the read timeout.
func (c *Client) get(ctx context.Context, path string, query url.Values, token string, out interface{}) error {
	return c.do(ctx, fasthttp.MethodGet, path, query, token, nil, out, c.readTimeout)
}

// mutate issues a write call bounded by the mutation timeout.
func (c *Client) mutate(ctx context.Context, method, path string, token string, body, out interface{}) error {
	return c.do(ctx, method, path, nil, token, body, out, c.mutationTimeout)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, token string, body, out interface{}, timeout time.Duration) error {
	if err := ctx.Err(); err != nil {
		return domain.WrapError(domain.ErrCodeUnavailable, "request cancelled", err)
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	req.SetRequestURI(target)
	req.Header.SetMethod(method)
	req.Header.SetContentType("application/json")

	requestID := uuid.NewString()
	ctx = logger.ContextWithRequestID(ctx, requestID)
	req.Header.Set("X-Request-ID", requestID)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return domain.WrapError(domain.ErrCodeInternal, "encode request", err)
		}
		req.SetBody(payload)
	}

	deadline := time.Now().Add(timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}

	log := logger.WithRequestID(ctx, c.logger)
	if err := c.http.DoDeadline(req, resp, deadline); err != nil {
		log.Warn("request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err))
		return domain.WrapError(domain.ErrCodeUnavailable, "server unreachable, please retry", err)
	}

	status := resp.StatusCode()
	responseBody := append([]byte(nil), resp.Body()...)
	if status >= fasthttp.StatusBadRequest {
		return c.mapFailure(log, method, path, status, responseBody)
	}

	if out != nil && len(responseBody) > 0 {
		if err := json.Unmarshal(responseBody, out); err != nil {
			return domain.WrapError(domain.ErrCodeInternal, "decode response", err)
		}
	}
	return nil
}

// apiErrorBody is the backend's error envelope. Additive fields are ignored.
type apiErrorBody struct {
	Message string            `json:"message"`
	Error   string            `json:"error"`
	Errors  map[string]string `json:"errors"`
}

func (c *Client) mapFailure(log *zap.Logger, method, path string, status int, body []byte) error {
	var parsed apiErrorBody
	_ = json.Unmarshal(body, &parsed)

	message := parsed.Message
	if message == "" {
		message = parsed.Error
	}
	if message == "" {
		message = fmt.Sprintf("request failed with status %d", status)
	}

	log.Warn("request rejected",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", status))

	var code domain.ErrorCode
	switch {
	case status == fasthttp.StatusUnauthorized:
		code = domain.ErrCodeUnauthorized
	case status == fasthttp.StatusForbidden:
		code = domain.ErrCodeForbidden
	case status == fasthttp.StatusNotFound:
		code = domain.ErrCodeNotFound
	case status == fasthttp.StatusConflict:
		code = domain.ErrCodeConflict
	case status >= fasthttp.StatusInternalServerError:
		code = domain.ErrCodeUnavailable
	default:
		code = domain.ErrCodeInvalid
	}

	err := domain.NewError(code, message)
	if code == domain.ErrCodeInvalid && len(parsed.Errors) > 0 {
		err.Fields = parsed.Errors
	}
	return err
}
