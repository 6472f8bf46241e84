package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
	"golang.org/x/time/rate"

	textcompare "github.com/baditaflorin/go_text_compare"
	"github.com/baditaflorin/go_text_compare/internal/metrics"
	"github.com/baditaflorin/go_text_compare/internal/ports"
	"github.com/baditaflorin/go_text_compare/pkg/render"
)

// CompareRequest is a table: the first column is the reference, the rest
// are candidates.
type CompareRequest struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// TextRequest compares one reference with one or two candidate texts.
type TextRequest struct {
	Reference  string   `json:"reference"`
	Candidates []string `json:"candidates"`
}

// CompareResponse carries the rounded overview and the full per-row results.
type CompareResponse struct {
	RequestID      string                    `json:"request_id"`
	Overview       []textcompare.OverviewRow `json:"overview"`
	Result         textcompare.BatchResult   `json:"result"`
	ProcessingTime string                    `json:"processing_time"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

type server struct {
	comparer       ports.TableComparator
	logger         ports.Logger
	limiter        *rate.Limiter
	requestTimeout time.Duration
	metrics        fasthttp.RequestHandler
}

func newServer(comparer ports.TableComparator, logger ports.Logger, requestsPerSecond float64, requestTimeout time.Duration) *server {
	s := &server{
		comparer:       comparer,
		logger:         logger,
		requestTimeout: requestTimeout,
		metrics:        fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler()),
	}
	if requestsPerSecond > 0 {
		burst := int(requestsPerSecond)
		if burst < 1 {
			burst = 1
		}
		s.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), burst)
	}
	return s
}

const requestIDKey = "request_id"

// handle is the main fasthttp request handler.
func (s *server) handle(ctx *fasthttp.RequestCtx) {
	start := time.Now()

	requestID := string(ctx.Request.Header.Peek("X-Request-ID"))
	if requestID == "" {
		requestID = uuid.NewString()
	}
	ctx.SetUserValue(requestIDKey, requestID)
	ctx.Response.Header.Set("X-Request-ID", requestID)
	ctx.Response.Header.Set("Server", "TextCompareServer")
	ctx.SetContentType("application/json")

	path := string(ctx.Path())
	route := path
	switch path {
	case "/health":
		s.handleHealth(ctx)
	case "/metrics":
		s.metrics(ctx)
	case "/compare", "/text", "/render":
		if s.limiter != nil && !s.limiter.Allow() {
			ctx.SetStatusCode(fasthttp.StatusTooManyRequests)
			s.writeJSONError(ctx, "Rate limit exceeded")
			break
		}
		switch path {
		case "/compare":
			s.handleCompare(ctx)
		case "/text":
			s.handleText(ctx)
		default:
			s.handleRender(ctx)
		}
	default:
		route = "other"
		ctx.SetStatusCode(fasthttp.StatusNotFound)
		s.writeJSONError(ctx, "Not found")
	}

	duration := time.Since(start)
	metrics.ObserveRequest(route, strconv.Itoa(ctx.Response.StatusCode()), duration)
	s.logger.Info("Request processed",
		"request_id", requestID,
		"method", string(ctx.Method()),
		"path", path,
		"status", ctx.Response.StatusCode(),
		"ip", ctx.RemoteIP().String(),
		"duration", duration.String(),
	)
}

func (s *server) handleHealth(ctx *fasthttp.RequestCtx) {
	ctx.SetStatusCode(fasthttp.StatusOK)
	s.writeJSONResponse(ctx, map[string]interface{}{
		"status": "ok",
		"time":   time.Now().Format(time.RFC3339),
	})
}

func (s *server) handleCompare(ctx *fasthttp.RequestCtx) {
	var req CompareRequest
	if !s.decodePost(ctx, &req) {
		return
	}
	table, err := textcompare.NewTable(req.Columns, req.Rows)
	if err != nil {
		s.writeCompareError(ctx, err)
		return
	}
	s.compare(ctx, table)
}

func (s *server) handleText(ctx *fasthttp.RequestCtx) {
	var req TextRequest
	if !s.decodePost(ctx, &req) {
		return
	}
	s.compare(ctx, textcompare.TextTable(req.Reference, req.Candidates...))
}

func (s *server) handleRender(ctx *fasthttp.RequestCtx) {
	var req TextRequest
	if !s.decodePost(ctx, &req) {
		return
	}

	c, cancel := context.WithTimeout(ctx, s.requestTimeout)
	defer cancel()
	res, err := s.comparer.Compare(c, textcompare.TextTable(req.Reference, req.Candidates...))
	if err != nil {
		s.writeCompareError(ctx, err)
		return
	}

	var buf bytes.Buffer
	if err := render.WriteDocument(&buf, render.NewDocument("Text comparison", res)); err != nil {
		s.logger.Error("Error rendering document", "error", err)
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		s.writeJSONError(ctx, "Internal server error")
		return
	}
	ctx.SetStatusCode(fasthttp.StatusOK)
	ctx.SetContentType("text/html; charset=utf-8")
	ctx.SetBody(buf.Bytes())
}

func (s *server) compare(ctx *fasthttp.RequestCtx, table textcompare.Table) {
	start := time.Now()
	c, cancel := context.WithTimeout(ctx, s.requestTimeout)
	defer cancel()

	res, err := s.comparer.Compare(c, table)
	if err != nil {
		s.writeCompareError(ctx, err)
		return
	}

	ctx.SetStatusCode(fasthttp.StatusOK)
	s.writeJSONResponse(ctx, CompareResponse{
		RequestID:      requestIDOf(ctx),
		Overview:       res.Overview(),
		Result:         res,
		ProcessingTime: time.Since(start).String(),
	})
}

// decodePost accepts POST requests with a JSON body.
func (s *server) decodePost(ctx *fasthttp.RequestCtx, v interface{}) bool {
	if !ctx.IsPost() {
		ctx.SetStatusCode(fasthttp.StatusMethodNotAllowed)
		s.writeJSONError(ctx, "Method not allowed")
		return false
	}
	if err := json.Unmarshal(ctx.PostBody(), v); err != nil {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		s.writeJSONError(ctx, "Invalid request: "+err.Error())
		return false
	}
	return true
}

func (s *server) writeCompareError(ctx *fasthttp.RequestCtx, err error) {
	switch {
	case errors.Is(err, textcompare.ErrInvalidInputShape):
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
	case errors.Is(err, context.DeadlineExceeded):
		ctx.SetStatusCode(fasthttp.StatusGatewayTimeout)
	case errors.Is(err, context.Canceled):
		ctx.SetStatusCode(fasthttp.StatusServiceUnavailable)
	default:
		s.logger.Error("Comparison failed", "request_id", requestIDOf(ctx), "error", err)
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
	}
	s.writeJSONError(ctx, err.Error())
}

func requestIDOf(ctx *fasthttp.RequestCtx) string {
	id, _ := ctx.UserValue(requestIDKey).(string)
	return id
}

// writeJSONResponse writes a JSON response to the context.
func (s *server) writeJSONResponse(ctx *fasthttp.RequestCtx, data interface{}) {
	response, err := json.Marshal(data)
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		s.logger.Error("Error marshaling JSON response", "error", err)
		s.writeJSONError(ctx, "Internal server error")
		return
	}
	ctx.SetBody(response)
}

// writeJSONError writes a JSON error response to the context.
func (s *server) writeJSONError(ctx *fasthttp.RequestCtx, message string) {
	response, err := json.Marshal(ErrorResponse{Error: message, RequestID: requestIDOf(ctx)})
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		ctx.SetBodyString(`{"error":"Internal server error"}`)
		return
	}
	ctx.SetBody(response)
}
