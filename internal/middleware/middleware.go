package middleware

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/nomindnick/worktracker-v1/internal/logger"
	"github.com/nomindnick/worktracker-v1/internal/metrics"
	"go.uber.org/zap"
)

type contextKey string

const RequestIdKey contextKey = "request_id"

const RequestIdHeader = "X-Request-ID"

func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestId := r.Header.Get(RequestIdHeader)
		if requestId == "" {
			requestId = uuid.New().String()
			r.Header.Set(RequestIdHeader, requestId)
		}

		w.Header().Set(RequestIdHeader, requestId)

		ctx := context.WithValue(r.Context(), RequestIdKey, requestId)
		r = r.WithContext(ctx)

		next.ServeHTTP(w, r)
	})
}

func GetRequestID(ctx context.Context) string {
	if id, ok := ctx.Value(RequestIdKey).(string); ok {
		return id
	}
	return ""
}

// statusWriter records what the handler wrote.
type statusWriter struct {
	http.ResponseWriter
	status      int
	size        int
	wroteHeader bool
}

func newStatusWriter(w http.ResponseWriter) *statusWriter {
	return &statusWriter{ResponseWriter: w, status: http.StatusOK}
}

func (sw *statusWriter) WriteHeader(code int) {
	if !sw.wroteHeader {
		sw.status = code
		sw.wroteHeader = true
		sw.ResponseWriter.WriteHeader(code)
	}
}

func (sw *statusWriter) Write(b []byte) (int, error) {
	if !sw.wroteHeader {
		sw.WriteHeader(http.StatusOK)
	}

	n, err := sw.ResponseWriter.Write(b)
	sw.size += n
	return n, err
}

func (sw *statusWriter) Unwrap() http.ResponseWriter {
	return sw.ResponseWriter
}

func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestId := GetRequestID(r.Context())

		logger.Info(
			"HTTP_IN: request started",
			zap.String("request_id", requestId),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("query", r.URL.RawQuery),
			zap.String("client_ip", r.RemoteAddr),
		)

		sw := newStatusWriter(w)
		next.ServeHTTP(sw, r)

		logLevel := zap.InfoLevel
		if sw.status >= 400 && sw.status < 500 {
			logLevel = zap.WarnLevel
		} else if sw.status >= 500 {
			logLevel = zap.ErrorLevel
		}
		logger.Log(
			logLevel,
			"HTTP_OUT: request finished",
			zap.String("request_id", requestId),
			zap.Int("status", sw.status),
			zap.Int("bytes_written", sw.size),
			zap.Duration("ms", time.Since(start)),
		)
	})
}

// Metrics observes request duration labelled by the matched route pattern,
// so that ids in the path do not explode the label set.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := newStatusWriter(w)

		next.ServeHTTP(sw, r)

		path := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				path = pattern
			}
		}
		metrics.RecordHTTPRequestDuration(r.Method, path, strconv.Itoa(sw.status), time.Since(start))
	})
}

type clientInfo struct {
	count   int
	resetAt time.Time
}

// rateLimiter counts requests per client IP in fixed windows. Expired
// windows are dropped at most once per window.
type rateLimiter struct {
	mtx       sync.Mutex
	clients   map[string]*clientInfo
	limit     int
	window    time.Duration
	lastSweep time.Time
}

func newRateLimiter(limit int, window time.Duration) *rateLimiter {
	return &rateLimiter{
		clients: make(map[string]*clientInfo),
		limit:   limit,
		window:  window,
	}
}

// allow records a request and reports whether it fits the budget, with the
// remaining count and the window reset time.
func (rl *rateLimiter) allow(ip string, now time.Time) (bool, int, time.Time) {
	rl.mtx.Lock()
	defer rl.mtx.Unlock()

	if now.Sub(rl.lastSweep) >= rl.window {
		rl.sweep(now)
	}

	info, exists := rl.clients[ip]
	if !exists || now.After(info.resetAt) {
		info = &clientInfo{resetAt: now.Add(rl.window)}
		rl.clients[ip] = info
	}
	if info.count >= rl.limit {
		return false, 0, info.resetAt
	}
	info.count++
	return true, rl.limit - info.count, info.resetAt
}

// sweep must be called with mtx held.
func (rl *rateLimiter) sweep(now time.Time) {
	for ip, info := range rl.clients {
		if now.After(info.resetAt) {
			delete(rl.clients, ip)
		}
	}
	rl.lastSweep = now
}

// RateLimit allows rpm requests per client IP in a fixed one-minute window.
// A non-positive rpm disables the limit.
func RateLimit(rpm int) func(http.Handler) http.Handler {
	limiter := newRateLimiter(rpm, time.Minute)

	return func(next http.Handler) http.Handler {
		if rpm <= 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := getIp(r)
			now := time.Now()

			ok, remaining, resetAt := limiter.allow(ip, now)
			if !ok {
				retryAfter := int(resetAt.Sub(now).Seconds())
				logger.Warn("HTTP: rate limit exceeded",
					zap.String("client_ip", ip),
					zap.Int("limit", rpm))

				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
				w.WriteHeader(http.StatusTooManyRequests)

				_ = json.NewEncoder(w).Encode(map[string]any{
					"error":       "rate_limit_exceeded",
					"message":     "Too many requests. Try again later.",
					"retry_after": retryAfter,
					"request_id":  GetRequestID(r.Context()),
				})
				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(rpm))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(resetAt.Unix(), 10))

			next.ServeHTTP(w, r)
		})
	}
}

func getIp(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
