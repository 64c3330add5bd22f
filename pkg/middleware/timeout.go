package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"
)

// timeoutWriter drops writes made by a handler after its deadline fired.
// Handlers set headers on a private map that reaches the real writer only
// when the response is committed, so a late handler never touches the
// headers of the timeout response.
type timeoutWriter struct {
	http.ResponseWriter
	header   http.Header
	mu       sync.Mutex
	timedOut bool
	written  bool
}

func newTimeoutWriter(w http.ResponseWriter) *timeoutWriter {
	header := w.Header().Clone()
	if header == nil {
		header = make(http.Header)
	}
	return &timeoutWriter{ResponseWriter: w, header: header}
}

func (tw *timeoutWriter) Header() http.Header {
	return tw.header
}

// commit copies the handler's headers to the real writer. Callers hold tw.mu.
func (tw *timeoutWriter) commit(code int) {
	if tw.written {
		return
	}
	tw.written = true

	dst := tw.ResponseWriter.Header()
	for key, values := range tw.header {
		dst[key] = values
	}
	tw.ResponseWriter.WriteHeader(code)
}

func (tw *timeoutWriter) WriteHeader(code int) {
	tw.mu.Lock()
	defer tw.mu.Unlock()

	if tw.timedOut {
		return
	}
	tw.commit(code)
}

func (tw *timeoutWriter) Write(b []byte) (int, error) {
	tw.mu.Lock()
	defer tw.mu.Unlock()

	if tw.timedOut {
		return 0, http.ErrHandlerTimeout
	}
	tw.commit(http.StatusOK)
	return tw.ResponseWriter.Write(b)
}

func RequestTimeout(timeout time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), timeout)
			defer cancel()

			r = r.WithContext(ctx)
			tw := newTimeoutWriter(w)

			done := make(chan struct{})
			panicked := make(chan any, 1)
			go func() {
				defer func() {
					if p := recover(); p != nil {
						panicked <- p
					}
				}()
				next.ServeHTTP(tw, r)
				close(done)
			}()

			select {
			case <-done:
			case p := <-panicked:
				panic(p)
			case <-ctx.Done():
				tw.mu.Lock()
				defer tw.mu.Unlock()
				tw.timedOut = true
				if !tw.written {
					reject(w, http.StatusServiceUnavailable, CodeRequestTimeout, "Request timeout")
				}
			}
		})
	}
}
