package server

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"k8s.io/klog/v2"
)

const requestIDHeader = "X-Request-ID"

// limiter lets at most max requests run next at once. Waiting requests give
// up when their client goes away.
func limiter(next http.Handler, max int) http.Handler {
	if max <= 0 {
		max = 1
	}
	sem := make(chan struct{}, max)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case sem <- struct{}{}:
		case <-r.Context().Done():
			http.Error(w, "server busy", http.StatusServiceUnavailable)
			return
		}
		defer func() { <-sem }()

		next.ServeHTTP(w, r)
	})
}

// withRequestID makes sure every request carries an id, echoing it back.
func withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.New().String()[:8]
			r.Header.Set(requestIDHeader, id)
		}
		w.Header().Set(requestIDHeader, id)
		next.ServeHTTP(w, r)
	})
}

func getid(r *http.Request) string {
	return r.Header.Get(requestIDHeader)
}

// withCORS adds CORS headers
func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, "+requestIDHeader)

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.status = code
	sr.ResponseWriter.WriteHeader(code)
}

// withLogging logs every request with its status and duration.
func withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		klog.Infof("[%s] %s %s %d in %v", getid(r), r.Method, r.URL.Path, rec.status, time.Since(start))
	})
}
