package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
)

func echoRemoteAddr() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(r.RemoteAddr))
	})
}

func TestTrustedRealIP(t *testing.T) {
	handler := TrustedRealIP([]string{"10.0.0.0/8", "192.168.1.5", "not-an-ip"})(echoRemoteAddr())

	tests := []struct {
		name    string
		remote  string
		headers map[string]string
		want    string
	}{
		{
			name:   "untrusted peer keeps its address",
			remote: "203.0.113.7:5555",
			headers: map[string]string{
				"X-Real-IP": "1.2.3.4",
			},
			want: "203.0.113.7",
		},
		{
			name:    "trusted proxy with X-Real-IP",
			remote:  "10.1.2.3:443",
			headers: map[string]string{"X-Real-IP": "198.51.100.20"},
			want:    "198.51.100.20",
		},
		{
			name:    "trusted bare address with X-Forwarded-For chain",
			remote:  "192.168.1.5:8080",
			headers: map[string]string{"X-Forwarded-For": "198.51.100.21, 10.0.0.1"},
			want:    "198.51.100.21",
		},
		{
			name:    "trusted proxy with garbage header",
			remote:  "10.1.2.3:443",
			headers: map[string]string{"X-Real-IP": "nope"},
			want:    "10.1.2.3",
		},
		{
			name:   "unparseable remote address is left alone",
			remote: "pipe",
			want:   "pipe",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if got := rec.Body.String(); got != tt.want {
				t.Errorf("RemoteAddr = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLogger_ObservesRoutePattern(t *testing.T) {
	var gotMethod, gotRoute string
	var gotStatus int

	r := chi.NewRouter()
	r.Use(Logger(func(method, route string, status int) {
		gotMethod, gotRoute, gotStatus = method, route, status
	}))
	r.Get("/items/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		w.Write([]byte("short and stout"))
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/items/42", nil))

	if gotMethod != http.MethodGet || gotRoute != "/items/{id}" || gotStatus != http.StatusTeapot {
		t.Errorf("observed %s %s %d", gotMethod, gotRoute, gotStatus)
	}
}
