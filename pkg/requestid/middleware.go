package requestid

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/dmitrymomot/fieldrules/pkg/pattern"
)

// Header carries the request id in both directions.
const Header = "X-Request-ID"

// accepted bounds what a client may supply; anything else is replaced.
var accepted = pattern.MustCompile(`[A-Za-z0-9_-]{1,128}`)

// Middleware reuses a well-formed incoming X-Request-ID or generates a UUID,
// echoes it in the response and stores it in the request context.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(Header)
		if !Valid(id) {
			id = uuid.NewString()
		}
		w.Header().Set(Header, id)
		next.ServeHTTP(w, r.WithContext(WithContext(r.Context(), id)))
	})
}

// Valid reports whether id is acceptable as a client-supplied request id.
func Valid(id string) bool {
	return id != "" && accepted.Match(id)
}
