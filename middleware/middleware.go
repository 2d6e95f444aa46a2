// Package middleware extracts the requested frame identifier from inbound
// partial-render requests and makes it available to handlers.
package middleware

import (
	"context"
	"net/http"
)

// HeaderFrameID is the request header carrying the frame identifier of a
// partial-render request. Requests without it are full-page renders.
const HeaderFrameID = "X-Frame-Id"

type frameIDKey struct{}

// FrameID returns the frame identifier of the request, or "" for a
// full-page render. It prefers the value stored by Extract and falls back
// to reading the header directly.
func FrameID(r *http.Request) string {
	if id, ok := FromContext(r.Context()); ok {
		return id
	}
	return r.Header.Get(HeaderFrameID)
}

// IsFrameRequest reports whether the request targets a single frame.
func IsFrameRequest(r *http.Request) bool {
	return FrameID(r) != ""
}

// FromContext returns the frame identifier stored by Extract.
func FromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(frameIDKey{}).(string)
	return id, ok && id != ""
}

// Extract is net/http middleware that stores the request's frame identifier
// in the request context when the header is present.
func Extract(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id := r.Header.Get(HeaderFrameID); id != "" {
			r = r.WithContext(context.WithValue(r.Context(), frameIDKey{}, id))
		}
		next.ServeHTTP(w, r)
	})
}
