package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestExtract(t *testing.T) {
	cases := []struct {
		name       string
		header     string
		expectedID string
		isFrame    bool
	}{
		{"frame request", "cart-items", "cart-items", true},
		{"full page render", "", "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var gotID string
			var gotFromCtx bool
			handler := Extract(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotID = FrameID(r)
				_, gotFromCtx = FromContext(r.Context())
			}))

			req := httptest.NewRequest(http.MethodGet, "/cart", nil)
			if tc.header != "" {
				req.Header.Set(HeaderFrameID, tc.header)
			}
			handler.ServeHTTP(httptest.NewRecorder(), req)

			if gotID != tc.expectedID {
				t.Errorf("FrameID = %q, want %q", gotID, tc.expectedID)
			}
			if gotFromCtx != tc.isFrame {
				t.Errorf("FromContext ok = %v, want %v", gotFromCtx, tc.isFrame)
			}
		})
	}
}

func TestFrameIDFallsBackToHeader(t *testing.T) {
	// Without Extract in the chain the header is still honored.
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderFrameID, "item_42")

	if got := FrameID(req); got != "item_42" {
		t.Errorf("FrameID = %q, want item_42", got)
	}
	if !IsFrameRequest(req) {
		t.Error("IsFrameRequest = false, want true")
	}
}
