package middleware

import (
	"github.com/abiiranathan/rex"
)

// RexContextKey is the rex context key under which RexExtract stores the
// frame identifier, so templates can branch on it.
const RexContextKey = "frameID"

// RexExtract adapts Extract for rex handler chains.
func RexExtract(next rex.HandlerFunc) rex.HandlerFunc {
	return func(c *rex.Context) error {
		if id := c.Request.Header.Get(HeaderFrameID); id != "" {
			c.Set(RexContextKey, id)
		}
		return next(c)
	}
}

// RexFrameID returns the frame identifier of a rex request, or "" for a
// full-page render. The value stored by RexExtract is preferred; the header
// is the fallback for handlers mounted without the middleware.
func RexFrameID(c *rex.Context) string {
	if v, exists := c.Get(RexContextKey); exists {
		if id, ok := v.(string); ok && id != "" {
			return id
		}
	}
	return c.Request.Header.Get(HeaderFrameID)
}
