package core

import (
	"net/http"
	"regexp"
	"strings"
)

// SanitizedValue is the literal token that replaces a sensitive value.
const SanitizedValue = "**********"

var sensitivePattern = regexp.MustCompile(`(?i)(^|[-_])(secret|key|pkey|session|password|token)($|[-_])`)

var exactSensitiveNames = map[string]bool{
	"authorization": true,
	"cookie":        true,
	"set-cookie":    true,
	"password":      true,
}

// ShouldSanitize reports whether name (a header name or JSON key) is
// sensitive under the case-folded exact-name list or the name-matching
// regex.
func ShouldSanitize(name string) bool {
	lower := strings.ToLower(name)
	if exactSensitiveNames[lower] {
		return true
	}
	return sensitivePattern.MatchString(lower)
}

// SanitizeHeaders replaces the value of every sensitive header in place.
func SanitizeHeaders(h http.Header) {
	if h == nil {
		return
	}
	for name := range h {
		if ShouldSanitize(name) {
			h.Set(name, SanitizedValue)
		}
	}
}

// SanitizeJSONValue descends into objects and arrays, replacing the direct
// value of a sensitive key with the sanitization token. Other primitives
// are left untouched.
func SanitizeJSONValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			if ShouldSanitize(k) {
				out[k] = SanitizedValue
			} else {
				out[k] = SanitizeJSONValue(val)
			}
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = SanitizeJSONValue(val)
		}
		return out
	default:
		return t
	}
}

// SanitizeBody returns a sanitized copy of an in-memory body: JSON bodies
// have sensitive keys replaced, everything else is returned unchanged since
// sanitization only targets structured data and headers, never raw text or
// bytes (there is no key to match against in an opaque payload).
func SanitizeBody(b InMemoryBody) InMemoryBody {
	if v, ok := b.JSONValue(); ok {
		return JSONBody(SanitizeJSONValue(v))
	}
	return b
}

// SanitizeRequest returns a sanitized copy of req with sensitive headers and
// JSON body keys replaced. Fingerprint is always computed on the original,
// unsanitized request before this is called (see Store.Record), so a
// sensitive value being replaced here never affects cache lookups - it only
// affects what gets persisted to disk or logged.
func SanitizeRequest(req InMemoryRequest) InMemoryRequest {
	clone := req.Clone()
	SanitizeHeaders(clone.Headers)
	clone.Body = SanitizeBody(clone.Body)
	return clone
}

// SanitizeResponse returns a sanitized copy of resp.
func SanitizeResponse(resp InMemoryResponse) InMemoryResponse {
	clone := resp.Clone()
	SanitizeHeaders(clone.Headers)
	clone.Body = SanitizeBody(clone.Body)
	return clone
}
