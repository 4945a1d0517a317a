package middleware

import (
	"context"
	"encoding/json"
	"mime"
	"net/http"
)

const maxBodySize = 1 << 20 // 1 MB

type fieldsKey struct{}

// RequireFields is the per-route precondition check: it parses the
// request body (JSON or form-encoded) once and responds 400 with an
// empty body when any required field is absent or empty. Handlers read
// the parsed fields with Field. Runs before authentication.
func RequireFields(names ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)

			fields, err := parseBody(r)
			if err != nil {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			for _, name := range names {
				if fields[name] == "" {
					w.WriteHeader(http.StatusBadRequest)
					return
				}
			}

			ctx := context.WithValue(r.Context(), fieldsKey{}, fields)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Field returns a body field parsed by RequireFields, or "" when the
// route declared no fields.
func Field(r *http.Request, name string) string {
	fields, _ := r.Context().Value(fieldsKey{}).(map[string]string)
	return fields[name]
}

func parseBody(r *http.Request) (map[string]string, error) {
	contentType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if contentType == "application/json" {
		var raw map[string]any
		if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
			return nil, err
		}
		fields := make(map[string]string, len(raw))
		for name, v := range raw {
			if s, ok := v.(string); ok {
				fields[name] = s
			}
		}
		return fields, nil
	}

	if err := r.ParseForm(); err != nil {
		return nil, err
	}
	fields := make(map[string]string, len(r.PostForm))
	for name := range r.PostForm {
		fields[name] = r.PostForm.Get(name)
	}
	return fields, nil
}
