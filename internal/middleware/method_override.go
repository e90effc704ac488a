package middleware

import (
	"net/http"
	"strings"
)

const (
	methodOverrideField  = "_method"
	methodOverrideHeader = "X-HTTP-Method-Override"
)

var overridableMethods = map[string]struct{}{
	http.MethodPut:    {},
	http.MethodPatch:  {},
	http.MethodDelete: {},
}

// MethodOverride lets HTML forms, which can only POST, reach PUT, PATCH and
// DELETE routes. It wraps the router itself because gin picks the route
// before any gin middleware runs.
func MethodOverride(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			if method := overrideMethod(r); method != "" {
				r.Method = method
			}
		}
		next.ServeHTTP(w, r)
	})
}

func overrideMethod(r *http.Request) string {
	method := r.Header.Get(methodOverrideHeader)
	if method == "" {
		method = r.URL.Query().Get(methodOverrideField)
	}
	if method == "" && isURLEncodedForm(r) {
		// ParseForm leaves the parsed body in r.PostForm for the handler.
		if err := r.ParseForm(); err == nil {
			method = r.PostForm.Get(methodOverrideField)
		}
	}

	method = strings.ToUpper(strings.TrimSpace(method))
	if _, ok := overridableMethods[method]; !ok {
		return ""
	}
	return method
}

func isURLEncodedForm(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded")
}
