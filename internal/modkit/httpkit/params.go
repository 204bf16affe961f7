package httpkit

import (
	"net/http"

	chi "github.com/go-chi/chi/v5"
)

// Param returns the named path parameter for the request
// empty when the route did not bind one
func Param(r *http.Request, name string) string {
	return chi.URLParam(r, name)
}
