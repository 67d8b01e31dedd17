// Package view renders the console pages with gomponents.
package view

import (
	"net/http"

	cmp "maragu.dev/gomponents"
)

// Render writes node as an HTML document with the given status.
func Render(w http.ResponseWriter, status int, node cmp.Node) error {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	return node.Render(w)
}
