// Package web embeds the storefront assets served at the site root.
package web

import (
	"embed"
	"net/http"
)

//go:embed index.html static
var assets embed.FS

// Handler serves the embedded storefront: index.html at / and the client
// assets under /static/.
func Handler() http.Handler {
	return http.FileServer(http.FS(assets))
}
