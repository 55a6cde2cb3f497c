// Package web embeds the single-page client served at the root.
package web

import "embed"

//go:embed static
var StaticFS embed.FS
