// Package web holds the embedded dashboard templates and static assets.
package web

import "embed"

// Content holds the embedded dashboard files.
//
//go:embed templates/*.html static/styles.css
var Content embed.FS
