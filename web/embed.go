// Package web bundles the dashboard's templates and assets into the binary.
package web

import "embed"

// Templates holds layouts, pages and partials parsed by internal/view.
//
//go:embed templates/**/*.html
var Templates embed.FS

// Static holds the stylesheet and script served under /static/.
//
//go:embed static/**/*
var Static embed.FS
