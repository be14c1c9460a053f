// Package web contains the browser chat client that the gateway serves when no
// static root is configured.
package web

import "embed"

// Assets is the default static root.
//
//go:embed index.html static
var Assets embed.FS
