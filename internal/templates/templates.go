package templates

import "embed"

//go:embed layout.html partials/*.html pages/*.html
var FS embed.FS
