package inkpress

import "embed"

// EmbeddedAssets contains the default assets written to every site:
// style.css. Files of the same name in the static directory take precedence.
//
//go:embed embedded/*
var EmbeddedAssets embed.FS
