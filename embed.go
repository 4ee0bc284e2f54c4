package folio

import "embed"

// EmbeddedAssets contains the default stylesheet. A styles.css in the
// static dir is not consulted; override the route instead.
//
//go:embed embedded/*
var EmbeddedAssets embed.FS
