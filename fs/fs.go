// Package appfs embeds the files shipped within the binaries.
package appfs

import "embed"

//go:embed migrations
var FS embed.FS
