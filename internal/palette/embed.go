package palette

import "embed"

//go:embed defaults/*.palette
var EmbeddedPalettes embed.FS
