package assets

import (
	_ "embed"
)

// DefaultConfigJSON is the starter configuration written by `note-bot init`.
//
//go:embed default_config.json
var DefaultConfigJSON []byte
