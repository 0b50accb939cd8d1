// Package web embeds the static front-end entry page.
package web

import _ "embed"

//go:embed index.html
var IndexPage []byte
