// Package configs provides the embedded configuration template.
//
// The template is embedded at build time with go:embed so it ships in
// every distribution, source builds included. `multaguia init` writes
// it as .multaguia.yaml in the working directory; the loader in
// internal/config picks it up on the next run.
package configs

import _ "embed"

// ConfigTemplate is the annotated default configuration written by
// `multaguia init`. Every value matches the hardcoded defaults, so a
// freshly written file changes nothing until edited.
//
//go:embed example.multaguia.yaml
var ConfigTemplate string
