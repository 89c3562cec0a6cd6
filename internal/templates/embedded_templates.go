package templates

import "embed"

// bundledFS holds the template bundles shipped inside the agenterra
// binary. "all:" keeps dotfiles (".gitignore") that the default embed
// pattern would otherwise skip.
//
//go:embed all:bundled
var bundledFS embed.FS

// NewBundledRepository returns the Repository serving the bundles
// compiled into this binary.
func NewBundledRepository() *EmbeddedRepository {
	return NewEmbeddedRepository(bundledFS, "bundled")
}
