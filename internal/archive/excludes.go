package archive

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

//go:embed excludes_default.yaml
var defaultExcludesYAML []byte

// DefaultExcludes returns the built-in exclude patterns merged with any user
// additions from ~/.aibootcamp/excludes.yaml. The user file is a YAML list of
// glob patterns; a missing or unreadable file is ignored.
func DefaultExcludes() []string {
	var patterns []string
	// The embedded document is static; a parse failure means the binary
	// itself is broken, so fail loudly rather than archive unfiltered.
	if err := yaml.Unmarshal(defaultExcludesYAML, &patterns); err != nil {
		panic(fmt.Sprintf("malformed embedded exclude defaults: %v", err))
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return patterns
	}
	data, err := os.ReadFile(filepath.Join(home, ".aibootcamp", "excludes.yaml"))
	if err != nil {
		return patterns
	}
	var extra []string
	if yaml.Unmarshal(data, &extra) == nil {
		patterns = append(patterns, extra...)
	}
	return patterns
}
