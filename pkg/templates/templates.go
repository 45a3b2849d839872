// Package templates bundles the built-in mapping documents shipped with the
// binary and exposes them behind a small loader interface so tests can
// substitute in-memory fixtures.
package templates

import (
	"embed"
	"fmt"
)

//go:embed webpartmapping.xml pagelayoutmapping.xml
var bundled embed.FS

// Template names accepted by LoadTemplate. They double as the fixed output
// file names for built-in exports.
const (
	WebPartMapping    = "webpartmapping.xml"
	PageLayoutMapping = "pagelayoutmapping.xml"
)

// Loader returns the full text of a named embedded template.
type Loader interface {
	LoadTemplate(name string) ([]byte, error)
}

// Embedded serves templates from the compiled-in bundle.
type Embedded struct{}

func (Embedded) LoadTemplate(name string) ([]byte, error) {
	data, err := bundled.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("unknown template %q: %w", name, err)
	}
	return data, nil
}

// Static is an in-memory Loader for tests.
type Static map[string][]byte

func (s Static) LoadTemplate(name string) ([]byte, error) {
	data, ok := s[name]
	if !ok {
		return nil, fmt.Errorf("unknown template %q", name)
	}
	return data, nil
}
