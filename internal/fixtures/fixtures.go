// Package fixtures bundles sample datasets for offline development. The
// fetch client serves these instead of hitting the network when the
// process runs in dev mode; they are never used in production.
package fixtures

import (
	"embed"
	"path"
	"strings"
)

//go:embed data/*.json
var files embed.FS

// Lookup returns the bundled dataset for a request path such as
// "/stocks_a.json" or "stocks_a". The .json suffix and any leading
// directories are ignored. Returns false when no fixture exists.
func Lookup(requestPath string) ([]byte, bool) {
	name := path.Base(strings.TrimSpace(requestPath))
	name = strings.TrimSuffix(name, ".json")
	if name == "" || name == "." || name == "/" {
		return nil, false
	}

	data, err := files.ReadFile("data/" + name + ".json")
	if err != nil {
		return nil, false
	}
	return data, true
}

// Names lists the bundled dataset names, without the .json suffix.
func Names() []string {
	entries, err := files.ReadDir("data")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".json"))
	}
	return names
}
