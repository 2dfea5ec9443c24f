package app

import (
	"sort"
	"strings"

	"github.com/maruel/natural"
)

// ListSources returns the importable file names directly inside sourceDir in
// natural order (IMG_2 before IMG_10). Hidden files are left out.
func ListSources(fs FileSystem, sourceDir string) ([]string, error) {
	names, err := fs.ListFiles(sourceDir)
	if err != nil {
		return nil, err
	}
	visible := names[:0]
	for _, name := range names {
		if strings.HasPrefix(name, ".") {
			continue
		}
		visible = append(visible, name)
	}
	sort.Sort(natural.StringSlice(visible))
	return visible, nil
}
