package places

import (
	"os"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/karrick/godirwalk"

	"github.com/treeline/gazetteer/pkg/errors"
	"github.com/treeline/gazetteer/pkg/logging"
)

// Load walks dir recursively and aggregates every *.yaml document into a Set.
// The walk visits entries in lexical order, so the Set's iteration order is
// stable across runs. A document that does not unmarshal as a list of places
// is skipped with a diagnostic; an absent directory yields an empty Set. Any
// other filesystem failure is an error.
func Load(dir string) (*Set, error) {
	set := NewSet()

	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			logging.Debug().Str("dir", dir).Msg("Sources directory absent, starting empty")
			return set, nil
		}
		return nil, errors.WrapIO("stat", dir, err)
	}
	if !info.IsDir() {
		return nil, errors.NewValidationError("sources", dir+" is not a directory")
	}

	err = godirwalk.Walk(dir, &godirwalk.Options{
		Callback: func(path string, de *godirwalk.Dirent) error {
			if de.IsDir() || !strings.HasSuffix(path, ".yaml") {
				return nil
			}
			loadDocument(set, path)
			return nil
		},
		Unsorted: false,
	})
	if err != nil {
		return nil, errors.WrapIO("walk", dir, err)
	}

	logging.Debug().Int("places", set.Len()).Str("dir", dir).Msg("Loaded place records")
	return set, nil
}

// loadDocument reads and aggregates one YAML document. Failures here never
// fail the run: the document is skipped and the diagnostic logged.
func loadDocument(set *Set, path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		logging.Warn().Err(errors.WrapIO("read", path, err)).Msg("Skipping unreadable place document")
		return
	}

	var records []Place
	if err := yaml.Unmarshal(data, &records); err != nil {
		logging.Warn().Err(errors.WrapParse("yaml", path, err)).Msg("Skipping malformed place document")
		return
	}

	for _, p := range records {
		set.Add(p)
	}
}
