package env

import (
	"context"
	"os"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// Files the environments directory is expected to contain.
const managedFilePattern = "*.{json,url}"

// 🔎 ScanOrphans lists managed-looking files in the environments directory
// that no environment in the collection references, either as its config
// file or as its endpoint-URL companion. Purely informational.
func ScanOrphans(ctx context.Context, col *Collection, envDir string) ([]string, error) {
	entries, err := os.ReadDir(envDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Errorf("reading environments directory: %w", err)
	}

	referenced := map[string]bool{}
	for _, e := range col.Environments {
		referenced[e.ConfigFileName] = true
		referenced[e.CompanionFileName()] = true
	}

	var orphans []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		match, err := doublestar.Match(managedFilePattern, name)
		if err != nil {
			return nil, errors.Errorf("matching %q: %w", managedFilePattern, err)
		}
		if !match || referenced[name] {
			continue
		}
		orphans = append(orphans, name)
	}
	sort.Strings(orphans)

	zerolog.Ctx(ctx).Debug().Int("orphans", len(orphans)).Str("dir", envDir).Msg("scanned environments directory")
	return orphans, nil
}
