package pdf

import (
	"os"
	"path/filepath"
)

// Default asset filenames looked up in the configured assets directory.
const (
	SignatureAssetName = "sample-signature.png"
	SealAssetName      = "sample-stamp.png"
)

// OptionalAsset probes for an asset file and reports whether it is
// present. Absence is an expected state, not an error: callers switch to a
// drawn fallback instead.
func OptionalAsset(dir, name string) (string, bool) {
	if dir == "" {
		return "", false
	}
	path := filepath.Join(dir, name)
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return "", false
	}
	return path, true
}
