package dedupe

import (
	"hash/fnv"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// NameFingerprint is the fingerprint for the file-name pipeline: the
// basename itself is the identity, so there is nothing to hash — the
// bucket key is the string, and RunFileName in pipeline.go buckets
// directly on it rather than routing it through a 64-bit hash.
func NameFingerprint(path string) string {
	return filepath.Base(path)
}

// PartialFingerprint hashes the first K bytes of path, used by the
// file-content pipeline as a cheap pre-filter. Short files (smaller
// than K) are hashed in full; this is intentional, not a bug: hashing
// fewer bytes than K still uniquely identifies files that are too
// small to have K bytes.
func PartialFingerprint(path string, k int) (uint64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, errors.Wrapf(err, "opening %s", path)
	}
	defer f.Close()

	h := fnv.New64a()
	if _, err := io.CopyN(h, f, int64(k)); err != nil && err != io.EOF {
		return 0, errors.Wrapf(err, "reading %s", path)
	}
	return h.Sum64(), nil
}

// FullFingerprint hashes the entire file, used to disambiguate buckets
// that pass the partial-equality test but may still be hash collisions
// or same-prefix-different-tail files.
func FullFingerprint(path string) (uint64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, errors.Wrapf(err, "opening %s", path)
	}
	defer f.Close()

	h := fnv.New64a()
	if _, err := io.Copy(h, f); err != nil {
		return 0, errors.Wrapf(err, "reading %s", path)
	}
	return h.Sum64(), nil
}

// hashBytes is the 64-bit fingerprint primitive shared by file and
// image fingerprints.
func hashBytes(b []byte) uint64 {
	h := fnv.New64a()
	h.Write(b)
	return h.Sum64()
}
