package dedupe

import (
	"bytes"
	"io"
	"os"
	"sort"

	"github.com/photodedup/photodedup/internal/strbuilder"
)

// Collect walks paths (already expanded by the caller — filesystem
// traversal lives outside this package) and returns a FileHeader per
// reachable regular file, skipping and warning on individual failures
// rather than aborting the whole run.
func Collect(paths []string, warn func(string)) []*FileHeader {
	headers := make([]*FileHeader, 0, len(paths))
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			warn("skipping " + p + ": " + err.Error())
			continue
		}
		if info.IsDir() {
			warn("skipping directory " + p)
			continue
		}
		headers = append(headers, &FileHeader{Path: p, Size: info.Size()})
	}
	return headers
}

// RunFileName implements the file-name pipeline: no verification step,
// since file names are the identity.
func RunFileName(headers []*FileHeader, opts Options) *Plan {
	buckets := map[string][]string{}
	for _, h := range headers {
		key := NameFingerprint(h.Path)
		buckets[key] = append(buckets[key], h.Path)
	}
	plan := &Plan{Kind: "file-name"}
	for _, key := range sortedKeys(buckets) {
		members := buckets[key]
		if len(members) > 1 {
			plan.Groups = append(plan.Groups, rankGroup(members, opts))
		}
	}
	return plan
}

// RunFileContent implements the file-content pipeline: bucket by
// partial hash, then verify by loading and exact-comparing full bytes,
// splitting the bucket at any inequality.
func RunFileContent(headers []*FileHeader, opts Options, cache *Cache) *Plan {
	k := opts.PartialHashBytes
	if k <= 0 {
		k = DefaultPartialHashBytes
	}

	buckets := map[uint64][]*FileHeader{}
	var warnings []string
	for _, h := range headers {
		fp, ok, err := cachedOrCompute(cache, "file-content", h, func() (uint64, error) {
			return PartialFingerprint(h.Path, k)
		})
		if err != nil {
			warnings = append(warnings, "skipping "+h.Path+": "+err.Error())
			continue
		}
		_ = ok
		buckets[fp] = append(buckets[fp], h)
	}

	plan := &Plan{Kind: "file-content"}
	for _, fp := range sortedUint64Keys(buckets) {
		members := buckets[fp]
		if len(members) < 2 {
			continue
		}
		groups, splitWarnings := verifyAndSplit(members)
		warnings = append(warnings, splitWarnings...)
		for _, g := range groups {
			if len(g) > 1 {
				paths := make([]string, len(g))
				for i, h := range g {
					paths[i] = h.Path
				}
				plan.Groups = append(plan.Groups, rankGroup(paths, opts))
			}
		}
	}
	plan.Warnings = warnings
	return plan
}

// RunImageContent implements the image-content pipeline, bucketing by
// ImageFingerprint's hash of dequantized DC coefficients and verifying
// each suspect bucket by comparing the actual coefficient streams
// before finalizing groups, the same way RunFileContent guards against
// a partial-hash collision with a full-byte comparison.
func RunImageContent(headers []*FileHeader, opts Options, cache *Cache) *Plan {
	buckets := map[uint64][]*FileHeader{}
	var warnings []string
	for _, h := range headers {
		fp, _, err := cachedOrCompute(cache, "image-content", h, func() (uint64, error) {
			return ImageFingerprint(h.Path)
		})
		if err != nil {
			warnings = append(warnings, "skipping "+h.Path+": "+err.Error())
			continue
		}
		buckets[fp] = append(buckets[fp], h)
	}

	plan := &Plan{Kind: "image-content"}
	for _, fp := range sortedUint64Keys(buckets) {
		members := buckets[fp]
		if len(members) < 2 {
			continue
		}
		groups, splitWarnings := verifyImageGroupAndSplit(members)
		warnings = append(warnings, splitWarnings...)
		for _, g := range groups {
			if len(g) > 1 {
				paths := make([]string, len(g))
				for i, h := range g {
					paths[i] = h.Path
				}
				plan.Groups = append(plan.Groups, rankGroup(paths, opts))
			}
		}
	}
	plan.Warnings = warnings
	return plan
}

// verifyImageGroupAndSplit decodes every member's image-data stream
// (the same dequantized DC-coefficient bytes ImageFingerprint hashes)
// and splits the bucket at any inequality, so a hash collision between
// two different images never survives into a deletion-plan group.
func verifyImageGroupAndSplit(members []*FileHeader) ([][]*FileHeader, []string) {
	var warnings []string
	type loadedImage struct {
		h    *FileHeader
		data []byte
	}
	loaded := make([]loadedImage, 0, len(members))
	for _, h := range members {
		data, err := ImageDataStream(h.Path)
		if err != nil {
			warnings = append(warnings, "skipping "+h.Path+": "+err.Error())
			continue
		}
		loaded = append(loaded, loadedImage{h: h, data: data})
	}

	sort.Slice(loaded, func(i, j int) bool {
		return bytes.Compare(loaded[i].data, loaded[j].data) < 0
	})

	var groups [][]*FileHeader
	var cur []*FileHeader
	for i, li := range loaded {
		if i == 0 || bytes.Equal(loaded[i-1].data, li.data) {
			cur = append(cur, li.h)
			continue
		}
		warnings = append(warnings, "hash collision: non-equal image data passed the fingerprint test")
		groups = append(groups, cur)
		cur = []*FileHeader{li.h}
	}
	if len(cur) > 0 {
		groups = append(groups, cur)
	}
	return groups, warnings
}

// verifyAndSplit loads every member of a suspect bucket into a
// bucket-scoped arena, sorts by full-byte comparison, and splits the
// sorted sequence at any inequality.
func verifyAndSplit(members []*FileHeader) ([][]*FileHeader, []string) {
	var warnings []string
	loaded := make([]*FileHeader, 0, len(members))
	for _, h := range members {
		data, err := os.ReadFile(h.Path)
		if err != nil {
			warnings = append(warnings, "skipping "+h.Path+": "+err.Error())
			continue
		}
		h.data = data
		h.loaded = true
		loaded = append(loaded, h)
	}
	defer func() {
		for _, h := range loaded {
			h.data = nil
			h.loaded = false
		}
	}()

	sort.Slice(loaded, func(i, j int) bool {
		return bytes.Compare(loaded[i].data, loaded[j].data) < 0
	})

	var groups [][]*FileHeader
	var cur []*FileHeader
	for i, h := range loaded {
		if i == 0 || bytes.Equal(loaded[i-1].data, h.data) {
			cur = append(cur, h)
			continue
		}
		warnings = append(warnings, "non-equal files passed the partial equality test")
		groups = append(groups, cur)
		cur = []*FileHeader{h}
	}
	if len(cur) > 0 {
		groups = append(groups, cur)
	}
	return groups, warnings
}

// cachedOrCompute keys cache entries by pipeline kind and path, so the
// file-content and image-content pipelines sharing one cache file never
// read each other's fingerprints.
func cachedOrCompute(cache *Cache, kind string, h *FileHeader, compute func() (uint64, error)) (uint64, bool, error) {
	key := kind + ":" + h.Path
	if cache != nil {
		if fp, ok := cache.Lookup(key, h.Size); ok {
			return fp, true, nil
		}
	}
	fp, err := compute()
	if err != nil {
		return 0, false, err
	}
	if cache != nil {
		cache.Store(key, h.Size, fp)
	}
	return fp, false, nil
}

func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedUint64Keys(m map[uint64][]*FileHeader) []uint64 {
	keys := make([]uint64, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// Execute performs the deletions in plan's groups when opts.Remove is
// set; a dry run (opts.Remove == false) only ever prints via Format.
func Execute(plan *Plan, opts Options, out io.Writer) error {
	if !opts.Remove {
		return nil
	}
	for _, path := range plan.ToUnlink() {
		if err := os.Remove(path); err != nil {
			io.WriteString(out, "failed to remove "+path+": "+err.Error()+"\n")
		}
	}
	return nil
}

// Format renders the plan as a human-readable list grouping surviving
// and removed files per bucket.
func (p *Plan) Format() string {
	b := strbuilder.New()
	b.Line(0, "%s-deduplication {", p.Kind)
	for _, g := range p.Groups {
		b.Line(1, "path %q;", g.Survivor)
		b.Line(1, "duplicates {")
		for _, r := range g.Removed {
			b.Line(2, "%q", r)
		}
		b.Line(1, "}")
	}
	b.Line(0, "}")
	for _, w := range p.Warnings {
		b.Line(0, "warning: %s", w)
	}
	return b.Finalize()
}
