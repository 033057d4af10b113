// Package dedupe implements the duplicate-resolution engine: three
// pipelines (file-name, file-content, image-content) sharing a
// collect -> fingerprint -> bucket -> verify -> rank -> plan shape,
// survivor ranking by "canonicalness", and deletion-plan emission.
// Structured using an arena-scoped-load discipline for bucket
// verification.
package dedupe

// FileHeader is one candidate file tracked by the duplicate engine: a
// path, a load-state flag, and optional size/data — data is cleared
// once verification of its bucket finishes.
type FileHeader struct {
	Path   string
	Size   int64
	loaded bool
	data   []byte
}

// Bucket is a set of file headers sharing a fingerprint.
type Bucket struct {
	Fingerprint uint64
	Members     []*FileHeader
}

// Options configures a pipeline run, built from CLI flags.
type Options struct {
	PreferRemovalSubstr string
	RemovalFilter       string
	Remove              bool
	PartialHashBytes    int // K for file-content fingerprints; default 5 KiB
	CachePath           string
}

// DefaultPartialHashBytes is the default K for partial-hash bucketing
// (tunable; 5 KiB default because JPEG/HEIC share long prefixes).
const DefaultPartialHashBytes = 5 * 1024

// Group is one equivalence class after ranking: a survivor and the
// paths that are candidates for deletion.
type Group struct {
	Survivor string
	Removed  []string
}

// Plan is the result of one pipeline run: the human-readable groups and
// the flat list of paths a --remove invocation would unlink.
type Plan struct {
	Kind     string // "file-name", "file-content", or "image-content"
	Groups   []Group
	Warnings []string
}

// ToUnlink returns the flat list of paths the plan would delete,
// already filtered by a removal-filter prefix if one was set when the
// plan was built.
func (p *Plan) ToUnlink() []string {
	var out []string
	for _, g := range p.Groups {
		out = append(out, g.Removed...)
	}
	return out
}
