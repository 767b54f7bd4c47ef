package channeltype

import (
	"sort"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
)

// Snapshot is a serializable copy of a registry, used to detect when the
// table changes between deploys or differs between running instances.
type Snapshot struct {
	Fingerprint string    `json:"fingerprint"`
	TakenAt     time.Time `json:"taken_at"`
	Entries     []Entry   `json:"entries"`
}

// Snapshot captures the registry contents and their fingerprint.
func (r *Registry) Snapshot() *Snapshot {
	entries := r.ListAll()
	return &Snapshot{
		Fingerprint: Fingerprint(entries),
		TakenAt:     time.Now().UTC(),
		Entries:     entries,
	}
}

// Fingerprint hashes entries in order. Reordering counts as a change because
// ListAll order drives selection lists.
func Fingerprint(entries []Entry) string {
	d := xxhash.New()
	var buf []byte
	for _, e := range entries {
		buf = buf[:0]
		buf = strconv.AppendInt(buf, int64(e.ID), 10)
		buf = append(buf, 0x1f)
		buf = append(buf, e.Label...)
		buf = append(buf, 0x1f)
		buf = append(buf, e.Color...)
		buf = append(buf, 0x1e)
		_, _ = d.Write(buf)
	}
	return strconv.FormatUint(d.Sum64(), 16)
}

// SnapshotDiff lists identifiers that differ between two snapshots.
type SnapshotDiff struct {
	Added   []int `json:"added,omitempty"`
	Removed []int `json:"removed,omitempty"`
	Changed []int `json:"changed,omitempty"`
}

// Empty reports whether no identifier was added, removed or changed.
func (d SnapshotDiff) Empty() bool {
	return len(d.Added) == 0 && len(d.Removed) == 0 && len(d.Changed) == 0
}

// Diff compares s against an earlier snapshot. A nil previous snapshot
// reports every entry as added.
func (s *Snapshot) Diff(previous *Snapshot) SnapshotDiff {
	var diff SnapshotDiff

	prev := make(map[int]Entry)
	if previous != nil {
		for _, e := range previous.Entries {
			prev[e.ID] = e
		}
	}

	seen := make(map[int]bool, len(s.Entries))
	for _, e := range s.Entries {
		seen[e.ID] = true
		old, ok := prev[e.ID]
		switch {
		case !ok:
			diff.Added = append(diff.Added, e.ID)
		case old != e:
			diff.Changed = append(diff.Changed, e.ID)
		}
	}
	for id := range prev {
		if !seen[id] {
			diff.Removed = append(diff.Removed, id)
		}
	}

	sort.Ints(diff.Added)
	sort.Ints(diff.Removed)
	sort.Ints(diff.Changed)
	return diff
}
