package hwio

import (
	"fmt"
	"sort"
)

type rangeEntry struct {
	begin, end uint32 // inclusive
	io         BankIO16
	name       string
}

// rangeMap maps non-overlapping inclusive address ranges to devices. Entries
// are kept sorted by address so that lookups are a binary search.
type rangeMap struct {
	entries []rangeEntry

	// last hit, most accesses come in runs on the same device.
	last int
}

func (rm *rangeMap) Search(addr uint32) BankIO16 {
	if rm.last < len(rm.entries) {
		if e := &rm.entries[rm.last]; addr >= e.begin && addr <= e.end {
			return e.io
		}
	}
	i := sort.Search(len(rm.entries), func(i int) bool {
		return rm.entries[i].end >= addr
	})
	if i < len(rm.entries) && rm.entries[i].begin <= addr {
		rm.last = i
		return rm.entries[i].io
	}
	return nil
}

func (rm *rangeMap) InsertRange(begin, end uint32, io BankIO16, name string) error {
	if end < begin {
		return fmt.Errorf("invalid range %06x-%06x", begin, end)
	}
	i := sort.Search(len(rm.entries), func(i int) bool {
		return rm.entries[i].end >= begin
	})
	if i < len(rm.entries) && rm.entries[i].begin <= end {
		e := rm.entries[i]
		return fmt.Errorf("range %06x-%06x (%s) overlaps %06x-%06x (%s)", begin, end, name, e.begin, e.end, e.name)
	}
	rm.entries = append(rm.entries, rangeEntry{})
	copy(rm.entries[i+1:], rm.entries[i:])
	rm.entries[i] = rangeEntry{begin: begin, end: end, io: io, name: name}
	return nil
}

// RemoveRange unmaps [begin, end], splitting entries that partially overlap.
func (rm *rangeMap) RemoveRange(begin, end uint32) {
	var kept []rangeEntry
	for _, e := range rm.entries {
		if e.end < begin || e.begin > end {
			kept = append(kept, e)
			continue
		}
		if e.begin < begin {
			lo := e
			lo.end = begin - 1
			kept = append(kept, lo)
		}
		if e.end > end {
			hi := e
			hi.begin = end + 1
			kept = append(kept, hi)
		}
	}
	rm.entries = kept
	rm.last = 0
}
