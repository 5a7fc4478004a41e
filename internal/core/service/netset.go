package service

import (
	"sort"

	"github.com/ak7sky/routeset-calc/internal/core"
	"github.com/ak7sky/routeset-calc/internal/core/model"
	"github.com/ak7sky/routeset-calc/internal/core/storage/mem"
)

var _ core.NetworkSet = (*NetworkSet)(nil)

// NetworkSet accumulates included and excluded networks of both address families.
// Overlapping prefixes are kept as they come and are aggregated only by GetNetworks.
type NetworkSet struct {
	storage core.PrefixStorage
}

func New() *NetworkSet {
	return NewWithStorage(mem.NewPrefixMemStorage())
}

func NewWithStorage(storage core.PrefixStorage) *NetworkSet {
	return &NetworkSet{storage: storage}
}

// IncludeNetwork adds prefix to the set. Invalid prefixes are ignored.
func (set *NetworkSet) IncludeNetwork(prefix model.Prefix) {
	if !prefix.IsValid() {
		return
	}
	set.storage.Add(prefix)
}

// ExcludeNetwork removes every address of prefix from the set.
// Networks wider than prefix are split around it.
func (set *NetworkSet) ExcludeNetwork(prefix model.Prefix) {
	if !prefix.IsValid() {
		return
	}
	set.storage.Update(prefix.Family(), func(current []model.Prefix) []model.Prefix {
		return exclude(current, prefix)
	})
}

// GetNetworks aggregates each family into the fewest disjoint prefixes covering
// the same addresses, stores the result in place of the raw collections and returns it.
func (set *NetworkSet) GetNetworks() (v4, v6 []model.Prefix) {
	set.storage.Update(model.IPv4, func(current []model.Prefix) []model.Prefix {
		v4 = Collapse(current)
		return v4
	})
	set.storage.Update(model.IPv6, func(current []model.Prefix) []model.Prefix {
		v6 = Collapse(current)
		return v6
	})
	return v4, v6
}

func exclude(prefixes []model.Prefix, excluded model.Prefix) []model.Prefix {
	remaining := make([]model.Prefix, 0, len(prefixes))
	for _, prefix := range prefixes {
		switch {
		case excluded.IsSupernetOf(prefix):
		case prefix.IsSupernetOf(excluded):
			remaining = append(remaining, prefix.Exclude(excluded)...)
		default:
			// CIDR blocks are either nested or disjoint, so this one is untouched.
			remaining = append(remaining, prefix)
		}
	}
	return remaining
}

// Collapse returns the minimal list of disjoint prefixes covering exactly the
// addresses of prefixes, ordered by base address. All prefixes must be of one family.
func Collapse(prefixes []model.Prefix) []model.Prefix {
	sorted := make([]model.Prefix, len(prefixes))
	copy(sorted, prefixes)
	sort.Slice(sorted, func(i, j int) bool {
		if c := sorted[i].Base().Cmp(sorted[j].Base()); c != 0 {
			return c < 0
		}
		return sorted[i].Len() < sorted[j].Len()
	})

	collapsed := make([]model.Prefix, 0, len(sorted))
	for _, prefix := range sorted {
		// the last kept prefix is the only one that can cover the next in order
		if n := len(collapsed); n > 0 && collapsed[n-1].IsSupernetOf(prefix) {
			continue
		}
		collapsed = append(collapsed, prefix)
		for n := len(collapsed); n >= 2 && collapsed[n-2].IsSiblingOf(collapsed[n-1]); n = len(collapsed) {
			parent, _ := collapsed[n-1].Parent()
			collapsed = append(collapsed[:n-2], parent)
		}
	}
	return collapsed
}
