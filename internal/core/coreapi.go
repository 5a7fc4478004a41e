package core

import "github.com/ak7sky/routeset-calc/internal/core/model"

type NetworkSet interface {
	IncludeNetwork(prefix model.Prefix)
	ExcludeNetwork(prefix model.Prefix)
	GetNetworks() (v4, v6 []model.Prefix)
}

// PrefixStorage keeps one unordered, duplicate-free prefix collection per address family.
type PrefixStorage interface {
	Add(prefix model.Prefix)
	List(family model.Family) []model.Prefix
	Len(family model.Family) int
	// Update replaces the family collection with the result of fn applied to its
	// current contents. No other access to that collection happens in between.
	Update(family model.Family, fn func(current []model.Prefix) []model.Prefix)
}
