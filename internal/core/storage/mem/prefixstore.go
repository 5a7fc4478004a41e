package mem

import (
	"sync"

	"github.com/ak7sky/routeset-calc/internal/core"
	"github.com/ak7sky/routeset-calc/internal/core/model"
)

var _ core.PrefixStorage = (*PrefixMemStorage)(nil)

type PrefixMemStorage struct {
	v4, v6       map[model.Prefix]struct{}
	v4mtx, v6mtx *sync.RWMutex
}

func NewPrefixMemStorage() *PrefixMemStorage {
	return &PrefixMemStorage{
		v4:    map[model.Prefix]struct{}{},
		v6:    map[model.Prefix]struct{}{},
		v4mtx: &sync.RWMutex{},
		v6mtx: &sync.RWMutex{},
	}
}

func (storage *PrefixMemStorage) Add(prefix model.Prefix) {
	prefixes, mtx := storage.prefixesOf(prefix.Family())
	mtx.Lock()
	prefixes[prefix] = struct{}{}
	mtx.Unlock()
}

func (storage *PrefixMemStorage) List(family model.Family) []model.Prefix {
	prefixes, mtx := storage.prefixesOf(family)
	mtx.RLock()
	defer mtx.RUnlock()
	return listOf(prefixes)
}

func (storage *PrefixMemStorage) Len(family model.Family) int {
	prefixes, mtx := storage.prefixesOf(family)
	mtx.RLock()
	defer mtx.RUnlock()
	return len(prefixes)
}

func (storage *PrefixMemStorage) Update(family model.Family, fn func([]model.Prefix) []model.Prefix) {
	prefixes, mtx := storage.prefixesOf(family)
	mtx.Lock()
	defer mtx.Unlock()

	updated := fn(listOf(prefixes))
	for prefix := range prefixes {
		delete(prefixes, prefix)
	}
	for _, prefix := range updated {
		if prefix.Family() == family {
			prefixes[prefix] = struct{}{}
		}
	}
}

func (storage *PrefixMemStorage) prefixesOf(family model.Family) (map[model.Prefix]struct{}, *sync.RWMutex) {
	if family == model.IPv6 {
		return storage.v6, storage.v6mtx
	}
	return storage.v4, storage.v4mtx
}

func listOf(prefixes map[model.Prefix]struct{}) []model.Prefix {
	list := make([]model.Prefix, 0, len(prefixes))
	for prefix := range prefixes {
		list = append(list, prefix)
	}
	return list
}
