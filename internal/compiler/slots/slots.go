// Package slots hands out fixed-size memory slots, always the lowest free
// one first. The table only grows when every slot is occupied.
package slots

type Allocator struct {
	used []bool
}

func NewAllocator() *Allocator {
	return &Allocator{}
}

// Allocate marks and returns the lowest free slot, appending a new one when
// none is free.
func (a *Allocator) Allocate() int {
	for index, inUse := range a.used {
		if !inUse {
			a.used[index] = true
			return index
		}
	}

	a.used = append(a.used, true)
	return len(a.used) - 1
}

// Free releases index for reuse. Indices that were never allocated are ignored.
func (a *Allocator) Free(index int) {
	if index < 0 || index >= len(a.used) {
		return
	}
	a.used[index] = false
}

func (a *Allocator) InUse(index int) bool {
	return index >= 0 && index < len(a.used) && a.used[index]
}

// Len is the number of slots ever allocated.
func (a *Allocator) Len() int {
	return len(a.used)
}
