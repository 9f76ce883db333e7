package xlsx

import "unsafe"

const arenaChunk = 16 * 1024

// arena packs the text of many small strings into a few large allocations.
// Repeated values share one copy.
type arena struct {
	alloc []byte
	seen  map[string]string
}

func (a *arena) toString(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	if s, ok := a.seen[string(b)]; ok {
		return s
	}

	n := len(b)
	if cap(a.alloc)-len(a.alloc) < n {
		a.alloc = make([]byte, 0, max(arenaChunk, n))
	}

	pos := len(a.alloc)
	data := a.alloc[pos : pos+n : pos+n]
	a.alloc = a.alloc[:pos+n]
	copy(data, b)

	s := unsafe.String(unsafe.SliceData(data), n)
	if a.seen == nil {
		a.seen = make(map[string]string)
	}
	a.seen[s] = s
	return s
}
