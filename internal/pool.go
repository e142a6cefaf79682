package internal

import "sync"

// Float32SlicePool recycles small scratch slices used by per-tick filtering
// so the hot loop stays allocation-free.
var Float32SlicePool = sync.Pool{
	New: func() interface{} {
		s := make([]float32, 0, 8)
		return &s
	},
}
