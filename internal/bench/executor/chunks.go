package executor

import "github.com/wesleyorama2/figures/internal/shapes"

// span is the half-open range [lo, hi) of a slice.
type span struct {
	lo, hi int
}

func (s span) len() int {
	return s.hi - s.lo
}

// partition splits n items into parts contiguous spans whose sizes differ by
// at most one. Earlier spans get the extra items.
func partition(n, parts int) []span {
	if parts <= 0 {
		parts = 1
	}
	base, rem := n/parts, n%parts

	spans := make([]span, parts)
	lo := 0
	for i := range spans {
		size := base
		if i < rem {
			size++
		}
		spans[i] = span{lo: lo, hi: lo + size}
		lo += size
	}
	return spans
}

// chunk is a run of tuples of one kind starting at offset in the workload.
type chunk struct {
	kind   shapes.Kind
	offset int
	params []shapes.Params
}

// chunkWorkload cuts every kind of work into chunks of at most size tuples,
// in canonical kind order.
func chunkWorkload(work Workload, size int) []chunk {
	if size <= 0 {
		size = DefaultChunkSize
	}

	var chunks []chunk
	for _, kind := range shapes.Kinds() {
		params := work[kind]
		for lo := 0; lo < len(params); lo += size {
			hi := min(lo+size, len(params))
			chunks = append(chunks, chunk{kind: kind, offset: lo, params: params[lo:hi]})
		}
	}
	return chunks
}
