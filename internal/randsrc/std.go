package randsrc

import (
	"encoding/binary"
	"math/rand/v2"
)

type stdSource struct {
	src Source
}

func (s stdSource) Uint64() uint64 {
	var b [8]byte
	if _, err := s.src.Read(b[:]); err != nil {
		panic(err)
	}
	return binary.LittleEndian.Uint64(b[:])
}

// StdSource adapts src to math/rand/v2, so that the distributions of rand.Rand can draw from
// it. Its Uint64 panics if src was released.
//
// rand.Rand itself is not safe for concurrent use even though src is.
func StdSource(src Source) rand.Source {
	return stdSource{src: src}
}
