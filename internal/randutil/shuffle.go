package randutil

import (
	"fmt"

	"github.com/alex65536/tsrand/internal/randsrc"
)

// Shuffle permutes items in place. Every permutation is equally likely provided that src
// samples uniformly.
func Shuffle[T any](src randsrc.Source, items []T) error {
	// Fisher-Yates shuffle: https://en.wikipedia.org/wiki/Fisher%E2%80%93Yates_shuffle
	for i := len(items) - 1; i > 0; i-- {
		j, err := src.IntRange(0, i+1)
		if err != nil {
			return fmt.Errorf("shuffle: %w", err)
		}
		items[i], items[j] = items[j], items[i]
	}
	return nil
}

// Perm returns a random permutation of [0, n).
func Perm(src randsrc.Source, n int) ([]int, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: negative permutation size %v", randsrc.ErrRange, n)
	}
	res := make([]int, n)
	for i := range res {
		res[i] = i
	}
	if err := Shuffle(src, res); err != nil {
		return nil, err
	}
	return res, nil
}
