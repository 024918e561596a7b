package randutil

import (
	"maps"
	"testing"

	"github.com/alex65536/tsrand/internal/randsrc"
)

func TestSetStress(t *testing.T) {
	src := randsrc.NewSeededUniform(20)
	defer src.Close()

	var s Set[int64]
	actual := make(map[int64]struct{})
	const iters = 20_000
	const numbers = 20
	for range iters {
		raw, err := src.IntN(numbers)
		if err != nil {
			t.Fatalf("sample: %v", err)
		}
		v := int64(raw)
		op, err := src.IntN(2)
		if err != nil {
			t.Fatalf("sample: %v", err)
		}
		switch op {
		case 0:
			_, ok := actual[v]
			actual[v] = struct{}{}
			ok = !ok
			ok2 := s.Add(v)
			if ok != ok2 {
				t.Fatalf("insert %v yields different results: expected = %v, got = %v", v, ok, ok2)
			}
		case 1:
			_, ok := actual[v]
			delete(actual, v)
			ok2 := s.Del(v)
			if ok != ok2 {
				t.Fatalf("delete %v yields different results: expected = %v, got = %v", v, ok, ok2)
			}
		default:
			panic("must not happen")
		}
		if _, ok := actual[v]; ok != s.Has(v) {
			t.Fatalf("membership of %v differs: expected = %v, got = %v", v, ok, s.Has(v))
		}
		if len(actual) != s.Len() {
			t.Fatalf("length differs: expected = %v, got = %v", len(actual), s.Len())
		}
		gather := maps.Clone(actual)
		iters := 0
		for len(gather) != 0 {
			v, err := s.Get(src)
			if err != nil {
				t.Fatalf("get: %v", err)
			}
			if _, ok := actual[v]; !ok {
				t.Fatalf("unexpected get: %v", v)
			}
			delete(gather, v)
			iters++
			if iters > len(actual)*numbers*1_000 {
				t.Fatalf("cannot collect all the numbers for too long")
			}
		}
	}
}

func TestSetPop(t *testing.T) {
	src, err := randsrc.NewSecure()
	if err != nil {
		t.Fatalf("create source: %v", err)
	}
	defer src.Close()

	var s Set[string]
	for _, v := range []string{"a", "b", "c", "d"} {
		s.Add(v)
	}
	c := s.Clone()
	seen := make(map[string]struct{})
	for s.Len() != 0 {
		v, ok, err := s.Pop(src)
		if err != nil || !ok {
			t.Fatalf("pop failed: ok = %v, err = %v", ok, err)
		}
		if _, dup := seen[v]; dup {
			t.Fatalf("popped %v twice", v)
		}
		seen[v] = struct{}{}
	}
	if len(seen) != 4 {
		t.Fatalf("wrong number of popped values: expected = 4, got = %v", len(seen))
	}
	if vals := c.Values(); len(vals) != 4 {
		t.Fatalf("clone was modified by pop: values = %v", vals)
	}
	for v := range seen {
		if !c.Has(v) {
			t.Fatalf("clone lost %v", v)
		}
	}
	if _, ok, err := s.Pop(src); ok || err != nil {
		t.Fatalf("pop from empty set: ok = %v, err = %v", ok, err)
	}
}

func TestSetGetReleased(t *testing.T) {
	src := randsrc.NewUniform()
	var s Set[int]
	s.Add(1)
	_ = src.Close()
	if _, err := s.Get(src); err == nil {
		t.Fatalf("get from released source succeeded")
	}
}
