package btree

import (
	"bytes"
	"fmt"
	"math/rand"
	"sort"
	"testing"
)

// TestPropertyAgainstReferenceMap drives the tree through a long
// sequence of random insert/remove/lookup operations, checking every
// observable result against a plain map[string][]byte kept in lockstep.
// This is the differential check: any divergence means the tree's
// externally visible behavior disagrees with the simplest possible
// correct implementation.
func TestPropertyAgainstReferenceMap(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	tr := New()
	defer tr.Close()

	ref := make(map[string][]byte)
	const ops = 40000
	const keySpace = 3000

	for op := 0; op < ops; op++ {
		k := rng.Intn(keySpace)
		key := []byte(fmt.Sprintf("prop-%06d", k))

		switch rng.Intn(3) {
		case 0: // insert/overwrite
			val := make([]byte, 1+rng.Intn(64))
			rng.Read(val)
			if err := tr.Insert(key, val); err != nil {
				t.Fatalf("op %d: insert: %v", op, err)
			}
			ref[string(key)] = val
		case 1: // remove
			_, wasPresent := ref[string(key)]
			err := tr.Remove(key)
			if wasPresent {
				if err != nil {
					t.Fatalf("op %d: expected successful remove, got %v", op, err)
				}
				delete(ref, string(key))
			} else if err != ErrKeyNotFound {
				t.Fatalf("op %d: expected ErrKeyNotFound, got %v", op, err)
			}
		case 2: // lookup
			want, wantFound := ref[string(key)]
			got, gotFound := tr.Lookup(key)
			if gotFound != wantFound {
				t.Fatalf("op %d: key %q found=%v want=%v", op, key, gotFound, wantFound)
			}
			if wantFound && !bytes.Equal(got, want) {
				t.Fatalf("op %d: key %q got %q want %q", op, key, got, want)
			}
		}
	}

	// final full-keyspace check
	for k := 0; k < keySpace; k++ {
		key := []byte(fmt.Sprintf("prop-%06d", k))
		want, wantFound := ref[string(key)]
		got, gotFound := tr.Lookup(key)
		if gotFound != wantFound {
			t.Fatalf("final: key %q found=%v want=%v", key, gotFound, wantFound)
		}
		if wantFound && !bytes.Equal(got, want) {
			t.Fatalf("final: key %q got %q want %q", key, got, want)
		}
	}

	// the tree's in-order traversal must match the reference's sorted
	// key order exactly.
	wantKeys := make([]string, 0, len(ref))
	for k := range ref {
		wantKeys = append(wantKeys, k)
	}
	sort.Strings(wantKeys)

	gotEntries := tr.All()
	if len(gotEntries) != len(wantKeys) {
		t.Fatalf("All returned %d entries, want %d", len(gotEntries), len(wantKeys))
	}
	for i, k := range wantKeys {
		if string(gotEntries[i].Key) != k {
			t.Fatalf("entry %d: got key %q want %q", i, gotEntries[i].Key, k)
		}
		if !bytes.Equal(gotEntries[i].Value, ref[k]) {
			t.Fatalf("entry %d (%q): got %q want %q", i, k, gotEntries[i].Value, ref[k])
		}
	}
}
