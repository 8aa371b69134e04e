package btree

import (
	"bytes"
	"fmt"
	"testing"
)

func TestTreeInsertLookup(t *testing.T) {
	tr := New()
	defer tr.Close()

	n := 5000
	for i := 0; i < n; i++ {
		key := []byte(fmt.Sprintf("key-%08d", i))
		val := []byte(fmt.Sprintf("value-%d", i))
		if err := tr.Insert(key, val); err != nil {
			t.Fatalf("insert %d: %v", i, err)
		}
	}

	for i := 0; i < n; i++ {
		key := []byte(fmt.Sprintf("key-%08d", i))
		want := []byte(fmt.Sprintf("value-%d", i))
		got, found := tr.Lookup(key)
		if !found {
			t.Fatalf("key %d not found after insert", i)
		}
		if !bytes.Equal(got, want) {
			t.Fatalf("key %d: got %q want %q", i, got, want)
		}
	}
}

func TestTreeInsertOutOfOrder(t *testing.T) {
	tr := New()
	defer tr.Close()

	keys := []int{500, 1, 999, 42, 7, 256, 128, 0, 1000, 63}
	for _, k := range keys {
		key := []byte(fmt.Sprintf("k%05d", k))
		if err := tr.Insert(key, []byte{byte(k)}); err != nil {
			t.Fatalf("insert %d: %v", k, err)
		}
	}
	for _, k := range keys {
		key := []byte(fmt.Sprintf("k%05d", k))
		got, found := tr.Lookup(key)
		if !found || got[0] != byte(k) {
			t.Fatalf("lookup %d failed: found=%v got=%v", k, found, got)
		}
	}
}

func TestTreeOverwrite(t *testing.T) {
	tr := New()
	defer tr.Close()

	tr.Insert([]byte("k"), []byte("v1"))
	tr.Insert([]byte("k"), []byte("v2-longer-value"))

	got, found := tr.Lookup([]byte("k"))
	if !found || !bytes.Equal(got, []byte("v2-longer-value")) {
		t.Fatalf("got %q found=%v", got, found)
	}
}

func TestTreeRemove(t *testing.T) {
	tr := New()
	defer tr.Close()

	n := 2000
	for i := 0; i < n; i++ {
		key := []byte(fmt.Sprintf("r-%06d", i))
		tr.Insert(key, []byte("v"))
	}
	for i := 0; i < n; i += 2 {
		key := []byte(fmt.Sprintf("r-%06d", i))
		if err := tr.Remove(key); err != nil {
			t.Fatalf("remove %d: %v", i, err)
		}
	}
	for i := 0; i < n; i++ {
		key := []byte(fmt.Sprintf("r-%06d", i))
		_, found := tr.Lookup(key)
		want := i%2 != 0
		if found != want {
			t.Fatalf("key %d: found=%v want=%v", i, found, want)
		}
	}
}

func TestTreeRemoveMissingKey(t *testing.T) {
	tr := New()
	defer tr.Close()
	tr.Insert([]byte("a"), []byte("1"))
	if err := tr.Remove([]byte("missing")); err != ErrKeyNotFound {
		t.Fatalf("got %v want ErrKeyNotFound", err)
	}
}

func TestTreeKeyTooLarge(t *testing.T) {
	tr := New()
	defer tr.Close()
	big := bytes.Repeat([]byte("x"), pageSize)
	if err := tr.Insert(big, []byte("v")); err != ErrKeyTooLarge {
		t.Fatalf("got %v want ErrKeyTooLarge", err)
	}
}

func TestTreeRemoveAllThenReinsert(t *testing.T) {
	tr := New()
	defer tr.Close()

	n := 1000
	for i := 0; i < n; i++ {
		key := []byte(fmt.Sprintf("x-%06d", i))
		tr.Insert(key, []byte("v"))
	}
	for i := 0; i < n; i++ {
		key := []byte(fmt.Sprintf("x-%06d", i))
		if err := tr.Remove(key); err != nil {
			t.Fatalf("remove %d: %v", i, err)
		}
	}
	for i := 0; i < n; i++ {
		key := []byte(fmt.Sprintf("x-%06d", i))
		if _, found := tr.Lookup(key); found {
			t.Fatalf("key %d should be gone", i)
		}
	}
	if err := tr.Insert([]byte("fresh"), []byte("v")); err != nil {
		t.Fatalf("reinsert after full drain: %v", err)
	}
	if got, found := tr.Lookup([]byte("fresh")); !found || !bytes.Equal(got, []byte("v")) {
		t.Fatal("fresh key should be retrievable after draining the tree")
	}
}
