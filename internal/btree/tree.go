package btree

// maxRecordSize bounds key+payload to a quarter of a page, the leaf
// capacity precondition the driver relies on; Insert rejects larger
// pairs with ErrKeyTooLarge.
const maxRecordSize = pageSize / 4

// Tree is an in-memory, single-threaded B+tree. All nodes live in an
// internal arena and are addressed by childRef rather than pointer, so
// an inner node's slot payload (a childRef) participates in the same
// fixed-width space accounting as any other payload.
type Tree struct {
	nodes []*node
	free  []childRef
	root  childRef
}

// New creates an empty tree: a single leaf root spanning the entire
// key space.
func New() *Tree {
	t := &Tree{nodes: make([]*node, 1)}
	root := newLeaf()
	root.setLowerFence(nil)
	root.setUpperFence(nil)
	t.root = t.alloc(root)
	return t
}

// Close releases the tree's backing storage. The core engine has no
// file descriptors or background goroutines to release; Close exists
// so callers that hold a Tree behind an io.Closer-shaped interface
// don't need a special case for this implementation.
func (t *Tree) Close() error {
	t.nodes = nil
	t.free = nil
	return nil
}

func (t *Tree) alloc(n *node) childRef {
	if len(t.free) > 0 {
		r := t.free[len(t.free)-1]
		t.free = t.free[:len(t.free)-1]
		t.nodes[r] = n
		return r
	}
	t.nodes = append(t.nodes, n)
	return childRef(len(t.nodes) - 1)
}

func (t *Tree) release(r childRef) {
	t.nodes[r] = nil
	t.free = append(t.free, r)
}

func (t *Tree) get(r childRef) *node { return t.nodes[r] }

// Entry is one key/value pair as returned by All.
type Entry struct {
	Key   []byte
	Value []byte
}

// All returns every record in the tree in ascending key order. It is
// not part of the core point-access API spec.md describes, but
// TreeStore's user-listing command needs some way to enumerate a
// table's contents, and a full scan over an in-memory tree is cheap
// enough not to warrant a dedicated cursor API.
func (t *Tree) All() []Entry {
	var out []Entry
	var walk func(ref childRef)
	walk = func(ref childRef) {
		n := t.get(ref)
		if n.isLeaf() {
			for i := 0; i < n.count(); i++ {
				out = append(out, Entry{
					Key:   append([]byte(nil), n.fullKey(i)...),
					Value: append([]byte(nil), n.slotPayload(i)...),
				})
			}
			return
		}
		for i := 0; i < n.count(); i++ {
			walk(n.slotChild(i))
		}
		walk(n.upper())
	}
	walk(t.root)
	return out
}

// Lookup returns a copy of the payload stored for key, if present.
func (t *Tree) Lookup(key []byte) ([]byte, bool) {
	n := t.get(t.root)
	for !n.isLeaf() {
		n = t.get(n.childAt(key))
	}
	pos, found := n.lowerBound(key)
	if !found {
		return nil, false
	}
	return append([]byte(nil), n.slotPayload(pos)...), true
}

// Insert stores key -> payload, overwriting any existing value for
// key. Splits propagate upward as needed; the tree grows a new root
// when the existing root splits.
func (t *Tree) Insert(key, payload []byte) error {
	if len(key)+len(payload) > maxRecordSize {
		return ErrKeyTooLarge
	}
	for {
		path := t.descend(key)
		leaf := t.get(path[len(path)-1])
		if leaf.insertLeaf(key, payload) {
			return nil
		}
		t.propagateSplit(path)
	}
}

// Remove deletes key, merging the containing leaf into a sibling if it
// becomes underfull and a sibling is available to absorb it. A leaf
// that stays underfull with no mergeable sibling is left as-is: this
// port, like the reference, does not cascade merges past one level or
// collapse an underfull root.
func (t *Tree) Remove(key []byte) error {
	path := t.descend(key)
	leaf := t.get(path[len(path)-1])
	pos, found := leaf.lowerBound(key)
	if !found {
		return ErrKeyNotFound
	}
	leaf.removeSlotAt(pos)
	leaf.makeHint()

	if len(path) == 1 {
		return nil
	}
	if leaf.isUnderfull() {
		parent := t.get(path[len(path)-2])
		t.tryMergeChild(parent, path[len(path)-1])
	}
	return nil
}

// descend walks from the root to the leaf that would hold key,
// returning the arena refs of every node visited, root first.
func (t *Tree) descend(key []byte) []childRef {
	path := make([]childRef, 1, 8)
	path[0] = t.root
	n := t.get(t.root)
	for !n.isLeaf() {
		c := n.childAt(key)
		path = append(path, c)
		n = t.get(c)
	}
	return path
}

// propagateSplit splits the node at the end of path (already known to
// be full) and threads the resulting separator up through the
// ancestors recorded in path, splitting an ancestor in turn whenever it
// has no room for the new separator, and growing a new root if the
// split reaches the top.
func (t *Tree) propagateSplit(path []childRef) {
	i := len(path) - 1
	child := t.get(path[i])

	var sepKey []byte
	var right *node
	if child.isLeaf() {
		sepKey, right = splitLeaf(child)
	} else {
		sepKey, right = splitInner(child)
	}
	rightRef := t.alloc(right)

	for {
		if i == 0 {
			newRoot := newInner()
			newRoot.setLowerFence(nil)
			newRoot.setUpperFence(nil)
			newRoot.setUpper(rightRef)
			if !newRoot.insertInner(sepKey, path[i]) {
				panic("btree: empty new root rejected separator insert")
			}
			t.root = t.alloc(newRoot)
			return
		}

		parent := t.get(path[i-1])
		parent.reassignChild(path[i], rightRef)
		if parent.insertInner(sepKey, path[i]) {
			return
		}

		// parent has no room even after the reassignment above; split it
		// and figure out which half should carry the pending separator.
		sepKey2, right2 := splitInner(parent)
		rightRef2 := t.alloc(right2)

		target := parent
		if byteCompare(sepKey, sepKey2) >= 0 {
			target = right2
		}
		if !target.insertInner(sepKey, path[i]) {
			panic("btree: inner node insert failed immediately after split")
		}

		sepKey = sepKey2
		rightRef = rightRef2
		i--
	}
}

// findChildSlot reports where parent references ref: either a slot
// index, or the upper pointer.
func (n *node) findChildSlot(ref childRef) (idx int, isUpper bool) {
	if n.upper() == ref {
		return -1, true
	}
	for i := 0; i < n.count(); i++ {
		if n.slotChild(i) == ref {
			return i, false
		}
	}
	panic("btree: child ref not found in parent")
}

// reassignChild repoints whichever slot or upper pointer currently
// holds ref to newRef, without touching the separator key.
func (n *node) reassignChild(ref, newRef childRef) {
	idx, isUpper := n.findChildSlot(ref)
	if isUpper {
		n.setUpper(newRef)
		return
	}
	n.setSlotChild(idx, newRef)
}

// tryMergeChild attempts to merge the child at ref into one of its
// immediate siblings under parent. Returns false if there is no
// sibling to merge with or the combined data would not fit one page;
// in that case child and its sibling are left untouched.
func (t *Tree) tryMergeChild(parent *node, ref childRef) bool {
	idx, isUpper := parent.findChildSlot(ref)

	if !isUpper {
		var rightRef childRef
		if idx+1 < parent.count() {
			rightRef = parent.slotChild(idx + 1)
		} else {
			rightRef = parent.upper()
		}
		left := t.get(ref)
		right := t.get(rightRef)
		merged, ok := mergeRight(left, right)
		if !ok {
			return false
		}
		t.nodes[rightRef] = merged
		t.release(ref)
		parent.removeSlotAt(idx)
		parent.makeHint()
		return true
	}

	if parent.count() == 0 {
		return false
	}
	leftIdx := parent.count() - 1
	leftRef := parent.slotChild(leftIdx)
	left := t.get(leftRef)
	right := t.get(ref)
	merged, ok := mergeRight(left, right)
	if !ok {
		return false
	}
	t.nodes[ref] = merged
	t.release(leftRef)
	parent.removeSlotAt(leftIdx)
	parent.makeHint()
	return true
}
