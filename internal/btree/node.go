package btree

// spaceNeeded returns the heap + slot-array bytes a record of the
// given full key length and payload length would consume if inserted
// into this node right now (i.e. after stripping the node's current
// shared prefix from the key).
func (n *node) spaceNeeded(keyLen, payloadLen int) int {
	truncated := keyLen - n.prefixLength()
	if truncated < 0 {
		truncated = 0
	}
	return slotSize + truncated + payloadLen
}

func (n *node) freeSpace() int {
	return n.dataOffset() - (n.slotsStart() + n.count()*slotSize)
}

func (n *node) freeSpaceAfterCompaction() int {
	return pageSize - n.slotsStart() - n.count()*slotSize - n.spaceUsed()
}

// requestSpaceFor makes sure at least `needed` bytes are available for
// the next write, compacting in place if the space exists but is
// fragmented. It never grows the page; callers fall back to a split
// when it returns false.
func (n *node) requestSpaceFor(needed int) bool {
	if needed <= n.freeSpace() {
		return true
	}
	if needed <= n.freeSpaceAfterCompaction() {
		n.compactify()
		return true
	}
	return false
}

// compactify rebuilds the node into a scratch buffer with the heap
// packed tight against dataOffset, eliminating holes left by removed
// or shrunk records, then copies the result back over n.
func (n *node) compactify() {
	scratch := &node{}
	scratch.setTag(n.getTag())
	scratch.setDataOffset(pageSize)
	scratch.setPrefixLength(n.prefixLength())
	copy(scratch.buf[scratch.prefixStart():], n.prefix())
	scratch.setUpper(n.upper())
	for i := 0; i < hintCount; i++ {
		scratch.setHint(i, n.hint(i))
	}

	count := n.count()
	scratch.setCount(count)
	for i := 0; i < count; i++ {
		scratch.storeKeyValueTruncated(i, n.slotKey(i), n.slotPayload(i))
	}

	scratch.copyFenceFrom(n)
	*n = *scratch
}

// storeKeyValueTruncated writes an already-prefix-truncated key and a
// payload into the heap at slot pos, growing the heap downward from
// dataOffset, and fills in the slot's directory entry.
func (n *node) storeKeyValueTruncated(pos int, truncatedKey, payload []byte) {
	newOffset := n.dataOffset() - len(truncatedKey) - len(payload)
	copy(n.buf[newOffset:], truncatedKey)
	copy(n.buf[newOffset+len(truncatedKey):], payload)
	n.setDataOffset(newOffset)

	n.setSlotOffset(pos, newOffset)
	n.setSlotKeyLen(pos, len(truncatedKey))
	n.setSlotPayloadLen(pos, len(payload))
	n.setSlotHead(pos, headOf(truncatedKey))
	n.setSpaceUsed(n.spaceUsed() + len(truncatedKey) + len(payload))
}

// copyFenceFrom copies src's fence keys into the heap of n, which must
// already have its prefix and slots in place. Used by compactify to
// relocate the fences into its scratch node.
func (n *node) copyFenceFrom(src *node) {
	n.setLowerFence(src.lowerFence())
	n.setUpperFence(src.upperFence())
}

func (n *node) setLowerFence(key []byte) {
	if len(key) == 0 {
		n.setLowerFenceOffset(0)
		n.setLowerFenceLen(0)
		return
	}
	off := n.dataOffset() - len(key)
	copy(n.buf[off:], key)
	n.setDataOffset(off)
	n.setLowerFenceOffset(off)
	n.setLowerFenceLen(len(key))
	n.setSpaceUsed(n.spaceUsed() + len(key))
}

func (n *node) setUpperFence(key []byte) {
	if len(key) == 0 {
		n.setUpperFenceOffset(0)
		n.setUpperFenceLen(0)
		return
	}
	off := n.dataOffset() - len(key)
	copy(n.buf[off:], key)
	n.setDataOffset(off)
	n.setUpperFenceOffset(off)
	n.setUpperFenceLen(len(key))
	n.setSpaceUsed(n.spaceUsed() + len(key))
}

// buildNode constructs a fresh node of the given tag spanning
// (lower, upper], containing keys/payloads (already full, non-truncated
// keys) in ascending order, with upperChild set for inner nodes.
func buildNode(t tag, lower, upper []byte, keys, payloads [][]byte, upperChild childRef) *node {
	newPrefix := 0
	if len(upper) != 0 {
		newPrefix = commonPrefixLen(lower, upper)
	}

	scratch := &node{}
	scratch.setTag(t)
	scratch.setDataOffset(pageSize)
	scratch.setUpper(upperChild)
	scratch.setLowerFence(lower)
	scratch.setUpperFence(upper)
	scratch.setPrefixLength(newPrefix)
	copy(scratch.buf[scratch.prefixStart():], lower[:newPrefix])

	scratch.setCount(len(keys))
	for i := range keys {
		scratch.storeKeyValueTruncated(i, keys[i][newPrefix:], payloads[i])
	}
	scratch.makeHint()
	return scratch
}

// setFences installs both fence keys and recomputes the shared prefix
// and every slot's truncated key/head accordingly, rebuilding n in
// place. Split and merge do not call it (they build fresh nodes with
// buildNode), and New sets the empty root's fences directly.
func (n *node) setFences(lower, upper []byte) {
	keys := make([][]byte, n.count())
	payloads := make([][]byte, n.count())
	for i := 0; i < n.count(); i++ {
		keys[i] = n.fullKey(i)
		p := n.slotPayload(i)
		payloads[i] = append([]byte(nil), p...)
	}
	*n = *buildNode(n.getTag(), lower, upper, keys, payloads, n.upper())
}

// lowerBound returns the slot position of the first key >= the given
// key, and whether that key is present exactly. key is a full
// (non-truncated) key; out-of-range calls relative to the node's
// fences are a programming error and panic, matching the driver's
// invariant that it never probes a node outside its own key range.
func (n *node) lowerBound(key []byte) (pos int, found bool) {
	if n.lowerFenceLen() > 0 && byteCompare(key, n.lowerFence()) <= 0 {
		panic("btree: lowerBound called with a key at or below this node's lower fence")
	}
	if !n.isUpperFenceInfinity() && byteCompare(key, n.upperFence()) > 0 {
		panic("btree: lowerBound called with a key above this node's upper fence")
	}
	prefixLen := n.prefixLength()
	cmpLen := minInt(len(key), prefixLen)
	cmp := byteCompare(key[:cmpLen], n.prefix()[:cmpLen])
	if cmp != 0 {
		panic("btree: lowerBound called with a key outside this node's fence range")
	}
	if len(key) < prefixLen {
		panic("btree: lowerBound called with a key shorter than this node's shared prefix")
	}

	rest := key[prefixLen:]
	lower, upper := 0, n.count()
	keyHead := headOf(rest)
	n.searchHint(keyHead, &lower, &upper)

	for lower < upper {
		mid := lower + (upper-lower)/2
		h := n.slotHead(mid)
		switch {
		case keyHead < h:
			upper = mid
		case keyHead > h:
			lower = mid + 1
		default:
			sk := n.slotKey(mid)
			c := byteCompare(rest[:minInt(len(rest), len(sk))], sk[:minInt(len(rest), len(sk))])
			switch {
			case c < 0:
				upper = mid
			case c > 0:
				lower = mid + 1
			case len(rest) < len(sk):
				upper = mid
			case len(rest) > len(sk):
				lower = mid + 1
			default:
				return mid, true
			}
		}
	}
	return lower, false
}

func byteCompare(a, b []byte) int {
	n := minInt(len(a), len(b))
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	default:
		return 0
	}
}

// searchHint narrows [lower, upper) using the node's coarse hint
// samples before the caller falls back to binary search. Mirrors the
// reference: only engages once the node is big enough that the sample
// density pays for itself.
func (n *node) searchHint(keyHead uint32, lower, upper *int) {
	if n.count() <= hintCount*2 {
		return
	}
	dist := n.count() / (hintCount + 1)
	pos := 0
	for pos < hintCount && n.hint(pos) < keyHead {
		pos++
	}
	pos2 := pos
	for pos2 < hintCount && n.hint(pos2) == keyHead {
		pos2++
	}
	*lower = pos * dist
	if pos2 < hintCount {
		*upper = (pos2 + 1) * dist
	}
}

// makeHint resamples the hint array from the current slot array. Must
// be called after any structural change (insert, remove, split, merge,
// compaction) that could shift slot positions the hints point at.
func (n *node) makeHint() {
	count := n.count()
	if count == 0 {
		return
	}
	dist := count / (hintCount + 1)
	if dist == 0 {
		return
	}
	for i := 0; i < hintCount; i++ {
		slotPos := (i + 1) * dist
		if slotPos >= count {
			break
		}
		n.setHint(i, n.slotHead(slotPos))
	}
}

// insertSlot makes room for a new slot at pos by shifting the slot
// array, and increments count. The caller fills in the slot's data
// immediately afterward via storeKeyValueTruncated.
func (n *node) insertSlot(pos int) {
	count := n.count()
	for i := count; i > pos; i-- {
		n.copySlotMeta(i, i-1)
	}
	n.setCount(count + 1)
}

func (n *node) copySlotMeta(dst, src int) {
	n.setSlotOffset(dst, n.slotOffset(src))
	n.setSlotKeyLen(dst, n.slotKeyLen(src))
	n.setSlotPayloadLen(dst, n.slotPayloadLen(src))
	n.setSlotHead(dst, n.slotHead(src))
}

// removeSlotAt deletes slot pos from the directory, shifting later
// slots down. The freed heap bytes are reclaimed lazily by
// compactify, not here.
func (n *node) removeSlotAt(pos int) {
	count := n.count()
	n.setSpaceUsed(n.spaceUsed() - n.slotKeyLen(pos) - n.slotPayloadLen(pos))
	for i := pos; i < count-1; i++ {
		n.copySlotMeta(i, i+1)
	}
	n.setCount(count - 1)
}

// insertLeaf inserts or overwrites key -> payload in a leaf node.
// Returns false if there isn't enough space even after compaction; the
// caller must split first.
func (n *node) insertLeaf(key, payload []byte) bool {
	pos, found := n.lowerBound(key)
	if found {
		// overwrite: re-store with the new length, as decided for
		// duplicate-key inserts whose payload length changed.
		// storeKeyValueTruncated always writes a fresh copy at
		// dataOffset, so the full needed amount must be free before
		// writing it, not just the delta over the old record. Retire
		// the old record from accounting and from the slot itself
		// first, so a requestSpaceFor-triggered compaction repacks
		// the heap without it instead of preserving its stale bytes
		// alongside the new ones.
		truncated := len(key) - n.prefixLength()
		if truncated < 0 {
			truncated = 0
		}
		needed := truncated + len(payload)

		oldKeyLen := n.slotKeyLen(pos)
		oldPayloadLen := n.slotPayloadLen(pos)
		n.setSpaceUsed(n.spaceUsed() - oldKeyLen - oldPayloadLen)
		n.setSlotKeyLen(pos, 0)
		n.setSlotPayloadLen(pos, 0)

		if !n.requestSpaceFor(needed) {
			n.setSlotKeyLen(pos, oldKeyLen)
			n.setSlotPayloadLen(pos, oldPayloadLen)
			n.setSpaceUsed(n.spaceUsed() + oldKeyLen + oldPayloadLen)
			return false
		}
		n.storeKeyValueTruncated(pos, key[n.prefixLength():], payload)
		n.makeHint()
		return true
	}
	needed := n.spaceNeeded(len(key), len(payload))
	if !n.requestSpaceFor(needed) {
		return false
	}
	n.insertSlot(pos)
	n.storeKeyValueTruncated(pos, key[n.prefixLength():], payload)
	n.makeHint()
	return true
}

// insertInner inserts a separator key -> child reference into an inner
// node.
func (n *node) insertInner(key []byte, child childRef) bool {
	var payload [childRefSize]byte
	putChildRef(payload[:], child)
	needed := n.spaceNeeded(len(key), childRefSize)
	if !n.requestSpaceFor(needed) {
		return false
	}
	pos, found := n.lowerBound(key)
	if found {
		n.setSpaceUsed(n.spaceUsed() - n.slotKeyLen(pos) - n.slotPayloadLen(pos))
	} else {
		n.insertSlot(pos)
	}
	n.storeKeyValueTruncated(pos, key[n.prefixLength():], payload[:])
	n.makeHint()
	return true
}

func putChildRef(b []byte, c childRef) {
	v := uint32(c)
	b[0] = byte(v)
	b[1] = byte(v >> 8)
	b[2] = byte(v >> 16)
	b[3] = byte(v >> 24)
}

// childAt returns the child reference to follow for key: the slot at
// lowerBound's position if key is less than or equal to that slot's
// separator,
// otherwise upper for positions past the end.
func (n *node) childAt(key []byte) childRef {
	pos, _ := n.lowerBound(key)
	if pos == n.count() {
		return n.upper()
	}
	return n.slotChild(pos)
}

// isUnderfull reports whether the node has shrunk enough that it is a
// merge candidate: freeSpaceAfterCompaction covers at least 3/4 of the
// page.
func (n *node) isUnderfull() bool {
	return n.freeSpaceAfterCompaction() >= pageSize*3/4
}
