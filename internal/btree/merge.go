package btree

// mergeRight attempts to combine left and its right sibling into a
// single node spanning both of their key ranges. It returns the merged
// node and true on success, or false if the combined data would not
// fit in one page — in which case the caller leaves both nodes alone.
//
// The merge never mutates left or right: the caller is responsible for
// deciding where the result is stored (this port stores it into the
// right sibling's arena slot, so the parent's pointer to the right
// child keeps referring to valid data and only the parent's pointer to
// the left child needs to be removed).
func mergeRight(left, right *node) (*node, bool) {
	if left.isLeaf() != right.isLeaf() {
		panic("btree: mergeRight on mismatched node kinds")
	}
	if left.isLeaf() {
		return mergeRightLeaf(left, right)
	}
	return mergeRightInner(left, right)
}

func mergeRightLeaf(left, right *node) (*node, bool) {
	lower := append([]byte(nil), left.lowerFence()...)
	var upper []byte
	if !right.isUpperFenceInfinity() {
		upper = append([]byte(nil), right.upperFence()...)
	}

	keys := make([][]byte, 0, left.count()+right.count())
	payloads := make([][]byte, 0, left.count()+right.count())
	for i := 0; i < left.count(); i++ {
		keys = append(keys, left.fullKey(i))
		payloads = append(payloads, append([]byte(nil), left.slotPayload(i)...))
	}
	for i := 0; i < right.count(); i++ {
		keys = append(keys, right.fullKey(i))
		payloads = append(payloads, append([]byte(nil), right.slotPayload(i)...))
	}

	if !fitsOnePage(lower, upper, keys, payloads) {
		return nil, false
	}
	return buildNode(tagLeaf, lower, upper, keys, payloads, refNone), true
}

func mergeRightInner(left, right *node) (*node, bool) {
	lower := append([]byte(nil), left.lowerFence()...)
	var upper []byte
	if !right.isUpperFenceInfinity() {
		upper = append([]byte(nil), right.upperFence()...)
	}

	keys := make([][]byte, 0, left.count()+right.count()+1)
	payloads := make([][]byte, 0, left.count()+right.count()+1)
	for i := 0; i < left.count(); i++ {
		keys = append(keys, left.fullKey(i))
		payloads = append(payloads, append([]byte(nil), left.slotPayload(i)...))
	}

	// the separator between left and right subtrees is right's lower
	// fence; left's upper child becomes a demoted slot under that key.
	sep := append([]byte(nil), right.lowerFence()...)
	var demoted [childRefSize]byte
	putChildRef(demoted[:], left.upper())
	keys = append(keys, sep)
	payloads = append(payloads, demoted[:])

	for i := 0; i < right.count(); i++ {
		keys = append(keys, right.fullKey(i))
		payloads = append(payloads, append([]byte(nil), right.slotPayload(i)...))
	}

	if !fitsOnePage(lower, upper, keys, payloads) {
		return nil, false
	}
	return buildNode(tagInner, lower, upper, keys, payloads, right.upper()), true
}

// fitsOnePage computes the exact byte count buildNode would need for
// this fence/record set and reports whether it is within pageSize.
func fitsOnePage(lower, upper []byte, keys, payloads [][]byte) bool {
	prefixLen := 0
	if upper != nil {
		prefixLen = commonPrefixLen(lower, upper)
	}
	need := headerSize + prefixLen + len(lower) + len(upper) + len(keys)*slotSize
	for i := range keys {
		need += len(keys[i]) - prefixLen + len(payloads[i])
	}
	return need <= pageSize
}
