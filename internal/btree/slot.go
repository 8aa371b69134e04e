package btree

// slot is a FatSlot-style fixed-width directory entry: a 16-bit heap
// offset, 16-bit key length, 16-bit payload length and a 32-bit head
// digest of the key, laid out inline inside the node's slot array so
// lowerBound never has to dereference through a second array.
func (n *node) slotOffsetAt(i int) int { return n.slotsStart() + i*slotSize }

func (n *node) slotOffset(i int) int     { return int(n.u16(n.slotOffsetAt(i) + 0)) }
func (n *node) setSlotOffset(i, v int)   { n.setU16(n.slotOffsetAt(i)+0, uint16(v)) }
func (n *node) slotKeyLen(i int) int     { return int(n.u16(n.slotOffsetAt(i) + 2)) }
func (n *node) setSlotKeyLen(i, v int)   { n.setU16(n.slotOffsetAt(i)+2, uint16(v)) }
func (n *node) slotPayloadLen(i int) int { return int(n.u16(n.slotOffsetAt(i) + 4)) }
func (n *node) setSlotPayloadLen(i, v int) {
	n.setU16(n.slotOffsetAt(i)+4, uint16(v))
}
func (n *node) slotHead(i int) uint32   { return n.u32(n.slotOffsetAt(i) + 6) }
func (n *node) setSlotHead(i int, v uint32) { n.setU32(n.slotOffsetAt(i)+6, v) }

func (n *node) slotKey(i int) []byte {
	off := n.slotOffset(i)
	return n.buf[off : off+n.slotKeyLen(i)]
}

func (n *node) slotPayload(i int) []byte {
	off := n.slotOffset(i) + n.slotKeyLen(i)
	return n.buf[off : off+n.slotPayloadLen(i)]
}

// fullKey reconstructs the complete key for slot i by prepending the
// node's shared prefix to the slot's truncated key.
func (n *node) fullKey(i int) []byte {
	full := make([]byte, n.prefixLength()+n.slotKeyLen(i))
	copy(full, n.prefix())
	copy(full[n.prefixLength():], n.slotKey(i))
	return full
}

// slotChild reads an inner-node slot's payload as a childRef. Inner
// slot payloads always hold exactly one childRef: spaceNeeded for an
// inner insert always asks for childRefSize bytes of payload.
func (n *node) slotChild(i int) childRef {
	p := n.slotPayload(i)
	return childRef(n.u32At(p))
}

// setSlotChild overwrites an inner slot's payload with a new child
// reference in place. Inner payloads are always exactly childRefSize
// bytes, so this never needs to move heap data or touch spaceUsed.
func (n *node) setSlotChild(i int, c childRef) {
	p := n.slotPayload(i)
	putChildRef(p, c)
}

func (n *node) u32At(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}
