package btree

import "encoding/binary"

// pageSize is the fixed size of every node's backing buffer. It is a
// build-time constant, not a runtime option: the slotted-page layout
// below assumes it.
const pageSize = 4096

// hintCount is the number of coarse samples kept in a node's hint
// array, used to narrow a lowerBound search before falling back to
// binary search over the slot array.
const hintCount = 16

type tag uint8

const (
	tagLeaf  tag = 0
	tagInner tag = 1
)

// childRef is an opaque reference to a child node, stored in an inner
// node's slot payloads and its upper pointer. It is an index into the
// tree's node arena rather than a raw pointer: Go's garbage collector
// would happily let us store a *node directly (spec.md's Design Notes
// permit this for GC languages), but keeping a fixed-width, pointer-free
// reference lets inner-node payloads participate in the same
// spaceNeeded/compaction accounting as leaf payloads instead of being a
// special case.
type childRef uint32

// refNone is never a valid arena index: New reserves index 0 as an
// unused placeholder, so alloc never hands it out.
const refNone childRef = 0

const childRefSize = 4

// header layout, fixed offsets into node.buf. The prefix bytes and the
// slot array follow immediately after, then free space, then the heap
// (fence keys and records) growing down from pageSize.
const (
	offTag              = 0
	offLowerFenceOffset = 2
	offLowerFenceLen    = 4
	offUpperFenceOffset = 6
	offUpperFenceLen    = 8
	offCount            = 10
	offSpaceUsed        = 12
	offDataOffset       = 14
	offPrefixLength     = 16
	offUpper            = 18
	offHint             = 24
	headerSize          = offHint + hintCount*4
)

const slotSize = 10

// node is one slotted page. It holds either a leaf (key -> payload
// bytes) or an inner node (key -> childRef), distinguished by tag.
type node struct {
	buf [pageSize]byte
}

func newLeaf() *node {
	n := &node{}
	n.setTag(tagLeaf)
	n.setDataOffset(pageSize)
	return n
}

func newInner() *node {
	n := &node{}
	n.setTag(tagInner)
	n.setDataOffset(pageSize)
	return n
}

func (n *node) isLeaf() bool { return n.getTag() == tagLeaf }

func (n *node) getTag() tag  { return tag(n.buf[offTag]) }
func (n *node) setTag(t tag) { n.buf[offTag] = byte(t) }

func (n *node) u16(off int) uint16 { return binary.LittleEndian.Uint16(n.buf[off:]) }
func (n *node) setU16(off int, v uint16) {
	binary.LittleEndian.PutUint16(n.buf[off:], v)
}
func (n *node) u32(off int) uint32 { return binary.LittleEndian.Uint32(n.buf[off:]) }
func (n *node) setU32(off int, v uint32) {
	binary.LittleEndian.PutUint32(n.buf[off:], v)
}

func (n *node) lowerFenceOffset() int      { return int(n.u16(offLowerFenceOffset)) }
func (n *node) setLowerFenceOffset(v int)  { n.setU16(offLowerFenceOffset, uint16(v)) }
func (n *node) lowerFenceLen() int         { return int(n.u16(offLowerFenceLen)) }
func (n *node) setLowerFenceLen(v int)     { n.setU16(offLowerFenceLen, uint16(v)) }
func (n *node) upperFenceOffset() int      { return int(n.u16(offUpperFenceOffset)) }
func (n *node) setUpperFenceOffset(v int)  { n.setU16(offUpperFenceOffset, uint16(v)) }
func (n *node) upperFenceLen() int         { return int(n.u16(offUpperFenceLen)) }
func (n *node) setUpperFenceLen(v int)     { n.setU16(offUpperFenceLen, uint16(v)) }

func (n *node) count() int     { return int(n.u16(offCount)) }
func (n *node) setCount(v int) { n.setU16(offCount, uint16(v)) }

func (n *node) spaceUsed() int     { return int(n.u16(offSpaceUsed)) }
func (n *node) setSpaceUsed(v int) { n.setU16(offSpaceUsed, uint16(v)) }

func (n *node) dataOffset() int     { return int(n.u16(offDataOffset)) }
func (n *node) setDataOffset(v int) { n.setU16(offDataOffset, uint16(v)) }

func (n *node) prefixLength() int     { return int(n.u16(offPrefixLength)) }
func (n *node) setPrefixLength(v int) { n.setU16(offPrefixLength, uint16(v)) }

// upper is the rightmost child pointer of an inner node: the child for
// keys greater than every separator stored in its slots.
func (n *node) upper() childRef     { return childRef(n.u32(offUpper)) }
func (n *node) setUpper(c childRef) { n.setU32(offUpper, uint32(c)) }

func (n *node) hint(i int) uint32     { return n.u32(offHint + i*4) }
func (n *node) setHint(i int, v uint32) { n.setU32(offHint+i*4, v) }

// prefixStart is where the node's shared key prefix is stored, right
// after the fixed header.
func (n *node) prefixStart() int { return headerSize }

func (n *node) prefix() []byte {
	return n.buf[n.prefixStart() : n.prefixStart()+n.prefixLength()]
}

// slotsStart is where the slot array begins, right after the prefix.
func (n *node) slotsStart() int { return headerSize + n.prefixLength() }

func (n *node) lowerFence() []byte {
	off := n.lowerFenceOffset()
	return n.buf[off : off+n.lowerFenceLen()]
}

func (n *node) upperFence() []byte {
	off := n.upperFenceOffset()
	return n.buf[off : off+n.upperFenceLen()]
}

func (n *node) isUpperFenceInfinity() bool { return n.upperFenceLen() == 0 && n.upperFenceOffset() == 0 }
