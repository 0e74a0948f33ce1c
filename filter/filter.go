// Package filter holds the pieces shared by the filter variants: parameter
// estimation, the double-hashing generator and the Filter contract.
//
// Filters answer "possibly present" or "definitely absent". They never
// produce false negatives, they cannot delete items, and they are not safe
// for concurrent use; wrap one in a mutex if it has to be shared.
package filter

type Filter interface {
	Insert(data []byte)
	Contains(data []byte) bool
	Clear()
}

// Sized is a Filter that reports its shape and fill.
type Sized interface {
	Filter
	Bits() uint64
	HashFunctions() uint32
	// Count is the number of set bits.
	Count() uint64
}
