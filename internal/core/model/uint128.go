package model

import "math/bits"

// Uint128 is an unsigned 128-bit integer holding an address of either family.
// IPv4 addresses occupy the low 32 bits of Lo.
type Uint128 struct {
	Hi, Lo uint64
}

func U128(hi, lo uint64) Uint128 {
	return Uint128{Hi: hi, Lo: lo}
}

func (u Uint128) And(v Uint128) Uint128 {
	return Uint128{Hi: u.Hi & v.Hi, Lo: u.Lo & v.Lo}
}

func (u Uint128) Or(v Uint128) Uint128 {
	return Uint128{Hi: u.Hi | v.Hi, Lo: u.Lo | v.Lo}
}

func (u Uint128) AndNot(v Uint128) Uint128 {
	return Uint128{Hi: u.Hi &^ v.Hi, Lo: u.Lo &^ v.Lo}
}

func (u Uint128) IsZero() bool {
	return u.Hi == 0 && u.Lo == 0
}

// Cmp returns -1, 0 or +1.
func (u Uint128) Cmp(v Uint128) int {
	switch {
	case u.Hi < v.Hi:
		return -1
	case u.Hi > v.Hi:
		return 1
	case u.Lo < v.Lo:
		return -1
	case u.Lo > v.Lo:
		return 1
	}
	return 0
}

// BitLen returns the minimum number of bits required to represent u.
func (u Uint128) BitLen() int {
	if u.Hi != 0 {
		return 64 + bits.Len64(u.Hi)
	}
	return bits.Len64(u.Lo)
}

// lowOnes returns a value with the n least significant bits set.
func lowOnes(n uint8) Uint128 {
	switch {
	case n >= 128:
		return Uint128{Hi: ^uint64(0), Lo: ^uint64(0)}
	case n >= 64:
		return Uint128{Hi: 1<<(n-64) - 1, Lo: ^uint64(0)}
	}
	return Uint128{Lo: 1<<n - 1}
}

// bitAt returns a value with only bit n set, counting from the least significant bit.
func bitAt(n uint8) Uint128 {
	if n >= 64 {
		return Uint128{Hi: 1 << (n - 64)}
	}
	return Uint128{Lo: 1 << n}
}

// netMask returns the network mask of a maskLen-bit prefix in a width-bit address space.
func netMask(maskLen, width uint8) Uint128 {
	return lowOnes(width).AndNot(lowOnes(width - maskLen))
}
