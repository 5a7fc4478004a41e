package model

import (
	"encoding/binary"
	"net/netip"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

type Family uint8

const (
	IPv4 Family = iota + 1
	IPv6
)

// Bits returns the address width of the family.
func (f Family) Bits() uint8 {
	if f == IPv6 {
		return 128
	}
	return 32
}

func (f Family) String() string {
	switch f {
	case IPv4:
		return "IPv4"
	case IPv6:
		return "IPv6"
	}
	return "unknown"
}

// Prefix is a CIDR block stored in normalized form: every host bit of base is zero.
// Prefix values are comparable and can be used as map keys.
type Prefix struct {
	family Family
	base   Uint128
	length uint8
}

// NewPrefix builds a prefix from its raw parts, masking off host bits of base.
func NewPrefix(family Family, base Uint128, length uint8) (Prefix, error) {
	if family != IPv4 && family != IPv6 {
		return Prefix{}, errors.Errorf("unsupported address family %d", uint8(family))
	}
	width := family.Bits()
	if length > width {
		return Prefix{}, errors.Errorf("prefix length %d exceeds %d bits of %s", length, width, family)
	}
	if base.BitLen() > int(width) {
		return Prefix{}, errors.Errorf("base address does not fit into %d bits of %s", width, family)
	}
	return Prefix{family: family, base: base.And(netMask(length, width)), length: length}, nil
}

// PrefixFrom converts a netip.Prefix, masking off host bits.
// IPv4-mapped IPv6 addresses keep the IPv6 family.
func PrefixFrom(np netip.Prefix) (Prefix, error) {
	if !np.IsValid() {
		return Prefix{}, errors.Errorf("invalid network %s", np)
	}
	np = np.Masked()
	addr := np.Addr()
	if addr.Is4() {
		b := addr.As4()
		return NewPrefix(IPv4, U128(0, uint64(binary.BigEndian.Uint32(b[:]))), uint8(np.Bits()))
	}
	b := addr.As16()
	return NewPrefix(IPv6, U128(binary.BigEndian.Uint64(b[:8]), binary.BigEndian.Uint64(b[8:])), uint8(np.Bits()))
}

// ParsePrefix parses a network in CIDR notation. A bare address is taken as a
// host network (/32 or /128). Host bits are silently masked off.
func ParsePrefix(s string) (Prefix, error) {
	s = strings.TrimSpace(s)
	if !strings.Contains(s, "/") {
		addr, err := netip.ParseAddr(s)
		if err != nil {
			return Prefix{}, errors.Wrapf(err, "invalid network %q", s)
		}
		if addr.Zone() != "" {
			return Prefix{}, errors.Errorf("invalid network %q: zoned addresses are not supported", s)
		}
		return PrefixFrom(netip.PrefixFrom(addr, addr.BitLen()))
	}
	np, err := netip.ParsePrefix(s)
	if err != nil {
		return Prefix{}, errors.Wrapf(err, "invalid network %q", s)
	}
	return PrefixFrom(np)
}

// MustParsePrefix is like ParsePrefix but panics on error.
func MustParsePrefix(s string) Prefix {
	p, err := ParsePrefix(s)
	if err != nil {
		panic(err)
	}
	return p
}

// IsValid reports whether p was produced by one of the constructors.
// The zero Prefix is invalid.
func (p Prefix) IsValid() bool { return p.family != 0 }

func (p Prefix) Family() Family { return p.family }
func (p Prefix) Base() Uint128  { return p.base }
func (p Prefix) Len() uint8     { return p.length }

// Netip returns the standard library representation of p.
func (p Prefix) Netip() netip.Prefix {
	var addr netip.Addr
	if p.family == IPv4 {
		var b [4]byte
		binary.BigEndian.PutUint32(b[:], uint32(p.base.Lo))
		addr = netip.AddrFrom4(b)
	} else {
		var b [16]byte
		binary.BigEndian.PutUint64(b[:8], p.base.Hi)
		binary.BigEndian.PutUint64(b[8:], p.base.Lo)
		addr = netip.AddrFrom16(b)
	}
	return netip.PrefixFrom(addr, int(p.length))
}

func (p Prefix) String() string {
	if !p.IsValid() {
		return "invalid Prefix"
	}
	return p.Netip().String()
}

// IsSupernetOf reports whether p covers every address of other.
// A prefix is its own supernet.
func (p Prefix) IsSupernetOf(other Prefix) bool {
	return p.family == other.family &&
		p.length <= other.length &&
		other.base.And(netMask(p.length, p.family.Bits())) == p.base
}

// Halves splits p into its two children one bit longer.
// ok is false when p is already a host prefix.
func (p Prefix) Halves() (lo, hi Prefix, ok bool) {
	width := p.family.Bits()
	if p.length >= width {
		return Prefix{}, Prefix{}, false
	}
	lo = Prefix{family: p.family, base: p.base, length: p.length + 1}
	hi = Prefix{family: p.family, base: p.base.Or(bitAt(width - p.length - 1)), length: p.length + 1}
	return lo, hi, true
}

// Parent returns the prefix one bit shorter that contains p.
func (p Prefix) Parent() (Prefix, bool) {
	if p.length == 0 {
		return Prefix{}, false
	}
	length := p.length - 1
	return Prefix{family: p.family, base: p.base.And(netMask(length, p.family.Bits())), length: length}, true
}

// IsSiblingOf reports whether p and other are the two distinct halves of one parent.
func (p Prefix) IsSiblingOf(other Prefix) bool {
	if p.family != other.family || p.length != other.length || p == other {
		return false
	}
	pp, ok := p.Parent()
	if !ok {
		return false
	}
	op, _ := other.Parent()
	return pp == op
}

// Exclude returns the prefixes covering p except sub, one per length from
// p.Len()+1 to sub.Len(), ordered by increasing length. sub must be covered by p;
// otherwise Exclude returns nil. Excluding p from itself yields an empty slice.
func (p Prefix) Exclude(sub Prefix) []Prefix {
	if !p.IsSupernetOf(sub) {
		return nil
	}
	rest := make([]Prefix, 0, sub.length-p.length)
	for cur := p; cur.length < sub.length; {
		lo, hi, _ := cur.Halves()
		if lo.IsSupernetOf(sub) {
			rest = append(rest, hi)
			cur = lo
		} else {
			rest = append(rest, lo)
			cur = hi
		}
	}
	return rest
}

// Compare orders prefixes for output: IPv4 before IPv6, then shorter
// prefixes first, then by base address.
func Compare(a, b Prefix) int {
	switch {
	case a.family != b.family:
		if a.family < b.family {
			return -1
		}
		return 1
	case a.length != b.length:
		if a.length < b.length {
			return -1
		}
		return 1
	}
	return a.base.Cmp(b.base)
}

// SortCanonical sorts prefixes in place in the order defined by Compare.
func SortCanonical(prefixes []Prefix) {
	sort.Slice(prefixes, func(i, j int) bool {
		return Compare(prefixes[i], prefixes[j]) < 0
	})
}
