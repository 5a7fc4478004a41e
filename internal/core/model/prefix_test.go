package model

import (
	"net/netip"
	"testing"

	"github.com/stretchr/testify/require"
	"go4.org/netipx"
)

func TestParsePrefix(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
		family   Family
		expErr   bool
	}{
		{name: "ipv4 network", input: "10.0.0.0/8", expected: "10.0.0.0/8", family: IPv4},
		{name: "ipv4 host bits masked", input: "192.168.1.77/16", expected: "192.168.0.0/16", family: IPv4},
		{name: "ipv4 bare address", input: "8.8.8.8", expected: "8.8.8.8/32", family: IPv4},
		{name: "surrounding spaces", input: "  172.16.0.0/12 ", expected: "172.16.0.0/12", family: IPv4},
		{name: "ipv4 default route", input: "0.0.0.0/0", expected: "0.0.0.0/0", family: IPv4},
		{name: "ipv6 network", input: "fc00::/7", expected: "fc00::/7", family: IPv6},
		{name: "ipv6 host bits masked", input: "2001:db8::1/32", expected: "2001:db8::/32", family: IPv6},
		{name: "ipv6 bare address", input: "::1", expected: "::1/128", family: IPv6},
		{name: "ipv4-mapped stays ipv6", input: "::ffff:10.0.0.0/104", expected: "::ffff:10.0.0.0/104", family: IPv6},
		{name: "garbage", input: "not-a-network", expErr: true},
		{name: "ipv4 length too long", input: "10.0.0.0/33", expErr: true},
		{name: "ipv6 length too long", input: "::/129", expErr: true},
		{name: "octet out of range", input: "256.0.0.0/8", expErr: true},
		{name: "empty", input: "", expErr: true},
		{name: "zoned address", input: "fe80::1%eth0", expErr: true},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			prefix, err := ParsePrefix(tc.input)
			if tc.expErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.expected, prefix.String())
			require.Equal(t, tc.family, prefix.Family())
		})
	}
}

func TestNewPrefix(t *testing.T) {
	t.Run("masks host bits", func(t *testing.T) {
		prefix, err := NewPrefix(IPv4, U128(0, 0xC0A80101), 16)
		require.NoError(t, err)
		require.Equal(t, U128(0, 0xC0A80000), prefix.Base())
		require.Equal(t, "192.168.0.0/16", prefix.String())
	})

	t.Run("rejects long length", func(t *testing.T) {
		_, err := NewPrefix(IPv4, U128(0, 0), 33)
		require.Error(t, err)
	})

	t.Run("rejects wide ipv4 base", func(t *testing.T) {
		_, err := NewPrefix(IPv4, U128(0, 1<<32), 8)
		require.Error(t, err)
	})

	t.Run("rejects unknown family", func(t *testing.T) {
		_, err := NewPrefix(Family(0), U128(0, 0), 0)
		require.Error(t, err)
	})

	t.Run("full ipv6 width", func(t *testing.T) {
		prefix, err := NewPrefix(IPv6, U128(^uint64(0), ^uint64(0)), 128)
		require.NoError(t, err)
		require.Equal(t, "ffff:ffff:ffff:ffff:ffff:ffff:ffff:ffff/128", prefix.String())
	})
}

func TestPrefix_IsSupernetOf(t *testing.T) {
	testCases := []struct {
		name     string
		super    string
		sub      string
		expected bool
	}{
		{name: "192.163.1.0/24 in 192.163.0.0/16", super: "192.163.0.0/16", sub: "192.163.1.0/24", expected: true},
		{name: "192.163.254.254/32 in 192.163.0.0/16", super: "192.163.0.0/16", sub: "192.163.254.254/32", expected: true},
		{name: "192.164.0.0/24 in 192.163.0.0/16", super: "192.163.0.0/16", sub: "192.164.0.0/24", expected: false},
		{name: "192.162.0.0/15 in 192.163.0.0/16", super: "192.163.0.0/16", sub: "192.162.0.0/15", expected: false},
		{name: "reflexive", super: "10.0.0.0/8", sub: "10.0.0.0/8", expected: true},
		{name: "default route covers everything", super: "0.0.0.0/0", sub: "203.0.113.7/32", expected: true},
		{name: "families never mix", super: "::/0", sub: "10.0.0.0/8", expected: false},
		{name: "ipv6 nested", super: "fe80::/10", sub: "febf:ffff::/32", expected: true},
		{name: "ipv6 outside", super: "fe80::/10", sub: "fec0::/10", expected: false},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			super := MustParsePrefix(tc.super)
			sub := MustParsePrefix(tc.sub)
			require.Equal(t, tc.expected, super.IsSupernetOf(sub))
		})
	}
}

func TestPrefix_IsSupernetOf_Antisymmetric(t *testing.T) {
	prefixes := []Prefix{
		MustParsePrefix("0.0.0.0/0"),
		MustParsePrefix("10.0.0.0/8"),
		MustParsePrefix("10.0.0.0/9"),
		MustParsePrefix("10.128.0.0/9"),
		MustParsePrefix("10.1.2.3/32"),
		MustParsePrefix("::/0"),
		MustParsePrefix("::/1"),
		MustParsePrefix("2001:db8::/32"),
	}
	for _, a := range prefixes {
		for _, b := range prefixes {
			if a.IsSupernetOf(b) && b.IsSupernetOf(a) {
				require.Equal(t, a, b)
			}
		}
	}
}

func TestPrefix_Halves(t *testing.T) {
	lo, hi, ok := MustParsePrefix("10.0.0.0/24").Halves()
	require.True(t, ok)
	require.Equal(t, "10.0.0.0/25", lo.String())
	require.Equal(t, "10.0.0.128/25", hi.String())
	require.True(t, lo.IsSiblingOf(hi))

	lo, hi, ok = MustParsePrefix("::/0").Halves()
	require.True(t, ok)
	require.Equal(t, "::/1", lo.String())
	require.Equal(t, "8000::/1", hi.String())

	_, _, ok = MustParsePrefix("10.0.0.1/32").Halves()
	require.False(t, ok)
}

func TestPrefix_Parent(t *testing.T) {
	parent, ok := MustParsePrefix("10.0.0.128/25").Parent()
	require.True(t, ok)
	require.Equal(t, MustParsePrefix("10.0.0.0/24"), parent)

	_, ok = MustParsePrefix("::/0").Parent()
	require.False(t, ok)

	require.False(t, MustParsePrefix("10.0.1.0/24").IsSiblingOf(MustParsePrefix("10.0.2.0/24")))
	require.False(t, MustParsePrefix("10.0.0.0/24").IsSiblingOf(MustParsePrefix("10.0.0.0/24")))
}

func TestPrefix_Exclude(t *testing.T) {
	testCases := []struct {
		name     string
		super    string
		sub      string
		expected []string
	}{
		{
			name:     "10.0.0.0/8 minus 10.1.0.0/16",
			super:    "10.0.0.0/8",
			sub:      "10.1.0.0/16",
			expected: []string{"10.128.0.0/9", "10.64.0.0/10", "10.32.0.0/11", "10.16.0.0/12", "10.8.0.0/13", "10.4.0.0/14", "10.2.0.0/15", "10.0.0.0/16"},
		},
		{
			name:     "0.0.0.0/0 minus 10.0.0.0/8",
			super:    "0.0.0.0/0",
			sub:      "10.0.0.0/8",
			expected: []string{"128.0.0.0/1", "64.0.0.0/2", "32.0.0.0/3", "16.0.0.0/4", "0.0.0.0/5", "12.0.0.0/6", "8.0.0.0/7", "11.0.0.0/8"},
		},
		{
			name:     "one level",
			super:    "10.0.0.0/24",
			sub:      "10.0.0.128/25",
			expected: []string{"10.0.0.0/25"},
		},
		{
			name:     "ipv6 ula out of everything",
			super:    "::/0",
			sub:      "fc00::/7",
			expected: []string{"::/1", "8000::/2", "c000::/3", "e000::/4", "f000::/5", "f800::/6", "fe00::/7"},
		},
		{
			name:     "self",
			super:    "10.0.0.0/8",
			sub:      "10.0.0.0/8",
			expected: []string{},
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			rest := MustParsePrefix(tc.super).Exclude(MustParsePrefix(tc.sub))
			actual := make([]string, 0, len(rest))
			for _, p := range rest {
				actual = append(actual, p.String())
			}
			require.Equal(t, tc.expected, actual)
		})
	}

	t.Run("not contained", func(t *testing.T) {
		require.Nil(t, MustParsePrefix("10.0.0.0/8").Exclude(MustParsePrefix("11.0.0.0/8")))
		require.Nil(t, MustParsePrefix("10.1.0.0/16").Exclude(MustParsePrefix("10.0.0.0/8")))
	})
}

func TestPrefix_Exclude_Partition(t *testing.T) {
	pairs := [][2]string{
		{"0.0.0.0/0", "10.1.2.3/32"},
		{"10.0.0.0/8", "10.255.255.0/24"},
		{"192.168.0.0/16", "192.168.128.0/17"},
		{"::/0", "2001:db8:1::/48"},
		{"2001:db8::/32", "2001:db8:ffff:ffff:ffff:ffff:ffff:ffff/128"},
	}

	for _, pair := range pairs {
		super := MustParsePrefix(pair[0])
		sub := MustParsePrefix(pair[1])
		rest := super.Exclude(sub)
		require.Len(t, rest, int(sub.Len()-super.Len()))

		var b netipx.IPSetBuilder
		b.AddPrefix(sub.Netip())
		for i, piece := range rest {
			require.Equal(t, super.Len()+uint8(i)+1, piece.Len())
			require.False(t, piece.IsSupernetOf(sub), "%s overlaps %s", piece, sub)
			for _, other := range rest[i+1:] {
				require.False(t, piece.IsSupernetOf(other) || other.IsSupernetOf(piece), "%s overlaps %s", piece, other)
			}
			b.AddPrefix(piece.Netip())
		}
		set, err := b.IPSet()
		require.NoError(t, err)
		require.Equal(t, []netip.Prefix{super.Netip()}, set.Prefixes())
	}
}

func TestSortCanonical(t *testing.T) {
	prefixes := []Prefix{
		MustParsePrefix("fc00::/7"),
		MustParsePrefix("10.1.2.0/24"),
		MustParsePrefix("::/1"),
		MustParsePrefix("128.0.0.0/1"),
		MustParsePrefix("11.0.0.0/8"),
		MustParsePrefix("8.0.0.0/7"),
	}
	SortCanonical(prefixes)

	actual := make([]string, 0, len(prefixes))
	for _, p := range prefixes {
		actual = append(actual, p.String())
	}
	require.Equal(t, []string{"128.0.0.0/1", "8.0.0.0/7", "11.0.0.0/8", "10.1.2.0/24", "::/1", "fc00::/7"}, actual)
}
