// Package reserved lists well-known private and non-routable networks.
package reserved

import "github.com/ak7sky/routeset-calc/internal/core/model"

var privateIPv4 = []string{
	"10.0.0.0/8",     // private
	"127.0.0.0/8",    // loopback
	"172.16.0.0/12",  // private
	"192.168.0.0/16", // private
	"169.254.0.0/16", // link-local (APIPA)
}

// ::1/128 is left out: Linux routing tables already carry it.
var privateIPv6 = []string{
	"fc00::/7",  // unique local
	"ff00::/8",  // multicast
	"fe80::/10", // link-local
}

// PrivateIPv4 returns a fresh copy of the private IPv4 networks.
func PrivateIPv4() []model.Prefix {
	return mustParseAll(privateIPv4)
}

// PrivateIPv6 returns a fresh copy of the private IPv6 networks.
func PrivateIPv6() []model.Prefix {
	return mustParseAll(privateIPv6)
}

func mustParseAll(cidrs []string) []model.Prefix {
	prefixes := make([]model.Prefix, 0, len(cidrs))
	for _, cidr := range cidrs {
		prefixes = append(prefixes, model.MustParsePrefix(cidr))
	}
	return prefixes
}
