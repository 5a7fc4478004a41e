package formatter

import (
	"fmt"
	"strings"

	"github.com/ak7sky/routeset-calc/internal/core/model"
)

type Style string

const (
	CSV   Style = "csv"
	Lines Style = "lines"
)

// ParseStyle validates an output style name; the empty name means CSV.
func ParseStyle(name string) (Style, error) {
	switch Style(strings.ToLower(strings.TrimSpace(name))) {
	case "", CSV:
		return CSV, nil
	case Lines:
		return Lines, nil
	}
	return "", fmt.Errorf("unknown output format %q (expected %s or %s)", name, CSV, Lines)
}

// Format renders the networks shortest prefix first, all IPv4 networks before IPv6 ones.
// The input slices are not modified.
func Format(v4, v6 []model.Prefix, style Style) string {
	all := make([]model.Prefix, 0, len(v4)+len(v6))
	all = append(all, v4...)
	all = append(all, v6...)
	model.SortCanonical(all)

	cidrs := make([]string, 0, len(all))
	for _, prefix := range all {
		cidrs = append(cidrs, prefix.String())
	}

	sep := ","
	if style == Lines {
		sep = "\n"
	}
	return strings.Join(cidrs, sep)
}
