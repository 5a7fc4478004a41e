package reserved

import (
	"testing"

	"github.com/ak7sky/routeset-calc/internal/core/model"
	"github.com/stretchr/testify/require"
)

func TestPrivateRanges(t *testing.T) {
	v4 := PrivateIPv4()
	require.Len(t, v4, 5)
	for _, prefix := range v4 {
		require.Equal(t, model.IPv4, prefix.Family())
	}
	require.Contains(t, v4, model.MustParsePrefix("172.16.0.0/12"))

	v6 := PrivateIPv6()
	require.Len(t, v6, 3)
	for _, prefix := range v6 {
		require.Equal(t, model.IPv6, prefix.Family())
	}
	require.NotContains(t, v6, model.MustParsePrefix("::1/128"))
}

func TestPrivateRanges_FreshCopy(t *testing.T) {
	v4 := PrivateIPv4()
	v4[0] = model.MustParsePrefix("1.0.0.0/8")
	require.Equal(t, model.MustParsePrefix("10.0.0.0/8"), PrivateIPv4()[0])
}
