package idutil

import (
	"strings"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/stretchr/testify/require"
)

func TestVoucherCode(t *testing.T) {
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	a := VoucherCode(node.Generate())
	b := VoucherCode(node.Generate())
	require.NotEqual(t, a, b)
	require.True(t, strings.HasPrefix(a, "RW-"))
	require.Equal(t, strings.ToUpper(a), a)
}
