package idutil

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/snowflake"
)

// VoucherCode formats a snowflake id as a short, case-insensitive code.
func VoucherCode(id snowflake.ID) string {
	return fmt.Sprintf("RW-%s", strings.ToUpper(id.Base36()))
}
