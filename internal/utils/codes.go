package utils

import "fmt"

// FormatCode renders prefix and n as PREFIX_0007. Values wider than four
// digits are kept whole.
func FormatCode(prefix string, n int64) string {
	return fmt.Sprintf("%s_%04d", prefix, n)
}
