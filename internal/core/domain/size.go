package domain

import "fmt"

var sizeUnits = []string{"", "K", "M", "G", "T"}

// HumanSize formats a byte count with two decimals and a binary unit, e.g. 1.50KB.
func HumanSize(n int64) string {
	size := float64(n)
	unit := 0
	for size >= 1024 && unit < len(sizeUnits)-1 {
		size /= 1024
		unit++
	}
	return fmt.Sprintf("%.2f%sB", size, sizeUnits[unit])
}
