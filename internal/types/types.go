// Package types defines cross-package data structures used by the srcdoc CLI.
package types

// ValidatedRoot is an absolute scan root that already passed existence checks.
type ValidatedRoot struct {
	AbsolutePath string
}

// TraversalStats accumulates file and line totals during content aggregation.
// Each recursive call owns its own value; child stats are merged through Add,
// never shared by reference across calls.
type TraversalStats struct {
	FileCount int
	LineCount int
}

// Add returns the element-wise sum of the receiver and other.
func (stats TraversalStats) Add(other TraversalStats) TraversalStats {
	return TraversalStats{
		FileCount: stats.FileCount + other.FileCount,
		LineCount: stats.LineCount + other.LineCount,
	}
}
