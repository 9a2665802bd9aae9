package format

// Align4 returns n aligned up to the next record boundary.
//
// Example:
//
//	Align4(0) = 0
//	Align4(1) = 4
//	Align4(4) = 4
//	Align4(9) = 12
func Align4(n int) int {
	return (n + RecordAlignmentMask) & ^RecordAlignmentMask
}
