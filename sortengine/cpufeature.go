package sortengine

import "golang.org/x/sys/cpu"

// hasWideMoves reports whether the CPU offers wide vector move instructions
// worth biasing small-segment strategy decisions toward bulk-copy (binary
// insertion + copy) over element-by-element linear insertion. Detected once
// at process start, the same way the teacher package gates its SIMD path on
// cpu.X86.HasAVX2.
var hasWideMoves = detectWideMoves()

func detectWideMoves() bool {
	return cpu.X86.HasAVX2 || cpu.ARM64.HasASIMD
}
