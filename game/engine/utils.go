package engine

// Distance is the Manhattan distance between two grid points. It is the
// only metric on the board: movement and attack ranges both use it.
func Distance(from, to GridPoint) int {
	return abs(from.Row-to.Row) + abs(from.Col-to.Col)
}

// ceilDiv returns ceil(n/d) for n >= 0 and d > 0
func ceilDiv(n, d int) int {
	return (n + d - 1) / d
}

// abs returns the absolute value of x
func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
