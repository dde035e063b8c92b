package array

// Delta is the Kronecker delta.
func Delta(i, j int) int {
	if i == j {
		return 1
	}
	return 0
}

// LeviCivita is the permutation symbol for index triples: +1 for even
// permutations of (0,1,2), -1 for odd ones, 0 when any index repeats. The
// closed form also holds for any cyclic run such as (1,2,3).
func LeviCivita(i, j, k int) int {
	return (i - j) * (j - k) * (k - i) / 2
}
