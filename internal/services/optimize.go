package services

import (
	"math"

	"agroute-trip-service/internal/domain"
)

// OptimizeMode selects between the user's manual stop order and the
// heuristic reordering.
type OptimizeMode string

const (
	// ModeAsEntered is the default: the identity function. Users expect
	// deterministic manual ordering unless they ask for optimization.
	ModeAsEntered OptimizeMode = "as-entered"
	ModeOptimized OptimizeMode = "optimized"
)

// DefaultOptimizeCeiling bounds the 2-opt refinement. Above this many
// stops only the nearest-neighbor construction runs, keeping worst-case
// latency linear in passes rather than unbounded. No real trip in this
// domain approaches the ceiling; the guard exists for pathological input.
const DefaultOptimizeCeiling = 60

// Optimize reorders stops to shorten the approximate round trip from
// anchor through every stop and back.
//
// The heuristic is nearest-neighbor construction followed by 2-opt local
// search, both measured with the equirectangular distance approximation
// (see domain.Coordinates.DistanceMeters). Tie-breaks use the lowest
// original index, so output is reproducible for identical input. The
// result is never longer than the nearest-neighbor tour.
//
// Stops without coordinates cannot be optimized; if any is present the
// input order is returned unchanged.
func Optimize(stops []domain.Stop, anchor domain.Coordinates, mode OptimizeMode) []domain.Stop {
	return OptimizeWithCeiling(stops, anchor, mode, DefaultOptimizeCeiling)
}

// OptimizeWithCeiling is Optimize with an explicit 2-opt stop ceiling.
func OptimizeWithCeiling(stops []domain.Stop, anchor domain.Coordinates, mode OptimizeMode, ceiling int) []domain.Stop {
	out := make([]domain.Stop, len(stops))
	copy(out, stops)

	if mode != ModeOptimized || len(stops) < 2 {
		return out
	}

	pts := make([]domain.Coordinates, len(stops))
	for i, s := range stops {
		if s.Coord == nil {
			return out
		}
		pts[i] = *s.Coord
	}

	order := nearestNeighborOrder(pts, anchor)
	if len(stops) <= ceiling {
		order = twoOpt(order, pts, anchor)
	}

	for i, idx := range order {
		out[i] = stops[idx]
	}
	return out
}

// TourLengthMeters is the approximate length of the closed tour
// anchor -> stops... -> anchor. Stops without coordinates contribute
// nothing, matching Optimize's refusal to reorder them.
func TourLengthMeters(stops []domain.Stop, anchor domain.Coordinates) float64 {
	total := 0.0
	prev := anchor
	for _, s := range stops {
		if s.Coord == nil {
			continue
		}
		total += prev.DistanceMeters(*s.Coord)
		prev = *s.Coord
	}
	total += prev.DistanceMeters(anchor)
	return total
}

// nearestNeighborOrder greedily visits the closest remaining point,
// starting from the anchor. Ties keep the lowest original index.
func nearestNeighborOrder(pts []domain.Coordinates, anchor domain.Coordinates) []int {
	n := len(pts)
	visited := make([]bool, n)
	order := make([]int, 0, n)

	current := anchor
	for len(order) < n {
		best := -1
		bestDist := math.Inf(1)
		for i := 0; i < n; i++ {
			if visited[i] {
				continue
			}
			d := current.DistanceMeters(pts[i])
			if d < bestDist {
				bestDist = d
				best = i
			}
		}
		visited[best] = true
		order = append(order, best)
		current = pts[best]
	}

	return order
}

// twoOpt improves a tour by reversing segments whenever the reversal
// strictly shortens the closed tour (including the leg back to anchor).
// It terminates after a full pass with no improving swap. The first
// improving swap in scan order is taken, which keeps the search
// deterministic.
func twoOpt(order []int, pts []domain.Coordinates, anchor domain.Coordinates) []int {
	n := len(order)
	if n < 3 {
		return order
	}

	at := func(i int) domain.Coordinates {
		if i < 0 || i >= n {
			return anchor
		}
		return pts[order[i]]
	}

	improved := true
	for improved {
		improved = false
		for i := 0; i < n-1; i++ {
			for j := i + 1; j < n; j++ {
				// Replacing edges (i-1,i) and (j,j+1) with (i-1,j) and
				// (i,j+1) is equivalent to reversing order[i..j].
				current := at(i-1).DistanceMeters(at(i)) + at(j).DistanceMeters(at(j+1))
				proposed := at(i-1).DistanceMeters(at(j)) + at(i).DistanceMeters(at(j+1))
				if proposed < current {
					reverse(order, i, j)
					improved = true
				}
			}
		}
	}

	return order
}

func reverse(order []int, i, j int) {
	for i < j {
		order[i], order[j] = order[j], order[i]
		i++
		j--
	}
}
