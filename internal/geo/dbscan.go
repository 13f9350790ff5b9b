package geo

import (
	"context"

	"zonewatch/internal/domain"
)

// Noise is the label DBSCAN gives to points that belong to no cluster.
const Noise = -1

const unvisited = -2

// DBSCAN labels every point with a cluster id (0..k-1) or Noise. A point is a
// core point when at least minPts points, itself included, lie within epsM.
func DBSCAN(points []domain.Point, epsM float64, minPts int) []int {
	labels := make([]int, len(points))
	for i := range labels {
		labels[i] = unvisited
	}
	if minPts < 1 {
		minPts = 1
	}

	cluster := 0
	for i := range points {
		if labels[i] != unvisited {
			continue
		}
		seeds := neighbors(points, i, epsM)
		if len(seeds) < minPts {
			labels[i] = Noise
			continue
		}

		labels[i] = cluster
		for q := 0; q < len(seeds); q++ {
			j := seeds[q]
			if labels[j] == Noise {
				labels[j] = cluster
			}
			if labels[j] != unvisited {
				continue
			}
			labels[j] = cluster
			if more := neighbors(points, j, epsM); len(more) >= minPts {
				seeds = append(seeds, more...)
			}
		}
		cluster++
	}
	return labels
}

func neighbors(points []domain.Point, i int, epsM float64) []int {
	out := make([]int, 0, 8)
	for j := range points {
		if Distance(points[i], points[j]) <= epsM {
			out = append(out, j)
		}
	}
	return out
}

// Group turns DBSCAN labels into index lists, one per cluster, in label order.
func Group(labels []int) [][]int {
	var groups [][]int
	for i, l := range labels {
		if l < 0 {
			continue
		}
		for len(groups) <= l {
			groups = append(groups, nil)
		}
		groups[l] = append(groups[l], i)
	}
	return groups
}

// Local clusters in process. It satisfies the service Clusterer contract.
type Local struct{}

func (Local) Cluster(ctx context.Context, points []domain.Point, epsM float64, minPts int) ([]int, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return DBSCAN(points, epsM, minPts), nil
}
