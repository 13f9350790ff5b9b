// Package geo holds the spherical math and the in-process density clustering
// used when the spatial store does not cluster for us.
package geo

import (
	"math"

	"zonewatch/internal/domain"
)

const earthRadiusM = 6371008.8

// Distance is the haversine distance between a and b in meters.
func Distance(a, b domain.Point) float64 {
	dLat := deg2rad(b.Lat - a.Lat)
	dLng := deg2rad(b.Lng - a.Lng)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(deg2rad(a.Lat))*math.Cos(deg2rad(b.Lat))*
			math.Sin(dLng/2)*math.Sin(dLng/2)

	return 2 * earthRadiusM * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// Within reports whether p lies inside c (boundary included).
func Within(p domain.Point, c domain.Circle) bool {
	return Distance(p, c.Center) <= c.RadiusM
}

// Centroid is the arithmetic mean of the points. Clusters are a few hundred
// meters wide, so the planar mean is within centimeters of the true centroid.
func Centroid(points []domain.Point) domain.Point {
	if len(points) == 0 {
		return domain.Point{}
	}
	var lat, lng float64
	for _, p := range points {
		lat += p.Lat
		lng += p.Lng
	}
	n := float64(len(points))
	return domain.Point{Lat: lat / n, Lng: lng / n}
}

// Offset moves p by north/east meters. Used by tests and seeding tools.
func Offset(p domain.Point, northM, eastM float64) domain.Point {
	dLat := northM / earthRadiusM
	dLng := eastM / (earthRadiusM * math.Cos(deg2rad(p.Lat)))
	return domain.Point{
		Lat: p.Lat + rad2deg(dLat),
		Lng: p.Lng + rad2deg(dLng),
	}
}

func deg2rad(deg float64) float64 {
	return deg * math.Pi / 180.0
}

func rad2deg(rad float64) float64 {
	return rad * 180.0 / math.Pi
}
