package flight

import "math"

// metersPerDegreeLat is the equirectangular approximation used to convert
// local displacement to geographic coordinates. Fine at model-rocket scales.
const metersPerDegreeLat = 111320.0

// LocalToGeo converts an east/north displacement from the site into a
// geographic coordinate. Longitude degrees shrink with cos(latitude).
func LocalToGeo(site Coordinate, east, north float64) Coordinate {
	return Coordinate{
		Latitude:  site.Latitude + north/metersPerDegreeLat,
		Longitude: site.Longitude + east/(metersPerDegreeLat*math.Cos(site.Latitude*math.Pi/180)),
	}
}

// DistanceBearing returns the horizontal distance in m and the bearing in
// degrees from north (clockwise) of a local displacement.
func DistanceBearing(east, north float64) (distance, bearing float64) {
	distance = math.Hypot(east, north)
	bearing = math.Atan2(east, north) * 180 / math.Pi
	if bearing < 0 {
		bearing += 360
	}
	return distance, bearing
}
