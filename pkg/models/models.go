// Package models holds the plain-data records shared by the index and
// storage layers.
package models

import "github.com/kass/go-quake-geo/pkg/geo"

// Site is an identified point of interest for hazard computation: a
// station, a grid node, or any location at which ground motion is
// evaluated.
type Site struct {
	ID    string  `json:"id"`
	Lat   float64 `json:"lat"`
	Lon   float64 `json:"lon"`
	Depth float64 `json:"depth,omitempty"`
}

// Point converts this site's coordinates to a validated geo.Point.
func (s Site) Point() (geo.Point, error) {
	return geo.NewPoint(s.Lat, s.Lon, s.Depth)
}
