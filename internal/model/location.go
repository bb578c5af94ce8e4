package model

// Coordinates is a geocoded point as returned by the geocoding service.
// Values are kept as the decimal strings the service sent.
type Coordinates struct {
	Latitude  string `json:"lat"`
	Longitude string `json:"lon"`
}

// LatLon renders the point as "lat,lon".
func (c Coordinates) LatLon() string {
	return c.Latitude + "," + c.Longitude
}
