package conjunction

// debrisObject describes one catalogued object in the synthetic debris field.
type debrisObject struct {
	name           string
	altitudeKM     float64
	inclinationDeg float64
}

// debrisField is a small fixed catalogue of well-known debris sources and
// rocket bodies near the ISS altitude band.
var debrisField = []debrisObject{
	{name: "FENGYUN-1C DEB", altitudeKM: 850, inclinationDeg: 98.5},
	{name: "COSMOS-2251 DEB", altitudeKM: 790, inclinationDeg: 74.0},
	{name: "IRIDIUM-33 DEB", altitudeKM: 770, inclinationDeg: 86.4},
	{name: "ATLAS V R/B", altitudeKM: 420, inclinationDeg: 51.7},
	{name: "STARLINK DEB", altitudeKM: 550, inclinationDeg: 53.0},
	{name: "CZ-2C R/B", altitudeKM: 430, inclinationDeg: 49.5},
}
