package domain

// Coords is an optional position used to bias place and distance lookups.
type Coords struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Place is a candidate location returned by a place search.
// URI is empty when the provider did not supply a link.
type Place struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	URI     string `json:"uri,omitempty"`
}

// SearchResponse is the result of a place search. It is always a valid value:
// failures are described in Summary and leave Places empty.
type SearchResponse struct {
	Summary string  `json:"summary"`
	Places  []Place `json:"places"`
}

// DistanceResult is the one-way driving distance between two places.
// Km <= 0 means the provider found no route.
type DistanceResult struct {
	Km        float64 `json:"km"`
	SourceURI string  `json:"sourceUri,omitempty"`
}
