package response_models

type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Candidate is a dining place as returned by the places provider.
// Optional fields are pointers so that "unknown" survives into the JSON as null.
type Candidate struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Address    string     `json:"address"`
	Location   Coordinate `json:"location"`
	Rating     *float64   `json:"rating"`
	PriceLevel *int       `json:"priceLevel"`
	Phone      string     `json:"phone,omitempty"`
	Website    string     `json:"website,omitempty"`
	MapsURL    string     `json:"mapsUrl,omitempty"`
	IsOpenNow  *bool      `json:"isOpenNow"`
}

type TravelEstimate struct {
	DistanceText string `json:"distanceText"`
	DurationText string `json:"durationText"`
	Seconds      int    `json:"seconds"`
}

type ResultRecord struct {
	Candidate
	Travel *TravelEstimate `json:"travel"`
}
