package response_models

type TravelMode string

const (
	TravelModeWalking TravelMode = "walking"
	TravelModeDriving TravelMode = "driving"
)

type SearchResponse struct {
	Total    int            `json:"total"`
	Page     int            `json:"page"`
	PageSize int            `json:"pageSize"`
	Count    int            `json:"count"`
	Results  []ResultRecord `json:"results"`
	Origin   Coordinate     `json:"origin"`
	Mode     TravelMode     `json:"mode"`
}

type ResolveResponse struct {
	OK      bool     `json:"ok"`
	Message string   `json:"message,omitempty"`
	Name    string   `json:"name,omitempty"`
	Lat     *float64 `json:"lat,omitempty"`
	Lng     *float64 `json:"lng,omitempty"`
}
