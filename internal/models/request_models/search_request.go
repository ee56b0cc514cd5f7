package request_models

// SearchRequest is the body of POST /api/search. Pointer fields distinguish
// "not sent" from zero so defaults can be applied.
type SearchRequest struct {
	Lat         *float64 `json:"lat" binding:"required,gte=-90,lte=90"`
	Lng         *float64 `json:"lng" binding:"required,gte=-180,lte=180"`
	Radius      *int     `json:"radius" binding:"omitempty,gte=100,lte=5000"`
	OpenNow     *bool    `json:"openNow"`
	Keyword     string   `json:"keyword" binding:"max=60"`
	MinRating   *float64 `json:"minRating" binding:"omitempty,gte=0,lte=5"`
	PriceLevels []int    `json:"priceLevels" binding:"omitempty,max=5,dive,gte=0,lte=4"`
	Page        *int     `json:"page" binding:"omitempty,gte=1"`
	PageSize    *int     `json:"pageSize" binding:"omitempty,gte=1,lte=20"`
	Max         *int     `json:"max" binding:"omitempty,gte=1,lte=60"`
	Mode        string   `json:"mode" binding:"omitempty,oneof=walking driving"`
}

type ResolveRequest struct {
	Query string `form:"q" binding:"required,min=2,max=100"`
}
