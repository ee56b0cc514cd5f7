package services

import (
	"context"
	"strings"

	"nearbite/internal/models/request_models"
	"nearbite/internal/models/response_models"
	"nearbite/pkg/utils"
)

const ResolveNoMatch = "NO_MATCH"

type ResolveServiceInterface interface {
	Resolve(ctx context.Context, query string) (response_models.ResolveResponse, error)
}

type ResolveService struct {
	places PlacesProvider
}

func NewResolveService(places PlacesProvider) *ResolveService {
	return &ResolveService{places: places}
}

// Resolve turns a place name into a coordinate using the provider's first hit.
func (r *ResolveService) Resolve(ctx context.Context, query string) (response_models.ResolveResponse, error) {
	query = strings.TrimSpace(query)
	if err := utils.ValidateStruct(request_models.ResolveRequest{Query: query}); err != nil {
		return response_models.ResolveResponse{}, err
	}

	place, err := r.places.FindPlace(ctx, query)
	if err != nil {
		return response_models.ResolveResponse{}, err
	}
	if place == nil {
		return response_models.ResolveResponse{OK: false, Message: ResolveNoMatch}, nil
	}

	lat, lng := place.Location.Lat, place.Location.Lng
	return response_models.ResolveResponse{
		OK:   true,
		Name: place.Name,
		Lat:  &lat,
		Lng:  &lng,
	}, nil
}
