package services

import (
	"context"
	"strings"
)

// ─── Destination Resolver ─────────────────────────────────────────────────────
//
// Turns a free-text destination ("Riyadh, Saudi Arabia") into the comma-joined
// hotel-code list a Search call needs. The three lookups are inherently serial:
// each depends on the code resolved by the previous one.

// maxSearchHotelCodes bounds the Search fan-out; the upstream API rate-limits
// large code lists.
const maxSearchHotelCodes = 20

type Resolver struct {
	api *TravzillaClient
}

func NewResolver(api *TravzillaClient) *Resolver {
	return &Resolver{api: api}
}

func GetResolver() *Resolver {
	return NewResolver(travzillaClient)
}

// ResolvedDestination is the outcome of a full country → city → hotel-codes
// walk.
type ResolvedDestination struct {
	Country    Country
	City       City
	HotelCodes []string
}

// SearchCodes returns the hotel codes comma-joined, as SearchRequest wants
// them.
func (d *ResolvedDestination) SearchCodes() string {
	return strings.Join(d.HotelCodes, ",")
}

// Resolve walks CountryList → CityList → HotelCodeList for a destination
// formatted as "<City>, <Country>". Each stage that finds no candidate fails
// with a DestinationNotFoundError naming that stage.
func (r *Resolver) Resolve(ctx context.Context, destination string) (*ResolvedDestination, error) {
	cityQuery, countryQuery := splitDestination(destination)

	countries, err := r.api.CountryList(ctx)
	if err != nil {
		return nil, err
	}
	country, ok := matchCountry(countries, countryQuery)
	if !ok {
		return nil, &DestinationNotFoundError{Stage: "country", Query: countryQuery}
	}

	cities, err := r.api.CityList(ctx, country.Code)
	if err != nil {
		return nil, err
	}
	city, ok := matchCity(cities, cityQuery)
	if !ok {
		return nil, &DestinationNotFoundError{Stage: "city", Query: cityQuery}
	}

	listings, err := r.api.HotelCodeList(ctx, country.Code, city.CityCode)
	if err != nil {
		return nil, err
	}

	// The hotel-code endpoint is known to over-return hotels outside the
	// requested city; keeping only exact CityCode matches is mandatory.
	var codes []string
	if listings != nil {
		for _, h := range listings.Hotels {
			if h.CityCode == city.CityCode {
				codes = append(codes, h.HotelCode)
			}
		}
	}
	if len(codes) == 0 {
		return nil, &DestinationNotFoundError{Stage: "hotels", Query: destination}
	}

	if len(codes) > maxSearchHotelCodes {
		codes = codes[:maxSearchHotelCodes]
	}

	return &ResolvedDestination{Country: country, City: city, HotelCodes: codes}, nil
}

// splitDestination splits at the last comma: the trailing segment is the
// country, the rest is the city. Without a comma the whole string is tried as
// both.
func splitDestination(destination string) (city, country string) {
	idx := strings.LastIndex(destination, ",")
	if idx < 0 {
		trimmed := strings.TrimSpace(destination)
		return trimmed, trimmed
	}
	return strings.TrimSpace(destination[:idx]), strings.TrimSpace(destination[idx+1:])
}

// nameMatches is the bidirectional case-insensitive substring rule: a
// candidate matches when either name contains the other.
func nameMatches(name, query string) bool {
	if name == "" || query == "" {
		return false
	}
	name = strings.ToLower(name)
	query = strings.ToLower(query)
	return strings.Contains(name, query) || strings.Contains(query, name)
}

func matchCountry(resp *CountryListResponse, query string) (Country, bool) {
	if resp == nil {
		return Country{}, false
	}
	for _, c := range resp.CountryList {
		if nameMatches(c.Name, query) {
			return c, true
		}
	}
	return Country{}, false
}

func matchCity(resp *CityListResponse, query string) (City, bool) {
	if resp == nil {
		return City{}, false
	}
	for _, c := range resp.CityList {
		if nameMatches(c.CityName, query) {
			return c, true
		}
	}
	return City{}, false
}
