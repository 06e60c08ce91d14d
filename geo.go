package jigsawstack

import (
	"context"
	"net/http"

	"github.com/jigsawstack/jigsawstack-go/httpclient"
)

const geohashDecodePath = "/geo/geohash/decode"

// Geo wraps the location endpoints. Every call is a GET with params in the
// query string. Coordinates are passed as strings.
type Geo struct {
	service
}

type Geoloc struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
}

type GeoRegion struct {
	Name           string `json:"name"`
	RegionCode     string `json:"region_code"`
	RegionCodeFull string `json:"region_code_full"`
}

type GeoCountry struct {
	Name              string `json:"name"`
	CountryCode       string `json:"country_code"`
	CountryCodeAlpha3 string `json:"country_code_alpha_3"`
}

type GeoSearchResult struct {
	Type                 string         `json:"type"`
	FullAddress          string         `json:"full_address"`
	Name                 string         `json:"name"`
	PlaceFormatted       string         `json:"place_formatted"`
	Postcode             string         `json:"postcode"`
	Place                string         `json:"place"`
	Region               GeoRegion      `json:"region"`
	Country              GeoCountry     `json:"country"`
	Language             string         `json:"language"`
	Geoloc               Geoloc         `json:"geoloc"`
	POICategory          []string       `json:"poi_category"`
	AdditionalProperties map[string]any `json:"additional_properties"`
}

type CountryResult struct {
	CountryCode    string  `json:"country_code"`
	Name           string  `json:"name"`
	ISO2           string  `json:"iso2"`
	ISO3           string  `json:"iso3"`
	Capital        string  `json:"capital"`
	PhoneCode      string  `json:"phone_code"`
	Region         string  `json:"region"`
	Subregion      string  `json:"subregion"`
	CurrencyCode   string  `json:"currency_code"`
	CurrencyName   string  `json:"currency_name"`
	CurrencySymbol string  `json:"currency_symbol"`
	Geoloc         Geoloc  `json:"geoloc"`
	TLD            string  `json:"tld"`
	Native         string  `json:"native"`
	Emoji          string  `json:"emoji"`
	EmojiU         string  `json:"emojiU"`
	Latitude       float64 `json:"latitude"`
	Longitude      float64 `json:"longitude"`
}

type StateResult struct {
	StateCode   string         `json:"state_code"`
	Name        string         `json:"name"`
	CountryCode string         `json:"country_code"`
	Country     *CountryResult `json:"country,omitempty"`
}

type CityResult struct {
	StateCode string       `json:"state_code"`
	Name      string       `json:"name"`
	CityCode  string       `json:"city_code"`
	State     *StateResult `json:"state,omitempty"`
}

type GeoSearchParams struct {
	SearchValue  string `json:"search_value"            validate:"required"`
	CountryCode  string `json:"country_code,omitempty"`
	ProximityLat string `json:"proximity_lat,omitempty" validate:"omitempty,latitude"`
	ProximityLng string `json:"proximity_lng,omitempty" validate:"omitempty,longitude"`
	Types        string `json:"types,omitempty"`
}

type GeoSearchResponse struct {
	BaseResponse

	Data []GeoSearchResult `json:"data"`
}

func (g *Geo) Search(
	ctx context.Context,
	params *GeoSearchParams,
	opts ...httpclient.RequestOption,
) (*GeoSearchResponse, error) {
	return call[GeoSearchResponse](ctx, g.service, http.MethodGet, "/geo/search", params, opts...)
}

type GeocodeParams struct {
	SearchValue  string `json:"search_value,omitempty"`
	Lat          string `json:"lat,omitempty"           validate:"omitempty,latitude"`
	Lng          string `json:"lng,omitempty"           validate:"omitempty,longitude"`
	CountryCode  string `json:"country_code,omitempty"`
	ProximityLat string `json:"proximity_lat,omitempty" validate:"omitempty,latitude"`
	ProximityLng string `json:"proximity_lng,omitempty" validate:"omitempty,longitude"`
	Types        string `json:"types,omitempty"`
	Limit        int    `json:"limit,omitempty"         validate:"omitempty,gte=1"`
}

// GeoPointResponse is a single coordinate pair.
type GeoPointResponse struct {
	BaseResponse

	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Geocode resolves an address to coordinates, or coordinates to a place.
func (g *Geo) Geocode(
	ctx context.Context,
	params *GeocodeParams,
	opts ...httpclient.RequestOption,
) (*GeoPointResponse, error) {
	return call[GeoPointResponse](ctx, g.service, http.MethodGet, "/geo/geocode", params, opts...)
}

type GeoCityParams struct {
	CountryCode string `json:"country_code,omitempty"`
	CityCode    string `json:"city_code,omitempty"`
	StateCode   string `json:"state_code,omitempty"`
	SearchValue string `json:"search_value,omitempty"`
	Lat         string `json:"lat,omitempty"          validate:"omitempty,latitude"`
	Lng         string `json:"lng,omitempty"          validate:"omitempty,longitude"`
	Limit       int    `json:"limit,omitempty"        validate:"omitempty,gte=1"`
}

type GeoCityResponse struct {
	BaseResponse

	City []CityResult `json:"city"`
}

func (g *Geo) City(ctx context.Context, params *GeoCityParams, opts ...httpclient.RequestOption) (*GeoCityResponse, error) {
	return call[GeoCityResponse](ctx, g.service, http.MethodGet, "/geo/city", params, opts...)
}

type GeoCountryParams struct {
	CountryCode  string `json:"country_code,omitempty"`
	CityCode     string `json:"city_code,omitempty"`
	SearchValue  string `json:"search_value,omitempty"`
	Lat          string `json:"lat,omitempty"           validate:"omitempty,latitude"`
	Lng          string `json:"lng,omitempty"           validate:"omitempty,longitude"`
	Limit        int    `json:"limit,omitempty"         validate:"omitempty,gte=1"`
	CurrencyCode string `json:"currency_code,omitempty"`
}

type GeoCountryResponse struct {
	BaseResponse

	Country []CountryResult `json:"country"`
}

func (g *Geo) Country(
	ctx context.Context,
	params *GeoCountryParams,
	opts ...httpclient.RequestOption,
) (*GeoCountryResponse, error) {
	return call[GeoCountryResponse](ctx, g.service, http.MethodGet, "/geo/country", params, opts...)
}

type GeoStateParams struct {
	CountryCode string `json:"country_code,omitempty"`
	StateCode   string `json:"state_code,omitempty"`
	SearchValue string `json:"search_value,omitempty"`
	Lat         string `json:"lat,omitempty"          validate:"omitempty,latitude"`
	Lng         string `json:"lng,omitempty"          validate:"omitempty,longitude"`
	Limit       int    `json:"limit,omitempty"        validate:"omitempty,gte=1"`
}

type GeoStateResponse struct {
	BaseResponse

	State []StateResult `json:"state"`
}

func (g *Geo) State(ctx context.Context, params *GeoStateParams, opts ...httpclient.RequestOption) (*GeoStateResponse, error) {
	return call[GeoStateResponse](ctx, g.service, http.MethodGet, "/geo/state", params, opts...)
}

// GeoDistanceParams measures between two points. Unit is "K" for kilometres
// or "N" for nautical miles; the API defaults to miles.
type GeoDistanceParams struct {
	Unit string `json:"unit,omitempty" validate:"omitempty,oneof=K N"`
	Lat1 string `json:"lat1"           validate:"required,latitude"`
	Lng1 string `json:"lng1"           validate:"required,longitude"`
	Lat2 string `json:"lat2"           validate:"required,latitude"`
	Lng2 string `json:"lng2"           validate:"required,longitude"`
}

type GeoDistanceResponse struct {
	BaseResponse

	Distance float64 `json:"distance"`
}

func (g *Geo) Distance(
	ctx context.Context,
	params *GeoDistanceParams,
	opts ...httpclient.RequestOption,
) (*GeoDistanceResponse, error) {
	return call[GeoDistanceResponse](ctx, g.service, http.MethodGet, "/geo/distance", params, opts...)
}

type GeoTimezoneParams struct {
	Lat         string `json:"lat"                    validate:"required,latitude"`
	Lng         string `json:"lng"                    validate:"required,longitude"`
	CityCode    string `json:"city_code,omitempty"`
	CountryCode string `json:"country_code,omitempty"`
}

type GeoTimezoneResponse struct {
	BaseResponse

	Timezone map[string]any `json:"timezone"`
}

func (g *Geo) Timezone(
	ctx context.Context,
	params *GeoTimezoneParams,
	opts ...httpclient.RequestOption,
) (*GeoTimezoneResponse, error) {
	return call[GeoTimezoneResponse](ctx, g.service, http.MethodGet, "/geo/timezone", params, opts...)
}

type GeohashParams struct {
	Lat       string `json:"lat"                 validate:"required,latitude"`
	Lng       string `json:"lng"                 validate:"required,longitude"`
	Precision int    `json:"precision,omitempty" validate:"omitempty,gte=1,lte=12"`
}

type GeohashResponse struct {
	BaseResponse

	Geohash string `json:"geohash"`
}

func (g *Geo) Geohash(ctx context.Context, params *GeohashParams, opts ...httpclient.RequestOption) (*GeohashResponse, error) {
	return call[GeohashResponse](ctx, g.service, http.MethodGet, "/geo/geohash", params, opts...)
}

func (g *Geo) GeohashDecode(ctx context.Context, key string, opts ...httpclient.RequestOption) (*GeoPointResponse, error) {
	if err := requireValue("key", key); err != nil {
		return nil, err
	}

	return call[GeoPointResponse](ctx, g.service, http.MethodGet, resourcePath(geohashDecodePath, key),
		map[string]any{}, opts...)
}
