package model

import (
	"fmt"
	"strconv"
	"strings"
)

// Category is the food category of a restaurant. The set of categories is closed.
type Category string

const (
	CategoryKorean   Category = "한식"
	CategoryJapanese Category = "일식"
	CategoryChinese  Category = "중식"
	CategoryWestern  Category = "양식"
	CategoryCafe     Category = "카페"
	CategorySnack    Category = "분식"
)

// Categories lists every known category in display order.
var Categories = []Category{
	CategoryKorean,
	CategoryJapanese,
	CategoryChinese,
	CategoryWestern,
	CategoryCafe,
	CategorySnack,
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Feature is an amenity tag drawn from a closed vocabulary.
type Feature string

const (
	FeatureReservation Feature = "예약 가능"
	FeatureParking     Feature = "주차 가능"
	FeatureDelivery    Feature = "배달 가능"
	FeatureTakeout     Feature = "포장 가능"
	FeatureGroupSeats  Feature = "단체석"
	FeatureOutdoor     Feature = "야외석"
	FeaturePetFriendly Feature = "반려동물 동반"
	FeatureWifi        Feature = "무선 인터넷"
	FeatureWeekend     Feature = "주말 영업"
	FeatureLateNight   Feature = "심야 영업"
)

// Features lists the feature vocabulary in display order.
var Features = []Feature{
	FeatureReservation,
	FeatureParking,
	FeatureDelivery,
	FeatureTakeout,
	FeatureGroupSeats,
	FeatureOutdoor,
	FeaturePetFriendly,
	FeatureWifi,
	FeatureWeekend,
	FeatureLateNight,
}

// Valid reports whether f belongs to the feature vocabulary.
func (f Feature) Valid() bool {
	for _, known := range Features {
		if f == known {
			return true
		}
	}
	return false
}

// PriceTier is an ordinal price level from 1 ($) to 4 ($$$$).
type PriceTier int

const (
	MinPriceTier PriceTier = 1
	MaxPriceTier PriceTier = 4
)

// String renders the tier as dollar signs, e.g. "$$".
func (p PriceTier) String() string {
	if p < MinPriceTier {
		return ""
	}
	return strings.Repeat("$", int(p))
}

// ParsePriceTier accepts either the dollar form ("$$") or a plain number ("2").
func ParsePriceTier(s string) (PriceTier, error) {
	s = strings.TrimSpace(s)
	if s != "" && strings.Trim(s, "$") == "" {
		return PriceTier(len(s)), nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid price tier %q", s)
	}
	return PriceTier(n), nil
}

// MarshalJSON encodes the tier in its dollar form.
func (p PriceTier) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(p.String())), nil
}

// UnmarshalJSON decodes "$$"-style strings as well as bare numbers.
func (p *PriceTier) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if unquoted, err := strconv.Unquote(raw); err == nil {
		raw = unquoted
	}
	tier, err := ParsePriceTier(raw)
	if err != nil {
		return err
	}
	*p = tier
	return nil
}

// Coordinates is a latitude/longitude pair.
type Coordinates struct {
	Lat float64 `json:"lat" validate:"latitude"`
	Lng float64 `json:"lng" validate:"longitude"`
}

// Restaurant is a read-only restaurant record from the fixture data.
type Restaurant struct {
	ID          int         `json:"id" validate:"required,gt=0"`
	Name        string      `json:"name" validate:"required"`
	Category    Category    `json:"type" validate:"category"`
	Rating      float64     `json:"rating" validate:"gte=0,lte=5"`
	ReviewCount int         `json:"reviews" validate:"gte=0"`
	ReviewTexts []string    `json:"review_texts"`
	Image       string      `json:"image" validate:"omitempty,url"`
	Location    string      `json:"location"`
	Price       PriceTier   `json:"price" validate:"gte=1,lte=4"`
	Distance    string      `json:"distance"`
	Coordinates Coordinates `json:"coordinates"`
	Features    []Feature   `json:"features" validate:"dive,feature"`
}

// HasFeature reports whether the restaurant carries the given feature tag.
func (r Restaurant) HasFeature(f Feature) bool {
	for _, have := range r.Features {
		if have == f {
			return true
		}
	}
	return false
}

// DistanceKm parses the precomputed distance string ("0.3km", "850m").
// The second return value is false when the string cannot be interpreted.
func (r Restaurant) DistanceKm() (float64, bool) {
	s := strings.ToLower(strings.TrimSpace(r.Distance))
	switch {
	case strings.HasSuffix(s, "km"):
		v, err := strconv.ParseFloat(strings.TrimSuffix(s, "km"), 64)
		return v, err == nil
	case strings.HasSuffix(s, "m"):
		v, err := strconv.ParseFloat(strings.TrimSuffix(s, "m"), 64)
		return v / 1000, err == nil
	default:
		v, err := strconv.ParseFloat(s, 64)
		return v, err == nil
	}
}

// CategoryCount pairs a category with the number of listed restaurants shown next to it.
type CategoryCount struct {
	Name  Category `json:"name" validate:"category"`
	Icon  string   `json:"icon,omitempty"`
	Count int      `json:"count" validate:"gte=0"`
}
