// Package preference models the taste questionnaire and its match score.
package preference

import (
	"fmt"
)

// Group names a question of the questionnaire.
type Group string

const (
	GroupAmbiance  Group = "ambiance"
	GroupFocus     Group = "focus"
	GroupPrice     Group = "price"
	GroupPractical Group = "practical"
	GroupDietary   Group = "dietary"
)

// Option is one answer of a group.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Options lists the answers of every group.
var Options = map[Group][]Option{
	GroupAmbiance: {
		{Value: "quiet", Label: "조용한"},
		{Value: "lively", Label: "활기찬"},
		{Value: "family", Label: "가족"},
	},
	GroupFocus: {
		{Value: "taste", Label: "맛"},
		{Value: "atmosphere", Label: "분위기"},
		{Value: "service", Label: "서비스"},
	},
	GroupPrice: {
		{Value: "budget", Label: "가성비"},
		{Value: "mid-range", Label: "보통"},
		{Value: "premium", Label: "고급"},
	},
	GroupPractical: {
		{Value: "reservation", Label: "예약가능"},
		{Value: "parking", Label: "주차가능"},
		{Value: "outdoor", Label: "야외석"},
	},
	GroupDietary: {
		{Value: "vegetarian", Label: "채식"},
		{Value: "gluten-free", Label: "글루텐프리"},
		{Value: "halal", Label: "할랄"},
	},
}

const (
	singleChoicePoints = 20
	multiChoicePoints  = 10
	maxScore           = 100
)

// Preferences holds the answers. Ambiance, Focus and Price take one value
// or none; Practical and Dietary take any number.
type Preferences struct {
	Ambiance  string   `json:"ambiance,omitempty"`
	Focus     string   `json:"focus,omitempty"`
	Price     string   `json:"price,omitempty"`
	Practical []string `json:"practical"`
	Dietary   []string `json:"dietary"`
}

// Toggle returns p with value toggled in group. Single-choice groups switch
// between value and none; multi-choice groups add or remove value.
func (p Preferences) Toggle(group Group, value string) (Preferences, error) {
	if !validOption(group, value) {
		return p, fmt.Errorf("unknown %s option %q", group, value)
	}

	next := p
	next.Practical = append([]string{}, p.Practical...)
	next.Dietary = append([]string{}, p.Dietary...)

	switch group {
	case GroupAmbiance:
		next.Ambiance = toggleSingle(p.Ambiance, value)
	case GroupFocus:
		next.Focus = toggleSingle(p.Focus, value)
	case GroupPrice:
		next.Price = toggleSingle(p.Price, value)
	case GroupPractical:
		next.Practical = toggleMulti(next.Practical, value)
	case GroupDietary:
		next.Dietary = toggleMulti(next.Dietary, value)
	}
	return next, nil
}

// MatchScore is 20 per answered single-choice group plus 10 per
// multi-choice answer, capped at 100.
func (p Preferences) MatchScore() int {
	score := 0
	for _, v := range []string{p.Ambiance, p.Focus, p.Price} {
		if v != "" {
			score += singleChoicePoints
		}
	}
	score += (len(p.Practical) + len(p.Dietary)) * multiChoicePoints
	if score > maxScore {
		return maxScore
	}
	return score
}

// Validate checks every answer against Options.
func (p Preferences) Validate() error {
	singles := map[Group]string{GroupAmbiance: p.Ambiance, GroupFocus: p.Focus, GroupPrice: p.Price}
	for group, v := range singles {
		if v != "" && !validOption(group, v) {
			return fmt.Errorf("unknown %s option %q", group, v)
		}
	}
	for _, v := range p.Practical {
		if !validOption(GroupPractical, v) {
			return fmt.Errorf("unknown %s option %q", GroupPractical, v)
		}
	}
	for _, v := range p.Dietary {
		if !validOption(GroupDietary, v) {
			return fmt.Errorf("unknown %s option %q", GroupDietary, v)
		}
	}
	return nil
}

func validOption(group Group, value string) bool {
	for _, o := range Options[group] {
		if o.Value == value {
			return true
		}
	}
	return false
}

func toggleSingle(current, value string) string {
	if current == value {
		return ""
	}
	return value
}

func toggleMulti(values []string, value string) []string {
	for i, v := range values {
		if v == value {
			return append(values[:i], values[i+1:]...)
		}
	}
	return append(values, value)
}
