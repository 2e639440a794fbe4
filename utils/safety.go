package utils

import (
	"fmt"
	"strings"
)

// WarningSeverity categorizes how serious the flag is.
type WarningSeverity string

const (
	Info    WarningSeverity = "info"
	Caution WarningSeverity = "caution"
	High    WarningSeverity = "high"
)

// Warning is a structured finding shown next to a member's portion.
type Warning struct {
	Code     string          `json:"code"`
	Severity WarningSeverity `json:"severity"`
	Message  string          `json:"message"`
	Item     string          `json:"item"`
	Match    string          `json:"match"`
}

// PortionProfile is what the checks need to know about a member.
type PortionProfile struct {
	Allergies     []string
	DislikedFoods []string
}

// AssessPortion flags planned item names that mention one of the member's
// allergies or disliked foods (case-insensitive substring match). At most
// one warning per item, allergies first.
func AssessPortion(items []string, p PortionProfile) []Warning {
	warnings := []Warning{}
	for _, item := range items {
		name := strings.ToLower(item)
		if a := firstMention(name, p.Allergies); a != "" {
			warnings = append(warnings, Warning{
				Code:     "ALLERGEN",
				Severity: High,
				Message:  fmt.Sprintf("%s may contain %s (listed allergy)", item, a),
				Item:     item,
				Match:    a,
			})
			continue
		}
		if d := firstMention(name, p.DislikedFoods); d != "" {
			warnings = append(warnings, Warning{
				Code:     "DISLIKED",
				Severity: Info,
				Message:  fmt.Sprintf("%s is on the disliked list (%s)", item, d),
				Item:     item,
				Match:    d,
			})
		}
	}
	return warnings
}

func firstMention(name string, terms []string) string {
	for _, t := range terms {
		t = strings.TrimSpace(t)
		if t != "" && strings.Contains(name, strings.ToLower(t)) {
			return t
		}
	}
	return ""
}
