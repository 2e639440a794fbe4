package services

import (
	"sort"
	"strconv"
	"strings"

	"familydiet/models"
)

type MemberProgress struct {
	Member               models.FamilyMember `json:"member"`
	Consumed             bool                `json:"consumed"`
	CompletionPercentage int                 `json:"completionPercentage"`
}

type MealProgress struct {
	Meal                 models.MealSlot           `json:"meal"`
	ConsumptionEntries   []models.ConsumptionEntry `json:"consumptionEntries"`
	CompletionPercentage int                       `json:"completionPercentage"`
	FamilyMemberProgress []MemberProgress          `json:"familyMemberProgress"`
}

// AggregateMealProgress builds one MealProgress per meal. Meal-level
// completion counts members that have an entry at all; the per-member value
// is the percentage stored on that entry. Entries for unknown members are
// ignored.
func AggregateMealProgress(meals []models.MealSlot, members []models.FamilyMember, entries []models.ConsumptionEntry) []MealProgress {
	out := make([]MealProgress, 0, len(meals))
	for _, meal := range meals {
		mealConsumption := make([]models.ConsumptionEntry, 0)
		for _, e := range entries {
			if e.MealSlotID == meal.ID {
				mealConsumption = append(mealConsumption, e)
			}
		}

		progress := make([]MemberProgress, 0, len(members))
		engaged := 0
		for _, m := range members {
			mp := MemberProgress{Member: m}
			if entry, _ := FindConsumptionEntry(mealConsumption, meal.ID, m.ID); entry != nil {
				mp.Consumed = true
				mp.CompletionPercentage = entry.CompletionPercentage
				engaged++
			}
			progress = append(progress, mp)
		}

		out = append(out, MealProgress{
			Meal:                 meal,
			ConsumptionEntries:   mealConsumption,
			CompletionPercentage: CalculateCompliancePercentage(engaged, len(members)),
			FamilyMemberProgress: progress,
		})
	}
	return out
}

// FindConsumptionEntry returns the first entry for (mealID, memberID) and how
// many matched. More than one match means the unique key was bypassed; callers
// keep the first.
func FindConsumptionEntry(entries []models.ConsumptionEntry, mealID, memberID string) (*models.ConsumptionEntry, int) {
	var first *models.ConsumptionEntry
	n := 0
	for i := range entries {
		if entries[i].MealSlotID == mealID && entries[i].FamilyMemberID == memberID {
			if first == nil {
				e := entries[i]
				first = &e
			}
			n++
		}
	}
	return first, n
}

// MinutesSinceMidnight parses HH:MM. Missing or malformed times are 0.
func MinutesSinceMidnight(hhmm string) int {
	parts := strings.SplitN(strings.TrimSpace(hhmm), ":", 2)
	if len(parts) != 2 {
		return 0
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0
	}
	return h*60 + m
}

// SortMealsByTime returns a stably sorted copy.
func SortMealsByTime(meals []models.MealSlot) []models.MealSlot {
	out := append([]models.MealSlot(nil), meals...)
	sort.SliceStable(out, func(i, j int) bool {
		return MinutesSinceMidnight(out[i].Time) < MinutesSinceMidnight(out[j].Time)
	})
	return out
}

func SortProgressTimeline(progress []MealProgress) []MealProgress {
	out := append([]MealProgress(nil), progress...)
	sort.SliceStable(out, func(i, j int) bool {
		return MinutesSinceMidnight(out[i].Meal.Time) < MinutesSinceMidnight(out[j].Meal.Time)
	})
	return out
}

func MemberPortion(meal models.MealSlot, memberID string) (models.FamilyPortion, bool) {
	for _, p := range meal.FamilyPortions {
		if p.MemberID == memberID {
			return p, true
		}
	}
	return models.FamilyPortion{}, false
}

// ExpandMemberMeal joins a member's planned items with the consumed items of
// their entry. Items are joined by name, so renaming a planned item orphans
// earlier tracking for it.
func ExpandMemberMeal(meal models.MealSlot, memberID string, entry *models.ConsumptionEntry) []models.ConsumedItem {
	portion, _ := MemberPortion(meal, memberID)

	tracked := map[string]models.ConsumedItem{}
	if entry != nil {
		for _, ci := range entry.ConsumedItems {
			if _, seen := tracked[ci.Name]; !seen {
				tracked[ci.Name] = ci
			}
		}
	}

	out := make([]models.ConsumedItem, 0, len(portion.Items))
	for _, p := range portion.Items {
		if ci, ok := tracked[p.Name]; ok {
			out = append(out, ci)
			continue
		}
		out = append(out, models.ConsumedItem{
			Name:            p.Name,
			PlannedQuantity: FormatPlannedQuantity(p),
			ActualQuantity:  "",
			Consumed:        false,
			Notes:           "",
		})
	}
	return out
}
