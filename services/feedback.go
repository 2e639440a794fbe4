package services

import (
	"math"

	"familydiet/models"
)

type MemberFeedback struct {
	Member               models.FamilyMember        `json:"member"`
	MealsPlanned         int                        `json:"mealsPlanned"`
	MealsTracked         int                        `json:"mealsTracked"`
	EngagementPercentage int                        `json:"engagementPercentage"`
	AverageCompletion    int                        `json:"averageCompletion"`
	SkippedItems         int                        `json:"skippedItems"`
	WasteByReason        map[models.WasteReason]int `json:"wasteByReason"`
}

type DailyFeedback struct {
	Date                 string           `json:"date"`
	Members              []MemberFeedback `json:"members"`
	MealsPlanned         int              `json:"mealsPlanned"`
	MealsTracked         int              `json:"mealsTracked"`
	EngagementPercentage int              `json:"engagementPercentage"`
}

// BuildDailyFeedback summarises one day per member. A meal counts as planned
// for a member when it carries a portion for them; tracked meals are those
// with an entry, whatever its completion.
func BuildDailyFeedback(date string, meals []models.MealSlot, members []models.FamilyMember, entries []models.ConsumptionEntry) DailyFeedback {
	fb := DailyFeedback{Date: date, Members: make([]MemberFeedback, 0, len(members))}

	for _, m := range members {
		mf := MemberFeedback{Member: m, WasteByReason: map[models.WasteReason]int{}}
		sum := 0
		for _, meal := range meals {
			if _, ok := MemberPortion(meal, m.ID); !ok {
				continue
			}
			mf.MealsPlanned++
			entry, _ := FindConsumptionEntry(entries, meal.ID, m.ID)
			if entry == nil {
				continue
			}
			mf.MealsTracked++
			sum += entry.CompletionPercentage
			for _, it := range entry.ConsumedItems {
				if !it.Consumed {
					mf.SkippedItems++
				}
				if it.WasteReason != models.WasteNone {
					mf.WasteByReason[it.WasteReason]++
				}
			}
		}
		mf.EngagementPercentage = CalculateCompliancePercentage(mf.MealsTracked, mf.MealsPlanned)
		if mf.MealsTracked > 0 {
			mf.AverageCompletion = int(math.Round(float64(sum) / float64(mf.MealsTracked)))
		}

		fb.MealsPlanned += mf.MealsPlanned
		fb.MealsTracked += mf.MealsTracked
		fb.Members = append(fb.Members, mf)
	}
	fb.EngagementPercentage = CalculateCompliancePercentage(fb.MealsTracked, fb.MealsPlanned)
	return fb
}
