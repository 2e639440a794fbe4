package services

import (
	"context"
	"strings"
	"time"

	"familydiet/models"

	"gorm.io/datatypes"
)

// PlanService stores day plans produced by the external extraction step.
type PlanService struct{ store *DietStore }

func NewPlanService(store *DietStore) *PlanService { return &PlanService{store: store} }

func validateExtracted(data models.ExtractedData) error {
	seen := map[string]bool{}
	for _, m := range data.Meals {
		if strings.TrimSpace(m.ID) == "" {
			return invalidf("meal id is required")
		}
		if seen[m.ID] {
			return invalidf("duplicate meal id %q", m.ID)
		}
		seen[m.ID] = true
		if m.Time != "" && !validClock(m.Time) {
			return invalidf("meal %q: invalid time %q, use HH:MM", m.ID, m.Time)
		}
	}
	for _, g := range data.GroceryList {
		if strings.TrimSpace(g.Name) == "" {
			return invalidf("grocery item name is required")
		}
	}
	return nil
}

func validClock(hhmm string) bool {
	if len(hhmm) != 5 {
		return false
	}
	_, err := time.Parse("15:04", hhmm)
	return err == nil
}

// Upsert replaces the whole plan for date.
func (s *PlanService) Upsert(ctx context.Context, date string, data models.ExtractedData) (*models.DailyDietPlan, error) {
	if _, err := ParseDay(date); err != nil {
		return nil, err
	}
	if err := validateExtracted(data); err != nil {
		return nil, err
	}
	return s.store.SaveDailyPlan(ctx, &models.DailyDietPlan{
		Date:          date,
		ExtractedData: datatypes.NewJSONType(data),
	})
}

func (s *PlanService) Get(ctx context.Context, date string) (*models.DailyDietPlan, error) {
	if _, err := ParseDay(date); err != nil {
		return nil, err
	}
	return s.store.GetDailyPlan(ctx, date)
}

func (s *PlanService) Range(ctx context.Context, from, to string) ([]models.DailyDietPlan, error) {
	if err := ValidateRange(from, to); err != nil {
		return nil, err
	}
	return s.store.GetDailyPlansInRange(ctx, from, to)
}
