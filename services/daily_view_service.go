package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"familydiet/models"
	"familydiet/utils"
)

type DailyViewService struct {
	store *DietStore
	bus   *EventBus
	now   func() time.Time
}

func NewDailyViewService(store *DietStore, bus *EventBus) *DailyViewService {
	return &DailyViewService{store: store, bus: bus, now: time.Now}
}

type DailyView struct {
	Date     string                `json:"date"`
	Members  []models.FamilyMember `json:"members"`
	Timeline []MealProgress        `json:"timeline"`
}

// MemberMealDetail is the per-member tracking screen for one meal.
type MemberMealDetail struct {
	Date         string                   `json:"date"`
	Meal         models.MealSlot          `json:"meal"`
	Member       models.FamilyMember      `json:"member"`
	PlannedItems []models.PortionItem     `json:"plannedItems"`
	Items        []models.ConsumedItem    `json:"items"`
	Entry        *models.ConsumptionEntry `json:"entry,omitempty"`
	Warnings     []utils.Warning          `json:"warnings"`
}

// DailyView recomputes the whole day from scratch.
func (s *DailyViewService) DailyView(ctx context.Context, date string) (*DailyView, error) {
	if _, err := ParseDay(date); err != nil {
		return nil, err
	}
	plan, err := s.store.GetDailyPlan(ctx, date)
	if err != nil {
		return nil, err
	}
	members, err := s.store.GetFamilyMembers(ctx)
	if err != nil {
		return nil, err
	}
	entries, err := s.store.GetConsumptionEntries(ctx, date)
	if err != nil {
		return nil, err
	}

	meals := plan.Meals()
	warnDuplicates(date, meals, members, entries)

	return &DailyView{
		Date:     date,
		Members:  members,
		Timeline: SortProgressTimeline(AggregateMealProgress(meals, members, entries)),
	}, nil
}

// Feedback summarises the day per member.
func (s *DailyViewService) Feedback(ctx context.Context, date string) (*DailyFeedback, error) {
	if _, err := ParseDay(date); err != nil {
		return nil, err
	}
	plan, err := s.store.GetDailyPlan(ctx, date)
	if err != nil {
		return nil, err
	}
	members, err := s.store.GetFamilyMembers(ctx)
	if err != nil {
		return nil, err
	}
	entries, err := s.store.GetConsumptionEntries(ctx, date)
	if err != nil {
		return nil, err
	}
	fb := BuildDailyFeedback(date, plan.Meals(), members, entries)
	return &fb, nil
}

func (s *DailyViewService) MemberMealDetail(ctx context.Context, date, mealID, memberID string) (*MemberMealDetail, error) {
	if _, err := ParseDay(date); err != nil {
		return nil, err
	}
	plan, err := s.store.GetDailyPlan(ctx, date)
	if err != nil {
		return nil, err
	}
	var meal *models.MealSlot
	for _, m := range plan.Meals() {
		if m.ID == mealID {
			m := m
			meal = &m
			break
		}
	}
	if meal == nil {
		return nil, ErrMealNotFound
	}
	member, err := s.store.GetFamilyMember(ctx, memberID)
	if err != nil {
		return nil, err
	}
	entries, err := s.store.GetConsumptionEntries(ctx, date)
	if err != nil {
		return nil, err
	}

	entry, n := FindConsumptionEntry(entries, mealID, memberID)
	if n > 1 {
		slog.Warn("duplicate consumption entries, using first",
			"date", date, "meal", mealID, "member", memberID, "count", n)
	}
	portion, _ := MemberPortion(*meal, memberID)
	names := make([]string, 0, len(portion.Items))
	for _, it := range portion.Items {
		names = append(names, it.Name)
	}
	prefs := member.Preferences.Data()
	warnings := utils.AssessPortion(names, utils.PortionProfile{
		Allergies:     prefs.Allergies,
		DislikedFoods: prefs.DislikedFoods,
	})

	return &MemberMealDetail{
		Date:         date,
		Meal:         *meal,
		Member:       *member,
		PlannedItems: append([]models.PortionItem{}, portion.Items...),
		Items:        ExpandMemberMeal(*meal, memberID, entry),
		Entry:        entry,
		Warnings:     warnings,
	}, nil
}

// writableDetail is MemberMealDetail for tracking writes: inactive members
// and members without a portion in the meal cannot record entries.
func (s *DailyViewService) writableDetail(ctx context.Context, date, mealID, memberID string) (*MemberMealDetail, error) {
	d, err := s.MemberMealDetail(ctx, date, mealID, memberID)
	if err != nil {
		return nil, err
	}
	if !d.Member.Active {
		return nil, ErrMemberNotFound
	}
	if _, ok := MemberPortion(d.Meal, memberID); !ok {
		return nil, fmt.Errorf("%w: %s", ErrPortionNotFound, mealID)
	}
	return d, nil
}

// QuickMark records every planned item as eaten in full.
func (s *DailyViewService) QuickMark(ctx context.Context, date, mealID, memberID string) (*models.ConsumptionEntry, error) {
	d, err := s.writableDetail(ctx, date, mealID, memberID)
	if err != nil {
		return nil, err
	}
	items := make([]models.ConsumedItem, 0, len(d.Items))
	for _, it := range d.Items {
		if !it.Consumed {
			it = ToggleItemConsumption(it)
		}
		items = append(items, it)
	}
	return s.save(ctx, d, items)
}

// TrackConsumption stores the member's detailed tracking for one meal.
func (s *DailyViewService) TrackConsumption(ctx context.Context, date, mealID, memberID string, items []models.ConsumedItem) (*models.ConsumptionEntry, error) {
	for _, it := range items {
		if strings.TrimSpace(it.Name) == "" {
			return nil, invalidf("consumed item name is required")
		}
		if !it.WasteReason.Valid() {
			return nil, invalidf("unknown waste reason %q", it.WasteReason)
		}
	}
	d, err := s.writableDetail(ctx, date, mealID, memberID)
	if err != nil {
		return nil, err
	}
	return s.save(ctx, d, items)
}

// ToggleItem flips one planned item (matched by name) and persists the entry.
func (s *DailyViewService) ToggleItem(ctx context.Context, date, mealID, memberID, itemName string) (*models.ConsumptionEntry, error) {
	d, err := s.writableDetail(ctx, date, mealID, memberID)
	if err != nil {
		return nil, err
	}
	items := append([]models.ConsumedItem(nil), d.Items...)
	found := false
	for i := range items {
		if items[i].Name == itemName {
			items[i] = ToggleItemConsumption(items[i])
			found = true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("%w: %q", ErrItemNotFound, itemName)
	}
	return s.save(ctx, d, items)
}

// save picks create or update from the entry seen in the last read. A
// concurrent create for the same key surfaces as ErrDuplicateEntry and is
// retried once as an update.
func (s *DailyViewService) save(ctx context.Context, d *MemberMealDetail, items []models.ConsumedItem) (*models.ConsumptionEntry, error) {
	entry := &models.ConsumptionEntry{
		Date:                 d.Date,
		MealSlotID:           d.Meal.ID,
		FamilyMemberID:       d.Member.ID,
		PlannedItems:         d.PlannedItems,
		ConsumedItems:        items,
		CompletionPercentage: ItemsCompletion(items),
		ConsumedAt:           s.now().UTC(),
	}

	var err error
	if d.Entry != nil {
		entry.CreatedAt = d.Entry.CreatedAt
		err = s.store.UpdateConsumptionEntry(ctx, d.Entry.ID, entry)
	} else {
		err = s.store.CreateConsumptionEntry(ctx, entry)
		if errors.Is(err, ErrDuplicateEntry) {
			entries, rerr := s.store.GetConsumptionEntries(ctx, d.Date)
			if rerr != nil {
				return nil, rerr
			}
			existing, _ := FindConsumptionEntry(entries, d.Meal.ID, d.Member.ID)
			if existing == nil {
				return nil, err
			}
			entry.ID = ""
			entry.CreatedAt = existing.CreatedAt
			err = s.store.UpdateConsumptionEntry(ctx, existing.ID, entry)
		}
	}
	if err != nil {
		return nil, err
	}

	s.publish(ctx, d.Date)
	return entry, nil
}

func (s *DailyViewService) publish(ctx context.Context, date string) {
	if s.bus == nil || s.bus.rt == nil || s.bus.rt.Subscribers(DailyTopic(date)) == 0 {
		return
	}
	view, err := s.DailyView(ctx, date)
	if err != nil {
		slog.Warn("daily snapshot rebuild failed", "date", date, "err", err)
		return
	}
	s.bus.DailyChanged(date, view)
}

func warnDuplicates(date string, meals []models.MealSlot, members []models.FamilyMember, entries []models.ConsumptionEntry) {
	for _, meal := range meals {
		for _, m := range members {
			if _, n := FindConsumptionEntry(entries, meal.ID, m.ID); n > 1 {
				slog.Warn("duplicate consumption entries, using first",
					"date", date, "meal", meal.ID, "member", m.ID, "count", n)
			}
		}
	}
}
