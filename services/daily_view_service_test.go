package services

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"familydiet/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

type dailyFixture struct {
	svc   *DailyViewService
	store *DietStore
	hub   *RealtimeHub
	ravi  models.FamilyMember
	amma  models.FamilyMember
}

func newDailyFixture(t *testing.T) *dailyFixture {
	t.Helper()
	ctx := context.Background()
	store := NewDietStore(newTestDB(t))
	hub := NewRealtimeHub()
	svc := NewDailyViewService(store, NewEventBus(hub, nil))
	svc.now = func() time.Time { return time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC) }

	ravi := member("", "Ravi")
	ravi.Preferences = datatypes.NewJSONType(models.MemberPreferences{Allergies: []string{"peanut"}})
	amma := member("", "Amma")
	require.NoError(t, store.CreateFamilyMember(ctx, &ravi))
	require.NoError(t, store.CreateFamilyMember(ctx, &amma))

	p := dayPlan("2024-05-01", []models.MealSlot{
		meal("dinner", "19:00", portion(ravi.ID, models.PortionItem{Name: "roti", Quantity: 2, Unit: "pcs"})),
		meal("breakfast", "08:00",
			portion(ravi.ID,
				models.PortionItem{Name: "oats", Quantity: 1, Unit: "cup"},
				models.PortionItem{Name: "peanut chutney", Quantity: 2, Unit: "tbsp"},
			),
			portion(amma.ID, models.PortionItem{Name: "idli", Quantity: 3, Unit: "pcs"}),
		),
	}, nil)
	_, err := store.SaveDailyPlan(ctx, &p)
	require.NoError(t, err)

	return &dailyFixture{svc: svc, store: store, hub: hub, ravi: ravi, amma: amma}
}

func TestDailyViewService_PartialTracking(t *testing.T) {
	f := newDailyFixture(t)
	ctx := context.Background()

	saved, err := f.svc.TrackConsumption(ctx, "2024-05-01", "breakfast", f.ravi.ID, []models.ConsumedItem{
		{Name: "oats", PlannedQuantity: "1 cup", ActualQuantity: "1 cup", Consumed: true},
		{Name: "peanut chutney", PlannedQuantity: "2 tbsp", Consumed: false, WasteReason: models.WasteDidntLike},
	})
	require.NoError(t, err)
	assert.Equal(t, 50, saved.CompletionPercentage)
	assert.Len(t, saved.PlannedItems, 2)

	view, err := f.svc.DailyView(ctx, "2024-05-01")
	require.NoError(t, err)
	require.Len(t, view.Timeline, 2)
	assert.Equal(t, "breakfast", view.Timeline[0].Meal.ID)

	breakfast := view.Timeline[0]
	assert.Equal(t, 50, breakfast.CompletionPercentage, "one of two members engaged")
	for _, mp := range breakfast.FamilyMemberProgress {
		if mp.Member.ID == f.ravi.ID {
			assert.True(t, mp.Consumed)
			assert.Equal(t, 50, mp.CompletionPercentage)
		} else {
			assert.False(t, mp.Consumed)
		}
	}
}

func TestDailyViewService_SingleMemberMealShowsFull(t *testing.T) {
	ctx := context.Background()
	store := NewDietStore(newTestDB(t))
	svc := NewDailyViewService(store, nil)

	solo := member("", "Solo")
	require.NoError(t, store.CreateFamilyMember(ctx, &solo))
	p := dayPlan("2024-06-01", []models.MealSlot{
		meal("lunch", "13:00", portion(solo.ID,
			models.PortionItem{Name: "rice", Quantity: 1, Unit: "cup"},
			models.PortionItem{Name: "dal", Quantity: 1, Unit: "bowl"},
		)),
	}, nil)
	_, err := store.SaveDailyPlan(ctx, &p)
	require.NoError(t, err)

	_, err = svc.TrackConsumption(ctx, "2024-06-01", "lunch", solo.ID, []models.ConsumedItem{
		{Name: "rice", Consumed: true},
		{Name: "dal", Consumed: false},
	})
	require.NoError(t, err)

	view, err := svc.DailyView(ctx, "2024-06-01")
	require.NoError(t, err)
	require.Len(t, view.Timeline, 1)
	assert.Equal(t, 100, view.Timeline[0].CompletionPercentage)
	assert.Equal(t, 50, view.Timeline[0].FamilyMemberProgress[0].CompletionPercentage)
}

func TestDailyViewService_QuickMarkThenToggle(t *testing.T) {
	f := newDailyFixture(t)
	ctx := context.Background()

	e, err := f.svc.QuickMark(ctx, "2024-05-01", "breakfast", f.ravi.ID)
	require.NoError(t, err)
	assert.Equal(t, 100, e.CompletionPercentage)
	for _, it := range e.ConsumedItems {
		assert.True(t, it.Consumed)
		assert.Equal(t, it.PlannedQuantity, it.ActualQuantity)
	}

	e, err = f.svc.ToggleItem(ctx, "2024-05-01", "breakfast", f.ravi.ID, "oats")
	require.NoError(t, err)
	assert.Equal(t, 50, e.CompletionPercentage)

	entries, err := f.store.GetConsumptionEntries(ctx, "2024-05-01")
	require.NoError(t, err)
	require.Len(t, entries, 1, "second write updates the same entry")
	assert.Equal(t, 50, entries[0].CompletionPercentage)
	assert.Equal(t, "1 cup", entries[0].ConsumedItems[0].ActualQuantity, "toggling off keeps actual quantity")

	_, err = f.svc.ToggleItem(ctx, "2024-05-01", "breakfast", f.ravi.ID, "pizza")
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestDailyViewService_MemberMealDetail(t *testing.T) {
	f := newDailyFixture(t)
	ctx := context.Background()

	d, err := f.svc.MemberMealDetail(ctx, "2024-05-01", "breakfast", f.ravi.ID)
	require.NoError(t, err)
	assert.Nil(t, d.Entry)
	require.Len(t, d.Items, 2)
	assert.Equal(t, "2 tbsp", d.Items[1].PlannedQuantity)
	require.Len(t, d.Warnings, 1)
	assert.Equal(t, "ALLERGEN", d.Warnings[0].Code)

	_, err = f.svc.MemberMealDetail(ctx, "2024-05-01", "supper", f.ravi.ID)
	assert.ErrorIs(t, err, ErrMealNotFound)
	_, err = f.svc.MemberMealDetail(ctx, "2024-05-01", "breakfast", "nobody")
	assert.ErrorIs(t, err, ErrMemberNotFound)
	_, err = f.svc.MemberMealDetail(ctx, "2024-05-09", "breakfast", f.ravi.ID)
	assert.ErrorIs(t, err, ErrPlanNotFound)
	_, err = f.svc.MemberMealDetail(ctx, "May 1", "breakfast", f.ravi.ID)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestDailyViewService_TrackRejectsBadItems(t *testing.T) {
	f := newDailyFixture(t)
	ctx := context.Background()

	_, err := f.svc.TrackConsumption(ctx, "2024-05-01", "breakfast", f.ravi.ID, []models.ConsumedItem{{Name: " "}})
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = f.svc.TrackConsumption(ctx, "2024-05-01", "breakfast", f.ravi.ID, []models.ConsumedItem{{Name: "oats", WasteReason: "bored"}})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestDailyViewService_ConcurrentCreateFallsBackToUpdate(t *testing.T) {
	f := newDailyFixture(t)
	ctx := context.Background()

	d, err := f.svc.MemberMealDetail(ctx, "2024-05-01", "breakfast", f.amma.ID)
	require.NoError(t, err)
	require.Nil(t, d.Entry)

	// another writer lands between the read and our create
	other := models.ConsumptionEntry{Date: "2024-05-01", MealSlotID: "breakfast", FamilyMemberID: f.amma.ID}
	require.NoError(t, f.store.CreateConsumptionEntry(ctx, &other))

	saved, err := f.svc.save(ctx, d, []models.ConsumedItem{{Name: "idli", Consumed: true}})
	require.NoError(t, err)
	assert.Equal(t, 100, saved.CompletionPercentage)

	entries, err := f.store.GetConsumptionEntries(ctx, "2024-05-01")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, other.ID, entries[0].ID)
	assert.Equal(t, 100, entries[0].CompletionPercentage)
}

func TestDailyViewService_PublishesSnapshot(t *testing.T) {
	f := newDailyFixture(t)
	ctx := context.Background()

	conn := &fakeConn{}
	f.hub.Register(&WSClient{Topic: DailyTopic("2024-05-01"), Conn: conn})

	_, err := f.svc.QuickMark(ctx, "2024-05-01", "breakfast", f.amma.ID)
	require.NoError(t, err)

	msgs := conn.messages()
	require.Len(t, msgs, 1)
	var ev struct {
		Kind string    `json:"kind"`
		Data DailyView `json:"data"`
	}
	require.NoError(t, json.Unmarshal(msgs[0], &ev))
	assert.Equal(t, "daily.snapshot", ev.Kind)
	assert.Equal(t, "2024-05-01", ev.Data.Date)
	assert.Len(t, ev.Data.Timeline, 2)
}

func TestDailyViewService_Feedback(t *testing.T) {
	f := newDailyFixture(t)
	ctx := context.Background()

	_, err := f.svc.QuickMark(ctx, "2024-05-01", "dinner", f.ravi.ID)
	require.NoError(t, err)

	fb, err := f.svc.Feedback(ctx, "2024-05-01")
	require.NoError(t, err)
	assert.Equal(t, 3, fb.MealsPlanned)
	assert.Equal(t, 1, fb.MealsTracked)
	assert.Equal(t, 33, fb.EngagementPercentage)
}

func TestDailyViewService_RejectsWritesWithoutPortion(t *testing.T) {
	f := newDailyFixture(t)
	ctx := context.Background()

	_, err := f.svc.QuickMark(ctx, "2024-05-01", "dinner", f.amma.ID)
	assert.ErrorIs(t, err, ErrPortionNotFound)
	_, err = f.svc.TrackConsumption(ctx, "2024-05-01", "dinner", f.amma.ID, []models.ConsumedItem{{Name: "roti", Consumed: true}})
	assert.ErrorIs(t, err, ErrPortionNotFound)

	entries, err := f.store.GetConsumptionEntries(ctx, "2024-05-01")
	require.NoError(t, err)
	assert.Empty(t, entries)

	_, err = f.svc.QuickMark(ctx, "2024-05-01", "breakfast", f.amma.ID)
	require.NoError(t, err)
	fb, err := f.svc.Feedback(ctx, "2024-05-01")
	require.NoError(t, err)
	for _, mf := range fb.Members {
		assert.LessOrEqual(t, mf.EngagementPercentage, 100, mf.Member.Name)
	}
}

func TestDailyViewService_RejectsWritesForInactiveMember(t *testing.T) {
	f := newDailyFixture(t)
	ctx := context.Background()

	require.NoError(t, f.store.DeactivateFamilyMember(ctx, f.amma.ID))

	_, err := f.svc.QuickMark(ctx, "2024-05-01", "breakfast", f.amma.ID)
	assert.ErrorIs(t, err, ErrMemberNotFound)
	_, err = f.svc.ToggleItem(ctx, "2024-05-01", "breakfast", f.amma.ID, "idli")
	assert.ErrorIs(t, err, ErrMemberNotFound)

	entries, err := f.store.GetConsumptionEntries(ctx, "2024-05-01")
	require.NoError(t, err)
	assert.Empty(t, entries)
}
