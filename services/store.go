package services

import (
	"context"
	"errors"
	"time"

	"familydiet/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DietStore is the document-store boundary: every read and write the
// aggregation core needs, on gorm.
type DietStore struct{ db *gorm.DB }

func NewDietStore(db *gorm.DB) *DietStore { return &DietStore{db: db} }

// ---------- daily plans ----------

func (s *DietStore) GetDailyPlan(ctx context.Context, date string) (*models.DailyDietPlan, error) {
	var p models.DailyDietPlan
	if err := s.db.WithContext(ctx).Where("date = ?", date).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, storeErr("get daily plan", err)
	}
	return &p, nil
}

// SaveDailyPlan replaces the plan for its date.
func (s *DietStore) SaveDailyPlan(ctx context.Context, plan *models.DailyDietPlan) (*models.DailyDietPlan, error) {
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"extracted_data", "updated_at"}),
	}).Create(plan).Error
	if err != nil {
		return nil, storeErr("save daily plan", err)
	}
	return s.GetDailyPlan(ctx, plan.Date)
}

func (s *DietStore) GetDailyPlansInRange(ctx context.Context, start, end string) ([]models.DailyDietPlan, error) {
	var plans []models.DailyDietPlan
	if err := s.db.WithContext(ctx).
		Where("date >= ? AND date <= ?", start, end).
		Order("date ASC").
		Find(&plans).Error; err != nil {
		return nil, storeErr("list daily plans", err)
	}
	return plans, nil
}

// ---------- family members ----------

func (s *DietStore) GetFamilyMembers(ctx context.Context) ([]models.FamilyMember, error) {
	var members []models.FamilyMember
	if err := s.db.WithContext(ctx).
		Where("active = ?", true).
		Order("name ASC").
		Find(&members).Error; err != nil {
		return nil, storeErr("list family members", err)
	}
	return members, nil
}

func (s *DietStore) GetFamilyMember(ctx context.Context, id string) (*models.FamilyMember, error) {
	var m models.FamilyMember
	if err := s.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, storeErr("get family member", err)
	}
	return &m, nil
}

func (s *DietStore) CreateFamilyMember(ctx context.Context, m *models.FamilyMember) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if err := s.db.WithContext(ctx).Create(m).Error; err != nil {
		return storeErr("create family member", err)
	}
	return nil
}

func (s *DietStore) UpdateFamilyMember(ctx context.Context, m *models.FamilyMember) error {
	res := s.db.WithContext(ctx).Model(&models.FamilyMember{ID: m.ID}).
		Select("*").Omit("id", "created_at").
		Updates(m)
	if res.Error != nil {
		return storeErr("update family member", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrMemberNotFound
	}
	return nil
}

func (s *DietStore) DeactivateFamilyMember(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Model(&models.FamilyMember{}).
		Where("id = ?", id).
		Update("active", false)
	if res.Error != nil {
		return storeErr("deactivate family member", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrMemberNotFound
	}
	return nil
}

// ---------- consumption entries ----------

// GetConsumptionEntries returns the day's entries oldest first, so that
// "first match" is deterministic.
func (s *DietStore) GetConsumptionEntries(ctx context.Context, date string) ([]models.ConsumptionEntry, error) {
	var entries []models.ConsumptionEntry
	if err := s.db.WithContext(ctx).
		Where("date = ?", date).
		Order("created_at ASC, id ASC").
		Find(&entries).Error; err != nil {
		return nil, storeErr("list consumption entries", err)
	}
	return entries, nil
}

func (s *DietStore) CreateConsumptionEntry(ctx context.Context, e *models.ConsumptionEntry) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if err := s.db.WithContext(ctx).Create(e).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateEntry
		}
		return storeErr("create consumption entry", err)
	}
	return nil
}

func (s *DietStore) UpdateConsumptionEntry(ctx context.Context, id string, e *models.ConsumptionEntry) error {
	e.ID = id
	res := s.db.WithContext(ctx).Model(&models.ConsumptionEntry{ID: id}).
		Select("*").Omit("id", "created_at").
		Updates(e)
	if res.Error != nil {
		return storeErr("update consumption entry", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrEntryNotFound
	}
	return nil
}

// ---------- grocery plans ----------

func (s *DietStore) CreateGroceryPlan(ctx context.Context, p *models.GroceryPlan) (*models.GroceryPlan, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if err := s.db.WithContext(ctx).Create(p).Error; err != nil {
		return nil, storeErr("create grocery plan", err)
	}
	return p, nil
}

func (s *DietStore) GetActiveGroceryPlans(ctx context.Context) ([]models.GroceryPlan, error) {
	var plans []models.GroceryPlan
	if err := s.db.WithContext(ctx).
		Where("status = ?", models.PlanActive).
		Order("created_at DESC").
		Find(&plans).Error; err != nil {
		return nil, storeErr("list grocery plans", err)
	}
	return plans, nil
}

func (s *DietStore) GetGroceryPlan(ctx context.Context, id string) (*models.GroceryPlan, error) {
	var p models.GroceryPlan
	if err := s.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGroceryPlanNotFound
		}
		return nil, storeErr("get grocery plan", err)
	}
	return &p, nil
}

func (s *DietStore) UpdateGroceryPlan(ctx context.Context, p *models.GroceryPlan) error {
	res := s.db.WithContext(ctx).Model(&models.GroceryPlan{ID: p.ID}).
		Select("*").Omit("id", "created_at").
		Updates(p)
	if res.Error != nil {
		return storeErr("update grocery plan", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrGroceryPlanNotFound
	}
	return nil
}

// ---------- devices ----------

func (s *DietStore) UpsertDevice(ctx context.Context, d *models.HouseholdDevice) error {
	d.UpdatedAt = time.Now()
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "token_hash"}},
		DoUpdates: clause.AssignmentColumns([]string{"platform", "endpoint_arn", "enabled", "updated_at"}),
	}).Create(d).Error
	if err != nil {
		return storeErr("upsert device", err)
	}
	return nil
}

func (s *DietStore) EnabledDevices(ctx context.Context) ([]models.HouseholdDevice, error) {
	var devices []models.HouseholdDevice
	if err := s.db.WithContext(ctx).Where("enabled = ?", true).Find(&devices).Error; err != nil {
		return nil, storeErr("list devices", err)
	}
	return devices, nil
}
