package services

import (
	"context"
	"strings"

	"familydiet/models"

	"gorm.io/datatypes"
)

type FamilyService struct{ store *DietStore }

func NewFamilyService(store *DietStore) *FamilyService { return &FamilyService{store: store} }

type MemberInput struct {
	Name                string                   `json:"name" binding:"required"`
	Role                models.MemberRole        `json:"role" binding:"required"`
	Age                 int                      `json:"age"`
	MedicalConditions   []string                 `json:"medicalConditions"`
	DietaryRestrictions []string                 `json:"dietaryRestrictions"`
	PortionMultiplier   *float64                 `json:"portionMultiplier"`
	WaterIntakeTarget   float64                  `json:"waterIntakeTarget"`
	OilLimit            float64                  `json:"oilLimit"`
	Preferences         models.MemberPreferences `json:"preferences"`
}

func (in MemberInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return invalidf("name is required")
	}
	if !in.Role.Valid() {
		return invalidf("unknown role %q", in.Role)
	}
	if in.Age < 0 {
		return invalidf("age must not be negative")
	}
	if in.PortionMultiplier != nil && *in.PortionMultiplier <= 0 {
		return invalidf("portionMultiplier must be positive")
	}
	return nil
}

func (in MemberInput) apply(m *models.FamilyMember) {
	m.Name = strings.TrimSpace(in.Name)
	m.Role = in.Role
	m.Age = in.Age
	m.MedicalConditions = dedupe(in.MedicalConditions)
	m.DietaryRestrictions = dedupe(in.DietaryRestrictions)
	m.PortionMultiplier = 1
	if in.PortionMultiplier != nil {
		m.PortionMultiplier = *in.PortionMultiplier
	}
	m.WaterIntakeTarget = in.WaterIntakeTarget
	m.OilLimit = in.OilLimit
	prefs := models.MemberPreferences{
		FavoriteFruits: dedupe(in.Preferences.FavoriteFruits),
		DislikedFoods:  dedupe(in.Preferences.DislikedFoods),
		Allergies:      dedupe(in.Preferences.Allergies),
	}
	m.Preferences = datatypes.NewJSONType(prefs)
}

// dedupe keeps first occurrences; the profile fields are sets.
func dedupe(in []string) []string {
	seen := map[string]bool{}
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}

func (s *FamilyService) List(ctx context.Context) ([]models.FamilyMember, error) {
	return s.store.GetFamilyMembers(ctx)
}

func (s *FamilyService) Get(ctx context.Context, id string) (*models.FamilyMember, error) {
	return s.store.GetFamilyMember(ctx, id)
}

func (s *FamilyService) Create(ctx context.Context, in MemberInput) (*models.FamilyMember, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	m := &models.FamilyMember{Active: true}
	in.apply(m)
	if err := s.store.CreateFamilyMember(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *FamilyService) Update(ctx context.Context, id string, in MemberInput) (*models.FamilyMember, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	m, err := s.store.GetFamilyMember(ctx, id)
	if err != nil {
		return nil, err
	}
	in.apply(m)
	if err := s.store.UpdateFamilyMember(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// Deactivate hides a member from aggregation; their entries stay and are
// ignored as orphans.
func (s *FamilyService) Deactivate(ctx context.Context, id string) error {
	return s.store.DeactivateFamilyMember(ctx, id)
}
