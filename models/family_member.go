package models

import (
	"time"

	"gorm.io/datatypes"
)

type MemberRole string

const (
	RoleRavi        MemberRole = "ravi"
	RoleFather      MemberRole = "father"
	RoleMother      MemberRole = "mother"
	RoleBrother     MemberRole = "brother"
	RoleWifeBF      MemberRole = "wife_bf"
	RolePregnantSIL MemberRole = "pregnant_sil"
)

func (r MemberRole) Valid() bool {
	switch r {
	case RoleRavi, RoleFather, RoleMother, RoleBrother, RoleWifeBF, RolePregnantSIL:
		return true
	}
	return false
}

type MemberPreferences struct {
	FavoriteFruits []string `json:"favoriteFruits"`
	DislikedFoods  []string `json:"dislikedFoods"`
	Allergies      []string `json:"allergies"`
}

// FamilyMember is one household member. Portion quantities in a plan are
// already scaled; PortionMultiplier is kept for plan generation upstream.
type FamilyMember struct {
	ID                  string                                `gorm:"primaryKey;size:36" json:"id"`
	Name                string                                `gorm:"not null" json:"name"`
	Role                MemberRole                            `gorm:"size:32;not null" json:"role"`
	Age                 int                                   `json:"age"`
	MedicalConditions   datatypes.JSONSlice[string]           `json:"medicalConditions"`
	DietaryRestrictions datatypes.JSONSlice[string]           `json:"dietaryRestrictions"`
	PortionMultiplier   float64                               `gorm:"default:1" json:"portionMultiplier"`
	WaterIntakeTarget   float64                               `json:"waterIntakeTarget"` // liters
	OilLimit            float64                               `json:"oilLimit"`          // teaspoons
	Preferences         datatypes.JSONType[MemberPreferences] `json:"preferences"`
	Active              bool                                  `gorm:"default:true;index" json:"active"`
	CreatedAt           time.Time                             `json:"createdAt"`
	UpdatedAt           time.Time                             `json:"updatedAt"`
}
