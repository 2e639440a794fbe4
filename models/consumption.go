package models

import (
	"time"

	"gorm.io/datatypes"
)

type WasteReason string

const (
	WasteNone       WasteReason = ""
	WasteTooMuch    WasteReason = "too_much"
	WasteDidntLike  WasteReason = "didnt_like"
	WasteNotHungry  WasteReason = "not_hungry"
	WasteFeltUnwell WasteReason = "felt_unwell"
	WasteSpoiled    WasteReason = "spoiled"
	WasteOther      WasteReason = "other"
)

func (w WasteReason) Valid() bool {
	switch w {
	case WasteNone, WasteTooMuch, WasteDidntLike, WasteNotHungry, WasteFeltUnwell, WasteSpoiled, WasteOther:
		return true
	}
	return false
}

// ConsumedItem tracks one planned item. Quantities are free text as the
// household types them ("1 cup", "half").
type ConsumedItem struct {
	Name            string      `json:"name"`
	PlannedQuantity string      `json:"plannedQuantity"`
	ActualQuantity  string      `json:"actualQuantity"`
	Consumed        bool        `json:"consumed"`
	Notes           string      `json:"notes,omitempty"`
	WasteReason     WasteReason `json:"wasteReason,omitempty"`
}

// ConsumptionEntry is unique per (date, meal slot, member).
type ConsumptionEntry struct {
	ID                   string                            `gorm:"primaryKey;size:36" json:"id"`
	Date                 string                            `gorm:"size:10;not null;uniqueIndex:idx_consumption_key,priority:1" json:"date"`
	MealSlotID           string                            `gorm:"size:64;not null;uniqueIndex:idx_consumption_key,priority:2" json:"mealSlotId"`
	FamilyMemberID       string                            `gorm:"size:36;not null;uniqueIndex:idx_consumption_key,priority:3" json:"familyMemberId"`
	PlannedItems         datatypes.JSONSlice[PortionItem]  `json:"plannedItems"`
	ConsumedItems        datatypes.JSONSlice[ConsumedItem] `json:"consumedItems"`
	CompletionPercentage int                               `json:"completionPercentage"`
	ConsumedAt           time.Time                         `json:"consumedAt"`
	CreatedAt            time.Time                         `json:"createdAt"`
	UpdatedAt            time.Time                         `json:"updatedAt"`
}
