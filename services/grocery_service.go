package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"familydiet/models"
	"familydiet/utils"
)

type GroceryService struct {
	store    *DietStore
	bus      *EventBus
	mailer   *utils.Mailer
	exporter *utils.Exporter
	now      func() time.Time
}

func NewGroceryService(store *DietStore, bus *EventBus, mailer *utils.Mailer, exporter *utils.Exporter) *GroceryService {
	return &GroceryService{store: store, bus: bus, mailer: mailer, exporter: exporter, now: time.Now}
}

type GenerateRequest struct {
	Title     string `json:"title"`
	StartDate string `json:"startDate" binding:"required"`
	EndDate   string `json:"endDate" binding:"required"`
}

// Generate consolidates every daily plan in [start, end] into a new active
// grocery plan. Overlapping ranges produce independent plans.
func (s *GroceryService) Generate(ctx context.Context, req GenerateRequest) (*models.GroceryPlan, error) {
	if err := ValidateRange(req.StartDate, req.EndDate); err != nil {
		return nil, err
	}
	plans, err := s.store.GetDailyPlansInRange(ctx, req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	items := ConsolidateGroceries(plans)
	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = fmt.Sprintf("Groceries %s to %s", req.StartDate, req.EndDate)
	}
	gp := &models.GroceryPlan{
		Title:              title,
		StartDate:          req.StartDate,
		EndDate:            req.EndDate,
		GroceryItems:       items,
		TotalEstimatedCost: TotalEstimatedCost(items),
		Status:             models.PlanActive,
	}
	created, err := s.store.CreateGroceryPlan(ctx, gp)
	if err != nil {
		return nil, err
	}
	s.bus.GroceryPlanChanged(ctx, "grocery.created", created)
	return created, nil
}

func (s *GroceryService) ActivePlans(ctx context.Context) ([]models.GroceryPlan, error) {
	return s.store.GetActiveGroceryPlans(ctx)
}

// PlanView is one plan with its items filtered and sorted for display. The
// stored plan is untouched.
type PlanView struct {
	models.GroceryPlan
	Items []models.GroceryItem `json:"items"`
}

func (s *GroceryService) Plan(ctx context.Context, id string, f GroceryFilter, sortBy string) (*PlanView, error) {
	gp, err := s.store.GetGroceryPlan(ctx, id)
	if err != nil {
		return nil, err
	}
	items := SortGroceryItems(FilterGroceryItems(gp.GroceryItems, f), sortBy)
	return &PlanView{GroceryPlan: *gp, Items: items}, nil
}

// ItemPatch edits one item of a stored plan. Nil fields are left alone.
type ItemPatch struct {
	Checked          *bool                   `json:"checked"`
	Status           *models.GroceryStatus   `json:"status"`
	Priority         *models.GroceryPriority `json:"priority"`
	RequiredQuantity *float64                `json:"requiredQuantity"`
	AvailableAtHome  *float64                `json:"availableAtHome"`
	EstimatedCost    *float64                `json:"estimatedCost"`
}

func (p ItemPatch) validate() error {
	if p.Status != nil && !p.Status.Valid() {
		return invalidf("unknown status %q", *p.Status)
	}
	if p.Priority != nil && !p.Priority.Valid() {
		return invalidf("unknown priority %q", *p.Priority)
	}
	if p.RequiredQuantity != nil && *p.RequiredQuantity < 0 {
		return invalidf("requiredQuantity must not be negative")
	}
	if p.AvailableAtHome != nil && *p.AvailableAtHome < 0 {
		return invalidf("availableAtHome must not be negative")
	}
	return nil
}

// UpdateItem applies a patch to the item with the given consolidation key
// and persists the plan.
func (s *GroceryService) UpdateItem(ctx context.Context, planID, key string, patch ItemPatch) (*models.GroceryPlan, error) {
	if err := patch.validate(); err != nil {
		return nil, err
	}
	gp, err := s.store.GetGroceryPlan(ctx, planID)
	if err != nil {
		return nil, err
	}

	items := append([]models.GroceryItem(nil), gp.GroceryItems...)
	idx := -1
	for i := range items {
		if GroceryKey(items[i]) == key {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("%w: %q", ErrGroceryItemNotFound, key)
	}

	it := &items[idx]
	if patch.Checked != nil {
		it.Checked = *patch.Checked
	}
	if patch.Status != nil {
		it.Status = *patch.Status
	}
	if patch.Priority != nil {
		it.Priority = *patch.Priority
	}
	if patch.RequiredQuantity != nil {
		it.RequiredQuantity = *patch.RequiredQuantity
	}
	if patch.AvailableAtHome != nil {
		it.AvailableAtHome = *patch.AvailableAtHome
	}
	if patch.EstimatedCost != nil {
		c := *patch.EstimatedCost
		it.EstimatedCost = &c
	}
	it.NeedToPurchase = NeedToPurchase(it.RequiredQuantity, it.AvailableAtHome)
	if patch.Status == nil && (it.Status == models.StatusSufficient || it.Status == models.StatusOutOfStock) {
		it.Status = derivedStatus(it.NeedToPurchase)
	}

	gp.GroceryItems = items
	gp.TotalEstimatedCost = TotalEstimatedCost(items)
	if err := s.store.UpdateGroceryPlan(ctx, gp); err != nil {
		return nil, err
	}
	s.bus.GroceryPlanChanged(ctx, "grocery.updated", gp)
	return gp, nil
}

func (s *GroceryService) Archive(ctx context.Context, id string) (*models.GroceryPlan, error) {
	gp, err := s.store.GetGroceryPlan(ctx, id)
	if err != nil {
		return nil, err
	}
	gp.Status = models.PlanArchived
	if err := s.store.UpdateGroceryPlan(ctx, gp); err != nil {
		return nil, err
	}
	s.bus.GroceryPlanChanged(ctx, "grocery.archived", gp)
	return gp, nil
}

// Email sends the items still to buy as a plain-text list.
func (s *GroceryService) Email(ctx context.Context, id, to string) error {
	if !s.mailer.Enabled() {
		return ErrNotConfigured
	}
	if strings.TrimSpace(to) == "" {
		return invalidf("recipient is required")
	}
	gp, err := s.store.GetGroceryPlan(ctx, id)
	if err != nil {
		return err
	}
	return s.mailer.Send(ctx, to, gp.Title, RenderShoppingList(gp))
}

// Export uploads a JSON snapshot of the plan and returns its URL.
func (s *GroceryService) Export(ctx context.Context, id string) (string, error) {
	if !s.exporter.Enabled() {
		return "", ErrNotConfigured
	}
	gp, err := s.store.GetGroceryPlan(ctx, id)
	if err != nil {
		return "", err
	}
	data, err := json.MarshalIndent(gp, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal grocery plan: %w", err)
	}
	return s.exporter.Upload(ctx, utils.ExportKey("grocery-plans", gp.ID, s.now()), "application/json", data)
}

// RenderShoppingList lists unchecked items that need buying, grouped by
// category in priority order.
func RenderShoppingList(gp *models.GroceryPlan) string {
	items := SortGroceryItems(SortGroceryItems(FilterGroceryItems(gp.GroceryItems, GroceryFilter{}), SortByPriority), SortByCategory)

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s (%s to %s)\n", gp.Title, gp.StartDate, gp.EndDate)
	var current models.GroceryCategory = "-"
	for _, it := range items {
		if it.NeedToPurchase <= 0 {
			continue
		}
		if it.Category != current {
			current = it.Category
			fmt.Fprintf(&sb, "\n%s\n", strings.ToUpper(string(current)))
		}
		fmt.Fprintf(&sb, "- %s: %s %s [%s]\n", it.Name, formatQty(it.NeedToPurchase), it.Unit, it.Priority)
	}
	if gp.TotalEstimatedCost > 0 {
		fmt.Fprintf(&sb, "\nEstimated total: %.2f\n", gp.TotalEstimatedCost)
	}
	return sb.String()
}

func formatQty(v float64) string {
	return strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%.2f", v), "0"), ".")
}
