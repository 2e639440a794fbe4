package services

import (
	"context"
	"time"

	"familydiet/models"
)

// EventBus publishes state changes to websocket subscribers and, for
// household-wide events, to registered devices. Either side may be nil.
type EventBus struct {
	rt   *RealtimeHub
	push *PushService
}

func NewEventBus(rt *RealtimeHub, push *PushService) *EventBus {
	return &EventBus{rt: rt, push: push}
}

type Event struct {
	Kind string    `json:"kind"`
	At   time.Time `json:"at"`
	Data any       `json:"data"`
}

func (b *EventBus) DailyChanged(date string, view *DailyView) {
	if b == nil || b.rt == nil {
		return
	}
	b.rt.Broadcast(DailyTopic(date), Event{Kind: "daily.snapshot", At: time.Now().UTC(), Data: view})
}

func (b *EventBus) GroceryPlanChanged(ctx context.Context, kind string, plan *models.GroceryPlan) {
	if b == nil {
		return
	}
	if b.rt != nil {
		b.rt.Broadcast(GroceryTopic, Event{Kind: kind, At: time.Now().UTC(), Data: plan})
	}
	if b.push != nil && kind == "grocery.created" {
		b.push.PushAll(ctx, "New grocery plan", plan.Title, map[string]string{
			"type": kind, "planId": plan.ID,
		})
	}
}
