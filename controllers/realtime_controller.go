package controllers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"familydiet/services"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

type RealtimeController struct {
	RT      *services.RealtimeHub
	Daily   *services.DailyViewService
	Grocery *services.GroceryService
}

func NewRealtimeController(rt *services.RealtimeHub, ds *services.DailyViewService, gs *services.GroceryService) *RealtimeController {
	return &RealtimeController{RT: rt, Daily: ds, Grocery: gs}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true }, // origin is enforced by rs/cors in front
}

const pingInterval = 25 * time.Second

// DailyWS streams full daily-view snapshots for :date, starting with the
// current one.
func (rc *RealtimeController) DailyWS(c *gin.Context) {
	date := c.Param("date")
	if _, err := services.ParseDay(date); err != nil {
		respondError(c, err)
		return
	}
	rc.serve(c, services.DailyTopic(date), func() services.Event {
		view, err := rc.Daily.DailyView(c.Request.Context(), date)
		if err != nil {
			return services.Event{Kind: "daily.unavailable", At: time.Now().UTC(), Data: gin.H{"error": err.Error(), "code": services.CodeOf(err)}}
		}
		return services.Event{Kind: "daily.snapshot", At: time.Now().UTC(), Data: view}
	})
}

// GroceryWS streams grocery plan events, starting with the active plans.
func (rc *RealtimeController) GroceryWS(c *gin.Context) {
	rc.serve(c, services.GroceryTopic, func() services.Event {
		plans, err := rc.Grocery.ActivePlans(c.Request.Context())
		if err != nil {
			return services.Event{Kind: "grocery.unavailable", At: time.Now().UTC(), Data: gin.H{"error": err.Error(), "code": services.CodeOf(err)}}
		}
		return services.Event{Kind: "grocery.snapshot", At: time.Now().UTC(), Data: plans}
	})
}

func (rc *RealtimeController) serve(c *gin.Context, topic string, initial func() services.Event) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	cl := &services.WSClient{Topic: topic, Conn: conn}
	err = rc.RT.Subscribe(cl, func() []byte {
		msg, err := json.Marshal(initial())
		if err != nil {
			slog.Error("realtime: marshal initial snapshot", "topic", topic, "err", err)
			return nil
		}
		return msg
	})
	if err != nil {
		rc.RT.Unregister(cl)
		return
	}

	done := make(chan struct{})
	defer close(done)

	// keep connections alive through proxies
	go func() {
		t := time.NewTicker(pingInterval)
		defer t.Stop()
		for {
			select {
			case <-done:
				return
			case <-t.C:
				if err := cl.Ping(); err != nil {
					rc.RT.Unregister(cl)
					return
				}
			}
		}
	}()

	// read loop ends on client close/error → unregister
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			rc.RT.Unregister(cl)
			return
		}
	}
}
