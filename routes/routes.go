package routes

import (
	"net/http"

	"familydiet/controllers"
	"familydiet/middlewares"

	"github.com/gin-gonic/gin"
)

type Deps struct {
	JWTSecret []byte

	Auth     *controllers.AuthController
	Family   *controllers.FamilyController
	Plans    *controllers.PlanController
	Daily    *controllers.DailyViewController
	Grocery  *controllers.GroceryController
	Devices  *controllers.DeviceController
	Realtime *controllers.RealtimeController
}

func SetupRouter(d Deps) *gin.Engine {
	r := gin.Default()

	r.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	auth := r.Group("/auth")
	{
		auth.POST("/session", d.Auth.Session)
	}

	api := r.Group("/api")
	api.Use(middlewares.AuthMiddleware(d.JWTSecret))

	family := api.Group("/family")
	{
		family.GET("", d.Family.List)
		family.POST("", d.Family.Create)
		family.GET("/:id", d.Family.Get)
		family.PUT("/:id", d.Family.Update)
		family.DELETE("/:id", d.Family.Deactivate)
	}

	plans := api.Group("/plans")
	{
		plans.GET("", d.Plans.Range)
		plans.GET("/:date", d.Plans.Get)
		plans.PUT("/:date", d.Plans.Upsert)
	}

	daily := api.Group("/daily/:date")
	{
		daily.GET("", d.Daily.View)
		daily.GET("/feedback", d.Daily.Feedback)

		mm := daily.Group("/meals/:mealId/members/:memberId")
		mm.GET("", d.Daily.Detail)
		mm.POST("/quick-mark", d.Daily.QuickMark)
		mm.PUT("/consumption", d.Daily.Track)
		mm.POST("/items/toggle", d.Daily.Toggle)
	}

	grocery := api.Group("/grocery-plans")
	{
		grocery.POST("", d.Grocery.Generate)
		grocery.GET("", d.Grocery.List)
		grocery.GET("/:id", d.Grocery.Get)
		grocery.PATCH("/:id/items/:key", d.Grocery.UpdateItem)
		grocery.POST("/:id/archive", d.Grocery.Archive)
		grocery.POST("/:id/email", d.Grocery.Email)
		grocery.POST("/:id/export", d.Grocery.Export)
	}

	api.POST("/devices", d.Devices.Register)

	ws := api.Group("/ws")
	{
		ws.GET("/daily/:date", d.Realtime.DailyWS)
		ws.GET("/grocery", d.Realtime.GroceryWS)
	}

	return r
}
