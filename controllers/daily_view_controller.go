package controllers

import (
	"net/http"

	"familydiet/models"
	"familydiet/services"

	"github.com/gin-gonic/gin"
)

type DailyViewController struct {
	Daily *services.DailyViewService
}

func NewDailyViewController(ds *services.DailyViewService) *DailyViewController {
	return &DailyViewController{Daily: ds}
}

func (dc *DailyViewController) View(c *gin.Context) {
	v, err := dc.Daily.DailyView(c.Request.Context(), c.Param("date"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

func (dc *DailyViewController) Feedback(c *gin.Context) {
	fb, err := dc.Daily.Feedback(c.Request.Context(), c.Param("date"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, fb)
}

func (dc *DailyViewController) Detail(c *gin.Context) {
	d, err := dc.Daily.MemberMealDetail(c.Request.Context(), c.Param("date"), c.Param("mealId"), c.Param("memberId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

func (dc *DailyViewController) QuickMark(c *gin.Context) {
	e, err := dc.Daily.QuickMark(c.Request.Context(), c.Param("date"), c.Param("mealId"), c.Param("memberId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, e)
}

type TrackInput struct {
	Items []models.ConsumedItem `json:"items" binding:"required"`
}

func (dc *DailyViewController) Track(c *gin.Context) {
	var in TrackInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	e, err := dc.Daily.TrackConsumption(c.Request.Context(), c.Param("date"), c.Param("mealId"), c.Param("memberId"), in.Items)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, e)
}

type ToggleInput struct {
	Name string `json:"name" binding:"required"`
}

func (dc *DailyViewController) Toggle(c *gin.Context) {
	var in ToggleInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	e, err := dc.Daily.ToggleItem(c.Request.Context(), c.Param("date"), c.Param("mealId"), c.Param("memberId"), in.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, e)
}
