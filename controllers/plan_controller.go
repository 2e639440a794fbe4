package controllers

import (
	"net/http"

	"familydiet/models"
	"familydiet/services"

	"github.com/gin-gonic/gin"
)

type PlanController struct {
	Plans *services.PlanService
}

func NewPlanController(ps *services.PlanService) *PlanController {
	return &PlanController{Plans: ps}
}

// Upsert stores the extracted plan for :date, replacing any previous one.
func (pc *PlanController) Upsert(c *gin.Context) {
	var data models.ExtractedData
	if err := c.ShouldBindJSON(&data); err != nil {
		badRequest(c, err)
		return
	}
	plan, err := pc.Plans.Upsert(c.Request.Context(), c.Param("date"), data)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

func (pc *PlanController) Get(c *gin.Context) {
	plan, err := pc.Plans.Get(c.Request.Context(), c.Param("date"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

func (pc *PlanController) Range(c *gin.Context) {
	plans, err := pc.Plans.Range(c.Request.Context(), c.Query("from"), c.Query("to"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, plans)
}
