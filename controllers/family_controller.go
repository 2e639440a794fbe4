package controllers

import (
	"net/http"

	"familydiet/services"

	"github.com/gin-gonic/gin"
)

type FamilyController struct {
	Family *services.FamilyService
}

func NewFamilyController(fs *services.FamilyService) *FamilyController {
	return &FamilyController{Family: fs}
}

func (fc *FamilyController) List(c *gin.Context) {
	members, err := fc.Family.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, members)
}

func (fc *FamilyController) Get(c *gin.Context) {
	m, err := fc.Family.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

func (fc *FamilyController) Create(c *gin.Context) {
	var in services.MemberInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	m, err := fc.Family.Create(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, m)
}

func (fc *FamilyController) Update(c *gin.Context) {
	var in services.MemberInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	m, err := fc.Family.Update(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

func (fc *FamilyController) Deactivate(c *gin.Context) {
	if err := fc.Family.Deactivate(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
