package controllers

import (
	"net/http"
	"strconv"

	"familydiet/models"
	"familydiet/services"

	"github.com/gin-gonic/gin"
)

type GroceryController struct {
	Grocery *services.GroceryService
}

func NewGroceryController(gs *services.GroceryService) *GroceryController {
	return &GroceryController{Grocery: gs}
}

func (gc *GroceryController) Generate(c *gin.Context) {
	var req services.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	gp, err := gc.Grocery.Generate(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gp)
}

func (gc *GroceryController) List(c *gin.Context) {
	plans, err := gc.Grocery.ActivePlans(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, plans)
}

// Get supports ?category=<cat>|all&showCompleted=true&sort=name|category|priority.
func (gc *GroceryController) Get(c *gin.Context) {
	f := services.GroceryFilter{Category: models.GroceryCategory(c.Query("category"))}
	if v := c.Query("showCompleted"); v != "" {
		show, err := strconv.ParseBool(v)
		if err != nil {
			badRequest(c, err)
			return
		}
		f.ShowCompleted = show
	}
	view, err := gc.Grocery.Plan(c.Request.Context(), c.Param("id"), f, c.Query("sort"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (gc *GroceryController) UpdateItem(c *gin.Context) {
	var patch services.ItemPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		badRequest(c, err)
		return
	}
	gp, err := gc.Grocery.UpdateItem(c.Request.Context(), c.Param("id"), c.Param("key"), patch)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gp)
}

func (gc *GroceryController) Archive(c *gin.Context) {
	gp, err := gc.Grocery.Archive(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gp)
}

type EmailInput struct {
	To string `json:"to" binding:"required,email"`
}

func (gc *GroceryController) Email(c *gin.Context) {
	var in EmailInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	if err := gc.Grocery.Email(c.Request.Context(), c.Param("id"), in.To); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "grocery list sent"})
}

func (gc *GroceryController) Export(c *gin.Context) {
	url, err := gc.Grocery.Export(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}
