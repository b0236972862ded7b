package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/classpoints/internal/app/models"
	"github.com/yigit/classpoints/internal/app/models/dto"
	"github.com/yigit/classpoints/internal/app/services"
	"github.com/yigit/classpoints/internal/middleware"
)

// StoreController handles catalog and purchase endpoints
type StoreController struct {
	storeService services.StoreService
}

// NewStoreController creates a new StoreController
func NewStoreController(storeService services.StoreService) *StoreController {
	return &StoreController{
		storeService: storeService,
	}
}

// GetItems lists the catalog
// @Summary List store items
// @Tags store
// @Produce json
// @Success 200 {array} models.StoreItem
// @Router /items [get]
func (c *StoreController) GetItems(ctx *gin.Context) {
	items, err := c.storeService.ListItems(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, items)
}

// CreateItem adds a catalog item (admin)
// @Summary Add store item
// @Tags store
// @Accept json
// @Produce json
// @Param request body dto.CreateItemRequest true "Item"
// @Success 200 {object} dto.CreateItemResponse
// @Failure 403 {object} dto.ErrorResponse "Admin password mismatch"
// @Failure 409 {object} dto.ErrorResponse "Key already taken"
// @Router /items [post]
func (c *StoreController) CreateItem(ctx *gin.Context) {
	var req dto.CreateItemRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	item := &models.StoreItem{
		KeyName: req.KeyName,
		Name:    req.Name,
		Cost:    *req.Cost,
		Type:    models.ItemType(req.Type),
	}
	if err := c.storeService.AddItem(ctx, req.AdminPw, item); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.CreateItemResponse{Success: true, Item: item})
}

// Buy purchases an item for a student
// @Summary Buy store item
// @Description Insufficient points return success=false with a message.
// @Tags store
// @Accept json
// @Produce json
// @Param request body dto.BuyRequest true "Purchase"
// @Success 200 {object} dto.BuyResponse
// @Failure 404 {object} dto.ErrorResponse "Student or item not found"
// @Router /buy [post]
func (c *StoreController) Buy(ctx *gin.Context) {
	var req dto.BuyRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	result, err := c.storeService.Buy(ctx, req.StudentID, req.ItemKey)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.BuyResponse{
		Success: result.Success,
		Message: result.Message,
		Student: result.Student,
	})
}

// GetPurchases lists a student's purchases, newest first
// @Summary Purchase history
// @Tags store
// @Produce json
// @Param studentId path int true "Student ID"
// @Success 200 {array} models.Purchase
// @Router /purchases/{studentId} [get]
func (c *StoreController) GetPurchases(ctx *gin.Context) {
	studentID, ok := parseIDParam(ctx, "studentId")
	if !ok {
		return
	}

	purchases, err := c.storeService.Purchases(ctx, studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, purchases)
}
