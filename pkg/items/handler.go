package items

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"dgw/pkg/response"
	"dgw/pkg/tier"
)

type ItemHandler struct {
	service ItemService
}

func NewItemHandler(service ItemService) *ItemHandler {
	return &ItemHandler{service: service}
}

func (h *ItemHandler) RegisterRoutes(router *gin.Engine) {
	router.GET("/items", h.listItems)
	router.GET("/items/:id", h.getItemByID)
}

func (h *ItemHandler) RegisterAdminRoutes(admin *gin.RouterGroup) {
	admin.POST("/items", h.createItem)
	admin.PUT("/items/:id", h.updateItem)
	admin.DELETE("/items/:id", h.deleteItem)
	admin.PATCH("/items/:id/mark-sold", h.markItemSold)
	admin.PATCH("/items/:id/unlist", h.unlistItem)
	admin.POST("/items/:id/images", h.addImage)
	admin.DELETE("/items/:id/images/:imageID", h.deleteImage)
}

type itemRequest struct {
	Title          string   `json:"title" binding:"required"`
	Description    *string  `json:"description"`
	CategoryID     *string  `json:"category_id"`
	Price          *float64 `json:"price"`
	ReservePrice   *float64 `json:"reserve_price"`
	PriceOnRequest bool     `json:"price_on_request"`
	Condition      *string  `json:"condition"`
	Provenance     *string  `json:"provenance"`
	OfferTier      *string  `json:"offer_tier"`
	IsFeatured     bool     `json:"is_featured"`
	IsSold         bool     `json:"is_sold"`
	IsActive       *bool    `json:"is_active"`
	DisplayOrder   int      `json:"display_order"`
}

type addImageRequest struct {
	ImageURL     string  `json:"image_url" binding:"required"`
	AltText      *string `json:"alt_text"`
	IsPrimary    bool    `json:"is_primary"`
	DisplayOrder int     `json:"display_order"`
}

func (req *itemRequest) validate() string {
	if req.Price != nil && *req.Price < 0 {
		return "price cannot be negative"
	}
	if req.ReservePrice != nil && *req.ReservePrice < 0 {
		return "reserve_price cannot be negative"
	}
	if req.OfferTier != nil && *req.OfferTier != "" && !tier.IsValid(*req.OfferTier) {
		return "invalid offer_tier"
	}
	if req.CategoryID != nil && *req.CategoryID != "" {
		if _, err := uuid.Parse(*req.CategoryID); err != nil {
			return "invalid category_id"
		}
	}
	return ""
}

func (req *itemRequest) toItem() Item {
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	// Price-on-request items never expose a list price.
	price := req.Price
	if req.PriceOnRequest {
		price = nil
	}

	return Item{
		Title:          req.Title,
		Description:    req.Description,
		CategoryID:     req.CategoryID,
		Price:          price,
		ReservePrice:   req.ReservePrice,
		PriceOnRequest: req.PriceOnRequest,
		Condition:      req.Condition,
		Provenance:     req.Provenance,
		OfferTier:      req.OfferTier,
		IsFeatured:     req.IsFeatured,
		IsSold:         req.IsSold,
		IsActive:       isActive,
		DisplayOrder:   req.DisplayOrder,
	}
}

// @Summary      List items
// @Description  Retrieves a paginated list of active items with optional filters
// @Tags         items
// @Produce      json
// @Param        page         query     int     false  "Page number" default(1)
// @Param        limit        query     int     false  "Items per page" default(10)
// @Param        category_id  query     string  false  "Filter by category ID"
// @Param        is_sold      query     bool    false  "Filter by sold status"
// @Param        is_featured  query     bool    false  "Filter by featured flag"
// @Param        condition    query     string  false  "Filter by condition"
// @Success      200  {object}  response.APIResponse{data=ItemList} "Items retrieved successfully"
// @Failure      500  {object}  response.APIResponse "Internal server error"
// @Router       /items [get]
func (h *ItemHandler) listItems(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit <= 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}

	filters := ItemFilters{}

	if categoryID := c.Query("category_id"); categoryID != "" {
		if _, err := uuid.Parse(categoryID); err == nil {
			filters.CategoryID = &categoryID
		}
	}

	if isSoldStr := c.Query("is_sold"); isSoldStr != "" {
		if isSold, err := strconv.ParseBool(isSoldStr); err == nil {
			filters.IsSold = &isSold
		}
	}

	if isFeaturedStr := c.Query("is_featured"); isFeaturedStr != "" {
		if isFeatured, err := strconv.ParseBool(isFeaturedStr); err == nil {
			filters.IsFeatured = &isFeatured
		}
	}

	if condition := c.Query("condition"); condition != "" {
		filters.Condition = &condition
	}

	itemsList, total, err := h.service.ListItems(c.Request.Context(), filters, page, limit)
	if err != nil {
		response.SendAPIResponse(c, http.StatusInternalServerError, false, err.Error(), nil)
		return
	}

	data := ItemList{Items: itemsList, Total: total, Page: page, Limit: limit}
	response.SendAPIResponse(c, http.StatusOK, true, "items listed", data)
}

// @Summary      Get item by ID
// @Description  Retrieves a single item with its images and effective offer tier
// @Tags         items
// @Produce      json
// @Param        id   path      string  true  "Item ID"
// @Success      200  {object}  response.APIResponse{data=Item} "Item retrieved successfully"
// @Failure      400  {object}  response.APIResponse "Invalid item ID"
// @Failure      404  {object}  response.APIResponse "Item not found"
// @Failure      500  {object}  response.APIResponse "Internal server error"
// @Router       /items/{id} [get]
func (h *ItemHandler) getItemByID(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		response.SendAPIResponse(c, http.StatusBadRequest, false, "invalid item id", nil)
		return
	}

	it, err := h.service.GetItemByID(c.Request.Context(), id)
	if err != nil {
		if err == ErrItemNotFound {
			response.SendAPIResponse(c, http.StatusNotFound, false, "item not found", nil)
			return
		}
		response.SendAPIResponse(c, http.StatusInternalServerError, false, err.Error(), nil)
		return
	}

	response.SendAPIResponse(c, http.StatusOK, true, "item fetched", it)
}

// @Summary      Create a new item
// @Description  Creates a new catalog item
// @Tags         items
// @Accept       json
// @Produce      json
// @Param        request body itemRequest true "Item creation request"
// @Success      201  {object}  response.APIResponse{data=Item} "Item created successfully"
// @Failure      400  {object}  response.APIResponse "Invalid request payload"
// @Failure      500  {object}  response.APIResponse "Internal server error"
// @Router       /admin/items [post]
func (h *ItemHandler) createItem(c *gin.Context) {
	var req itemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendAPIResponse(c, http.StatusBadRequest, false, "invalid request payload", nil)
		return
	}

	if msg := req.validate(); msg != "" {
		response.SendAPIResponse(c, http.StatusBadRequest, false, msg, nil)
		return
	}

	it, err := h.service.CreateItem(c.Request.Context(), req.toItem())
	if err != nil {
		response.SendAPIResponse(c, http.StatusInternalServerError, false, err.Error(), nil)
		return
	}

	response.SendAPIResponse(c, http.StatusCreated, true, "item created", it)
}

// @Summary      Update an item
// @Description  Updates an existing item's details
// @Tags         items
// @Accept       json
// @Produce      json
// @Param        id   path      string  true  "Item ID"
// @Param        request body itemRequest true "Item update request"
// @Success      200  {object}  response.APIResponse{data=Item} "Item updated successfully"
// @Failure      400  {object}  response.APIResponse "Invalid request"
// @Failure      404  {object}  response.APIResponse "Item not found"
// @Failure      500  {object}  response.APIResponse "Internal server error"
// @Router       /admin/items/{id} [put]
func (h *ItemHandler) updateItem(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		response.SendAPIResponse(c, http.StatusBadRequest, false, "invalid item id", nil)
		return
	}

	var req itemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendAPIResponse(c, http.StatusBadRequest, false, "invalid request payload", nil)
		return
	}

	if msg := req.validate(); msg != "" {
		response.SendAPIResponse(c, http.StatusBadRequest, false, msg, nil)
		return
	}

	input := req.toItem()
	input.ID = id

	it, err := h.service.UpdateItem(c.Request.Context(), input)
	if err != nil {
		if err == ErrItemNotFound {
			response.SendAPIResponse(c, http.StatusNotFound, false, "item not found", nil)
			return
		}
		response.SendAPIResponse(c, http.StatusInternalServerError, false, err.Error(), nil)
		return
	}

	response.SendAPIResponse(c, http.StatusOK, true, "item updated", it)
}

// @Summary      Delete an item
// @Description  Deletes an item and its images
// @Tags         items
// @Produce      json
// @Param        id   path      string  true  "Item ID"
// @Success      200  {object}  response.APIResponse "Item deleted successfully"
// @Failure      400  {object}  response.APIResponse "Invalid item ID"
// @Failure      404  {object}  response.APIResponse "Item not found"
// @Failure      500  {object}  response.APIResponse "Internal server error"
// @Router       /admin/items/{id} [delete]
func (h *ItemHandler) deleteItem(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		response.SendAPIResponse(c, http.StatusBadRequest, false, "invalid item id", nil)
		return
	}

	if err := h.service.DeleteItem(c.Request.Context(), id); err != nil {
		if err == ErrItemNotFound {
			response.SendAPIResponse(c, http.StatusNotFound, false, "item not found", nil)
			return
		}
		response.SendAPIResponse(c, http.StatusInternalServerError, false, err.Error(), nil)
		return
	}

	response.SendAPIResponse(c, http.StatusOK, true, "item deleted", nil)
}

// @Summary      Mark item as sold
// @Description  Marks an item as sold. Fails if the item is already sold or inactive.
// @Tags         items
// @Produce      json
// @Param        id   path      string  true  "Item ID"
// @Success      200  {object}  response.APIResponse "Item marked as sold successfully"
// @Failure      400  {object}  response.APIResponse "Invalid item ID"
// @Failure      404  {object}  response.APIResponse "Item not found"
// @Failure      409  {object}  response.APIResponse "Item already marked as sold"
// @Failure      500  {object}  response.APIResponse "Internal server error"
// @Router       /admin/items/{id}/mark-sold [patch]
func (h *ItemHandler) markItemSold(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		response.SendAPIResponse(c, http.StatusBadRequest, false, "invalid item id", nil)
		return
	}

	if err := h.service.MarkItemSold(c.Request.Context(), id); err != nil {
		if err == ErrItemNotFound {
			response.SendAPIResponse(c, http.StatusNotFound, false, "item not found", nil)
			return
		}
		if err == ErrAlreadySold {
			response.SendAPIResponse(c, http.StatusConflict, false, "item already marked as sold", nil)
			return
		}
		response.SendAPIResponse(c, http.StatusInternalServerError, false, err.Error(), nil)
		return
	}

	response.SendAPIResponse(c, http.StatusOK, true, "item marked as sold", nil)
}

// @Summary      Unlist an item
// @Description  Soft deletes an item by setting is_active to false. Item won't appear in storefront listings.
// @Tags         items
// @Produce      json
// @Param        id   path      string  true  "Item ID"
// @Success      200  {object}  response.APIResponse "Item unlisted successfully"
// @Failure      400  {object}  response.APIResponse "Invalid item ID"
// @Failure      404  {object}  response.APIResponse "Item not found"
// @Failure      500  {object}  response.APIResponse "Internal server error"
// @Router       /admin/items/{id}/unlist [patch]
func (h *ItemHandler) unlistItem(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		response.SendAPIResponse(c, http.StatusBadRequest, false, "invalid item id", nil)
		return
	}

	if err := h.service.UnlistItem(c.Request.Context(), id); err != nil {
		if err == ErrItemNotFound {
			response.SendAPIResponse(c, http.StatusNotFound, false, "item not found", nil)
			return
		}
		response.SendAPIResponse(c, http.StatusInternalServerError, false, err.Error(), nil)
		return
	}

	response.SendAPIResponse(c, http.StatusOK, true, "item unlisted", nil)
}

// @Summary      Add an item image
// @Description  Attaches an image URL to an item
// @Tags         items
// @Accept       json
// @Produce      json
// @Param        id   path      string  true  "Item ID"
// @Param        request body addImageRequest true "Image request"
// @Success      201  {object}  response.APIResponse{data=ItemImage} "Image added successfully"
// @Failure      400  {object}  response.APIResponse "Invalid request"
// @Failure      404  {object}  response.APIResponse "Item not found"
// @Failure      500  {object}  response.APIResponse "Internal server error"
// @Router       /admin/items/{id}/images [post]
func (h *ItemHandler) addImage(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		response.SendAPIResponse(c, http.StatusBadRequest, false, "invalid item id", nil)
		return
	}

	var req addImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendAPIResponse(c, http.StatusBadRequest, false, "invalid request payload", nil)
		return
	}

	img, err := h.service.AddImage(c.Request.Context(), ItemImage{
		ItemID:       id,
		ImageURL:     req.ImageURL,
		AltText:      req.AltText,
		IsPrimary:    req.IsPrimary,
		DisplayOrder: req.DisplayOrder,
	})
	if err != nil {
		if err == ErrItemNotFound {
			response.SendAPIResponse(c, http.StatusNotFound, false, "item not found", nil)
			return
		}
		response.SendAPIResponse(c, http.StatusInternalServerError, false, err.Error(), nil)
		return
	}

	response.SendAPIResponse(c, http.StatusCreated, true, "image added", img)
}

// @Summary      Delete an item image
// @Description  Removes an image record from an item
// @Tags         items
// @Produce      json
// @Param        id       path  string  true  "Item ID"
// @Param        imageID  path  string  true  "Image ID"
// @Success      200  {object}  response.APIResponse "Image deleted successfully"
// @Failure      400  {object}  response.APIResponse "Invalid image ID"
// @Failure      404  {object}  response.APIResponse "Image not found"
// @Failure      500  {object}  response.APIResponse "Internal server error"
// @Router       /admin/items/{id}/images/{imageID} [delete]
func (h *ItemHandler) deleteImage(c *gin.Context) {
	imageID := c.Param("imageID")
	if _, err := uuid.Parse(imageID); err != nil {
		response.SendAPIResponse(c, http.StatusBadRequest, false, "invalid image id", nil)
		return
	}

	if err := h.service.DeleteImage(c.Request.Context(), imageID); err != nil {
		if err == ErrImageNotFound {
			response.SendAPIResponse(c, http.StatusNotFound, false, "image not found", nil)
			return
		}
		response.SendAPIResponse(c, http.StatusInternalServerError, false, err.Error(), nil)
		return
	}

	response.SendAPIResponse(c, http.StatusOK, true, "image deleted", nil)
}
