package categories

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"dgw/pkg/response"
)

type CategoryHandler struct {
	service CategoryService
}

func NewCategoryHandler(service CategoryService) *CategoryHandler {
	return &CategoryHandler{service: service}
}

func (h *CategoryHandler) RegisterRoutes(router *gin.Engine) {
	router.GET("/categories", h.listCategories)
	router.GET("/categories/:slug", h.getCategoryBySlug)
}

func (h *CategoryHandler) RegisterAdminRoutes(admin *gin.RouterGroup) {
	admin.POST("/categories", h.createCategory)
	admin.PUT("/categories/:id", h.updateCategory)
	admin.DELETE("/categories/:id", h.deleteCategory)
}

type createCategoryRequest struct {
	Name         string  `json:"name" binding:"required"`
	Slug         string  `json:"slug"`
	Description  *string `json:"description"`
	ImageURL     *string `json:"image_url"`
	DisplayOrder int     `json:"display_order"`
	IsActive     *bool   `json:"is_active"`
}

// @Summary      List categories
// @Description  Retrieves active categories ordered for display. Pass include_inactive=true for the admin view.
// @Tags         categories
// @Produce      json
// @Param        include_inactive  query  bool  false  "Include inactive categories"
// @Success      200  {object}  response.APIResponse{data=[]Category} "Categories retrieved successfully"
// @Failure      500  {object}  response.APIResponse "Internal server error"
// @Router       /categories [get]
func (h *CategoryHandler) listCategories(c *gin.Context) {
	includeInactive, _ := strconv.ParseBool(c.DefaultQuery("include_inactive", "false"))

	list, err := h.service.ListCategories(c.Request.Context(), includeInactive)
	if err != nil {
		response.SendAPIResponse(c, http.StatusInternalServerError, false, err.Error(), nil)
		return
	}

	response.SendAPIResponse(c, http.StatusOK, true, "categories listed", list)
}

// @Summary      Get category by slug
// @Description  Retrieves a single active category by its URL slug
// @Tags         categories
// @Produce      json
// @Param        slug  path  string  true  "Category slug"
// @Success      200  {object}  response.APIResponse{data=Category} "Category retrieved successfully"
// @Failure      404  {object}  response.APIResponse "Category not found"
// @Failure      500  {object}  response.APIResponse "Internal server error"
// @Router       /categories/{slug} [get]
func (h *CategoryHandler) getCategoryBySlug(c *gin.Context) {
	cat, err := h.service.GetCategoryBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if err == ErrCategoryNotFound {
			response.SendAPIResponse(c, http.StatusNotFound, false, "category not found", nil)
			return
		}
		response.SendAPIResponse(c, http.StatusInternalServerError, false, err.Error(), nil)
		return
	}

	response.SendAPIResponse(c, http.StatusOK, true, "category fetched", cat)
}

// @Summary      Create a category
// @Description  Creates a new category. Slug is derived from the name when omitted.
// @Tags         categories
// @Accept       json
// @Produce      json
// @Param        request body createCategoryRequest true "Category creation request"
// @Success      201  {object}  response.APIResponse{data=Category} "Category created successfully"
// @Failure      400  {object}  response.APIResponse "Invalid request payload"
// @Failure      409  {object}  response.APIResponse "Slug already in use"
// @Failure      500  {object}  response.APIResponse "Internal server error"
// @Router       /admin/categories [post]
func (h *CategoryHandler) createCategory(c *gin.Context) {
	var req createCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendAPIResponse(c, http.StatusBadRequest, false, "invalid request payload", nil)
		return
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	cat, err := h.service.CreateCategory(c.Request.Context(), Category{
		Name:         req.Name,
		Slug:         req.Slug,
		Description:  req.Description,
		ImageURL:     req.ImageURL,
		DisplayOrder: req.DisplayOrder,
		IsActive:     isActive,
	})
	if err != nil {
		if err == ErrSlugTaken {
			response.SendAPIResponse(c, http.StatusConflict, false, "category slug already in use", nil)
			return
		}
		response.SendAPIResponse(c, http.StatusInternalServerError, false, err.Error(), nil)
		return
	}

	response.SendAPIResponse(c, http.StatusCreated, true, "category created", cat)
}

// @Summary      Update a category
// @Description  Updates an existing category's details
// @Tags         categories
// @Accept       json
// @Produce      json
// @Param        id   path      string  true  "Category ID"
// @Param        request body createCategoryRequest true "Category update request"
// @Success      200  {object}  response.APIResponse{data=Category} "Category updated successfully"
// @Failure      400  {object}  response.APIResponse "Invalid request"
// @Failure      404  {object}  response.APIResponse "Category not found"
// @Failure      409  {object}  response.APIResponse "Slug already in use"
// @Failure      500  {object}  response.APIResponse "Internal server error"
// @Router       /admin/categories/{id} [put]
func (h *CategoryHandler) updateCategory(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		response.SendAPIResponse(c, http.StatusBadRequest, false, "invalid category id", nil)
		return
	}

	var req createCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendAPIResponse(c, http.StatusBadRequest, false, "invalid request payload", nil)
		return
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	cat, err := h.service.UpdateCategory(c.Request.Context(), Category{
		ID:           id,
		Name:         req.Name,
		Slug:         req.Slug,
		Description:  req.Description,
		ImageURL:     req.ImageURL,
		DisplayOrder: req.DisplayOrder,
		IsActive:     isActive,
	})
	if err != nil {
		if err == ErrCategoryNotFound {
			response.SendAPIResponse(c, http.StatusNotFound, false, "category not found", nil)
			return
		}
		if err == ErrSlugTaken {
			response.SendAPIResponse(c, http.StatusConflict, false, "category slug already in use", nil)
			return
		}
		response.SendAPIResponse(c, http.StatusInternalServerError, false, err.Error(), nil)
		return
	}

	response.SendAPIResponse(c, http.StatusOK, true, "category updated", cat)
}

// @Summary      Delete a category
// @Description  Deletes a category by ID. Items in the category are kept and detached.
// @Tags         categories
// @Produce      json
// @Param        id   path      string  true  "Category ID"
// @Success      200  {object}  response.APIResponse "Category deleted successfully"
// @Failure      400  {object}  response.APIResponse "Invalid category ID"
// @Failure      404  {object}  response.APIResponse "Category not found"
// @Failure      500  {object}  response.APIResponse "Internal server error"
// @Router       /admin/categories/{id} [delete]
func (h *CategoryHandler) deleteCategory(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		response.SendAPIResponse(c, http.StatusBadRequest, false, "invalid category id", nil)
		return
	}

	if err := h.service.DeleteCategory(c.Request.Context(), id); err != nil {
		if err == ErrCategoryNotFound {
			response.SendAPIResponse(c, http.StatusNotFound, false, "category not found", nil)
			return
		}
		response.SendAPIResponse(c, http.StatusInternalServerError, false, err.Error(), nil)
		return
	}

	response.SendAPIResponse(c, http.StatusOK, true, "category deleted", nil)
}
