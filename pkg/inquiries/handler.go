package inquiries

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"dgw/pkg/response"
)

type InquiryHandler struct {
	service InquiryService
}

func NewInquiryHandler(service InquiryService) *InquiryHandler {
	return &InquiryHandler{service: service}
}

func (h *InquiryHandler) RegisterRoutes(router *gin.Engine) {
	router.POST("/inquiries", h.SubmitInquiry)
}

func (h *InquiryHandler) RegisterAdminRoutes(admin *gin.RouterGroup) {
	admin.GET("/inquiries", h.ListInquiries)
	admin.GET("/inquiries/:id", h.GetInquiry)
	admin.PATCH("/inquiries/:id/status", h.UpdateStatus)
	admin.PATCH("/inquiries/:id/notes", h.UpdateNotes)
}

type submitInquiryRequest struct {
	ItemID    *string `json:"item_id"`
	ItemTitle *string `json:"item_title"`
	Name      string  `json:"name" binding:"required"`
	Email     string  `json:"email" binding:"required,email"`
	Phone     *string `json:"phone"`
	Message   *string `json:"message"`
}

type updateInquiryStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type updateInquiryNotesRequest struct {
	Notes string `json:"notes" binding:"required"`
}

// SubmitInquiry godoc
// @Summary      Submit an inquiry
// @Description  Records a client inquiry about an item or the service in general
// @Tags         inquiries
// @Accept       json
// @Produce      json
// @Param        inquiry  body      submitInquiryRequest  true  "Inquiry details"
// @Success      201      {object}  response.APIResponse
// @Failure      400      {object}  response.APIResponse
// @Router       /inquiries [post]
func (h *InquiryHandler) SubmitInquiry(c *gin.Context) {
	var req submitInquiryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendAPIResponse(c, http.StatusBadRequest, false, "invalid request body", nil)
		return
	}
	if req.ItemID != nil {
		if _, err := uuid.Parse(*req.ItemID); err != nil {
			response.SendAPIResponse(c, http.StatusBadRequest, false, "invalid item id", nil)
			return
		}
	}

	inq := Inquiry{
		ItemID:    req.ItemID,
		ItemTitle: req.ItemTitle,
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Message:   req.Message,
	}

	created, err := h.service.SubmitInquiry(c.Request.Context(), inq)
	if err != nil {
		log.Printf("submit inquiry: %v", err)
		response.SendAPIResponse(c, http.StatusInternalServerError, false, "failed to submit inquiry", nil)
		return
	}

	response.SendAPIResponse(c, http.StatusCreated, true, "inquiry submitted", created)
}

// ListInquiries godoc
// @Summary      List inquiries
// @Description  Returns inquiries, optionally filtered by status, newest first
// @Tags         admin
// @Produce      json
// @Param        status  query     string  false  "Filter by status"  Enums(new, contacted, closed)
// @Param        page    query     int     false  "Page number"
// @Param        limit   query     int     false  "Page size"
// @Success      200     {object}  response.APIResponse
// @Failure      400     {object}  response.APIResponse
// @Security     AdminKey
// @Router       /admin/inquiries [get]
func (h *InquiryHandler) ListInquiries(c *gin.Context) {
	var status *string
	if s := c.Query("status"); s != "" {
		if !IsValidStatus(s) {
			response.SendAPIResponse(c, http.StatusBadRequest, false, "invalid status filter", nil)
			return
		}
		status = &s
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if limit > 100 {
		limit = 100
	}

	list, total, err := h.service.ListInquiries(c.Request.Context(), status, page, limit)
	if err != nil {
		log.Printf("list inquiries: %v", err)
		response.SendAPIResponse(c, http.StatusInternalServerError, false, "failed to list inquiries", nil)
		return
	}

	response.SendAPIResponse(c, http.StatusOK, true, "inquiries retrieved", gin.H{
		"inquiries": list,
		"total":     total,
		"page":      page,
		"limit":     limit,
	})
}

// GetInquiry godoc
// @Summary      Get an inquiry
// @Tags         admin
// @Produce      json
// @Param        id   path      string  true  "Inquiry ID"
// @Success      200  {object}  response.APIResponse
// @Failure      404  {object}  response.APIResponse
// @Security     AdminKey
// @Router       /admin/inquiries/{id} [get]
func (h *InquiryHandler) GetInquiry(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		response.SendAPIResponse(c, http.StatusBadRequest, false, "invalid inquiry id", nil)
		return
	}

	inq, err := h.service.GetInquiryByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrInquiryNotFound) {
			response.SendAPIResponse(c, http.StatusNotFound, false, "inquiry not found", nil)
			return
		}
		log.Printf("get inquiry: %v", err)
		response.SendAPIResponse(c, http.StatusInternalServerError, false, "failed to get inquiry", nil)
		return
	}

	response.SendAPIResponse(c, http.StatusOK, true, "inquiry retrieved", inq)
}

// UpdateStatus godoc
// @Summary      Update inquiry status
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id      path      string                      true  "Inquiry ID"
// @Param        status  body      updateInquiryStatusRequest  true  "New status"
// @Success      200     {object}  response.APIResponse
// @Failure      400     {object}  response.APIResponse
// @Failure      404     {object}  response.APIResponse
// @Security     AdminKey
// @Router       /admin/inquiries/{id}/status [patch]
func (h *InquiryHandler) UpdateStatus(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		response.SendAPIResponse(c, http.StatusBadRequest, false, "invalid inquiry id", nil)
		return
	}

	var req updateInquiryStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendAPIResponse(c, http.StatusBadRequest, false, "invalid request body", nil)
		return
	}

	err := h.service.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidStatus):
			response.SendAPIResponse(c, http.StatusBadRequest, false, "invalid inquiry status", nil)
		case errors.Is(err, ErrInquiryNotFound):
			response.SendAPIResponse(c, http.StatusNotFound, false, "inquiry not found", nil)
		default:
			log.Printf("update inquiry status: %v", err)
			response.SendAPIResponse(c, http.StatusInternalServerError, false, "failed to update inquiry", nil)
		}
		return
	}

	response.SendAPIResponse(c, http.StatusOK, true, "inquiry status updated", nil)
}

// UpdateNotes godoc
// @Summary      Update inquiry notes
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id     path      string                     true  "Inquiry ID"
// @Param        notes  body      updateInquiryNotesRequest  true  "Internal notes"
// @Success      200    {object}  response.APIResponse
// @Failure      404    {object}  response.APIResponse
// @Security     AdminKey
// @Router       /admin/inquiries/{id}/notes [patch]
func (h *InquiryHandler) UpdateNotes(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		response.SendAPIResponse(c, http.StatusBadRequest, false, "invalid inquiry id", nil)
		return
	}

	var req updateInquiryNotesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendAPIResponse(c, http.StatusBadRequest, false, "invalid request body", nil)
		return
	}

	err := h.service.UpdateNotes(c.Request.Context(), id, req.Notes)
	if err != nil {
		if errors.Is(err, ErrInquiryNotFound) {
			response.SendAPIResponse(c, http.StatusNotFound, false, "inquiry not found", nil)
			return
		}
		log.Printf("update inquiry notes: %v", err)
		response.SendAPIResponse(c, http.StatusInternalServerError, false, "failed to update inquiry", nil)
		return
	}

	response.SendAPIResponse(c, http.StatusOK, true, "inquiry notes updated", nil)
}
