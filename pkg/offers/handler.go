package offers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"dgw/pkg/response"
)

type OfferHandler struct {
	service OfferService
}

func NewOfferHandler(service OfferService) *OfferHandler {
	return &OfferHandler{service: service}
}

func (h *OfferHandler) RegisterRoutes(router *gin.Engine) {
	router.POST("/offers", h.SubmitOffer)
}

func (h *OfferHandler) RegisterAdminRoutes(admin *gin.RouterGroup) {
	admin.GET("/offers", h.ListOffers)
	admin.GET("/offers/:id", h.GetOffer)
	admin.POST("/offers/:id/accept", h.AcceptOffer)
	admin.POST("/offers/:id/decline", h.DeclineOffer)
	admin.POST("/offers/:id/counter", h.CounterOffer)
	admin.PATCH("/offers/:id/status", h.UpdateStatus)
	admin.PATCH("/offers/:id/notes", h.UpdateNotes)
}

type submitOfferRequest struct {
	ItemID           string  `json:"item_id" binding:"required"`
	Name             string  `json:"name" binding:"required"`
	Email            string  `json:"email" binding:"required,email"`
	Phone            *string `json:"phone"`
	OfferAmount      float64 `json:"offer_amount" binding:"required"`
	Message          *string `json:"message"`
	ShippingAddress1 *string `json:"shipping_address1"`
	ShippingAddress2 *string `json:"shipping_address2"`
	ShippingCity     *string `json:"shipping_city"`
	ShippingState    *string `json:"shipping_state"`
	ShippingZip      *string `json:"shipping_zip"`
	ShippingCountry  string  `json:"shipping_country"`
}

type acceptOfferRequest struct {
	Amount *float64 `json:"amount"`
}

type counterOfferRequest struct {
	CounterAmount float64 `json:"counter_amount" binding:"required"`
}

type updateOfferStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type updateOfferNotesRequest struct {
	Notes string `json:"notes" binding:"required"`
}

// SubmitOffer godoc
// @Summary      Submit a purchase offer
// @Description  Evaluates the offer against the item's tier and reserve price; standard-tier offers meeting reserve are auto-accepted and invoiced
// @Tags         offers
// @Accept       json
// @Produce      json
// @Param        offer  body      submitOfferRequest  true  "Offer details"
// @Success      201    {object}  response.APIResponse
// @Failure      400    {object}  response.APIResponse
// @Failure      404    {object}  response.APIResponse
// @Router       /offers [post]
func (h *OfferHandler) SubmitOffer(c *gin.Context) {
	var req submitOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendAPIResponse(c, http.StatusBadRequest, false, "invalid request body", nil)
		return
	}
	if _, err := uuid.Parse(req.ItemID); err != nil {
		response.SendAPIResponse(c, http.StatusBadRequest, false, "invalid item id", nil)
		return
	}

	result, err := h.service.SubmitOffer(c.Request.Context(), SubmitOfferInput{
		ItemID:           req.ItemID,
		Name:             req.Name,
		Email:            req.Email,
		Phone:            req.Phone,
		OfferAmount:      req.OfferAmount,
		Message:          req.Message,
		ShippingAddress1: req.ShippingAddress1,
		ShippingAddress2: req.ShippingAddress2,
		ShippingCity:     req.ShippingCity,
		ShippingState:    req.ShippingState,
		ShippingZip:      req.ShippingZip,
		ShippingCountry:  req.ShippingCountry,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidAmount):
			response.SendAPIResponse(c, http.StatusBadRequest, false, "offer amount must be greater than zero", nil)
		case errors.Is(err, ErrItemNotFound):
			response.SendAPIResponse(c, http.StatusNotFound, false, "item not found", nil)
		case errors.Is(err, ErrItemSold):
			response.SendAPIResponse(c, http.StatusBadRequest, false, "item is already sold", nil)
		default:
			log.Printf("submit offer: %v", err)
			response.SendAPIResponse(c, http.StatusInternalServerError, false, "failed to submit offer", nil)
		}
		return
	}

	response.SendAPIResponse(c, http.StatusCreated, true, "offer submitted", result)
}

// ListOffers godoc
// @Summary      List offers
// @Description  Returns offers newest first, optionally filtered by item and status
// @Tags         admin
// @Produce      json
// @Param        item_id  query     string  false  "Filter by item"
// @Param        status   query     string  false  "Filter by status"
// @Param        page     query     int     false  "Page number"
// @Param        limit    query     int     false  "Page size"
// @Success      200      {object}  response.APIResponse
// @Failure      400      {object}  response.APIResponse
// @Security     AdminKey
// @Router       /admin/offers [get]
func (h *OfferHandler) ListOffers(c *gin.Context) {
	var filters OfferFilters

	if itemID := c.Query("item_id"); itemID != "" {
		if _, err := uuid.Parse(itemID); err != nil {
			response.SendAPIResponse(c, http.StatusBadRequest, false, "invalid item id", nil)
			return
		}
		filters.ItemID = &itemID
	}
	if status := c.Query("status"); status != "" {
		if !IsValidStatus(status) {
			response.SendAPIResponse(c, http.StatusBadRequest, false, "invalid status filter", nil)
			return
		}
		filters.Status = &status
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if limit > 100 {
		limit = 100
	}

	list, err := h.service.ListOffers(c.Request.Context(), filters, page, limit)
	if err != nil {
		log.Printf("list offers: %v", err)
		response.SendAPIResponse(c, http.StatusInternalServerError, false, "failed to list offers", nil)
		return
	}

	response.SendAPIResponse(c, http.StatusOK, true, "offers retrieved", list)
}

// GetOffer godoc
// @Summary      Get an offer
// @Tags         admin
// @Produce      json
// @Param        id   path      string  true  "Offer ID"
// @Success      200  {object}  response.APIResponse
// @Failure      404  {object}  response.APIResponse
// @Security     AdminKey
// @Router       /admin/offers/{id} [get]
func (h *OfferHandler) GetOffer(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		response.SendAPIResponse(c, http.StatusBadRequest, false, "invalid offer id", nil)
		return
	}

	offer, err := h.service.GetOfferByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrOfferNotFound) {
			response.SendAPIResponse(c, http.StatusNotFound, false, "offer not found", nil)
			return
		}
		log.Printf("get offer: %v", err)
		response.SendAPIResponse(c, http.StatusInternalServerError, false, "failed to get offer", nil)
		return
	}

	response.SendAPIResponse(c, http.StatusOK, true, "offer retrieved", offer)
}

// AcceptOffer godoc
// @Summary      Accept an offer and send an invoice
// @Description  Issues an invoice for the offer amount (or a staff-specified amount) and marks the offer accepted; a billing failure leaves the offer unchanged
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id      path      string              true   "Offer ID"
// @Param        accept  body      acceptOfferRequest  false  "Optional amount override"
// @Success      200     {object}  response.APIResponse
// @Failure      400     {object}  response.APIResponse
// @Failure      404     {object}  response.APIResponse
// @Failure      409     {object}  response.APIResponse
// @Failure      502     {object}  response.APIResponse
// @Security     AdminKey
// @Router       /admin/offers/{id}/accept [post]
func (h *OfferHandler) AcceptOffer(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		response.SendAPIResponse(c, http.StatusBadRequest, false, "invalid offer id", nil)
		return
	}

	var req acceptOfferRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.SendAPIResponse(c, http.StatusBadRequest, false, "invalid request body", nil)
			return
		}
	}

	result, err := h.service.AcceptOffer(c.Request.Context(), id, req.Amount)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidAmount):
			response.SendAPIResponse(c, http.StatusBadRequest, false, "amount must be greater than zero", nil)
		case errors.Is(err, ErrOfferNotFound):
			response.SendAPIResponse(c, http.StatusNotFound, false, "offer not found", nil)
		case errors.Is(err, ErrStatusConflict):
			response.SendAPIResponse(c, http.StatusConflict, false, "offer cannot be accepted in its current state", nil)
		case errors.Is(err, ErrGateway):
			log.Printf("accept offer %s: %v", id, err)
			response.SendAPIResponse(c, http.StatusBadGateway, false, "invoice could not be issued; offer left unchanged", nil)
		default:
			log.Printf("accept offer %s: %v", id, err)
			response.SendAPIResponse(c, http.StatusInternalServerError, false, "failed to accept offer", nil)
		}
		return
	}

	response.SendAPIResponse(c, http.StatusOK, true, "offer accepted", result)
}

// DeclineOffer godoc
// @Summary      Decline an offer
// @Tags         admin
// @Produce      json
// @Param        id   path      string  true  "Offer ID"
// @Success      200  {object}  response.APIResponse
// @Failure      404  {object}  response.APIResponse
// @Failure      409  {object}  response.APIResponse
// @Security     AdminKey
// @Router       /admin/offers/{id}/decline [post]
func (h *OfferHandler) DeclineOffer(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		response.SendAPIResponse(c, http.StatusBadRequest, false, "invalid offer id", nil)
		return
	}

	if err := h.service.DeclineOffer(c.Request.Context(), id); err != nil {
		h.writeTransitionError(c, "decline offer", id, err)
		return
	}

	response.SendAPIResponse(c, http.StatusOK, true, "offer declined", nil)
}

// CounterOffer godoc
// @Summary      Counter an offer
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id       path      string               true  "Offer ID"
// @Param        counter  body      counterOfferRequest  true  "Counter amount"
// @Success      200      {object}  response.APIResponse
// @Failure      400      {object}  response.APIResponse
// @Failure      404      {object}  response.APIResponse
// @Failure      409      {object}  response.APIResponse
// @Security     AdminKey
// @Router       /admin/offers/{id}/counter [post]
func (h *OfferHandler) CounterOffer(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		response.SendAPIResponse(c, http.StatusBadRequest, false, "invalid offer id", nil)
		return
	}

	var req counterOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendAPIResponse(c, http.StatusBadRequest, false, "invalid request body", nil)
		return
	}

	if err := h.service.CounterOffer(c.Request.Context(), id, req.CounterAmount); err != nil {
		if errors.Is(err, ErrInvalidCounter) {
			response.SendAPIResponse(c, http.StatusBadRequest, false, "counter amount must be greater than zero", nil)
			return
		}
		h.writeTransitionError(c, "counter offer", id, err)
		return
	}

	response.SendAPIResponse(c, http.StatusOK, true, "counter offer recorded", nil)
}

// UpdateStatus godoc
// @Summary      Override an offer's status
// @Description  Staff override across the whole status vocabulary; stamps responded_at the first time the offer leaves pending
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id      path      string                    true  "Offer ID"
// @Param        status  body      updateOfferStatusRequest  true  "New status"
// @Success      200     {object}  response.APIResponse
// @Failure      400     {object}  response.APIResponse
// @Failure      404     {object}  response.APIResponse
// @Security     AdminKey
// @Router       /admin/offers/{id}/status [patch]
func (h *OfferHandler) UpdateStatus(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		response.SendAPIResponse(c, http.StatusBadRequest, false, "invalid offer id", nil)
		return
	}

	var req updateOfferStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendAPIResponse(c, http.StatusBadRequest, false, "invalid request body", nil)
		return
	}

	if err := h.service.UpdateStatus(c.Request.Context(), id, req.Status); err != nil {
		switch {
		case errors.Is(err, ErrInvalidStatus):
			response.SendAPIResponse(c, http.StatusBadRequest, false, "invalid offer status", nil)
		case errors.Is(err, ErrOfferNotFound):
			response.SendAPIResponse(c, http.StatusNotFound, false, "offer not found", nil)
		default:
			log.Printf("update offer status: %v", err)
			response.SendAPIResponse(c, http.StatusInternalServerError, false, "failed to update offer", nil)
		}
		return
	}

	response.SendAPIResponse(c, http.StatusOK, true, "offer status updated", nil)
}

// UpdateNotes godoc
// @Summary      Update an offer's internal notes
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id     path      string                   true  "Offer ID"
// @Param        notes  body      updateOfferNotesRequest  true  "Internal notes"
// @Success      200    {object}  response.APIResponse
// @Failure      404    {object}  response.APIResponse
// @Security     AdminKey
// @Router       /admin/offers/{id}/notes [patch]
func (h *OfferHandler) UpdateNotes(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		response.SendAPIResponse(c, http.StatusBadRequest, false, "invalid offer id", nil)
		return
	}

	var req updateOfferNotesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendAPIResponse(c, http.StatusBadRequest, false, "invalid request body", nil)
		return
	}

	if err := h.service.UpdateNotes(c.Request.Context(), id, req.Notes); err != nil {
		if errors.Is(err, ErrOfferNotFound) {
			response.SendAPIResponse(c, http.StatusNotFound, false, "offer not found", nil)
			return
		}
		log.Printf("update offer notes: %v", err)
		response.SendAPIResponse(c, http.StatusInternalServerError, false, "failed to update offer", nil)
		return
	}

	response.SendAPIResponse(c, http.StatusOK, true, "offer notes updated", nil)
}

func (h *OfferHandler) writeTransitionError(c *gin.Context, action, id string, err error) {
	switch {
	case errors.Is(err, ErrOfferNotFound):
		response.SendAPIResponse(c, http.StatusNotFound, false, "offer not found", nil)
	case errors.Is(err, ErrStatusConflict):
		response.SendAPIResponse(c, http.StatusConflict, false, "offer is no longer pending", nil)
	default:
		log.Printf("%s %s: %v", action, id, err)
		response.SendAPIResponse(c, http.StatusInternalServerError, false, "failed to update offer", nil)
	}
}
