package offers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockOfferService struct {
	mock.Mock
}

func (m *mockOfferService) SubmitOffer(ctx context.Context, input SubmitOfferInput) (SubmitResult, error) {
	args := m.Called(ctx, input)
	return args.Get(0).(SubmitResult), args.Error(1)
}

func (m *mockOfferService) AcceptOffer(ctx context.Context, id string, amountOverride *float64) (AcceptResult, error) {
	args := m.Called(ctx, id, amountOverride)
	return args.Get(0).(AcceptResult), args.Error(1)
}

func (m *mockOfferService) DeclineOffer(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockOfferService) CounterOffer(ctx context.Context, id string, amount float64) error {
	args := m.Called(ctx, id, amount)
	return args.Error(0)
}

func (m *mockOfferService) UpdateStatus(ctx context.Context, id, status string) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *mockOfferService) UpdateNotes(ctx context.Context, id, notes string) error {
	args := m.Called(ctx, id, notes)
	return args.Error(0)
}

func (m *mockOfferService) GetOfferByID(ctx context.Context, id string) (Offer, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(Offer), args.Error(1)
}

func (m *mockOfferService) ListOffers(ctx context.Context, filters OfferFilters, page, limit int) (OfferList, error) {
	args := m.Called(ctx, filters, page, limit)
	return args.Get(0).(OfferList), args.Error(1)
}

func setupOfferRouter(svc OfferService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewOfferHandler(svc)
	h.RegisterRoutes(r)
	h.RegisterAdminRoutes(r.Group("/admin"))
	return r
}

func postJSON(r *gin.Engine, path string, payload any) *httptest.ResponseRecorder {
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSubmitOfferHandler_AutoAccepted(t *testing.T) {
	svc := new(mockOfferService)
	r := setupOfferRouter(svc)
	itemID := uuid.NewString()
	url := "https://pay.example.com/in_1"

	svc.On("SubmitOffer", mock.Anything, mock.MatchedBy(func(in SubmitOfferInput) bool {
		return in.ItemID == itemID && in.OfferAmount == 3500
	})).Return(SubmitResult{OfferID: "of_1", AutoAccepted: true, InvoiceURL: &url}, nil)

	w := postJSON(r, "/offers", map[string]any{
		"item_id":      itemID,
		"name":         "Avery Collins",
		"email":        "avery@example.com",
		"offer_amount": 3500,
	})

	require.Equal(t, http.StatusCreated, w.Code)
	require.Contains(t, w.Body.String(), `"auto_accepted":true`)
	require.Contains(t, w.Body.String(), url)
	svc.AssertExpectations(t)
}

func TestSubmitOfferHandler_MissingFields(t *testing.T) {
	svc := new(mockOfferService)
	r := setupOfferRouter(svc)

	w := postJSON(r, "/offers", map[string]any{"name": "Avery Collins"})

	require.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "SubmitOffer")
}

func TestSubmitOfferHandler_SoldItem(t *testing.T) {
	svc := new(mockOfferService)
	r := setupOfferRouter(svc)
	itemID := uuid.NewString()

	svc.On("SubmitOffer", mock.Anything, mock.Anything).Return(SubmitResult{}, ErrItemSold)

	w := postJSON(r, "/offers", map[string]any{
		"item_id":      itemID,
		"name":         "Avery Collins",
		"email":        "avery@example.com",
		"offer_amount": 5000,
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSubmitOfferHandler_ItemNotFound(t *testing.T) {
	svc := new(mockOfferService)
	r := setupOfferRouter(svc)

	svc.On("SubmitOffer", mock.Anything, mock.Anything).Return(SubmitResult{}, ErrItemNotFound)

	w := postJSON(r, "/offers", map[string]any{
		"item_id":      uuid.NewString(),
		"name":         "Avery Collins",
		"email":        "avery@example.com",
		"offer_amount": 5000,
	})

	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestAcceptOfferHandler_Success(t *testing.T) {
	svc := new(mockOfferService)
	r := setupOfferRouter(svc)
	id := uuid.NewString()

	svc.On("AcceptOffer", mock.Anything, id, mock.MatchedBy(func(a *float64) bool {
		return a != nil && *a == 8000
	})).Return(AcceptResult{InvoiceID: "in_1", InvoiceURL: "https://pay.example.com/in_1"}, nil)

	w := postJSON(r, "/admin/offers/"+id+"/accept", map[string]any{"amount": 8000})

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "in_1")
	svc.AssertExpectations(t)
}

func TestAcceptOfferHandler_GatewayFailure(t *testing.T) {
	svc := new(mockOfferService)
	r := setupOfferRouter(svc)
	id := uuid.NewString()

	svc.On("AcceptOffer", mock.Anything, id, (*float64)(nil)).Return(AcceptResult{}, ErrGateway)

	req := httptest.NewRequest(http.MethodPost, "/admin/offers/"+id+"/accept", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadGateway, w.Code)
}

func TestAcceptOfferHandler_Conflict(t *testing.T) {
	svc := new(mockOfferService)
	r := setupOfferRouter(svc)
	id := uuid.NewString()

	svc.On("AcceptOffer", mock.Anything, id, (*float64)(nil)).Return(AcceptResult{}, ErrStatusConflict)

	req := httptest.NewRequest(http.MethodPost, "/admin/offers/"+id+"/accept", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusConflict, w.Code)
}

func TestDeclineOfferHandler_NotFound(t *testing.T) {
	svc := new(mockOfferService)
	r := setupOfferRouter(svc)
	id := uuid.NewString()

	svc.On("DeclineOffer", mock.Anything, id).Return(ErrOfferNotFound)

	req := httptest.NewRequest(http.MethodPost, "/admin/offers/"+id+"/decline", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestCounterOfferHandler_MissingAmount(t *testing.T) {
	svc := new(mockOfferService)
	r := setupOfferRouter(svc)
	id := uuid.NewString()

	w := postJSON(r, "/admin/offers/"+id+"/counter", map[string]any{})

	require.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "CounterOffer")
}

func TestListOffersHandler_Filters(t *testing.T) {
	svc := new(mockOfferService)
	r := setupOfferRouter(svc)
	itemID := uuid.NewString()

	svc.On("ListOffers", mock.Anything, mock.MatchedBy(func(f OfferFilters) bool {
		return f.ItemID != nil && *f.ItemID == itemID && f.Status != nil && *f.Status == StatusPending
	}), 1, 10).Return(OfferList{Offers: []Offer{}, Page: 1, Limit: 10}, nil)

	req := httptest.NewRequest(http.MethodGet, "/admin/offers?item_id="+itemID+"&status=pending", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestListOffersHandler_InvalidStatus(t *testing.T) {
	svc := new(mockOfferService)
	r := setupOfferRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/admin/offers?status=haggling", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "ListOffers")
}

func TestUpdateOfferStatusHandler_Invalid(t *testing.T) {
	svc := new(mockOfferService)
	r := setupOfferRouter(svc)
	id := uuid.NewString()

	svc.On("UpdateStatus", mock.Anything, id, "haggling").Return(ErrInvalidStatus)

	body, _ := json.Marshal(map[string]string{"status": "haggling"})
	req := httptest.NewRequest(http.MethodPatch, "/admin/offers/"+id+"/status", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
}
