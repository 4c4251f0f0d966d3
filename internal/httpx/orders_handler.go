package httpx

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ariefcatur/go-storefront/internal/storage"
)

// maxItemQuantity bounds a single order line so totals stay far from int
// overflow.
const maxItemQuantity = 1000

type CreateOrderReq struct {
	UserID          *string          `json:"user_id"`
	CustomerID      *string          `json:"customer_id"`
	ShippingAddress map[string]any   `json:"shipping_address"`
	Notes           string           `json:"notes"`
	ShippingCents   int              `json:"shipping_cents"`
	TaxCents        int              `json:"tax_cents"`
	Items           []OrderItemInput `json:"items"`
}

type OrderItemInput struct {
	ProductID string  `json:"product_id"`
	VariantID *string `json:"variant_id"`
	Quantity  int     `json:"quantity"`
}

type OrderResp struct {
	*storage.Order
	Items []storage.OrderItem `json:"items"`
}

func (h *Handler) registerOrders(r chi.Router) {
	r.Post("/orders", h.createOrder)
	r.Get("/orders/{id}", h.getOrder)
	r.Get("/orders/number/{number}", h.getOrderByNumber)
	r.Patch("/orders/{id}/status", h.updateOrderStatus)
}

// createOrder prices the items from the catalog and stores the order with its
// lines. Stock is not reserved here.
func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	var req CreateOrderReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if len(req.Items) == 0 {
		writeError(w, http.StatusBadRequest, "missing items")
		return
	}
	if req.ShippingCents < 0 || req.TaxCents < 0 || req.ShippingCents > math.MaxInt32 || req.TaxCents > math.MaxInt32 {
		writeError(w, http.StatusBadRequest, "shipping_cents and tax_cents out of range")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	lines := make([]storage.OrderItem, 0, len(req.Items))
	subtotal := 0
	for _, it := range req.Items {
		if it.Quantity <= 0 || it.Quantity > maxItemQuantity {
			writeError(w, http.StatusBadRequest, "quantity must be between 1 and "+strconv.Itoa(maxItemQuantity))
			return
		}
		p, err := h.Store.GetProduct(ctx, it.ProductID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if p == nil || !p.IsActive {
			writeError(w, http.StatusBadRequest, "unknown product "+it.ProductID)
			return
		}
		if p.PriceCents < 0 || p.PriceCents > math.MaxInt32 {
			writeError(w, http.StatusInternalServerError, "product "+p.ID+" has an invalid price")
			return
		}
		total := p.PriceCents * it.Quantity
		if subtotal > math.MaxInt/2-total {
			writeError(w, http.StatusBadRequest, "order total too large")
			return
		}
		subtotal += total
		lines = append(lines, storage.OrderItem{
			ProductID:   p.ID,
			VariantID:   it.VariantID,
			ProductName: p.Name,
			Quantity:    it.Quantity,
			PriceCents:  p.PriceCents,
			TotalCents:  total,
		})
	}

	o, err := h.Store.CreateOrder(ctx, storage.Order{
		UserID:          req.UserID,
		CustomerID:      req.CustomerID,
		Status:          storage.OrderPending,
		PaymentStatus:   "pending",
		SubtotalCents:   subtotal,
		TaxCents:        req.TaxCents,
		ShippingCents:   req.ShippingCents,
		TotalCents:      subtotal + req.TaxCents + req.ShippingCents,
		ShippingAddress: req.ShippingAddress,
		Notes:           req.Notes,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	items := make([]storage.OrderItem, 0, len(lines))
	for _, l := range lines {
		l.OrderID = o.ID
		it, err := h.Store.CreateOrderItem(ctx, l)
		if err != nil {
			// items go with the order through the order_id cascade
			if _, derr := h.Store.DeleteOrder(context.WithoutCancel(ctx), o.ID); derr != nil {
				h.Log.Error("rollback order", "order_id", o.ID, "err", derr)
			}
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		items = append(items, *it)
	}
	writeJSON(w, http.StatusCreated, OrderResp{Order: o, Items: items})
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	o, err := h.Store.GetOrder(ctx, chi.URLParam(r, "id"))
	h.writeOrder(ctx, w, o, err)
}

func (h *Handler) getOrderByNumber(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	o, err := h.Store.GetOrderByNumber(ctx, chi.URLParam(r, "number"))
	h.writeOrder(ctx, w, o, err)
}

func (h *Handler) writeOrder(ctx context.Context, w http.ResponseWriter, o *storage.Order, err error) {
	if err != nil || o == nil {
		respond(w, o, err)
		return
	}
	items, err := h.Store.ListOrderItems(ctx, o.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, OrderResp{Order: o, Items: items})
}

func (h *Handler) updateOrderStatus(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Status storage.OrderStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Status == "" {
		writeError(w, http.StatusBadRequest, "missing status")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	o, err := h.Store.UpdateOrderStatus(ctx, chi.URLParam(r, "id"), body.Status)
	respond(w, o, err)
}
