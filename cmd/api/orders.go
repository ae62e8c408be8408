package main

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/Zyntrix-company/Qruzine/internal/domain"
	"github.com/Zyntrix-company/Qruzine/internal/service"
	"github.com/go-chi/chi"
)

type PlacedOrder struct {
	OrderID       string             `json:"orderID"`
	Status        domain.OrderStatus `json:"status"`
	CreatedAt     time.Time          `json:"createdAt"`
	EstimatedTime int                `json:"estimatedTime"`
	Subtotal      float64            `json:"subtotal"`
	Tax           float64            `json:"tax"`
	Total         float64            `json:"total"`
}

// placeOrderHandler godoc
//
//	@Summary		Place an order
//	@Description	Guest checkout. Prices are computed on the server from the current menu.
//	@Tags			orders
//	@Accept			json
//	@Produce		json
//	@Param			request	body		service.PlaceOrderInput	true	"Order"
//	@Success		201		{object}	PlacedOrder
//	@Failure		400		{object}	envelope
//	@Failure		404		{object}	envelope
//	@Router			/orders [post]
func (app *application) placeOrderHandler(w http.ResponseWriter, r *http.Request) {
	var req service.PlaceOrderInput
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	order, err := app.services.orders.Place(r.Context(), req)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	placed := PlacedOrder{
		OrderID:       order.OrderID,
		Status:        order.Status,
		CreatedAt:     order.CreatedAt,
		EstimatedTime: order.EstimatedTime,
		Subtotal:      order.Subtotal,
		Tax:           order.Tax,
		Total:         order.Total,
	}

	if err := app.messageResponse(w, http.StatusCreated, "Order placed successfully", placed); err != nil {
		app.internalServerError(w, r, err)
	}
}

// trackOrderHandler godoc
//
//	@Summary	Track an order
//	@Tags		orders
//	@Produce	json
//	@Param		orderID	path		string	true	"Order number, e.g. ORD-250114-3F9A1C"
//	@Success	200		{object}	service.TrackedOrder
//	@Failure	404		{object}	envelope
//	@Router		/orders/track/{orderID} [get]
func (app *application) trackOrderHandler(w http.ResponseWriter, r *http.Request) {
	tracked, err := app.services.orders.Track(r.Context(), chi.URLParam(r, "orderID"))
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, tracked); err != nil {
		app.internalServerError(w, r, err)
	}
}

// listOrdersHandler godoc
//
//	@Summary	List orders
//	@Tags		orders
//	@Produce	json
//	@Param		restaurantID	query		string	false	"Restaurant ID (admin only)"
//	@Param		status			query		string	false	"Status"
//	@Param		from			query		string	false	"RFC 3339 or YYYY-MM-DD"
//	@Param		to				query		string	false	"RFC 3339 or YYYY-MM-DD"
//	@Param		page			query		int		false	"Page (1-based)"
//	@Param		limit			query		int		false	"Page size (max 100)"
//	@Success	200				{object}	service.OrderPage
//	@Failure	400				{object}	envelope
//	@Security	ApiKeyAuth
//	@Router		/orders [get]
func (app *application) listOrdersHandler(w http.ResponseWriter, r *http.Request) {
	rid, err := app.optionalRestaurantScope(r)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	filter, err := orderFilter(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	filter.RestaurantID = rid

	page, err := app.services.orders.List(r.Context(), filter)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, page); err != nil {
		app.internalServerError(w, r, err)
	}
}

func orderFilter(r *http.Request) (domain.OrderFilter, error) {
	q := r.URL.Query()
	filter := domain.OrderFilter{Status: domain.OrderStatus(q.Get("status"))}

	var err error
	if filter.From, err = parseDate(q.Get("from"), false); err != nil {
		return filter, fmt.Errorf("invalid from: %w", err)
	}
	if filter.To, err = parseDate(q.Get("to"), true); err != nil {
		return filter, fmt.Errorf("invalid to: %w", err)
	}

	for name, dst := range map[string]*int{"page": &filter.Page, "limit": &filter.Limit} {
		raw := q.Get(name)
		if raw == "" {
			continue
		}
		if *dst, err = strconv.Atoi(raw); err != nil {
			return filter, fmt.Errorf("invalid %s", name)
		}
	}

	return filter, nil
}

// parseDate accepts RFC 3339 or a bare date. A bare end date covers that
// whole day.
func parseDate(raw string, endOfDay bool) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		return time.Time{}, err
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return t, nil
}

// getOrderHandler godoc
//
//	@Summary	Get order
//	@Tags		orders
//	@Produce	json
//	@Param		id	path		string	true	"Order ID"
//	@Success	200	{object}	domain.Order
//	@Failure	404	{object}	envelope
//	@Security	ApiKeyAuth
//	@Router		/orders/{id} [get]
func (app *application) getOrderHandler(w http.ResponseWriter, r *http.Request) {
	rid, err := app.optionalRestaurantScope(r)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	order, err := app.services.orders.Get(r.Context(), rid, id)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, order); err != nil {
		app.internalServerError(w, r, err)
	}
}

// updateOrderStatusHandler godoc
//
//	@Summary		Change order status
//	@Description	Any status may be set; every change is recorded in the order's history
//	@Tags			orders
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string				true	"Order ID"
//	@Param			request	body		service.StatusChange	true	"New status"
//	@Success		200		{object}	domain.Order
//	@Failure		400		{object}	envelope
//	@Failure		404		{object}	envelope
//	@Security		ApiKeyAuth
//	@Router			/orders/{id}/status [patch]
func (app *application) updateOrderStatusHandler(w http.ResponseWriter, r *http.Request) {
	rid, err := app.optionalRestaurantScope(r)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var req service.StatusChange
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	order, err := app.services.orders.UpdateStatus(r.Context(), rid, id, req, claimsFrom(r).UserID)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := app.messageResponse(w, http.StatusOK, "Order status updated", order); err != nil {
		app.internalServerError(w, r, err)
	}
}

// orderHistoryHandler godoc
//
//	@Summary	Order status history
//	@Tags		orders
//	@Produce	json
//	@Param		id	path	string	true	"Order ID"
//	@Success	200	{array}	domain.OrderStatusAudit
//	@Security	ApiKeyAuth
//	@Router		/orders/{id}/history [get]
func (app *application) orderHistoryHandler(w http.ResponseWriter, r *http.Request) {
	rid, err := app.optionalRestaurantScope(r)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	history, err := app.services.orders.History(r.Context(), rid, id)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := listResponse(w, history); err != nil {
		app.internalServerError(w, r, err)
	}
}
