package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"orderdesk/internal/model"
	"orderdesk/internal/query"
)

// ListOrders reads one page of the order collection for the given query
// descriptor and maps it into the display model.
func (c *Client) ListOrders(ctx context.Context, d query.Descriptor) (model.OrderPage, error) {
	resp, err := c.do(ctx, http.MethodGet, "/api/orders?"+d.Encode(), nil)
	if err != nil {
		return model.OrderPage{}, err
	}

	if resp.StatusCode != http.StatusOK {
		return model.OrderPage{}, decodeError(resp)
	}
	defer resp.Body.Close()

	var paged pagedOrders
	if err := json.NewDecoder(resp.Body).Decode(&paged); err != nil {
		return model.OrderPage{}, fmt.Errorf("decode orders response: %w", err)
	}

	orders := make([]model.OrderSummary, 0, len(paged.Content))
	for _, wire := range paged.Content {
		summary, err := toOrderSummary(wire)
		if err != nil {
			return model.OrderPage{}, err
		}
		orders = append(orders, summary)
	}

	c.logger.Debug().
		Int("count", len(orders)).
		Int("total_elements", paged.TotalElements).
		Int("page", d.Page).
		Msg("orders fetched")

	return model.OrderPage{
		Orders:        orders,
		TotalElements: paged.TotalElements,
	}, nil
}

// UpdateOrder writes an order update and returns the updated order as the
// backend reports it.
func (c *Client) UpdateOrder(ctx context.Context, orderID string, update model.OrderUpdate) (model.OrderSummary, error) {
	path := "/api/orders/" + url.PathEscape(orderID)

	resp, err := c.do(ctx, http.MethodPut, path, update)
	if err != nil {
		return model.OrderSummary{}, err
	}

	if resp.StatusCode != http.StatusOK {
		return model.OrderSummary{}, decodeError(resp)
	}
	defer resp.Body.Close()

	var wire apiOrder
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		return model.OrderSummary{}, fmt.Errorf("decode update response: %w", err)
	}

	summary, err := toOrderSummary(wire)
	if err != nil {
		return model.OrderSummary{}, err
	}

	c.logger.Info().
		Str("order_id", orderID).
		Str("status", string(summary.Status)).
		Msg("order updated")

	return summary, nil
}

// loginRequest is the login payload.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// loginResponse is the login response carrying the bearer token.
type loginResponse struct {
	Token string `json:"token"`
}

// Login authenticates against the backend and returns the bearer token.
// The token is not stored; callers decide whether to put it in the session.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	resp, err := c.do(ctx, http.MethodPost, "/api/auth/login", loginRequest{
		Email:    email,
		Password: password,
	})
	if err != nil {
		return "", err
	}

	if resp.StatusCode != http.StatusOK {
		return "", decodeError(resp)
	}
	defer resp.Body.Close()

	var body loginResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("decode login response: %w", err)
	}

	if body.Token == "" {
		return "", fmt.Errorf("login response contained no token")
	}

	c.logger.Info().Str("email", email).Msg("login succeeded")
	return body.Token, nil
}
