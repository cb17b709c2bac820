package ordersync

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/harvestlink-app/harvestlink-backend/internal/cart"
	"github.com/harvestlink-app/harvestlink-backend/pkg/config"
	"github.com/harvestlink-app/harvestlink-backend/pkg/logger"
)

// Client talks to the remote order service. Mutation mirroring is advisory;
// order submission at checkout is the one call whose result matters.
type Client struct {
	baseURL    string
	mirrorPath string
	orderPath  string
	httpClient *http.Client
	logg       *logger.Logger
}

// NewClient wires the order-service client from configuration.
func NewClient(cfg config.OrderSyncConfig, logg *logger.Logger) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		return nil, fmt.Errorf("order sync base url required")
	}
	return &Client{
		baseURL:    base,
		mirrorPath: cfg.MirrorPath,
		orderPath:  cfg.OrderPath,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logg:       logg,
	}, nil
}

type mirrorPayload struct {
	Event      string          `json:"event"`
	ProductID  uuid.UUID       `json:"product_id"`
	Name       string          `json:"name,omitempty"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	SupplierID uuid.UUID       `json:"supplier_id"`
}

// SubmitMutation mirrors one local cart mutation to the order service.
func (c *Client) SubmitMutation(ctx context.Context, event cart.MirrorEvent) error {
	payload := mirrorPayload{
		Event:      string(event.Type),
		ProductID:  event.ProductID,
		Name:       event.Name,
		Quantity:   event.Quantity,
		UnitPrice:  event.UnitPrice,
		SupplierID: event.SupplierID,
	}
	return c.post(ctx, c.mirrorPath, event.Credential, payload, nil)
}

// OrderLine is one submitted line item.
type OrderLine struct {
	ProductID uuid.UUID       `json:"product_id"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// OrderSubmission is the checkout payload sent to the order service.
type OrderSubmission struct {
	SupplierID  uuid.UUID       `json:"supplier_id"`
	Lines       []OrderLine     `json:"lines"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	DeliveryFee decimal.Decimal `json:"delivery_fee"`
	Total       decimal.Decimal `json:"total"`
	Address     string          `json:"address"`
	Date        string          `json:"date"`
	TimeWindow  string          `json:"time_window,omitempty"`
	Notes       string          `json:"notes,omitempty"`
	Urgency     string          `json:"urgency"`
}

type orderResponse struct {
	OrderID uuid.UUID `json:"order_id"`
}

// SubmitOrder finalizes checkout with the order service and returns the
// created order id. When the service answers without a body, an id is minted
// locally so the caller still has a reference.
func (c *Client) SubmitOrder(ctx context.Context, credential string, submission OrderSubmission) (uuid.UUID, error) {
	var resp orderResponse
	if err := c.post(ctx, c.orderPath, credential, submission, &resp); err != nil {
		return uuid.Nil, err
	}
	if resp.OrderID == uuid.Nil {
		resp.OrderID = uuid.New()
	}
	return resp.OrderID, nil
}

func (c *Client) post(ctx context.Context, path, credential string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encoding payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if credential != "" {
		req.Header.Set("Authorization", "Bearer "+credential)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("calling order service: %w", err)
	}
	defer func() {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("order service returned status %d", resp.StatusCode)
	}

	if out != nil {
		// A body-less success is fine; the response payload is optional.
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil && err != io.EOF {
			return nil
		}
	}
	return nil
}
