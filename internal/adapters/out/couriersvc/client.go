// Package couriersvc implements the courier service port against the
// courier's HTTP API, with a Redis cache in front of tracking lookups.
package couriersvc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/pkg/cache"
)

const (
	defaultTimeout = 10 * time.Second

	// trackingTTL bounds how stale a cached tracking status may be. The
	// tracking job polls on a coarser schedule, so a short TTL only absorbs
	// bursts of duplicate lookups.
	trackingTTL = 30 * time.Second
)

// Client talks to the courier provider's HTTP API. Tracking statuses are
// cached in Redis briefly because couriers rate-limit tracking endpoints and
// the same parcel is often looked up by the job and the API at once.
type Client struct {
	baseURL    string
	httpClient *http.Client
	cache      cache.Cache
}

// NewClient creates a courier service client for the provider at baseURL.
// The cache may be nil, in which case every lookup hits the provider.
func NewClient(baseURL string, trackingCache cache.Cache) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
		cache:      trackingCache,
	}
}

type shipmentRequest struct {
	DeliveryID string `json:"delivery_id"`
	Street     string `json:"street"`
	City       string `json:"city"`
	Courier    string `json:"courier"`
}

type shipmentResponse struct {
	TrackingNumber string `json:"tracking_number"`
}

type trackingResponse struct {
	Status string `json:"status"`
}

// CreateShipment registers the delivery with the courier and returns the
// tracking number the courier issued for it.
func (c *Client) CreateShipment(ctx context.Context, del *delivery.Delivery) (string, error) {
	if err := del.Validate(); err != nil {
		return "", err
	}

	body, err := json.Marshal(shipmentRequest{
		DeliveryID: del.ID().String(),
		Street:     del.Address().Street(),
		City:       del.Address().City(),
		Courier:    del.Courier(),
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, c.baseURL+"/shipments", bytes.NewReader(body),
	)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("courier provider returned status %d", resp.StatusCode)
	}

	var shipment shipmentResponse
	if err = json.NewDecoder(resp.Body).Decode(&shipment); err != nil {
		return "", err
	}

	if shipment.TrackingNumber == "" {
		return "", fmt.Errorf("courier provider returned an empty tracking number")
	}

	return shipment.TrackingNumber, nil
}

// GetTrackingStatus returns the courier's current status for a tracking
// number, mapped onto the delivery status machine. Recent answers are served
// from the cache.
func (c *Client) GetTrackingStatus(ctx context.Context, trackingNumber string) (delivery.Status, error) {
	if cached, ok := c.cachedStatus(ctx, trackingNumber); ok {
		return statusFromProvider(cached)
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodGet, c.baseURL+"/shipments/"+trackingNumber, http.NoBody,
	)
	if err != nil {
		return delivery.Unknown, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return delivery.Unknown, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return delivery.Unknown, fmt.Errorf("courier provider returned status %d", resp.StatusCode)
	}

	var tracking trackingResponse
	if err = json.NewDecoder(resp.Body).Decode(&tracking); err != nil {
		return delivery.Unknown, err
	}

	c.storeStatus(ctx, trackingNumber, tracking.Status)
	return statusFromProvider(tracking.Status)
}

func (c *Client) cachedStatus(ctx context.Context, trackingNumber string) (string, bool) {
	if c.cache == nil {
		return "", false
	}

	value, err := c.cache.Get(ctx, c.cache.GenerateKey("tracking", trackingNumber))
	if err != nil {
		// Cache trouble must not break tracking; fall through to the provider.
		return "", false
	}

	return value, true
}

func (c *Client) storeStatus(ctx context.Context, trackingNumber, status string) {
	if c.cache == nil {
		return
	}

	_ = c.cache.Set(ctx, c.cache.GenerateKey("tracking", trackingNumber), status, trackingTTL)
}

// statusFromProvider maps the courier's wire statuses onto the delivery
// status machine.
func statusFromProvider(status string) (delivery.Status, error) {
	switch status {
	case "accepted":
		return delivery.Shipped, nil
	case "in_transit":
		return delivery.InTransit, nil
	case "delivered":
		return delivery.Delivered, nil
	case "returned":
		return delivery.Returned, nil
	default:
		return delivery.Unknown, fmt.Errorf("unknown courier status %q", status)
	}
}
