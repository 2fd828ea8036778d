package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/delivery"
)

// CourierService defines the contract with the external courier provider.
// Implementations create shipments and expose the courier's view of a
// parcel's progress.
type CourierService interface {
	// CreateShipment registers the delivery with the courier and returns the
	// tracking number the courier issued for it.
	CreateShipment(ctx context.Context, del *delivery.Delivery) (string, error)

	// GetTrackingStatus returns the courier's current status for a tracking
	// number, mapped onto the delivery status machine.
	GetTrackingStatus(ctx context.Context, trackingNumber string) (delivery.Status, error)
}
