// Package delivery models the shipment leg of an order: destination
// address, courier reference, tracking number, and a status machine driven
// by courier events (Pending -> Shipped -> InTransit -> Delivered, with
// Returned for parcels that come back).
package delivery
