// Package order provides domain entities and business logic for order
// management in the fulfillment system. It implements the Order aggregate
// root with lifecycle management and state transitions.
//
// The package includes:
//   - Order: The aggregate root that manages order identity, line items,
//     the attached payment and delivery, and held stock reservations
//   - Item: An immutable order line with the unit price captured at order time
//   - Status: A state machine that enforces valid order status transitions
//
// Key business rules:
//   - Orders follow the workflow: Created -> Processing -> InDelivery -> Delivered
//   - Cancellation is possible from Created and Processing only
//   - Line items are immutable once the order leaves Created
//   - At most one payment and one delivery per order; the payment amount
//     always equals the order total
//   - An order never enters delivery without a completed payment
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
