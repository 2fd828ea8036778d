// Package warehouse provides the per-location stock ledger of the
// fulfillment system and the reservation receipts produced when stock is
// taken from it.
//
// The package includes:
//   - Warehouse: An aggregate holding available quantity per product,
//     mutated only through atomic reserve/release/replenish operations
//   - Reservation: A receipt recording exactly which warehouses were
//     debited to satisfy a product demand, used to release stock
//     symmetrically when a later fulfillment step fails
//
// Key business rules:
//   - A product's available quantity is never negative
//   - The check-and-decrement of a reservation is atomic per warehouse:
//     two concurrent reservations can never both succeed on the same
//     single remaining quantity
//   - A reservation receipt's lines always sum to its total quantity
package warehouse
