// Package services provides domain services that orchestrate business
// operations across multiple domain entities in the fulfillment system. It
// implements workflows that don't naturally belong to a single aggregate root.
//
// The package includes:
//   - InventoryAllocator: A domain service that satisfies product demand
//     across multiple warehouses, with all-or-nothing rollback when combined
//     stock falls short, and releases reservation receipts on cancellation
//
// Domain services coordinate between aggregates, implementing business logic
// that spans multiple bounded contexts following Domain-Driven Design
// principles.
package services
