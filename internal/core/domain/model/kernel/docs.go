// Package kernel provides the shared value objects used across the
// fulfillment domain model: UUID identity, Money amounts, and destination
// Address values.
//
// All kernel types are immutable value objects created through validating
// constructors. The zero value of each type is invalid and is detected by
// the Validate method, following the constructor-guard pattern.
package kernel
