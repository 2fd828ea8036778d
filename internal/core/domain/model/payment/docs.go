// Package payment models a single charge attempt for an order: the amount
// to collect, the settlement method, and a monotone status machine driven by
// the payment-gateway outcome (Pending -> Completed or Failed, with
// Completed -> Refunded as the only backward-looking transition).
package payment
