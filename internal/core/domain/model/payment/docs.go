// Package payment models payments that settle deliveries.
//
// A payment may cover several deliveries at once (consolidated payment). It
// starts PENDING and moves exactly once to COMPLETED, FAILED, EXPIRED or
// CANCELLED. PENDING customer payments with an expiry deadline are swept by the
// expiration reconciler once IsDue reports true.
package payment
