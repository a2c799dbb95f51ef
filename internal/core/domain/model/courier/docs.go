// Package courier models the parts of a courier profile the dispatch core needs.
//
// A Courier carries:
//   - an Availability (AVAILABLE, ON_DELIVERY, OFFLINE, SUSPENDED);
//   - a last known Location used by geographic matching;
//   - EmploymentLinks to organizations, each active or inactive;
//   - delivery and cancellation counters maintained by lifecycle commands.
//
// Only AVAILABLE couriers are offered new deliveries by dispatch, but an
// ON_DELIVERY courier may still accept one (see CanAccept).
package courier
