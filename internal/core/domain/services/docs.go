// Package services holds stateless domain services that work across aggregates:
//   - GeoMatcher: Haversine distance and radius-bounded courier search;
//   - PaymentTimingPolicy: which lifecycle checkpoint requires payment;
//   - PayoutSplitCalculator: integer split of payments among participants;
//   - SpecialZoneResolver: nearest enclosing surcharge zone.
//
// None of them perform I/O; callers load aggregates through ports and pass them in.
package services
