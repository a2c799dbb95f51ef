// Package kernel holds the value objects shared by every aggregate of the
// marketplace: UUID identifiers and geographic Locations with Haversine distance.
//
// Both are immutable and safe for concurrent use. Zero values are invalid and
// fail Validate.
package kernel
