// Package dispatch runs the escalation cascade that offers a pending delivery to
// couriers in three widening tiers:
//
//  1. couriers employed by the client's primary contracted organization;
//  2. couriers of the client's other active contracted organizations;
//  3. every available courier around the pickup point.
//
// Each tier matches couriers within the default radius (5 km) and falls back to
// the extended radius (10 km) when nobody is found. Invitations inside a tier go
// out one at a time, closest courier first, with a fixed pause between sends.
// A tier that notified somebody is followed by a wait (2 minutes by default)
// before the next tier; an empty tier escalates immediately.
//
// The delivery status is re-read before every tier and every send. As soon as
// the delivery is no longer PENDING the cascade stops quietly. Progress is
// recorded in a ports.DispatchTaskStore, whose notified courier ids also make
// those couriers eligible to accept the delivery.
package dispatch
