// Package delivery contains the Delivery aggregate and its lifecycle.
//
// The aggregate is the single authority over delivery status. Forward
// transitions follow Pending -> Accepted -> PickedUp -> InTransit -> Completed,
// Cancel is allowed from any non-terminal status, and RevertToPending undoes
// an acceptance whose payment lapsed.
//
// Payment-wait is a flag beside the status rather than a status of its own.
// The application layer decides (through PaymentTimingPolicy) whether Accept
// or StartTransit enters it, and ConfirmPayment lifts it. While it is set the
// next forward transition is rejected with errs.InvalidStateError.
//
// Example:
//
//	d, err := delivery.NewDelivery(id, clientID, nil, route, delivery.TypeDelivery,
//	    delivery.VehicleAny, 2500, 800, time.Now())
//	if err != nil {
//	    return err
//	}
//	if err = d.Accept(courierID, true, time.Now()); err != nil {
//	    return err
//	}
//	_ = d.ConfirmPickup(courierID, time.Now()) // InvalidStateError: awaiting payment
package delivery
