package ports

import "marketplace/internal/core/domain/model/kernel"

// Dispatcher runs escalation cascades in the background. Start replaces any
// cascade already running for the delivery; Stop cancels it. Both return immediately.
type Dispatcher interface {
	Start(deliveryID kernel.UUID)
	Stop(deliveryID kernel.UUID)
}
