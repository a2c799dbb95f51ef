package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/courier"
	"marketplace/internal/core/domain/model/delivery"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/payment"
	"marketplace/internal/core/domain/model/zone"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

const paidEventType = "order.paid"

// Server exposes the marketplace use cases over REST.
// It translates JSON payloads into commands and queries and maps domain errors
// to status codes.
type Server struct {
	handlers   Handlers
	split      services.SplitConfig
	calculator services.PayoutSplitCalculator
	logger     *slog.Logger
}

// NewServer creates a server. split is the payout configuration quoted by
// GET /splits/quote and must match the one used when opening payments.
func NewServer(handlers Handlers, split services.SplitConfig, logger *slog.Logger) *Server {
	return &Server{
		handlers:   handlers,
		split:      split,
		calculator: services.NewPayoutSplitCalculator(),
		logger:     logger.With("component", "http_server"),
	}
}

// Register mounts every API route under /api/v1.
func (s *Server) Register(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/deliveries", s.CreateDelivery)
	api.GET("/deliveries/active", s.GetActiveDeliveries)
	api.GET("/deliveries/:id", s.GetDelivery)
	api.POST("/deliveries/:id/accept", s.AcceptDelivery)
	api.POST("/deliveries/:id/pickup", s.ConfirmPickup)
	api.POST("/deliveries/:id/transit", s.StartTransit)
	api.POST("/deliveries/:id/complete", s.CompleteDelivery)
	api.POST("/deliveries/:id/cancel", s.CancelDelivery)

	api.POST("/couriers", s.CreateCourier)
	api.PUT("/couriers/:id/status", s.UpdateCourierStatus)
	api.PUT("/couriers/:id/push-token", s.RegisterPushToken)
	api.PUT("/couriers/:id/organizations/:orgId", s.LinkCourier)

	api.POST("/contracts", s.CreateClientContract)

	api.POST("/zones", s.CreateSpecialZone)
	api.GET("/zones/resolve", s.ResolveSpecialZone)

	api.POST("/payments", s.OpenPayment)
	api.POST("/payments/webhook", s.PaymentWebhook)

	api.GET("/splits/quote", s.QuoteSplit)
}

// CreateDelivery godoc
//
//	@Summary	Create a delivery and start courier dispatch
//	@Tags		deliveries
//	@Accept		json
//	@Produce	json
//	@Param		delivery	body		NewDelivery	true	"Delivery to create"
//	@Success	201			{object}	CreatedResponse
//	@Failure	400			{object}	Error
//	@Router		/deliveries [post]
func (s *Server) CreateDelivery(ctx echo.Context) error {
	var body NewDelivery
	if err := ctx.Bind(&body); err != nil {
		return s.invalidBody(ctx)
	}

	cmd, err := newCreateDeliveryCommand(body)
	if err != nil {
		return s.fail(ctx, err)
	}
	if err = s.handlers.CreateDelivery.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreatedResponse{ID: cmd.DeliveryID().String()})
}

func newCreateDeliveryCommand(body NewDelivery) (commands.CreateDeliveryCommand, error) {
	clientID, err := parseID("clientId", body.ClientID)
	if err != nil {
		return commands.CreateDeliveryCommand{}, err
	}

	var organizerID *kernel.UUID
	if body.OrganizerID != nil && *body.OrganizerID != "" {
		id, parseErr := parseID("organizerId", *body.OrganizerID)
		if parseErr != nil {
			return commands.CreateDeliveryCommand{}, parseErr
		}
		organizerID = &id
	}

	origin, err := body.Origin.toDomain()
	if err != nil {
		return commands.CreateDeliveryCommand{}, err
	}
	destination, err := body.Destination.toDomain()
	if err != nil {
		return commands.CreateDeliveryCommand{}, err
	}
	route, err := delivery.NewRoute(origin, body.OriginAddress, destination, body.DestinationAddress)
	if err != nil {
		return commands.CreateDeliveryCommand{}, err
	}

	deliveryType, err := delivery.ParseType(body.Type)
	if err != nil {
		return commands.CreateDeliveryCommand{}, err
	}
	vehicleType, err := delivery.ParseVehicleType(body.VehicleType)
	if err != nil {
		return commands.CreateDeliveryCommand{}, err
	}

	return commands.NewCreateDeliveryCommand(
		clientID, organizerID, route, deliveryType, vehicleType, body.TotalAmount, body.ShippingFee,
	)
}

// GetDelivery godoc
//
//	@Summary	Get a delivery
//	@Tags		deliveries
//	@Produce	json
//	@Param		id	path		string	true	"Delivery ID"	format(uuid)
//	@Success	200	{object}	Delivery
//	@Failure	404	{object}	Error
//	@Router		/deliveries/{id} [get]
func (s *Server) GetDelivery(ctx echo.Context) error {
	deliveryID, err := parseID("id", ctx.Param("id"))
	if err != nil {
		return s.fail(ctx, err)
	}

	query, err := queries.NewGetDeliveryQuery(deliveryID)
	if err != nil {
		return s.fail(ctx, err)
	}
	view, err := s.handlers.GetDelivery.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, deliveryFromView(view))
}

// GetActiveDeliveries godoc
//
//	@Summary	List deliveries that are neither completed nor cancelled
//	@Tags		deliveries
//	@Produce	json
//	@Param		courierId	query		string	false	"Only deliveries of this courier"	format(uuid)
//	@Success	200			{array}		Delivery
//	@Router		/deliveries/active [get]
func (s *Server) GetActiveDeliveries(ctx echo.Context) error {
	var courierID *kernel.UUID
	if raw := ctx.QueryParam("courierId"); raw != "" {
		id, err := parseID("courierId", raw)
		if err != nil {
			return s.fail(ctx, err)
		}
		courierID = &id
	}

	views, err := s.handlers.GetActiveDeliveries.Handle(
		ctx.Request().Context(), queries.NewGetActiveDeliveriesQuery(courierID),
	)
	if err != nil {
		return s.fail(ctx, err)
	}

	response := make([]Delivery, len(views))
	for i, view := range views {
		response[i] = deliveryFromView(view)
	}
	return ctx.JSON(http.StatusOK, response)
}

// AcceptDelivery godoc
//
//	@Summary	Accept a pending delivery as a courier
//	@Tags		deliveries
//	@Accept		json
//	@Param		id		path	string			true	"Delivery ID"	format(uuid)
//	@Param		courier	body	CourierAction	true	"Acting courier"
//	@Success	204
//	@Failure	409	{object}	Error
//	@Router		/deliveries/{id}/accept [post]
func (s *Server) AcceptDelivery(ctx echo.Context) error {
	return s.courierAction(ctx, s.handlers.AssignCourier)
}

// ConfirmPickup godoc
//
//	@Summary	Confirm the courier collected the delivery
//	@Tags		deliveries
//	@Accept		json
//	@Param		id		path	string			true	"Delivery ID"	format(uuid)
//	@Param		courier	body	CourierAction	true	"Acting courier"
//	@Success	204
//	@Failure	409	{object}	Error
//	@Router		/deliveries/{id}/pickup [post]
func (s *Server) ConfirmPickup(ctx echo.Context) error {
	return s.courierAction(ctx, s.handlers.ConfirmPickup)
}

// StartTransit godoc
//
//	@Summary	Start the trip towards the destination
//	@Tags		deliveries
//	@Accept		json
//	@Param		id		path	string			true	"Delivery ID"	format(uuid)
//	@Param		courier	body	CourierAction	true	"Acting courier"
//	@Success	204
//	@Failure	409	{object}	Error
//	@Router		/deliveries/{id}/transit [post]
func (s *Server) StartTransit(ctx echo.Context) error {
	return s.courierAction(ctx, s.handlers.StartTransit)
}

// CompleteDelivery godoc
//
//	@Summary	Complete a delivery
//	@Tags		deliveries
//	@Accept		json
//	@Param		id		path	string			true	"Delivery ID"	format(uuid)
//	@Param		courier	body	CourierAction	true	"Acting courier"
//	@Success	204
//	@Failure	409	{object}	Error
//	@Router		/deliveries/{id}/complete [post]
func (s *Server) CompleteDelivery(ctx echo.Context) error {
	return s.courierAction(ctx, s.handlers.CompleteDelivery)
}

func (s *Server) courierAction(ctx echo.Context, handler CommandHandler[commands.DeliveryActionCommand]) error {
	deliveryID, err := parseID("id", ctx.Param("id"))
	if err != nil {
		return s.fail(ctx, err)
	}

	var body CourierAction
	if err = ctx.Bind(&body); err != nil {
		return s.invalidBody(ctx)
	}
	courierID, err := parseID("courierId", body.CourierID)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewDeliveryActionCommand(deliveryID, courierID)
	if err != nil {
		return s.fail(ctx, err)
	}
	if err = handler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CancelDelivery godoc
//
//	@Summary	Cancel a delivery
//	@Tags		deliveries
//	@Accept		json
//	@Param		id		path	string			true	"Delivery ID"	format(uuid)
//	@Param		reason	body	CancelDelivery	true	"Cancellation reason"
//	@Success	204
//	@Failure	409	{object}	Error
//	@Router		/deliveries/{id}/cancel [post]
func (s *Server) CancelDelivery(ctx echo.Context) error {
	deliveryID, err := parseID("id", ctx.Param("id"))
	if err != nil {
		return s.fail(ctx, err)
	}

	var body CancelDelivery
	if err = ctx.Bind(&body); err != nil {
		return s.invalidBody(ctx)
	}

	cmd, err := commands.NewCancelDeliveryCommand(deliveryID, body.Reason)
	if err != nil {
		return s.fail(ctx, err)
	}
	if err = s.handlers.CancelDelivery.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CreateCourier godoc
//
//	@Summary	Register a courier
//	@Tags		couriers
//	@Accept		json
//	@Produce	json
//	@Param		courier	body		NewCourier	true	"Courier to register"
//	@Success	201		{object}	CreatedResponse
//	@Failure	400		{object}	Error
//	@Router		/couriers [post]
func (s *Server) CreateCourier(ctx echo.Context) error {
	var body NewCourier
	if err := ctx.Bind(&body); err != nil {
		return s.invalidBody(ctx)
	}

	location, err := body.Location.toDomain()
	if err != nil {
		return s.fail(ctx, err)
	}
	var organizationID *kernel.UUID
	if body.OrganizationID != nil {
		id, err := parseID("organizationId", *body.OrganizationID)
		if err != nil {
			return s.fail(ctx, err)
		}
		organizationID = &id
	}
	cmd, err := commands.NewCreateCourierCommand(body.Name, location, body.PushToken, organizationID)
	if err != nil {
		return s.fail(ctx, err)
	}
	if err = s.handlers.CreateCourier.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreatedResponse{ID: cmd.CourierID().String()})
}

// UpdateCourierStatus godoc
//
//	@Summary	Report courier availability and position
//	@Tags		couriers
//	@Accept		json
//	@Param		id		path	string			true	"Courier ID"	format(uuid)
//	@Param		status	body	CourierStatus	true	"Availability and location"
//	@Success	204
//	@Failure	404	{object}	Error
//	@Router		/couriers/{id}/status [put]
func (s *Server) UpdateCourierStatus(ctx echo.Context) error {
	courierID, err := parseID("id", ctx.Param("id"))
	if err != nil {
		return s.fail(ctx, err)
	}

	var body CourierStatus
	if err = ctx.Bind(&body); err != nil {
		return s.invalidBody(ctx)
	}
	availability, err := courier.ParseAvailability(body.Availability)
	if err != nil {
		return s.fail(ctx, err)
	}
	location, err := body.Location.toDomain()
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewUpdateCourierStatusCommand(courierID, availability, location)
	if err != nil {
		return s.fail(ctx, err)
	}
	if err = s.handlers.UpdateCourierStatus.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RegisterPushToken godoc
//
//	@Summary	Register the courier's push notification token
//	@Tags		couriers
//	@Accept		json
//	@Param		id		path	string		true	"Courier ID"	format(uuid)
//	@Param		token	body	PushToken	true	"Device token"
//	@Success	204
//	@Failure	404	{object}	Error
//	@Router		/couriers/{id}/push-token [put]
func (s *Server) RegisterPushToken(ctx echo.Context) error {
	courierID, err := parseID("id", ctx.Param("id"))
	if err != nil {
		return s.fail(ctx, err)
	}

	var body PushToken
	if err = ctx.Bind(&body); err != nil {
		return s.invalidBody(ctx)
	}

	cmd, err := commands.NewRegisterPushTokenCommand(courierID, body.Token)
	if err != nil {
		return s.fail(ctx, err)
	}
	if err = s.handlers.RegisterPushToken.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// LinkCourier godoc
//
//	@Summary	Link a courier to an organization or deactivate the link
//	@Tags		couriers
//	@Accept		json
//	@Param		id		path	string			true	"Courier ID"		format(uuid)
//	@Param		orgId	path	string			true	"Organization ID"	format(uuid)
//	@Param		link	body	EmploymentLink	true	"Link state"
//	@Success	204
//	@Failure	404	{object}	Error
//	@Router		/couriers/{id}/organizations/{orgId} [put]
func (s *Server) LinkCourier(ctx echo.Context) error {
	courierID, err := parseID("id", ctx.Param("id"))
	if err != nil {
		return s.fail(ctx, err)
	}
	organizationID, err := parseID("orgId", ctx.Param("orgId"))
	if err != nil {
		return s.fail(ctx, err)
	}

	var body EmploymentLink
	if err = ctx.Bind(&body); err != nil {
		return s.invalidBody(ctx)
	}

	cmd, err := commands.NewLinkCourierCommand(courierID, organizationID, body.Active)
	if err != nil {
		return s.fail(ctx, err)
	}
	if err = s.handlers.LinkCourier.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CreateClientContract godoc
//
//	@Summary	Contract an organization to serve a client
//	@Tags		contracts
//	@Accept		json
//	@Produce	json
//	@Param		contract	body		NewClientContract	true	"Contract to create"
//	@Success	201			{object}	CreatedResponse
//	@Failure	409			{object}	Error
//	@Router		/contracts [post]
func (s *Server) CreateClientContract(ctx echo.Context) error {
	var body NewClientContract
	if err := ctx.Bind(&body); err != nil {
		return s.invalidBody(ctx)
	}

	clientID, err := parseID("clientId", body.ClientID)
	if err != nil {
		return s.fail(ctx, err)
	}
	organizationID, err := parseID("organizationId", body.OrganizationID)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewCreateClientContractCommand(clientID, organizationID, body.Primary)
	if err != nil {
		return s.fail(ctx, err)
	}
	if err = s.handlers.CreateClientContract.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreatedResponse{ID: cmd.ContractID().String()})
}

// CreateSpecialZone godoc
//
//	@Summary	Create a special zone
//	@Tags		zones
//	@Accept		json
//	@Produce	json
//	@Param		zone	body		NewSpecialZone	true	"Zone to create"
//	@Success	201		{object}	CreatedResponse
//	@Failure	400		{object}	Error
//	@Router		/zones [post]
func (s *Server) CreateSpecialZone(ctx echo.Context) error {
	var body NewSpecialZone
	if err := ctx.Bind(&body); err != nil {
		return s.invalidBody(ctx)
	}

	center, err := body.Center.toDomain()
	if err != nil {
		return s.fail(ctx, err)
	}
	zoneType, err := zone.ParseType(body.Type)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewCreateSpecialZoneCommand(body.Name, center, body.RadiusMeters, zoneType)
	if err != nil {
		return s.fail(ctx, err)
	}
	if err = s.handlers.CreateSpecialZone.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreatedResponse{ID: cmd.ZoneID().String()})
}

// ResolveSpecialZone godoc
//
//	@Summary	Find the special zone that applies to a point
//	@Tags		zones
//	@Produce	json
//	@Param		lat	query		number	true	"Latitude"
//	@Param		lng	query		number	true	"Longitude"
//	@Success	200	{object}	SpecialZone
//	@Success	204	"No zone contains the point"
//	@Failure	400	{object}	Error
//	@Router		/zones/resolve [get]
func (s *Server) ResolveSpecialZone(ctx echo.Context) error {
	lat, err := parseFloat("lat", ctx.QueryParam("lat"))
	if err != nil {
		return s.fail(ctx, err)
	}
	lng, err := parseFloat("lng", ctx.QueryParam("lng"))
	if err != nil {
		return s.fail(ctx, err)
	}
	point, err := kernel.NewLocation(lat, lng)
	if err != nil {
		return s.fail(ctx, err)
	}

	query, err := queries.NewResolveSpecialZoneQuery(point)
	if err != nil {
		return s.fail(ctx, err)
	}
	view, found, err := s.handlers.ResolveSpecialZone.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}
	if !found {
		return ctx.NoContent(http.StatusNoContent)
	}

	return ctx.JSON(http.StatusOK, specialZoneFromView(view))
}

// OpenPayment godoc
//
//	@Summary	Open a PIX payment for one or more deliveries
//	@Tags		payments
//	@Accept		json
//	@Produce	json
//	@Param		payment	body		NewPayment	true	"Payer and deliveries"
//	@Success	201		{object}	CreatedResponse
//	@Failure	409		{object}	Error
//	@Router		/payments [post]
func (s *Server) OpenPayment(ctx echo.Context) error {
	var body NewPayment
	if err := ctx.Bind(&body); err != nil {
		return s.invalidBody(ctx)
	}

	payerID, err := parseID("payerId", body.PayerID)
	if err != nil {
		return s.fail(ctx, err)
	}
	deliveryIDs := make([]kernel.UUID, 0, len(body.DeliveryIDs))
	for _, raw := range body.DeliveryIDs {
		id, parseErr := parseID("deliveryIds", raw)
		if parseErr != nil {
			return s.fail(ctx, parseErr)
		}
		deliveryIDs = append(deliveryIDs, id)
	}

	cmd, err := commands.NewOpenPaymentCommand(payerID, payment.PayerCategory(body.PayerCategory), deliveryIDs)
	if err != nil {
		return s.fail(ctx, err)
	}
	if err = s.handlers.OpenPayment.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreatedResponse{ID: cmd.PaymentID().String()})
}

// PaymentWebhook godoc
//
//	@Summary	Receive payment gateway events
//	@Description	Only order.paid confirms the payment; other event types are acknowledged and ignored.
//	@Tags		payments
//	@Accept		json
//	@Param		event	body	PaymentEvent	true	"Gateway event"
//	@Success	204
//	@Failure	404	{object}	Error
//	@Router		/payments/webhook [post]
func (s *Server) PaymentWebhook(ctx echo.Context) error {
	var event PaymentEvent
	if err := ctx.Bind(&event); err != nil {
		return s.invalidBody(ctx)
	}

	if event.Type != paidEventType {
		s.logger.InfoContext(ctx.Request().Context(), "ignoring payment gateway event",
			"event_id", event.ID,
			"event_type", event.Type,
		)
		return ctx.NoContent(http.StatusNoContent)
	}

	paymentID, err := parseID("data.code", event.Data.Code)
	if err != nil {
		return s.fail(ctx, err)
	}
	cmd, err := commands.NewConfirmPaymentCommand(paymentID)
	if err != nil {
		return s.fail(ctx, err)
	}
	if err = s.handlers.ConfirmPayment.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// QuoteSplit godoc
//
//	@Summary	Preview how an amount is split between courier, organizer and platform
//	@Tags		payments
//	@Produce	json
//	@Param		amount			query		integer	true	"Amount in minor units"
//	@Param		hasOrganizer	query		boolean	false	"Whether an organizer takes a share"
//	@Success	200				{object}	SplitQuote
//	@Failure	400				{object}	Error
//	@Router		/splits/quote [get]
func (s *Server) QuoteSplit(ctx echo.Context) error {
	amount, err := strconv.ParseInt(ctx.QueryParam("amount"), 10, 64)
	if err != nil {
		return s.fail(ctx, errs.NewValueIsInvalidErrorWithCause("amount", err))
	}

	hasOrganizer := false
	if raw := ctx.QueryParam("hasOrganizer"); raw != "" {
		hasOrganizer, err = strconv.ParseBool(raw)
		if err != nil {
			return s.fail(ctx, errs.NewValueIsInvalidErrorWithCause("hasOrganizer", err))
		}
	}

	split, err := s.calculator.ComputeSplit(amount, s.split, hasOrganizer)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, splitQuoteFrom(amount, split))
}

func parseID(name, raw string) (kernel.UUID, error) {
	id, err := kernel.UUIDFromString(raw)
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return id, nil
}

func parseFloat(name, raw string) (float64, error) {
	if raw == "" {
		return 0, errs.NewValueIsRequiredError(name)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return v, nil
}
