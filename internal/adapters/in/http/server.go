package http

import (
	"errors"
	"net/http"
	"time"

	"quickbite/internal/core/application/usecases/commands"
	"quickbite/internal/core/application/usecases/queries"
	"quickbite/internal/core/domain/model/agent"
	"quickbite/internal/core/domain/model/kernel"
	"quickbite/internal/core/domain/model/order"
	"quickbite/internal/core/domain/services"
	"quickbite/internal/core/ports"
	"quickbite/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server exposes the order lifecycle and agent operations over HTTP.
// Handlers stay thin: decode, build a command or query, dispatch, map the
// error to a status code. All business rules live in the use cases.
type Server struct {
	createOrderHandler          commands.CreateOrderCommandHandler
	verifyPaymentHandler        commands.VerifyPaymentCommandHandler
	updateOrderStatusHandler    commands.UpdateOrderStatusCommandHandler
	assignCourierHandler        commands.AssignCourierCommandHandler
	completeDeliveryHandler     commands.CompleteDeliveryCommandHandler
	verifyDeliveryOtpHandler    commands.VerifyDeliveryOtpCommandHandler
	setAgentAvailabilityHandler commands.SetAgentAvailabilityCommandHandler
	updateAgentLocationHandler  commands.UpdateAgentLocationCommandHandler

	getCustomerOrdersHandler  queries.GetCustomerOrdersQueryHandler
	getAvailableOrdersHandler queries.GetAvailableOrdersQueryHandler
	getEarningsSummaryHandler queries.GetEarningsSummaryQueryHandler

	restaurantFeed *RestaurantFeed
}

// NewServer creates an HTTP server wired to the given use case handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	verifyPaymentHandler commands.VerifyPaymentCommandHandler,
	updateOrderStatusHandler commands.UpdateOrderStatusCommandHandler,
	assignCourierHandler commands.AssignCourierCommandHandler,
	completeDeliveryHandler commands.CompleteDeliveryCommandHandler,
	verifyDeliveryOtpHandler commands.VerifyDeliveryOtpCommandHandler,
	setAgentAvailabilityHandler commands.SetAgentAvailabilityCommandHandler,
	updateAgentLocationHandler commands.UpdateAgentLocationCommandHandler,
	getCustomerOrdersHandler queries.GetCustomerOrdersQueryHandler,
	getAvailableOrdersHandler queries.GetAvailableOrdersQueryHandler,
	getEarningsSummaryHandler queries.GetEarningsSummaryQueryHandler,
	restaurantFeed *RestaurantFeed,
) *Server {
	return &Server{
		createOrderHandler:          createOrderHandler,
		verifyPaymentHandler:        verifyPaymentHandler,
		updateOrderStatusHandler:    updateOrderStatusHandler,
		assignCourierHandler:        assignCourierHandler,
		completeDeliveryHandler:     completeDeliveryHandler,
		verifyDeliveryOtpHandler:    verifyDeliveryOtpHandler,
		setAgentAvailabilityHandler: setAgentAvailabilityHandler,
		updateAgentLocationHandler:  updateAgentLocationHandler,
		getCustomerOrdersHandler:    getCustomerOrdersHandler,
		getAvailableOrdersHandler:   getAvailableOrdersHandler,
		getEarningsSummaryHandler:   getEarningsSummaryHandler,
		restaurantFeed:              restaurantFeed,
	}
}

// RegisterRoutes mounts all endpoints under /api/v1.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/orders", s.CreateOrder)
	api.GET("/orders", s.GetCustomerOrders)
	api.GET("/orders/available", s.GetAvailableOrders)
	api.POST("/orders/:id/payment", s.VerifyPayment)
	api.PATCH("/orders/:id/status", s.UpdateOrderStatus)
	api.POST("/orders/:id/assign", s.AssignCourier)
	api.POST("/orders/:id/complete", s.CompleteDelivery)
	api.POST("/orders/:id/verify-otp", s.VerifyDeliveryOtp)

	api.POST("/agents/availability", s.SetAgentAvailability)
	api.POST("/agents/:id/location", s.UpdateAgentLocation)
	api.GET("/agents/:id/earnings", s.GetEarningsSummary)

	api.GET("/restaurant/feed", s.RestaurantStatusFeed)
	api.POST("/restaurant/status", s.SetRestaurantStatus)
}

type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

func respond(ctx echo.Context, status int, data any) error {
	return ctx.JSON(status, envelope{Success: true, Data: data})
}

func respondError(ctx echo.Context, err error) error {
	return ctx.JSON(statusFor(err), envelope{Success: false, Message: err.Error()})
}

// statusFor maps use case and domain errors onto HTTP status codes. Unknown
// errors are treated as internal so that details do not leak to clients.
func statusFor(err error) int {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, commands.ErrOrderAccessDenied),
		errors.Is(err, commands.ErrNotAssignedAgent):
		return http.StatusForbidden
	case errors.Is(err, ports.ErrInvalidSignature):
		return http.StatusPaymentRequired
	case errors.Is(err, ports.ErrGatewayUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, order.ErrInvalidTransition),
		errors.Is(err, order.ErrCourierAlreadyAssigned),
		errors.Is(err, order.ErrOrderNotReady),
		errors.Is(err, agent.ErrAgentBusy),
		errors.Is(err, agent.ErrAgentUnavailable),
		errors.Is(err, agent.ErrNoActiveOrder),
		errors.Is(err, errs.ErrVersionIsInvalid):
		return http.StatusConflict
	case errors.Is(err, commands.ErrMenuItemUnavailable),
		errors.Is(err, services.ErrOutOfServiceArea):
		return http.StatusUnprocessableEntity
	case errors.Is(err, order.ErrInvalidOtp),
		errors.Is(err, commands.ErrItemsAreRequired),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

type orderItemRequest struct {
	MenuItemID string `json:"menu_item_id"`
	Quantity   int    `json:"quantity"`
}

type addressRequest struct {
	Line string   `json:"line"`
	Lat  *float64 `json:"lat"`
	Lng  *float64 `json:"lng"`
}

type createOrderRequest struct {
	CustomerID    string             `json:"customer_id"`
	Items         []orderItemRequest `json:"items"`
	Address       addressRequest     `json:"address"`
	PaymentMethod string             `json:"payment_method"`
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req createOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, envelope{Success: false, Message: "invalid request body"})
	}

	items := make([]commands.OrderItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		menuItemID, err := kernel.UUIDFromString(item.MenuItemID)
		if err != nil {
			return respondError(ctx, err)
		}
		items = append(items, commands.OrderItemInput{MenuItemID: menuItemID, Quantity: item.Quantity})
	}

	address := order.DeliveryAddress{Line: req.Address.Line}
	if req.Address.Lat != nil && req.Address.Lng != nil {
		point, err := kernel.NewGeoPoint(*req.Address.Lat, *req.Address.Lng)
		if err != nil {
			return respondError(ctx, err)
		}
		address.Point = &point
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(orderID, req.CustomerID, items, address, order.PaymentMethod(req.PaymentMethod))
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return respond(ctx, http.StatusCreated, map[string]string{"order_id": orderID.String()})
}

// GetCustomerOrders handles GET /api/v1/orders?customer_id=...
func (s *Server) GetCustomerOrders(ctx echo.Context) error {
	query, err := queries.NewGetCustomerOrdersQuery(ctx.QueryParam("customer_id"))
	if err != nil {
		return respondError(ctx, err)
	}

	orders, err := s.getCustomerOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return respond(ctx, http.StatusOK, orders)
}

// GetAvailableOrders handles GET /api/v1/orders/available.
func (s *Server) GetAvailableOrders(ctx echo.Context) error {
	orders, err := s.getAvailableOrdersHandler.Handle(ctx.Request().Context(), queries.NewGetAvailableOrdersQuery())
	if err != nil {
		return respondError(ctx, err)
	}

	return respond(ctx, http.StatusOK, orders)
}

type verifyPaymentRequest struct {
	CustomerID       string `json:"customer_id"`
	GatewayOrderID   string `json:"gateway_order_id"`
	GatewayPaymentID string `json:"gateway_payment_id"`
	Signature        string `json:"signature"`
}

// VerifyPayment handles POST /api/v1/orders/:id/payment.
func (s *Server) VerifyPayment(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return respondError(ctx, err)
	}

	var req verifyPaymentRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, envelope{Success: false, Message: "invalid request body"})
	}

	cmd, err := commands.NewVerifyPaymentCommand(orderID, req.CustomerID, req.GatewayOrderID, req.GatewayPaymentID, req.Signature)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.verifyPaymentHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return respond(ctx, http.StatusOK, map[string]string{"status": string(order.StatusConfirmed)})
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateOrderStatus handles PATCH /api/v1/orders/:id/status.
func (s *Server) UpdateOrderStatus(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return respondError(ctx, err)
	}

	var req updateStatusRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, envelope{Success: false, Message: "invalid request body"})
	}

	cmd, err := commands.NewUpdateOrderStatusCommand(orderID, order.Status(req.Status))
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.updateOrderStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return respond(ctx, http.StatusOK, map[string]string{"status": req.Status})
}

type assignCourierRequest struct {
	AgentID string `json:"agent_id"`
}

// AssignCourier handles POST /api/v1/orders/:id/assign.
func (s *Server) AssignCourier(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return respondError(ctx, err)
	}

	var req assignCourierRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, envelope{Success: false, Message: "invalid request body"})
	}

	agentID, err := kernel.UUIDFromString(req.AgentID)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewAssignCourierCommand(orderID, agentID)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.assignCourierHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return respond(ctx, http.StatusOK, map[string]string{"status": string(order.StatusOutForDelivery)})
}

type completeDeliveryRequest struct {
	AgentID string `json:"agent_id"`
	Otp     string `json:"otp"`
}

// CompleteDelivery handles POST /api/v1/orders/:id/complete.
func (s *Server) CompleteDelivery(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return respondError(ctx, err)
	}

	var req completeDeliveryRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, envelope{Success: false, Message: "invalid request body"})
	}

	agentID, err := kernel.UUIDFromString(req.AgentID)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewCompleteDeliveryCommand(orderID, agentID, req.Otp)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.completeDeliveryHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return respond(ctx, http.StatusOK, map[string]string{"status": string(order.StatusDelivered)})
}

type verifyOtpRequest struct {
	CustomerID string `json:"customer_id"`
	Otp        string `json:"otp"`
}

// VerifyDeliveryOtp handles POST /api/v1/orders/:id/verify-otp.
func (s *Server) VerifyDeliveryOtp(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return respondError(ctx, err)
	}

	var req verifyOtpRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, envelope{Success: false, Message: "invalid request body"})
	}

	cmd, err := commands.NewVerifyDeliveryOtpCommand(orderID, req.CustomerID, req.Otp)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.verifyDeliveryOtpHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return respond(ctx, http.StatusOK, map[string]string{"status": string(order.StatusDelivered)})
}

type agentAvailabilityRequest struct {
	Phone   string `json:"phone"`
	Name    string `json:"name"`
	Vehicle string `json:"vehicle"`
	Online  bool   `json:"online"`
}

// SetAgentAvailability handles POST /api/v1/agents/availability.
// An unknown phone going online registers the agent on the fly.
func (s *Server) SetAgentAvailability(ctx echo.Context) error {
	var req agentAvailabilityRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, envelope{Success: false, Message: "invalid request body"})
	}

	cmd, err := commands.NewSetAgentAvailabilityCommand(req.Phone, req.Name, req.Vehicle, req.Online)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.setAgentAvailabilityHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return respond(ctx, http.StatusOK, map[string]bool{"online": req.Online})
}

type agentLocationRequest struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// UpdateAgentLocation handles POST /api/v1/agents/:id/location.
func (s *Server) UpdateAgentLocation(ctx echo.Context) error {
	agentID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return respondError(ctx, err)
	}

	var req agentLocationRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, envelope{Success: false, Message: "invalid request body"})
	}

	point, err := kernel.NewGeoPoint(req.Lat, req.Lng)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewUpdateAgentLocationCommand(agentID, point)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.updateAgentLocationHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return respond(ctx, http.StatusOK, nil)
}

// GetEarningsSummary handles GET /api/v1/agents/:id/earnings.
func (s *Server) GetEarningsSummary(ctx echo.Context) error {
	agentID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return respondError(ctx, err)
	}

	query, err := queries.NewGetEarningsSummaryQuery(agentID, time.Now())
	if err != nil {
		return respondError(ctx, err)
	}

	summary, err := s.getEarningsSummaryHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return respond(ctx, http.StatusOK, summary)
}
