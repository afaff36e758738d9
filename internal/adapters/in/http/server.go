// Package http is the inbound HTTP adapter. It translates REST requests into
// commands and queries and maps domain error classes onto HTTP statuses.
package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/wallet"
	"marketplace/internal/pkg/errs"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	createOrder      commands.CreateOrderCommandHandler
	confirmPayment   commands.ConfirmPaymentCommandHandler
	markReady        commands.MarkReadyCommandHandler
	notifyCourier    commands.NotifyCourierCommandHandler
	assignCourier    commands.AssignCourierCommandHandler
	reachedPickup    commands.ConfirmReachedPickupCommandHandler
	confirmOrderID   commands.ConfirmOrderIDCommandHandler
	reachedDrop      commands.ConfirmReachedDropCommandHandler
	completeDelivery commands.CompleteDeliveryCommandHandler

	requestWithdrawal commands.RequestWithdrawalCommandHandler
	approveWithdrawal commands.ApproveWithdrawalCommandHandler
	rejectWithdrawal  commands.RejectWithdrawalCommandHandler

	getWallet           queries.GetWalletQueryHandler
	getActiveDeliveries queries.GetActiveDeliveriesQueryHandler
}

// ServerHandlers bundles the use case handlers the server dispatches to.
type ServerHandlers struct {
	CreateOrder      commands.CreateOrderCommandHandler
	ConfirmPayment   commands.ConfirmPaymentCommandHandler
	MarkReady        commands.MarkReadyCommandHandler
	NotifyCourier    commands.NotifyCourierCommandHandler
	AssignCourier    commands.AssignCourierCommandHandler
	ReachedPickup    commands.ConfirmReachedPickupCommandHandler
	ConfirmOrderID   commands.ConfirmOrderIDCommandHandler
	ReachedDrop      commands.ConfirmReachedDropCommandHandler
	CompleteDelivery commands.CompleteDeliveryCommandHandler

	RequestWithdrawal commands.RequestWithdrawalCommandHandler
	ApproveWithdrawal commands.ApproveWithdrawalCommandHandler
	RejectWithdrawal  commands.RejectWithdrawalCommandHandler

	GetWallet           queries.GetWalletQueryHandler
	GetActiveDeliveries queries.GetActiveDeliveriesQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(handlers ServerHandlers) *Server {
	return &Server{
		createOrder:         handlers.CreateOrder,
		confirmPayment:      handlers.ConfirmPayment,
		markReady:           handlers.MarkReady,
		notifyCourier:       handlers.NotifyCourier,
		assignCourier:       handlers.AssignCourier,
		reachedPickup:       handlers.ReachedPickup,
		confirmOrderID:      handlers.ConfirmOrderID,
		reachedDrop:         handlers.ReachedDrop,
		completeDelivery:    handlers.CompleteDelivery,
		requestWithdrawal:   handlers.RequestWithdrawal,
		approveWithdrawal:   handlers.ApproveWithdrawal,
		rejectWithdrawal:    handlers.RejectWithdrawal,
		getWallet:           handlers.GetWallet,
		getActiveDeliveries: handlers.GetActiveDeliveries,
	}
}

// RegisterRoutes attaches all API routes to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/orders", s.CreateOrder)
	api.POST("/orders/:orderId/payment", s.ConfirmPayment)
	api.POST("/orders/:orderId/ready", s.MarkReady)
	api.POST("/orders/:orderId/notify", s.NotifyCourier)
	api.POST("/orders/:orderId/assign", s.AssignCourier)
	api.POST("/orders/:orderId/reached-pickup", s.ReachedPickup)
	api.POST("/orders/:orderId/confirm-id", s.ConfirmOrderID)
	api.POST("/orders/:orderId/reached-drop", s.ReachedDrop)
	api.POST("/orders/:orderId/complete", s.CompleteDelivery)

	api.POST("/withdrawals", s.RequestWithdrawal)
	api.POST("/withdrawals/:requestId/approve", s.ApproveWithdrawal)
	api.POST("/withdrawals/:requestId/reject", s.RejectWithdrawal)

	api.GET("/wallets/:ownerType/:ownerId", s.GetWallet)
	api.GET("/couriers/:courierId/deliveries", s.GetActiveDeliveries)
}

// ErrorResponse is the JSON body returned for every failed request.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// errorJSON maps domain error classes onto HTTP statuses. Unclassified errors
// become opaque 500s so storage details never leak to callers.
func errorJSON(ctx echo.Context, err error) error {
	status := http.StatusInternalServerError
	message := "internal server error"

	switch {
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, errs.ErrValueIsRequired):
		status, message = http.StatusBadRequest, err.Error()
	case errors.Is(err, errs.ErrObjectNotFound):
		status, message = http.StatusNotFound, err.Error()
	case errors.Is(err, errs.ErrConflict):
		status, message = http.StatusConflict, err.Error()
	case errors.Is(err, errs.ErrPreconditionFailed):
		status, message = http.StatusPreconditionFailed, err.Error()
	case errors.Is(err, errs.ErrInsufficientFunds):
		status, message = http.StatusUnprocessableEntity, err.Error()
	case errors.Is(err, errs.ErrDownstreamDegraded):
		status, message = http.StatusBadGateway, err.Error()
	}

	return ctx.JSON(status, ErrorResponse{Code: status, Message: message})
}

func pathUUID(ctx echo.Context, name string) (kernel.UUID, error) {
	id, err := kernel.UUIDFromString(ctx.Param(name))
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return id, nil
}

func bindUUID(raw, name string) (kernel.UUID, error) {
	id, err := kernel.UUIDFromString(raw)
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return id, nil
}

// RouteResponse is one stored route leg of an order snapshot.
type RouteResponse struct {
	DistanceKm  float64 `json:"distanceKm"`
	DurationMin float64 `json:"durationMin"`
	Method      string  `json:"method"`
}

// OrderResponse is the order snapshot returned by the lifecycle transitions.
type OrderResponse struct {
	OrderID        string         `json:"orderId"`
	Status         string         `json:"status"`
	DeliveryStatus string         `json:"deliveryStatus"`
	CourierID      *string        `json:"courierId,omitempty"`
	PickupRoute    *RouteResponse `json:"pickupRoute,omitempty"`
	DropRoute      *RouteResponse `json:"dropRoute,omitempty"`
}

// OrderTransitionResponse is the body of every successful phase transition:
// the updated order and, when the transition computed one, the new route leg.
type OrderTransitionResponse struct {
	Order OrderResponse  `json:"order"`
	Route *RouteResponse `json:"route,omitempty"`
}

func routeJSON(route order.Route) *RouteResponse {
	if route.IsZero() {
		return nil
	}
	return &RouteResponse{
		DistanceKm:  route.DistanceKm(),
		DurationMin: route.DurationMin(),
		Method:      route.Method(),
	}
}

func orderJSON(aggregate *order.Order) OrderResponse {
	response := OrderResponse{
		OrderID:        aggregate.ID().String(),
		Status:         aggregate.Status().String(),
		DeliveryStatus: aggregate.DeliveryStatus(),
		PickupRoute:    routeJSON(aggregate.PickupRoute()),
		DropRoute:      routeJSON(aggregate.DropRoute()),
	}
	if courier := aggregate.Courier(); courier != nil {
		raw := courier.String()
		response.CourierID = &raw
	}
	return response
}

// CreateOrderRequest is the body of POST /api/v1/orders.
type CreateOrderRequest struct {
	OrderID     string  `json:"orderId"`
	SellerID    string  `json:"sellerId"`
	CustomerID  string  `json:"customerId"`
	SellerLat   float64 `json:"sellerLat"`
	SellerLng   float64 `json:"sellerLng"`
	CustomerLat float64 `json:"customerLat"`
	CustomerLng float64 `json:"customerLng"`
	Subtotal    float64 `json:"subtotal"`
	Discount    float64 `json:"discount"`
	DeliveryFee float64 `json:"deliveryFee"`
	PlatformFee float64 `json:"platformFee"`
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req CreateOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return errorJSON(ctx, errs.NewValueIsInvalidErrorWithCause("request body", err))
	}

	orderID, err := bindUUID(req.OrderID, "orderId")
	if err != nil {
		return errorJSON(ctx, err)
	}
	sellerID, err := bindUUID(req.SellerID, "sellerId")
	if err != nil {
		return errorJSON(ctx, err)
	}
	customerID, err := bindUUID(req.CustomerID, "customerId")
	if err != nil {
		return errorJSON(ctx, err)
	}

	cmd, err := commands.NewCreateOrderCommand(
		orderID, sellerID, customerID,
		req.SellerLat, req.SellerLng, req.CustomerLat, req.CustomerLng,
		req.Subtotal, req.Discount, req.DeliveryFee, req.PlatformFee,
	)
	if err != nil {
		return errorJSON(ctx, err)
	}

	if err = s.createOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorJSON(ctx, err)
	}

	return ctx.NoContent(http.StatusCreated)
}

// ConfirmPaymentRequest is the body of POST /api/v1/orders/:orderId/payment.
type ConfirmPaymentRequest struct {
	Method string `json:"method"`
}

// ConfirmPayment handles POST /api/v1/orders/:orderId/payment.
func (s *Server) ConfirmPayment(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return errorJSON(ctx, err)
	}

	var req ConfirmPaymentRequest
	if err = ctx.Bind(&req); err != nil {
		return errorJSON(ctx, errs.NewValueIsInvalidErrorWithCause("request body", err))
	}

	cmd, err := commands.NewConfirmPaymentCommand(orderID, req.Method)
	if err != nil {
		return errorJSON(ctx, err)
	}

	if err = s.confirmPayment.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorJSON(ctx, err)
	}

	return ctx.NoContent(http.StatusOK)
}

// MarkReady handles POST /api/v1/orders/:orderId/ready.
func (s *Server) MarkReady(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return errorJSON(ctx, err)
	}

	cmd, err := commands.NewMarkReadyCommand(orderID)
	if err != nil {
		return errorJSON(ctx, err)
	}

	if err = s.markReady.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorJSON(ctx, err)
	}

	return ctx.NoContent(http.StatusOK)
}

// NotifyCourierRequest is the body of POST /api/v1/orders/:orderId/notify.
type NotifyCourierRequest struct {
	CourierID string `json:"courierId"`
}

// NotifyCourier handles POST /api/v1/orders/:orderId/notify.
func (s *Server) NotifyCourier(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return errorJSON(ctx, err)
	}

	var req NotifyCourierRequest
	if err = ctx.Bind(&req); err != nil {
		return errorJSON(ctx, errs.NewValueIsInvalidErrorWithCause("request body", err))
	}
	courierID, err := bindUUID(req.CourierID, "courierId")
	if err != nil {
		return errorJSON(ctx, err)
	}

	cmd, err := commands.NewNotifyCourierCommand(orderID, courierID)
	if err != nil {
		return errorJSON(ctx, err)
	}

	if err = s.notifyCourier.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorJSON(ctx, err)
	}

	return ctx.NoContent(http.StatusOK)
}

// AssignCourierRequest is the body of POST /api/v1/orders/:orderId/assign.
type AssignCourierRequest struct {
	CourierID  string  `json:"courierId"`
	CourierLat float64 `json:"courierLat"`
	CourierLng float64 `json:"courierLng"`
}

// AssignCourier handles POST /api/v1/orders/:orderId/assign. Exactly one of
// several concurrent claims succeeds; the rest receive 409.
func (s *Server) AssignCourier(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return errorJSON(ctx, err)
	}

	var req AssignCourierRequest
	if err = ctx.Bind(&req); err != nil {
		return errorJSON(ctx, errs.NewValueIsInvalidErrorWithCause("request body", err))
	}
	courierID, err := bindUUID(req.CourierID, "courierId")
	if err != nil {
		return errorJSON(ctx, err)
	}

	cmd, err := commands.NewAssignCourierCommand(orderID, courierID, req.CourierLat, req.CourierLng)
	if err != nil {
		return errorJSON(ctx, err)
	}

	updated, err := s.assignCourier.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return errorJSON(ctx, err)
	}

	return ctx.JSON(http.StatusOK, OrderTransitionResponse{
		Order: orderJSON(updated),
		Route: routeJSON(updated.PickupRoute()),
	})
}

// CourierActionRequest is the shared body of the courier phase transitions.
type CourierActionRequest struct {
	CourierID string `json:"courierId"`
}

// ReachedPickup handles POST /api/v1/orders/:orderId/reached-pickup.
func (s *Server) ReachedPickup(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return errorJSON(ctx, err)
	}

	var req CourierActionRequest
	if err = ctx.Bind(&req); err != nil {
		return errorJSON(ctx, errs.NewValueIsInvalidErrorWithCause("request body", err))
	}
	courierID, err := bindUUID(req.CourierID, "courierId")
	if err != nil {
		return errorJSON(ctx, err)
	}

	cmd, err := commands.NewConfirmReachedPickupCommand(orderID, courierID)
	if err != nil {
		return errorJSON(ctx, err)
	}

	updated, err := s.reachedPickup.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return errorJSON(ctx, err)
	}

	return ctx.JSON(http.StatusOK, OrderTransitionResponse{Order: orderJSON(updated)})
}

// ConfirmOrderIDRequest is the body of POST /api/v1/orders/:orderId/confirm-id.
type ConfirmOrderIDRequest struct {
	CourierID     string `json:"courierId"`
	SubmittedID   string `json:"submittedId"`
	ProofImageURL string `json:"proofImageUrl"`
}

// ConfirmOrderID handles POST /api/v1/orders/:orderId/confirm-id.
func (s *Server) ConfirmOrderID(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return errorJSON(ctx, err)
	}

	var req ConfirmOrderIDRequest
	if err = ctx.Bind(&req); err != nil {
		return errorJSON(ctx, errs.NewValueIsInvalidErrorWithCause("request body", err))
	}
	courierID, err := bindUUID(req.CourierID, "courierId")
	if err != nil {
		return errorJSON(ctx, err)
	}

	cmd, err := commands.NewConfirmOrderIDCommand(orderID, courierID, req.SubmittedID, req.ProofImageURL)
	if err != nil {
		return errorJSON(ctx, err)
	}

	updated, err := s.confirmOrderID.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return errorJSON(ctx, err)
	}

	return ctx.JSON(http.StatusOK, OrderTransitionResponse{
		Order: orderJSON(updated),
		Route: routeJSON(updated.DropRoute()),
	})
}

// ReachedDrop handles POST /api/v1/orders/:orderId/reached-drop.
func (s *Server) ReachedDrop(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return errorJSON(ctx, err)
	}

	var req CourierActionRequest
	if err = ctx.Bind(&req); err != nil {
		return errorJSON(ctx, errs.NewValueIsInvalidErrorWithCause("request body", err))
	}
	courierID, err := bindUUID(req.CourierID, "courierId")
	if err != nil {
		return errorJSON(ctx, err)
	}

	cmd, err := commands.NewConfirmReachedDropCommand(orderID, courierID)
	if err != nil {
		return errorJSON(ctx, err)
	}

	updated, err := s.reachedDrop.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return errorJSON(ctx, err)
	}

	return ctx.JSON(http.StatusOK, OrderTransitionResponse{Order: orderJSON(updated)})
}

// CompleteDeliveryRequest is the body of POST /api/v1/orders/:orderId/complete.
type CompleteDeliveryRequest struct {
	CourierID string `json:"courierId"`
	Rating    *int   `json:"rating,omitempty"`
	Review    string `json:"review,omitempty"`
}

// CompleteDeliveryResponse reports the delivered order and the settlement
// outcome. The figures are zero strings when settlement is still pending.
type CompleteDeliveryResponse struct {
	Order          OrderResponse `json:"order"`
	Settled        bool          `json:"settled"`
	CourierEarning string        `json:"courierEarning"`
	SellerPayout   string        `json:"sellerPayout"`
	PlatformFee    string        `json:"platformFee"`
}

// CompleteDelivery handles POST /api/v1/orders/:orderId/complete.
func (s *Server) CompleteDelivery(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return errorJSON(ctx, err)
	}

	var req CompleteDeliveryRequest
	if err = ctx.Bind(&req); err != nil {
		return errorJSON(ctx, errs.NewValueIsInvalidErrorWithCause("request body", err))
	}
	courierID, err := bindUUID(req.CourierID, "courierId")
	if err != nil {
		return errorJSON(ctx, err)
	}

	cmd, err := commands.NewCompleteDeliveryCommand(orderID, courierID, req.Rating, req.Review)
	if err != nil {
		return errorJSON(ctx, err)
	}

	result, err := s.completeDelivery.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return errorJSON(ctx, err)
	}

	return ctx.JSON(http.StatusOK, CompleteDeliveryResponse{
		Order:          orderJSON(result.Order),
		Settled:        result.Settled,
		CourierEarning: result.Settlement.CourierEarning.String(),
		SellerPayout:   result.Settlement.SellerPayout.String(),
		PlatformFee:    result.Settlement.PlatformFee.String(),
	})
}

// WithdrawalRequestResponse is the withdrawal request as the caller sees it.
type WithdrawalRequestResponse struct {
	RequestID   string     `json:"requestId"`
	WalletID    string     `json:"walletId"`
	Amount      string     `json:"amount"`
	Status      string     `json:"status"`
	Reason      string     `json:"reason,omitempty"`
	RequestedAt time.Time  `json:"requestedAt"`
	ReviewedAt  *time.Time `json:"reviewedAt,omitempty"`
}

// WalletSnapshotResponse is the wallet state accompanying a withdrawal
// operation, without the transaction ledger.
type WalletSnapshotResponse struct {
	WalletID       string `json:"walletId"`
	OwnerID        string `json:"ownerId"`
	OwnerType      string `json:"ownerType"`
	Balance        string `json:"balance"`
	TotalEarned    string `json:"totalEarned"`
	TotalWithdrawn string `json:"totalWithdrawn"`
	CashInHand     string `json:"cashInHand"`
}

// WithdrawalResponse is the body of every successful withdrawal operation:
// the request and the wallet it draws from.
type WithdrawalResponse struct {
	Request WithdrawalRequestResponse `json:"request"`
	Wallet  WalletSnapshotResponse    `json:"wallet"`
}

func withdrawalJSON(result commands.WithdrawalResult) WithdrawalResponse {
	return WithdrawalResponse{
		Request: WithdrawalRequestResponse{
			RequestID:   result.Request.ID().String(),
			WalletID:    result.Request.WalletID().String(),
			Amount:      result.Request.Amount().String(),
			Status:      string(result.Request.Status()),
			Reason:      result.Request.Reason(),
			RequestedAt: result.Request.RequestedAt(),
			ReviewedAt:  result.Request.ReviewedAt(),
		},
		Wallet: WalletSnapshotResponse{
			WalletID:       result.Wallet.ID().String(),
			OwnerID:        result.Wallet.OwnerID().String(),
			OwnerType:      string(result.Wallet.OwnerType()),
			Balance:        result.Wallet.Balance().String(),
			TotalEarned:    result.Wallet.TotalEarned().String(),
			TotalWithdrawn: result.Wallet.TotalWithdrawn().String(),
			CashInHand:     result.Wallet.CashInHand().String(),
		},
	}
}

// RequestWithdrawalRequest is the body of POST /api/v1/withdrawals.
type RequestWithdrawalRequest struct {
	RequestID string  `json:"requestId"`
	OwnerID   string  `json:"ownerId"`
	OwnerType string  `json:"ownerType"`
	Amount    float64 `json:"amount"`
}

// RequestWithdrawal handles POST /api/v1/withdrawals.
func (s *Server) RequestWithdrawal(ctx echo.Context) error {
	var req RequestWithdrawalRequest
	if err := ctx.Bind(&req); err != nil {
		return errorJSON(ctx, errs.NewValueIsInvalidErrorWithCause("request body", err))
	}

	requestID, err := bindUUID(req.RequestID, "requestId")
	if err != nil {
		return errorJSON(ctx, err)
	}
	ownerID, err := bindUUID(req.OwnerID, "ownerId")
	if err != nil {
		return errorJSON(ctx, err)
	}

	cmd, err := commands.NewRequestWithdrawalCommand(requestID, ownerID, req.OwnerType, req.Amount)
	if err != nil {
		return errorJSON(ctx, err)
	}

	result, err := s.requestWithdrawal.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return errorJSON(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, withdrawalJSON(result))
}

// ApproveWithdrawal handles POST /api/v1/withdrawals/:requestId/approve.
func (s *Server) ApproveWithdrawal(ctx echo.Context) error {
	requestID, err := pathUUID(ctx, "requestId")
	if err != nil {
		return errorJSON(ctx, err)
	}

	cmd, err := commands.NewApproveWithdrawalCommand(requestID)
	if err != nil {
		return errorJSON(ctx, err)
	}

	result, err := s.approveWithdrawal.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return errorJSON(ctx, err)
	}

	return ctx.JSON(http.StatusOK, withdrawalJSON(result))
}

// RejectWithdrawalRequest is the body of POST /api/v1/withdrawals/:requestId/reject.
type RejectWithdrawalRequest struct {
	Reason string `json:"reason"`
}

// RejectWithdrawal handles POST /api/v1/withdrawals/:requestId/reject.
func (s *Server) RejectWithdrawal(ctx echo.Context) error {
	requestID, err := pathUUID(ctx, "requestId")
	if err != nil {
		return errorJSON(ctx, err)
	}

	var req RejectWithdrawalRequest
	if err = ctx.Bind(&req); err != nil {
		return errorJSON(ctx, errs.NewValueIsInvalidErrorWithCause("request body", err))
	}

	cmd, err := commands.NewRejectWithdrawalCommand(requestID, req.Reason)
	if err != nil {
		return errorJSON(ctx, err)
	}

	result, err := s.rejectWithdrawal.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return errorJSON(ctx, err)
	}

	return ctx.JSON(http.StatusOK, withdrawalJSON(result))
}

// WalletTransactionResponse is one ledger entry of the wallet snapshot.
type WalletTransactionResponse struct {
	ID      string  `json:"id"`
	Amount  string  `json:"amount"`
	Type    string  `json:"type"`
	Status  string  `json:"status"`
	OrderID *string `json:"orderId,omitempty"`
}

// WalletResponse is the wallet snapshot returned by GET /api/v1/wallets.
type WalletResponse struct {
	WalletID         string                      `json:"walletId"`
	OwnerID          string                      `json:"ownerId"`
	OwnerType        string                      `json:"ownerType"`
	Balance          string                      `json:"balance"`
	TotalEarned      string                      `json:"totalEarned"`
	TotalWithdrawn   string                      `json:"totalWithdrawn"`
	CashInHand       string                      `json:"cashInHand"`
	AvailableBalance string                      `json:"availableBalance"`
	Transactions     []WalletTransactionResponse `json:"transactions"`
}

// GetWallet handles GET /api/v1/wallets/:ownerType/:ownerId.
func (s *Server) GetWallet(ctx echo.Context) error {
	ownerID, err := pathUUID(ctx, "ownerId")
	if err != nil {
		return errorJSON(ctx, err)
	}

	query, err := queries.NewGetWalletQuery(ownerID, wallet.OwnerType(ctx.Param("ownerType")))
	if err != nil {
		return errorJSON(ctx, err)
	}

	snapshot, err := s.getWallet.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorJSON(ctx, err)
	}

	transactions := make([]WalletTransactionResponse, len(snapshot.Transactions))
	for i, tx := range snapshot.Transactions {
		var orderID *string
		if tx.OrderID != nil {
			raw := tx.OrderID.String()
			orderID = &raw
		}
		transactions[i] = WalletTransactionResponse{
			ID:      tx.ID.String(),
			Amount:  tx.Amount.String(),
			Type:    string(tx.Type),
			Status:  string(tx.Status),
			OrderID: orderID,
		}
	}

	return ctx.JSON(http.StatusOK, WalletResponse{
		WalletID:         snapshot.WalletID.String(),
		OwnerID:          snapshot.OwnerID.String(),
		OwnerType:        string(snapshot.OwnerType),
		Balance:          snapshot.Balance.String(),
		TotalEarned:      snapshot.TotalEarned.String(),
		TotalWithdrawn:   snapshot.TotalWithdrawn.String(),
		CashInHand:       snapshot.CashInHand.String(),
		AvailableBalance: snapshot.AvailableBalance.String(),
		Transactions:     transactions,
	})
}

// ActiveDeliveryResponse is one row of the courier's active delivery list.
type ActiveDeliveryResponse struct {
	OrderID        string  `json:"orderId"`
	SellerLat      float64 `json:"sellerLat"`
	SellerLng      float64 `json:"sellerLng"`
	CustomerLat    float64 `json:"customerLat"`
	CustomerLng    float64 `json:"customerLng"`
	Status         string  `json:"status"`
	DeliveryStatus string  `json:"deliveryStatus"`
	Payment        string  `json:"payment"`
	Total          string  `json:"total"`
}

// GetActiveDeliveries handles GET /api/v1/couriers/:courierId/deliveries.
func (s *Server) GetActiveDeliveries(ctx echo.Context) error {
	courierID, err := pathUUID(ctx, "courierId")
	if err != nil {
		return errorJSON(ctx, err)
	}

	query, err := queries.NewGetActiveDeliveriesQuery(courierID)
	if err != nil {
		return errorJSON(ctx, err)
	}

	deliveries, err := s.getActiveDeliveries.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorJSON(ctx, err)
	}

	response := make([]ActiveDeliveryResponse, len(deliveries))
	for i, delivery := range deliveries {
		response[i] = ActiveDeliveryResponse{
			OrderID:        delivery.OrderID.String(),
			SellerLat:      delivery.SellerLocation.Lat(),
			SellerLng:      delivery.SellerLocation.Lng(),
			CustomerLat:    delivery.CustomerLocation.Lat(),
			CustomerLng:    delivery.CustomerLocation.Lng(),
			Status:         delivery.Status,
			DeliveryStatus: delivery.DeliveryStatus,
			Payment:        delivery.Payment,
			Total:          delivery.Total.String(),
		}
	}

	return ctx.JSON(http.StatusOK, response)
}
