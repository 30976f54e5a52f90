package http

import (
	"errors"
	"net/http"
	"strconv"

	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/application/usecases/queries"
	"fooddelivery/internal/core/domain/model/cart"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/menu"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/model/restaurant"
	"fooddelivery/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	addCartItemHandler       commands.AddCartItemCommandHandler
	updateQuantityHandler    commands.UpdateCartItemQuantityCommandHandler
	removeCartItemHandler    commands.RemoveCartItemCommandHandler
	clearCartHandler         commands.ClearCartCommandHandler
	checkoutHandler          commands.CheckoutCommandHandler
	changeOrderStatusHandler commands.ChangeOrderStatusCommandHandler
	assignCourierHandler     commands.AssignCourierCommandHandler
	submitRatingHandler      commands.SubmitOrderRatingCommandHandler
	updateLocationHandler    commands.UpdateCourierLocationCommandHandler
	respondToReviewHandler   commands.RespondToReviewCommandHandler

	// Query handlers
	getActiveCartHandler        queries.GetActiveCartQueryHandler
	getUncompletedOrdersHandler queries.GetUncompletedOrdersQueryHandler
	getTopRatedCouriersHandler  queries.GetTopRatedCouriersQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	addCartItemHandler commands.AddCartItemCommandHandler,
	updateQuantityHandler commands.UpdateCartItemQuantityCommandHandler,
	removeCartItemHandler commands.RemoveCartItemCommandHandler,
	clearCartHandler commands.ClearCartCommandHandler,
	checkoutHandler commands.CheckoutCommandHandler,
	changeOrderStatusHandler commands.ChangeOrderStatusCommandHandler,
	assignCourierHandler commands.AssignCourierCommandHandler,
	submitRatingHandler commands.SubmitOrderRatingCommandHandler,
	updateLocationHandler commands.UpdateCourierLocationCommandHandler,
	respondToReviewHandler commands.RespondToReviewCommandHandler,
	getActiveCartHandler queries.GetActiveCartQueryHandler,
	getUncompletedOrdersHandler queries.GetUncompletedOrdersQueryHandler,
	getTopRatedCouriersHandler queries.GetTopRatedCouriersQueryHandler,
) *Server {
	return &Server{
		addCartItemHandler:          addCartItemHandler,
		updateQuantityHandler:       updateQuantityHandler,
		removeCartItemHandler:       removeCartItemHandler,
		clearCartHandler:            clearCartHandler,
		checkoutHandler:             checkoutHandler,
		changeOrderStatusHandler:    changeOrderStatusHandler,
		assignCourierHandler:        assignCourierHandler,
		submitRatingHandler:         submitRatingHandler,
		updateLocationHandler:       updateLocationHandler,
		respondToReviewHandler:      respondToReviewHandler,
		getActiveCartHandler:        getActiveCartHandler,
		getUncompletedOrdersHandler: getUncompletedOrdersHandler,
		getTopRatedCouriersHandler:  getTopRatedCouriersHandler,
	}
}

// RegisterRoutes attaches every API route to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.GET("/customers/:customerId/cart", s.GetCart)
	api.DELETE("/customers/:customerId/cart", s.ClearCart)
	api.POST("/customers/:customerId/cart/items", s.AddCartItem)
	api.PUT("/customers/:customerId/cart/items/:itemId", s.UpdateCartItemQuantity)
	api.DELETE("/customers/:customerId/cart/items/:itemId", s.RemoveCartItem)
	api.POST("/customers/:customerId/checkout", s.Checkout)

	api.POST("/orders/:orderId/status", s.ChangeOrderStatus)
	api.POST("/orders/:orderId/rating", s.SubmitOrderRating)
	api.POST("/orders/assignments", s.AssignCourier)
	api.GET("/orders/active", s.GetActiveOrders)

	api.GET("/couriers/top", s.GetTopCouriers)
	api.PUT("/couriers/:courierId/location", s.UpdateCourierLocation)

	api.POST("/restaurants/:restaurantId/reviews/:reviewId/response", s.RespondToReview)
}

// GetCart handles GET /api/v1/customers/{customerId}/cart.
func (s *Server) GetCart(ctx echo.Context) error {
	customerID, err := kernel.UUIDFromString(ctx.Param("customerId"))
	if err != nil {
		return badRequest(ctx, "Invalid customer id")
	}

	query, err := queries.NewGetActiveCartQuery(customerID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	activeCart, err := s.getActiveCartHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	items := make([]CartItem, len(activeCart.Items))
	for i, item := range activeCart.Items {
		items[i] = CartItem{
			ID:                  item.ID.String(),
			MenuItemID:          item.MenuItemID.String(),
			Name:                item.Name,
			UnitPrice:           item.UnitPrice,
			Quantity:            item.Quantity,
			SpecialInstructions: item.SpecialInstructions,
			LineTotal:           item.LineTotal,
		}
	}

	return ctx.JSON(http.StatusOK, Cart{
		ID:           activeCart.ID.String(),
		RestaurantID: activeCart.RestaurantID.String(),
		Subtotal:     activeCart.Subtotal,
		Items:        items,
	})
}

// AddCartItem handles POST /api/v1/customers/{customerId}/cart/items.
func (s *Server) AddCartItem(ctx echo.Context) error {
	customerID, err := kernel.UUIDFromString(ctx.Param("customerId"))
	if err != nil {
		return badRequest(ctx, "Invalid customer id")
	}

	var req AddCartItemRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	restaurantID, err := kernel.UUIDFromString(req.RestaurantID)
	if err != nil {
		return badRequest(ctx, "Invalid restaurant id")
	}

	menuItemID, err := kernel.UUIDFromString(req.MenuItemID)
	if err != nil {
		return badRequest(ctx, "Invalid menu item id")
	}

	cmd, err := commands.NewAddCartItemCommand(
		customerID,
		restaurantID,
		menuItemID,
		req.Name,
		req.UnitPrice,
		req.Quantity,
		customizationsFromRequest(req.Customizations),
		req.SpecialInstructions,
		req.SwitchRestaurant,
	)
	if err != nil {
		return badRequest(ctx, "Invalid item data: "+err.Error())
	}

	if handleErr := s.addCartItemHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return writeError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusCreated)
}

// UpdateCartItemQuantity handles PUT /api/v1/customers/{customerId}/cart/items/{itemId}.
func (s *Server) UpdateCartItemQuantity(ctx echo.Context) error {
	customerID, err := kernel.UUIDFromString(ctx.Param("customerId"))
	if err != nil {
		return badRequest(ctx, "Invalid customer id")
	}

	itemID, err := kernel.UUIDFromString(ctx.Param("itemId"))
	if err != nil {
		return badRequest(ctx, "Invalid item id")
	}

	var req UpdateQuantityRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewUpdateCartItemQuantityCommand(customerID, itemID, req.Quantity)
	if err != nil {
		return badRequest(ctx, "Invalid quantity data: "+err.Error())
	}

	if handleErr := s.updateQuantityHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return writeError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RemoveCartItem handles DELETE /api/v1/customers/{customerId}/cart/items/{itemId}.
func (s *Server) RemoveCartItem(ctx echo.Context) error {
	customerID, err := kernel.UUIDFromString(ctx.Param("customerId"))
	if err != nil {
		return badRequest(ctx, "Invalid customer id")
	}

	itemID, err := kernel.UUIDFromString(ctx.Param("itemId"))
	if err != nil {
		return badRequest(ctx, "Invalid item id")
	}

	cmd, err := commands.NewRemoveCartItemCommand(customerID, itemID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if handleErr := s.removeCartItemHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return writeError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ClearCart handles DELETE /api/v1/customers/{customerId}/cart.
func (s *Server) ClearCart(ctx echo.Context) error {
	customerID, err := kernel.UUIDFromString(ctx.Param("customerId"))
	if err != nil {
		return badRequest(ctx, "Invalid customer id")
	}

	cmd, err := commands.NewClearCartCommand(customerID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if handleErr := s.clearCartHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return writeError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// Checkout handles POST /api/v1/customers/{customerId}/checkout.
func (s *Server) Checkout(ctx echo.Context) error {
	customerID, err := kernel.UUIDFromString(ctx.Param("customerId"))
	if err != nil {
		return badRequest(ctx, "Invalid customer id")
	}

	var req CheckoutRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	deliveryAddress, err := kernel.NewGeoPoint(req.DeliveryLongitude, req.DeliveryLatitude)
	if err != nil {
		return badRequest(ctx, "Invalid delivery address: "+err.Error())
	}

	paymentMethod, err := order.PaymentMethodFromString(req.PaymentMethod)
	if err != nil {
		return badRequest(ctx, "Invalid payment method: "+err.Error())
	}

	cmd, err := commands.NewCheckoutCommand(
		customerID,
		deliveryAddress,
		paymentMethod,
		req.Tip,
		req.LoyaltyPointsToRedeem,
	)
	if err != nil {
		return badRequest(ctx, "Invalid checkout data: "+err.Error())
	}

	orderNumber, err := s.checkoutHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CheckoutResponse{OrderNumber: orderNumber})
}

// ChangeOrderStatus handles POST /api/v1/orders/{orderId}/status.
func (s *Server) ChangeOrderStatus(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var req ChangeOrderStatusRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	target, err := order.StatusFromString(req.Status)
	if err != nil {
		return badRequest(ctx, "Invalid order status: "+err.Error())
	}

	cmd, err := commands.NewChangeOrderStatusCommand(orderID, target, req.Note)
	if err != nil {
		return badRequest(ctx, "Invalid status data: "+err.Error())
	}

	if handleErr := s.changeOrderStatusHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return writeError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// SubmitOrderRating handles POST /api/v1/orders/{orderId}/rating.
func (s *Server) SubmitOrderRating(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var req SubmitRatingRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewSubmitOrderRatingCommand(orderID, req.Value, req.Comment)
	if err != nil {
		return badRequest(ctx, "Invalid rating data: "+err.Error())
	}

	if handleErr := s.submitRatingHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return writeError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// AssignCourier handles POST /api/v1/orders/assignments. It runs one
// dispatch round on demand, the same work the assignment job does on its
// schedule.
func (s *Server) AssignCourier(ctx echo.Context) error {
	cmd := commands.NewAssignCourierCommand()

	if err := s.assignCourierHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		switch {
		case errors.Is(err, commands.ErrNoOrderFound):
			return ctx.JSON(http.StatusNotFound, Error{
				Code:    http.StatusNotFound,
				Message: "No order is waiting for a courier",
			})
		case errors.Is(err, commands.ErrNoFreeCouriersFound):
			return ctx.JSON(http.StatusConflict, Error{
				Code:    http.StatusConflict,
				Message: "No courier is available near the pickup point",
			})
		default:
			return writeError(ctx, err)
		}
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetActiveOrders handles GET /api/v1/orders/active.
func (s *Server) GetActiveOrders(ctx echo.Context) error {
	query := queries.NewGetUncompletedOrdersQuery()

	orders, err := s.getUncompletedOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]ActiveOrder, len(orders))
	for i, o := range orders {
		response[i] = ActiveOrder{
			ID:                    o.ID.String(),
			OrderNumber:           o.OrderNumber,
			Status:                o.Status,
			EstimatedDeliveryTime: o.EstimatedDeliveryTime,
			DeliveryLongitude:     o.DeliveryAddress.Longitude(),
			DeliveryLatitude:      o.DeliveryAddress.Latitude(),
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetTopCouriers handles GET /api/v1/couriers/top.
func (s *Server) GetTopCouriers(ctx echo.Context) error {
	limit := defaultCourierLeaderboardSize
	if raw := ctx.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return badRequest(ctx, "Invalid limit")
		}
		limit = parsed
	}

	query, err := queries.NewGetTopRatedCouriersQuery(limit)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	couriers, err := s.getTopRatedCouriersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]TopCourier, len(couriers))
	for i, c := range couriers {
		response[i] = TopCourier{
			ID:              c.ID.String(),
			Name:            c.Name,
			AverageRating:   c.AverageRating,
			TotalDeliveries: c.TotalDeliveries,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// UpdateCourierLocation handles PUT /api/v1/couriers/{courierId}/location.
func (s *Server) UpdateCourierLocation(ctx echo.Context) error {
	courierID, err := kernel.UUIDFromString(ctx.Param("courierId"))
	if err != nil {
		return badRequest(ctx, "Invalid courier id")
	}

	var req UpdateLocationRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	location, err := kernel.NewGeoPoint(req.Longitude, req.Latitude)
	if err != nil {
		return badRequest(ctx, "Invalid location: "+err.Error())
	}

	cmd, err := commands.NewUpdateCourierLocationCommand(courierID, location)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if handleErr := s.updateLocationHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return writeError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RespondToReview handles POST /api/v1/restaurants/{restaurantId}/reviews/{reviewId}/response.
func (s *Server) RespondToReview(ctx echo.Context) error {
	restaurantID, err := kernel.UUIDFromString(ctx.Param("restaurantId"))
	if err != nil {
		return badRequest(ctx, "Invalid restaurant id")
	}

	reviewID, err := kernel.UUIDFromString(ctx.Param("reviewId"))
	if err != nil {
		return badRequest(ctx, "Invalid review id")
	}

	var req RespondToReviewRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewRespondToReviewCommand(restaurantID, reviewID, req.Text)
	if err != nil {
		return badRequest(ctx, "Invalid response data: "+err.Error())
	}

	if handleErr := s.respondToReviewHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return writeError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

func customizationsFromRequest(reqs []CustomizationRequest) []menu.Customization {
	if len(reqs) == 0 {
		return nil
	}

	customizations := make([]menu.Customization, len(reqs))
	for i, c := range reqs {
		options := make([]menu.Option, len(c.SelectedOptions))
		for j, opt := range c.SelectedOptions {
			options[j] = menu.Option{Name: opt.Name, Price: opt.Price}
		}
		customizations[i] = menu.Customization{
			GroupName:       c.GroupName,
			SelectedOptions: options,
		}
	}
	return customizations
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// writeError maps application errors onto the HTTP error taxonomy: missing
// aggregates are 404, business conflicts are 409, invalid input is 400, and
// everything else is a 500.
func writeError(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound),
		errors.Is(err, restaurant.ErrReviewNotFound):
		return ctx.JSON(http.StatusNotFound, Error{
			Code:    http.StatusNotFound,
			Message: err.Error(),
		})
	case errors.Is(err, errs.ErrConcurrentModification),
		errors.Is(err, cart.ErrRestaurantMismatch),
		errors.Is(err, cart.ErrCartIsEmpty),
		errors.Is(err, commands.ErrRestaurantIsClosed):
		return ctx.JSON(http.StatusConflict, Error{
			Code:    http.StatusConflict,
			Message: err.Error(),
		})
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, errs.ErrValueIsRequired):
		return badRequest(ctx, err.Error())
	default:
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Internal server error",
		})
	}
}
