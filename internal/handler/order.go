package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/machzaul/Tubes-Pemweb/internal/service"
)

type OrderHandler struct {
	Orders *service.OrderService
}

func NewOrderHandler(orders *service.OrderService) *OrderHandler {
	return &OrderHandler{Orders: orders}
}

func (h *OrderHandler) ListOrders(c *gin.Context) {
	orders, err := h.Orders.List()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

func (h *OrderHandler) GetOrder(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order id"})
		return
	}

	order, err := h.Orders.Get(uint(id))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) GetOrderByOrderID(c *gin.Context) {
	order, err := h.Orders.GetByOrderID(c.Param("orderId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

type OrderItemRequest struct {
	ID       uint `json:"id" binding:"required"`
	Quantity int  `json:"quantity" binding:"required,gt=0"`
}

type CustomerInfoRequest struct {
	FullName    string `json:"fullName"`
	Email       string `json:"email"`
	Address     string `json:"address"`
	PhoneNumber string `json:"phoneNumber"`
}

type CreateOrderRequest struct {
	OrderID      string              `json:"orderId"`
	CustomerInfo CustomerInfoRequest `json:"customerInfo"`
	Items        []OrderItemRequest  `json:"items" binding:"required"`
	Subtotal     float64             `json:"subtotal"`
	Shipping     float64             `json:"shipping"`
	Total        float64             `json:"total"`
}

func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input := service.CreateOrderInput{
		OrderID: req.OrderID,
		CustomerInfo: service.CustomerInput{
			FullName:    req.CustomerInfo.FullName,
			Email:       req.CustomerInfo.Email,
			Address:     req.CustomerInfo.Address,
			PhoneNumber: req.CustomerInfo.PhoneNumber,
		},
		Subtotal: req.Subtotal,
		Shipping: req.Shipping,
		Total:    req.Total,
	}
	for _, item := range req.Items {
		input.Items = append(input.Items, service.OrderItemInput{
			ProductID: item.ID,
			Quantity:  item.Quantity,
		})
	}

	order, err := h.Orders.Create(input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

type UpdateOrderStatusRequest struct {
	Status    string `json:"status" binding:"required"`
	Note      string `json:"note"`
	UpdatedBy string `json:"updatedBy"`
}

func (h *OrderHandler) UpdateOrderStatus(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order id"})
		return
	}

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Status is required"})
		return
	}

	order, err := h.Orders.UpdateStatus(uint(id), req.Status, req.Note, req.UpdatedBy)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) DeleteOrder(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order id"})
		return
	}

	if err := h.Orders.Delete(uint(id)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order deleted successfully and stock restored"})
}
