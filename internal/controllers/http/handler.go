package http

import (
	"errors"
	"net/http"
	"strconv"

	"storefront-service/internal/auth"
	"storefront-service/internal/cart"
	"storefront-service/internal/domain"
	"storefront-service/internal/infra"
	"storefront-service/internal/repository"
	"storefront-service/internal/services"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	catalog *services.CatalogService
	orders  *services.OrderService
	leads   *services.LeadService
	carts   *cart.Store
	auth    *auth.Service
	pincode infra.PincodeClientInterface
}

func NewHandler(
	catalog *services.CatalogService,
	orders *services.OrderService,
	leads *services.LeadService,
	carts *cart.Store,
	authSvc *auth.Service,
	pincode infra.PincodeClientInterface,
) *Handler {
	return &Handler{
		catalog: catalog,
		orders:  orders,
		leads:   leads,
		carts:   carts,
		auth:    authSvc,
		pincode: pincode,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/products", h.ListProducts)
	r.GET("/products/:slug", h.GetProduct)
	r.GET("/categories", h.ListCategories)
	r.GET("/banners", h.ListBanners)
	r.GET("/blogs", h.ListBlogs)
	r.GET("/gallery", h.ListGallery)

	r.POST("/orders", h.CreateOrder)
	r.GET("/orders/track/:orderNumber", h.TrackOrder)
	r.POST("/leads", h.CreateLead)
	r.GET("/pincode/:code", h.LookupPincode)

	c := r.Group("/cart/:cartId")
	c.GET("", h.GetCart)
	c.POST("/items", h.AddCartItem)
	c.PUT("/items/:productId", h.UpdateCartItem)
	c.DELETE("/items/:productId", h.RemoveCartItem)
	c.DELETE("", h.ClearCart)

	r.POST("/admin/login", h.Login)
	r.POST("/admin/logout", h.Logout)
	r.GET("/admin/check", h.CheckSession)

	admin := r.Group("/admin", RequireSession(h.auth))
	h.registerAdminRoutes(admin)
}

func ok(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}

func created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": data})
}

func fail(c *gin.Context, status int, err error) {
	c.JSON(status, gin.H{"success": false, "error": err.Error()})
}

// respondError maps service sentinels onto status codes; anything
// unknown is an internal failure.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrOrderNotFound),
		errors.Is(err, services.ErrLeadNotFound),
		errors.Is(err, services.ErrProductNotFound),
		errors.Is(err, services.ErrContentNotFound):
		fail(c, http.StatusNotFound, err)
	case errors.Is(err, services.ErrSlugTaken),
		errors.Is(err, services.ErrOrderNumberTaken):
		fail(c, http.StatusConflict, err)
	case errors.Is(err, services.ErrInvalidStatus),
		errors.Is(err, services.ErrInvalidLeadStatus),
		errors.Is(err, services.ErrInvalidOrder),
		errors.Is(err, services.ErrInvalidLead):
		fail(c, http.StatusBadRequest, err)
	default:
		fail(c, http.StatusInternalServerError, err)
	}
}

func (h *Handler) CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err)
		return
	}

	items := make([]domain.OrderItem, len(req.Items))
	for i, it := range req.Items {
		items[i] = domain.OrderItem{
			ProductID: it.ProductID,
			Name:      it.Name,
			Price:     it.Price,
			Quantity:  it.Quantity,
			Image:     it.Image,
		}
	}

	order, err := h.orders.CreateOrder(c.Request.Context(), services.CreateOrderInput{
		Items: items,
		Customer: domain.Customer{
			Name:    req.Customer.Name,
			Email:   req.Customer.Email,
			Phone:   req.Customer.Phone,
			Address: req.Customer.Address,
			City:    req.Customer.City,
			State:   req.Customer.State,
			ZipCode: req.Customer.ZipCode,
		},
		PaymentMethod: domain.PaymentMethod(req.PaymentMethod),
		Notes:         req.Notes,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	created(c, gin.H{
		"orderNumber": order.OrderNumber,
		"status":      order.Status,
		"totalAmount": order.TotalAmount,
	})
}

func (h *Handler) TrackOrder(c *gin.Context) {
	order, err := h.orders.TrackOrder(c.Request.Context(), c.Param("orderNumber"))
	if err != nil {
		respondError(c, err)
		return
	}
	if order == nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "order not found"})
		return
	}
	ok(c, gin.H{
		"order":    order,
		"progress": domain.Progress(order.Status),
	})
}

func (h *Handler) CreateLead(c *gin.Context) {
	var req CreateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err)
		return
	}
	lead, err := h.leads.CreateLead(c.Request.Context(), services.CreateLeadInput{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Message: req.Message,
		Source:  req.Source,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	created(c, lead)
}

// LookupPincode is a soft integration: a miss or upstream failure is an
// empty result, never an error that blocks checkout.
func (h *Handler) LookupPincode(c *gin.Context) {
	info, err := h.pincode.Lookup(c.Request.Context(), c.Param("code"))
	if err != nil || info == nil {
		ok(c, nil)
		return
	}
	ok(c, info)
}

func (h *Handler) ListProducts(c *gin.Context) {
	filter := storefrontProductFilter(c)
	products, err := h.catalog.ListProducts(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, products)
}

func (h *Handler) GetProduct(c *gin.Context) {
	p, err := h.catalog.GetProductBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, p)
}

func (h *Handler) ListCategories(c *gin.Context) {
	categories, err := h.catalog.ListCategories(c.Request.Context(), true)
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, categories)
}

func (h *Handler) ListBanners(c *gin.Context) {
	banners, err := h.catalog.ListBanners(c.Request.Context(), true)
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, banners)
}

func (h *Handler) ListBlogs(c *gin.Context) {
	blogs, err := h.catalog.ListBlogs(c.Request.Context(), true)
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, blogs)
}

func (h *Handler) ListGallery(c *gin.Context) {
	items, err := h.catalog.ListGallery(c.Request.Context(), true)
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, items)
}

// storefrontProductFilter reads the public listing filters. The
// storefront only ever sees active products.
func storefrontProductFilter(c *gin.Context) repository.ProductFilter {
	filter := repository.ProductFilter{
		Category:   c.Query("category"),
		Featured:   c.Query("featured") == "true",
		TopRated:   c.Query("topRated") == "true",
		TopSale:    c.Query("topSale") == "true",
		ActiveOnly: true,
	}
	if limit, err := strconv.Atoi(c.Query("limit")); err == nil && limit > 0 {
		filter.Limit = limit
	}
	return filter
}

func parseID(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		fail(c, http.StatusBadRequest, errors.New(name+" must be a positive integer"))
		return 0, false
	}
	return id, true
}
