package http

import (
	"context"
	"net/http"
	"strconv"

	"storefront-service/internal/domain"
	"storefront-service/internal/repository"

	"github.com/gin-gonic/gin"
)

func (h *Handler) registerAdminRoutes(admin *gin.RouterGroup) {
	admin.GET("/orders", h.AdminListOrders)
	admin.GET("/orders/:id", h.AdminGetOrder)
	admin.PUT("/orders/:id/status", h.AdminUpdateOrderStatus)

	admin.GET("/leads", h.AdminListLeads)
	admin.PUT("/leads/:id/status", h.AdminUpdateLeadStatus)
	admin.DELETE("/leads/:id", h.AdminDeleteLead)

	admin.GET("/products", h.AdminListProducts)
	admin.POST("/products", h.AdminCreateProduct)
	admin.PUT("/products/:id", h.AdminUpdateProduct)
	admin.DELETE("/products/:id", h.AdminDeleteProduct)

	admin.GET("/categories", h.AdminListCategories)
	admin.POST("/categories", h.AdminCreateCategory)
	admin.PUT("/categories/:id", h.AdminUpdateCategory)
	admin.DELETE("/categories/:id", h.AdminDeleteCategory)

	admin.GET("/banners", h.AdminListBanners)
	admin.POST("/banners", h.AdminCreateBanner)
	admin.PUT("/banners/:id", h.AdminUpdateBanner)
	admin.DELETE("/banners/:id", h.AdminDeleteBanner)

	admin.GET("/blogs", h.AdminListBlogs)
	admin.POST("/blogs", h.AdminCreateBlog)
	admin.PUT("/blogs/:id", h.AdminUpdateBlog)
	admin.DELETE("/blogs/:id", h.AdminDeleteBlog)

	admin.GET("/gallery", h.AdminListGallery)
	admin.POST("/gallery", h.AdminCreateGalleryItem)
	admin.PUT("/gallery/:id", h.AdminUpdateGalleryItem)
	admin.DELETE("/gallery/:id", h.AdminDeleteGalleryItem)
}

func (h *Handler) AdminListOrders(c *gin.Context) {
	orders, err := h.orders.ListOrders(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, orders)
}

func (h *Handler) AdminGetOrder(c *gin.Context) {
	id, found := parseID(c, "id")
	if !found {
		return
	}
	order, err := h.orders.GetOrderById(id)
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, order)
}

func (h *Handler) AdminUpdateOrderStatus(c *gin.Context) {
	id, found := parseID(c, "id")
	if !found {
		return
	}
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err)
		return
	}
	order, err := h.orders.UpdateOrderStatus(c.Request.Context(), id, domain.OrderStatus(req.Status))
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, order)
}

func (h *Handler) AdminListLeads(c *gin.Context) {
	leads, err := h.leads.ListLeads(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, leads)
}

func (h *Handler) AdminUpdateLeadStatus(c *gin.Context) {
	id, found := parseID(c, "id")
	if !found {
		return
	}
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err)
		return
	}
	lead, err := h.leads.UpdateLeadStatus(c.Request.Context(), id, domain.LeadStatus(req.Status))
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, lead)
}

func (h *Handler) AdminDeleteLead(c *gin.Context) {
	id, found := parseID(c, "id")
	if !found {
		return
	}
	if err := h.leads.DeleteLead(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	ok(c, gin.H{"deleted": id})
}

func (h *Handler) AdminListProducts(c *gin.Context) {
	filter := repository.ProductFilter{Category: c.Query("category")}
	if limit, err := strconv.Atoi(c.Query("limit")); err == nil && limit > 0 {
		filter.Limit = limit
	}
	products, err := h.catalog.ListProducts(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, products)
}

func (h *Handler) AdminCreateProduct(c *gin.Context) {
	var product domain.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		fail(c, http.StatusBadRequest, err)
		return
	}
	p, err := h.catalog.CreateProduct(c.Request.Context(), &product)
	if err != nil {
		respondError(c, err)
		return
	}
	created(c, p)
}

func (h *Handler) AdminUpdateProduct(c *gin.Context) {
	h.adminUpdate(c, productFields, func(c *gin.Context, id uint64, fields map[string]any) (any, error) {
		return h.catalog.UpdateProduct(c.Request.Context(), id, fields)
	})
}

func (h *Handler) AdminDeleteProduct(c *gin.Context) {
	h.adminDelete(c, h.catalog.DeleteProduct)
}

func (h *Handler) AdminListCategories(c *gin.Context) {
	categories, err := h.catalog.ListCategories(c.Request.Context(), false)
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, categories)
}

func (h *Handler) AdminCreateCategory(c *gin.Context) {
	var category domain.Category
	if err := c.ShouldBindJSON(&category); err != nil {
		fail(c, http.StatusBadRequest, err)
		return
	}
	out, err := h.catalog.CreateCategory(c.Request.Context(), &category)
	if err != nil {
		respondError(c, err)
		return
	}
	created(c, out)
}

func (h *Handler) AdminUpdateCategory(c *gin.Context) {
	h.adminUpdate(c, categoryFields, func(c *gin.Context, id uint64, fields map[string]any) (any, error) {
		return h.catalog.UpdateCategory(c.Request.Context(), id, fields)
	})
}

func (h *Handler) AdminDeleteCategory(c *gin.Context) {
	h.adminDelete(c, h.catalog.DeleteCategory)
}

func (h *Handler) AdminListBanners(c *gin.Context) {
	banners, err := h.catalog.ListBanners(c.Request.Context(), false)
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, banners)
}

func (h *Handler) AdminCreateBanner(c *gin.Context) {
	var banner domain.Banner
	if err := c.ShouldBindJSON(&banner); err != nil {
		fail(c, http.StatusBadRequest, err)
		return
	}
	out, err := h.catalog.CreateBanner(c.Request.Context(), &banner)
	if err != nil {
		respondError(c, err)
		return
	}
	created(c, out)
}

func (h *Handler) AdminUpdateBanner(c *gin.Context) {
	h.adminUpdate(c, bannerFields, func(c *gin.Context, id uint64, fields map[string]any) (any, error) {
		return h.catalog.UpdateBanner(c.Request.Context(), id, fields)
	})
}

func (h *Handler) AdminDeleteBanner(c *gin.Context) {
	h.adminDelete(c, h.catalog.DeleteBanner)
}

func (h *Handler) AdminListBlogs(c *gin.Context) {
	blogs, err := h.catalog.ListBlogs(c.Request.Context(), false)
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, blogs)
}

func (h *Handler) AdminCreateBlog(c *gin.Context) {
	var blog domain.Blog
	if err := c.ShouldBindJSON(&blog); err != nil {
		fail(c, http.StatusBadRequest, err)
		return
	}
	out, err := h.catalog.CreateBlog(c.Request.Context(), &blog)
	if err != nil {
		respondError(c, err)
		return
	}
	created(c, out)
}

func (h *Handler) AdminUpdateBlog(c *gin.Context) {
	h.adminUpdate(c, blogFields, func(c *gin.Context, id uint64, fields map[string]any) (any, error) {
		return h.catalog.UpdateBlog(c.Request.Context(), id, fields)
	})
}

func (h *Handler) AdminDeleteBlog(c *gin.Context) {
	h.adminDelete(c, h.catalog.DeleteBlog)
}

func (h *Handler) AdminListGallery(c *gin.Context) {
	items, err := h.catalog.ListGallery(c.Request.Context(), false)
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, items)
}

func (h *Handler) AdminCreateGalleryItem(c *gin.Context) {
	var item domain.GalleryItem
	if err := c.ShouldBindJSON(&item); err != nil {
		fail(c, http.StatusBadRequest, err)
		return
	}
	out, err := h.catalog.CreateGalleryItem(c.Request.Context(), &item)
	if err != nil {
		respondError(c, err)
		return
	}
	created(c, out)
}

func (h *Handler) AdminUpdateGalleryItem(c *gin.Context) {
	h.adminUpdate(c, galleryFields, func(c *gin.Context, id uint64, fields map[string]any) (any, error) {
		return h.catalog.UpdateGalleryItem(c.Request.Context(), id, fields)
	})
}

func (h *Handler) AdminDeleteGalleryItem(c *gin.Context) {
	h.adminDelete(c, h.catalog.DeleteGalleryItem)
}

func (h *Handler) adminUpdate(c *gin.Context, allowed map[string]string, update func(*gin.Context, uint64, map[string]any) (any, error)) {
	id, found := parseID(c, "id")
	if !found {
		return
	}
	var body map[string]any
	if err := c.ShouldBindJSON(&body); err != nil {
		fail(c, http.StatusBadRequest, err)
		return
	}
	out, err := update(c, id, filterFields(body, allowed))
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, out)
}

func (h *Handler) adminDelete(c *gin.Context, del func(ctx context.Context, id uint64) error) {
	id, found := parseID(c, "id")
	if !found {
		return
	}
	if err := del(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	ok(c, gin.H{"deleted": id})
}
