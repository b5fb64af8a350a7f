package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// 🔵 GET /api/products?category=
func (h *Handler) ListProducts(c *gin.Context) {
	if category := c.Query("category"); category != "" {
		c.JSON(http.StatusOK, h.Store.ProductsByCategory(category))
		return
	}
	c.JSON(http.StatusOK, h.Store.Products())
}

// 🔵 GET /api/products/:id (compte une vue)
func (h *Handler) GetProduct(c *gin.Context) {
	id := c.Param("id")
	if _, ok := h.Store.Product(id); !ok {
		abort(c, http.StatusNotFound, "Produit introuvable")
		return
	}

	h.Store.RecordView(id)
	p, ok := h.Store.Product(id)
	if !ok {
		abort(c, http.StatusNotFound, "Produit introuvable")
		return
	}
	c.JSON(http.StatusOK, p)
}

// ⭐ GET /api/products/recommended
func (h *Handler) Recommended(c *gin.Context) {
	c.JSON(http.StatusOK, h.Store.Recommended())
}

// 🔥 GET /api/products/best-sellers
func (h *Handler) BestSellers(c *gin.Context) {
	c.JSON(http.StatusOK, h.Store.BestSellers())
}

// 🔍 GET /api/products/search?q=
func (h *Handler) SearchProducts(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		abort(c, http.StatusBadRequest, "Paramètre 'q' requis")
		return
	}
	c.JSON(http.StatusOK, h.Index.Search(c.Request.Context(), q, h.Store.Products()))
}

// 🔵 GET /api/categories
func (h *Handler) ListCategories(c *gin.Context) {
	c.JSON(http.StatusOK, h.Store.Categories())
}

// 🔵 GET /api/categories/groups?limit=
func (h *Handler) CategoryGroups(c *gin.Context) {
	limit := defaultGroupLimit
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			abort(c, http.StatusBadRequest, "Paramètre 'limit' invalide")
			return
		}
		limit = n
	}
	c.JSON(http.StatusOK, h.Store.CategoryGroups(limit))
}
