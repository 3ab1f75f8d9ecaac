package httpserver

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"storefront/internal/domain"
	"storefront/internal/invoice"
)

type handlers struct {
	deps   Deps
	logger *log.Logger
}

func (h handlers) listProducts(c *gin.Context) {
	products, err := h.deps.Products.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h handlers) createProduct(c *gin.Context) {
	var in domain.Product
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	p, err := h.deps.Products.Create(c.Request.Context(), in)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h handlers) deleteProduct(c *gin.Context) {
	if err := h.deps.Products.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h handlers) listCategories(c *gin.Context) {
	categories, err := h.deps.Categories.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

func (h handlers) createCategory(c *gin.Context) {
	var in domain.Category
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	out, err := h.deps.Categories.Create(c.Request.Context(), in)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

func (h handlers) listSlides(c *gin.Context) {
	slides, err := h.deps.Content.Slides(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, slides)
}

func (h handlers) createSlide(c *gin.Context) {
	var in domain.Slide
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	out, err := h.deps.Content.CreateSlide(c.Request.Context(), in)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

func (h handlers) listBanners(c *gin.Context) {
	banners, err := h.deps.Content.Banners(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, banners)
}

func (h handlers) createBanner(c *gin.Context) {
	var in domain.Banner
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	out, err := h.deps.Content.CreateBanner(c.Request.Context(), in)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

func (h handlers) listUsers(c *gin.Context) {
	users, err := h.deps.Users.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h handlers) createUser(c *gin.Context) {
	var in domain.User
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	u, err := h.deps.Users.Register(c.Request.Context(), in)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, u)
}

// listReviews accepts ?productId= to narrow the result.
func (h handlers) listReviews(c *gin.Context) {
	reviews, err := h.deps.Reviews.List(c.Request.Context(), c.Query("productId"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, reviews)
}

func (h handlers) createReview(c *gin.Context) {
	var in domain.Review
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	r, err := h.deps.Reviews.Create(c.Request.Context(), in)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, r)
}

func (h handlers) deleteReview(c *gin.Context) {
	if err := h.deps.Reviews.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h handlers) listOrders(c *gin.Context) {
	orders, err := h.deps.Orders.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h handlers) createOrder(c *gin.Context) {
	var in domain.Order
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	o, err := h.deps.Orders.Create(c.Request.Context(), in)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, o)
}

type statusRequest struct {
	Status domain.OrderStatus `json:"status"`
}

func (h handlers) updateOrderStatus(c *gin.Context) {
	var in statusRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	o, err := h.deps.Orders.UpdateStatus(c.Request.Context(), c.Param("id"), in.Status)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

func (h handlers) orderInvoice(c *gin.Context) {
	ctx := c.Request.Context()
	o, err := h.deps.Orders.Get(ctx, c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	settings, err := h.deps.Settings.Current(ctx)
	if err != nil {
		h.fail(c, err)
		return
	}
	pdf, err := invoice.RenderBytes(*o, settings)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", invoice.Filename(*o)))
	c.Data(http.StatusOK, "application/pdf", pdf)
}

func (h handlers) getSettings(c *gin.Context) {
	s, err := h.deps.Settings.Get(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}

func (h handlers) saveSettings(c *gin.Context) {
	var in domain.Settings
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	s, err := h.deps.Settings.Save(c.Request.Context(), in)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}

func (h handlers) seed(c *gin.Context) {
	var in domain.Dataset
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	counts, err := h.deps.Seeder.Seed(c.Request.Context(), in)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.logger.Printf("http: seed counts=%v", counts)
	c.JSON(http.StatusOK, gin.H{"counts": counts})
}
