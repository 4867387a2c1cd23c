package delivery

import (
	"net/http"
	"strconv"

	"github.com/NogueiraLn/dscatalog/internal/domain"
	"github.com/NogueiraLn/dscatalog/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type ProductHandler struct {
	useCase usecase.ProductUseCase
	log     *logrus.Logger
}

func NewProductHandler(uc usecase.ProductUseCase, logger *logrus.Logger) *ProductHandler {
	return &ProductHandler{
		useCase: uc,
		log:     logger,
	}
}

func (h *ProductHandler) RegisterRoutes(router gin.IRouter) {
	products := router.Group("/products")
	{
		products.POST("", h.CreateProduct)
		products.GET("", h.ListProducts)
		products.GET("/:id", h.GetProductByID)
		products.PUT("/:id", h.UpdateProduct)
		products.DELETE("/:id", h.DeleteProduct)
	}
}

func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var product domain.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		h.log.Errorf("Handler: Failed to bind JSON for create product: %v", err)
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	createdProduct, err := h.useCase.CreateProduct(&product)
	if err != nil {
		h.log.Warnf("Handler: Failed to create product '%s': %v", product.Name, err)
		WriteError(c, err)
		return
	}

	c.JSON(http.StatusCreated, createdProduct)
}

func (h *ProductHandler) GetProductByID(c *gin.Context) {
	id, ok := pathID(c, h.log)
	if !ok {
		return
	}

	product, err := h.useCase.GetProductByID(id)
	if err != nil {
		h.log.Warnf("Handler: Failed to get product by ID %d: %v", id, err)
		WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id, ok := pathID(c, h.log)
	if !ok {
		return
	}

	var product domain.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		h.log.Errorf("Handler: Failed to bind JSON for update product ID %d: %v", id, err)
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	updatedProduct, err := h.useCase.UpdateProduct(id, &product)
	if err != nil {
		h.log.Warnf("Handler: Failed to update product ID %d: %v", id, err)
		WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, updatedProduct)
}

func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id, ok := pathID(c, h.log)
	if !ok {
		return
	}

	if err := h.useCase.DeleteProduct(id); err != nil {
		h.log.Warnf("Handler: Failed to delete product ID %d: %v", id, err)
		WriteError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ListProducts serves both the plain listing and the paged listing: when the
// request carries page, size or sort parameters the response is a page
// object, otherwise the bare array.
func (h *ProductHandler) ListProducts(c *gin.Context) {
	page, size, sort, paged, ok := pageParams(c, h.log)
	if !ok {
		return
	}

	if paged {
		result, err := h.useCase.ListProductsPaged(page, size, sort)
		if err != nil {
			h.log.Errorf("Handler: Failed to list products page %d: %v", page, err)
			WriteError(c, err)
			return
		}
		c.JSON(http.StatusOK, result)
		return
	}

	products, err := h.useCase.ListProducts()
	if err != nil {
		h.log.Errorf("Handler: Failed to list products: %v", err)
		WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func pageParams(c *gin.Context, log *logrus.Logger) (page, size int, sort string, paged, ok bool) {
	pageStr, hasPage := c.GetQuery("page")
	sizeStr, hasSize := c.GetQuery("size")
	sort, hasSort := c.GetQuery("sort")
	paged = hasPage || hasSize || hasSort

	var err error
	if hasPage {
		page, err = strconv.Atoi(pageStr)
		if err != nil || page < 0 {
			log.Warnf("Handler: Invalid page parameter: %s", pageStr)
			BadRequest(c, "Invalid page parameter")
			return 0, 0, "", false, false
		}
	}
	if hasSize {
		size, err = strconv.Atoi(sizeStr)
		if err != nil || size <= 0 {
			log.Warnf("Handler: Invalid size parameter: %s", sizeStr)
			BadRequest(c, "Invalid size parameter")
			return 0, 0, "", false, false
		}
	}
	return page, size, sort, paged, true
}
