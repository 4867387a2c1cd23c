package delivery

import (
	"net/http"
	"strconv"

	"github.com/NogueiraLn/dscatalog/internal/domain"
	"github.com/NogueiraLn/dscatalog/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type CategoryHandler struct {
	useCase usecase.CategoryUseCase
	log     *logrus.Logger
}

func NewCategoryHandler(uc usecase.CategoryUseCase, logger *logrus.Logger) *CategoryHandler {
	return &CategoryHandler{
		useCase: uc,
		log:     logger,
	}
}

func (h *CategoryHandler) RegisterRoutes(router gin.IRouter) {
	categories := router.Group("/categories")
	{
		categories.POST("", h.CreateCategory)
		categories.GET("", h.ListCategories)
		categories.GET("/:id", h.GetCategoryByID)
		categories.PUT("/:id", h.UpdateCategory)
		categories.DELETE("/:id", h.DeleteCategory)
	}
}

func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var category domain.Category
	if err := c.ShouldBindJSON(&category); err != nil {
		h.log.Errorf("Handler: Failed to bind JSON for create category: %v", err)
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	createdCategory, err := h.useCase.CreateCategory(&category)
	if err != nil {
		h.log.Warnf("Handler: Failed to create category '%s': %v", category.Name, err)
		WriteError(c, err)
		return
	}

	c.JSON(http.StatusCreated, createdCategory)
}

func (h *CategoryHandler) GetCategoryByID(c *gin.Context) {
	id, ok := pathID(c, h.log)
	if !ok {
		return
	}

	category, err := h.useCase.GetCategoryByID(id)
	if err != nil {
		h.log.Warnf("Handler: Failed to get category by ID %d: %v", id, err)
		WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, category)
}

func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	id, ok := pathID(c, h.log)
	if !ok {
		return
	}

	var category domain.Category
	if err := c.ShouldBindJSON(&category); err != nil {
		h.log.Errorf("Handler: Failed to bind JSON for update category ID %d: %v", id, err)
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	updatedCategory, err := h.useCase.UpdateCategory(id, &category)
	if err != nil {
		h.log.Warnf("Handler: Failed to update category ID %d: %v", id, err)
		WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, updatedCategory)
}

func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	id, ok := pathID(c, h.log)
	if !ok {
		return
	}

	if err := h.useCase.DeleteCategory(id); err != nil {
		h.log.Warnf("Handler: Failed to delete category ID %d: %v", id, err)
		WriteError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *CategoryHandler) ListCategories(c *gin.Context) {
	categories, err := h.useCase.ListCategories()
	if err != nil {
		h.log.Errorf("Handler: Failed to list categories: %v", err)
		WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, categories)
}

// pathID parses the :id path parameter, rejecting anything that is not a
// positive integer.
func pathID(c *gin.Context, log *logrus.Logger) (int64, bool) {
	idStr := c.Param("id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		log.Warnf("Handler: Invalid ID parameter: %s", idStr)
		BadRequest(c, "Invalid ID format")
		return 0, false
	}
	return id, true
}
