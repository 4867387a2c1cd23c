package delivery

import (
	"net/http"

	"github.com/NogueiraLn/dscatalog/internal/domain"
	"github.com/NogueiraLn/dscatalog/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type UserHandler struct {
	useCase usecase.UserUseCase
	log     *logrus.Logger
}

func NewUserHandler(uc usecase.UserUseCase, logger *logrus.Logger) *UserHandler {
	return &UserHandler{
		useCase: uc,
		log:     logger,
	}
}

func (h *UserHandler) RegisterRoutes(router gin.IRouter) {
	users := router.Group("/users")
	{
		users.POST("", h.CreateUser)
		users.GET("", h.ListUsers)
		users.GET("/:id", h.GetUserByID)
		users.PUT("/:id", h.UpdateUser)
		users.PUT("/:id/password", h.ChangePassword)
		users.DELETE("/:id", h.DeleteUser)
	}
}

func (h *UserHandler) CreateUser(c *gin.Context) {
	var dto domain.UserInsertDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		h.log.Errorf("Handler: Failed to bind JSON for create user: %v", err)
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	createdUser, err := h.useCase.CreateUser(&dto)
	if err != nil {
		h.log.Warnf("Handler: Failed to create user '%s': %v", dto.Email, err)
		WriteError(c, err)
		return
	}

	c.JSON(http.StatusCreated, createdUser)
}

func (h *UserHandler) GetUserByID(c *gin.Context) {
	id, ok := pathID(c, h.log)
	if !ok {
		return
	}

	user, err := h.useCase.GetUserByID(id)
	if err != nil {
		h.log.Warnf("Handler: Failed to get user by ID %d: %v", id, err)
		WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, ok := pathID(c, h.log)
	if !ok {
		return
	}

	var dto domain.UserUpdateDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		h.log.Errorf("Handler: Failed to bind JSON for update user ID %d: %v", id, err)
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	updatedUser, err := h.useCase.UpdateUser(id, &dto)
	if err != nil {
		h.log.Warnf("Handler: Failed to update user ID %d: %v", id, err)
		WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, updatedUser)
}

func (h *UserHandler) ChangePassword(c *gin.Context) {
	id, ok := pathID(c, h.log)
	if !ok {
		return
	}

	var dto domain.UserPasswordDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		h.log.Errorf("Handler: Failed to bind JSON for password change, user ID %d: %v", id, err)
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	if err := h.useCase.ChangePassword(id, &dto); err != nil {
		h.log.Warnf("Handler: Failed to change password for user ID %d: %v", id, err)
		WriteError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, ok := pathID(c, h.log)
	if !ok {
		return
	}

	if err := h.useCase.DeleteUser(id); err != nil {
		h.log.Warnf("Handler: Failed to delete user ID %d: %v", id, err)
		WriteError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *UserHandler) ListUsers(c *gin.Context) {
	page, size, sort, paged, ok := pageParams(c, h.log)
	if !ok {
		return
	}

	if paged {
		result, err := h.useCase.ListUsersPaged(page, size, sort)
		if err != nil {
			h.log.Errorf("Handler: Failed to list users page %d: %v", page, err)
			WriteError(c, err)
			return
		}
		c.JSON(http.StatusOK, result)
		return
	}

	users, err := h.useCase.ListUsers()
	if err != nil {
		h.log.Errorf("Handler: Failed to list users: %v", err)
		WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}
