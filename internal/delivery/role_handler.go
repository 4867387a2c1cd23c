package delivery

import (
	"net/http"

	"github.com/NogueiraLn/dscatalog/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type RoleHandler struct {
	useCase usecase.RoleUseCase
	log     *logrus.Logger
}

func NewRoleHandler(uc usecase.RoleUseCase, logger *logrus.Logger) *RoleHandler {
	return &RoleHandler{
		useCase: uc,
		log:     logger,
	}
}

func (h *RoleHandler) RegisterRoutes(router gin.IRouter) {
	router.GET("/roles", h.ListRoles)
}

func (h *RoleHandler) ListRoles(c *gin.Context) {
	roles, err := h.useCase.ListRoles()
	if err != nil {
		h.log.Errorf("Handler: Failed to list roles: %v", err)
		WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, roles)
}
