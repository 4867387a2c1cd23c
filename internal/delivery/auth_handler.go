package delivery

import (
	"net/http"

	"github.com/NogueiraLn/dscatalog/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type AuthHandler struct {
	useCase usecase.UserUseCase
	log     *logrus.Logger
}

func NewAuthHandler(uc usecase.UserUseCase, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{
		useCase: uc,
		log:     logger,
	}
}

func (h *AuthHandler) RegisterRoutes(router gin.IRouter) {
	auth := router.Group("/auth")
	{
		auth.POST("/login", h.Login)
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Errorf("Handler: Failed to bind JSON for login: %v", err)
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	result, err := h.useCase.AuthenticateUser(req.Email, req.Password)
	if err != nil {
		h.log.Errorf("Handler: Authentication error for %s: %v", req.Email, err)
		WriteError(c, err)
		return
	}

	if !result.Authenticated {
		c.JSON(http.StatusUnauthorized, result)
		return
	}

	c.JSON(http.StatusOK, result)
}
