package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	authUC "github.com/devconnect-io/devconnect/internal/application/usecase/auth"
	"github.com/devconnect-io/devconnect/pkg/apperror"
)

type AuthHandler struct {
	loginUseCase    *authUC.LoginUseCase
	loadUserUseCase *authUC.LoadUserUseCase
}

func NewAuthHandler(loginUC *authUC.LoginUseCase, loadUserUC *authUC.LoadUserUseCase) *AuthHandler {
	return &AuthHandler{
		loginUseCase:    loginUC,
		loadUserUseCase: loadUserUC,
	}
}

// Login handles POST /api/auth: verifies credentials and issues a token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewBadRequest("Invalid request body"))
		return
	}

	output, err := h.loginUseCase.Execute(c.Request.Context(), authUC.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": output.Token})
}

// GetAuthenticatedUser handles GET /api/auth: resolves the identity behind
// the presented token.
func (h *AuthHandler) GetAuthenticatedUser(c *gin.Context) {
	ownerID, ok := GetOwnerIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("ownerID not found in context"))
		return
	}

	output, err := h.loadUserUseCase.Execute(c.Request.Context(), authUC.LoadUserInput{UserID: ownerID})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, ToUserDTO(output.User))
}
