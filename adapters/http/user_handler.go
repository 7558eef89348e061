package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	authUC "github.com/devconnect-io/devconnect/internal/application/usecase/auth"
	"github.com/devconnect-io/devconnect/pkg/apperror"
)

type UserHandler struct {
	registerUseCase *authUC.RegisterUseCase
}

func NewUserHandler(registerUC *authUC.RegisterUseCase) *UserHandler {
	return &UserHandler{registerUseCase: registerUC}
}

// Register handles POST /api/users: creates an identity and issues a token.
func (h *UserHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewBadRequest("Invalid request body"))
		return
	}

	output, err := h.registerUseCase.Execute(c.Request.Context(), authUC.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": output.Token})
}
