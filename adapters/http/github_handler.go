package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/devconnect-io/devconnect/adapters/github"
)

type GithubHandler struct {
	client *github.Client
}

func NewGithubHandler(client *github.Client) *GithubHandler {
	return &GithubHandler{client: client}
}

// ListRepos handles GET /api/profile/github/:username (public).
func (h *GithubHandler) ListRepos(c *gin.Context) {
	repos, err := h.client.ListRepos(c.Request.Context(), c.Param("username"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, repos)
}
