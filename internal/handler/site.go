package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/machzaul/Tubes-Pemweb/config"
)

type SiteHandler struct{}

// GetSiteInfo serves the public shop contact block used by the storefront's
// About and Contact pages.
func (h *SiteHandler) GetSiteInfo(c *gin.Context) {
	c.JSON(http.StatusOK, config.AppConfig.Site)
}
