package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/petilan/petilan_category_service/models"
)

func (h *handler) AddFeature(c *gin.Context) {
	var req models.CreateFeatureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondBindError(c, err)
		return
	}

	feature, err := h.svc.AddFeature(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, feature)
}

func (h *handler) ListFeatures(c *gin.Context) {
	features, err := h.svc.ListFeatures(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"features": features})
}

func (h *handler) DeactivateFeature(c *gin.Context) {
	if err := h.svc.DeactivateFeature(c.Request.Context(), c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "feature deactivated"})
}
