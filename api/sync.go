package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ReconcileBreeds triggers a full breed-to-category reconciliation. Meant
// for operators; the same pass also runs after bulk breed imports.
func (h *handler) ReconcileBreeds(c *gin.Context) {
	result, err := h.sync.Reconcile(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *handler) SweepUsage(c *gin.Context) {
	corrected, err := h.svc.SweepUsage(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"corrected": corrected})
}
