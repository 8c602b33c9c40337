package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/petilan/petilan_category_service/config"
	"github.com/petilan/petilan_category_service/models"
	"github.com/petilan/petilan_category_service/pkg/logger"
	"github.com/petilan/petilan_category_service/services"
	"github.com/pkg/errors"
)

type handler struct {
	log  logger.Logger
	cfg  config.Config
	svc  services.CategoryServiceI
	sync services.BreedSyncI
}

func (h *handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "service": h.cfg.ServiceName})
}

// respondError translates the service error taxonomy to HTTP statuses.
// Conflicts with existing state map to 409, caller mistakes to 400.
func (h *handler) respondError(c *gin.Context, err error) {

	var verr *models.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "validation_error",
			"field":   verr.Field,
			"message": verr.Reason,
		})
		return
	}

	switch {
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "not_found",
			"message": "resource not found",
		})
	case errors.Is(err, models.ErrDuplicateName):
		c.JSON(http.StatusConflict, gin.H{
			"error":   "duplicate_name",
			"message": "a sibling category with this name already exists",
		})
	case errors.Is(err, models.ErrDuplicateSlug):
		c.JSON(http.StatusConflict, gin.H{
			"error":   "duplicate_slug",
			"message": "could not allocate a unique slug",
		})
	case errors.Is(err, models.ErrCycle):
		c.JSON(http.StatusConflict, gin.H{
			"error":   "cycle",
			"message": "the parent change would create a cycle",
		})
	case errors.Is(err, models.ErrHasActiveChildren):
		c.JSON(http.StatusConflict, gin.H{
			"error":   "has_active_children",
			"message": "deactivate the children first",
		})
	default:
		h.log.Error("request failed",
			logger.String("path", c.FullPath()), logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal",
			"message": "internal server error",
		})
	}
}

func (h *handler) respondBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error":   "bad_request",
		"message": err.Error(),
	})
}
