package ginserver

import (
	"errors"
	"net/http"

	gin "github.com/gin-gonic/gin"

	availabilityapp "villetta/internal/app/services/availability"
	"villetta/internal/domain/property"
)

type AvailabilityHandler struct {
	Service *availabilityapp.Service
}

func (h AvailabilityHandler) Calendar(c *gin.Context) {
	result, err := h.Service.PropertyCalendar(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, property.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": gin.H{
				"code":    "PROPERTY_NOT_FOUND",
				"message": "Unknown property",
			}})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{
			"code":    "INTERNAL",
			"message": err.Error(),
		}})
		return
	}
	c.JSON(http.StatusOK, result)
}

var _ AvailabilityHTTP = AvailabilityHandler{}
