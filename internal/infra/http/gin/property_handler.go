package ginserver

import (
	"errors"
	"net/http"

	gin "github.com/gin-gonic/gin"

	"villetta/internal/app/dto"
	"villetta/internal/domain/property"
)

type PropertyHandler struct {
	Repo property.Repository
}

func (h PropertyHandler) List(c *gin.Context) {
	items, err := h.Repo.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{
			"code":    "INTERNAL",
			"message": err.Error(),
		}})
		return
	}
	c.JSON(http.StatusOK, gin.H{"properties": dto.MapProperties(items)})
}

func (h PropertyHandler) Get(c *gin.Context) {
	p, err := h.Repo.ByID(c.Request.Context(), c.Param("id"))
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
	c.JSON(http.StatusOK, dto.MapProperty(*p))
}

var _ PropertyHTTP = PropertyHandler{}
