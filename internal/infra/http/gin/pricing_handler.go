package ginserver

import (
	"errors"
	"net/http"
	"strconv"

	gin "github.com/gin-gonic/gin"

	pricingapp "villetta/internal/app/services/pricing"
	"villetta/internal/domain/property"
)

type PricingHandler struct {
	Service *pricingapp.Service
}

func (h PricingHandler) Quote(c *gin.Context) {
	guests, err := strconv.Atoi(c.DefaultQuery("guests", "1"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{
			"code":    "VALIDATION",
			"message": "guests must be an integer",
		}})
		return
	}

	result, err := h.Service.Quote(
		c.Request.Context(),
		c.Param("id"),
		c.Query("checkin"),
		c.Query("checkout"),
		guests,
	)
	if err != nil {
		switch {
		case pricingapp.IsValidation(err):
			c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{
				"code":    "VALIDATION",
				"message": err.Error(),
			}})
		case errors.Is(err, property.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": gin.H{
				"code":    "PROPERTY_NOT_FOUND",
				"message": "Unknown property",
			}})
		case errors.Is(err, pricingapp.ErrNotAvailable):
			// Expected steady-state: upstream withholds pricing until
			// deeper into its own funnel.
			c.JSON(http.StatusNotFound, gin.H{"error": gin.H{
				"code":    "PRICING_NOT_AVAILABLE",
				"message": "Pricing is not available yet for this stay",
			}})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{
				"code":    "INTERNAL",
				"message": err.Error(),
			}})
		}
		return
	}
	c.JSON(http.StatusOK, result)
}

var _ PricingHTTP = PricingHandler{}
