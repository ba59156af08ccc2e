package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/rendez/internal/models"
)

func ResolveAddress(ar AddressResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		address := c.Query("address")
		if address == "" {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("address is required"))
			return
		}

		coords, err := ar.Resolve(c.Request.Context(), address)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(coords, ""))
	}
}
