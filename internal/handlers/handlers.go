package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/joshua-takyi/rendez/internal/helpers"
	"github.com/joshua-takyi/rendez/internal/models"
)

// EventStore is the part of services.EventService the handlers use.
type EventStore interface {
	Create(ctx context.Context, host, title, description, location string, ageReq, capacity int) (*models.Event, error)
	GetByID(ctx context.Context, id string) (*models.Event, error)
	GetMany(ctx context.Context, filter models.EventFilter) ([]models.Event, error)
	Update(ctx context.Context, id string, fields map[string]interface{}) error
	Delete(ctx context.Context, id string) error
	AssertIsHost(ctx context.Context, user, id string) error
	IndicateInterest(ctx context.Context, person, id string) error
	RemoveInterest(ctx context.Context, person, id string) error
	IndicateAttendance(ctx context.Context, person, id string) error
	RemoveAttendance(ctx context.Context, person, id string) error
	AddTag(ctx context.Context, id string, kind models.TagKind, tag string) error
	RemoveTag(ctx context.Context, id string, kind models.TagKind, tag string) error
}

type AddressResolver interface {
	Resolve(ctx context.Context, address string) (*models.Coordinates, error)
}

// currentUser returns the caller id set by AuthMiddleware, answering 401 when absent.
func currentUser(c *gin.Context) (string, bool) {
	userClaims, exists := c.Get("user")
	if !exists {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse("unauthorized"))
		return "", false
	}
	claims, ok := userClaims.(*helpers.CustomClaims)
	if !ok || claims.UserID() == "" {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse("invalid user claims"))
		return "", false
	}
	return claims.UserID(), true
}

func eventID(c *gin.Context) (string, bool) {
	id := helpers.StringTrim(c.Param("id"))
	if id == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse("event ID is required"))
		return "", false
	}
	return id, true
}

func respondError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	switch {
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, models.ErrorResponse(models.ErrorMessage(err)))
	case errors.Is(err, models.ErrNotAllowed):
		c.JSON(http.StatusForbidden, models.ErrorResponse(models.ErrorMessage(err)))
	case errors.As(err, &verrs):
		c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
	default:
		// ErrorHandler logs it and answers 500
		_ = c.Error(err)
	}
}
