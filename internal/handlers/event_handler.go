package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/rendez/internal/helpers"
	"github.com/joshua-takyi/rendez/internal/models"
)

type createEventRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Location    string `json:"location"`
	AgeReq      int    `json:"age_req" binding:"min=0"`
	Capacity    int    `json:"capacity" binding:"min=0"`
}

func CreateEvent(es EventStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUser(c)
		if !ok {
			return
		}

		var req createEventRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		event, err := es.Create(c.Request.Context(), userID, req.Title, req.Description, req.Location, req.AgeReq, req.Capacity)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusCreated, models.SuccessResponse(event, "Event created successfully"))
	}
}

func ListEvents(es EventStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter := models.EventFilter{Host: helpers.StringTrim(c.Query("host"))}

		events, err := es.GetMany(c.Request.Context(), filter)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(events, ""))
	}
}

func GetEvent(es EventStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := eventID(c)
		if !ok {
			return
		}

		event, err := es.GetByID(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(event, ""))
	}
}

// hostOnly resolves the caller and event id and checks the caller hosts the event.
func hostOnly(c *gin.Context, es EventStore) (string, bool) {
	userID, ok := currentUser(c)
	if !ok {
		return "", false
	}
	id, ok := eventID(c)
	if !ok {
		return "", false
	}
	if err := es.AssertIsHost(c.Request.Context(), userID, id); err != nil {
		respondError(c, err)
		return "", false
	}
	return id, true
}

func UpdateEvent(es EventStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := hostOnly(c, es)
		if !ok {
			return
		}

		var fields map[string]interface{}
		if err := c.ShouldBindJSON(&fields); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid request body"))
			return
		}

		if err := es.Update(c.Request.Context(), id, fields); err != nil {
			respondError(c, err)
			return
		}

		event, err := es.GetByID(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(event, "Event updated successfully"))
	}
}

func DeleteEvent(es EventStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := hostOnly(c, es)
		if !ok {
			return
		}

		if err := es.Delete(c.Request.Context(), id); err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(nil, "event deleted successfully"))
	}
}

type rsvpFunc func(ctx context.Context, person, id string) error

func rsvp(op rsvpFunc, message string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUser(c)
		if !ok {
			return
		}
		id, ok := eventID(c)
		if !ok {
			return
		}

		if err := op(c.Request.Context(), userID, id); err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(nil, message))
	}
}

func IndicateInterest(es EventStore) gin.HandlerFunc {
	return rsvp(es.IndicateInterest, "interest recorded")
}

func RemoveInterest(es EventStore) gin.HandlerFunc {
	return rsvp(es.RemoveInterest, "interest removed")
}

func IndicateAttendance(es EventStore) gin.HandlerFunc {
	return rsvp(es.IndicateAttendance, "attendance recorded")
}

func RemoveAttendance(es EventStore) gin.HandlerFunc {
	return rsvp(es.RemoveAttendance, "attendance removed")
}

func tagKind(c *gin.Context) (models.TagKind, bool) {
	kind := models.TagKind(c.Param("kind"))
	if !kind.Valid() {
		c.JSON(http.StatusNotFound, models.ErrorResponse("unknown tag kind"))
		return "", false
	}
	return kind, true
}

func AddTag(es EventStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		kind, ok := tagKind(c)
		if !ok {
			return
		}
		id, ok := hostOnly(c, es)
		if !ok {
			return
		}

		var reqBody struct {
			Tag string `json:"tag" binding:"required"`
		}
		if err := c.ShouldBindJSON(&reqBody); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		if err := es.AddTag(c.Request.Context(), id, kind, reqBody.Tag); err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(nil, kind.Singular()+" added"))
	}
}

func RemoveTag(es EventStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		kind, ok := tagKind(c)
		if !ok {
			return
		}
		id, ok := hostOnly(c, es)
		if !ok {
			return
		}

		// tags may contain "/", so they travel in the query rather than the path
		tag := c.Query("tag")
		if tag == "" {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("tag is required"))
			return
		}

		if err := es.RemoveTag(c.Request.Context(), id, kind, tag); err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(nil, kind.Singular()+" removed"))
	}
}
