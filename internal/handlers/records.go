package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"taskdesk/internal/models"
	"taskdesk/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateRecordRequest is the body for creating a task or ticket.
// The owner always comes from the token, so there is no owner field.
type CreateRecordRequest struct {
	Title       string `json:"title" binding:"required" example:"Fix the login page"`
	Description string `json:"description" example:"Button does nothing on Safari"`
	Date        string `json:"date" example:"2025-09-01"`
	Time        string `json:"time" example:"14:30"`
}

// UpdateRecordRequest is a partial update; omitted fields keep their value.
type UpdateRecordRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Date        *string `json:"date"`
	Time        *string `json:"time"`
}

var kindLabels = map[string]string{
	models.KindTask:   "Task",
	models.KindTicket: "Ticket",
}

func parseRecordID(c *gin.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return 0, err
	}
	if id <= 0 {
		return 0, errors.New("id must be positive")
	}
	return id, nil
}

// recordError answers 404 with a kind-specific message and delegates the rest.
func (h *Handler) recordError(c *gin.Context, kind string, err error, logKey string, kv ...interface{}) {
	if errors.Is(err, service.ErrNotFound) {
		h.logAndJSONError(c, http.StatusNotFound, kindLabels[kind]+" not found", logKey, err, kv...)
		return
	}
	h.respondError(c, err, logKey, kv...)
}

// recordTarget resolves the caller and the :id parameter for single-record routes.
func (h *Handler) recordTarget(c *gin.Context) (userID, id int, ok bool) {
	userID, ok = h.mustCaller(c)
	if !ok {
		return 0, 0, false
	}
	id, err := parseRecordID(c)
	if err != nil {
		h.logAndJSONError(c, http.StatusBadRequest, msgInvalidID, "record_bad_id", err, "id", c.Param("id"))
		return 0, 0, false
	}
	return userID, id, true
}

// @Summary      List the caller's records
// @Tags         records
// @Produce      json
// @Success      200  {array}   models.Record
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /tasks [get]
// @Router       /tickets [get]
// @Security     BearerAuth
func (h *Handler) listRecords(kind string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := h.mustCaller(c)
		if !ok {
			return
		}
		recs, err := h.services.Records.List(c.Request.Context(), userID, kind)
		if err != nil {
			h.respondError(c, err, "records_list_failed", "user_id", userID, "kind", kind)
			return
		}
		c.JSON(http.StatusOK, recs)
	}
}

// @Summary      Create a record owned by the caller
// @Tags         records
// @Accept       json
// @Produce      json
// @Param        body  body      CreateRecordRequest  true  "Record"
// @Success      201   {object}  models.Record
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /tasks [post]
// @Router       /tickets [post]
// @Security     BearerAuth
func (h *Handler) createRecord(kind string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := h.mustCaller(c)
		if !ok {
			return
		}
		var req CreateRecordRequest
		if !h.bindJSONOrBadRequest(c, &req, "records_create_bad_body") {
			return
		}
		rec, err := h.services.Records.Create(c.Request.Context(), userID, kind, models.RecordFields{
			Title:       req.Title,
			Description: req.Description,
			Date:        req.Date,
			Time:        req.Time,
		})
		if err != nil {
			h.respondError(c, err, "records_create_failed", "user_id", userID, "kind", kind)
			return
		}
		c.JSON(http.StatusCreated, rec)
	}
}

// @Summary      Get one of the caller's records
// @Tags         records
// @Produce      json
// @Param        id   path      int  true  "Record id"
// @Success      200  {object}  models.Record
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /tasks/{id} [get]
// @Router       /tickets/{id} [get]
// @Security     BearerAuth
func (h *Handler) getRecord(kind string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, id, ok := h.recordTarget(c)
		if !ok {
			return
		}
		rec, err := h.services.Records.Get(c.Request.Context(), userID, kind, id)
		if err != nil {
			h.recordError(c, kind, err, "records_get_failed", "user_id", userID, "kind", kind, "id", id)
			return
		}
		c.JSON(http.StatusOK, rec)
	}
}

// @Summary      Update one of the caller's records
// @Description  Only fields present in the body are changed.
// @Tags         records
// @Accept       json
// @Produce      json
// @Param        id    path      int                  true  "Record id"
// @Param        body  body      UpdateRecordRequest  true  "Fields to change"
// @Success      200   {object}  models.Record
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /tasks/{id} [put]
// @Router       /tickets/{id} [put]
// @Security     BearerAuth
func (h *Handler) updateRecord(kind string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, id, ok := h.recordTarget(c)
		if !ok {
			return
		}
		var req UpdateRecordRequest
		if !h.bindJSONOrBadRequest(c, &req, "records_update_bad_body") {
			return
		}
		rec, err := h.services.Records.Update(c.Request.Context(), userID, kind, id, models.RecordPatch{
			Title:       req.Title,
			Description: req.Description,
			Date:        req.Date,
			Time:        req.Time,
		})
		if err != nil {
			h.recordError(c, kind, err, "records_update_failed", "user_id", userID, "kind", kind, "id", id)
			return
		}
		c.JSON(http.StatusOK, rec)
	}
}

// @Summary      Delete one of the caller's records
// @Tags         records
// @Produce      json
// @Param        id   path      int  true  "Record id"
// @Success      200  {object}  map[string]string  "message"
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /tasks/{id} [delete]
// @Router       /tickets/{id} [delete]
// @Security     BearerAuth
func (h *Handler) deleteRecord(kind string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, id, ok := h.recordTarget(c)
		if !ok {
			return
		}
		if err := h.services.Records.Delete(c.Request.Context(), userID, kind, id); err != nil {
			h.recordError(c, kind, err, "records_delete_failed", "user_id", userID, "kind", kind, "id", id)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": kindLabels[kind] + " deleted"})
	}
}
