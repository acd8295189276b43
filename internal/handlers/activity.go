package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"taskdesk/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	errFromInvalid = "invalid 'from' time; use RFC3339 or YYYY-MM-DD"
	errToInvalid   = "invalid 'to' time; use RFC3339 or YYYY-MM-DD"

	layoutDateTime = "2006-01-02 15:04:05"
	layoutDate     = "2006-01-02"
)

// isDateOnly reports whether the query string represents a date without time component.
func isDateOnly(s string) bool {
	return !strings.ContainsAny(s, "T ")
}

// @Summary      List the caller's activity
// @Description  Filter by date (RFC3339, 'YYYY-MM-DD HH:MM:SS', or 'YYYY-MM-DD'). A date-only 'to' covers the whole day.
// @Tags         activity
// @Produce      json
// @Param        from    query   string  false  "Start of range"  example(2025-08-01)
// @Param        to      query   string  false  "End of range. Date-only means end of day."  example(2025-08-31)
// @Param        action  query   string  false  "Action"  Enums(CREATE,UPDATE,DELETE)
// @Param        kind    query   string  false  "Record kind"  Enums(task,ticket)
// @Success      200     {object}  map[string]interface{}  "count, entries"
// @Failure      400     {object}  map[string]string
// @Failure      401     {object}  map[string]string
// @Failure      500     {object}  map[string]string
// @Router       /activity [get]
// @Security     BearerAuth
func (h *Handler) getActivity(c *gin.Context) {
	userID, ok := h.mustCaller(c)
	if !ok {
		return
	}
	var (
		from time.Time
		to   time.Time
		err  error
	)
	if qs := c.Query("from"); qs != "" {
		from, err = parseQueryTime(qs)
		if err != nil {
			h.logAndJSONError(c, http.StatusBadRequest, errFromInvalid, "activity_bad_from", err)
			return
		}
	}
	if qs := c.Query("to"); qs != "" {
		to, err = parseQueryTime(qs)
		if err != nil {
			h.logAndJSONError(c, http.StatusBadRequest, errToInvalid, "activity_bad_to", err)
			return
		}
		if isDateOnly(qs) {
			to = to.Add(24*time.Hour - time.Nanosecond).UTC()
		}
	}

	entries, err := h.services.Activity.List(c.Request.Context(), userID, service.ActivityFilter{
		From:   from,
		To:     to,
		Action: c.Query("action"),
		Kind:   c.Query("kind"),
	})
	if err != nil {
		h.respondError(c, err, "activity_list_failed", "user_id", userID, "from", from, "to", to)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":   len(entries),
		"entries": entries,
	})
}

func parseQueryTime(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, layoutDateTime, layoutDate} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf(
		"invalid time format %q, expected one of: "+
			"RFC3339 (e.g. 2025-08-27T15:04:05Z), "+
			"'YYYY-MM-DD HH:MM:SS', "+
			"'YYYY-MM-DD'",
		s,
	)
}
