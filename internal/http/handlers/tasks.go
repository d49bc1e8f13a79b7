package handlers

import (
	"net/http"
	"time"

	"devboard/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// dateBound treats the literal strings unset frontend pickers send as "no
// bound".
func dateBound(s string) string {
	if s == "null" || s == "undefined" {
		return ""
	}
	return s
}

// ListTasks returns the user's tasks filtered by completion status and an
// inclusive date range. An unknown status value behaves like "all".
func (h *Handler) ListTasks(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	status := c.DefaultQuery("status", domain.StatusAll)
	startDate := dateBound(c.Query("startDate"))
	endDate := dateBound(c.Query("endDate"))

	tasks, err := h.Tasks.List(c.Request.Context(), user.Email, status, startDate, endDate)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, tasks)
}

type createTaskRequest struct {
	Text string `json:"text"`
}

// CreateTask stores a new task. Id and timestamp are server-generated and
// the task always starts pending, whatever the client sent.
func (h *Handler) CreateTask(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req createTaskRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}
	if req.Text == "" {
		writeError(c, &domain.ValidationError{Msg: "text is required"})
		return
	}

	task := domain.Task{
		ID:        uuid.NewString(),
		Text:      req.Text,
		Completed: false,
		Date:      h.now().UTC().Format(time.RFC3339),
	}

	if err := h.Tasks.Create(c.Request.Context(), user.Email, &task); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, task)
}

// CompleteTask flips the completed flag of one of the user's tasks. The
// CORS middleware has already answered the unauthenticated OPTIONS
// preflight by the time this runs.
func (h *Handler) CompleteTask(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	if _, err := h.Tasks.Toggle(c.Request.Context(), user.Email, c.Param("id")); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "task status updated successfully"})
}
