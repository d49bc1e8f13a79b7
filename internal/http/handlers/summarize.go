package handlers

import (
	"net/http"

	"devboard/internal/domain"

	"github.com/gin-gonic/gin"
)

type summarizeRequest struct {
	Text   string `json:"text"`
	Format string `json:"format"`
}

// Summarize forwards text to the language model and returns the generated
// summary in the requested format.
func (h *Handler) Summarize(c *gin.Context) {
	var req summarizeRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}
	if req.Text == "" {
		writeError(c, &domain.ValidationError{Msg: "no text provided"})
		return
	}

	summary, err := h.Summarizer.Summarize(c.Request.Context(), req.Text, req.Format)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"summary": summary})
}
