package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type AutocompleteRequest struct {
	Code           string `json:"code"`
	CursorPosition int    `json:"cursor_position"`
	Language       string `json:"language"`
}

type AutocompleteResponse struct {
	Suggestion string  `json:"suggestion"`
	Confidence float64 `json:"confidence"`
	Context    string  `json:"context,omitempty"`
}

func (h *Handlers) Autocomplete(c *gin.Context) {
	var req AutocompleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	if req.Language == "" {
		req.Language = "python"
	}

	s := h.Suggester.Suggest(req.Code, req.CursorPosition, req.Language)
	c.JSON(http.StatusOK, AutocompleteResponse{
		Suggestion: s.Text,
		Confidence: s.Confidence,
		Context:    s.Context,
	})
}
