package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/megasoby/shop-agent/pkg/agent"
	"github.com/megasoby/shop-agent/pkg/models"
	"github.com/megasoby/shop-agent/pkg/search"
)

type chatRequest struct {
	Question string `json:"question"`
	TopK     int    `json:"topK"`
	UserID   string `json:"userId"`
}

type guideSearchRequest struct {
	Query   string `json:"query"`
	TopK    int    `json:"topK"`
	OrderNo string `json:"orderNo"`
	LineSeq int    `json:"lineSeq"`
	UserID  string `json:"userId"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleChat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	answer, err := s.products.Answer(c.Request.Context(), agent.AskRequest{
		Question: req.Question,
		TopK:     req.TopK,
		UserID:   req.UserID,
	})
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, answer)
}

func (s *Server) handleGetHistory(c *gin.Context) {
	userID := c.DefaultQuery("userId", models.DefaultUserID)

	var turns []models.ConversationTurn
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, errorResponse{Error: "limit must be an integer"})
			return
		}
		turns = s.history.GetRecent(userID, limit)
	} else {
		turns = s.history.Get(userID)
	}
	c.JSON(http.StatusOK, turns)
}

func (s *Server) handleClearHistory(c *gin.Context) {
	userID := c.DefaultQuery("userId", models.DefaultUserID)
	s.history.Clear(userID)
	c.Status(http.StatusOK)
}

func (s *Server) handleStats(c *gin.Context) {
	c.JSON(http.StatusOK, s.history.Stats())
}

func (s *Server) handleGuideSearch(c *gin.Context) {
	var req guideSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	s.runGuideSearch(c, req)
}

func (s *Server) handleGuideSearchGet(c *gin.Context) {
	req := guideSearchRequest{
		Query:   c.Query("query"),
		TopK:    intQuery(c, "topK"),
		OrderNo: c.Query("orderNo"),
		LineSeq: intQuery(c, "lineSeq"),
		UserID:  c.Query("userId"),
	}
	s.runGuideSearch(c, req)
}

func (s *Server) runGuideSearch(c *gin.Context, req guideSearchRequest) {
	answer, err := s.guides.Search(c.Request.Context(), agent.GuideRequest{
		Query:   req.Query,
		TopK:    req.TopK,
		OrderNo: req.OrderNo,
		LineSeq: req.LineSeq,
		UserID:  req.UserID,
	})
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, answer)
}

func (s *Server) handleGuideTextSearch(c *gin.Context) {
	answer, err := s.guides.TextSearch(c.Request.Context(), agent.GuideRequest{
		Query: c.Query("query"),
		TopK:  intQuery(c, "topK"),
	})
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, answer)
}

// respondError maps the error taxonomy to status codes. Internal detail is
// logged, never sent to the caller.
func (s *Server) respondError(c *gin.Context, err error) {
	var validationErr *agent.ValidationError
	if errors.As(err, &validationErr) {
		c.JSON(http.StatusBadRequest, errorResponse{Error: validationErr.Reason})
		return
	}

	var retrievalErr *search.RetrievalError
	if errors.As(err, &retrievalErr) {
		s.log.Error().Err(err).Msg("retrieval failure")
		c.JSON(http.StatusBadGateway, errorResponse{Error: "search backend unavailable"})
		return
	}

	s.log.Error().Err(err).Msg("internal failure")
	c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal error"})
}

func intQuery(c *gin.Context, key string) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return 0
	}
	return v
}
