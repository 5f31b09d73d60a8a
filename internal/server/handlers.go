package server

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"sceneforge/internal/assets"
	"sceneforge/internal/gen"
	"sceneforge/internal/history"
	"sceneforge/internal/render"
)

type generateRequest struct {
	Prompt string `json:"prompt"`
}

// handleGenerate runs one generation end to end. Overlapping requests each
// run to completion; the store keeps whichever finishes last.
func (s *Server) handleGenerate(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	prompt := strings.TrimSpace(req.Prompt)
	if prompt == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "prompt must not be empty"})
		return
	}

	job := s.store.Begin(prompt)
	s.hub.Broadcast(EventScenePending, gin.H{"id": job.ID, "prompt": prompt})

	ctx, cancel := context.WithTimeout(c.Request.Context(), s.timeout)
	defer cancel()
	desc, err := s.gen.Generate(ctx, prompt)
	if err != nil {
		s.store.Fail(err)
		s.hub.Broadcast(EventSceneFailed, gin.H{"id": job.ID})
		s.history.Add(history.Record{
			ID:       job.ID,
			Prompt:   prompt,
			Outcome:  "error",
			Error:    err.Error(),
			Duration: time.Since(job.Started),
		})
		log.Printf("generation %s failed: %v", job.ID, err)
		status, msg := errorStatus(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}

	seq := s.store.Complete(desc)
	s.hub.Broadcast(EventSceneUpdated, gin.H{"id": job.ID, "seq": seq})
	s.history.Add(history.Record{
		ID:       job.ID,
		Prompt:   prompt,
		Outcome:  history.Summarize(desc),
		Duration: time.Since(job.Started),
	})
	c.JSON(http.StatusOK, gin.H{"scene": desc, "seq": seq})
}

// errorStatus maps generation failures to HTTP codes. Backend detail never
// reaches the response body, only the log.
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, gen.ErrEmptyPrompt):
		return http.StatusBadRequest, "prompt must not be empty"
	case errors.Is(err, gen.ErrNoCredential):
		return http.StatusServiceUnavailable, "no generation backend configured"
	default:
		return http.StatusBadGateway, "scene generation failed"
	}
}

func (s *Server) handleScene(c *gin.Context) {
	desc, seq, ok := s.store.Current()
	resp := gin.H{"seq": seq, "pending": s.store.Pending()}
	if ok {
		resp["scene"] = desc
	} else {
		resp["scene"] = nil
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleGraph(c *gin.Context) {
	desc, seq, ok := s.store.Current()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no scene generated yet"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"graph": render.Render(desc), "seq": seq})
}

func (s *Server) handleModels(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"models": assets.Models()})
}

func (s *Server) handleTextures(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"textures": assets.Textures()})
}

func (s *Server) handleHistory(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a non-negative integer"})
			return
		}
		limit = n
	}
	c.JSON(http.StatusOK, gin.H{"history": s.history.Tail(limit)})
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":     "ok",
		"configured": s.gen.Configured(),
		"pending":    s.store.Pending(),
		"clients":    s.hub.ClientCount(),
	})
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

func (s *Server) handleWS(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("websocket upgrade: %v", err)
		return
	}
	s.hub.add(conn)

	// Clients never send application messages; the read loop exists to
	// notice disconnects and answer control frames.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				s.hub.drop(conn)
				return
			}
		}
	}()
}
