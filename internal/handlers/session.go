package handlers

import (
	"net/http"
	"strings"

	"github.com/arianafaustini/dial-tester/internal/telemetry"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type SessionHandler struct {
	log   *zap.Logger
	store Store
}

func NewSessionHandler(log *zap.Logger, store Store) *SessionHandler {
	return &SessionHandler{log: log, store: store}
}

type createSessionRequest struct {
	Email string `json:"email"`
}

type updateSessionRequest struct {
	Action string `json:"action"`
}

// Create starts a new recording session for a participant email.
func (h *SessionHandler) Create(c *gin.Context) {
	var req createSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email is required"})
		return
	}

	email := strings.TrimSpace(req.Email)
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email is required"})
		return
	}

	session, err := h.store.CreateSession(c.Request.Context(), email)
	if err != nil {
		h.log.Error("Failed to create session", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create session", "details": err.Error()})
		return
	}

	telemetry.SessionsCreated.Inc()
	c.JSON(http.StatusOK, gin.H{"session": session})
}

// Get returns one session with its data points.
func (h *SessionHandler) Get(c *gin.Context) {
	sessionID := c.Param("id")
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Session ID is required"})
		return
	}

	session, err := h.store.GetSession(c.Request.Context(), sessionID)
	if err != nil {
		// A missing session collapses into the store failure response here.
		h.log.Error("Failed to fetch session", zap.String("session_id", sessionID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch session", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"session": session})
}

// Update bumps updated_at and, for the "complete" action, sets the end
// timestamp. Unknown actions are not an error.
func (h *SessionHandler) Update(c *gin.Context) {
	sessionID := c.Param("id")
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Session ID is required"})
		return
	}

	var req updateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	complete := req.Action == "complete"
	session, err := h.store.UpdateSession(c.Request.Context(), sessionID, complete)
	if err != nil {
		h.log.Error("Failed to update session", zap.String("session_id", sessionID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update session", "details": err.Error()})
		return
	}

	if complete {
		telemetry.SessionsCompleted.Inc()
	}
	c.JSON(http.StatusOK, gin.H{"session": session})
}
