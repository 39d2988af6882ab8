// Package server exposes the signup coordination layer over HTTP. The
// presentation layer (static signup pages) consumes these endpoints; no
// rendering happens here.
package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/samuelmholley1/ukiahumc-signups/pkg/coordinate"
	"github.com/samuelmholley1/ukiahumc-signups/pkg/store"
)

// Server holds the HTTP handler dependencies.
type Server struct {
	coordinator *coordinate.Coordinator
	logger      *zap.Logger
}

// New creates a Server around a coordinator.
func New(coordinator *coordinate.Coordinator, logger *zap.Logger) *Server {
	return &Server{coordinator: coordinator, logger: logger}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	r.GET("/slots", s.GetSlots)
	r.POST("/signup", s.PostSignup)
	r.DELETE("/signup", s.DeleteSignup)
	r.GET("/busy-volunteers", s.GetBusyVolunteers)

	return r
}

// noStore keeps intermediary caches out of the freshness story; the
// application-level slot cache is the only cache in play.
func noStore(c *gin.Context) {
	c.Header("Cache-Control", "no-store")
}

// GET /slots?signupType=&period=
func (s *Server) GetSlots(c *gin.Context) {
	noStore(c)

	signupType, err := store.ParseSignupType(c.Query("signupType"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	period := c.Query("period")

	slots, err := s.coordinator.SlotView(c.Request.Context(), signupType, period)
	if err != nil {
		// Degrade to the empty template so the page always renders;
		// occupants reappear once the store recovers.
		s.logger.Error("Slot view failed, serving bare template",
			zap.String("signup_type", string(signupType)),
			zap.Error(err))
		c.JSON(http.StatusOK, gin.H{"slots": s.coordinator.TemplateView(signupType, period)})
		return
	}

	c.JSON(http.StatusOK, gin.H{"slots": slots})
}

// POST /signup
func (s *Server) PostSignup(c *gin.Context) {
	var req coordinate.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	recordID, err := s.coordinator.Signup(c.Request.Context(), req)
	if err != nil {
		var validationErr *coordinate.ValidationError
		if errors.As(err, &validationErr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Reason})
			return
		}
		var conflict *coordinate.ConflictError
		if errors.As(err, &conflict) {
			c.JSON(http.StatusConflict, gin.H{
				"error":   "SLOT_TAKEN",
				"takenBy": conflict.TakenBy,
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save signup"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ok": true, "recordId": recordID})
}

// DELETE /signup?recordId=&signupType=
func (s *Server) DeleteSignup(c *gin.Context) {
	signupType, err := store.ParseSignupType(c.Query("signupType"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	recordID := c.Query("recordId")
	if recordID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "recordId is required"})
		return
	}

	if err := s.coordinator.Cancel(c.Request.Context(), signupType, recordID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to cancel signup"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// GET /busy-volunteers?date=YYYY-MM-DD
func (s *Server) GetBusyVolunteers(c *gin.Context) {
	noStore(c)

	date := c.Query("date")
	if _, err := time.Parse("2006-01-02", date); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
		return
	}

	busy := s.coordinator.BusyVolunteers(c.Request.Context(), date)
	c.JSON(http.StatusOK, gin.H{"busyVolunteers": busy})
}
