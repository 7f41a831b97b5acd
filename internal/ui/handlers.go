package ui

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"SchoolMeal/internal/controller"
	"SchoolMeal/internal/v0/common"
	"SchoolMeal/internal/view"
)

const (
	// ContextKeySession holds the *Session resolved from the URL
	ContextKeySession = "ui_session"

	// LongPollTimeout bounds how long a view request waits for a change
	LongPollTimeout = 25 * time.Second
)

type InputRequest struct {
	Text string `json:"text"`
}

type SubmitRequest struct {
	Name string `json:"name"`
}

type PickRequest struct {
	Index *int `json:"index" binding:"required,min=0"`
}

type DateRequest struct {
	Date string `json:"date"`
}

// SessionCreated is returned when a page opens
type SessionCreated struct {
	ID   string        `json:"id"`
	View view.Snapshot `json:"view"`
}

type Handler struct {
	sessions    *SessionStore
	pollTimeout time.Duration
}

func NewHandler(sessions *SessionStore) *Handler {
	return &Handler{sessions: sessions, pollTimeout: LongPollTimeout}
}

// RequireSession resolves :id to a live session or aborts with 404
func (h *Handler) RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := h.sessions.Get(c.Param("id"))
		if !ok {
			c.AbortWithStatusJSON(http.StatusNotFound, common.CreateErrorResponse([]string{"session not found"}))
			return
		}
		c.Set(ContextKeySession, session)
		c.Next()
	}
}

func sessionFrom(c *gin.Context) *Session {
	return c.MustGet(ContextKeySession).(*Session)
}

// CreateSession opens a page and loads today's meals for the default school
func (h *Handler) CreateSession(c *gin.Context) {
	session := h.sessions.Create()
	// Failures are rendered into the page content.
	_ = session.Controller.Ready(c.Request.Context())

	common.Success(c, http.StatusCreated, SessionCreated{
		ID:   session.ID,
		View: session.Page.Snapshot(),
	})
}

// GetView long-polls for a snapshot newer than ?after
func (h *Handler) GetView(c *gin.Context) {
	session := sessionFrom(c)

	var after uint64
	if raw := c.Query("after"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, common.CreateErrorResponse([]string{"Invalid after parameter"}))
			return
		}
		after = parsed
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.pollTimeout)
	defer cancel()

	snapshot, err := session.Page.Wait(ctx, after)
	if err != nil && !errors.Is(err, context.DeadlineExceeded) {
		// Client went away
		return
	}
	common.Success(c, http.StatusOK, snapshot)
}

func (h *Handler) Submit(c *gin.Context) {
	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.CreateErrorResponse([]string{err.Error()}))
		return
	}
	session := sessionFrom(c)
	h.respond(c, session, session.Controller.Submit(c.Request.Context(), req.Name))
}

func (h *Handler) Input(c *gin.Context) {
	var req InputRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.CreateErrorResponse([]string{err.Error()}))
		return
	}
	session := sessionFrom(c)
	session.Controller.Input(req.Text)
	h.respond(c, session, nil)
}

func (h *Handler) Pick(c *gin.Context) {
	var req PickRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.CreateErrorResponse([]string{err.Error()}))
		return
	}
	session := sessionFrom(c)
	h.respond(c, session, session.Controller.Pick(c.Request.Context(), *req.Index))
}

func (h *Handler) Dismiss(c *gin.Context) {
	session := sessionFrom(c)
	session.Controller.Dismiss()
	h.respond(c, session, nil)
}

func (h *Handler) PrevDay(c *gin.Context) {
	session := sessionFrom(c)
	h.respond(c, session, session.Controller.PrevDay(c.Request.Context()))
}

func (h *Handler) NextDay(c *gin.Context) {
	session := sessionFrom(c)
	h.respond(c, session, session.Controller.NextDay(c.Request.Context()))
}

func (h *Handler) ChangeDate(c *gin.Context) {
	var req DateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.CreateErrorResponse([]string{err.Error()}))
		return
	}
	session := sessionFrom(c)
	h.respond(c, session, session.Controller.ChangeDate(c.Request.Context(), req.Date))
}

func (h *Handler) CloseSession(c *gin.Context) {
	h.sessions.Delete(c.Param("id"))
	c.Status(http.StatusNoContent)
}

// respond writes the page snapshot. Lookup failures are already rendered
// into the page, so only rejected input changes the status.
func (h *Handler) respond(c *gin.Context, session *Session, err error) {
	var validation *controller.ValidationError
	if errors.As(err, &validation) {
		common.Fail(c, err)
		return
	}
	common.Success(c, http.StatusOK, session.Page.Snapshot())
}
