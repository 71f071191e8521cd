package server

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/katalvlaran/gridpath/gridgraph"
	"github.com/katalvlaran/gridpath/render"
	"github.com/katalvlaran/gridpath/visualizer"
)

// SessionController exposes visualizer sessions over HTTP.
type SessionController struct {
	hub *Hub
}

// NewSessionController creates a SessionController backed by hub.
func NewSessionController(hub *Hub) *SessionController {
	return &SessionController{hub: hub}
}

// Register registers the session routes.
func (c *SessionController) Register(route *gin.RouterGroup) {
	sessions := route.Group("/sessions")
	{
		sessions.POST("", c.create)
		sessions.GET("/:id", c.get)
		sessions.GET("/:id/png", c.image)
		sessions.DELETE("/:id", c.delete)
		sessions.PUT("/:id/mode", c.setMode)
		sessions.PUT("/:id/size", c.resize)
		sessions.POST("/:id/click", c.click)
		sessions.POST("/:id/drag", c.drag)
		sessions.POST("/:id/clear", c.clear)
		sessions.POST("/:id/maze", c.maze)
		sessions.POST("/:id/visualize", c.visualize)
		sessions.POST("/:id/cancel", c.cancel)
	}
}

// sessionID parses the :id path parameter.
func sessionID(ctx *gin.Context) (uuid.UUID, error) {
	raw := ctx.Params.ByName("id")
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %q", ErrSessionNotFound, raw)
	}
	return id, nil
}

// lookup resolves the session of the request or writes the error.
func (c *SessionController) lookup(ctx *gin.Context) (uuid.UUID, *visualizer.Session, bool) {
	id, err := sessionID(ctx)
	if err != nil {
		fail(ctx, err)
		return uuid.Nil, nil, false
	}
	s, _, err := c.hub.Get(id)
	if err != nil {
		fail(ctx, err)
		return uuid.Nil, nil, false
	}
	return id, s, true
}

// respond writes the current state of the session.
func (c *SessionController) respond(ctx *gin.Context, status int, id uuid.UUID) {
	s, last, err := c.hub.Get(id)
	if err != nil {
		fail(ctx, err)
		return
	}
	ctx.JSON(status, sessionResponse(s.Snapshot(), last))
}

func (c *SessionController) create(ctx *gin.Context) {
	var request CreateSessionRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	s, err := c.hub.Create(request)
	if err != nil {
		fail(ctx, err)
		return
	}
	ctx.Header("Location", ctx.FullPath()+"/"+s.ID().String())
	c.respond(ctx, http.StatusCreated, s.ID())
}

func (c *SessionController) get(ctx *gin.Context) {
	id, _, ok := c.lookup(ctx)
	if !ok {
		return
	}
	c.respond(ctx, http.StatusOK, id)
}

// image renders the session grid, run state included, as PNG.
func (c *SessionController) image(ctx *gin.Context) {
	_, s, ok := c.lookup(ctx)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := render.PNG(&buf, s.Snapshot().Grid); err != nil {
		fail(ctx, err)
		return
	}
	ctx.Data(http.StatusOK, "image/png", buf.Bytes())
}

func (c *SessionController) delete(ctx *gin.Context) {
	id, err := sessionID(ctx)
	if err == nil {
		err = c.hub.Delete(id)
	}
	if err != nil {
		fail(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

func (c *SessionController) setMode(ctx *gin.Context) {
	id, s, ok := c.lookup(ctx)
	if !ok {
		return
	}
	var request ModeRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	mode, err := visualizer.ParseMode(request.Mode)
	if err == nil {
		err = s.SetMode(mode)
	}
	if err != nil {
		fail(ctx, err)
		return
	}
	c.respond(ctx, http.StatusOK, id)
}

func (c *SessionController) resize(ctx *gin.Context) {
	id, s, ok := c.lookup(ctx)
	if !ok {
		return
	}
	var request ResizeRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	rows, cols, err := c.hub.dimensions(request)
	if err == nil {
		err = s.Resize(rows, cols)
	}
	if err != nil {
		fail(ctx, err)
		return
	}
	c.respond(ctx, http.StatusOK, id)
}

func (c *SessionController) click(ctx *gin.Context) {
	id, s, ok := c.lookup(ctx)
	if !ok {
		return
	}
	var request CoordRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := s.Click(request.coord()); err != nil {
		fail(ctx, err)
		return
	}
	c.respond(ctx, http.StatusOK, id)
}

func (c *SessionController) drag(ctx *gin.Context) {
	id, s, ok := c.lookup(ctx)
	if !ok {
		return
	}
	var request DragRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	at := gridgraph.Coord{Row: request.Row, Col: request.Col}
	var err error
	switch request.Action {
	case "press":
		err = s.Press(at)
	case "enter":
		err = s.Enter(at)
	case "release":
		s.Release()
	}
	if err != nil {
		fail(ctx, err)
		return
	}
	c.respond(ctx, http.StatusOK, id)
}

func (c *SessionController) clear(ctx *gin.Context) {
	id, s, ok := c.lookup(ctx)
	if !ok {
		return
	}
	if err := s.ClearAll(); err != nil {
		fail(ctx, err)
		return
	}
	c.respond(ctx, http.StatusOK, id)
}

func (c *SessionController) maze(ctx *gin.Context) {
	id, s, ok := c.lookup(ctx)
	if !ok {
		return
	}
	walls, err := s.RandomMaze()
	if err != nil {
		fail(ctx, err)
		return
	}
	ctx.Header("X-Walls", strconv.Itoa(walls))
	c.respond(ctx, http.StatusOK, id)
}

// visualize starts a run. With ?wait=true the request blocks until the
// run finishes and returns its report; otherwise it returns 202 at once
// and progress is streamed on the events socket.
func (c *SessionController) visualize(ctx *gin.Context) {
	id, _, ok := c.lookup(ctx)
	if !ok {
		return
	}
	wait, _ := strconv.ParseBool(ctx.Query("wait"))
	if !wait {
		if err := c.hub.Start(id); err != nil {
			fail(ctx, err)
			return
		}
		ctx.JSON(http.StatusAccepted, gin.H{"status": "started"})
		return
	}

	report, err := c.hub.Run(ctx.Request.Context(), id)
	if err != nil && !report.Cancelled {
		fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, runResponse(report))
}

func (c *SessionController) cancel(ctx *gin.Context) {
	id, err := sessionID(ctx)
	if err != nil {
		fail(ctx, err)
		return
	}
	cancelled, err := c.hub.Cancel(id)
	if err != nil {
		fail(ctx, err)
		return
	}
	if !cancelled {
		ctx.JSON(http.StatusConflict, gin.H{"error": "no run in progress"})
		return
	}
	ctx.Status(http.StatusAccepted)
}
