package server

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/katalvlaran/gridpath/gridgraph"
	"github.com/katalvlaran/gridpath/layout"
	"github.com/katalvlaran/gridpath/render"
)

// LayoutController manages saved layouts and loads them into sessions.
type LayoutController struct {
	hub   *Hub
	store layout.Store
}

// NewLayoutController creates a LayoutController over store.
func NewLayoutController(hub *Hub, store layout.Store) *LayoutController {
	return &LayoutController{hub: hub, store: store}
}

// Register registers the layout routes.
func (c *LayoutController) Register(route *gin.RouterGroup) {
	layouts := route.Group("/layouts")
	{
		layouts.GET("", c.list)
		layouts.GET("/:name", c.get)
		layouts.GET("/:name/png", c.image)
		layouts.PUT("/:name", c.save)
		layouts.DELETE("/:name", c.delete)
	}
	route.POST("/sessions/:id/layout/:name", c.load)
}

func layoutResponse(l layout.Layout) LayoutResponse {
	return LayoutResponse{Name: l.Name, Rows: l.Rows, Cols: l.Cols, Lines: l.Lines, SavedAt: l.SavedAt}
}

func (c *LayoutController) list(ctx *gin.Context) {
	names, err := c.store.List(ctx.Request.Context())
	if err != nil {
		fail(ctx, err)
		return
	}
	if names == nil {
		names = []string{}
	}
	ctx.JSON(http.StatusOK, gin.H{"layouts": names})
}

func (c *LayoutController) get(ctx *gin.Context) {
	l, err := c.store.Load(ctx.Request.Context(), ctx.Params.ByName("name"))
	if err != nil {
		fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, layoutResponse(l))
}

func (c *LayoutController) image(ctx *gin.Context) {
	l, err := c.store.Load(ctx.Request.Context(), ctx.Params.ByName("name"))
	if err != nil {
		fail(ctx, err)
		return
	}
	g, err := l.Grid()
	if err != nil {
		fail(ctx, err)
		return
	}
	var buf bytes.Buffer
	if err := render.PNG(&buf, g, render.WithCaption(l.Name)); err != nil {
		fail(ctx, err)
		return
	}
	ctx.Data(http.StatusOK, "image/png", buf.Bytes())
}

// save stores the layout from a live session when session_id is given,
// otherwise from the text lines in the body.
func (c *LayoutController) save(ctx *gin.Context) {
	name := ctx.Params.ByName("name")
	var request SaveLayoutRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var (
		g   *gridgraph.Grid
		err error
	)
	if request.SessionID != "" {
		id, perr := uuid.Parse(request.SessionID)
		if perr != nil {
			fail(ctx, ErrSessionNotFound)
			return
		}
		s, _, gerr := c.hub.Get(id)
		if gerr != nil {
			fail(ctx, gerr)
			return
		}
		g = s.Snapshot().Grid
	} else {
		g, err = gridgraph.Parse(request.Lines)
		if err != nil {
			fail(ctx, err)
			return
		}
	}

	l, err := layout.FromGrid(name, g)
	if err == nil {
		err = c.store.Save(ctx.Request.Context(), l)
	}
	if err != nil {
		fail(ctx, err)
		return
	}
	saved, err := c.store.Load(ctx.Request.Context(), name)
	if err != nil {
		fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, layoutResponse(saved))
}

func (c *LayoutController) delete(ctx *gin.Context) {
	if err := c.store.Delete(ctx.Request.Context(), ctx.Params.ByName("name")); err != nil {
		fail(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// load replaces a session's grid with a stored layout.
func (c *LayoutController) load(ctx *gin.Context) {
	id, err := sessionID(ctx)
	if err != nil {
		fail(ctx, err)
		return
	}
	s, last, err := c.hub.Get(id)
	if err != nil {
		fail(ctx, err)
		return
	}
	l, err := c.store.Load(ctx.Request.Context(), ctx.Params.ByName("name"))
	if err != nil {
		fail(ctx, err)
		return
	}
	g, err := l.Grid()
	if err == nil {
		err = checkDimensions(g.Rows(), g.Cols())
	}
	if err == nil {
		err = s.Replace(g)
	}
	if err != nil {
		fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, sessionResponse(s.Snapshot(), last))
}
