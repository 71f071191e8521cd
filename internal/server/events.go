package server

import (
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/katalvlaran/gridpath/dijkstra"
	"github.com/katalvlaran/gridpath/gridgraph"
	"github.com/katalvlaran/gridpath/internal/log"
	"github.com/katalvlaran/gridpath/visualizer"
)

const (
	eventBuffer = 256
	writeWait   = 5 * time.Second
	pongWait    = 60 * time.Second
	pingPeriod  = pongWait * 9 / 10
)

// EventController streams session events over a websocket.
type EventController struct {
	hub      *Hub
	upgrader websocket.Upgrader
	log      *log.Logger
}

// NewEventController creates an EventController. A nil checkOrigin
// accepts every origin.
func NewEventController(hub *Hub, logger *log.Logger, checkOrigin func(*http.Request) bool) *EventController {
	if logger == nil {
		logger = log.Discard()
	}
	if checkOrigin == nil {
		checkOrigin = func(*http.Request) bool { return true }
	}
	return &EventController{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     checkOrigin,
		},
		log: logger.With("events"),
	}
}

// Register registers the events route.
func (c *EventController) Register(route *gin.RouterGroup) {
	route.GET("/sessions/:id/events", c.stream)
}

// socketObserver queues session events for one connection. When the
// queue is full events are dropped; the next grid event resynchronises
// the client.
type socketObserver struct {
	events  chan Event
	dropped atomic.Int64
}

func (o *socketObserver) push(e Event) {
	e.SentAt = time.Now().UTC()
	select {
	case o.events <- e:
	default:
		o.dropped.Add(1)
	}
}

func (o *socketObserver) GridChanged(s visualizer.Snapshot) {
	resp := sessionResponse(s, nil)
	o.push(Event{Type: EventGrid, Session: &resp})
}

func (o *socketObserver) WaveVisited(runID uuid.UUID, w dijkstra.Wave) {
	wave := waveResponse(w)
	o.push(Event{Type: EventWave, RunID: &runID, Wave: &wave})
}

func (o *socketObserver) PathCell(runID uuid.UUID, cell gridgraph.Cell) {
	c := coordResponse(cell.Coord())
	o.push(Event{Type: EventPath, RunID: &runID, Cell: &c})
}

func (o *socketObserver) RunFinished(r visualizer.RunReport) {
	run := runResponse(r)
	o.push(Event{Type: EventDone, RunID: &r.RunID, Run: &run})
}

func (c *EventController) stream(ctx *gin.Context) {
	id, err := sessionID(ctx)
	if err != nil {
		fail(ctx, err)
		return
	}
	s, _, err := c.hub.Get(id)
	if err != nil {
		fail(ctx, err)
		return
	}

	conn, err := c.upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		c.log.Warnf("session %s: upgrade failed: %v", id, err)
		return
	}
	defer conn.Close()

	obs := &socketObserver{events: make(chan Event, eventBuffer)}
	obs.GridChanged(s.Snapshot())
	unsubscribe := s.Subscribe(obs)
	defer unsubscribe()
	c.log.Debugf("session %s: subscriber connected from %s", id, ctx.Request.RemoteAddr)

	// The reader only handles control frames and notices the close.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		conn.SetReadLimit(512)
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(pongWait))
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-closed:
			c.log.Debugf("session %s: subscriber gone, %d events dropped", id, obs.dropped.Load())
			return
		case e := <-obs.events:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(e); err != nil {
				c.log.Debugf("session %s: write failed: %v", id, err)
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
