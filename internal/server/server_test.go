package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/gridpath/gridgraph"
	"github.com/katalvlaran/gridpath/layout"
	"github.com/katalvlaran/gridpath/visualizer"
)

type ServerSuite struct {
	suite.Suite
	hub    *Hub
	store  *layout.MemoryStore
	engine *gin.Engine
}

func (s *ServerSuite) SetupTest() {
	s.hub = NewHub(nil, visualizer.WithoutAnimation())
	s.store = layout.NewMemoryStore()
	s.engine = NewRouter(Config{
		BaseURL: "/api",
		GinMode: gin.TestMode,
		Controllers: []Controller{
			NewSessionController(s.hub),
			NewLayoutController(s.hub, s.store),
			NewEventController(s.hub, nil, nil),
		},
	}).Handler()
}

func (s *ServerSuite) TearDownTest() {
	s.hub.Close()
}

func (s *ServerSuite) do(method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(s.T(), err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, "/api/v1"+path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.engine.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func (s *ServerSuite) create(rows, cols int) SessionResponse {
	rec := s.do(http.MethodPost, "/sessions", CreateSessionRequest{Rows: rows, Cols: cols})
	require.Equal(s.T(), http.StatusCreated, rec.Code, rec.Body.String())
	return decode[SessionResponse](s.T(), rec)
}

func (s *ServerSuite) click(id uuid.UUID, r, c int) *httptest.ResponseRecorder {
	return s.do(http.MethodPost, fmt.Sprintf("/sessions/%s/click", id), map[string]int{"row": r, "col": c})
}

func (s *ServerSuite) TestCreateAndGet() {
	rec := s.do(http.MethodPost, "/sessions", CreateSessionRequest{Rows: 3, Cols: 4})
	require.Equal(s.T(), http.StatusCreated, rec.Code)
	created := decode[SessionResponse](s.T(), rec)
	assert.Equal(s.T(), 3, created.Rows)
	assert.Equal(s.T(), 4, created.Cols)
	assert.Equal(s.T(), "start", created.Mode)
	assert.Nil(s.T(), created.Start)
	assert.Equal(s.T(), "/api/v1/sessions/"+created.ID.String(), rec.Header().Get("Location"))

	rec = s.do(http.MethodGet, "/sessions/"+created.ID.String(), nil)
	require.Equal(s.T(), http.StatusOK, rec.Code)
	got := decode[SessionResponse](s.T(), rec)
	assert.Equal(s.T(), []string{"....", "....", "...."}, got.Lines)
}

func (s *ServerSuite) TestCreateFromViewport() {
	rec := s.do(http.MethodPost, "/sessions", CreateSessionRequest{Width: 200, Height: 160})
	require.Equal(s.T(), http.StatusCreated, rec.Code)
	got := decode[SessionResponse](s.T(), rec)
	assert.Equal(s.T(), 5, got.Rows)
	assert.Equal(s.T(), 10, got.Cols)
}

func (s *ServerSuite) TestCreateRejectsEmptyGrid() {
	rec := s.do(http.MethodPost, "/sessions", CreateSessionRequest{Rows: 0, Cols: 3})
	assert.Equal(s.T(), http.StatusBadRequest, rec.Code)
}

func (s *ServerSuite) TestRejectsOversizedGrids() {
	rec := s.do(http.MethodPost, "/sessions", CreateSessionRequest{Rows: 100000, Cols: 100000})
	assert.Equal(s.T(), http.StatusBadRequest, rec.Code)
	rec = s.do(http.MethodPost, "/sessions", CreateSessionRequest{Width: 1 << 30, Height: 1 << 30})
	assert.Equal(s.T(), http.StatusBadRequest, rec.Code)
	rec = s.do(http.MethodPost, "/sessions", CreateSessionRequest{Rows: -1, Cols: 3})
	assert.Equal(s.T(), http.StatusBadRequest, rec.Code)
	assert.Zero(s.T(), s.hub.Len())

	id := s.create(2, 2).ID
	rec = s.do(http.MethodPut, fmt.Sprintf("/sessions/%s/size", id), ResizeRequest{Rows: MaxDimension + 1, Cols: 2})
	assert.Equal(s.T(), http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodPost, "/sessions", CreateSessionRequest{Rows: MaxDimension, Cols: 1})
	assert.Equal(s.T(), http.StatusCreated, rec.Code)
}

func (s *ServerSuite) TestLayoutTooLargeForSession() {
	lines := make([]string, MaxDimension+1)
	for i := range lines {
		lines[i] = "."
	}
	require.NoError(s.T(), s.store.Save(context.Background(), layout.Layout{Name: "tall", Lines: lines}))

	id := s.create(2, 2).ID
	rec := s.do(http.MethodPost, fmt.Sprintf("/sessions/%s/layout/tall", id), nil)
	assert.Equal(s.T(), http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodPut, "/layouts/tall2", SaveLayoutRequest{Lines: lines})
	assert.Equal(s.T(), http.StatusBadRequest, rec.Code)
}

func (s *ServerSuite) TestLayoutKeepsSharedStartAndEnd() {
	src := s.create(3, 3).ID
	require.Equal(s.T(), http.StatusOK, s.click(src, 1, 1).Code)
	require.Equal(s.T(), http.StatusOK, s.click(src, 1, 1).Code)

	rec := s.do(http.MethodPut, "/layouts/same", SaveLayoutRequest{SessionID: src.String()})
	require.Equal(s.T(), http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(s.T(), []string{"...", ".B.", "..."}, decode[LayoutResponse](s.T(), rec).Lines)

	dst := s.create(2, 2).ID
	rec = s.do(http.MethodPost, fmt.Sprintf("/sessions/%s/layout/same", dst), nil)
	require.Equal(s.T(), http.StatusOK, rec.Code, rec.Body.String())
	loaded := decode[SessionResponse](s.T(), rec)
	require.NotNil(s.T(), loaded.Start)
	require.NotNil(s.T(), loaded.End)
	assert.Equal(s.T(), *loaded.Start, *loaded.End)

	rec = s.do(http.MethodPost, fmt.Sprintf("/sessions/%s/visualize?wait=true", dst), nil)
	require.Equal(s.T(), http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(s.T(), 0, decode[RunResponse](s.T(), rec).PathLength)
}

func (s *ServerSuite) TestUnknownSession() {
	assert.Equal(s.T(), http.StatusNotFound, s.do(http.MethodGet, "/sessions/"+uuid.NewString(), nil).Code)
	assert.Equal(s.T(), http.StatusNotFound, s.do(http.MethodGet, "/sessions/not-a-uuid", nil).Code)
}

func (s *ServerSuite) TestVisualizeAndWait() {
	id := s.create(5, 5).ID
	require.Equal(s.T(), http.StatusOK, s.click(id, 0, 0).Code)
	rec := s.click(id, 0, 4)
	require.Equal(s.T(), http.StatusOK, rec.Code)
	placed := decode[SessionResponse](s.T(), rec)
	require.NotNil(s.T(), placed.End)
	assert.Equal(s.T(), CoordResponse{Row: 0, Col: 4}, *placed.End)

	rec = s.do(http.MethodPost, fmt.Sprintf("/sessions/%s/visualize?wait=true", id), nil)
	require.Equal(s.T(), http.StatusOK, rec.Code, rec.Body.String())
	run := decode[RunResponse](s.T(), rec)
	assert.True(s.T(), run.Reached)
	assert.Equal(s.T(), 4, run.PathLength)
	assert.Len(s.T(), run.Path, 5)

	got := decode[SessionResponse](s.T(), s.do(http.MethodGet, "/sessions/"+id.String(), nil))
	require.NotNil(s.T(), got.Last)
	assert.Equal(s.T(), run.RunID, got.Last.RunID)
	assert.Equal(s.T(), "S***E", got.Lines[0])
}

func (s *ServerSuite) TestVisualizeInBackground() {
	id := s.create(4, 4).ID
	s.click(id, 0, 0)
	s.click(id, 3, 3)

	rec := s.do(http.MethodPost, fmt.Sprintf("/sessions/%s/visualize", id), nil)
	require.Equal(s.T(), http.StatusAccepted, rec.Code)

	require.Eventually(s.T(), func() bool {
		got := decode[SessionResponse](s.T(), s.do(http.MethodGet, "/sessions/"+id.String(), nil))
		return got.Last != nil && !got.Busy
	}, 2*time.Second, 10*time.Millisecond)

	_, last, err := s.hub.Get(id)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), 6, last.PathLength())
}

func (s *ServerSuite) TestVisualizeMissingEndpoints() {
	id := s.create(2, 2).ID
	rec := s.do(http.MethodPost, fmt.Sprintf("/sessions/%s/visualize?wait=true", id), nil)
	assert.Equal(s.T(), http.StatusUnprocessableEntity, rec.Code)
	rec = s.do(http.MethodPost, fmt.Sprintf("/sessions/%s/visualize", id), nil)
	assert.Equal(s.T(), http.StatusUnprocessableEntity, rec.Code)
}

func (s *ServerSuite) TestCancelWithoutRun() {
	id := s.create(2, 2).ID
	assert.Equal(s.T(), http.StatusConflict, s.do(http.MethodPost, fmt.Sprintf("/sessions/%s/cancel", id), nil).Code)
}

func (s *ServerSuite) TestBadInput() {
	id := s.create(2, 2).ID

	rec := s.do(http.MethodPut, fmt.Sprintf("/sessions/%s/mode", id), ModeRequest{Mode: "diagonal"})
	assert.Equal(s.T(), http.StatusBadRequest, rec.Code)

	assert.Equal(s.T(), http.StatusBadRequest, s.click(id, 5, 5).Code)

	rec = s.do(http.MethodPost, fmt.Sprintf("/sessions/%s/click", id), map[string]int{"row": 1})
	assert.Equal(s.T(), http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodPost, fmt.Sprintf("/sessions/%s/drag", id), DragRequest{Action: "hover"})
	assert.Equal(s.T(), http.StatusBadRequest, rec.Code)
}

func (s *ServerSuite) TestModeAndDrag() {
	id := s.create(3, 3).ID
	rec := s.do(http.MethodPut, fmt.Sprintf("/sessions/%s/mode", id), ModeRequest{Mode: "WALL"})
	require.Equal(s.T(), http.StatusOK, rec.Code)
	assert.Equal(s.T(), "wall", decode[SessionResponse](s.T(), rec).Mode)

	path := fmt.Sprintf("/sessions/%s/drag", id)
	require.Equal(s.T(), http.StatusOK, s.do(http.MethodPost, path, DragRequest{Action: "press", Row: 1, Col: 0}).Code)
	require.Equal(s.T(), http.StatusOK, s.do(http.MethodPost, path, DragRequest{Action: "enter", Row: 1, Col: 1}).Code)
	require.Equal(s.T(), http.StatusOK, s.do(http.MethodPost, path, DragRequest{Action: "enter", Row: 1, Col: 0}).Code)
	rec = s.do(http.MethodPost, path, DragRequest{Action: "release"})
	require.Equal(s.T(), http.StatusOK, rec.Code)
	assert.Equal(s.T(), "##.", decode[SessionResponse](s.T(), rec).Lines[1])

	rec = s.do(http.MethodPost, fmt.Sprintf("/sessions/%s/clear", id), nil)
	require.Equal(s.T(), http.StatusOK, rec.Code)
	assert.Equal(s.T(), "...", decode[SessionResponse](s.T(), rec).Lines[1])
}

func (s *ServerSuite) TestMazeAndResize() {
	id := s.create(6, 6).ID
	rec := s.do(http.MethodPost, fmt.Sprintf("/sessions/%s/maze", id), nil)
	require.Equal(s.T(), http.StatusOK, rec.Code)
	assert.NotEmpty(s.T(), rec.Header().Get("X-Walls"))

	rec = s.do(http.MethodPut, fmt.Sprintf("/sessions/%s/size", id), ResizeRequest{Rows: 2, Cols: 3})
	require.Equal(s.T(), http.StatusOK, rec.Code)
	got := decode[SessionResponse](s.T(), rec)
	assert.Equal(s.T(), []string{"...", "..."}, got.Lines)
}

func (s *ServerSuite) TestSessionPNG() {
	id := s.create(2, 3).ID
	rec := s.do(http.MethodGet, fmt.Sprintf("/sessions/%s/png", id), nil)
	require.Equal(s.T(), http.StatusOK, rec.Code)
	assert.Equal(s.T(), "image/png", rec.Header().Get("Content-Type"))
	assert.True(s.T(), bytes.HasPrefix(rec.Body.Bytes(), []byte("\x89PNG")))
}

func (s *ServerSuite) TestDeleteSession() {
	id := s.create(2, 2).ID
	assert.Equal(s.T(), http.StatusNoContent, s.do(http.MethodDelete, "/sessions/"+id.String(), nil).Code)
	assert.Equal(s.T(), http.StatusNotFound, s.do(http.MethodGet, "/sessions/"+id.String(), nil).Code)
	assert.Equal(s.T(), 0, s.hub.Len())
}

func (s *ServerSuite) TestLayoutLifecycle() {
	src := s.create(3, 3).ID
	s.click(src, 0, 0)
	s.click(src, 2, 2)
	s.do(http.MethodPut, fmt.Sprintf("/sessions/%s/mode", src), ModeRequest{Mode: "wall"})
	s.click(src, 1, 1)

	rec := s.do(http.MethodPut, "/layouts/cross", SaveLayoutRequest{SessionID: src.String()})
	require.Equal(s.T(), http.StatusOK, rec.Code, rec.Body.String())
	saved := decode[LayoutResponse](s.T(), rec)
	assert.Equal(s.T(), []string{"S..", ".#.", "..E"}, saved.Lines)
	assert.False(s.T(), saved.SavedAt.IsZero())

	rec = s.do(http.MethodPut, "/layouts/plain", SaveLayoutRequest{Lines: []string{"S#", ".E"}})
	require.Equal(s.T(), http.StatusOK, rec.Code)

	rec = s.do(http.MethodGet, "/layouts", nil)
	require.Equal(s.T(), http.StatusOK, rec.Code)
	assert.Equal(s.T(), map[string][]string{"layouts": {"cross", "plain"}}, decode[map[string][]string](s.T(), rec))

	rec = s.do(http.MethodGet, "/layouts/cross/png", nil)
	require.Equal(s.T(), http.StatusOK, rec.Code)
	assert.Equal(s.T(), "image/png", rec.Header().Get("Content-Type"))

	dst := s.create(5, 5).ID
	rec = s.do(http.MethodPost, fmt.Sprintf("/sessions/%s/layout/cross", dst), nil)
	require.Equal(s.T(), http.StatusOK, rec.Code)
	loaded := decode[SessionResponse](s.T(), rec)
	assert.Equal(s.T(), 3, loaded.Rows)
	assert.Equal(s.T(), "wall", loaded.Mode)
	assert.Equal(s.T(), []string{"S..", ".#.", "..E"}, loaded.Lines)

	assert.Equal(s.T(), http.StatusNoContent, s.do(http.MethodDelete, "/layouts/cross", nil).Code)
	assert.Equal(s.T(), http.StatusNotFound, s.do(http.MethodGet, "/layouts/cross", nil).Code)
	assert.Equal(s.T(), http.StatusNotFound, s.do(http.MethodDelete, "/layouts/cross", nil).Code)
}

func (s *ServerSuite) TestLayoutErrors() {
	assert.Equal(s.T(), http.StatusBadRequest,
		s.do(http.MethodPut, "/layouts/bad%20name", SaveLayoutRequest{Lines: []string{"S."}}).Code)
	assert.Equal(s.T(), http.StatusBadRequest,
		s.do(http.MethodPut, "/layouts/x", SaveLayoutRequest{Lines: []string{"S.", "."}}).Code)
	assert.Equal(s.T(), http.StatusNotFound,
		s.do(http.MethodPut, "/layouts/x", SaveLayoutRequest{SessionID: uuid.NewString()}).Code)
	assert.Equal(s.T(), http.StatusNotFound,
		s.do(http.MethodPost, fmt.Sprintf("/sessions/%s/layout/missing", s.create(2, 2).ID), nil).Code)
}

func (s *ServerSuite) TestEventsSocket() {
	srv := httptest.NewServer(s.engine)
	defer srv.Close()

	id := s.create(1, 3).ID
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + fmt.Sprintf("/api/v1/sessions/%s/events", id)
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(s.T(), err)
	defer conn.Close()

	read := func() Event {
		require.NoError(s.T(), conn.SetReadDeadline(time.Now().Add(2*time.Second)))
		var e Event
		require.NoError(s.T(), conn.ReadJSON(&e))
		return e
	}

	first := read()
	assert.Equal(s.T(), EventGrid, first.Type)
	require.NotNil(s.T(), first.Session)
	assert.Equal(s.T(), id, first.Session.ID)

	s.click(id, 0, 0)
	s.click(id, 0, 2)
	s.do(http.MethodPost, fmt.Sprintf("/sessions/%s/visualize?wait=true", id), nil)

	var types []string
	var done *RunResponse
	for done == nil {
		e := read()
		types = append(types, e.Type)
		if e.Type == EventDone {
			done = e.Run
		}
	}
	assert.Contains(s.T(), types, EventWave)
	assert.Contains(s.T(), types, EventPath)
	require.NotNil(s.T(), done)
	assert.Equal(s.T(), 2, done.PathLength)
}

func (s *ServerSuite) TestHealthz() {
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	s.engine.ServeHTTP(rec, req)
	assert.Equal(s.T(), http.StatusOK, rec.Code)
}

func TestServerSuite(t *testing.T) {
	suite.Run(t, new(ServerSuite))
}

func TestHubBusyAndCancel(t *testing.T) {
	hub := NewHub(nil, visualizer.WithWaveInterval(20*time.Millisecond))
	s, err := hub.Create(CreateSessionRequest{Rows: 10, Cols: 10})
	require.NoError(t, err)
	require.NoError(t, s.Click(gridgraph.Coord{Row: 0, Col: 0}))
	require.NoError(t, s.Click(gridgraph.Coord{Row: 9, Col: 9}))

	require.NoError(t, hub.Start(s.ID()))
	assert.ErrorIs(t, hub.Start(s.ID()), visualizer.ErrBusy)

	cancelled, err := hub.Cancel(s.ID())
	require.NoError(t, err)
	assert.True(t, cancelled)
	hub.Close()

	_, last, err := hub.Get(s.ID())
	require.NoError(t, err)
	require.NotNil(t, last)
	assert.True(t, last.Cancelled)
	assert.False(t, s.Busy())
}

func TestHubCreateCapsDimensions(t *testing.T) {
	hub := NewHub(nil)
	defer hub.Close()
	_, err := hub.Create(CreateSessionRequest{Rows: 1 << 32, Cols: 1 << 32})
	assert.ErrorIs(t, err, gridgraph.ErrTooLarge)
	_, err = hub.Create(CreateSessionRequest{Width: 1 << 20, Height: 100})
	assert.ErrorIs(t, err, gridgraph.ErrTooLarge)
	assert.Zero(t, hub.Len())
}

func TestHubRunUsesContext(t *testing.T) {
	hub := NewHub(nil, visualizer.WithWaveInterval(20*time.Millisecond))
	defer hub.Close()
	s, err := hub.Create(CreateSessionRequest{Rows: 10, Cols: 10})
	require.NoError(t, err)
	require.NoError(t, s.Click(gridgraph.Coord{Row: 0, Col: 0}))
	require.NoError(t, s.Click(gridgraph.Coord{Row: 9, Col: 9}))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	report, err := hub.Run(ctx, s.ID())
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.True(t, report.Cancelled)
}

func TestStatusFor(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{ErrSessionNotFound, http.StatusNotFound},
		{layout.ErrNotFound, http.StatusNotFound},
		{visualizer.ErrBusy, http.StatusConflict},
		{visualizer.ErrMissingEndpoints, http.StatusUnprocessableEntity},
		{fmt.Errorf("click: %w", gridgraph.ErrOutOfBounds), http.StatusBadRequest},
		{gridgraph.ErrTooLarge, http.StatusBadRequest},
		{layout.ErrBadName, http.StatusBadRequest},
		{context.DeadlineExceeded, http.StatusGatewayTimeout},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, statusFor(tc.err), tc.err.Error())
	}
}
