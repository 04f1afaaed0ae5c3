// Package panel serves the ilens panels to a browser and keeps them live over websockets.
package panel

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/impactlens/ilens/pkg/webview"
	"github.com/sirupsen/logrus"
	"github.com/suzuki-shunsuke/logrus-error/logerr"
)

const (
	DefaultAddr     = "127.0.0.1:7878"
	shutdownTimeout = 5 * time.Second
	writeTimeout    = 10 * time.Second
)

// Envelope is a message pushed to a browser.
type Envelope struct {
	Type  string `json:"type"`
	Panel string `json:"panel,omitempty"`
	State any    `json:"state,omitempty"`
	Error string `json:"error,omitempty"`
}

// Selector makes a function of the current file the active impact.
type Selector interface {
	SelectImpact(function string) bool
}

type conn struct {
	id    string
	panel string
	ws    *websocket.Conn
	mu    sync.Mutex
}

func (c *conn) send(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.ws.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
		return fmt.Errorf("set a write deadline: %w", err)
	}
	return c.ws.WriteJSON(v) //nolint:wrapcheck
}

type Server struct {
	logE     *logrus.Entry
	handler  *webview.Handler
	selector Selector
	panels   map[string]webview.Panel
	upgrader websocket.Upgrader
	mu       sync.Mutex
	conns    map[*conn]struct{}
}

func New(logE *logrus.Entry, handler *webview.Handler, selector Selector, panels ...webview.Panel) *Server {
	s := &Server{
		logE:     logE,
		handler:  handler,
		selector: selector,
		panels:   make(map[string]webview.Panel, len(panels)),
		conns:    map[*conn]struct{}{},
		upgrader: websocket.Upgrader{
			CheckOrigin: sameHost,
		},
	}
	for _, p := range panels {
		s.panels[p.Name()] = p
		p.Subscribe(s.Broadcast)
	}
	return s
}

func sameHost(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	return origin == "http://"+r.Host || origin == "https://"+r.Host
}

func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.logRequest)
	r.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/panels/"+webview.PanelContext)
	})
	r.GET("/panels/:name", s.renderPanel)
	r.GET("/api/panels/:name", s.panelState)
	r.GET("/ws/:name", s.websocket)
	return r
}

func (s *Server) logRequest(c *gin.Context) {
	c.Next()
	s.logE.WithFields(logrus.Fields{
		"method": c.Request.Method,
		"path":   c.Request.URL.Path,
		"status": c.Writer.Status(),
	}).Debug("serve a panel request")
}

func (s *Server) panel(c *gin.Context) (webview.Panel, bool) {
	p, ok := s.panels[c.Param("name")]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown panel"})
	}
	return p, ok
}

func (s *Server) renderPanel(c *gin.Context) {
	p, ok := s.panel(c)
	if !ok {
		return
	}
	if fn := c.Query("function"); fn != "" && s.selector != nil {
		s.selector.SelectImpact(fn)
	}
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	if err := p.Render(c.Writer); err != nil {
		logerr.WithError(s.logE, err).Error("render a panel")
	}
}

func (s *Server) panelState(c *gin.Context) {
	p, ok := s.panel(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, p.State())
}

func (s *Server) websocket(c *gin.Context) {
	p, ok := s.panel(c)
	if !ok {
		return
	}
	ws, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logerr.WithError(s.logE, err).Warn("upgrade a websocket connection")
		return
	}
	cn := &conn{id: uuid.NewString(), panel: p.Name(), ws: ws}
	logE := s.logE.WithFields(logrus.Fields{"panel": cn.panel, "connection_id": cn.id})
	s.add(cn)
	defer func() {
		s.remove(cn)
		ws.Close()
		logE.Debug("websocket client disconnected")
	}()
	logE.Debug("websocket client connected")
	if err := cn.send(&Envelope{Type: "state", Panel: cn.panel, State: p.State()}); err != nil {
		return
	}
	ctx := c.Request.Context()
	for {
		msg := &webview.Message{}
		if err := ws.ReadJSON(msg); err != nil {
			return
		}
		if err := s.handle(ctx, msg); err != nil {
			logerr.WithError(logE, err).WithField("command", msg.Command).Warn("handle a panel message")
			if err := cn.send(&Envelope{Type: "error", Error: err.Error()}); err != nil {
				return
			}
		}
	}
}

func (s *Server) handle(ctx context.Context, msg *webview.Message) error {
	if s.handler == nil {
		return errors.New("panel commands are unavailable")
	}
	return s.handler.Handle(ctx, msg) //nolint:wrapcheck
}

func (s *Server) add(c *conn) {
	s.mu.Lock()
	s.conns[c] = struct{}{}
	s.mu.Unlock()
}

func (s *Server) remove(c *conn) {
	s.mu.Lock()
	delete(s.conns, c)
	s.mu.Unlock()
}

func (s *Server) snapshotConns() []*conn {
	s.mu.Lock()
	defer s.mu.Unlock()
	conns := make([]*conn, 0, len(s.conns))
	for c := range s.conns {
		conns = append(conns, c)
	}
	return conns
}

// Broadcast pushes a panel state to every browser showing that panel.
func (s *Server) Broadcast(panel string, state any) {
	for _, c := range s.snapshotConns() {
		if c.panel != panel {
			continue
		}
		if err := c.send(&Envelope{Type: "state", Panel: panel, State: state}); err != nil {
			logerr.WithError(s.logE, err).WithField("connection_id", c.id).Debug("push a panel state")
		}
	}
}

// Notify shows a toast in every connected browser.
func (s *Server) Notify(message string) {
	for _, c := range s.snapshotConns() {
		if err := c.send(&Envelope{Type: "error", Error: message}); err != nil {
			logerr.WithError(s.logE, err).WithField("connection_id", c.id).Debug("push a notification")
		}
	}
}

// ListenAndServe serves the panels until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: writeTimeout,
	}
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	s.logE.WithField("addr", addr).Info("serving panels")
	select {
	case err := <-errCh:
		return fmt.Errorf("serve panels: %w", err)
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shut down the panel server: %w", err)
	}
	return nil
}
