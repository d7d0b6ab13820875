package ipc

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"strings"
	"sync"
)

// maxRequestBytes caps one control request line. Commands are single words,
// so anything larger is a misbehaving client.
const maxRequestBytes = 4096

// Handler processes one control command against the running daemon.
type Handler interface {
	Handle(context.Context, Request) Response
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(context.Context, Request) Response

func (f HandlerFunc) Handle(ctx context.Context, req Request) Response {
	return f(ctx, req)
}

// Server answers newline-JSON control requests on the daemon socket, one
// request and one response per connection.
type Server struct {
	Handler Handler
	Logger  *slog.Logger
}

// Serve accepts control clients until ctx is done or the listener closes.
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	if s.Handler == nil {
		return errors.New("control server requires a handler")
	}

	var wg sync.WaitGroup

	go func() {
		<-ctx.Done()
		_ = listener.Close()
	}()

	for {
		conn, err := listener.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) || ctx.Err() != nil {
				wg.Wait()
				return nil
			}
			return fmt.Errorf("accept control connection: %w", err)
		}

		wg.Add(1)
		go func(c net.Conn) {
			defer wg.Done()
			defer c.Close()
			s.serveConn(ctx, c)
		}(conn)
	}
}

// serveConn reads a single request line, dispatches it, and writes the reply.
func (s *Server) serveConn(ctx context.Context, conn net.Conn) {
	line, err := bufio.NewReader(io.LimitReader(conn, maxRequestBytes)).ReadBytes('\n')
	if err != nil {
		s.logWarn("control request read failed", "error", err.Error())
		s.reply(conn, Response{OK: false, Error: fmt.Sprintf("read request: %v", err)})
		return
	}

	var req Request
	if err := json.Unmarshal(line, &req); err != nil {
		s.logWarn("malformed control request", "error", err.Error())
		s.reply(conn, Response{OK: false, Error: fmt.Sprintf("decode request: %v", err)})
		return
	}

	req.Command = strings.ToLower(strings.TrimSpace(req.Command))
	if req.Command == "" {
		s.reply(conn, Response{OK: false, Error: "request is missing a command"})
		return
	}

	resp := s.Handler.Handle(ctx, req)
	s.logDebug("control request served",
		"command", req.Command,
		"ok", resp.OK,
		"state", resp.State,
	)
	s.reply(conn, resp)
}

func (s *Server) reply(conn net.Conn, resp Response) {
	if err := json.NewEncoder(conn).Encode(resp); err != nil {
		s.logWarn("control response write failed", "error", err.Error())
	}
}

func (s *Server) logWarn(message string, args ...any) {
	if s.Logger != nil {
		s.Logger.Warn(message, args...)
	}
}

func (s *Server) logDebug(message string, args ...any) {
	if s.Logger != nil {
		s.Logger.Debug(message, args...)
	}
}

// Serve runs a logger-less Server. Callers owning a slog runtime should
// construct a Server directly.
func Serve(ctx context.Context, listener net.Listener, handler Handler) error {
	srv := &Server{Handler: handler}
	return srv.Serve(ctx, listener)
}
