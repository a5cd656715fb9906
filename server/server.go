package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/valyala/fasthttp"

	"github.com/gosuda/tinybasic"
	bruntime "github.com/gosuda/tinybasic/runtime"
)

// Server exposes interpreter sessions over HTTP. Each session keeps its
// own variables between requests.
type Server struct {
	cfg     Config
	store   *Store
	sweeper *Sweeper
	http    *fasthttp.Server
}

type execRequest struct {
	Line   string   `json:"line"`
	Inputs []string `json:"inputs"`
}

type runRequest struct {
	Lines  []string `json:"lines"`
	Inputs []string `json:"inputs"`
}

type execResponse struct {
	Value   int64             `json:"value"`
	Outputs []bruntime.Output `json:"outputs"`
	Error   string            `json:"error,omitempty"`
	Kind    string            `json:"kind,omitempty"`
}

type runResponse struct {
	Results []tinybasic.LineReport `json:"results"`
	Error   string                 `json:"error,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func New(cfg Config) (*Server, error) {
	store := NewStore(bruntime.WithOutputLimit(cfg.MaxOutputs))
	sweeper, err := NewSweeper(store, cfg.IdleTTL, cfg.SweepInterval)
	if err != nil {
		return nil, err
	}
	s := &Server{cfg: cfg, store: store, sweeper: sweeper}
	s.http = &fasthttp.Server{
		Handler:            s.Handler,
		Name:               "tinybasic",
		ReadTimeout:        15 * time.Second,
		WriteTimeout:       cfg.ExecTimeout + 15*time.Second,
		MaxRequestBodySize: cfg.MaxBodySize,
	}
	return s, nil
}

func (s *Server) Store() *Store {
	return s.store
}

// ListenAndServe starts the idle sweep and serves until Shutdown.
func (s *Server) ListenAndServe() error {
	s.sweeper.Start()
	log.Printf("Starting HTTP server on %q", s.cfg.Addr)
	return s.http.ListenAndServe(s.cfg.Addr)
}

func (s *Server) Shutdown() error {
	errSweep := s.sweeper.Stop()
	errHTTP := s.http.Shutdown()
	return errors.Join(errHTTP, errSweep)
}

// Handler routes one request.
func (s *Server) Handler(ctx *fasthttp.RequestCtx) {
	ctx.Response.Reset()
	path := strings.Trim(string(ctx.Path()), "/")
	parts := strings.Split(path, "/")
	method := string(ctx.Method())

	switch {
	case path == "healthz":
		ctx.Success("text/plain", []byte("ok"))
	case path == "sessions":
		if method != fasthttp.MethodPost {
			methodNotAllowed(ctx)
			return
		}
		id, _ := s.store.Create()
		writeJSON(ctx, fasthttp.StatusCreated, map[string]string{"id": id})
	case len(parts) == 2 && parts[0] == "sessions":
		if method != fasthttp.MethodDelete {
			methodNotAllowed(ctx)
			return
		}
		if !s.store.Delete(parts[1]) {
			notFound(ctx, parts[1])
			return
		}
		ctx.SetStatusCode(fasthttp.StatusNoContent)
	case len(parts) == 3 && parts[0] == "sessions":
		sess, ok := s.store.Get(parts[1])
		if !ok {
			notFound(ctx, parts[1])
			return
		}
		switch {
		case parts[2] == "exec" && method == fasthttp.MethodPost:
			s.handleExec(ctx, sess)
		case parts[2] == "run" && method == fasthttp.MethodPost:
			s.handleRun(ctx, sess)
		case parts[2] == "vars" && method == fasthttp.MethodGet:
			s.handleVars(ctx, sess)
		case parts[2] == "exec" || parts[2] == "run" || parts[2] == "vars":
			methodNotAllowed(ctx)
		default:
			writeJSON(ctx, fasthttp.StatusNotFound, errorResponse{Error: "unknown path"})
		}
	default:
		writeJSON(ctx, fasthttp.StatusNotFound, errorResponse{Error: "unknown path"})
	}
}

func (s *Server) handleExec(ctx *fasthttp.RequestCtx, sess *bruntime.Session) {
	var req execRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		writeJSON(ctx, fasthttp.StatusBadRequest, errorResponse{Error: fmt.Sprintf("invalid body: %v", err)})
		return
	}
	runCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ExecTimeout)
	defer cancel()
	res, err := sess.ExecInputs(runCtx, req.Line, req.Inputs)
	if errors.Is(err, bruntime.ErrSessionBusy) {
		writeJSON(ctx, fasthttp.StatusConflict, errorResponse{Error: err.Error()})
		return
	}
	resp := execResponse{Value: res.Value, Outputs: res.Outputs}
	if resp.Outputs == nil {
		resp.Outputs = []bruntime.Output{}
	}
	if err == nil {
		writeJSON(ctx, fasthttp.StatusOK, resp)
		return
	}
	resp.Error = err.Error()
	resp.Kind = tinybasic.ErrorKind(err)
	status := fasthttp.StatusUnprocessableEntity
	if resp.Kind == tinybasic.KindSyntax {
		status = fasthttp.StatusBadRequest
	}
	writeJSON(ctx, status, resp)
}

func (s *Server) handleRun(ctx *fasthttp.RequestCtx, sess *bruntime.Session) {
	var req runRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		writeJSON(ctx, fasthttp.StatusBadRequest, errorResponse{Error: fmt.Sprintf("invalid body: %v", err)})
		return
	}
	runCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ExecTimeout)
	defer cancel()
	results, err := sess.RunLinesInputs(runCtx, req.Lines, req.Inputs)
	if errors.Is(err, bruntime.ErrSessionBusy) {
		writeJSON(ctx, fasthttp.StatusConflict, errorResponse{Error: err.Error()})
		return
	}
	resp := runResponse{Results: tinybasic.Report(results)}
	if err != nil {
		resp.Error = err.Error()
	}
	writeJSON(ctx, fasthttp.StatusOK, resp)
}

func (s *Server) handleVars(ctx *fasthttp.RequestCtx, sess *bruntime.Session) {
	vars, err := sess.Snapshot()
	if err != nil {
		writeJSON(ctx, fasthttp.StatusConflict, errorResponse{Error: err.Error()})
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, map[string]map[string]int64{"vars": vars})
}

func writeJSON(ctx *fasthttp.RequestCtx, status int, v any) {
	buf, err := json.Marshal(v)
	if err != nil {
		ctx.Error(err.Error(), fasthttp.StatusInternalServerError)
		return
	}
	ctx.SetStatusCode(status)
	ctx.SetContentType("application/json")
	ctx.SetBody(buf)
}

func notFound(ctx *fasthttp.RequestCtx, id string) {
	writeJSON(ctx, fasthttp.StatusNotFound, errorResponse{Error: fmt.Sprintf("no session %q", id)})
}

func methodNotAllowed(ctx *fasthttp.RequestCtx) {
	writeJSON(ctx, fasthttp.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
}
