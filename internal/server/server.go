package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"taskapi/internal/store"
	"taskapi/internal/task"
	"taskapi/pkg/cache"
	"taskapi/pkg/mq"
)

const shutdownTimeout = 10 * time.Second

// Options tune a Server. The zero value disables the list cache and the body
// size cap, publishes nowhere and logs nothing.
type Options struct {
	Logger       *slog.Logger
	Publisher    mq.Publisher
	MaxBodyBytes int64
	ListCacheTTL time.Duration
}

type Server struct {
	store  *store.Store
	pub    mq.Publisher
	lists  *cache.MemoryCache
	log    *slog.Logger
	maxLen int64
}

func New(st *store.Store, opts Options) *Server {
	s := &Server{
		store:  st,
		pub:    opts.Publisher,
		log:    opts.Logger,
		maxLen: opts.MaxBodyBytes,
	}
	if s.pub == nil {
		s.pub = mq.Noop{}
	}
	if s.log == nil {
		s.log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if opts.ListCacheTTL > 0 {
		s.lists = cache.NewMemory(opts.ListCacheTTL)
	}
	return s
}

// Handler returns the route table wrapped in request logging.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /tasks", s.handleListTasks)
	mux.HandleFunc("POST /tasks", s.handleAddTask)
	return s.withRequestLog(mux)
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	server := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = server.Shutdown(sctx)
	}()
	s.log.Info("listening", "addr", addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	all := s.store.List()
	key := "tasks:" + strconv.Itoa(len(all))
	if s.lists != nil {
		if body, ok := s.lists.Get(key); ok {
			writeBody(w, http.StatusOK, body)
			return
		}
	}
	body, err := json.Marshal(all)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err)
		return
	}
	body = append(body, '\n')
	// The store only grows, so a length names exactly one list and older
	// lengths are never asked for again.
	if s.lists != nil {
		s.lists.Replace(key, body)
	}
	writeBody(w, http.StatusOK, body)
}

func (s *Server) handleAddTask(w http.ResponseWriter, r *http.Request) {
	var body io.Reader = r.Body
	if s.maxLen > 0 {
		body = http.MaxBytesReader(w, r.Body, s.maxLen)
	}
	raw, err := io.ReadAll(body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeErr(w, http.StatusRequestEntityTooLarge, err)
			return
		}
		writeErr(w, http.StatusBadRequest, err)
		return
	}
	t, err := task.Parse(raw)
	if err != nil {
		writeErr(w, http.StatusBadRequest, err)
		return
	}
	added := s.store.Append(t)
	if err := s.pub.Publish(mq.TopicTaskAppended, added); err != nil {
		s.log.Warn("publish task event", "topic", mq.TopicTaskAppended, "err", err)
	}
	writeJSON(w, http.StatusCreated, added)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err)
		return
	}
	writeBody(w, code, append(body, '\n'))
}

func writeBody(w http.ResponseWriter, code int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(body)
}

func writeErr(w http.ResponseWriter, code int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}
