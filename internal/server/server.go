package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/jpalmerr/catalog/internal/input"
	"github.com/jpalmerr/catalog/internal/store"
	"github.com/jpalmerr/catalog/internal/view"
)

const (
	// sseWriteTimeout is the maximum time allowed for a single SSE write operation.
	// This prevents goroutine leaks when clients are slow or disconnected.
	// Must be <= shutdown timeout to ensure clean shutdown.
	sseWriteTimeout = 5 * time.Second

	// maxBodyBytes caps request bodies for add and edit.
	maxBodyBytes = 1 << 20

	// maxPageSize caps the page_size query parameter.
	maxPageSize = 100

	// defaultTitle is used when no custom title is configured.
	defaultTitle = "Catalog"

	// titlePlaceholder is the marker in HTML that gets replaced with the actual title.
	titlePlaceholder = "{{.Title}}"
)

// Server handles HTTP requests for the catalog dashboard and API.
//
// Routes:
//   - GET /: embedded dashboard HTML
//   - GET /api/products?q=&page=&page_size=: one page of search results
//   - POST /api/products: add a product
//   - GET /api/products/{id}: one product and its global index
//   - PUT /api/products/{id}: replace a product's name and price
//   - DELETE /api/products/{id}: remove a product
//   - GET /api/events: Server-Sent Events stream of changes
//
// The server is designed for graceful shutdown via context cancellation.
type Server struct {
	store      store.Store
	port       int
	pageSize   int
	httpServer *http.Server
	assets     fs.FS
	title      string
	logger     *slog.Logger
}

// productResponse is the body returned for a single product.
type productResponse struct {
	Product store.Product `json:"product"`
	Index   int           `json:"index"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// NewServer creates a new HTTP [Server].
//
// Parameters:
//   - st: Store holding the catalog
//   - port: TCP port to listen on
//   - pageSize: default page size for list requests
//   - assets: Embedded filesystem containing dashboard assets (may be nil)
//   - title: Dashboard title (defaults to "Catalog" if empty)
//   - logger: Logger for server events
//
// The server is not started until [Server.Start] is called.
func NewServer(st store.Store, port, pageSize int, assets fs.FS, title string, logger *slog.Logger) *Server {
	if pageSize < 1 {
		pageSize = view.DefaultPageSize
	}
	return &Server{
		store:    st,
		port:     port,
		pageSize: pageSize,
		assets:   assets,
		title:    title,
		logger:   logger,
	}
}

// Handler returns the request router.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// API routes
	mux.HandleFunc("GET /api/products", s.handleList)
	mux.HandleFunc("POST /api/products", s.handleCreate)
	mux.HandleFunc("GET /api/products/{id}", s.handleGet)
	mux.HandleFunc("PUT /api/products/{id}", s.handleUpdate)
	mux.HandleFunc("DELETE /api/products/{id}", s.handleDelete)
	mux.HandleFunc("GET /api/events", s.handleEvents)

	// serve dashboard assets
	if s.assets != nil {
		mux.HandleFunc("GET /", s.handleDashboard)
	}

	return mux
}

// Start begins serving HTTP requests in a background goroutine.
//
// Start is non-blocking and returns immediately after confirming the server
// is listening. The server will continue running until the context is
// cancelled, at which point it initiates a graceful shutdown with a 5-second
// timeout.
//
// Returns an error if the server fails to bind to the configured port.
func (s *Server) Start(ctx context.Context) error {
	// create listener first to verify port availability synchronously
	addr := fmt.Sprintf(":%d", s.port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to bind to port %d: %w", s.port, err)
	}

	s.httpServer = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		// request contexts derive from ctx so SSE handlers end on shutdown
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("http server error", "error", err)
		}
	}()

	// shutdown on context cancellation
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("http server shutdown error", "error", err)
		}
	}()

	s.logger.Info("http server listening", "addr", ln.Addr().String())
	return nil
}

// handleDashboard serves the main dashboard page.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	content, err := fs.ReadFile(s.assets, "assets/index.html")
	if err != nil {
		http.Error(w, "Dashboard not found", http.StatusInternalServerError)
		return
	}

	// apply title substitution with HTML escaping to prevent XSS
	title := s.title
	if title == "" {
		title = defaultTitle
	}
	rendered := strings.ReplaceAll(string(content), titlePlaceholder, html.EscapeString(title))

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err = w.Write([]byte(rendered)); err != nil {
		s.logger.Error("failed to write dashboard response", "error", err)
	}
}

// handleList returns one page of products matching the q parameter.
func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	page, err := intParam(query.Get("page"), 1)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "page: "+err.Error())
		return
	}
	pageSize, err := intParam(query.Get("page_size"), s.pageSize)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "page_size: "+err.Error())
		return
	}
	if pageSize < 1 || pageSize > maxPageSize {
		s.writeError(w, http.StatusBadRequest, fmt.Sprintf("page_size must be between 1 and %d", maxPageSize))
		return
	}

	result := view.Query(s.store.List(), query.Get("q"), pageSize, page)
	s.writeJSON(w, http.StatusOK, result)
}

// handleCreate adds a product from the JSON body.
func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	p, ok := s.decodeProduct(w, r)
	if !ok {
		return
	}

	added := s.store.Add(p)
	s.logger.Debug("product added", "product_id", added.ID)

	_, index, err := s.store.Get(added.ID)
	if err != nil {
		// removed concurrently before we could read it back
		index = -1
	}
	w.Header().Set("Location", "/api/products/"+added.ID)
	s.writeJSON(w, http.StatusCreated, productResponse{Product: added, Index: index})
}

// handleGet returns a single product and its current global index.
func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	p, index, err := s.store.Get(r.PathValue("id"))
	if err != nil {
		s.writeStoreError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, productResponse{Product: p, Index: index})
}

// handleUpdate replaces a product's name and price.
func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	p, ok := s.decodeProduct(w, r)
	if !ok {
		return
	}

	id := r.PathValue("id")
	edited, err := s.store.Edit(id, p)
	if err != nil {
		s.writeStoreError(w, err)
		return
	}
	s.logger.Debug("product edited", "product_id", id)

	_, index, err := s.store.Get(id)
	if err != nil {
		index = -1
	}
	s.writeJSON(w, http.StatusOK, productResponse{Product: edited, Index: index})
}

// handleDelete removes a product.
func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if _, err := s.store.Remove(id); err != nil {
		s.writeStoreError(w, err)
		return
	}
	s.logger.Debug("product removed", "product_id", id)
	w.WriteHeader(http.StatusNoContent)
}

// handleEvents streams catalog changes via Server-Sent Events.
//
// The first event is a "snapshot" carrying the current version; each later
// event is named after its change kind. The handler uses write deadlines so a
// slow or disconnected client cannot pin the goroutine.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	// check if flushing is supported
	if _, ok := w.(http.Flusher); !ok {
		http.Error(w, "SSE not supported", http.StatusInternalServerError)
		return
	}

	rc := http.NewResponseController(w)

	// track if write deadlines are supported (may not be for some ResponseWriter impls)
	deadlinesSupported := true

	writeAndFlush := func(event string, data []byte) error {
		if deadlinesSupported {
			if err := rc.SetWriteDeadline(time.Now().Add(sseWriteTimeout)); err != nil {
				s.logger.Warn("sse write deadlines not supported", "error", err)
				deadlinesSupported = false
			}
		}

		if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data); err != nil {
			return err
		}
		return rc.Flush()
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	// subscribe before reading the snapshot so no change is missed in between
	ch := s.store.Subscribe()
	defer s.store.Unsubscribe(ch)

	snap := s.store.List()
	data, err := json.Marshal(snap)
	if err != nil {
		s.logger.Error("failed to encode snapshot", "error", err)
		return
	}
	if err := writeAndFlush("snapshot", data); err != nil {
		return
	}

	for {
		select {
		case change, ok := <-ch:
			if !ok {
				return
			}
			// already reflected in the snapshot
			if change.Version <= snap.Version {
				continue
			}
			data, err := json.Marshal(change)
			if err != nil {
				continue
			}
			if err := writeAndFlush(string(change.Kind), data); err != nil {
				return
			}

		case <-r.Context().Done():
			// fires on both client disconnect AND server shutdown
			return
		}
	}
}

// decodeProduct reads and validates a product body, writing a 400 on failure.
func (s *Server) decodeProduct(w http.ResponseWriter, r *http.Request) (store.Product, bool) {
	var in input.Product
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&in); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Sprintf("%v: malformed JSON body", input.ErrInvalidInput))
		return store.Product{}, false
	}

	p, err := input.Validate(in)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return store.Product{}, false
	}
	return p, true
}

// writeStoreError maps store sentinel errors to HTTP status codes.
func (s *Server) writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound), errors.Is(err, store.ErrOutOfRange):
		s.writeError(w, http.StatusNotFound, err.Error())
	default:
		s.writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, errorResponse{Error: msg})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to encode response", "error", err)
	}
}

// intParam parses an optional integer query parameter.
func intParam(raw string, fallback int) (int, error) {
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("must be an integer, got %q", raw)
	}
	return n, nil
}
