// internal/httpapi/httpapi.go
//
// Leadmodal – HTTP surface for the modal controller.
//
// Context
//   A page script forwards user events to these endpoints and applies the
//   returned View.  Each visitor is identified by a cookie holding a random
//   UUID; the first request creates the visitor's session (and fixes its
//   display language from `?lang=` or Accept-Language).
//
//   GET  /api/modal          current View
//   POST /api/modal/open     {"form","service","price","plan","button"}
//   POST /api/modal/input    {"name","value","caret"}
//   POST /api/modal/blur     {"name"}
//   POST /api/modal/check    {"name","checked"}
//   POST /api/modal/submit
//   POST /api/modal/retry
//   POST /api/modal/close
//
//   Every endpoint answers {"ok": bool, "view": View}; input adds "caret".
//   "ok" is the operation's own result (open accepted, submission started,
//   and so on), never an HTTP-level status.
//
//------------------------------------------------------------------------------

package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/yanizio/leadmodal/internal/catalog"
	"github.com/yanizio/leadmodal/internal/eventloop"
	"github.com/yanizio/leadmodal/internal/modal"
	"github.com/yanizio/leadmodal/internal/visitor"
)

// CookieName holds the visitor id.
const CookieName = "lm_visitor"

const (
	cookieMaxAge = 30 * 24 * time.Hour
	maxBody      = 16 << 10
)

// Sessions hands out visitor sessions.  *visitor.Cache implements it.
type Sessions interface {
	Get(id, langHint string) (*visitor.Session, error)
}

// Handler serves the modal API.
type Handler struct {
	sessions Sessions
	log      *zap.SugaredLogger
}

// New returns a Handler.
func New(sessions Sessions, log *zap.SugaredLogger) *Handler {
	if log == nil {
		log = zap.S()
	}
	return &Handler{sessions: sessions, log: log}
}

// Routes builds the router mounted at "/api/modal".
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.handleView)
	r.Post("/open", h.handleOpen)
	r.Post("/input", h.handleInput)
	r.Post("/blur", h.handleBlur)
	r.Post("/check", h.handleCheck)
	r.Post("/submit", h.action(func(c *modal.Controller) bool { return c.Submit() }))
	r.Post("/retry", h.action(func(c *modal.Controller) bool { return c.Retry() }))
	r.Post("/close", h.action(func(c *modal.Controller) bool { return c.Close() }))
	return r
}

/*──────────────────────────── payloads ────────────────────────────────────*/

type openRequest struct {
	Form    string `json:"form"`
	Service string `json:"service"`
	Price   string `json:"price"`
	Plan    string `json:"plan"`
	Button  string `json:"button"`
}

type fieldRequest struct {
	Name    string `json:"name"`
	Value   string `json:"value"`
	Caret   int    `json:"caret"`
	Checked bool   `json:"checked"`
}

type response struct {
	OK    bool       `json:"ok"`
	View  modal.View `json:"view"`
	Caret *int       `json:"caret,omitempty"`
}

/*──────────────────────────── handlers ────────────────────────────────────*/

func (h *Handler) handleView(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, func(c *modal.Controller) response {
		return response{OK: true, View: c.View()}
	})
}

func (h *Handler) handleOpen(w http.ResponseWriter, r *http.Request) {
	var req openRequest
	if !decode(w, r, &req) {
		return
	}
	cfg := modal.Config{
		FormType:   catalog.FormType(req.Form),
		Service:    req.Service,
		Price:      req.Price,
		Plan:       req.Plan,
		ButtonText: req.Button,
	}
	h.run(w, r, func(c *modal.Controller) response {
		ok := c.Open(cfg)
		return response{OK: ok, View: c.View()}
	})
}

func (h *Handler) handleInput(w http.ResponseWriter, r *http.Request) {
	var req fieldRequest
	if !decode(w, r, &req) {
		return
	}
	h.run(w, r, func(c *modal.Controller) response {
		caret := c.Input(req.Name, req.Value, req.Caret)
		return response{OK: true, View: c.View(), Caret: &caret}
	})
}

func (h *Handler) handleBlur(w http.ResponseWriter, r *http.Request) {
	var req fieldRequest
	if !decode(w, r, &req) {
		return
	}
	h.run(w, r, func(c *modal.Controller) response {
		c.Blur(req.Name)
		v := c.View()
		f, _ := v.Field(req.Name)
		return response{OK: f.State != modal.StateError, View: v}
	})
}

func (h *Handler) handleCheck(w http.ResponseWriter, r *http.Request) {
	var req fieldRequest
	if !decode(w, r, &req) {
		return
	}
	h.run(w, r, func(c *modal.Controller) response {
		c.SetChecked(req.Name, req.Checked)
		v := c.View()
		f, _ := v.Field(req.Name)
		return response{OK: f.State != modal.StateError, View: v}
	})
}

func (h *Handler) action(fn func(c *modal.Controller) bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.run(w, r, func(c *modal.Controller) response {
			ok := fn(c)
			return response{OK: ok, View: c.View()}
		})
	}
}

/*──────────────────────────── plumbing ────────────────────────────────────*/

// run resolves the visitor, executes fn on the session loop, and writes the
// response.  A session evicted between lookup and use is rebuilt once.
func (h *Handler) run(w http.ResponseWriter, r *http.Request, fn func(c *modal.Controller) response) {
	id := visitorID(w, r)
	hint := r.URL.Query().Get("lang")
	if hint == "" {
		hint = r.Header.Get("Accept-Language")
	}

	var out response
	for attempt := 0; attempt < 2; attempt++ {
		s, err := h.sessions.Get(id, hint)
		if err != nil {
			h.log.Errorw("visitor session unavailable", "visitor", id, "err", err)
			writeError(w, http.StatusInternalServerError, "session unavailable")
			return
		}
		err = s.Do(func(c *modal.Controller) { out = fn(c) })
		if err == nil {
			writeJSON(w, http.StatusOK, out)
			return
		}
		if !errors.Is(err, eventloop.ErrStopped) {
			break
		}
	}
	writeError(w, http.StatusServiceUnavailable, "session restarting, retry")
}

// visitorID returns the cookie id, issuing a fresh one when missing or
// malformed.
func visitorID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(CookieName); err == nil {
		if id, err := uuid.Parse(c.Value); err == nil {
			return id.String()
		}
	}
	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    id,
		Path:     "/",
		MaxAge:   int(cookieMaxAge / time.Second),
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("bad request body: %v", err))
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
