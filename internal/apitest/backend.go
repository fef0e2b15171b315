package apitest

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/oguzhanozgokce/BootMobileSecure/models"
)

// Route paths served by the fake.
const (
	AuthPrefix   = "/api/auth/"
	LoginPath    = AuthPrefix + "login"
	RegisterPath = AuthPrefix + "register"
	RefreshPath  = AuthPrefix + "refresh"
	ProfilePath  = "/api/users/profile"
	UsersPath    = "/api/users/"
)

// Request is what the fake saw of one incoming request.
type Request struct {
	Method        string
	Path          string
	Authorization string
	ContentType   string
	TraceID       string
}

// Response is a canned reply. Body is written verbatim.
type Response struct {
	Status int
	Body   string
}

type account struct {
	user     models.User
	password string
}

// Backend is a fake of the backend REST API.
type Backend struct {
	server *httptest.Server
	secret []byte

	mu        sync.Mutex
	accounts  map[string]*account
	nextID    int64
	revoked   map[string]bool
	requests  []Request
	overrides map[string]Response
}

// New starts a fake backend that is shut down when t finishes.
func New(t testing.TB) *Backend {
	t.Helper()

	b := &Backend{
		secret:    []byte("apitest-signing-key"),
		accounts:  make(map[string]*account),
		nextID:    1,
		revoked:   make(map[string]bool),
		overrides: make(map[string]Response),
	}
	b.server = httptest.NewServer(b.routes())
	t.Cleanup(b.server.Close)

	return b
}

func (b *Backend) routes() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(b.record)
	router.Use(b.override)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post(RegisterPath, b.register)
		r.Post(LoginPath, b.login)
		r.Post(RefreshPath, b.refresh)
	})

	router.Group(func(r chi.Router) {
		r.Use(b.auth)
		r.Get(ProfilePath, b.profile)
		r.Get(UsersPath+"{id}", b.userByID)
		r.Delete(UsersPath+"{id}", b.deleteUser)
	})

	return router
}

// URL is the base URL of the fake.
func (b *Backend) URL() string {
	return b.server.URL
}

// AddUser registers an account directly and returns it with its id set.
func (b *Backend) AddUser(user models.User, password string) models.User {
	b.mu.Lock()
	defer b.mu.Unlock()

	user.ID = b.nextID
	b.nextID++
	if user.Role == "" {
		user.Role = "USER"
	}
	b.accounts[user.Username] = &account{user: user, password: password}
	return user
}

// IssueToken signs a credential for username without going through login.
func (b *Backend) IssueToken(username string) string {
	token, err := b.sign(username)
	if err != nil {
		panic(err)
	}
	return token
}

// Revoke makes the backend answer 401 to token from now on.
func (b *Backend) Revoke(token string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.revoked[token] = true
}

// Override forces the reply to method+path until cleared with [Backend.Reset].
func (b *Backend) Override(method, path string, resp Response) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.overrides[method+" "+path] = resp
}

// Reset drops overrides and recorded requests. Accounts are kept.
func (b *Backend) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.overrides = make(map[string]Response)
	b.requests = nil
}

// Requests returns a copy of every request received so far.
func (b *Backend) Requests() []Request {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Request(nil), b.requests...)
}

// LastRequest returns the most recent request to path.
func (b *Backend) LastRequest(path string) (Request, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i := len(b.requests) - 1; i >= 0; i-- {
		if b.requests[i].Path == path {
			return b.requests[i], true
		}
	}
	return Request{}, false
}

func (b *Backend) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		b.requests = append(b.requests, Request{
			Method:        r.Method,
			Path:          r.URL.Path,
			Authorization: r.Header.Get("Authorization"),
			ContentType:   r.Header.Get("Content-Type"),
			TraceID:       r.Header.Get("X-Trace-ID"),
		})
		b.mu.Unlock()

		next.ServeHTTP(w, r)
	})
}

func (b *Backend) override(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		resp, ok := b.overrides[r.Method+" "+r.URL.Path]
		b.mu.Unlock()

		if !ok {
			next.ServeHTTP(w, r)
			return
		}

		if resp.Body != "" {
			w.Header().Set("Content-Type", "application/json")
		}
		w.WriteHeader(resp.Status)
		_, _ = w.Write([]byte(resp.Body))
	})
}

// Close shuts the fake down early, e.g. to simulate an unreachable backend.
func (b *Backend) Close() {
	b.server.Close()
}
