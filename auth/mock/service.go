package mock

import (
	"crypto/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// User represents a registered account
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

// SignupService implements the backend signup endpoint
type SignupService struct {
	Issuer     string
	SigningKey []byte
	TokenTTL   time.Duration
	// SignupHandler overrides the default signup handler when set
	SignupHandler gin.HandlerFunc

	mux   sync.Mutex
	users map[string]*User
}

// Option represents a service option
type Option func(s *SignupService)

// WithSigningKey sets the HS256 key tokens are signed with
func WithSigningKey(key []byte) Option {
	return func(s *SignupService) {
		s.SigningKey = key
	}
}

// WithTokenTTL sets issued token lifetime
func WithTokenTTL(ttl time.Duration) Option {
	return func(s *SignupService) {
		s.TokenTTL = ttl
	}
}

// WithSignupHandler replaces the signup handler
func WithSignupHandler(handler gin.HandlerFunc) Option {
	return func(s *SignupService) {
		s.SignupHandler = handler
	}
}

// Users returns registered users
func (s *SignupService) Users() []*User {
	s.mux.Lock()
	defer s.mux.Unlock()
	ret := make([]*User, 0, len(s.users))
	for _, user := range s.users {
		ret = append(ret, user)
	}
	return ret
}

// Handler returns the backend routes
func (s *SignupService) Handler() http.Handler {
	router := gin.New()
	router.Use(gin.Recovery())
	handler := s.SignupHandler
	if handler == nil {
		handler = s.signup
	}
	router.POST("/auth/signup", handler)
	return router
}

type signupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

func (s *SignupService) signup(c *gin.Context) {
	var request signupRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body", "error": "Bad Request"})
		return
	}
	email := strings.ToLower(strings.TrimSpace(request.Email))
	var violations []string
	if email == "" {
		violations = append(violations, "email is required")
	}
	if request.Password == "" {
		violations = append(violations, "password is required")
	}
	if len(violations) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": violations, "error": "Bad Request"})
		return
	}

	s.mux.Lock()
	if _, ok := s.users[email]; ok {
		s.mux.Unlock()
		c.JSON(http.StatusConflict, gin.H{"message": "user already exists", "error": "Conflict"})
		return
	}
	user := &User{ID: uuid.New().String(), Email: email, Name: request.Name}
	s.users[email] = user
	s.mux.Unlock()

	token, err := s.createJWT(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to issue token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}

// New creates a signup service
func New(options ...Option) (*SignupService, error) {
	ret := &SignupService{
		Issuer:   "authstore-mock",
		TokenTTL: time.Hour,
		users:    map[string]*User{},
	}
	for _, opt := range options {
		opt(ret)
	}
	if len(ret.SigningKey) == 0 {
		ret.SigningKey = make([]byte, 32)
		if _, err := rand.Read(ret.SigningKey); err != nil {
			return nil, err
		}
	}
	return ret, nil
}

// HTTPTestServer wraps an httptest.Server running the signup service
type HTTPTestServer struct {
	*httptest.Server
	Service *SignupService
}

// NewHTTPTestServer starts the signup service on a local port
func NewHTTPTestServer(options ...Option) (*HTTPTestServer, error) {
	service, err := New(options...)
	if err != nil {
		return nil, err
	}
	return &HTTPTestServer{Server: httptest.NewServer(service.Handler()), Service: service}, nil
}

func init() {
	gin.SetMode(gin.ReleaseMode)
}
