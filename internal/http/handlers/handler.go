package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"devboard/internal/domain"
	"devboard/internal/http/middleware"
	"devboard/internal/secrets"

	"github.com/gin-gonic/gin"
)

// UserStore is the slice of the user repository the handlers need.
type UserStore interface {
	Get(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, email, passwordHash string) error
	GetByToken(ctx context.Context, token string) (*domain.User, error)
	SetToken(ctx context.Context, email, token string) error
	UpdateCredentials(ctx context.Context, email string, fields map[string]string) error
}

// TaskStore is the slice of the task repository the handlers need.
type TaskStore interface {
	List(ctx context.Context, email, status, startDate, endDate string) ([]domain.Task, error)
	Create(ctx context.Context, email string, t *domain.Task) error
	Toggle(ctx context.Context, email, id string) (bool, error)
}

// Summarizer produces a summary of text in the requested output format.
type Summarizer interface {
	Summarize(ctx context.Context, text, format string) (string, error)
}

type Handler struct {
	Users      UserStore
	Tasks      TaskStore
	Cipher     *secrets.Cipher
	Summarizer Summarizer

	// BitbucketBaseURL overrides the Bitbucket Cloud endpoint when non-empty.
	BitbucketBaseURL string

	now func() time.Time
}

func New(users UserStore, tasks TaskStore, cipher *secrets.Cipher, summarizer Summarizer) *Handler {
	return &Handler{
		Users:      users,
		Tasks:      tasks,
		Cipher:     cipher,
		Summarizer: summarizer,
		now:        time.Now,
	}
}

// currentUser returns the record the auth middleware resolved. Protected
// routes always run behind the middleware, so a missing record is a wiring
// bug, not a client error.
func currentUser(c *gin.Context) (*domain.User, bool) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "no authenticated user in context"})
	}
	return user, ok
}

// writeError maps the error taxonomy to HTTP statuses. Anything unmapped
// becomes a 500 with the message in the body.
func writeError(c *gin.Context, err error) {
	var (
		validationErr *domain.ValidationError
		configErr     *domain.ConfigurationError
		upstreamErr   *domain.UpstreamError
		emptyErr      *domain.EmptyResponseError
	)

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Msg})
	case errors.As(err, &configErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": configErr.Error()})
	case errors.As(err, &upstreamErr):
		status := upstreamErr.StatusCode
		if status == 0 {
			status = http.StatusInternalServerError
		}
		c.JSON(status, gin.H{"error": upstreamErr.Error(), "details": upstreamErr.Body})
	case errors.As(err, &emptyErr):
		c.JSON(http.StatusInternalServerError, gin.H{"error": emptyErr.Error()})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, domain.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
	case errors.Is(err, domain.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "already exists"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
