package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"devboard/internal/http/middleware"
	"devboard/internal/secrets"

	"github.com/gin-gonic/gin"
)

// Pinger is the slice of the connection pool the health checks need.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler reports on the dependencies a request may touch: the
// database, the credential cipher and the login rate limiter.
type HealthHandler struct {
	db        Pinger
	cipher    *secrets.Cipher
	startTime time.Time
	version   string
}

func NewHealthHandler(db Pinger, cipher *secrets.Cipher, version string) *HealthHandler {
	return &HealthHandler{
		db:        db,
		cipher:    cipher,
		startTime: time.Now(),
		version:   version,
	}
}

type HealthResponse struct {
	Status    string            `json:"status"`
	Version   string            `json:"version,omitempty"`
	Uptime    string            `json:"uptime,omitempty"`
	Timestamp string            `json:"timestamp"`
	Checks    map[string]string `json:"checks,omitempty"`
}

// Liveness returns simple alive status (for k8s liveness probe)
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readiness returns per-dependency status (for k8s readiness probe). The
// rate limiter fails open, so a missing Redis reads as degraded rather
// than making the service unready.
func (h *HealthHandler) Readiness(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	checks := make(map[string]string)
	ready := true

	if err := h.db.Ping(ctx); err != nil {
		checks["database"] = "unhealthy: " + err.Error()
		ready = false
	} else {
		checks["database"] = "healthy"
	}

	if err := cipherRoundtrip(h.cipher); err != nil {
		checks["credential_cipher"] = "unhealthy: " + err.Error()
		ready = false
	} else {
		checks["credential_cipher"] = "healthy"
	}

	if middleware.RateLimiterActive() {
		checks["rate_limiter"] = "healthy"
	} else {
		checks["rate_limiter"] = "degraded: redis unavailable, failing open"
	}

	status := "ready"
	statusCode := http.StatusOK
	if !ready {
		status = "unhealthy"
		statusCode = http.StatusServiceUnavailable
	}

	c.JSON(statusCode, HealthResponse{
		Status:    status,
		Version:   h.version,
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
	})
}

// Health is a combined endpoint for basic health checks
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unhealthy",
			"error":  "database unavailable",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"version": h.version,
	})
}

// cipherRoundtrip proves the configured key can both seal and open, so a
// bad key surfaces here instead of on the first credential save.
func cipherRoundtrip(cipher *secrets.Cipher) error {
	sealed, err := cipher.Encrypt("readiness-check")
	if err != nil {
		return err
	}
	opened, err := cipher.Decrypt(sealed)
	if err != nil {
		return err
	}
	if opened != "readiness-check" {
		return errors.New("roundtrip mismatch")
	}
	return nil
}
