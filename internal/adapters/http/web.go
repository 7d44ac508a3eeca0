package web

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"net/http"
	"os"
	"time"

	"parley/internal/adapters/email"
	"parley/internal/adapters/genai"
	"parley/internal/adapters/http/middleware"
	"parley/internal/adapters/http/perf"
	accountStore "parley/internal/adapters/storage/account"
	courseStore "parley/internal/adapters/storage/course"
	eventStore "parley/internal/adapters/storage/event"
	inquiryStore "parley/internal/adapters/storage/inquiry"
	memberStore "parley/internal/adapters/storage/member"
	orgStore "parley/internal/adapters/storage/organization"
	practiceStore "parley/internal/adapters/storage/practice"
)

// Stores holds all storage dependencies.
type Stores struct {
	OrganizationStore orgStore.Store
	MemberStore       memberStore.Store
	PracticeStore     practiceStore.Store
	GlobalEventStore  eventStore.Store
	OrgEventStore     eventStore.Store
	CourseStore       courseStore.Store
	AccountStore      accountStore.Store
	InquiryStore      inquiryStore.Store
}

// loadCSRFKey reads the CSRF secret from PARLEY_CSRF_KEY (hex-encoded, 32 bytes).
// In production, the key MUST be set. In development, a random key is generated per startup.
func loadCSRFKey() []byte {
	if keyHex := os.Getenv("PARLEY_CSRF_KEY"); keyHex != "" {
		key, err := hex.DecodeString(keyHex)
		if err != nil || len(key) != 32 {
			log.Fatal("PARLEY_CSRF_KEY must be 64 hex characters (32 bytes)")
		}
		return key
	}
	if os.Getenv("PARLEY_ENV") == "production" {
		log.Fatal("PARLEY_CSRF_KEY is required in production")
	}
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		log.Fatalf("failed to generate CSRF key: %v", err)
	}
	log.Println("WARNING: using random CSRF key (sessions won't survive restart). Set PARLEY_CSRF_KEY for production.")
	return key
}

// Global stores instance (set by NewMux)
var stores *Stores

// Global session store instance
var sessions *middleware.SessionStore

// RateLimitPerSecond controls the per-IP rate limit. Tests can increase this.
var RateLimitPerSecond = 10

// Global perf collector (set by NewMux)
var perfCollector *perf.Collector

// Global email sender instance (set by SetEmailSender)
var emailSender email.Sender

// inquiryNotifyAddress receives contact inquiry notifications when set.
var inquiryNotifyAddress string

// Global text generator. Defaults to the static fallbacks until SetGenerator
// provides a backend.
var textGen = genai.Safe{}

// SetEmailSender sets the global email sender for the application.
func SetEmailSender(sender email.Sender, notifyAddress string) {
	emailSender = sender
	inquiryNotifyAddress = notifyAddress
}

// SetGenerator sets the backend for practice prompt generation.
func SetGenerator(g genai.Generator) {
	textGen = genai.Safe{Inner: g}
}

// Sessions exposes the session store so the background scheduler can purge
// expired sessions. Valid after NewMux.
func Sessions() *middleware.SessionStore {
	return sessions
}

// NewMux wires HTTP handlers for the app.
func NewMux(staticDir string, s *Stores, collector *perf.Collector) http.Handler {
	stores = s
	perfCollector = collector
	sessions = middleware.NewSessionStore()
	middleware.SecureCookies = os.Getenv("PARLEY_ENV") == "production"

	mux := http.NewServeMux()
	mux.Handle("/", http.FileServer(http.Dir(staticDir)))
	registerRoutes(mux)

	// CSRF key: 32-byte hex-encoded secret from env var
	csrfKey := loadCSRFKey()

	// Rate limiter: configurable requests per second per IP
	limiter := middleware.NewRateLimiter(RateLimitPerSecond, time.Second)
	rateLimiterInstance = limiter

	return middleware.Chain(mux,
		middleware.SecurityHeaders,
		middleware.CSRF(csrfKey),
		middleware.EnsureSession(sessions),
		middleware.RateLimit(limiter),
		middleware.Timing(collector),
	)
}

// rateLimiterInstance is exposed for the background purge job.
var rateLimiterInstance *middleware.RateLimiter

// RateLimiter exposes the rate limiter so the scheduler can purge stale
// visitor state. Valid after NewMux.
func RateLimiter() *middleware.RateLimiter {
	return rateLimiterInstance
}
