package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/joho/godotenv"
	_ "modernc.org/sqlite"

	emailPkg "parley/internal/adapters/email"
	"parley/internal/adapters/genai"
	web "parley/internal/adapters/http"
	"parley/internal/adapters/http/perf"
	"parley/internal/adapters/storage"
	accountStore "parley/internal/adapters/storage/account"
	collectionStore "parley/internal/adapters/storage/collection"
	courseStore "parley/internal/adapters/storage/course"
	eventStore "parley/internal/adapters/storage/event"
	inquiryStore "parley/internal/adapters/storage/inquiry"
	memberStore "parley/internal/adapters/storage/member"
	orgStore "parley/internal/adapters/storage/organization"
	practiceStore "parley/internal/adapters/storage/practice"
	"parley/internal/application/orchestrators"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	// .env is optional; real environments set variables directly
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded configuration from .env")
	}

	// Initialize database with WAL mode and busy timeout
	dbPath := envOrDefault("PARLEY_DB", "parley.db")
	dsn := dbPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	// Connection pool settings for WAL mode
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)

	if err := db.Ping(); err != nil {
		log.Fatalf("database unreachable: %v", err)
	}

	if err := storage.InitDB(db); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	// Performance instrumentation: wrap DB with timing, create collector
	collector := perf.NewCollector(perf.DefaultRingSize)
	timedDB := storage.NewTimedDB(db, collector)

	collections := collectionStore.NewSQLiteStore(timedDB)

	orgs := orgStore.NewCollectionStore(collections)
	members := memberStore.NewCollectionStore(collections)
	practices := practiceStore.NewCollectionStore(collections)
	globalEvents := eventStore.NewGlobalStore(collections)
	orgEvents := eventStore.NewOrgStore(collections)
	courses := courseStore.NewCollectionStore(collections)
	accounts := accountStore.NewCollectionStore(collections)

	stores := &web.Stores{
		OrganizationStore: orgs,
		MemberStore:       members,
		PracticeStore:     practices,
		GlobalEventStore:  globalEvents,
		OrgEventStore:     orgEvents,
		CourseStore:       courses,
		AccountStore:      accounts,
		InquiryStore:      inquiryStore.NewSQLiteStore(timedDB),
	}

	// First-run seed: sysadmin account, demo organization, catalog
	adminPassword := envOrDefault("PARLEY_ADMIN_PASSWORD", "parley-admin-dev")
	seedDeps := orchestrators.SeedDeps{
		Organizations: orgs,
		Members:       members,
		Accounts:      accounts,
		GlobalEvents:  globalEvents,
		OrgEvents:     orgEvents,
		Courses:       courses,
		Practice:      practices,
	}
	if err := orchestrators.ExecuteSeed(context.Background(), adminPassword, seedDeps); err != nil {
		log.Fatalf("failed to seed: %v", err)
	}

	// Configure email sender for inquiry notifications
	resendKey := os.Getenv("PARLEY_RESEND_KEY")
	emailFrom := envOrDefault("PARLEY_RESEND_FROM", "Parley <noreply@parley.example>")
	notifyAddress := os.Getenv("PARLEY_INQUIRY_NOTIFY")
	if resendKey != "" {
		web.SetEmailSender(emailPkg.NewResendSender(resendKey, emailFrom), notifyAddress)
		log.Println("Email sender configured (Resend)")
	} else {
		web.SetEmailSender(emailPkg.NewNoopSender(), notifyAddress)
		log.Println("Email sender configured (noop, set PARLEY_RESEND_KEY for real delivery)")
	}

	// Configure the practice prompt generator; without an endpoint the
	// fixed fallbacks serve every request
	if endpoint := os.Getenv("PARLEY_GENAI_ENDPOINT"); endpoint != "" {
		web.SetGenerator(genai.NewHTTPGenerator(endpoint, os.Getenv("PARLEY_GENAI_KEY"), envOrDefault("PARLEY_GENAI_MODEL", "gpt-4o-mini")))
		log.Println("Prompt generator configured (HTTP)")
	}

	// Create HTTP handler with middleware (pass collector for timing)
	mux := web.NewMux("static", stores, collector)

	// Background housekeeping: expired sessions and stale rate-limiter state
	sched, err := gocron.NewScheduler()
	if err != nil {
		log.Fatalf("failed to create scheduler: %v", err)
	}
	_, _ = sched.NewJob(
		gocron.DurationJob(10*time.Minute),
		gocron.NewTask(func() {
			if n := web.Sessions().PurgeExpired(); n > 0 {
				log.Printf("purged %d expired sessions", n)
			}
			web.RateLimiter().PurgeStale(5 * time.Minute)
		}),
	)
	sched.Start()
	defer func() { _ = sched.Shutdown() }()

	addr := envOrDefault("PARLEY_ADDR", ":8080")
	log.Printf("Parley %s starting on %s (env=%s)", version, addr, envOrDefault("PARLEY_ENV", "development"))

	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
