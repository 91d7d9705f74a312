// Package app assembles repositories, services and handlers into a router.
package app

import (
	"time"

	"github.com/jmoiron/sqlx"
	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/time/rate"

	"github.com/jwalitptl/hospital-admin/internal/cache"
	"github.com/jwalitptl/hospital-admin/internal/config"
	admissionhandler "github.com/jwalitptl/hospital-admin/internal/handler/admission"
	assignmenthandler "github.com/jwalitptl/hospital-admin/internal/handler/assignment"
	billinghandler "github.com/jwalitptl/hospital-admin/internal/handler/billing"
	cataloghandler "github.com/jwalitptl/hospital-admin/internal/handler/catalog"
	doctorassignmenthandler "github.com/jwalitptl/hospital-admin/internal/handler/doctorassignment"
	"github.com/jwalitptl/hospital-admin/internal/handler/health"
	labrequesthandler "github.com/jwalitptl/hospital-admin/internal/handler/labrequest"
	"github.com/jwalitptl/hospital-admin/internal/handler/prometheus"
	roomhandler "github.com/jwalitptl/hospital-admin/internal/handler/room"
	"github.com/jwalitptl/hospital-admin/internal/middleware"
	"github.com/jwalitptl/hospital-admin/internal/model"
	"github.com/jwalitptl/hospital-admin/internal/repository"
	"github.com/jwalitptl/hospital-admin/internal/repository/postgres"
	"github.com/jwalitptl/hospital-admin/internal/router"
	admissionService "github.com/jwalitptl/hospital-admin/internal/service/admission"
	assignmentService "github.com/jwalitptl/hospital-admin/internal/service/assignment"
	billingService "github.com/jwalitptl/hospital-admin/internal/service/billing"
	catalogService "github.com/jwalitptl/hospital-admin/internal/service/catalog"
	doctorAssignmentService "github.com/jwalitptl/hospital-admin/internal/service/doctorassignment"
	labRequestService "github.com/jwalitptl/hospital-admin/internal/service/labrequest"
	roomService "github.com/jwalitptl/hospital-admin/internal/service/room"
	"github.com/jwalitptl/hospital-admin/pkg/metrics"
	"github.com/jwalitptl/hospital-admin/pkg/security"
	"github.com/jwalitptl/hospital-admin/pkg/validator"
)

// App holds the assembled HTTP router and the shared metrics.
type App struct {
	Router   *router.Router
	Metrics  *metrics.Metrics
	Registry *prom.Registry
}

// New wires every resource against db. c may be cache.Noop{}.
func New(cfg *config.Config, db *sqlx.DB, c cache.Cache) *App {
	registry := prom.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.NewMetrics(cfg.Metrics.Namespace, registry)

	var httpMetrics *prometheus.Handler
	if cfg.Metrics.Enabled {
		httpMetrics = prometheus.New(cfg.Metrics.Namespace, registry)
	}

	corsConfig := middleware.DefaultCORSConfig()
	if len(cfg.CORS.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.CORS.AllowedOrigins
	}

	r := router.NewRouter(router.RouterConfig{
		Mode:             cfg.Server.Mode,
		RateLimitEnabled: cfg.RateLimit.Enabled,
		RateLimit:        rate.Limit(cfg.RateLimit.RPS),
		RateBurst:        cfg.RateLimit.Burst,
		CORSConfig:       corsConfig,
		MaxBodyBytes:     cfg.Server.MaxBodyBytes,
		RequestTimeout:   cfg.Server.RequestTimeout,
		MetricsPath:      cfg.Metrics.Path,
	}, health.NewHandler(db), httpMetrics)

	r.Setup(handlers(db, m, c, cfg.Cache.TTL)...)

	return &App{Router: r, Metrics: m, Registry: registry}
}

func handlers(db *sqlx.DB, m *metrics.Metrics, c cache.Cache, ttl time.Duration) []router.Handler {
	v := validator.New()
	tx := postgres.NewTransactor(db, m)

	rooms := postgres.NewRoomRepository(db, m)
	admissions := postgres.NewAdmissionRepository(db, m)
	assignments := postgres.NewRoomAssignmentRepository(db, m)
	patients := postgres.NewCatalogRepository[model.Patient](db, m, model.Patients)
	doctors := postgres.NewCatalogRepository[model.Doctor](db, m, model.Doctors)
	users := postgres.NewCatalogRepository[model.User](db, m, model.Users)

	hasher := security.NewBcryptHasher(bcrypt.DefaultCost)

	return []router.Handler{
		catalog(model.Specialties, postgres.NewCatalogRepository[model.Specialty](db, m, model.Specialties), v, c, ttl, m),
		catalog(model.Floors, postgres.NewCatalogRepository[model.Floor](db, m, model.Floors), v, c, ttl, m),
		catalog(model.RoomCategories, postgres.NewCatalogRepository[model.RoomCategory](db, m, model.RoomCategories), v, c, ttl, m),
		catalog(model.GenericMedicines, postgres.NewCatalogRepository[model.GenericMedicine](db, m, model.GenericMedicines), v, c, ttl, m),
		catalog(model.Medicines, postgres.NewCatalogRepository[model.Medicine](db, m, model.Medicines), v, c, ttl, m),
		catalog(model.BillingCategories, postgres.NewCatalogRepository[model.BillingCategory](db, m, model.BillingCategories), v, c, ttl, m),
		catalog(model.InsuranceProviders, postgres.NewCatalogRepository[model.InsuranceProvider](db, m, model.InsuranceProviders), v, c, ttl, m),
		catalog(model.LabTestCategories, postgres.NewCatalogRepository[model.LabTestCategory](db, m, model.LabTestCategories), v, c, ttl, m),
		catalog(model.LabTests, postgres.NewCatalogRepository[model.LabTest](db, m, model.LabTests), v, c, ttl, m),
		catalog(model.Roles, postgres.NewCatalogRepository[model.Role](db, m, model.Roles), v, c, ttl, m),
		catalog(model.Users, users, v, c, ttl, m, catalogService.WithHooks(catalogService.UserHooks(hasher))),
		catalog(model.Doctors, doctors, v, c, ttl, m),
		catalog(model.Patients, patients, v, c, ttl, m),

		roomhandler.NewDispatcher(roomService.NewService(tx, rooms, v)),
		admissionhandler.NewDispatcher(admissionService.NewService(tx, admissions, assignments, patients, doctors, v, m)),
		assignmenthandler.NewHandler(assignmentService.NewService(tx, assignments, rooms, admissions, m)),
		billinghandler.NewDispatcher(billingService.NewService(tx, postgres.NewBillingRepository(db, m), admissions, v)),
		labrequesthandler.NewDispatcher(labRequestService.NewService(postgres.NewLabRequestRepository(db, m), admissions, v)),
		doctorassignmenthandler.NewDispatcher(doctorAssignmentService.NewService(postgres.NewDoctorAssignmentRepository(db, m), admissions, doctors, v)),
	}
}

func catalog[T any](
	entity model.Entity,
	repo repository.CatalogRepository[T],
	v validator.Validator,
	c cache.Cache,
	ttl time.Duration,
	m *metrics.Metrics,
	opts ...catalogService.Option[T],
) router.Handler {
	opts = append(opts, catalogService.WithCache[T](c, ttl), catalogService.WithMetrics[T](m))
	return cataloghandler.NewDispatcher[T](catalogService.NewService[T](entity, repo, v, opts...))
}
