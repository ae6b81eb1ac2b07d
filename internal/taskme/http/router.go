package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/aussiebroadwan/taskme/internal/taskme/events"
	"github.com/aussiebroadwan/taskme/internal/taskme/service"
	"github.com/aussiebroadwan/taskme/internal/taskme/store"
	"github.com/aussiebroadwan/taskme/pkg/httpx"
	"github.com/aussiebroadwan/taskme/pkg/jwtx"
	"github.com/aussiebroadwan/taskme/pkg/slogx"
	"github.com/aussiebroadwan/taskme/pkg/taskmesdk"

	_ "github.com/aussiebroadwan/taskme/api/taskme" // Swagger docs
)

// APIPrefix is the versioned root of every product route.
const APIPrefix = "/api/v1"

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *mux.Router
	middlewares []httpx.Middleware

	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	store        store.Store

	// Limits are the rate-limit profiles. Zero value means the defaults.
	Limits httpx.RateLimits

	// FrontendURL is where email verification redirects land.
	FrontendURL string

	// EnableDocs mounts the Swagger UI under /swagger/.
	EnableDocs bool

	AuthService   *service.AuthService
	TaskService   *service.TaskService
	ColumnService *service.ColumnService
	ParseService  *service.ParseService
	ExportService *service.ExportService
	ShareService  *service.ShareService
	NotifyService *service.NotifyService
	Hub           *events.Hub
}

func NewRouter(
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
	corsOrigins []string,
) *Router {
	if logger == nil {
		logger = slog.Default()
	}

	r := &Router{
		Mux:          mux.NewRouter(),
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
		Limits:       httpx.DefaultRateLimits(),
	}

	// Outermost first: CORS must answer preflights before anything else.
	r.middlewares = []httpx.Middleware{
		httpx.CORS(corsOrigins),
		slogx.HTTPMiddleware(r.logger),
		httpx.SecurityHeaders(),
	}

	r.Mux.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		taskmesdk.NotFound("Not found").WriteError(w)
	})
	r.Mux.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		taskmesdk.NewAPIError(http.StatusMethodNotAllowed, taskmesdk.ErrorCodeInvalidRequest, "Method not allowed").WriteError(w)
	})

	return r
}

func (r *Router) ApplyRoutes() {
	api := r.Mux.PathPrefix(APIPrefix).Subrouter()

	r.registerAuth(api)
	r.registerTasks(api)
	r.registerColumns(api)
	r.registerParse(api)
	r.registerExport(api)
	r.registerShare(api)
	r.registerEmail(api)
	r.registerEvents(api)
	r.registerSystem()

	if r.EnableDocs {
		r.Mux.PathPrefix("/swagger/").Handler(httpSwagger.Handler())
	}
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			TaskMe API
//	@version		0.1.0
//	@description	Multi-user task tracker: tasks, configurable columns, natural-language task extraction,
//	@description	spreadsheet export, read-only share links and email notifications.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/taskme
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8000
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// secured wraps h with bearer verification and user resolution, then a
// per-user rate limit.
func (r *Router) secured(h http.Handler, limit httpx.RateLimitConfig, opts ...httpx.AuthnOption) http.Handler {
	return httpx.Chain(h,
		httpx.AuthnMiddleware(r.verifier, opts...),
		r.resolveUser,
		httpx.RateLimitByUser(limit),
	)
}

func (r *Router) registerAuth(api *mux.Router) {
	h := &AuthHandler{AuthService: r.AuthService, FrontendURL: r.FrontendURL}

	// POST /auth/register - strict rate limit by IP (account creation)
	api.Handle("/auth/register",
		httpx.Chain(http.HandlerFunc(h.HandleRegister),
			httpx.RateLimitByIP(r.Limits.Strict),
		),
	).Methods(http.MethodPost)

	// GET /auth/verify-email - followed from an email, public limit
	api.Handle("/auth/verify-email",
		httpx.Chain(http.HandlerFunc(h.HandleVerifyEmail),
			httpx.RateLimitByIP(r.Limits.Public),
		),
	).Methods(http.MethodGet)

	// POST /auth/resend-verification - strict, sends email
	api.Handle("/auth/resend-verification",
		httpx.Chain(http.HandlerFunc(h.HandleResendVerification),
			httpx.RateLimitByIP(r.Limits.Strict),
		),
	).Methods(http.MethodPost)

	// POST /auth/login - strict rate limit by IP + username to slow brute force
	api.Handle("/auth/login",
		httpx.Chain(http.HandlerFunc(h.HandleLogin),
			httpx.RateLimitByIPAndJSONField(r.Limits.Strict, "username"),
		),
	).Methods(http.MethodPost)

	api.Handle("/auth/me", r.secured(http.HandlerFunc(h.HandleMe), r.Limits.Lenient)).Methods(http.MethodGet)
}

func (r *Router) registerTasks(api *mux.Router) {
	h := &TasksHandler{TaskService: r.TaskService}

	// Literal paths before {id} so mux does not treat them as ids.
	api.Handle("/tasks/bulk", r.secured(http.HandlerFunc(h.HandleCreateBulk), r.Limits.Moderate)).Methods(http.MethodPost)
	api.Handle("/tasks/bulk/delete", r.secured(http.HandlerFunc(h.HandleDeleteBulk), r.Limits.Moderate)).Methods(http.MethodDelete)
	api.Handle("/tasks/all", r.secured(http.HandlerFunc(h.HandleDeleteAll), r.Limits.Moderate)).Methods(http.MethodDelete)

	for _, p := range []string{"/tasks", "/tasks/"} {
		api.Handle(p, r.secured(http.HandlerFunc(h.HandleList), r.Limits.Lenient)).Methods(http.MethodGet)
		api.Handle(p, r.secured(http.HandlerFunc(h.HandleCreate), r.Limits.Lenient)).Methods(http.MethodPost)
	}

	api.Handle("/tasks/{id:[0-9]+}", r.secured(http.HandlerFunc(h.HandleGet), r.Limits.Lenient)).Methods(http.MethodGet)
	api.Handle("/tasks/{id:[0-9]+}", r.secured(http.HandlerFunc(h.HandleUpdate), r.Limits.Lenient)).Methods(http.MethodPatch)
	api.Handle("/tasks/{id:[0-9]+}", r.secured(http.HandlerFunc(h.HandleDelete), r.Limits.Lenient)).Methods(http.MethodDelete)
}

func (r *Router) registerColumns(api *mux.Router) {
	h := &ColumnsHandler{ColumnService: r.ColumnService}

	api.Handle("/columns/reorder", r.secured(http.HandlerFunc(h.HandleReorder), r.Limits.Lenient)).Methods(http.MethodPatch)

	for _, p := range []string{"/columns", "/columns/"} {
		api.Handle(p, r.secured(http.HandlerFunc(h.HandleList), r.Limits.Lenient)).Methods(http.MethodGet)
		api.Handle(p, r.secured(http.HandlerFunc(h.HandleCreate), r.Limits.Lenient)).Methods(http.MethodPost)
	}

	api.Handle("/columns/{id:[0-9]+}", r.secured(http.HandlerFunc(h.HandleUpdate), r.Limits.Lenient)).Methods(http.MethodPatch)
	api.Handle("/columns/{id:[0-9]+}", r.secured(http.HandlerFunc(h.HandleDelete), r.Limits.Lenient)).Methods(http.MethodDelete)
}

func (r *Router) registerParse(api *mux.Router) {
	// POST /parse - moderate, each call costs an LLM request
	h := &ParseHandler{ParseService: r.ParseService}
	for _, p := range []string{"/parse", "/parse/"} {
		api.Handle(p, r.secured(h, r.Limits.Moderate)).Methods(http.MethodPost)
	}
}

func (r *Router) registerExport(api *mux.Router) {
	h := &ExportHandler{ExportService: r.ExportService}
	api.Handle("/export/excel", r.secured(h, r.Limits.Moderate)).Methods(http.MethodGet)
}

func (r *Router) registerShare(api *mux.Router) {
	h := &ShareHandler{ShareService: r.ShareService}

	for _, p := range []string{"/share", "/share/"} {
		api.Handle(p, r.secured(http.HandlerFunc(h.HandleCreate), r.Limits.Moderate)).Methods(http.MethodPost)
	}

	// GET /share/{token} - anonymous read, public limit by IP
	api.Handle("/share/{token}",
		httpx.Chain(http.HandlerFunc(h.HandleGet),
			httpx.RateLimitByIP(r.Limits.Public),
		),
	).Methods(http.MethodGet)
}

func (r *Router) registerEmail(api *mux.Router) {
	h := &NotifyHandler{NotifyService: r.NotifyService}

	// POST /email/notify - fixed per-address budget on outbound mail
	api.Handle("/email/notify",
		httpx.Chain(h,
			httpx.AuthnMiddleware(r.verifier),
			r.resolveUser,
			httpx.RateLimitByIP(r.Limits.Notify),
		),
	).Methods(http.MethodPost)
}

func (r *Router) registerEvents(api *mux.Router) {
	if r.Hub == nil {
		return
	}
	h := &EventsHandler{Hub: r.Hub}

	// Browsers cannot set headers on a websocket upgrade.
	api.Handle("/events",
		r.secured(h, r.Limits.Lenient, httpx.AllowQueryToken("access_token")),
	).Methods(http.MethodGet)
}

func (r *Router) registerSystem() {
	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("/",
		httpx.Chain(RootHandler(),
			httpx.RateLimitByIP(r.Limits.Public),
		),
	).Methods(http.MethodGet)
	r.Mux.Handle("/livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(r.Limits.Lenient),
		),
	).Methods(http.MethodGet)
	r.Mux.Handle("/readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store),
			httpx.RateLimitByIP(r.Limits.Lenient),
		),
	).Methods(http.MethodGet)
}
