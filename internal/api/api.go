package api

import (
	"context"
	"net/http"

	"github.com/SergeyKozhin/schedule-assist/internal/business/cascade"
	"github.com/SergeyKozhin/schedule-assist/internal/business/planner"
	"github.com/SergeyKozhin/schedule-assist/internal/model"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

type Api struct {
	handler http.Handler
	logger  *zap.SugaredLogger

	jwts     jwtManager
	planner  plannerService
	defaults defaultsService
}

type jwtManager interface {
	GetIDFromToken(token string) (string, error)
}

type plannerService interface {
	Run(ctx context.Context, req *model.PlanRequest) (*planner.Result, error)
	GetRun(ctx context.Context, hostID, singletonID, replanOf string) ([]byte, error)
}

type defaultsService interface {
	ApplyDefaults(ctx context.Context, userID string, eventID, previousID model.EventKey) (*cascade.Result, error)
}

func NewApi(
	logger *zap.SugaredLogger,
	jwts jwtManager,
	planner plannerService,
	defaults defaultsService,
) (*Api, error) {
	a := &Api{
		logger:   logger,
		jwts:     jwts,
		planner:  planner,
		defaults: defaults,
	}
	a.setupHandler()

	return a, nil
}

func (a *Api) setupHandler() {
	middleware.DefaultLogger = func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			a.logger.Debugw(r.URL.RequestURI(),
				"addr", r.RemoteAddr,
				"protocol", r.Proto,
				"method", r.Method,
			)
			next.ServeHTTP(w, r)
		})
	}

	r := chi.NewMux()

	r.Use(middleware.Logger, middleware.Recoverer, middleware.StripSlashes)
	r.NotFound(a.notFoundResponse)
	r.MethodNotAllowed(a.methodNotAllowedResponse)

	r.Get("/healthcheck", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	r.Group(func(r chi.Router) {
		r.Use(a.auth)

		r.Route("/planner/runs", func(r chi.Router) {
			r.Post("/", a.createRunHandler)
			r.Get("/{singletonID}", a.getRunHandler)
		})
		r.Post("/events/{eventID}/defaults", a.applyDefaultsHandler)
	})

	a.handler = r
}

func (a *Api) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.handler.ServeHTTP(w, r)
}
