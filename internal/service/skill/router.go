package skill

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/seu-repo/dogwalk-skill/internal/domain"
	"github.com/seu-repo/dogwalk-skill/internal/observability/telemetry"
)

// ErrHandlerNotFound is passed to the error handler when no route matches a request.
var ErrHandlerNotFound = errors.New("no route matched the request")

const (
	unmatchedRoute   = "unmatched"
	unknownTypeLabel = "unknown"
)

// Action produces the response for a matched request.
type Action interface {
	Handle(ctx context.Context, env *domain.RequestEnvelope) (*domain.ResponseEnvelope, error)
}

// ActionFunc adapts a function to Action.
type ActionFunc func(ctx context.Context, env *domain.RequestEnvelope) (*domain.ResponseEnvelope, error)

func (f ActionFunc) Handle(ctx context.Context, env *domain.RequestEnvelope) (*domain.ResponseEnvelope, error) {
	return f(ctx, env)
}

// ErrorHandler answers a request whose action failed or that matched no route.
// It must always return a response.
type ErrorHandler interface {
	HandleError(ctx context.Context, env *domain.RequestEnvelope, err error) *domain.ResponseEnvelope
}

// Route binds an Action to a request type. For intent and API requests, Names
// restricts the match to those intent or API names; an empty Names matches any.
type Route struct {
	Name   string
	Type   domain.RequestType
	Names  []string
	Action Action
}

// Matches reports whether the route accepts env.
func (r Route) Matches(env *domain.RequestEnvelope) bool {
	switch r.Type {
	case domain.RequestTypeLaunch, domain.RequestTypeSessionEnded:
		return IsRequestType(env, r.Type)
	case domain.RequestTypeIntent:
		return IsRequestType(env, r.Type) && r.acceptsName(IntentName(env))
	case domain.RequestTypeAPIInvoked:
		return IsRequestType(env, r.Type) && r.acceptsName(APIName(env))
	default:
		return false
	}
}

func (r Route) acceptsName(name string) bool {
	if len(r.Names) == 0 {
		return true
	}
	for _, n := range r.Names {
		if n == name {
			return true
		}
	}
	return false
}

// Router dispatches each request to the first matching route.
// It holds no per-request state and is safe for concurrent use.
type Router struct {
	routes  []Route
	onError ErrorHandler
	log     *zap.Logger
}

func NewRouter(routes []Route, onError ErrorHandler, log *zap.Logger) *Router {
	if onError == nil {
		onError = NewErrorHandler(log)
	}
	return &Router{
		routes:  append([]Route(nil), routes...),
		onError: onError,
		log:     log,
	}
}

// Dispatch returns exactly one response for env. At most one route action runs.
func (r *Router) Dispatch(ctx context.Context, env *domain.RequestEnvelope) *domain.ResponseEnvelope {
	start := time.Now()
	defer func() {
		telemetry.SkillDispatchDuration.Observe(time.Since(start).Seconds())
	}()

	requestType := requestTypeLabel(env.Type())

	route, ok := r.match(env)
	if !ok {
		telemetry.SkillRequestsTotal.WithLabelValues(requestType, unmatchedRoute).Inc()
		err := fmt.Errorf("%w: type=%q intent=%q api=%q", ErrHandlerNotFound, env.Type(), IntentName(env), APIName(env))
		return r.fail(ctx, env, unmatchedRoute, err)
	}
	telemetry.SkillRequestsTotal.WithLabelValues(requestType, route.Name).Inc()

	resp, err := r.invoke(ctx, route, env)
	if err == nil && resp == nil {
		err = fmt.Errorf("route %s returned no response", route.Name)
	}
	if err != nil {
		return r.fail(ctx, env, route.Name, err)
	}
	return resp
}

func (r *Router) match(env *domain.RequestEnvelope) (Route, bool) {
	for _, route := range r.routes {
		if route.Matches(env) {
			return route, true
		}
	}
	return Route{}, false
}

func (r *Router) invoke(ctx context.Context, route Route, env *domain.RequestEnvelope) (resp *domain.ResponseEnvelope, err error) {
	defer func() {
		if p := recover(); p != nil {
			resp, err = nil, fmt.Errorf("route %s panicked: %v", route.Name, p)
		}
	}()
	return route.Action.Handle(ctx, env)
}

func (r *Router) fail(ctx context.Context, env *domain.RequestEnvelope, routeName string, err error) *domain.ResponseEnvelope {
	telemetry.SkillHandlerErrorsTotal.WithLabelValues(routeName).Inc()
	return r.onError.HandleError(ctx, env, err)
}

// requestTypeLabel keeps metric cardinality bounded: request types come from
// the request body.
func requestTypeLabel(t domain.RequestType) string {
	switch t {
	case domain.RequestTypeLaunch, domain.RequestTypeIntent, domain.RequestTypeAPIInvoked, domain.RequestTypeSessionEnded:
		return string(t)
	default:
		return unknownTypeLabel
	}
}
