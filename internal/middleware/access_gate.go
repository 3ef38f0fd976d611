package middleware

import (
	"context"
	"net/http"

	"github.com/2beens/portfolio/internal/auth"
	"github.com/2beens/portfolio/internal/gate"
	"github.com/2beens/portfolio/internal/telemetry/metrics"
	"github.com/2beens/portfolio/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

//go:generate mockgen -source=$GOFILE -destination=access_gate_mocks_test.go -package=middleware_test

type tokenVerifier interface {
	Verify(ctx context.Context, raw string) (string, error)
}

// AccessGate intercepts the login page and the admin area, before any page
// handler runs. Every other path passes straight through.
type AccessGate struct {
	verifier      tokenVerifier
	secureCookies bool
	options       gate.Options
	metrics       *metrics.Manager
}

func NewAccessGate(
	verifier tokenVerifier,
	secureCookies bool,
	options gate.Options,
	metricsManager *metrics.Manager,
) *AccessGate {
	return &AccessGate{
		verifier:      verifier,
		secureCookies: secureCookies,
		options:       options,
		metrics:       metricsManager,
	}
}

func (g *AccessGate) tokenState(ctx context.Context, r *http.Request) gate.TokenState {
	raw, ok := auth.TokenFromRequest(r)
	if !ok {
		return gate.TokenAbsent
	}
	if _, err := g.verifier.Verify(ctx, raw); err != nil {
		return gate.TokenInvalid
	}
	return gate.TokenValid
}

func (g *AccessGate) Middleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !gate.Gated(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			ctx, span := tracing.GlobalTracer.Start(r.Context(), "middleware.access_gate")
			defer span.End()

			routeClass := gate.Classify(r.URL.Path)
			tokenState := g.tokenState(ctx, r)
			decision := gate.Decide(tokenState, routeClass, g.options)

			span.SetAttributes(
				attribute.String("gate.route", routeClass.String()),
				attribute.String("gate.decision", decision.String()),
			)
			if g.metrics != nil {
				g.metrics.CounterAccessGateDecisions.WithLabelValues(decision.String()).Inc()
			}
			log.Tracef("[access gate] %s, token %s => %s", r.URL.Path, tokenState, decision)

			if decision.ClearCookie {
				http.SetCookie(w, auth.ClearedSessionCookie(g.secureCookies))
			}

			switch decision.Outcome {
			case gate.RedirectToLogin:
				span.SetStatus(codes.Ok, "redirect-login")
				http.Redirect(w, r, gate.LoginPath, http.StatusFound)
			case gate.RedirectToProtectedArea:
				span.SetStatus(codes.Ok, "redirect-admin")
				http.Redirect(w, r, gate.ProtectedAreaPath, http.StatusFound)
			default:
				span.SetStatus(codes.Ok, "ok")
				next.ServeHTTP(w, r.WithContext(ctx))
			}
		})
	}
}
