package loader

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/cdnkit/cache"
	"github.com/kbukum/cdnkit/errors"
	"github.com/kbukum/cdnkit/logger"
	"github.com/kbukum/cdnkit/observability"
	"github.com/kbukum/cdnkit/registry"
	"github.com/kbukum/cdnkit/resilience"
	"github.com/kbukum/cdnkit/resolver"
	"github.com/kbukum/cdnkit/scriptenv"
)

const (
	serviceName   = "cdnkit"
	operationLoad = "load"

	statusOK    = "ok"
	statusError = "error"
)

// Loader loads scripts through an ordered sequence of CDN providers,
// falling back to the next provider when one fails.
type Loader struct {
	registry *registry.Registry
	cache    *cache.Cache
	env      scriptenv.Environment
	timeout  time.Duration
	logger   *logger.Logger
	metrics  *observability.Metrics
	tracing  bool
}

// New creates a Loader from cfg. A zero Config yields a loader with the
// built-in provider set, a fresh cache and the default HTTP environment.
func New(cfg Config) (*Loader, error) {
	cfg.ApplyDefaults()
	if cfg.Environment == nil {
		env, err := scriptenv.NewHTTP(scriptenv.Config{})
		if err != nil {
			return nil, err
		}
		cfg.Environment = env
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Loader{
		registry: cfg.Registry,
		cache:    cfg.Cache,
		env:      cfg.Environment,
		timeout:  cfg.Timeout,
		logger:   cfg.Logger.WithComponent("loader"),
		metrics:  cfg.Metrics,
		tracing:  cfg.Tracing,
	}, nil
}

// RegisterCDN adds a provider or replaces an existing one. Replacing keeps
// the provider's position in the fallback order.
func (l *Loader) RegisterCDN(name string, res resolver.Resolver) error {
	return l.registry.Register(name, res)
}

// UnregisterCDN removes a provider. Removing an unknown name is a no-op.
func (l *Loader) UnregisterCDN(name string) {
	l.registry.Unregister(name)
}

// CDNs returns the provider names in fallback order.
func (l *Loader) CDNs() []string {
	return l.registry.Names()
}

// attemptFailure records why one candidate did not produce a script.
type attemptFailure struct {
	Provider string           `json:"provider"`
	Code     errors.ErrorCode `json:"code"`
	Reason   string           `json:"reason"`
}

// Load fetches pkg through the candidate providers in order and returns
// the URL that loaded successfully.
//
// A blank package name fails fast with INVALID_ARGUMENT and an empty
// candidate list with CONFIGURATION_ERROR. Every other per-candidate
// failure is recorded and the next candidate is tried; when all candidates
// fail the returned error carries ALL_PROVIDERS_FAILED with per-candidate
// reasons in its details. Cancelling ctx aborts the call between and
// during attempts.
func (l *Loader) Load(ctx context.Context, pkg string, opts ...Option) (string, error) {
	if strings.TrimSpace(pkg) == "" {
		return "", errors.InvalidArgument("package", "package name must not be empty")
	}

	o := defaultOptions(l.timeout)
	for _, opt := range opts {
		opt(&o)
	}

	// Candidates are frozen before the first attempt. Later registry
	// changes affect lookups, not the order walked here.
	candidates := o.cdnOrder
	if len(candidates) == 0 {
		candidates = l.registry.Names()
	}
	if len(candidates) == 0 {
		return "", errors.Configuration("no CDN providers are registered or requested")
	}

	requestID := uuid.NewString()
	ctx = logger.ContextWithRequestID(ctx, requestID)
	log := l.logger.WithContext(ctx).WithFields(logger.Fields(
		logger.FieldPackage, pkg,
		logger.FieldVersion, o.version,
	))

	ctx, finish := l.beginOperation(ctx, requestID, pkg, o.version)

	url, err := l.fallback(ctx, pkg, candidates, o, log)
	if err != nil {
		finish(statusError, err)
		return "", err
	}
	finish(statusOK, nil)
	return url, nil
}

// fallback walks the candidates in order until one serves the script.
func (l *Loader) fallback(ctx context.Context, pkg string, candidates []string, o options, log *logger.Logger) (string, error) {
	rc := resolver.Context{Package: pkg, Version: o.version, Path: o.path}

	log.Debug("starting fallback", logger.Fields(
		logger.FieldPath, o.path,
		logger.FieldCandidates, candidates,
		logger.FieldTimeout, o.timeout.String(),
	))

	var failures []attemptFailure

	for i, name := range candidates {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		res, ok := l.registry.Lookup(name)
		if !ok {
			log.Debug("skipping unregistered provider", logger.Fields(logger.FieldProvider, name))
			continue
		}

		url, cacheHit, attemptErr := l.attempt(ctx, i+1, name, res, rc, o.timeout)
		if attemptErr == nil {
			if cacheHit {
				l.recordCacheHit(ctx, name)
				log.Debug("cache hit", logger.Fields(logger.FieldProvider, name, logger.FieldURL, url))
			} else {
				l.recordAttempt(ctx, name, statusOK)
				log.Info("script loaded", logger.Fields(
					logger.FieldProvider, name,
					logger.FieldURL, url,
					logger.FieldAttempt, i+1,
				))
			}
			return url, nil
		}

		// A cancelled caller aborts the call without charging the
		// interrupted attempt against the candidate.
		if err := ctx.Err(); err != nil {
			return "", err
		}

		failures = append(failures, attemptFailure{
			Provider: name,
			Code:     attemptErr.Code,
			Reason:   attemptErr.Message,
		})
		l.recordAttempt(ctx, name, strings.ToLower(string(attemptErr.Code)))
		l.recordError(ctx, attemptErr.Code)
		log.Warn("provider attempt failed", logger.Fields(
			logger.FieldProvider, name,
			logger.FieldCode, string(attemptErr.Code),
			logger.FieldError, attemptErr.Error(),
		))
	}

	appErr := errors.AllProvidersFailed(pkg, o.version, candidates)
	if len(failures) > 0 {
		appErr = appErr.WithDetail("attempts", failures)
	}
	l.recordError(ctx, appErr.Code)
	log.Error("all providers failed", logger.Fields(logger.FieldCandidates, candidates))
	return "", appErr
}

// attempt resolves one candidate and loads the URL unless it is already
// cached. A nil error with cacheHit set means the URL was served from the
// cache without touching the environment.
func (l *Loader) attempt(ctx context.Context, seq int, name string, res resolver.Resolver, rc resolver.Context, timeout time.Duration) (url string, cacheHit bool, appErr *errors.AppError) {
	if l.tracing {
		var span trace.Span
		ctx, span = observability.StartSpan(ctx, observability.SpanAttempt)
		defer func() { endAttemptSpan(ctx, span, url, cacheHit, appErr) }()
		observability.SetSpanAttribute(ctx, observability.AttrProvider, name)
		observability.SetSpanAttribute(ctx, observability.AttrAttempt, seq)
	}

	url, appErr = resolveURL(name, res, rc)
	if appErr != nil {
		return "", false, appErr
	}

	if l.cache.Has(url) {
		return url, true, nil
	}

	if appErr = l.raceLoad(ctx, name, url, timeout); appErr != nil {
		return "", false, appErr
	}

	l.cache.Add(url)
	return url, false, nil
}

// resolveURL runs a resolver, converting panics and blank URLs into
// resolver errors.
func resolveURL(name string, res resolver.Resolver, rc resolver.Context) (url string, appErr *errors.AppError) {
	defer func() {
		if r := recover(); r != nil {
			url = ""
			appErr = errors.ResolverFailed(name, fmt.Errorf("resolver panicked: %v", r))
		}
	}()
	raw, err := res.Resolve(rc)
	if err != nil {
		return "", errors.ResolverFailed(name, err)
	}
	if strings.TrimSpace(raw) == "" {
		return "", errors.ResolverFailed(name, fmt.Errorf("resolver returned an empty URL"))
	}
	return raw, nil
}

// raceLoad runs the environment load against the per-attempt timeout. The
// loser's context is cancelled so an abandoned load can stop early.
func (l *Loader) raceLoad(ctx context.Context, name, url string, timeout time.Duration) *errors.AppError {
	err := resilience.TimeoutFunc(ctx, timeout, func(ctx context.Context) error {
		return l.env.Load(ctx, url)
	})
	if err == nil {
		return nil
	}
	if stderrors.Is(err, context.DeadlineExceeded) {
		return errors.LoadTimedOut(name, url, timeout)
	}
	return errors.LoadFailed(name, url, err)
}

// beginOperation starts the span and metrics lifecycle for one call. The
// returned finish must be called exactly once with the final status.
func (l *Loader) beginOperation(ctx context.Context, requestID, pkg, version string) (context.Context, func(status string, err error)) {
	oc := observability.NewOperationContext(serviceName, operationLoad, requestID, pkg, version, l.metrics)
	if !l.tracing {
		opCtx := ctx
		if l.metrics != nil {
			l.metrics.RecordLoadStart(opCtx)
		}
		return ctx, func(status string, _ error) {
			if l.metrics != nil {
				l.metrics.RecordLoadEnd(opCtx, pkg, status, oc.Duration())
			}
		}
	}
	spanCtx, span := oc.StartSpanForOperation(ctx, observability.SpanLoad)
	return spanCtx, func(status string, err error) {
		oc.EndOperation(spanCtx, span, status, err)
	}
}

func endAttemptSpan(ctx context.Context, span trace.Span, url string, cacheHit bool, appErr *errors.AppError) {
	if appErr != nil {
		observability.SetSpanError(ctx, appErr)
		observability.SetSpanAttribute(ctx, observability.AttrStatus, strings.ToLower(string(appErr.Code)))
	} else {
		observability.SetSpanAttribute(ctx, observability.AttrStatus, statusOK)
		observability.SetSpanAttribute(ctx, observability.AttrURL, url)
		observability.SetSpanAttribute(ctx, observability.AttrCacheHit, cacheHit)
	}
	span.End()
}

func (l *Loader) recordAttempt(ctx context.Context, provider, status string) {
	if l.metrics != nil {
		l.metrics.RecordAttempt(ctx, provider, status)
	}
}

func (l *Loader) recordCacheHit(ctx context.Context, provider string) {
	if l.metrics != nil {
		l.metrics.RecordCacheHit(ctx, provider)
	}
}

func (l *Loader) recordError(ctx context.Context, code errors.ErrorCode) {
	if l.metrics != nil {
		l.metrics.RecordError(ctx, string(code), "loader")
	}
}
