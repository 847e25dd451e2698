// Package workflow is the finite-state machine over Church.status. The
// engine owns edge lookup, role checks, boundary authorization, guard
// evaluation, and the atomic persistence of each accepted transition with
// its audit record.
package workflow

//go:generate mockgen -source=engine.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	actormodels "simbahan/internal/actor/models"
	"simbahan/internal/audit"
	"simbahan/internal/authz"
	"simbahan/internal/church/models"
	"simbahan/internal/notify"
	workflowmetrics "simbahan/internal/workflow/metrics"
	id "simbahan/pkg/domain"
	dErrors "simbahan/pkg/domain-errors"
	"simbahan/pkg/platform/sentinel"
	"simbahan/pkg/requestcontext"
)

// ChurchStore is the versioned repository the engine mutates through.
// CompareAndSwap must write the status, the bumped version, and the
// transition record atomically or fail without side effects.
type ChurchStore interface {
	Get(ctx context.Context, parish id.ParishID) (*models.Church, error)
	CompareAndSwap(ctx context.Context, parish id.ParishID, expectedVersion int64, to models.Status, rec audit.TransitionRecord) (*models.Church, error)
}

// Classifier recomputes the heritage classification for guard evaluation.
// Injected so the scorer can be swapped and mocked independently of the
// state machine.
type Classifier interface {
	Classify(p models.Profile) models.Classification
}

// Gate answers allow/deny for the diocese/parish boundary.
type Gate interface {
	Authorize(ctx context.Context, actor *actormodels.Actor, res authz.Resource, action authz.Action) error
}

// Notifier receives an event after every successful transition. Delivery is
// the collaborator's concern; the engine never waits on it.
type Notifier interface {
	TransitionApplied(ctx context.Context, event notify.Event)
}

// Request is one transition attempt.
type Request struct {
	ChurchID        id.ParishID
	ExpectedVersion int64
	Target          models.Status
	Notes           string
}

// Result is the typed outcome of an attempt. Business rejections come back
// as OutcomeRejected with an error code, not as Go errors; only
// infrastructure failures surface as errors from RequestTransition.
type Result struct {
	Outcome   audit.Outcome
	ErrorCode dErrors.Code
	Record    *audit.TransitionRecord
	Church    *models.Church
}

func (r *Result) Applied() bool { return r.Outcome == audit.OutcomeApplied }

type Option func(*Engine)

func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

func WithNotifier(notifier Notifier) Option {
	return func(e *Engine) { e.notifier = notifier }
}

func WithMetrics(m *workflowmetrics.Metrics) Option {
	return func(e *Engine) { e.metrics = m }
}

// Engine evaluates transition requests synchronously. It holds no long-lived
// resources and no cross-record locks: requests for distinct churches
// proceed fully in parallel, serialized only by the store's version token.
type Engine struct {
	churches   ChurchStore
	records    audit.Store
	classifier Classifier
	gate       Gate
	notifier   Notifier
	logger     *slog.Logger
	metrics    *workflowmetrics.Metrics
	tracer     trace.Tracer
}

func New(churches ChurchStore, records audit.Store, classifier Classifier, gate Gate, opts ...Option) *Engine {
	e := &Engine{
		churches:   churches,
		records:    records,
		classifier: classifier,
		gate:       gate,
		tracer:     otel.Tracer("simbahan/workflow"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// RequestTransition runs the full pipeline for one attempt: load, edge
// lookup, role check, boundary check, guard evaluation, compare-and-swap.
// Every rejection is appended to the ledger with its error code before it is
// returned; a ledger append failure aborts the whole operation so a
// transition is never half applied.
func (e *Engine) RequestTransition(ctx context.Context, actor *actormodels.Actor, req Request) (*Result, error) {
	ctx, span := e.tracer.Start(ctx, "workflow.RequestTransition",
		trace.WithAttributes(
			attribute.String("church_id", req.ChurchID.String()),
			attribute.String("target_status", req.Target.String()),
		))
	defer span.End()

	if actor == nil {
		return nil, dErrors.New(dErrors.CodeUnauthenticated, "transition requests require an authenticated actor")
	}
	if !req.Target.IsValid() {
		return nil, dErrors.New(dErrors.CodeValidation, "invalid target status")
	}
	if req.ChurchID.IsZero() {
		return nil, dErrors.New(dErrors.CodeValidation, "church id is required")
	}

	church, err := e.churches.Get(ctx, req.ChurchID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return e.reject(ctx, actor, nil, req, dErrors.CodeNotFound, models.Classification{})
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load church")
	}

	edge, ok := edgeFor(church.Status, req.Target)
	if !ok {
		if church.Status == req.Target {
			return e.replayApplied(ctx, actor, church, req)
		}
		return e.reject(ctx, actor, church, req, dErrors.CodeInvalidTransition, models.Classification{})
	}

	if !edge.allowsRole(actor.Role) {
		return e.reject(ctx, actor, church, req, dErrors.CodeUnauthorized, models.Classification{})
	}

	if err := e.gate.Authorize(ctx, actor, e.resource(church), authz.ActionTransition); err != nil {
		return e.reject(ctx, actor, church, req, dErrors.CodeOf(err), models.Classification{})
	}

	// Guards always run against a fresh classification, never a stored one.
	score := e.classifier.Classify(church.Profile)
	if e.metrics != nil {
		e.metrics.ObserveScore(score.Score)
	}
	if !evaluateGuard(edge.Guard, score) {
		return e.reject(ctx, actor, church, req, dErrors.CodeGuardFailed, score)
	}

	rec := e.newRecord(ctx, actor, church, req, score, audit.OutcomeApplied, "")
	updated, err := e.churches.CompareAndSwap(ctx, req.ChurchID, req.ExpectedVersion, req.Target, rec)
	if err != nil {
		switch {
		case errors.Is(err, sentinel.ErrConflict):
			return e.reject(ctx, actor, church, req, dErrors.CodeConflict, score)
		case errors.Is(err, sentinel.ErrNotFound):
			return e.reject(ctx, actor, church, req, dErrors.CodeNotFound, score)
		}
		span.RecordError(err)
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "transition not applied")
	}

	if e.notifier != nil {
		e.notifier.TransitionApplied(ctx, notify.Event{
			ChurchID:   updated.ID,
			FromStatus: rec.FromStatus,
			ToStatus:   rec.ToStatus,
			ActorID:    actor.ID,
			Timestamp:  rec.Timestamp,
		})
	}
	if e.metrics != nil {
		e.metrics.IncrementApplied()
	}
	if e.logger != nil {
		e.logger.InfoContext(ctx, "transition applied",
			"church_id", updated.ID,
			"from_status", rec.FromStatus,
			"to_status", rec.ToStatus,
			"actor_id", actor.ID,
			"actor_role", actor.Role,
			"score", score.Score,
		)
	}
	span.SetAttributes(attribute.String("outcome", string(audit.OutcomeApplied)))

	return &Result{Outcome: audit.OutcomeApplied, Record: &rec, Church: updated}, nil
}

// replayApplied answers an idempotent retry: the church already sits in the
// requested status and no self-edge covers the pair, so the attempt succeeds
// by reference to the existing applied record instead of a duplicate entry.
// The boundary check still runs first; a retry is not a license to peek
// across dioceses.
func (e *Engine) replayApplied(ctx context.Context, actor *actormodels.Actor, church *models.Church, req Request) (*Result, error) {
	if err := e.gate.Authorize(ctx, actor, e.resource(church), authz.ActionTransition); err != nil {
		return e.reject(ctx, actor, church, req, dErrors.CodeOf(err), models.Classification{})
	}

	existing, err := e.records.LatestApplied(ctx, church.ID, req.Target)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			// In the status but not via a recorded transition (e.g. a fresh
			// pending record): nothing to replay.
			return e.reject(ctx, actor, church, req, dErrors.CodeInvalidTransition, models.Classification{})
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to look up prior transition")
	}
	return &Result{Outcome: audit.OutcomeApplied, Record: existing, Church: church}, nil
}

// reject appends a rejected attempt to the ledger and returns it as a typed
// result. The church argument may be nil when the record does not exist.
func (e *Engine) reject(ctx context.Context, actor *actormodels.Actor, church *models.Church, req Request, code dErrors.Code, score models.Classification) (*Result, error) {
	rec := e.newRecord(ctx, actor, church, req, score, audit.OutcomeRejected, code)
	if err := e.records.Append(ctx, rec); err != nil {
		// Forensic completeness is part of the contract: if the attempt
		// cannot be recorded, the whole operation fails.
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to record rejected transition")
	}
	if e.metrics != nil {
		e.metrics.IncrementRejected(string(code))
	}
	if e.logger != nil {
		e.logger.WarnContext(ctx, "transition rejected",
			"church_id", req.ChurchID,
			"target_status", req.Target,
			"actor_id", actor.ID,
			"actor_role", actor.Role,
			"error_code", code,
		)
	}
	return &Result{Outcome: audit.OutcomeRejected, ErrorCode: code, Record: &rec}, nil
}

func (e *Engine) newRecord(ctx context.Context, actor *actormodels.Actor, church *models.Church, req Request, score models.Classification, outcome audit.Outcome, code dErrors.Code) audit.TransitionRecord {
	rec := audit.TransitionRecord{
		ID:             uuid.New(),
		ChurchID:       req.ChurchID,
		ToStatus:       req.Target,
		ActorID:        actor.ID,
		ActorRole:      actor.Role,
		Score:          score,
		Notes:          req.Notes,
		ClientPlatform: requestcontext.ClientPlatform(ctx),
		Outcome:        outcome,
		ErrorCode:      string(code),
		Timestamp:      requestcontext.Now(ctx).UTC().Truncate(time.Microsecond),
	}
	if church != nil {
		rec.FromStatus = church.Status
	}
	return rec
}

func (e *Engine) resource(church *models.Church) authz.Resource {
	return authz.Resource{
		Parish:  church.ID,
		Diocese: church.Diocese,
		Status:  church.Status,
	}
}
