package docstore

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "fitmap/internal/docstore"

// traced decorates a Store with one client span per call.
type traced struct {
	next   Store
	system string
	tracer trace.Tracer
}

// WithTracing wraps s so every call is recorded as a span tagged with the
// backend name (db.system).
func WithTracing(s Store, system string) Store {
	return &traced{next: s, system: system, tracer: otel.Tracer(tracerName)}
}

func (t *traced) start(ctx context.Context, op, path string) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, "docstore."+op,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("db.system", t.system),
			attribute.String("db.operation", op),
			attribute.String("docstore.path", path),
		),
	)
}

func end(span trace.Span, err error) {
	// A missing document is an expected outcome, not a span failure.
	if err != nil && !errors.Is(err, ErrNotFound) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func (t *traced) Get(ctx context.Context, ref DocRef) (Snapshot, error) {
	ctx, span := t.start(ctx, "get", ref.Path())
	snap, err := t.next.Get(ctx, ref)
	end(span, err)
	return snap, err
}

func (t *traced) GetAll(ctx context.Context, refs []DocRef) ([]Snapshot, error) {
	path := ""
	if len(refs) > 0 {
		path = refs[0].Coll.Path()
	}
	ctx, span := t.start(ctx, "get_all", path)
	span.SetAttributes(attribute.Int("docstore.refs", len(refs)))
	snaps, err := t.next.GetAll(ctx, refs)
	end(span, err)
	return snaps, err
}

func (t *traced) List(ctx context.Context, coll CollectionRef) ([]Snapshot, error) {
	ctx, span := t.start(ctx, "list", coll.Path())
	snaps, err := t.next.List(ctx, coll)
	end(span, err)
	return snaps, err
}

func (t *traced) Create(ctx context.Context, ref DocRef, data any) error {
	ctx, span := t.start(ctx, "create", ref.Path())
	err := t.next.Create(ctx, ref, data)
	end(span, err)
	return err
}

func (t *traced) Update(ctx context.Context, ref DocRef, fields map[string]any) error {
	ctx, span := t.start(ctx, "update", ref.Path())
	err := t.next.Update(ctx, ref, fields)
	end(span, err)
	return err
}

func (t *traced) Delete(ctx context.Context, ref DocRef) error {
	ctx, span := t.start(ctx, "delete", ref.Path())
	err := t.next.Delete(ctx, ref)
	end(span, err)
	return err
}

func (t *traced) Ping(ctx context.Context) error {
	ctx, span := t.start(ctx, "ping", "")
	err := t.next.Ping(ctx)
	end(span, err)
	return err
}
