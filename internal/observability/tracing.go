package observability

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// Tracer returns a tracer for the given name
func Tracer(name string) trace.Tracer {
	return otel.Tracer(name)
}

// StartSpan starts a new span from context
func StartSpan(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	return otel.Tracer(instrumentationName).Start(ctx, name, opts...)
}

// StartDBSpan starts a span for database operations
func StartDBSpan(ctx context.Context, operation, table string) (context.Context, trace.Span) {
	return StartSpan(ctx, fmt.Sprintf("DB %s %s", operation, table),
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("db.system", "postgresql"),
			attribute.String("db.operation", operation),
			attribute.String("db.sql.table", table),
		),
	)
}

// StartServiceSpan starts a span for service operations
func StartServiceSpan(ctx context.Context, service, operation string) (context.Context, trace.Span) {
	return StartSpan(ctx, fmt.Sprintf("%s.%s", service, operation),
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("service.component", service),
			attribute.String("service.operation", operation),
		),
	)
}

// RecordError records an error on the span
func RecordError(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
}

// SetSuccess marks the span as successful
func SetSuccess(span trace.Span) {
	span.SetStatus(codes.Ok, "")
}

// AddEvent adds an event to the span
func AddEvent(span trace.Span, name string, attrs ...attribute.KeyValue) {
	span.AddEvent(name, trace.WithAttributes(attrs...))
}

// DatabaseMetrics holds database-related metrics
type DatabaseMetrics struct {
	queryDuration   metric.Float64Histogram
	queryCount      metric.Int64Counter
	errorCount      metric.Int64Counter
	connectionCount metric.Int64UpDownCounter
}

// NewDatabaseMetrics creates database metrics instruments
func NewDatabaseMetrics() (*DatabaseMetrics, error) {
	meter := otel.Meter(instrumentationName)

	queryDuration, err := meter.Float64Histogram(
		"db.query.duration",
		metric.WithDescription("Database query duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	queryCount, err := meter.Int64Counter(
		"db.query.count",
		metric.WithDescription("Total number of database queries"),
		metric.WithUnit("{queries}"),
	)
	if err != nil {
		return nil, err
	}

	errorCount, err := meter.Int64Counter(
		"db.error.count",
		metric.WithDescription("Total number of database errors"),
		metric.WithUnit("{errors}"),
	)
	if err != nil {
		return nil, err
	}

	connectionCount, err := meter.Int64UpDownCounter(
		"db.connection.count",
		metric.WithDescription("Number of active database connections"),
		metric.WithUnit("{connections}"),
	)
	if err != nil {
		return nil, err
	}

	return &DatabaseMetrics{
		queryDuration:   queryDuration,
		queryCount:      queryCount,
		errorCount:      errorCount,
		connectionCount: connectionCount,
	}, nil
}

// RecordQuery records a database query metrics
func (m *DatabaseMetrics) RecordQuery(ctx context.Context, operation, table string, duration time.Duration, err error) {
	attrs := []attribute.KeyValue{
		attribute.String("db.operation", operation),
		attribute.String("db.sql.table", table),
	}

	m.queryCount.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.queryDuration.Record(ctx, float64(duration.Milliseconds()), metric.WithAttributes(attrs...))

	if err != nil {
		m.errorCount.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
}

// TraceQuery wraps a query call with a client span and duration attribute
func TraceQuery(ctx context.Context, dbSystem, operation, query string, fn func(ctx context.Context) error) {
	ctx, span := StartSpan(ctx, "DB "+operation,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("db.system", dbSystem),
			attribute.String("db.statement", TruncateQuery(query)),
		),
	)
	defer span.End()

	start := time.Now()
	err := fn(ctx)
	duration := time.Since(start)

	if err != nil && err != sql.ErrNoRows {
		RecordError(span, err)
	} else {
		SetSuccess(span)
	}

	span.SetAttributes(attribute.Int64("db.query_duration_ms", duration.Milliseconds()))
}

// TruncateQuery bounds a SQL statement for span attributes
func TruncateQuery(query string) string {
	if len(query) > 500 {
		return query[:500] + "..."
	}
	return query
}

// BusinessMetrics holds custom business metrics
type BusinessMetrics struct {
	mediaUploads metric.Int64Counter
	mediaServed  metric.Int64Counter
	feedPages    metric.Int64Counter
	authAttempts metric.Int64Counter
	storageUsed  metric.Int64UpDownCounter
	liveClients  metric.Int64UpDownCounter
}

// NewBusinessMetrics creates business metrics instruments
func NewBusinessMetrics() (*BusinessMetrics, error) {
	meter := otel.Meter(instrumentationName)

	mediaUploads, err := meter.Int64Counter(
		"guestlens.media.uploads",
		metric.WithDescription("Total number of media uploads"),
		metric.WithUnit("{uploads}"),
	)
	if err != nil {
		return nil, err
	}

	mediaServed, err := meter.Int64Counter(
		"guestlens.media.served",
		metric.WithDescription("Total number of media files served"),
		metric.WithUnit("{files}"),
	)
	if err != nil {
		return nil, err
	}

	feedPages, err := meter.Int64Counter(
		"guestlens.feed.pages",
		metric.WithDescription("Total number of feed pages served"),
		metric.WithUnit("{pages}"),
	)
	if err != nil {
		return nil, err
	}

	authAttempts, err := meter.Int64Counter(
		"guestlens.gallery.auth_attempts",
		metric.WithDescription("Total number of gallery authentication attempts"),
		metric.WithUnit("{attempts}"),
	)
	if err != nil {
		return nil, err
	}

	storageUsed, err := meter.Int64UpDownCounter(
		"guestlens.storage.bytes",
		metric.WithDescription("Storage used in bytes"),
		metric.WithUnit("By"),
	)
	if err != nil {
		return nil, err
	}

	liveClients, err := meter.Int64UpDownCounter(
		"guestlens.realtime.clients",
		metric.WithDescription("Number of connected realtime clients"),
		metric.WithUnit("{clients}"),
	)
	if err != nil {
		return nil, err
	}

	return &BusinessMetrics{
		mediaUploads: mediaUploads,
		mediaServed:  mediaServed,
		feedPages:    feedPages,
		authAttempts: authAttempts,
		storageUsed:  storageUsed,
		liveClients:  liveClients,
	}, nil
}

// RecordMediaUpload records a media upload
func (m *BusinessMetrics) RecordMediaUpload(ctx context.Context, galleryID string, fileSize int64, success bool) {
	attrs := []attribute.KeyValue{
		GalleryID(galleryID),
		attribute.Bool("success", success),
	}
	m.mediaUploads.Add(ctx, 1, metric.WithAttributes(attrs...))
	if success {
		m.storageUsed.Add(ctx, fileSize)
	}
}

// RecordMediaServed records a media file download
func (m *BusinessMetrics) RecordMediaServed(ctx context.Context, galleryID string) {
	m.mediaServed.Add(ctx, 1, metric.WithAttributes(GalleryID(galleryID)))
}

// RecordFeedPage records a served feed page
func (m *BusinessMetrics) RecordFeedPage(ctx context.Context, galleryID string, itemCount int, initial bool) {
	attrs := []attribute.KeyValue{
		GalleryID(galleryID),
		attribute.Int("item_count", itemCount),
		attribute.Bool("initial", initial),
	}
	m.feedPages.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// RecordAuthAttempt records a gallery authentication attempt
func (m *BusinessMetrics) RecordAuthAttempt(ctx context.Context, galleryID string, success bool) {
	attrs := []attribute.KeyValue{
		GalleryID(galleryID),
		attribute.Bool("success", success),
	}
	m.authAttempts.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// ClientConnected adjusts the connected realtime client gauge
func (m *BusinessMetrics) ClientConnected(ctx context.Context, delta int64) {
	m.liveClients.Add(ctx, delta)
}
