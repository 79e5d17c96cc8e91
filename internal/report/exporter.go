package report

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"

	"github.com/holidaymoo/tripsheet/internal/itinerary"
	"github.com/holidaymoo/tripsheet/internal/schedule"
)

const tracerName = "github.com/holidaymoo/tripsheet/internal/report"

// Variant selects which workbook layout and timestamp policy an export
// uses.
type Variant string

const (
	// VariantDashboard is the analytics-heavy four sheet workbook with
	// timezone-agnostic timestamp handling.
	VariantDashboard Variant = "dashboard"

	// VariantCalendar is the three sheet workbook with strict timestamp
	// parsing and the fixed display shift.
	VariantCalendar Variant = "calendar"
)

// Valid reports whether v names a known variant.
func (v Variant) Valid() bool {
	return v == VariantDashboard || v == VariantCalendar
}

// Result is a finished workbook ready to hand back to the caller.
type Result struct {
	Filename string
	Data     []byte
}

// ExporterConfig holds configuration for the exporter.
type ExporterConfig struct {
	// Logger for export operations.
	Logger zerolog.Logger

	// Now supplies the current time for filenames and parse fallbacks.
	// Defaults to time.Now.
	Now func() time.Time
}

// Exporter turns an itinerary into an XLSX workbook. Each call builds an
// independent workbook, so a single Exporter is safe for concurrent use.
type Exporter struct {
	logger  zerolog.Logger
	now     func() time.Time
	metrics *exporterMetrics
}

// exporterMetrics holds the export-level instruments, alongside the
// generic HTTP ones the middleware records.
type exporterMetrics struct {
	exportTotal    metric.Int64Counter
	exportDuration metric.Float64Histogram
	workbookSize   metric.Int64Histogram
}

func newExporterMetrics() (*exporterMetrics, error) {
	meter := otel.Meter(tracerName)

	exportTotal, err := meter.Int64Counter(
		"export.total",
		metric.WithDescription("Total number of workbook exports"),
		metric.WithUnit("{export}"),
	)
	if err != nil {
		return nil, err
	}

	exportDuration, err := meter.Float64Histogram(
		"export.duration",
		metric.WithDescription("Duration of workbook builds in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	workbookSize, err := meter.Int64Histogram(
		"export.workbook.size",
		metric.WithDescription("Size of exported workbooks in bytes"),
		metric.WithUnit("By"),
	)
	if err != nil {
		return nil, err
	}

	return &exporterMetrics{
		exportTotal:    exportTotal,
		exportDuration: exportDuration,
		workbookSize:   workbookSize,
	}, nil
}

// NewExporter creates a new exporter.
func NewExporter(cfg ExporterConfig) *Exporter {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	metrics, err := newExporterMetrics()
	if err != nil {
		cfg.Logger.Warn().Err(err).Msg("export metrics disabled")
	}
	return &Exporter{logger: cfg.Logger, now: now, metrics: metrics}
}

// Export builds the workbook for the requested variant and returns its
// bytes together with the generated filename.
func (e *Exporter) Export(ctx context.Context, cal itinerary.Calendar, trip itinerary.Trip, variant Variant) (*Result, error) {
	_, span := otel.Tracer(tracerName).Start(ctx, "report.Export")
	defer span.End()
	span.SetAttributes(
		attribute.String("export.variant", string(variant)),
		attribute.Int("export.events", len(cal.Events)),
	)

	if !variant.Valid() {
		err := fmt.Errorf("unknown export variant %q", variant)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	started := e.now()
	f := excelize.NewFile()
	defer f.Close()

	var buildErr error
	switch variant {
	case VariantCalendar:
		buildErr = buildCalendarWorkbook(f, cal, trip, started)
	default:
		buildErr = buildDashboardWorkbook(f, cal, trip, started)
	}
	if buildErr != nil {
		span.SetStatus(codes.Error, buildErr.Error())
		return nil, fmt.Errorf("build %s workbook: %w", variant, buildErr)
	}

	// Drop the implicit default sheet so the workbook opens on the
	// calendar.
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("delete default sheet: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("serialize workbook: %w", err)
	}

	res := &Result{
		Filename: e.filename(cal, trip, variant, started),
		Data:     buf.Bytes(),
	}

	if e.metrics != nil {
		attrs := metric.WithAttributes(attribute.String("export.variant", string(variant)))
		e.metrics.exportTotal.Add(ctx, 1, attrs)
		e.metrics.exportDuration.Record(ctx, e.now().Sub(started).Seconds(), attrs)
		e.metrics.workbookSize.Record(ctx, int64(len(res.Data)), attrs)
	}

	e.logger.Info().
		Str("variant", string(variant)).
		Str("trip", trip.Name).
		Str("filename", res.Filename).
		Int("events", len(cal.Events)).
		Int("bytes", len(res.Data)).
		Dur("duration", e.now().Sub(started)).
		Msg("itinerary exported")

	return res, nil
}

func (e *Exporter) filename(cal itinerary.Calendar, trip itinerary.Trip, variant Variant, now time.Time) string {
	if variant == VariantCalendar {
		start := schedule.ExtractDate(trip.StartDate)
		end := schedule.ExtractDate(trip.EndDate)
		return calendarFilename(cal.Title, trip.Name, start, end)
	}
	return dashboardFilename(trip.Name, now)
}
