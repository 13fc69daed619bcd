// Copyright The corefx Authors
// SPDX-License-Identifier: Apache-2.0

package channel // import "github.com/OzieGamma/corefx/channel"

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	noopmetric "go.opentelemetry.io/otel/metric/noop"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

const scopeName = "github.com/OzieGamma/corefx/channel"

// TelemetrySettings carries the telemetry backends used by NewObservable.
// Zero-value fields fall back to no-op implementations.
type TelemetrySettings struct {
	// Logger receives lifecycle events (completion, faults).
	Logger *zap.Logger
	// MeterProvider is used to create the channel's instruments.
	MeterProvider metric.MeterProvider
	// Name identifies this channel in logs and metric attributes.
	Name string
}

// channelTelemetry holds the instruments shared by both decorated facades.
type channelTelemetry struct {
	logger        *zap.Logger
	attrs         metric.MeasurementOption
	writtenItems  metric.Int64Counter
	rejectedItems metric.Int64Counter
	readItems     metric.Int64Counter
	failedReads   metric.Int64Counter
}

func newChannelTelemetry(set TelemetrySettings, bufferedItems func() int64) (*channelTelemetry, error) {
	logger := set.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	mp := set.MeterProvider
	if mp == nil {
		mp = noopmetric.NewMeterProvider()
	}
	meter := mp.Meter(scopeName)

	ct := &channelTelemetry{
		logger: logger.With(zap.String("channel", set.Name)),
		attrs:  metric.WithAttributeSet(attribute.NewSet(attribute.String("channel", set.Name))),
	}

	var errs, err error
	ct.writtenItems, err = meter.Int64Counter(
		"channel_written_items",
		metric.WithDescription("Number of items accepted by the writer facade."),
		metric.WithUnit("1"))
	errs = multierr.Append(errs, err)

	ct.rejectedItems, err = meter.Int64Counter(
		"channel_rejected_items",
		metric.WithDescription("Number of writes refused because the channel was completed."),
		metric.WithUnit("1"))
	errs = multierr.Append(errs, err)

	ct.readItems, err = meter.Int64Counter(
		"channel_read_items",
		metric.WithDescription("Number of items returned to readers."),
		metric.WithUnit("1"))
	errs = multierr.Append(errs, err)

	ct.failedReads, err = meter.Int64Counter(
		"channel_failed_reads",
		metric.WithDescription("Number of blocking reads that ended in an error."),
		metric.WithUnit("1"))
	errs = multierr.Append(errs, err)

	_, err = meter.Int64ObservableGauge(
		"channel_buffered_items",
		metric.WithDescription("Number of items currently buffered."),
		metric.WithUnit("1"),
		metric.WithInt64Callback(func(_ context.Context, obs metric.Int64Observer) error {
			obs.Observe(bufferedItems(), ct.attrs)
			return nil
		}))
	errs = multierr.Append(errs, err)

	return ct, errs
}

// NewObservable decorates both facades of a channel with telemetry: item
// counters, a buffered-length gauge and lifecycle logging. The decorated
// facades delegate all behavior to the originals and add no consistency
// guarantees of their own.
func NewObservable[T any](r Reader[T], w Writer[T], set TelemetrySettings) (Reader[T], Writer[T], error) {
	ct, err := newChannelTelemetry(set, func() int64 { return int64(r.Len()) })
	if err != nil {
		return nil, nil, err
	}
	return &obsReader[T]{Reader: r, tel: ct}, &obsWriter[T]{Writer: w, tel: ct}, nil
}

type obsReader[T any] struct {
	Reader[T]
	tel *channelTelemetry
}

func (r *obsReader[T]) TryRead() (T, bool) {
	item, ok := r.Reader.TryRead()
	if ok {
		r.tel.readItems.Add(context.Background(), 1, r.tel.attrs)
	}
	return item, ok
}

func (r *obsReader[T]) Read(ctx context.Context) (T, error) {
	item, err := r.Reader.Read(ctx)
	if err != nil {
		r.tel.failedReads.Add(ctx, 1, r.tel.attrs)
		return item, err
	}
	r.tel.readItems.Add(ctx, 1, r.tel.attrs)
	return item, nil
}

type obsWriter[T any] struct {
	Writer[T]
	tel *channelTelemetry
}

func (w *obsWriter[T]) TryWrite(item T) bool {
	ok := w.Writer.TryWrite(item)
	if ok {
		w.tel.writtenItems.Add(context.Background(), 1, w.tel.attrs)
	} else {
		w.tel.rejectedItems.Add(context.Background(), 1, w.tel.attrs)
	}
	return ok
}

func (w *obsWriter[T]) Write(ctx context.Context, item T) error {
	err := w.Writer.Write(ctx, item)
	if err != nil {
		w.tel.rejectedItems.Add(ctx, 1, w.tel.attrs)
		return err
	}
	w.tel.writtenItems.Add(ctx, 1, w.tel.attrs)
	return nil
}

func (w *obsWriter[T]) TryComplete(err error) bool {
	transitioned := w.Writer.TryComplete(err)
	if transitioned {
		if err != nil {
			w.tel.logger.Warn("channel completed with fault", zap.Error(err))
		} else {
			w.tel.logger.Debug("channel completed")
		}
	}
	return transitioned
}
