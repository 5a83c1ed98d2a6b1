package observability

import (
	"context"
	"net/http"

	"github.com/aws/aws-xray-sdk-go/xray"
)

// Tracer opens X-Ray segments for requests and decorates the current one.
// A disabled tracer is a no-op.
type Tracer struct {
	serviceName string
	enabled     bool
}

// NewTracer creates a new tracer instance
func NewTracer(serviceName string, enabled bool) *Tracer {
	return &Tracer{serviceName: serviceName, enabled: enabled}
}

// Enabled reports whether requests are traced
func (t *Tracer) Enabled() bool {
	return t.enabled
}

// Middleware opens one segment per HTTP request, named after the service
func (t *Tracer) Middleware(next http.Handler) http.Handler {
	if !t.enabled {
		return next
	}
	return xray.Handler(xray.NewFixedSegmentNamer(t.serviceName), next)
}

// AddMetadata attaches unindexed data to the current segment
func (t *Tracer) AddMetadata(ctx context.Context, key string, value interface{}) {
	onSegment(ctx, func(seg *xray.Segment) error { return seg.AddMetadata(key, value) })
}

// AddAnnotation attaches a searchable key to the current segment
func (t *Tracer) AddAnnotation(ctx context.Context, key string, value string) {
	onSegment(ctx, func(seg *xray.Segment) error { return seg.AddAnnotation(key, value) })
}

// RecordError marks the current segment as failed
func (t *Tracer) RecordError(ctx context.Context, err error) {
	onSegment(ctx, func(seg *xray.Segment) error { return seg.AddError(err) })
}

// onSegment runs fn against the segment in ctx, if any. Failures to decorate
// a segment never affect the request.
func onSegment(ctx context.Context, fn func(seg *xray.Segment) error) {
	if seg := xray.GetSegment(ctx); seg != nil {
		_ = fn(seg)
	}
}
