package client

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/eim-dev/eim-client/pkg/protocol"
)

// Default tracer name for client spans.
const defaultTracerName = "eim-client"

// startRequestSpan opens the span that covers one correlated command.
// The tracer comes from the global provider, so spans are no-ops until the
// program installs one with otel.SetTracerProvider.
func (c *Client) startRequestSpan(ctx context.Context, op protocol.Serverbound, replyID uint32) (context.Context, trace.Span) {
	return otel.Tracer(c.cfg.TracerName).Start(ctx, "eim."+op.String(),
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("eim.client_id", c.id),
			attribute.String("eim.opcode", op.String()),
			attribute.Int64("eim.reply_id", int64(replyID)),
		),
	)
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}
