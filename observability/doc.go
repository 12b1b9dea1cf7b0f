// Package observability wires OpenTelemetry for applications that embed the
// Billplz client.
//
// The transport records its spans and metrics through the global OTel
// providers (or providers passed as options). Applications that do not run
// their own OTel setup can install OTLP/HTTP exporters here:
//
//	tp, err := observability.InitTracer(ctx, observability.DefaultTracerConfig("checkout"))
//	defer tp.Shutdown(ctx)
//
//	mp, err := observability.InitMeter(ctx, observability.DefaultMeterConfig("checkout"))
//	defer mp.Shutdown(ctx)
package observability
