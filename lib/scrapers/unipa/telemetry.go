package unipa

import "go.opentelemetry.io/otel"

var tracer = otel.Tracer("scrapers/unipa")
