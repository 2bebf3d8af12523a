package otel

import (
	"go.opentelemetry.io/otel"

	"github.com/jithpillai/zstore/internal/common/constants"
)

var Tracer = otel.Tracer(constants.AppOrderService)
