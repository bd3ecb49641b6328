package pgfield

import (
	"reflect"
	"time"
)

// BuildTracer traces the construction of Results. A tracer passed to WithTracer may also implement ConversionTracer.
//
// Building a Result and reading its fields never block, so tracers receive no context.
type BuildTracer interface {
	// TraceBuild is called when a ResultBuilder finishes. res is nil if data.Err is set.
	TraceBuild(res *Result, data TraceBuildData)
}

type TraceBuildData struct {
	// Duration is the time from the first description or row to Build.
	Duration   time.Duration
	Rows       int
	Columns    int
	Bytes      int
	CommandTag string
	Err        error
}

// ConversionTracer traces typed reads of fields.
type ConversionTracer interface {
	// TraceConversion is called after every conversion attempted through Field.Scan and the functions built on it.
	TraceConversion(f Field, data TraceConversionData)
}

type TraceConversionData struct {
	Target   reflect.Type
	Null     bool
	Assigned bool
	Err      error
}
