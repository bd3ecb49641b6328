// Package multitracer provides a Tracer that can combine several tracers into one.
package multitracer

import (
	"github.com/pgfield/pgfield"
)

// Tracer can combine several tracers into one.
// You can use New to automatically split tracers by interface.
type Tracer struct {
	BuildTracers      []pgfield.BuildTracer
	ConversionTracers []pgfield.ConversionTracer
}

// New returns new Tracer from tracers with automatically split tracers by interface.
func New(tracers ...pgfield.BuildTracer) *Tracer {
	var t Tracer

	for i := range tracers {
		t.BuildTracers = append(t.BuildTracers, tracers[i])

		if conversionTracer, ok := tracers[i].(pgfield.ConversionTracer); ok {
			t.ConversionTracers = append(t.ConversionTracers, conversionTracer)
		}
	}

	return &t
}

func (t *Tracer) TraceBuild(res *pgfield.Result, data pgfield.TraceBuildData) {
	for i := range t.BuildTracers {
		t.BuildTracers[i].TraceBuild(res, data)
	}
}

func (t *Tracer) TraceConversion(f pgfield.Field, data pgfield.TraceConversionData) {
	for i := range t.ConversionTracers {
		t.ConversionTracers[i].TraceConversion(f, data)
	}
}
