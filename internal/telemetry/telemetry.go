package telemetry

import (
	"go.uber.org/zap"

	"github.com/framehost/officebridge/internal/infrastructure/logging"
)

// Record category and type, fixed for all editor load telemetry.
const (
	Category = "office_online"
	Type     = "perf"
)

// Event names for the two load milestones.
const (
	EventIframeLoad = "IFRAME_LOAD_TIME"
	EventEditorLoad = "EDITOR_LOAD_TIME"

	// SlowSuffix is appended to the event name on the extra record emitted
	// for slow loads.
	SlowSuffix = "_slow"
)

// Record is one load-timing event.
type Record struct {
	EventName  string `json:"event_name"`
	LoadTimeMs int64  `json:"load_time"`
	ServiceID  string `json:"service_id"`
	AppType    string `json:"office_online_app_type"`
}

// Slow returns a copy of the record with the slow-load event name.
func (r Record) Slow() Record {
	r.EventName = r.EventName + SlowSuffix
	return r
}

// Emitter delivers records to a telemetry sink. Implementations must not
// block the caller; failures stay invisible to the bridge.
type Emitter interface {
	Emit(r Record)
}

// ZapEmitter writes records as structured log events.
type ZapEmitter struct {
	logger *logging.Logger
}

// NewZapEmitter creates an emitter backed by the given logger.
func NewZapEmitter(logger *logging.Logger) *ZapEmitter {
	return &ZapEmitter{logger: logger}
}

// Emit writes one record.
func (e *ZapEmitter) Emit(r Record) {
	e.logger.Info("telemetry",
		zap.String("category", Category),
		zap.String("type", Type),
		zap.String("event_name", r.EventName),
		zap.Int64("load_time", r.LoadTimeMs),
		zap.String("service_id", r.ServiceID),
		zap.String("office_online_app_type", r.AppType),
	)
}

// Multi fans one record out to several sinks.
type Multi []Emitter

// Emit delivers the record to every sink in order.
func (m Multi) Emit(r Record) {
	for _, e := range m {
		e.Emit(r)
	}
}

// Nop discards all records.
type Nop struct{}

// Emit discards the record.
func (Nop) Emit(Record) {}
