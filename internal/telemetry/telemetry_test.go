package telemetry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/framehost/officebridge/internal/infrastructure/logging"
)

type captureEmitter struct {
	records []Record
}

func (c *captureEmitter) Emit(r Record) {
	c.records = append(c.records, r)
}

func TestRecordSlow(t *testing.T) {
	r := Record{EventName: EventEditorLoad, LoadTimeMs: 12000}
	slow := r.Slow()

	assert.Equal(t, "EDITOR_LOAD_TIME_slow", slow.EventName)
	assert.Equal(t, int64(12000), slow.LoadTimeMs)
	// Original record is untouched.
	assert.Equal(t, EventEditorLoad, r.EventName)
}

func TestMultiFansOut(t *testing.T) {
	a := &captureEmitter{}
	b := &captureEmitter{}

	Multi{a, b}.Emit(Record{EventName: EventIframeLoad})

	require.Len(t, a.records, 1)
	require.Len(t, b.records, 1)
	assert.Equal(t, EventIframeLoad, a.records[0].EventName)
}

func TestZapEmitterFields(t *testing.T) {
	core, observed := observer.New(zap.InfoLevel)
	logger := &logging.Logger{Logger: zap.New(core)}

	NewZapEmitter(logger).Emit(Record{
		EventName:  EventIframeLoad,
		LoadTimeMs: 250,
		ServiceID:  "svc-1",
		AppType:    "excel",
	})

	entries := observed.All()
	require.Len(t, entries, 1)

	fields := entries[0].ContextMap()
	assert.Equal(t, Category, fields["category"])
	assert.Equal(t, Type, fields["type"])
	assert.Equal(t, EventIframeLoad, fields["event_name"])
	assert.EqualValues(t, 250, fields["load_time"])
	assert.Equal(t, "svc-1", fields["service_id"])
	assert.Equal(t, "excel", fields["office_online_app_type"])
}

func TestNopEmitter(t *testing.T) {
	assert.NotPanics(t, func() { Nop{}.Emit(Record{}) })
}
