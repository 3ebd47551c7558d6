package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"sicoobslip/internal/metrics"
	"sicoobslip/internal/model"
	"sicoobslip/internal/sicoob"
)

type harness struct {
	svc      SlipService
	reg      *prometheus.Registry
	recorder *tracetest.SpanRecorder
	logs     *observer.ObservedLogs
}

func newHarness(t *testing.T, opts ...Option) *harness {
	t.Helper()

	reg := prometheus.NewRegistry()
	m, err := metrics.NewCodecMetrics(reg)
	require.NoError(t, err)

	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	core, logs := observer.New(zapcore.DebugLevel)

	opts = append([]Option{WithTracer(tp.Tracer(tracerName))}, opts...)
	return &harness{
		svc:      NewSlipService(zap.New(core), m, opts...),
		reg:      reg,
		recorder: recorder,
		logs:     logs,
	}
}

func (h *harness) count(op, result string) int {
	mfs, _ := h.reg.Gather()
	for _, mf := range mfs {
		for _, metric := range mf.GetMetric() {
			labels := map[string]string{}
			for _, lp := range metric.GetLabel() {
				labels[lp.GetName()] = lp.GetValue()
			}
			if labels["operation"] == op && labels["result"] == result {
				return int(metric.GetCounter().GetValue())
			}
		}
	}
	return 0
}

func TestSlipService_Issue(t *testing.T) {
	ctx := context.Background()
	fixed := time.Date(2024, 3, 15, 10, 0, 0, 0, time.FixedZone("BRT", -3*60*60))
	h := newHarness(t, WithClock(func() time.Time { return fixed }), WithRegistered(false))

	agreement := model.Agreement{Branch: 85, MemberCode: 841, Sequence: 777}
	slip, err := h.svc.Issue(ctx, agreement)
	require.NoError(t, err)

	_, err = uuid.Parse(slip.ID)
	assert.NoError(t, err)
	assert.Equal(t, model.BankCode, slip.BankCode)
	assert.Equal(t, model.PaymentPlace, slip.PaymentPlace)
	assert.False(t, slip.Registered)
	assert.Equal(t, agreement, slip.Agreement)
	assert.Equal(t, "0085/00841", slip.BranchMember)
	assert.Equal(t, "00007773", slip.Identifier)
	assert.Equal(t, "0000777-3", slip.IdentifierDisplay)
	assert.Equal(t, "0085008410000777310", slip.FreeField)
	assert.Equal(t, fixed.UTC(), slip.CreatedAt)

	assert.Equal(t, 1, h.count(metrics.OpIssue, metrics.ResultOK))

	spans := h.recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "SlipService.Issue", spans[0].Name())
	assert.Equal(t, codes.Unset, spans[0].Status().Code)

	assert.Equal(t, 1, h.logs.FilterMessage("slip issued").Len())
}

func TestSlipService_Issue_SnapshotsAgreement(t *testing.T) {
	h := newHarness(t)

	agreement := model.Agreement{Branch: 85, MemberCode: 841, Sequence: 777}
	slip, err := h.svc.Issue(context.Background(), agreement)
	require.NoError(t, err)

	agreement.Branch = 1234
	assert.Equal(t, 85, slip.Agreement.Branch)
	assert.Equal(t, "0085008410000777310", slip.FreeField)
}

func TestSlipService_Issue_Deterministic(t *testing.T) {
	h := newHarness(t)
	agreement := model.Agreement{Branch: 3069, MemberCode: 54321, Sequence: 4000123}

	first, err := h.svc.Issue(context.Background(), agreement)
	require.NoError(t, err)
	second, err := h.svc.Issue(context.Background(), agreement)
	require.NoError(t, err)

	assert.Equal(t, first.FreeField, second.FreeField)
	assert.Equal(t, first.Identifier, second.Identifier)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, 2, h.count(metrics.OpIssue, metrics.ResultOK))
}

func TestSlipService_Issue_Errors(t *testing.T) {
	tests := []struct {
		name      string
		agreement model.Agreement
		wantMsg   string
	}{
		{
			name:      "sequence overflow",
			agreement: model.Agreement{Branch: 85, MemberCode: 841, Sequence: 10000000},
			wantMsg:   "generate identifier",
		},
		{
			name:      "branch overflow",
			agreement: model.Agreement{Branch: 10000, MemberCode: 841, Sequence: 1},
			wantMsg:   "encode free field",
		},
		{
			name:      "member code overflow",
			agreement: model.Agreement{Branch: 85, MemberCode: 100000, Sequence: 1},
			wantMsg:   "encode free field",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)

			slip, err := h.svc.Issue(context.Background(), tt.agreement)
			assert.Nil(t, slip)
			assert.ErrorIs(t, err, sicoob.ErrFieldOverflow)
			assert.Contains(t, err.Error(), tt.wantMsg)

			assert.Equal(t, 1, h.count(metrics.OpIssue, metrics.ResultFieldOverflow))
			assert.Equal(t, 0, h.count(metrics.OpIssue, metrics.ResultOK))

			spans := h.recorder.Ended()
			require.Len(t, spans, 1)
			assert.Equal(t, codes.Error, spans[0].Status().Code)

			assert.Equal(t, 1, h.logs.FilterMessage("codec operation failed").Len())
		})
	}
}

func TestSlipService_Parse(t *testing.T) {
	h := newHarness(t)

	fields, err := h.svc.Parse(context.Background(), "0085008410000777310")
	require.NoError(t, err)
	assert.Equal(t, "0085", fields.Branch)
	assert.Equal(t, "00841", fields.MemberCode)
	assert.Equal(t, "00007773", fields.Identifier)
	assert.Equal(t, 1, h.count(metrics.OpParse, metrics.ResultOK))

	fields, err = h.svc.Parse(context.Background(), "0085008410000777")
	assert.Nil(t, fields)
	assert.ErrorIs(t, err, sicoob.ErrMalformedFreeField)
	assert.Equal(t, 1, h.count(metrics.OpParse, metrics.ResultMalformed))
}

func TestSlipService_Verify(t *testing.T) {
	tests := []struct {
		name       string
		freeField  string
		wantErr    error
		wantResult string
	}{
		{name: "valid", freeField: "0085008410000777310", wantResult: metrics.ResultOK},
		{name: "too short", freeField: "00850084100007773", wantErr: sicoob.ErrMalformedFreeField, wantResult: metrics.ResultMalformed},
		{name: "checksum corrupted", freeField: "0085008410000777311", wantErr: sicoob.ErrChecksumMismatch, wantResult: metrics.ResultChecksumMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)

			err := h.svc.Verify(context.Background(), tt.freeField)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, 1, h.count(metrics.OpVerify, tt.wantResult))
		})
	}
}

func TestSlipService_NilMetrics(t *testing.T) {
	svc := NewSlipService(zap.NewNop(), nil)
	slip, err := svc.Issue(context.Background(), model.Agreement{Branch: 1, MemberCode: 2, Sequence: 3})
	require.NoError(t, err)
	assert.NoError(t, svc.Verify(context.Background(), slip.FreeField))
}

func TestResultFor(t *testing.T) {
	assert.Equal(t, metrics.ResultError, resultFor(assert.AnError))
	assert.Equal(t, metrics.ResultFieldOverflow, resultFor(&sicoob.FieldError{Field: "branch"}))
}

func TestCodecMetricsCounter(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := metrics.NewCodecMetrics(reg)
	require.NoError(t, err)

	svc := NewSlipService(zap.NewNop(), m)
	_, err = svc.Parse(context.Background(), "")
	require.Error(t, err)

	n, err := testutil.GatherAndCount(reg, "sicoob_codec_operations_total")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
