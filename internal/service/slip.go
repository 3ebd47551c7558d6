package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"sicoobslip/internal/metrics"
	"sicoobslip/internal/model"
	"sicoobslip/internal/sicoob"
)

const tracerName = "sicoobslip/internal/service"

// SlipService defines the use cases around Sicoob payment slips.
type SlipService interface {
	// Issue derives the document identifier and free field for an agreement and
	// returns the resulting slip. Nothing on the slip is recomputed afterwards.
	Issue(ctx context.Context, agreement model.Agreement) (*model.Slip, error)

	// Parse splits a free field into its parts without validating check digits.
	Parse(ctx context.Context, freeField string) (*sicoob.Fields, error)

	// Verify checks layout, marker and both check digits of a free field.
	Verify(ctx context.Context, freeField string) error
}

// Option customizes a SlipService.
type Option func(*slipService)

// WithTracer replaces the tracer taken from the global provider.
func WithTracer(t trace.Tracer) Option {
	return func(s *slipService) { s.tracer = t }
}

// WithRegistered sets the registered flag stamped on issued slips.
func WithRegistered(registered bool) Option {
	return func(s *slipService) { s.registered = registered }
}

// WithClock replaces time.Now for CreatedAt.
func WithClock(now func() time.Time) Option {
	return func(s *slipService) { s.now = now }
}

// slipService is a concrete implementation of SlipService.
type slipService struct {
	logger     *zap.Logger
	metrics    *metrics.CodecMetrics
	tracer     trace.Tracer
	registered bool
	now        func() time.Time
}

// NewSlipService constructs a new SlipService. m may be nil to run without metrics.
func NewSlipService(logger *zap.Logger, m *metrics.CodecMetrics, opts ...Option) SlipService {
	s := &slipService{
		logger:     logger,
		metrics:    m,
		tracer:     otel.Tracer(tracerName),
		registered: true,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *slipService) Issue(ctx context.Context, agreement model.Agreement) (*model.Slip, error) {
	_, span := s.tracer.Start(ctx, "SlipService.Issue", trace.WithAttributes(
		attribute.Int("sicoob.branch", agreement.Branch),
		attribute.Int("sicoob.member_code", agreement.MemberCode),
		attribute.Int("sicoob.sequence", agreement.Sequence),
	))
	defer span.End()

	id, err := sicoob.GenerateIdentifier(agreement.Sequence)
	if err != nil {
		return nil, s.fail(span, metrics.OpIssue, "generate identifier", err)
	}
	freeField, err := sicoob.Encode(agreement, id)
	if err != nil {
		return nil, s.fail(span, metrics.OpIssue, "encode free field", err)
	}
	branchMember, err := sicoob.BranchMember(agreement)
	if err != nil {
		return nil, s.fail(span, metrics.OpIssue, "branch member", err)
	}

	slip := &model.Slip{
		ID:                uuid.NewString(),
		BankCode:          model.BankCode,
		PaymentPlace:      model.PaymentPlace,
		Registered:        s.registered,
		Agreement:         agreement,
		BranchMember:      branchMember,
		Identifier:        id.String(),
		IdentifierDisplay: id.Display(),
		FreeField:         freeField,
		CreatedAt:         s.now().UTC(),
	}

	span.SetAttributes(attribute.String("sicoob.free_field", freeField))
	s.metrics.Observe(metrics.OpIssue, metrics.ResultOK)
	s.logger.Debug("slip issued",
		zap.String("id", slip.ID),
		zap.String("identifier", slip.Identifier),
		zap.String("free_field", slip.FreeField),
	)
	return slip, nil
}

func (s *slipService) Parse(ctx context.Context, freeField string) (*sicoob.Fields, error) {
	_, span := s.tracer.Start(ctx, "SlipService.Parse")
	defer span.End()

	fields, err := sicoob.Decode(freeField)
	if err != nil {
		return nil, s.fail(span, metrics.OpParse, "decode free field", err)
	}

	s.metrics.Observe(metrics.OpParse, metrics.ResultOK)
	s.logger.Debug("free field parsed", zap.String("identifier", fields.Identifier))
	return &fields, nil
}

func (s *slipService) Verify(ctx context.Context, freeField string) error {
	_, span := s.tracer.Start(ctx, "SlipService.Verify")
	defer span.End()

	if err := sicoob.Verify(freeField); err != nil {
		return s.fail(span, metrics.OpVerify, "verify free field", err)
	}

	s.metrics.Observe(metrics.OpVerify, metrics.ResultOK)
	return nil
}

// fail records err on the span, the metrics and the log, and returns it wrapped with what.
func (s *slipService) fail(span trace.Span, op, what string, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	s.metrics.Observe(op, resultFor(err))
	s.logger.Warn("codec operation failed",
		zap.String("operation", op),
		zap.Error(err),
	)
	return fmt.Errorf("%s: %w", what, err)
}

func resultFor(err error) string {
	switch {
	case errors.Is(err, sicoob.ErrFieldOverflow):
		return metrics.ResultFieldOverflow
	case errors.Is(err, sicoob.ErrMalformedFreeField):
		return metrics.ResultMalformed
	case errors.Is(err, sicoob.ErrChecksumMismatch):
		return metrics.ResultChecksumMismatch
	default:
		return metrics.ResultError
	}
}
