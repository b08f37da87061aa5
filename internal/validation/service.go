package validation

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"riskgate/internal/validation/config"
	"riskgate/internal/validation/metrics"
	"riskgate/internal/validation/ports"
)

// Type aliases for interfaces from the ports package. This allows external
// packages to use these types without importing ports directly.
type (
	AccountService    = ports.AccountService
	HistoryStore      = ports.HistoryStore
	HistoryEntry      = ports.HistoryEntry
	LoanService       = ports.LoanService
	ComplianceLists   = ports.ComplianceLists
	ReputationService = ports.ReputationService
	BehaviorService   = ports.BehaviorService
	BehaviorSignal    = ports.BehaviorSignal
	AuditPublisher    = ports.AuditPublisher
)

var tracer = otel.Tracer("riskgate/validation")

// Service is the validation orchestrator. It runs all six check categories
// unconditionally on every call, scores and classifies the result on the
// final context, and appends the attempt to the history store even when the
// transaction is rejected, so velocity limiting sees attempted volume.
type Service struct {
	cfg        *config.Config
	accounts   AccountService
	history    HistoryStore
	loans      LoanService
	compliance ComplianceLists
	reputation ReputationService
	behavior   BehaviorService

	audit     AuditPublisher
	logger    *slog.Logger
	metrics   *metrics.Metrics
	batchHook BatchHook
}

// Option configures the Service.
type Option func(*Service)

// WithLogger sets a structured logger for verdict and failure reporting.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithMetrics sets the metrics collector.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithAuditPublisher sets the verdict audit sink. Publishing is fail-open:
// an audit failure is logged and counted but never changes the verdict.
func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(s *Service) {
		s.audit = publisher
	}
}

// WithBatchHook sets the batch pre-processing hook; see BatchHook.
func WithBatchHook(hook BatchHook) Option {
	return func(s *Service) {
		s.batchHook = hook
	}
}

// New constructs the orchestrator. Configuration is validated once here;
// every collaborator is required.
func New(
	cfg *config.Config,
	accounts AccountService,
	history HistoryStore,
	loans LoanService,
	compliance ComplianceLists,
	reputation ReputationService,
	behavior BehaviorService,
	opts ...Option,
) (*Service, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if accounts == nil {
		return nil, errors.New("account service is required")
	}
	if history == nil {
		return nil, errors.New("history store is required")
	}
	if loans == nil {
		return nil, errors.New("loan service is required")
	}
	if compliance == nil {
		return nil, errors.New("compliance lists are required")
	}
	if reputation == nil {
		return nil, errors.New("reputation service is required")
	}
	if behavior == nil {
		return nil, errors.New("behavior service is required")
	}

	svc := &Service{
		cfg:        cfg,
		accounts:   accounts,
		history:    history,
		loans:      loans,
		compliance: compliance,
		reputation: reputation,
		behavior:   behavior,
	}

	for _, opt := range opts {
		opt(svc)
	}

	return svc, nil
}

// Validate evaluates a single transaction against all six check categories
// and returns the full diagnostic verdict. The error return covers only
// invocation misuse; a failed validation is a normal result.
func (s *Service) Validate(ctx context.Context, req *TransactionRequest, vctx *ValidationContext) (*ValidationResult, error) {
	if req == nil {
		return nil, errors.New("transaction request is required")
	}
	if vctx == nil {
		vctx = &ValidationContext{}
	}
	if req.TransactionID == "" {
		// Stable id before anything else: history entries and batch result
		// keys depend on it.
		withID := *req
		withID.TransactionID = uuid.NewString()
		req = &withID
	}

	ctx, span := tracer.Start(ctx, "validation.Validate", trace.WithAttributes(
		attribute.String("transaction.id", req.TransactionID),
		attribute.String("transaction.type", req.Type.String()),
	))
	defer span.End()

	start := time.Now()

	// Every category runs on every call. The engine produces a complete
	// diagnostic report for compliance review, not a fail-fast verdict.
	amount := s.checkAmount(ctx, req)
	accounts := s.checkAccounts(ctx, req)
	velocity := s.checkVelocity(ctx, req, vctx)
	business := s.checkBusinessRules(ctx, req)
	aml := s.checkAML(ctx, req, vctx)
	fraud := s.checkFraud(ctx, req, vctx)

	result := &ValidationResult{
		TransactionID: req.TransactionID,
		Checks: ValidationChecks{
			AmountValid:        amount.passed(),
			AccountsValid:      accounts.passed(),
			VelocityValid:      velocity.passed(),
			BusinessRulesValid: business.passed(),
			AMLValid:           aml.passed(),
			FraudValid:         fraud.passed(),
		},
		Errors:   []ValidationError{},
		Warnings: []Warning{},
		Metadata: ResultMetadata{
			ValidatedAt:   time.Now().UTC(),
			EngineVersion: EngineVersion,
		},
	}

	for _, entry := range []struct {
		category string
		out      checkOutcome
	}{
		{categoryAmount, amount},
		{categoryAccounts, accounts},
		{categoryVelocity, velocity},
		{categoryBusinessRules, business},
		{categoryAML, aml},
		{categoryFraud, fraud},
	} {
		result.Errors = append(result.Errors, entry.out.errors...)
		result.Warnings = append(result.Warnings, entry.out.warnings...)
		result.SystemErrors = append(result.SystemErrors, entry.out.system...)
		if !entry.out.passed() {
			s.metrics.IncrementCheckFailure(entry.category)
		}
	}

	result.IsValid = result.Checks.allPassed()

	// Score on the final context: the fraud detector's flags and the
	// velocity counts are in by now.
	result.RiskScore = s.scoreRisk(req, vctx)
	result.RiskLevel = s.classifyRisk(result.RiskScore)

	// Fail closed: a collaborator failure means a check could not run, so the
	// verdict escalates to CRITICAL and the caller's disposition mapping
	// holds the transaction for review.
	if len(result.SystemErrors) > 0 {
		result.RiskLevel = RiskCritical
	}

	s.recordAttempt(ctx, req, result)
	s.publishVerdict(ctx, req, result)

	s.metrics.IncrementVerdict(strconv.FormatBool(result.IsValid), result.RiskLevel.String())
	s.metrics.ObserveValidateLatency(time.Since(start))

	span.SetAttributes(
		attribute.Bool("validation.valid", result.IsValid),
		attribute.Float64("validation.risk_score", result.RiskScore),
		attribute.String("validation.risk_level", result.RiskLevel.String()),
	)

	if s.logger != nil {
		s.logger.InfoContext(ctx, "transaction validated",
			"transaction_id", req.TransactionID,
			"type", req.Type,
			"valid", result.IsValid,
			"risk_score", result.RiskScore,
			"risk_level", result.RiskLevel,
			"errors", len(result.Errors),
			"warnings", len(result.Warnings),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}

	return result, nil
}

// recordAttempt appends the transaction to the account's history regardless
// of the verdict. A store failure is a system failure like any other.
func (s *Service) recordAttempt(ctx context.Context, req *TransactionRequest, result *ValidationResult) {
	err := s.history.Append(ctx, HistoryEntry{
		TransactionID: req.TransactionID,
		AccountID:     req.SourceAccountID,
		Amount:        req.Amount,
		Currency:      req.Currency,
		Type:          req.Type.String(),
		Timestamp:     time.Now().UTC(),
	})
	if err != nil {
		var out checkOutcome
		s.systemFailure(ctx, &out, "history.append", err)
		result.SystemErrors = append(result.SystemErrors, out.system...)
		result.RiskLevel = RiskCritical
	}
}

// publishVerdict emits the audit event. Fail-open: the verdict stands even
// when the audit sink is down.
func (s *Service) publishVerdict(ctx context.Context, req *TransactionRequest, result *ValidationResult) {
	if s.audit == nil {
		return
	}
	event := ports.VerdictEvent{
		TransactionID: req.TransactionID,
		AccountID:     req.SourceAccountID,
		Valid:         result.IsValid,
		RiskScore:     result.RiskScore,
		RiskLevel:     result.RiskLevel.String(),
		ErrorCodes:    errorCodes(result.Errors),
		WarningCodes:  warningCodes(result.Warnings),
	}
	if err := s.audit.PublishVerdict(ctx, event); err != nil {
		s.metrics.IncrementSystemFailure("audit.publish")
		if s.logger != nil {
			s.logger.ErrorContext(ctx, "verdict audit publish failed",
				"transaction_id", req.TransactionID,
				"error", err,
			)
		}
	}
}

func errorCodes(errs []ValidationError) []string {
	codes := make([]string, 0, len(errs))
	for _, e := range errs {
		codes = append(codes, e.Code)
	}
	return codes
}

func warningCodes(warns []Warning) []string {
	codes := make([]string, 0, len(warns))
	for _, w := range warns {
		codes = append(codes, w.Code)
	}
	return codes
}
