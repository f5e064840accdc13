// Package pipeline runs the linear extraction flow for one document:
// positioned text extraction, issuer detection, row reconstruction, optional
// LLM refinement of deferred rows, and summary aggregation. The pipeline
// holds no per-request state; every Run is independent.
package pipeline

import (
	"context"
	"errors"
	"strings"
	"time"

	"taxmaster/statement-extractor/internal/banks"
	"taxmaster/statement-extractor/internal/extracterror"
	"taxmaster/statement-extractor/internal/logging"
	"taxmaster/statement-extractor/internal/models"
	"taxmaster/statement-extractor/internal/pdfreader"
	"taxmaster/statement-extractor/internal/rowbuilder"
	"taxmaster/statement-extractor/internal/summary"
)

// RowRefiner resolves deferred row text into transactions. Satisfied by
// refiner.Refiner; tests inject deterministic implementations.
type RowRefiner interface {
	Refine(ctx context.Context, rows []string) ([]models.Transaction, error)
}

// Pipeline wires the extraction stages together. Built once at startup from
// configuration and shared across requests.
type Pipeline struct {
	extractor pdfreader.Extractor
	refiner   RowRefiner // nil when refinement is disabled
	registry  *banks.Registry
	logger    logging.Logger
}

// New creates a Pipeline. refiner may be nil, in which case deferred rows are
// dropped instead of refined.
func New(extractor pdfreader.Extractor, refiner RowRefiner, registry *banks.Registry, logger logging.Logger) *Pipeline {
	return &Pipeline{
		extractor: extractor,
		refiner:   refiner,
		registry:  registry,
		logger:    logger,
	}
}

// Run executes the full flow for one uploaded document and returns the
// response payload. Errors are from the extracterror taxonomy; the HTTP
// facade decides how they reach the caller.
func (p *Pipeline) Run(ctx context.Context, filename string, data []byte) (*models.ExtractionResult, error) {
	started := time.Now()
	log := p.logger.WithField(logging.FieldFilename, filename)

	frags, err := p.extractor.Extract(data)
	if err != nil {
		return nil, err
	}

	bank := banks.Detect(firstPageText(frags))
	cal := p.registry.For(bank)

	rec := rowbuilder.Reconstruct(frags, cal)
	log.Info("Reconstructed statement rows",
		logging.Field{Key: logging.FieldBank, Value: bank},
		logging.Field{Key: logging.FieldRows, Value: len(rec.Rows)},
		logging.Field{Key: logging.FieldDeferred, Value: len(rec.Deferred)},
		logging.Field{Key: logging.FieldDropped, Value: rec.Dropped})

	rows, err := p.resolveDeferred(ctx, log, rec)
	if err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		return nil, &extracterror.EmptyStatementError{Filename: filename}
	}

	stmtSummary, err := summary.Build(rows)
	if err != nil {
		return nil, err
	}

	log.Info("Extraction complete",
		logging.Field{Key: logging.FieldRows, Value: len(rows)},
		logging.Field{Key: logging.FieldDuration, Value: time.Since(started).Milliseconds()})

	return &models.ExtractionResult{
		Success:      true,
		Bank:         bank,
		Filename:     filename,
		Summary:      stmtSummary,
		Transactions: rows,
	}, nil
}

// resolveDeferred sends deferred lines to the refiner and splices the results
// back in document order. A schema miss drops the affected rows and keeps the
// request alive; a transport failure aborts the request.
func (p *Pipeline) resolveDeferred(ctx context.Context, log logging.Logger, rec rowbuilder.Result) ([]models.Transaction, error) {
	if p.refiner == nil || len(rec.Deferred) == 0 {
		if len(rec.Deferred) > 0 {
			log.Warn("Refinement disabled, dropping deferred rows",
				logging.Field{Key: logging.FieldDeferred, Value: len(rec.Deferred)})
		}
		return rec.Rows, nil
	}

	texts := make([]string, len(rec.Deferred))
	for i, d := range rec.Deferred {
		texts[i] = d.Text
	}

	refined, err := p.refiner.Refine(ctx, texts)
	if err != nil {
		var schemaErr *extracterror.LLMSchemaError
		if errors.As(err, &schemaErr) {
			// Permanent miss for those rows; the rest of the statement
			// still stands.
			log.WithError(err).Warn("Refinement returned nothing usable, dropping deferred rows",
				logging.Field{Key: logging.FieldDropped, Value: len(rec.Deferred)})
			return rec.Rows, nil
		}
		return nil, err
	}

	return mergeRefined(rec, refined), nil
}

// mergeRefined splices refined rows at the positions their source lines held.
// When the model returns a different row count the positional mapping is
// unreliable, so the refined rows go at the end instead.
func mergeRefined(rec rowbuilder.Result, refined []models.Transaction) []models.Transaction {
	if len(refined) == 0 {
		return rec.Rows
	}

	if len(refined) != len(rec.Deferred) {
		return append(append([]models.Transaction{}, rec.Rows...), refined...)
	}

	merged := make([]models.Transaction, 0, len(rec.Rows)+len(refined))
	next := 0
	for i, tx := range refined {
		idx := rec.Deferred[i].Index
		for next < idx && next < len(rec.Rows) {
			merged = append(merged, rec.Rows[next])
			next++
		}
		merged = append(merged, tx)
	}
	merged = append(merged, rec.Rows[next:]...)
	return merged
}

// firstPageText joins the fragment texts of the first page for issuer
// detection. The issuer name and logo text always sit in the page-one header.
func firstPageText(frags []pdfreader.Fragment) string {
	if len(frags) == 0 {
		return ""
	}
	first := frags[0].Page
	var sb strings.Builder
	for _, f := range frags {
		if f.Page != first {
			continue
		}
		sb.WriteString(f.Text)
		sb.WriteString(" ")
	}
	return sb.String()
}
