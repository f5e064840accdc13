package refiner

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"taxmaster/statement-extractor/internal/currencyutils"
	"taxmaster/statement-extractor/internal/dateutils"
	"taxmaster/statement-extractor/internal/extracterror"
	"taxmaster/statement-extractor/internal/logging"
	"taxmaster/statement-extractor/internal/models"
	"taxmaster/statement-extractor/internal/textutils"

	"github.com/shopspring/decimal"
)

// retryBackoff is the pause before the single retry on transport failure.
const retryBackoff = 500 * time.Millisecond

// Refiner sends deferred row text to the model and validates the structured
// answer. Best-effort by contract: rows the model cannot return in schema are
// dropped and counted, never fabricated.
type Refiner struct {
	client    Client
	model     string
	chunkSize int
	logger    logging.Logger
}

// New creates a Refiner. model is only used for error reporting and logging.
func New(client Client, model string, logger logging.Logger) *Refiner {
	return &Refiner{
		client:    client,
		model:     model,
		chunkSize: textutils.DefaultChunkSize,
		logger:    logger,
	}
}

// Refine sends the deferred rows to the model and returns the transactions it
// could validate. A transport failure (after one retry) returns
// LLMUnavailableError; a response with no usable rows returns LLMSchemaError.
func (r *Refiner) Refine(ctx context.Context, rows []string) ([]models.Transaction, error) {
	if len(rows) == 0 {
		return nil, nil
	}

	text := strings.Join(rows, "\n")
	chunks := textutils.ChunkText(text, r.chunkSize)

	var all []models.Transaction
	sawResponse := false
	for i, chunk := range chunks {
		raw, err := r.completeWithRetry(ctx, buildPrompt(chunk))
		if err != nil {
			return nil, err
		}
		sawResponse = true

		parsed, dropped := parseResponse(raw)
		if dropped > 0 {
			r.logger.Warn("Dropped rows failing schema validation",
				logging.Field{Key: logging.FieldChunk, Value: i + 1},
				logging.Field{Key: logging.FieldDropped, Value: dropped})
		}
		all = append(all, parsed...)
	}

	if sawResponse && len(all) == 0 {
		return nil, &extracterror.LLMSchemaError{Reason: "no valid transaction objects in model response"}
	}

	return dedupe(all), nil
}

// completeWithRetry performs the model call with a single retry after a short
// backoff. Schema problems are not transport problems and are never retried.
func (r *Refiner) completeWithRetry(ctx context.Context, prompt string) (string, error) {
	raw, err := r.client.Complete(ctx, prompt)
	if err == nil {
		return raw, nil
	}

	r.logger.WithError(err).Warn("Model call failed, retrying once",
		logging.Field{Key: logging.FieldModel, Value: r.model})

	select {
	case <-ctx.Done():
		return "", &extracterror.LLMUnavailableError{Model: r.model, Err: ctx.Err()}
	case <-time.After(retryBackoff):
	}

	raw, err = r.client.Complete(ctx, prompt)
	if err != nil {
		return "", &extracterror.LLMUnavailableError{Model: r.model, Err: err}
	}
	return raw, nil
}

// wireRow matches the JSON schema the prompt demands. Amounts arrive as
// strings or bare numbers depending on model mood, so they decode leniently.
type wireRow struct {
	Date        string     `json:"date"`
	ValueDate   string     `json:"value_date"`
	Description string     `json:"description"`
	Debit       flexAmount `json:"debit"`
	Credit      flexAmount `json:"credit"`
	Balance     flexAmount `json:"balance"`
}

// flexAmount decodes a JSON string or number into a raw amount string.
type flexAmount string

func (f *flexAmount) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = flexAmount(s)
		return nil
	}
	*f = flexAmount(strings.TrimSpace(string(data)))
	return nil
}

// magnitude is for the debit and credit fields, which carry no sign.
func (f flexAmount) magnitude() decimal.Decimal {
	return f.signed().Abs()
}

// signed keeps the sign for the balance field, which can go negative on an
// overdrawn account.
func (f flexAmount) signed() decimal.Decimal {
	amount, err := currencyutils.ParseAmount(string(f))
	if err != nil {
		return decimal.Zero
	}
	return amount
}

// parseResponse salvages the JSON array and validates each object into a
// Transaction. Returns the valid rows and the count of rows dropped for
// schema violations.
func parseResponse(raw string) ([]models.Transaction, int) {
	objects := extractJSONArray(raw)

	var rows []models.Transaction
	dropped := 0
	for _, obj := range objects {
		var w wireRow
		if err := json.Unmarshal(obj, &w); err != nil {
			dropped++
			continue
		}

		date, err := dateutils.Normalize(w.Date)
		if err != nil {
			dropped++
			continue
		}

		valueDate := date
		if vd, err := dateutils.Normalize(w.ValueDate); err == nil {
			valueDate = vd
		}

		tx := models.Transaction{
			Date:        date,
			ValueDate:   valueDate,
			Description: strings.TrimSpace(w.Description),
			Debit:       w.Debit.magnitude(),
			Credit:      w.Credit.magnitude(),
			Balance:     w.Balance.signed(),
		}
		if err := tx.Validate(); err != nil {
			dropped++
			continue
		}
		rows = append(rows, tx)
	}

	return rows, dropped
}

// dedupe removes duplicate rows. Chunks overlap at their seams, so the same
// transaction can come back twice; identity is date plus narration prefix
// plus both amounts.
func dedupe(rows []models.Transaction) []models.Transaction {
	seen := make(map[string]struct{}, len(rows))
	unique := rows[:0]
	for _, tx := range rows {
		desc := tx.Description
		if runes := []rune(desc); len(runes) > 40 {
			desc = string(runes[:40])
		}
		key := fmt.Sprintf("%s|%s|%s|%s", tx.Date, desc, tx.Debit, tx.Credit)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, tx)
	}
	return unique
}
