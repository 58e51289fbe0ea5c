package extract

import (
	"context"
	"log/slog"
	"time"

	"github.com/joseph-ayodele/docsheet/internal/common"
	"github.com/joseph-ayodele/docsheet/internal/llm"
	"github.com/joseph-ayodele/docsheet/internal/table"
)

// RecordExtractor turns document text into ordered key/value records.
type RecordExtractor interface {
	Extract(ctx context.Context, text string) ([]table.Record, error)
}

// Extractor drives one completion per document. It does not retry and does
// not split long documents.
type Extractor struct {
	completer llm.Completer
	log       *slog.Logger
}

func NewExtractor(c llm.Completer, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{completer: c, log: logger}
}

// Extract sends the full text to the model and parses the reply. An empty
// text still goes to the model; whatever comes back is parsed the same way.
func (e *Extractor) Extract(ctx context.Context, text string) ([]table.Record, error) {
	start := time.Now()
	log := e.log.With(common.RunInfoFrom(ctx).LogAttrs()...)
	prompt := llm.BuildExtractionPrompt(text)

	completion, err := e.completer.Complete(ctx, prompt)
	if err != nil {
		return nil, err
	}

	records, changed, err := llm.ParseRecords(completion)
	if err != nil {
		log.Error("extract.parse_failed",
			"completion_len", len(completion),
			"error", err,
		)
		return nil, common.NewKindError(common.KindMalformedOutput, "model reply is not a JSON array of records", err)
	}
	if len(changed) > 0 {
		log.Debug("extract.normalized", "changes", changed)
	}
	if len(records) == 0 {
		log.Warn("extract.no_records")
	}

	log.Info("extract.ok",
		"text_len", len(text),
		"records", len(records),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return records, nil
}
