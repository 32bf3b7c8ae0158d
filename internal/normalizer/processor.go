package normalizer

import (
	"fmt"

	"github.com/itbasis/go-clock"

	"rankings/internal/logger"
	"rankings/internal/models"
)

// Processor runs the shared pipeline: resolve headers, extract rows, assemble and validate.
type Processor struct {
	extractor *Extractor
	validator *Validator
	clock     clock.Clock
	log       *logger.Logger
}

// NewProcessor creates a new processor instance.
func NewProcessor(log *logger.Logger) *Processor {
	return NewProcessorWithClock(log, clock.New())
}

// NewProcessorWithClock creates a processor that stamps payloads with clk.
func NewProcessorWithClock(log *logger.Logger, clk clock.Clock) *Processor {
	if log == nil {
		log = logger.NewNopLogger()
	}

	return &Processor{
		extractor: NewExtractor(log),
		validator: NewValidator(),
		clock:     clk,
		log:       log,
	}
}

// Process turns a table into a validated payload for info.
func (p *Processor) Process(info models.SourceInfo, table Table) (*models.LeaderboardPayload, error) {
	headerMap := ResolveHeaders(table.Headers())
	p.log.Debug("resolved headers", "headers", table.Headers(), "mapped", len(headerMap))

	entries, stats, err := p.extractor.Extract(table, headerMap)
	if err != nil {
		return nil, err
	}

	p.log.Info("extracted entries",
		"rows", stats.Rows,
		"entries", stats.Entries,
		"blank", stats.Blank,
		"discarded", stats.Discarded,
	)

	return p.Assemble(info, entries)
}

// Assemble wraps entries into a payload and validates it.
func (p *Processor) Assemble(info models.SourceInfo, entries []models.RankingEntry) (*models.LeaderboardPayload, error) {
	payload := models.NewLeaderboardPayloadWithClock(info, entries, p.clock)

	if err := p.validator.Validate(payload); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	return payload, nil
}
