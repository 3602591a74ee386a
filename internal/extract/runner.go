package extract

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/rabotazarulem/driver-matcher/internal/candidate"
	"github.com/rabotazarulem/driver-matcher/internal/logger"
)

// Analysis is what the oracle extracts from one conversation.
type Analysis struct {
	Checklist candidate.Checklist `json:"checklist"`
	Profile   candidate.Profile   `json:"profile"`
}

// Analyzer is the text-classification oracle boundary. Implementations must
// return a complete analysis to the fixed schema; the runner fills in chat
// identity and bookkeeping.
type Analyzer interface {
	Analyze(ctx context.Context, chatName, transcript string) (*Analysis, error)
}

// minMessages is the smallest conversation worth analyzing; shorter chats
// carry no extractable signal.
const minMessages = 2

// Options configures one extraction run.
type Options struct {
	// BatchSize limits how many chats this invocation covers, starting at
	// StartFrom; large exports are processed across several runs.
	BatchSize int
	// StartFrom is the index of the first chat to consider.
	StartFrom int
	// Parallel bounds concurrent oracle calls.
	Parallel int
	// Fresh discards existing results and re-analyzes everything in range.
	Fresh bool
}

// Runner drives the extraction: it selects the chats that need analysis,
// fans the oracle calls out with bounded parallelism and checkpoints the
// merged result set after every parallel batch, so an aborted run loses at
// most one batch.
type Runner struct {
	analyzer Analyzer
	logger   *zap.Logger
	save     func([]*candidate.Candidate) error
}

func NewRunner(analyzer Analyzer, logger *zap.Logger, save func([]*candidate.Candidate) error) *Runner {
	return &Runner{analyzer: analyzer, logger: logger, save: save}
}

// Run analyzes the selected chat range and returns the merged candidate set.
// A chat already present in existing is re-analyzed only when its message
// count grew since the previous run.
func (r *Runner) Run(ctx context.Context, chats []*Chat, existing []*candidate.Candidate, opts Options) ([]*candidate.Candidate, error) {
	if opts.BatchSize <= 0 {
		opts.BatchSize = len(chats)
	}
	if opts.Parallel <= 0 {
		opts.Parallel = 1
	}
	if opts.StartFrom >= len(chats) {
		return nil, fmt.Errorf("start index %d is beyond the %d available chats", opts.StartFrom, len(chats))
	}

	known := make(map[string]*candidate.Candidate)
	if !opts.Fresh {
		for _, c := range existing {
			known[c.FileName] = c
		}
	}

	end := min(opts.StartFrom+opts.BatchSize, len(chats))

	var pending []*Chat
	for _, chat := range chats[opts.StartFrom:end] {
		if len(chat.Messages) < minMessages {
			r.logger.Debug("skipping short chat",
				zap.String(logger.FieldChat, chat.ChatName),
				zap.Int("messages", len(chat.Messages)),
			)
			continue
		}

		if prev, ok := known[chat.FileName]; ok && len(chat.Messages) <= prev.MessagesCount {
			r.logger.Debug("skipping chat without new messages",
				zap.String(logger.FieldChat, chat.ChatName),
				zap.Int("messages", len(chat.Messages)),
			)
			continue
		}

		pending = append(pending, chat)
	}

	r.logger.Info("starting chat analysis",
		zap.Int("total_chats", len(chats)),
		zap.Int("pending", len(pending)),
		zap.Int("parallel", opts.Parallel),
	)

	analyzed, failed := 0, 0

	for start := 0; start < len(pending); start += opts.Parallel {
		batch := pending[start:min(start+opts.Parallel, len(pending))]
		results := make([]*candidate.Candidate, len(batch))

		group, groupCtx := errgroup.WithContext(ctx)
		for i, chat := range batch {
			group.Go(func() error {
				analysis, err := r.analyzer.Analyze(groupCtx, chat.ChatName, chat.Transcript())
				if err != nil {
					// One bad conversation must not sink the run.
					r.logger.Warn("chat analysis failed",
						zap.String(logger.FieldChat, chat.ChatName),
						zap.Error(err),
					)
					return nil
				}

				analysis.Profile.Normalize()
				results[i] = &candidate.Candidate{
					ChatName:      chat.ChatName,
					FileName:      chat.FileName,
					MessagesCount: len(chat.Messages),
					Checklist:     analysis.Checklist,
					Profile:       analysis.Profile,
				}
				return nil
			})
		}

		if err := group.Wait(); err != nil {
			return nil, err
		}

		for _, result := range results {
			if result == nil {
				failed++
				continue
			}
			known[result.FileName] = result
			analyzed++
		}

		if r.save != nil {
			if err := r.save(collect(known)); err != nil {
				return nil, fmt.Errorf("checkpoint results: %w", err)
			}
		}
	}

	r.logger.Info("chat analysis finished",
		zap.Int("analyzed", analyzed),
		zap.Int("failed", failed),
		zap.Int("total_results", len(known)),
	)

	return collect(known), nil
}

func collect(known map[string]*candidate.Candidate) []*candidate.Candidate {
	out := make([]*candidate.Candidate, 0, len(known))
	for _, c := range known {
		out = append(out, c)
	}
	return out
}
