package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	_ "embed"

	"go.uber.org/zap"

	"github.com/rabotazarulem/driver-matcher/internal/extract"
	"github.com/rabotazarulem/driver-matcher/internal/logger"
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

//go:embed prompt.md
var promptTemplate string

const (
	defaultRecruiter    = "rabotazarulem"
	defaultMaxLogLength = 200
)

// Extractor analyzes chat transcripts into candidate profiles via a content
// generator. It implements extract.Analyzer.
type Extractor struct {
	generator contentGenerator
	recruiter string
	logger    *zap.Logger
	maxLogLen int
}

// NewExtractor builds an Extractor. recruiter is the account name whose
// messages the prompt attributes to the manager side; empty picks the
// default.
func NewExtractor(generator contentGenerator, recruiter string, maxLogLength int, log *zap.Logger) *Extractor {
	if strings.TrimSpace(recruiter) == "" {
		recruiter = defaultRecruiter
	}
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}

	return &Extractor{
		generator: generator,
		recruiter: recruiter,
		logger:    log,
		maxLogLen: maxLogLength,
	}
}

// Analyze sends the transcript through the extraction prompt and parses the
// structured response.
func (e *Extractor) Analyze(ctx context.Context, chatName, transcript string) (*extract.Analysis, error) {
	if strings.TrimSpace(transcript) == "" {
		return nil, fmt.Errorf("transcript for %q is empty", chatName)
	}

	prompt := buildPrompt(e.recruiter, chatName, transcript)

	e.logger.Debug("gemini analysis request",
		zap.String(logger.FieldChat, chatName),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", logger.Truncate(prompt, e.maxLogLen)),
	)

	raw, err := e.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, err
	}

	e.logger.Debug("gemini analysis response",
		zap.String(logger.FieldChat, chatName),
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", logger.Truncate(raw, e.maxLogLen)),
	)

	return parseResponse(raw)
}

func buildPrompt(recruiter, chatName, transcript string) string {
	prompt := strings.ReplaceAll(promptTemplate, "{{RECRUITER}}", recruiter)
	prompt = strings.ReplaceAll(prompt, "{{CHAT_NAME}}", chatName)
	prompt = strings.ReplaceAll(prompt, "{{TRANSCRIPT}}", transcript)
	return prompt
}

func parseResponse(raw string) (*extract.Analysis, error) {
	cleaned := extractJSON(raw)

	var analysis extract.Analysis
	if err := json.Unmarshal([]byte(cleaned), &analysis); err != nil {
		return nil, fmt.Errorf("parse gemini response: %w", err)
	}

	analysis.Profile.Normalize()
	return &analysis, nil
}

// extractJSON strips markdown code fences the model sometimes wraps its
// answer in.
func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}
