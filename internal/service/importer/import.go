package importer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/heartmarshall/quizbank-backend/internal/domain"
	"github.com/heartmarshall/quizbank-backend/internal/source"
)

// Import extracts every question block in input and stores the results.
//
// Per-block failures are recorded as outcomes and the batch continues.
// Cancelling ctx stops the batch; the partial result is returned together
// with the context error.
func (s *Service) Import(ctx context.Context, input ImportInput) (*ImportResult, error) {
	return s.run(ctx, input, true)
}

// Preview runs the same extraction as Import without storing anything.
// The extracted questions are returned in ImportResult.Questions.
func (s *Service) Preview(ctx context.Context, input ImportInput) (*ImportResult, error) {
	return s.run(ctx, input, false)
}

func (s *Service) run(ctx context.Context, input ImportInput, save bool) (*ImportResult, error) {
	if err := input.Validate(s.cfg.MaxTextBytes); err != nil {
		return nil, err
	}

	blocks, err := s.blocks(input)
	if err != nil {
		return nil, err
	}

	result := &ImportResult{Blocks: len(blocks), Outcomes: make([]BlockOutcome, 0, len(blocks))}
	if s.cfg.MaxBlocks > 0 && len(blocks) > s.cfg.MaxBlocks {
		s.log.WarnContext(ctx, "block limit reached, dropping the rest",
			slog.Int("blocks", len(blocks)),
			slog.Int("max_blocks", s.cfg.MaxBlocks),
		)
		blocks = blocks[:s.cfg.MaxBlocks]
		result.Truncated = true
	}

	for i, block := range blocks {
		outcome, q, err := s.processBlock(ctx, i, block, input.Source, save)
		if err != nil {
			s.logResult(ctx, input.Source, result, save)
			return result, err
		}
		result.record(outcome)
		if q != nil && !save {
			result.Questions = append(result.Questions, *q)
		}
	}

	s.logResult(ctx, input.Source, result, save)
	return result, nil
}

func (s *Service) blocks(input ImportInput) ([]string, error) {
	text := input.Text
	if input.Format == domain.SourceFormatHTML {
		converted, err := source.HTMLToText(text)
		if err != nil {
			return nil, fmt.Errorf("convert html: %w", err)
		}
		text = converted
	}
	return source.SplitBlocks(text), nil
}

// processBlock returns a non-nil error only when ctx is done.
func (s *Service) processBlock(ctx context.Context, index int, block, src string, save bool) (BlockOutcome, *domain.Question, error) {
	outcome := BlockOutcome{Index: index}

	q, err := s.extractWithRetry(ctx, block)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return outcome, nil, ctxErr
		}
		outcome.Reason = err.Error()
		if errors.Is(err, domain.ErrUnextractable) {
			outcome.Status = BlockSkipped
			s.log.InfoContext(ctx, "block skipped", slog.Int("block", index), slog.String("reason", outcome.Reason))
		} else {
			outcome.Status = BlockFailed
			s.log.ErrorContext(ctx, "block extraction failed", slog.Int("block", index), slog.String("error", outcome.Reason))
		}
		return outcome, nil, nil
	}

	q.Source = src
	q.Language = s.lang.Detect(q.Body)
	outcome.Method = q.Method
	outcome.LowConfidence = q.LowConfidence

	if !save {
		outcome.Status = BlockExtracted
		return outcome, q, nil
	}

	id, err := s.repo.Save(ctx, q)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return outcome, nil, ctxErr
		}
		outcome.Status = BlockFailed
		outcome.Reason = fmt.Sprintf("save question: %v", err)
		s.log.ErrorContext(ctx, "save question failed", slog.Int("block", index), slog.String("error", err.Error()))
		return outcome, nil, nil
	}

	outcome.Status = BlockSaved
	outcome.QuestionID = &id
	return outcome, q, nil
}

// extractWithRetry waits for the rate limiter before every call and retries
// only when the generation service is unavailable.
func (s *Service) extractWithRetry(ctx context.Context, block string) (*domain.Question, error) {
	var q *domain.Question

	op := func() error {
		if err := s.limiter.Wait(ctx); err != nil {
			return backoff.Permanent(err)
		}
		res, err := s.extractor.ExtractQuestion(ctx, block)
		if err == nil {
			q = res
			return nil
		}
		if ctx.Err() != nil || !errors.Is(err, domain.ErrCollaboratorUnavailable) {
			return backoff.Permanent(err)
		}
		return err
	}

	notify := func(err error, wait time.Duration) {
		s.log.WarnContext(ctx, "generation unavailable, retrying",
			slog.String("error", err.Error()),
			slog.Duration("wait", wait),
		)
	}

	if err := backoff.RetryNotify(op, s.retryPolicy(ctx), notify); err != nil {
		return nil, err
	}
	return q, nil
}

func (s *Service) retryPolicy(ctx context.Context) backoff.BackOff {
	exp := backoff.NewExponentialBackOff()
	if s.cfg.InitialBackoff > 0 {
		exp.InitialInterval = s.cfg.InitialBackoff
	}
	if s.cfg.MaxBackoff > 0 {
		exp.MaxInterval = s.cfg.MaxBackoff
	}
	exp.MaxElapsedTime = 0

	retries := s.cfg.MaxRetries
	if retries < 0 {
		retries = 0
	}
	return backoff.WithContext(backoff.WithMaxRetries(exp, uint64(retries)), ctx)
}

func (s *Service) logResult(ctx context.Context, src string, r *ImportResult, save bool) {
	msg := "preview finished"
	if save {
		msg = "import finished"
	}
	s.log.InfoContext(ctx, msg,
		slog.String("source", src),
		slog.Int("blocks", r.Blocks),
		slog.Int("extracted", r.Extracted),
		slog.Int("saved", r.Saved),
		slog.Int("skipped", r.Skipped),
		slog.Int("failed", r.Failed),
		slog.Int("low_confidence", r.LowConfidence),
	)
}
