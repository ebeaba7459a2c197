package review

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"github.com/mcp-bot/reviewd/internal/analyzer"
	"github.com/mcp-bot/reviewd/internal/common"
	"github.com/mcp-bot/reviewd/internal/diag"
	"github.com/mcp-bot/reviewd/internal/genai"
	"github.com/mcp-bot/reviewd/internal/platform"
)

// AIReviewer produces free-text feedback for a file's content.
type AIReviewer interface {
	Review(ctx context.Context, content string) (string, error)
}

// AnalyzeFunc dispatches a file to its static-analysis adapter.
type AnalyzeFunc func(ctx context.Context, filePath, content string) ([]diag.Diagnostic, error)

// ConnectorFunc resolves a platform tag to a connector.
type ConnectorFunc func(name string) (platform.Connector, error)

// Options bound the two per-file analysis calls so one hung subprocess or
// model call cannot stall a whole batch forever.
type Options struct {
	AnalyzeTimeout time.Duration
	AITimeout      time.Duration
}

// DefaultOptions returns the pipeline's default time bounds.
func DefaultOptions() Options {
	return Options{
		AnalyzeTimeout: 60 * time.Second,
		AITimeout:      120 * time.Second,
	}
}

// Orchestrator drives one PR review end to end: resolve connector, fetch
// files, analyze every file concurrently, post the report, maybe approve.
// It holds no state across invocations.
type Orchestrator struct {
	connector ConnectorFunc
	analyze   AnalyzeFunc
	ai        AIReviewer
	opts      Options
}

// NewOrchestrator wires the orchestrator with explicit collaborators.
func NewOrchestrator(connector ConnectorFunc, analyze AnalyzeFunc, ai AIReviewer, opts Options) *Orchestrator {
	return &Orchestrator{
		connector: connector,
		analyze:   analyze,
		ai:        ai,
		opts:      opts,
	}
}

// NewDefaultOrchestrator wires the production collaborators: the global
// platform registry, the global analyzer registry and the configured
// generative-model client.
func NewDefaultOrchestrator(v *viper.Viper) *Orchestrator {
	opts := DefaultOptions()
	if d := v.GetDuration("review.analyze_timeout"); d > 0 {
		opts.AnalyzeTimeout = d
	}
	if d := v.GetDuration("review.ai_timeout"); d > 0 {
		opts.AITimeout = d
	}
	return NewOrchestrator(
		func(name string) (platform.Connector, error) { return platform.Get(name, v) },
		analyzer.AnalyzeFile,
		genai.NewClient(v),
		opts,
	)
}

// Outcome is the prepared report for one PR event, before any posting.
type Outcome struct {
	Results   []FileReviewResult
	Body      string
	HasIssues bool
}

// Prepare resolves the connector, fetches the changed files and analyzes
// them, returning the connector alongside the built report.
func (o *Orchestrator) Prepare(ctx context.Context, platformTag string, event []byte) (platform.Connector, *Outcome, error) {
	connector, err := o.connector(platformTag)
	if err != nil {
		return nil, nil, err
	}

	files, err := connector.FetchFiles(ctx, event)
	if err != nil {
		return nil, nil, fmt.Errorf("review: failed to fetch PR files: %w", err)
	}

	results := o.analyzeAll(ctx, files)

	return connector, &Outcome{
		Results:   results,
		Body:      BuildReport(results),
		HasIssues: HasIssues(results),
	}, nil
}

// HandlePRReview runs the full pipeline for one provider-tagged PR event.
// Per-file analysis failures degrade into the report; a provider API failure
// is fatal to this invocation and is returned for the caller to log.
func (o *Orchestrator) HandlePRReview(ctx context.Context, platformTag string, event []byte) error {
	connector, outcome, err := o.Prepare(ctx, platformTag, event)
	if err != nil {
		return err
	}

	if err := connector.PostComment(ctx, event, outcome.Body); err != nil {
		return fmt.Errorf("review: failed to post comment: %w", err)
	}
	common.LogInfo(fmt.Sprintf("Posted %s review comment (%d files, issues=%t)",
		platformTag, len(outcome.Results), outcome.HasIssues), nil)

	if outcome.HasIssues {
		return nil
	}
	if err := connector.Approve(ctx, event); err != nil {
		return fmt.Errorf("review: failed to approve PR: %w", err)
	}
	return nil
}

// analyzeAll fans every file out to its two analysis calls and waits for the
// whole batch. Results keep the input order no matter which file finishes
// first.
func (o *Orchestrator) analyzeAll(ctx context.Context, files []platform.ChangedFile) []FileReviewResult {
	results := make([]FileReviewResult, len(files))

	var g errgroup.Group
	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			results[i] = o.reviewFile(ctx, file)
			return nil
		})
	}
	// Goroutines only record per-file outcomes, never errors.
	_ = g.Wait()

	return results
}

// reviewFile runs the dispatcher and the generative review for one file,
// degrading each failure into the result instead of failing the batch.
func (o *Orchestrator) reviewFile(ctx context.Context, file platform.ChangedFile) FileReviewResult {
	res := FileReviewResult{Filename: file.Filename}

	analyzeCtx, cancel := context.WithTimeout(ctx, o.opts.AnalyzeTimeout)
	issues, err := o.analyze(analyzeCtx, file.Filename, file.Content)
	cancel()
	if err != nil {
		common.LogError(fmt.Sprintf("[x] static analysis failed for %s: %v", file.Filename, err), false, false, nil)
		issues = []diag.Diagnostic{{
			File:     file.Filename,
			Severity: diag.SeverityWarning,
			Message:  fmt.Sprintf("analysis tool failed: %v", err),
			Rule:     "analyzer",
		}}
	}
	res.Issues = issues

	aiCtx, cancel := context.WithTimeout(ctx, o.opts.AITimeout)
	feedback, err := o.ai.Review(aiCtx, file.Content)
	cancel()
	if err != nil {
		common.LogError(fmt.Sprintf("[x] AI review failed for %s: %v", file.Filename, err), false, false, nil)
		res.AIFeedback = "⚠️ AI review unavailable for this file."
		res.AIFailed = true
		return res
	}
	res.AIFeedback = feedback
	return res
}
