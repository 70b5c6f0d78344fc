// Package jobs runs queued admin-dashboard work in the background: AI article
// drafts, AI translations, and feed refreshes. Jobs are claimed from storage
// one at a time so a single runner owns each job for its whole lifetime.
package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/KBRglobal/travi-final-website-sub003/internal/ai"
	"github.com/KBRglobal/travi-final-website-sub003/internal/feeds"
	"github.com/KBRglobal/travi-final-website-sub003/internal/models"
	"github.com/KBRglobal/travi-final-website-sub003/internal/readtime"
	"github.com/KBRglobal/travi-final-website-sub003/internal/storage"
)

const defaultPollInterval = 5 * time.Second

// TranslationPayload is the payload of a translation job.
type TranslationPayload struct {
	ArticleID int64  `json:"article_id"`
	Locale    string `json:"locale"`
}

// DraftResult is stored as the result of a completed draft job.
type DraftResult struct {
	ArticleID int64  `json:"article_id"`
	Title     string `json:"title"`
}

// Runner polls the job queue and executes claimed jobs until stopped.
type Runner struct {
	store    *storage.Store
	provider ai.AIProvider // nil when no API key is configured
	ingestor *feeds.Ingestor
	interval time.Duration

	stop chan struct{}
	wg   sync.WaitGroup
}

// NewRunner creates a Runner. The provider may be nil; draft and translation
// jobs then fail with a configuration error while feed refreshes still run.
func NewRunner(store *storage.Store, provider ai.AIProvider, ingestor *feeds.Ingestor) *Runner {
	return &Runner{
		store:    store,
		provider: provider,
		ingestor: ingestor,
		interval: defaultPollInterval,
		stop:     make(chan struct{}),
	}
}

// Start launches the polling loop in a goroutine. The loop drains the queue
// on every tick and exits when ctx is cancelled or Stop is called.
func (r *Runner) Start(ctx context.Context) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()

		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()

		slog.Info("job runner started", "poll_interval", r.interval)
		for {
			select {
			case <-ctx.Done():
				slog.Info("job runner stopping", "reason", "context cancelled")
				return
			case <-r.stop:
				slog.Info("job runner stopping", "reason", "stop requested")
				return
			case <-ticker.C:
				r.drainQueue(ctx)
			}
		}
	}()
}

// Stop signals the polling loop to exit and waits for the in-flight job, if
// any, to finish.
func (r *Runner) Stop() {
	close(r.stop)
	r.wg.Wait()
}

// drainQueue claims and runs queued jobs until the queue is empty.
func (r *Runner) drainQueue(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-r.stop:
			return
		default:
		}

		job, err := r.store.ClaimNextJob(ctx)
		if errors.Is(err, storage.ErrNotFound) {
			return
		}
		if err != nil {
			slog.Error("failed to claim job", "error", err)
			return
		}

		r.runJob(ctx, job)
	}
}

// runJob executes one claimed job and records its outcome.
func (r *Runner) runJob(ctx context.Context, job *models.ContentJob) {
	slog.Info("running job", "id", job.ID, "kind", job.Kind)

	result, err := r.dispatch(ctx, job)

	// The poll context may be cancelled by the time a job ends during
	// shutdown. The bookkeeping write must still land, or the job stays
	// running forever: unclaimable and uncancellable.
	finishCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	defer cancel()

	if err != nil {
		slog.Warn("job failed", "id", job.ID, "kind", job.Kind, "error", err)
		if ferr := r.store.FailJob(finishCtx, job.ID, err.Error()); ferr != nil {
			slog.Error("failed to mark job failed", "id", job.ID, "error", ferr)
		}
		return
	}

	if cerr := r.store.CompleteJob(finishCtx, job.ID, result); cerr != nil {
		slog.Error("failed to mark job completed", "id", job.ID, "error", cerr)
		return
	}
	slog.Info("job completed", "id", job.ID, "kind", job.Kind)
}

// dispatch routes a job to its handler by kind and returns the result to
// store on completion.
func (r *Runner) dispatch(ctx context.Context, job *models.ContentJob) (string, error) {
	switch job.Kind {
	case models.JobKindDraft:
		return r.runDraft(ctx, job)
	case models.JobKindTranslation:
		return r.runTranslation(ctx, job)
	case models.JobKindFeedRefresh:
		return r.runFeedRefresh(ctx)
	default:
		return "", fmt.Errorf("unknown job kind %q", job.Kind)
	}
}

// runDraft asks the AI provider for an article draft, analyzes it, and
// stores it under the editorial source.
func (r *Runner) runDraft(ctx context.Context, job *models.ContentJob) (string, error) {
	if r.provider == nil {
		return "", errors.New("AI provider not configured")
	}

	var req ai.DraftRequest
	if err := json.Unmarshal([]byte(job.Payload), &req); err != nil {
		return "", fmt.Errorf("parsing draft payload: %w", err)
	}
	if req.Destination == "" || req.Topic == "" {
		return "", errors.New("draft payload needs destination and topic")
	}

	draft, err := r.provider.DraftArticle(ctx, req)
	if err != nil {
		return "", err
	}
	if draft.Title == "" || draft.BodyHTML == "" {
		return "", errors.New("provider returned an empty draft")
	}

	sourceID, err := r.store.GetEditorialSourceID(ctx)
	if err != nil {
		return "", fmt.Errorf("looking up editorial source: %w", err)
	}

	analysis := readtime.Analyze(readtime.HTML(draft.BodyHTML))
	now := time.Now()
	articleID, err := r.store.UpsertArticle(ctx, &models.Article{
		SourceID:     sourceID,
		Title:        draft.Title,
		URL:          fmt.Sprintf("editorial://draft/%d", job.ID),
		Description:  readtime.ExtractText(draft.BodyHTML),
		FullContent:  draft.BodyHTML,
		WordCount:    analysis.Words,
		ImageCount:   analysis.Images,
		HeadingCount: analysis.Headings,
		Complexity:   string(analysis.Complexity),
		Level:        string(analysis.Level),
		PublishedAt:  &now,
		FetchedAt:    now,
	})
	if err != nil {
		return "", fmt.Errorf("storing draft: %w", err)
	}

	return marshalResult(DraftResult{ArticleID: articleID, Title: draft.Title})
}

// runTranslation translates a stored article into the requested locale and
// upserts the result as a machine translation.
func (r *Runner) runTranslation(ctx context.Context, job *models.ContentJob) (string, error) {
	if r.provider == nil {
		return "", errors.New("AI provider not configured")
	}

	var payload TranslationPayload
	if err := json.Unmarshal([]byte(job.Payload), &payload); err != nil {
		return "", fmt.Errorf("parsing translation payload: %w", err)
	}
	if payload.ArticleID == 0 || payload.Locale == "" {
		return "", errors.New("translation payload needs article_id and locale")
	}

	article, err := r.store.GetArticleByID(ctx, payload.ArticleID)
	if err != nil {
		return "", fmt.Errorf("loading article %d: %w", payload.ArticleID, err)
	}

	body := article.FullContent
	if body == "" {
		body = article.Description
	}

	translated, err := r.provider.Translate(ctx, ai.TranslateRequest{
		Locale: payload.Locale,
		Title:  article.Title,
		Body:   body,
	})
	if err != nil {
		return "", err
	}
	if translated.Title == "" {
		return "", errors.New("provider returned an empty translation")
	}

	err = r.store.UpsertTranslation(ctx, &models.Translation{
		ArticleID: article.ID,
		Locale:    payload.Locale,
		Title:     translated.Title,
		Body:      translated.Body,
		Status:    models.TranslationMachine,
	})
	if err != nil {
		return "", fmt.Errorf("storing translation: %w", err)
	}

	return marshalResult(payload)
}

// runFeedRefresh runs the ingestion pipeline over all active sources.
func (r *Runner) runFeedRefresh(ctx context.Context) (string, error) {
	summary, err := r.ingestor.Refresh(ctx)
	if err != nil {
		return "", err
	}
	return marshalResult(summary)
}

func marshalResult(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("marshaling job result: %w", err)
	}
	return string(b), nil
}
