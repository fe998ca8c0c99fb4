package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/101Room/berezin-dicts/internal/adapters/scrape"
	"github.com/101Room/berezin-dicts/internal/domain"
	"github.com/101Room/berezin-dicts/internal/ports"
)

// submitLabel is the literal the form's submit button carries.
const submitLabel = "Добавить"

// formPath is the page that both serves the CSRF form and accepts the
// submission.
const formPath = "/vocs/add"

// FormURL resolves the submission endpoint against the configured base URL.
func FormURL(baseURL string) string {
	return strings.TrimRight(baseURL, "/") + formPath
}

// ErrSessionInvalid aborts the rest of a batch: the cached cookies no longer
// yield a usable session, so every later file would fail the same way.
var ErrSessionInvalid = errors.New("session no longer valid")

// Config fixes the per-deployment submission parameters. Visibility and
// Kind are configuration, never inferred from content.
type Config struct {
	FormURL    string
	Visibility domain.Visibility
	Kind       domain.Kind
	// Strict aborts the whole batch when CSRF validation fails; when false
	// only the current file is skipped.
	Strict bool
}

// Pipeline drives uploads strictly sequentially: for each file, re-validate
// the session, build the form, submit, interpret the response. Session-level
// failures stop everything; single-input failures are isolated per file.
type Pipeline struct {
	gateway ports.SessionGateway
	meta    ports.MetadataStore
	history ports.HistoryRepository
	clock   ports.Clock
	log     *slog.Logger
	cfg     Config
}

func NewPipeline(gateway ports.SessionGateway, meta ports.MetadataStore, history ports.HistoryRepository, clock ports.Clock, log *slog.Logger, cfg Config) *Pipeline {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	return &Pipeline{
		gateway: gateway,
		meta:    meta,
		history: history,
		clock:   clock,
		log:     log,
		cfg:     cfg,
	}
}

// Run processes files in input order, one completing before the next
// begins. It returns a result per attempted file; the error is non-nil only
// when the batch aborted early with ErrSessionInvalid.
func (p *Pipeline) Run(ctx context.Context, files []string) ([]domain.UploadResult, error) {
	results := make([]domain.UploadResult, 0, len(files))

	for _, file := range files {
		result, err := p.uploadOne(ctx, file)
		if err != nil {
			if errors.Is(err, domain.ErrCsrfNotFound) && p.cfg.Strict {
				p.log.Error("csrf token missing, aborting batch", "file", file)
				return results, fmt.Errorf("%w: %v", ErrSessionInvalid, err)
			}
			p.log.Warn("upload failed", "file", file, "error", err)
			result = domain.Failed(file, err.Error(), p.clock.Now())
		}

		p.record(ctx, result)
		results = append(results, result)
	}

	return results, nil
}

func (p *Pipeline) uploadOne(ctx context.Context, file string) (domain.UploadResult, error) {
	// A session can expire mid-batch, and tokens are page-scoped, so the
	// form page is re-fetched before every file.
	page, err := p.gateway.Get(ctx, p.cfg.FormURL)
	if err != nil {
		return domain.UploadResult{}, fmt.Errorf("fetch form page: %w", err)
	}
	token, err := scrape.Token(page)
	if err != nil {
		return domain.UploadResult{}, err
	}

	meta, err := p.meta.Lookup(file)
	if err != nil {
		return domain.UploadResult{}, err
	}

	content, err := os.ReadFile(file)
	if err != nil {
		return domain.UploadResult{}, fmt.Errorf("read source file: %w", err)
	}

	payload := domain.BuildPayload(string(content), meta, p.cfg.Visibility, p.cfg.Kind, token)
	p.log.Debug("submitting dictionary", "file", file, "name", payload.Name, "kind", payload.Kind)

	response, err := p.gateway.SubmitForm(ctx, p.cfg.FormURL, formFields(payload))
	if err != nil {
		return domain.UploadResult{}, fmt.Errorf("submit form: %w", err)
	}

	if message, rejected := scrape.ErrorMessage(response.Body); rejected {
		p.log.Warn("remote rejected dictionary", "file", file, "message", message)
		return domain.Failed(file, fmt.Sprintf("%v: %s", domain.ErrRemoteRejected, message), p.clock.Now()), nil
	}

	p.log.Info("dictionary created", "file", file, "url", response.URL)
	return domain.Created(file, response.URL, p.clock.Now()), nil
}

// formFields maps the payload onto the names the remote form expects.
// Fields the form requires but this tool has no use for are sent empty.
func formFields(payload domain.Payload) map[string]string {
	return map[string]string{
		"name":        payload.Name,
		"description": payload.Description,
		"public":      string(payload.Visibility),
		"type":        string(payload.Kind),
		"words":       payload.Content,
		"info":        "",
		"url":         "",
		"submit":      submitLabel,
		"csrftoken":   payload.CsrfToken,
	}
}

func (p *Pipeline) record(ctx context.Context, result domain.UploadResult) {
	if p.history == nil {
		return
	}
	if err := p.history.Append(ctx, result); err != nil {
		p.log.Warn("record upload history", "file", result.SourceFile, "error", err)
	}
}
