package titlegen

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"go.uber.org/zap"

	"quizflow/internal/config"
	"quizflow/internal/domain"
)

// DefaultTitle is returned when a file name yields no usable title.
const DefaultTitle = "Quiz"

// TitleDeriver asks the completion service for a short quiz title and falls
// back to a deterministic filename-derived title on any failure. It never
// returns an error and never blocks quiz generation.
type TitleDeriver struct {
	llm         llms.Model
	maxTokens   int
	temperature float64
	logger      *zap.Logger
}

// NewTitleDeriver creates a new TitleDeriver backed by an OpenAI-compatible
// langchaingo client pointed at the OpenRouter API. With no credential the
// deriver is constructed without a model and serves the local fallback only.
func NewTitleDeriver(cfg config.OpenRouterConfig, gen config.GenerationConfig, logger *zap.Logger) *TitleDeriver {
	deriver := &TitleDeriver{
		maxTokens:   gen.TitleMaxTokens,
		temperature: gen.TitleTemperature,
		logger:      logger,
	}
	if cfg.APIKey == "" {
		logger.Warn("no OpenRouter credential, quiz titles will be derived from file names")
		return deriver
	}

	llm, err := openai.New(
		openai.WithToken(cfg.APIKey),
		openai.WithModel(cfg.DefaultModel),
		openai.WithBaseURL(baseURL(cfg.Endpoint)),
		openai.WithHTTPClient(&http.Client{
			Transport: headerTransport{
				base:    http.DefaultTransport,
				referer: cfg.Referer,
				title:   cfg.AppTitle,
			},
			Timeout: cfg.RequestTimeout,
		}),
	)
	if err != nil {
		logger.Warn("failed to create title model, quiz titles will be derived from file names", zap.Error(err))
		return deriver
	}
	deriver.llm = llm
	return deriver
}

// DeriveTitle implements domain.TitleDeriver.
func (d *TitleDeriver) DeriveTitle(ctx context.Context, fileName string) string {
	if d.llm != nil {
		prompt := fmt.Sprintf("Generate a title for a quiz based on the following (PDF) file name. "+
			"Try and extract as much info from the file name as possible. "+
			"If the file name is just numbers or incoherent, just return %q. "+
			"Respond with just the title, nothing else.\n\n%s", DefaultTitle, fileName)

		title, err := llms.GenerateFromSinglePrompt(ctx, d.llm, prompt,
			llms.WithMaxTokens(d.maxTokens),
			llms.WithTemperature(d.temperature),
		)
		if err == nil {
			if t := strings.TrimSpace(title); t != "" {
				return t
			}
		}
		titleErr := domain.NewError(domain.ErrTitleUnavailable, "title generation failed", err)
		d.logger.Warn("falling back to filename-derived title",
			zap.String("file_name", fileName),
			zap.Error(titleErr),
		)
	}
	return TitleFromFileName(fileName)
}

// TitleFromFileName strips the extension, replaces separators with spaces
// and title-cases each word. Stems shorter than 3 characters yield the
// default title.
func TitleFromFileName(fileName string) string {
	stem := strings.TrimSuffix(fileName, filepath.Ext(fileName))
	if len(stem) < 3 {
		return DefaultTitle
	}
	replaced := strings.NewReplacer("_", " ", "-", " ").Replace(stem)
	words := strings.Fields(replaced)
	if len(words) == 0 {
		return DefaultTitle
	}
	for i, word := range words {
		runes := []rune(word)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}

// baseURL turns the chat-completions endpoint into the API base the
// langchaingo client expects.
func baseURL(endpoint string) string {
	return strings.TrimSuffix(endpoint, "/chat/completions")
}

// headerTransport adds the OpenRouter attribution headers to every request.
type headerTransport struct {
	base    http.RoundTripper
	referer string
	title   string
}

func (t headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req.Header.Set("HTTP-Referer", t.referer)
	req.Header.Set("X-Title", t.title)
	return t.base.RoundTrip(req)
}

var _ domain.TitleDeriver = (*TitleDeriver)(nil)
