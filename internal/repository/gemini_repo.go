package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"crypto-pulse/config"
	"crypto-pulse/internal/model"
	"crypto-pulse/pkg/logger"

	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

type SummarizerRepository interface {
	SummarizeArticle(ctx context.Context, article *model.NewsArticle) (string, error)
}

// geminiRepository summarizes news articles using the Google Gemini API.
type geminiRepository struct {
	cfg            *config.Config
	logger         *logger.Logger
	requestLimiter *rate.Limiter
	genAiClient    *genai.Client
}

func NewGeminiRepository(cfg *config.Config, log *logger.Logger) (SummarizerRepository, error) {
	genAiClient, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey: cfg.News.GeminiAPIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &geminiRepository{
		cfg:            cfg,
		logger:         log,
		requestLimiter: rate.NewLimiter(rate.Every(6*time.Second), 1),
		genAiClient:    genAiClient,
	}, nil
}

func (r *geminiRepository) SummarizeArticle(ctx context.Context, article *model.NewsArticle) (string, error) {
	if article == nil {
		return "", fmt.Errorf("no article to summarize")
	}

	if err := r.requestLimiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("failed to wait for gemini request limit: %w", err)
	}

	prompt := r.promptSummarize(article)
	contents := []*genai.Content{
		genai.NewContentFromText(prompt, "user"),
	}

	resp, err := r.genAiClient.Models.GenerateContent(ctx, r.cfg.News.GeminiModel, contents, nil)
	if err != nil {
		r.logger.ErrorContext(ctx, "failed to send request to gemini", logger.ErrorField(err))
		return "", fmt.Errorf("failed to send request to gemini: %w", err)
	}

	summary := strings.TrimSpace(resp.Text())
	if summary == "" {
		return "", fmt.Errorf("invalid response from Gemini API: no content found")
	}

	return summary, nil
}

func (r *geminiRepository) promptSummarize(article *model.NewsArticle) string {
	var sb strings.Builder
	sb.WriteString("Summarize the following crypto news article in at most three sentences for a Telegram audience. ")
	sb.WriteString("Keep it factual and avoid giving financial advice.\n\n")
	sb.WriteString("Title: " + article.Title + "\n")
	if article.Summary != "" {
		sb.WriteString("Content: " + article.Summary + "\n")
	}
	sb.WriteString("Source: " + article.Source + "\n")
	return sb.String()
}
