package telegram

import (
	"context"
	"fmt"
	"strings"

	"crypto-pulse/pkg/logger"

	"gopkg.in/telebot.v3"
)

func (t *TelegramBotHandler) handleNews(ctx context.Context, c telebot.Context) error {
	article, summary, err := t.service.NewsService.Latest(ctx)
	if err != nil {
		t.log.ErrorContext(ctx, "Failed to load latest news", logger.ErrorField(err))
		_, sendErr := t.telegram.Send(ctx, c, commonErrorInternal)
		return sendErr
	}

	if article == nil {
		_, err := t.telegram.Send(ctx, c, "📰 No news cached yet, please check back later.")
		return err
	}

	body := &strings.Builder{}
	body.WriteString(fmt.Sprintf("📰 <b>%s</b>\n", article.Title))
	body.WriteString(fmt.Sprintf("<i>%s — %s</i>\n\n", article.Source, article.PublishedAt.Format("2 Jan 2006 15:04")))

	if summary != "" {
		body.WriteString(summary)
	} else if article.Summary != "" {
		body.WriteString(article.Summary)
	}
	body.WriteString(fmt.Sprintf("\n\n%s", article.URL))

	_, err = t.telegram.Send(ctx, c, body.String(), telebot.ModeHTML)
	return err
}
