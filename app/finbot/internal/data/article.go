package data

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-shiori/go-readability"

	"github.com/iWorld-y/finbot/app/finbot/internal/biz"
	"github.com/iWorld-y/finbot/app/finbot/internal/conf"
)

type articleRepo struct {
	data *Data
	conf *conf.Fetcher
	log  *log.Helper
}

// NewArticleRepo 基于 readability 的文章抓取实现
func NewArticleRepo(data *Data, c *conf.Fetcher, logger log.Logger) biz.ArticleFetcher {
	return &articleRepo{
		data: data,
		conf: c,
		log:  log.NewHelper(log.With(logger, "module", "data/article")),
	}
}

// Fetch 抓取 URL 并提取正文。
// 不校验 scheme/host，交给 net/http 处理；任何失败都返回 FETCH_FAILURE，不重试。
func (r *articleRepo) Fetch(ctx context.Context, rawURL string) (*biz.ArticleContent, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, biz.ErrFetch(err)
	}
	req.Header.Set("User-Agent", r.conf.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.5")

	resp, err := r.data.http.Do(req)
	if err != nil {
		return nil, biz.ErrFetch(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, biz.ErrFetch(fmt.Errorf("unexpected status %s", resp.Status))
	}
	if ct := resp.Header.Get("Content-Type"); ct != "" && !isHTML(ct) {
		return nil, biz.ErrFetch(fmt.Errorf("unsupported content type %q", ct))
	}

	body, err := r.readBody(resp)
	if err != nil {
		return nil, biz.ErrFetch(err)
	}

	// 重定向之后的地址用于解析相对链接
	article, err := readability.FromReader(bytes.NewReader(body), resp.Request.URL)
	if err != nil {
		return nil, biz.ErrFetch(fmt.Errorf("parse article: %w", err))
	}

	text := strings.TrimSpace(article.TextContent)
	if text == "" {
		return nil, biz.ErrFetch(errors.New("no article text could be extracted"))
	}
	r.log.WithContext(ctx).Debugf("extracted %d chars from %s (title=%q)", len(text), rawURL, article.Title)

	return &biz.ArticleContent{
		URL:      rawURL,
		Title:    strings.TrimSpace(article.Title),
		Byline:   strings.TrimSpace(article.Byline),
		SiteName: strings.TrimSpace(article.SiteName),
		Excerpt:  strings.TrimSpace(article.Excerpt),
		Text:     text,
	}, nil
}

// readBody 读取响应体，超过 max_body_bytes 直接失败，避免对截断的文章生成报告
func (r *articleRepo) readBody(resp *http.Response) ([]byte, error) {
	limit := r.conf.MaxBodyBytes
	if limit > 0 && resp.ContentLength > limit {
		return nil, fmt.Errorf("article exceeds %d bytes", limit)
	}

	var src io.Reader = resp.Body
	if limit > 0 {
		src = io.LimitReader(resp.Body, limit+1)
	}
	body, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if limit > 0 && int64(len(body)) > limit {
		return nil, fmt.Errorf("article exceeds %d bytes", limit)
	}
	return body, nil
}

func isHTML(contentType string) bool {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mt == "text/html" || mt == "application/xhtml+xml"
}
