package blog

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/hitoshi/blogd/internal/security"
)

// Renderer はMarkdown原文をサニタイズ済みHTMLへ変換する。
// goldmark（GFM拡張付き）で変換した後、許可リストベースのポリシーで
// 危険なタグと属性を除去する。
type Renderer struct {
	md        goldmark.Markdown
	sanitizer security.ContentSanitizerService
}

// NewRenderer はRendererを生成する。
func NewRenderer(sanitizer security.ContentSanitizerService) *Renderer {
	return &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
		),
		sanitizer: sanitizer,
	}
}

// Render はMarkdownをサニタイズ済みHTMLへ変換する。
func (r *Renderer) Render(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("Markdownの変換に失敗しました: %w", err)
	}
	return r.sanitizer.Sanitize(buf.String()), nil
}
