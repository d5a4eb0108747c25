package classify

import (
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// mdParser is shared across calls; goldmark parsers are safe for concurrent
// use once constructed.
var mdParser = goldmark.New().Parser()

// isMarkdown applies the Markdown heuristic: the text must exhibit at least
// two distinct Markdown block signals among heading, fenced code block,
// blockquote, and link. Callers gate this on low HTML tag density so that
// HTML-heavy snippets containing a literal "#" are not misclassified.
func isMarkdown(sample string) bool {
	root := mdParser.Parse(text.NewReader([]byte(sample)), parser.WithContext(parser.NewContext()))

	var heading, fence, quote, link bool
	_ = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n.(type) {
		case *ast.Heading:
			heading = true
		case *ast.FencedCodeBlock:
			fence = true
		case *ast.Blockquote:
			quote = true
		case *ast.Link, *ast.AutoLink:
			link = true
		}
		return ast.WalkContinue, nil
	})

	signals := 0
	for _, hit := range []bool{heading, fence, quote, link} {
		if hit {
			signals++
		}
	}
	return signals >= 2
}
