package docs

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Synopsis returns the title and the first paragraph of a topic, as raw markdown.
func Synopsis(topic string) (title, summary string, err error) {
	content, err := GetTopic(topic)
	if err != nil {
		return "", "", err
	}
	source := []byte(content)
	root := goldmark.DefaultParser().Parse(text.NewReader(source))

	err = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n := n.(type) {
		case *ast.Heading:
			if title == "" && n.Level == 1 {
				title = lines(n, source)
			}
			return ast.WalkSkipChildren, nil
		case *ast.Paragraph:
			summary = lines(n, source)
			return ast.WalkStop, nil
		}
		return ast.WalkContinue, nil
	})
	return title, summary, err
}

// lines joins the raw lines of a block node.
func lines(n ast.Node, source []byte) string {
	var parts []string
	for i := 0; i < n.Lines().Len(); i++ {
		line := n.Lines().At(i)
		parts = append(parts, strings.TrimSpace(string(line.Value(source))))
	}
	return strings.Join(parts, " ")
}
