// Package jsonview syntax-highlights JSON for terminal output.
package jsonview

import (
	"encoding/json"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/charmbracelet/lipgloss"
)

// Styles holds styles for JSON tokens.
type Styles struct {
	Text        lipgloss.Style
	Key         lipgloss.Style
	String      lipgloss.Style
	Number      lipgloss.Style
	Bool        lipgloss.Style
	Null        lipgloss.Style
	Punctuation lipgloss.Style
}

// DefaultStyles returns plain styles.
func DefaultStyles() Styles {
	return Styles{
		Text:        lipgloss.NewStyle(),
		Key:         lipgloss.NewStyle(),
		String:      lipgloss.NewStyle(),
		Number:      lipgloss.NewStyle(),
		Bool:        lipgloss.NewStyle(),
		Null:        lipgloss.NewStyle(),
		Punctuation: lipgloss.NewStyle(),
	}
}

// ColorStyles returns the styles used on a terminal.
func ColorStyles() Styles {
	return Styles{
		Text:        lipgloss.NewStyle(),
		Key:         lipgloss.NewStyle().Foreground(lipgloss.Color("#74C0FC")),
		String:      lipgloss.NewStyle().Foreground(lipgloss.Color("#8CE99A")),
		Number:      lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD43B")),
		Bool:        lipgloss.NewStyle().Foreground(lipgloss.Color("#E599F7")),
		Null:        lipgloss.NewStyle().Faint(true),
		Punctuation: lipgloss.NewStyle().Faint(true),
	}
}

// Marshal renders v as two-space indented JSON.
func Marshal(v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Highlight styles every token of jsonText. Text the lexer cannot handle is
// returned unchanged.
func Highlight(jsonText string, styles Styles) string {
	lines := tokenizeJSONLines(jsonText)
	if lines == nil {
		return jsonText
	}
	out := make([]string, len(lines))
	for i, tokens := range lines {
		var b strings.Builder
		for _, token := range tokens {
			b.WriteString(styles.forToken(token).Render(token.Value))
		}
		out[i] = b.String()
	}
	return strings.Join(out, "\n")
}

func (s Styles) forToken(token chroma.Token) lipgloss.Style {
	switch {
	case token.Type == chroma.NameTag:
		return s.Key
	case token.Type.InSubCategory(chroma.LiteralString):
		return s.String
	case token.Type.InSubCategory(chroma.LiteralNumber):
		return s.Number
	case token.Type.InCategory(chroma.Keyword):
		if token.Value == "null" {
			return s.Null
		}
		return s.Bool
	case token.Type == chroma.Punctuation:
		return s.Punctuation
	default:
		return s.Text
	}
}

func tokenizeJSONLines(jsonText string) [][]chroma.Token {
	if jsonLexer == nil {
		return nil
	}

	iterator, err := jsonLexer.Tokenise(nil, jsonText)
	if err != nil {
		return nil
	}

	lines := [][]chroma.Token{{}}
	for _, token := range iterator.Tokens() {
		if token.Type == chroma.EOFType {
			break
		}
		if token.Value == "" {
			continue
		}

		parts := strings.Split(token.Value, "\n")
		for i, part := range parts {
			if i > 0 {
				lines = append(lines, []chroma.Token{})
			}
			if part == "" {
				continue
			}
			lines[len(lines)-1] = append(lines[len(lines)-1], chroma.Token{Type: token.Type, Value: part})
		}
	}

	return lines
}

var jsonLexer = func() chroma.Lexer {
	lexer := lexers.Get("json")
	if lexer == nil {
		return nil
	}
	return chroma.Coalesce(lexer)
}()
