package recipe

import (
	"fmt"
	"strings"

	cahirperrors "github.com/aelto/cahirp/internal/errors"
)

// tagEntry pairs a recipe parameter keyword with the ParamKind it produces.
var tagEntries = []struct {
	tag  string
	kind ParamKind
}{
	{"file", KindFile},
	{"at", KindAt},
	{"above", KindAbove},
	{"below", KindBelow},
	{"select", KindSelect},
	{"note", KindNote},
	{"ifdef", KindIfDef},
	{"ifndef", KindIfNotDef},
	{"define", KindDefine},
	{"export", KindExport},
	{"use", KindUse},
}

const (
	multilineSelectOpen  = "select[["
	multilineSelectClose = "]]\n"
	paramValueClose      = ")\n"
)

// ParseFileContent parses one recipe file's content into a list of
// Directives in file order, plus any parse diagnostics for forms that had to
// be skipped. sourceMod and sourceFile are carried onto every Directive and
// diagnostic purely for reporting.
//
// Directive IDs are left at their zero value; the build driver assigns the
// stable, process-unique DirectiveID once every mod has been parsed.
func ParseFileContent(content, sourceMod, sourceFile string) ([]Directive, []*cahirperrors.ParseDiagnostic) {
	ctx := NewContext()

	var directives []Directive
	var diags []*cahirperrors.ParseDiagnostic

	for _, raw := range splitForms(content) {
		isContext, params, body, err := parseForm(raw)
		if err != nil {
			diags = append(diags, cahirperrors.NewParseDiagnostic(sourceMod, sourceFile, err.Error()))
			continue
		}

		if isContext {
			ctx.Merge(params)
			continue
		}

		directives = append(directives, Directive{
			Params:     ctx.Apply(params),
			Code:       body,
			SourceMod:  sourceMod,
			SourceFile: sourceFile,
		})
	}

	return directives, diags
}

// splitForms walks content and extracts every top-level "@..." form as a raw,
// trimmed substring. A form runs from its leading '@' up to the character
// before the next top-level '@', or end of input — snippet bodies are opaque
// text and may contain almost anything except another '@' at an unguarded
// position (see the recipe grammar's known delimiting limitation).
func splitForms(content string) []string {
	var forms []string

	s := content
	for {
		start := strings.IndexByte(s, '@')
		if start < 0 {
			break
		}
		s = s[start:]

		next := strings.IndexByte(s[1:], '@')
		var form string
		if next < 0 {
			form = s
			s = ""
		} else {
			form = s[:next+1]
			s = s[next+1:]
		}

		form = strings.TrimSpace(form)
		if form != "" {
			forms = append(forms, form)
		}

		if s == "" {
			break
		}
	}

	return forms
}

// parseForm parses one "@context(...)" or "@insert(...)body" form.
func parseForm(raw string) (isContext bool, params Params, body string, err error) {
	if !strings.HasPrefix(raw, "@") {
		return false, nil, "", fmt.Errorf("form does not start with '@'")
	}
	rest := raw[1:]

	switch {
	case strings.HasPrefix(rest, "context"):
		isContext = true
		rest = rest[len("context"):]
	case strings.HasPrefix(rest, "insert"):
		isContext = false
		rest = rest[len("insert"):]
	default:
		return false, nil, "", fmt.Errorf("unknown form %q, expected @context or @insert", preview(rest))
	}

	rest = strings.TrimLeft(rest, " \t")
	if !strings.HasPrefix(rest, "(") {
		return false, nil, "", fmt.Errorf("expected '(' after form name")
	}

	params, remainder, err := parseParamBlock(rest[1:])
	if err != nil {
		return false, nil, "", err
	}

	return isContext, params, strings.TrimSpace(remainder), nil
}

// parseParamBlock parses zero or more "name(value)\n" entries (plus the
// "select[[ ... ]]\n" special form) up to and including the block's closing
// ')', returning the parsed parameters and whatever text follows the ')'.
func parseParamBlock(s string) (Params, string, error) {
	var params Params

	for {
		s = trimParamWhitespace(s)

		if s == "" {
			return nil, "", fmt.Errorf("unterminated parameter block")
		}

		if s[0] == ')' {
			return params, s[1:], nil
		}

		if strings.HasPrefix(s, multilineSelectOpen) {
			rest := s[len(multilineSelectOpen):]
			idx := strings.Index(rest, multilineSelectClose)
			if idx < 0 {
				return nil, "", fmt.Errorf("unterminated select[[ ]] block")
			}
			params = append(params, Parameter{Kind: KindMultilineSelect, Value: rest[:idx]})
			s = rest[idx+len(multilineSelectClose):]
			continue
		}

		tag, kind, matched := matchTag(s)
		if !matched {
			return nil, "", fmt.Errorf("expected a parameter or ')' near %q", preview(s))
		}

		rest := s[len(tag)+1:] // +1 for the '('
		idx := strings.Index(rest, paramValueClose)
		if idx < 0 {
			return nil, "", fmt.Errorf("unterminated %s(...) parameter", tag)
		}

		params = append(params, Parameter{Kind: kind, Value: unquote(rest[:idx])})
		s = rest[idx+len(paramValueClose):]
	}
}

func matchTag(s string) (tag string, kind ParamKind, ok bool) {
	for _, entry := range tagEntries {
		prefix := entry.tag + "("
		if strings.HasPrefix(s, prefix) {
			return entry.tag, entry.kind, true
		}
	}
	return "", 0, false
}

// trimParamWhitespace strips the whitespace the original grammar treats as
// insignificant between parameters: spaces, newlines, and carriage returns.
func trimParamWhitespace(s string) string {
	return strings.TrimLeft(s, " \t\n\r")
}

// unquote strips one layer of surrounding double quotes, if present.
func unquote(value string) string {
	if len(value) >= 2 && strings.HasPrefix(value, `"`) && strings.HasSuffix(value, `"`) {
		return value[1 : len(value)-1]
	}
	return value
}

func preview(s string) string {
	const max = 40
	s = strings.TrimSpace(s)
	if len(s) > max {
		return s[:max] + "..."
	}
	return s
}
