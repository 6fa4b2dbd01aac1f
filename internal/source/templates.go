package source

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"wrapper-generator/internal/common"
	"wrapper-generator/internal/diagnostic"
	"wrapper-generator/internal/feature"
)

// ErrSourceNotFound is returned when a feature's source file does not exist.
// It wraps fs.ErrNotExist.
var ErrSourceNotFound = errors.New("template source file not found")

// Scanner finds which template substitution applies to a declaration in a header.
type Scanner interface {
	// Scan reads the header text and returns the replacement of the first
	// matching substitution, or false when none matches.
	Scan(r io.Reader, name string, subs []feature.TemplateSubstitution) ([][]string, bool, error)
}

// LineAdjacency matches a template line immediately followed by the
// declaration line. It does not parse C++: a template header and class
// keyword written on one line, or separated by other lines, do not match.
type LineAdjacency struct {
	// Keyword introduces the declaration, "class" by default.
	Keyword string
}

// codeLine is one kept line of source, in trimmed and compact form.
type codeLine struct {
	text    string
	compact string
}

// Scan implements Scanner.
func (s LineAdjacency) Scan(r io.Reader, name string, subs []feature.TemplateSubstitution) ([][]string, bool, error) {
	lines, err := codeLines(r)
	if err != nil {
		return nil, false, err
	}

	keyword := s.Keyword
	if keyword == "" {
		keyword = "class"
	}

	decl := keyword + name

	for _, sub := range subs {
		sig := common.StripSpaces(sub.Signature)
		sigNames := paramNames(sub.Signature)

		for i := 0; i+1 < len(lines); i++ {
			if !templateLineMatches(lines[i], sig, sigNames) {
				continue
			}

			if declLineMatches(lines[i+1].compact, decl) {
				return sub.Replacement, true, nil
			}
		}
	}

	return nil, false, nil
}

func templateLineMatches(l codeLine, sig string, sigNames []string) bool {
	if sig != "" && strings.Contains(l.compact, "template"+sig) {
		return true
	}

	at := strings.Index(l.text, "template")
	if at < 0 || len(sigNames) == 0 {
		return false
	}

	open := strings.Index(l.text[at:], "<")
	if open < 0 {
		return false
	}

	return slices.Equal(paramNames(l.text[at+open:]), sigNames)
}

func declLineMatches(next, decl string) bool {
	if next == decl {
		return true
	}

	rest, ok := strings.CutPrefix(next, decl)

	return ok && (strings.HasPrefix(rest, ":") || strings.HasPrefix(rest, "{"))
}

// paramNames returns the parameter names of a template parameter list such
// as "<unsigned DIM, typename T = int>", giving ["DIM", "T"].
func paramNames(list string) []string {
	list = strings.TrimSpace(list)
	list = strings.TrimPrefix(list, "<")

	if end := matchingClose(list); end >= 0 {
		list = list[:end]
	}

	var names []string

	for _, param := range splitTopLevel(list) {
		if eq := strings.Index(param, "="); eq >= 0 {
			param = param[:eq]
		}

		fields := strings.FieldsFunc(param, func(r rune) bool {
			return r == ' ' || r == '\t' || r == '*' || r == '&'
		})
		if len(fields) == 0 {
			continue
		}

		names = append(names, strings.TrimSuffix(fields[len(fields)-1], "..."))
	}

	return names
}

// matchingClose returns the index of the ">" closing an already opened
// list, or -1.
func matchingClose(s string) int {
	depth := 0

	for i, r := range s {
		switch r {
		case '<':
			depth++
		case '>':
			if depth == 0 {
				return i
			}

			depth--
		}
	}

	return -1
}

func splitTopLevel(s string) []string {
	var (
		parts []string
		depth int
		start int
	)

	for i, r := range s {
		switch r {
		case '<', '(':
			depth++
		case '>', ')':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}

	return append(parts, s[start:])
}

// codeLines keeps the non-blank lines of r that are not comments or
// preprocessor directives.
func codeLines(r io.Reader) ([]codeLine, error) {
	var (
		out     []codeLine
		inBlock bool
	)

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())

		if inBlock {
			if strings.Contains(line, "*/") {
				inBlock = false
			}

			continue
		}

		if strings.HasPrefix(line, "#") || strings.HasPrefix(line, "*") {
			continue
		}

		line, inBlock = stripComments(line)
		if line == "" {
			continue
		}

		out = append(out, codeLine{text: line, compact: common.StripSpaces(line)})
	}

	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read source: %w", err)
	}

	return out, nil
}

// stripComments removes line and block comments from line. The result is
// trimmed; open reports a block comment left unterminated.
func stripComments(line string) (code string, open bool) {
	var b strings.Builder

	for {
		lineAt := strings.Index(line, "//")
		blockAt := strings.Index(line, "/*")

		if blockAt < 0 || (lineAt >= 0 && lineAt < blockAt) {
			if lineAt >= 0 {
				line = line[:lineAt]
			}

			b.WriteString(line)

			return strings.TrimSpace(b.String()), false
		}

		b.WriteString(line[:blockAt])

		end := strings.Index(line[blockAt+2:], "*/")
		if end < 0 {
			return strings.TrimSpace(b.String()), true
		}

		b.WriteByte(' ')
		line = line[blockAt+2+end+2:]
	}
}

// InferTemplates fills template_arg_lists of classes that have none, using
// the gathered template substitutions and the class header. A class
// without substitutions is skipped without reading its header. A missing
// header is fatal; no match is recorded as an info diagnostic.
func InferTemplates(tree *feature.Tree, scanner Scanner, diags *diagnostic.Diagnostics) error {
	for _, m := range tree.Modules() {
		for _, n := range tree.Children(m.ID, feature.KindClass) {
			if n.TemplateArgLists != nil || n.SourceFileFullPath == "" {
				continue
			}

			subs := tree.TemplateSubstitutions(n.ID)
			if len(subs) == 0 {
				continue
			}

			args, ok, err := scanFile(scanner, n.SourceFileFullPath, n.Name, subs)
			if err != nil {
				return fmt.Errorf("failed to infer templates for %s: %w", tree.Label(n.ID), err)
			}

			if !ok {
				diags.AddInfo(diagnostic.CodeTemplateNotInferred,
					"no template signature matched; treated as untemplated", tree.Label(n.ID), n.SourceFileFullPath)

				continue
			}

			n.TemplateArgLists = make([][]string, len(args))
			for i, a := range args {
				n.TemplateArgLists[i] = slices.Clone(a)
			}
		}
	}

	return nil
}

func scanFile(scanner Scanner, path, name string, subs []feature.TemplateSubstitution) ([][]string, bool, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, fmt.Errorf("%w: %w", ErrSourceNotFound, err)
		}

		return nil, false, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	return scanner.Scan(f, name, subs)
}
