package course

import (
	"fmt"
	"regexp"
	"strings"
)

type edgeSpec struct {
	From   string
	To     string
	Bridge string
}

func splitStatements(dot string) []string {
	var out []string
	var b strings.Builder
	inQuotes := false
	escape := false

	for _, r := range dot {
		if escape {
			b.WriteRune(r)
			escape = false
			continue
		}
		if r == '\\' && inQuotes {
			b.WriteRune(r)
			escape = true
			continue
		}
		if r == '"' {
			inQuotes = !inQuotes
			b.WriteRune(r)
			continue
		}
		if (r == ';' || r == '\n') && !inQuotes {
			s := strings.TrimSpace(b.String())
			if s != "" {
				out = append(out, s)
			}
			b.Reset()
			continue
		}
		b.WriteRune(r)
	}
	if s := strings.TrimSpace(b.String()); s != "" {
		out = append(out, s)
	}
	return out
}

var edgeStmtRe = regexp.MustCompile(`^\s*([A-Za-z_][A-Za-z0-9_]*)\s*->\s*([A-Za-z_][A-Za-z0-9_]*)\s*(\[(.*)\])?\s*$`)
var bridgeRe = regexp.MustCompile(`bridge\s*=\s*"([^"]*)"`)

// extractEdgesInTextOrder walks the DOT statements and returns edges in
// the order the author wrote them, with their bridge attribute.
func extractEdgesInTextOrder(dot string) ([]edgeSpec, error) {
	stmts := splitStatements(dot)
	out := make([]edgeSpec, 0)

	for _, s := range stmts {
		if !strings.Contains(s, "->") {
			continue
		}

		m := edgeStmtRe.FindStringSubmatch(s)
		if m == nil {
			return nil, fmt.Errorf("unsupported edge statement: %q", s)
		}

		from := m[1]
		to := m[2]
		attrs := ""
		if len(m) >= 5 {
			attrs = m[4]
		}

		bridge := ""
		if attrs != "" {
			bm := bridgeRe.FindStringSubmatch(attrs)
			if bm != nil {
				bridge = strings.TrimSpace(bm[1])
			}
		}

		out = append(out, edgeSpec{From: from, To: to, Bridge: bridge})
	}

	return out, nil
}
