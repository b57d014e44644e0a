package problemlens

import (
	"fmt"
	"regexp"

	"github.com/bmatcuk/doublestar/v4"
)

// sourceRuleRe parses the "source" / "source(code)" rule syntax.
var sourceRuleRe = regexp.MustCompile(`^([^(]+?)\s*(?:\((.+)\))?$`)

type sourceCodeRule struct {
	source string
	code   string
}

// ExclusionRules answers whether a diagnostic or a whole document is
// excluded from display. All three criteria are OR'd: any match excludes.
// Rebuilt wholesale on configuration change, read-only in between.
type ExclusionRules struct {
	messages []*regexp.Regexp
	sources  []sourceCodeRule
	patterns []string
}

// NewExclusionRules compiles the configured exclusion lists. Message
// patterns are matched case-insensitively; a pattern that fails to
// compile aborts the whole rebuild so the user sees their mistake.
// Source rules that do not parse are silently dropped.
func NewExclusionRules(messages, sources, patterns []string) (*ExclusionRules, error) {
	rules := &ExclusionRules{patterns: patterns}

	for _, pat := range messages {
		re, err := regexp.Compile("(?i)" + pat)
		if err != nil {
			return nil, fmt.Errorf("exclude pattern %q: %w", pat, err)
		}
		rules.messages = append(rules.messages, re)
	}

	for _, raw := range sources {
		m := sourceRuleRe.FindStringSubmatch(raw)
		if m == nil || m[1] == "" {
			continue
		}
		rules.sources = append(rules.sources, sourceCodeRule{source: m[1], code: m[2]})
	}

	return rules, nil
}

// ExcludesDocument reports whether the document matches any configured
// document pattern. No patterns means no document is excluded.
func (r *ExclusionRules) ExcludesDocument(doc Document) bool {
	for _, pat := range r.patterns {
		if ok, err := doublestar.Match(pat, doc.Path); err == nil && ok {
			return true
		}
	}
	return false
}

// Excludes reports whether the diagnostic should be suppressed, either
// by message pattern, by source/code rule, or because its document is
// excluded.
func (r *ExclusionRules) Excludes(d Diagnostic, doc Document) bool {
	for _, re := range r.messages {
		if re.MatchString(d.Message) {
			return true
		}
	}

	for _, rule := range r.sources {
		if rule.source != d.Source {
			continue
		}
		if rule.code == "" || rule.code == d.Code.String() {
			return true
		}
	}

	return r.ExcludesDocument(doc)
}
