// Package terminology applies domain-vocabulary corrections to transcript
// text, fixing the terms speech recognition reliably gets wrong.
package terminology

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"sort"

	"github.com/biofool/closedcaption-spellchecker/caption"
)

// replacement is one compiled correction rule.
type replacement struct {
	wrong   string
	correct string
	pattern *regexp.Regexp
}

// Mapper applies terminology corrections to text. Corrections match
// case-insensitively and apply longest key first so a short key never
// clobbers part of a longer one.
type Mapper struct {
	rules []replacement
}

// NewMapper builds a mapper from a wrong-to-correct mapping.
func NewMapper(mappings map[string]string) *Mapper {
	rules := make([]replacement, 0, len(mappings))
	for wrong, correct := range mappings {
		rules = append(rules, replacement{
			wrong:   wrong,
			correct: correct,
			pattern: regexp.MustCompile(`(?i)` + regexp.QuoteMeta(wrong)),
		})
	}

	sort.Slice(rules, func(i, j int) bool {
		if len(rules[i].wrong) != len(rules[j].wrong) {
			return len(rules[i].wrong) > len(rules[j].wrong)
		}
		return rules[i].wrong < rules[j].wrong
	})

	return &Mapper{rules: rules}
}

// LoadMapper reads a JSON mapping file. Both the structured form
// {"mappings": {"wrong": "correct"}} and a flat {"wrong": "correct"} object
// are accepted. A missing file yields an empty mapper, not an error; invalid
// JSON is an error.
func LoadMapper(path string) (*Mapper, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewMapper(nil), nil
		}
		return nil, fmt.Errorf("read mapping file %s: %w", path, err)
	}

	var structured struct {
		Mappings map[string]string `json:"mappings"`
	}
	if err := json.Unmarshal(data, &structured); err == nil && structured.Mappings != nil {
		return NewMapper(structured.Mappings), nil
	}

	var flat map[string]string
	if err := json.Unmarshal(data, &flat); err != nil {
		return nil, fmt.Errorf("parse mapping file %s: %w", path, err)
	}
	return NewMapper(flat), nil
}

// Apply returns text with every correction applied. Replacement text is
// inserted literally.
func (m *Mapper) Apply(text string) string {
	for _, rule := range m.rules {
		text = rule.pattern.ReplaceAllLiteralString(text, rule.correct)
	}
	return text
}

// ApplySegments returns a copy of segs with corrections applied to each
// segment's text. The input is never modified.
func (m *Mapper) ApplySegments(segs []caption.Segment) []caption.Segment {
	out := make([]caption.Segment, len(segs))
	for i, seg := range segs {
		seg.Text = m.Apply(seg.Text)
		out[i] = seg
	}
	return out
}

// Len returns the number of correction rules.
func (m *Mapper) Len() int { return len(m.rules) }

// IsEmpty reports whether the mapper has no correction rules.
func (m *Mapper) IsEmpty() bool { return len(m.rules) == 0 }
