package lef

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// NameCase converts identifiers stored by the builders. LEF files written
// with NAMESCASESENSITIVE OFF compare names case-insensitively, which the
// model implements by upper-casing every stored name.
type NameCase struct {
	sensitive bool
	upper     cases.Caser
}

// NewNameCase returns a converter. With sensitive set, names are kept as
// written.
func NewNameCase(sensitive bool) *NameCase {
	return &NameCase{sensitive: sensitive, upper: cases.Upper(language.Und)}
}

// Sensitive reports whether names are kept as written.
func (c *NameCase) Sensitive() bool {
	return c == nil || c.sensitive
}

// Apply converts name according to the case policy. A nil NameCase is case
// sensitive.
func (c *NameCase) Apply(name string) string {
	if c == nil || c.sensitive {
		return name
	}
	return c.upper.String(name)
}
