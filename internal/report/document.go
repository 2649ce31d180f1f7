// Package report turns a computed result bundle into a structured lab report document.
// Number formatting goes through named policies so every figure of one kind looks the same.
package report

import "strconv"

// Policy is a named number format
type Policy struct {
	Name      string
	Verb      byte // 'f' fixed point, 'e' exponent
	Precision int
}

// Format renders v under the policy
func (p Policy) Format(v float64) string {
	return strconv.FormatFloat(v, p.Verb, p.Precision, 64)
}

// Formatting policies used throughout the report
var (
	DiameterMM     = Policy{Name: "diameter-mm", Verb: 'f', Precision: 3}
	LengthMM       = Policy{Name: "length-mm", Verb: 'f', Precision: 1}
	ReadingMM      = Policy{Name: "reading-mm", Verb: 'f', Precision: 1}
	ReadingDeltaMM = Policy{Name: "reading-delta-mm", Verb: 'f', Precision: 2}
	LoadKg         = Policy{Name: "load-kg", Verb: 'f', Precision: 2}
	SI             = Policy{Name: "si", Verb: 'e', Precision: 3}
	Headline       = Policy{Name: "headline", Verb: 'e', Precision: 2}
	Script         = Policy{Name: "script", Verb: 'e', Precision: 6}
)

// BlockKind tells the renderer how to lay a block out
type BlockKind string

const (
	Subheading BlockKind = "subheading"
	Paragraph  BlockKind = "paragraph"
	Formula    BlockKind = "formula"
	Highlight  BlockKind = "highlight"
	TableKind  BlockKind = "table"
	Code       BlockKind = "code"
	Image      BlockKind = "image"
)

// Table is a plain header + rows grid
type Table struct {
	Header []string
	Rows   [][]string
}

// Block is one renderable element of a section
type Block struct {
	Kind  BlockKind
	Text  string
	Table *Table
	PNG   []byte // Image blocks only
}

// Section is a titled group of blocks; ID is stable and used as the HTML id
type Section struct {
	ID      string
	Heading string
	Blocks  []Block
}

// Document is the whole report
type Document struct {
	Title    string
	Sections []Section
}

// Section returns the section with the given ID, or nil
func (d *Document) Section(id string) *Section {
	for i := range d.Sections {
		if d.Sections[i].ID == id {
			return &d.Sections[i]
		}
	}
	return nil
}

func subheading(text string) Block { return Block{Kind: Subheading, Text: text} }
func paragraph(text string) Block  { return Block{Kind: Paragraph, Text: text} }
func formula(text string) Block    { return Block{Kind: Formula, Text: text} }
func highlight(text string) Block  { return Block{Kind: Highlight, Text: text} }
