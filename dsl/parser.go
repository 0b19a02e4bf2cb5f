package dsl

import (
	"fmt"
	"io"
	"strconv"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// .cv 文件是简历记录的手写形式：
//
//	resume {
//	  template: technical
//	  personal {
//	    name: "Jane Doe"
//	    email: "jane@example.com"
//	  }
//	  experience {
//	    position: "Engineer"
//	    company: "Acme"
//	    start: "2020-01"
//	    end: present
//	  }
//	  skills: ["Go", "PDF"]
//	}

var (
	cvLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Whitespace", Pattern: `[ \t\r]+`},
		{Name: "Newline", Pattern: `\n+`},
		{Name: "BlockComment", Pattern: `/\*[^*]*\*+(?:[^/*][^*]*\*+)*/`},
		{Name: "LineComment", Pattern: `//[^\n]*`},
		{Name: "HashComment", Pattern: `#[^\n]*`},
		{Name: "RawString", Pattern: "`[^`]*`"},
		{Name: "String", Pattern: `"(?:\\.|[^"])*"`},
		{Name: "Number", Pattern: `\d+(?:\.\d+)?`},
		{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_-]*`},
		{Name: "Symbol", Pattern: `[][,:;]`},
		{Name: "LBrace", Pattern: `{`},
		{Name: "RBrace", Pattern: `}`},
	})

	documentParser = participle.MustBuild[Document](
		participle.Lexer(cvLexer),
		participle.Elide("Whitespace", "LineComment", "BlockComment", "HashComment"),
		participle.UseLookahead(3),
	)
)

// Document is the root AST node for a .cv file.
type Document struct {
	Pos     lexer.Position `parser:"" json:"-"`
	Entries []*Entry       `parser:"Newline* 'resume' Newline* '{' Newline* ( @@ ( ';' | Newline )* )* '}' Newline*"`
}

// Entry is a top-level statement: a field assignment or a named block.
type Entry struct {
	Assignment *Assignment `parser:"  @@"`
	Block      *NamedBlock `parser:"| @@"`
}

// NamedBlock groups fields under a name such as personal or experience.
// experience 与 education 块可以重复出现，每个块是一个条目。
type NamedBlock struct {
	Pos    lexer.Position `parser:"" json:"-"`
	Name   string         `parser:"@Ident Newline*"`
	Fields []*Assignment  `parser:"'{' Newline* ( @@ ( ';' | Newline )* )* '}'"`
}

// Assignment uses colon syntax (key: value).
type Assignment struct {
	Pos   lexer.Position `parser:"" json:"-"`
	Key   string         `parser:"@Ident ':'"`
	Value *Value         `parser:"Newline* @@"`
}

// Value represents a scalar or a list.
type Value struct {
	Pos    lexer.Position `parser:"" json:"-"`
	String *StringLiteral `parser:"  @(String | RawString)"`
	Number *string        `parser:"| @Number"`
	Ident  *string        `parser:"| @Ident"`
	List   *ListValue     `parser:"| @@"`
}

// ListValue captures `[ ... ]` expressions; items are separated by commas or newlines.
type ListValue struct {
	Values []*Value `parser:"'[' Newline* ( @@ ( ( ',' | Newline+ ) Newline* @@ )* )? ','? Newline* ']'"`
}

// Text returns the scalar form of the value. Lists report ok=false.
func (v *Value) Text() (string, bool) {
	switch {
	case v == nil:
		return "", false
	case v.String != nil:
		return string(*v.String), true
	case v.Number != nil:
		return *v.Number, true
	case v.Ident != nil:
		return *v.Ident, true
	default:
		return "", false
	}
}

// StringLiteral unquotes Go-style strings on capture, including `raw` strings.
type StringLiteral string

// Capture implements participle.Capture.
func (s *StringLiteral) Capture(values []string) error {
	if len(values) == 0 {
		return fmt.Errorf("string literal capture requires value")
	}
	val, err := strconv.Unquote(values[0])
	if err != nil {
		return err
	}
	*s = StringLiteral(val)
	return nil
}

// Parse parses .cv content from an io.Reader.
func Parse(r io.Reader) (*Document, error) {
	return documentParser.Parse("", r)
}

// ParseString parses .cv content from a string.
func ParseString(input string) (*Document, error) {
	return documentParser.ParseString("", input)
}

// ParseNamed parses content and reports positions against filename.
func ParseNamed(filename string, r io.Reader) (*Document, error) {
	return documentParser.Parse(filename, r)
}
