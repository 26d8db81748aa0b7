// Package ptree is the parse tree produced by the SLR parser and annotated
// in place by the WLP4 type checker.
//
// Grounded on internal/ictiobus/types.ParseTree from the teacher repository
// (Terminal/Value/Source/Children shape, tree-drawing String(), Copy(),
// Equal()), extended with a Type field that the WLP4 annotator fills in
// (spec.md §4.7) and a GetChild helper mirroring getChild in
// original_source/wlp4gen.cc, which the type annotator and code generator
// use throughout to navigate a production's children by grammar symbol.
package ptree

import (
	"fmt"
	"strings"

	"github.com/rheo5/WLP4-compiler/internal/token"
)

const (
	treeLevelEmpty               = "        "
	treeLevelOngoing             = "  |     "
	treeLevelPrefix              = "  |%s: "
	treeLevelPrefixLast          = `  \%s: `
	treeLevelPrefixNamePadChar   = '-'
	treeLevelPrefixNamePadAmount = 3
)

// Tree is one node of a parse tree: either a terminal (a scanned token) or
// an inner node for a reduced production, whose Value names the grammar
// symbol (for inner nodes) or terminal class (for leaves).
type Tree struct {
	Terminal bool
	Value    string
	Source   token.Token
	Children []*Tree

	// Type is the WLP4 static type ("int", "int*", or "" before annotation)
	// assigned to this node by the type checker. Only meaningful on
	// expr/term/factor/lvalue nodes.
	Type string
}

// NewLeaf builds a terminal node from a scanned token.
func NewLeaf(tok token.Token) *Tree {
	return &Tree{Terminal: true, Value: tok.Class().Human(), Source: tok}
}

// NewInner builds a non-terminal node for a reduced production.
func NewInner(symbol string, children []*Tree) *Tree {
	return &Tree{Value: symbol, Children: children}
}

func (t *Tree) String() string {
	return t.leveledStr("", "")
}

func (t *Tree) leveledStr(firstPrefix, contPrefix string) string {
	var sb strings.Builder
	sb.WriteString(firstPrefix)
	if t.Terminal {
		sb.WriteString(fmt.Sprintf("(TERM %q)", t.Value))
	} else {
		sb.WriteString(fmt.Sprintf("( %s )", t.Value))
	}
	for i := range t.Children {
		sb.WriteRune('\n')
		var lf, lc string
		if i+1 < len(t.Children) {
			lf = contPrefix + makeTreeLevelPrefix("")
			lc = contPrefix + treeLevelOngoing
		} else {
			lf = contPrefix + makeTreeLevelPrefixLast("")
			lc = contPrefix + treeLevelEmpty
		}
		sb.WriteString(t.Children[i].leveledStr(lf, lc))
	}
	return sb.String()
}

func makeTreeLevelPrefix(msg string) string {
	for len([]rune(msg)) < treeLevelPrefixNamePadAmount {
		msg = string(treeLevelPrefixNamePadChar) + msg
	}
	return fmt.Sprintf(treeLevelPrefix, msg)
}

func makeTreeLevelPrefixLast(msg string) string {
	for len([]rune(msg)) < treeLevelPrefixNamePadAmount {
		msg = string(treeLevelPrefixNamePadChar) + msg
	}
	return fmt.Sprintf(treeLevelPrefixLast, msg)
}

// Copy returns a deep copy of the tree.
func (t *Tree) Copy() *Tree {
	if t == nil {
		return nil
	}
	nt := &Tree{Terminal: t.Terminal, Value: t.Value, Source: t.Source, Type: t.Type}
	nt.Children = make([]*Tree, len(t.Children))
	for i := range t.Children {
		nt.Children[i] = t.Children[i].Copy()
	}
	return nt
}

// Equal reports whether two trees have the same structure, values, and
// terminal status (Type and Source are not compared, matching the parser
// conformance tests' focus on shape).
func (t *Tree) Equal(o *Tree) bool {
	if t == nil || o == nil {
		return t == o
	}
	if t.Terminal != o.Terminal || t.Value != o.Value {
		return false
	}
	if len(t.Children) != len(o.Children) {
		return false
	}
	for i := range t.Children {
		if !t.Children[i].Equal(o.Children[i]) {
			return false
		}
	}
	return true
}

// GetChild returns the nth child (0-indexed among matches) whose Value is
// name, and true if found. Grounded on getChild in
// original_source/wlp4gen.cc, used pervasively by the type annotator and
// code generator to pick a named symbol out of a production's children.
func (t *Tree) GetChild(name string, occurrence int) (*Tree, bool) {
	count := 0
	for _, c := range t.Children {
		if c.Value == name {
			if count == occurrence {
				return c, true
			}
			count++
		}
	}
	return nil, false
}

// FirstChild is GetChild(name, 0).
func (t *Tree) FirstChild(name string) (*Tree, bool) {
	return t.GetChild(name, 0)
}

// HasChild reports whether any child has the given Value.
func (t *Tree) HasChild(name string) bool {
	_, ok := t.FirstChild(name)
	return ok
}

// Production returns the grammar-symbol values of this node's direct
// children in order, e.g. ["expr", "PLUS", "term"].
func (t *Tree) Production() []string {
	out := make([]string, len(t.Children))
	for i, c := range t.Children {
		out[i] = c.Value
	}
	return out
}
