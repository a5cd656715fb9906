package ast

import (
	"strconv"
	"strings"
)

// Format renders n back to source. Binary expressions are fully
// parenthesized so the output re-parses to the same tree.
func Format(n Node) string {
	var b strings.Builder
	writeNode(&b, n)
	return b.String()
}

func writeNode(b *strings.Builder, n Node) {
	switch x := n.(type) {
	case NumberLit:
		b.WriteString(strconv.FormatInt(x.Value, 10))
	case VarRef:
		b.WriteString(x.Name)
	case BinaryExpr:
		b.WriteString("(")
		writeNode(b, x.Left)
		b.WriteString(" ")
		b.WriteString(x.Op.String())
		b.WriteString(" ")
		writeNode(b, x.Right)
		b.WriteString(")")
	case AssignStmt:
		b.WriteString(x.Name)
		b.WriteString(" = ")
		writeNode(b, x.Expr)
	case PrintStmt:
		b.WriteString("PRINT ")
		writeNode(b, x.Expr)
	case InputStmt:
		b.WriteString("INPUT ")
		b.WriteString(x.Name)
	case IfStmt:
		b.WriteString("IF ")
		writeNode(b, x.Cond)
		b.WriteString(" ")
		writeNode(b, x.Then)
		if x.Else != nil {
			b.WriteString(" ELSE ")
			writeNode(b, x.Else)
		}
	case WhileStmt:
		b.WriteString("WHILE ")
		writeNode(b, x.Cond)
		b.WriteString(" ")
		writeNode(b, x.Body)
	}
}

// Tree is a serialisable view of a node used by dump tooling.
type Tree struct {
	Kind     string  `yaml:"kind" json:"kind"`
	Op       string  `yaml:"op,omitempty" json:"op,omitempty"`
	Name     string  `yaml:"name,omitempty" json:"name,omitempty"`
	Value    *int64  `yaml:"value,omitempty" json:"value,omitempty"`
	Children []*Tree `yaml:"children,omitempty" json:"children,omitempty"`
}

func Describe(n Node) *Tree {
	switch x := n.(type) {
	case NumberLit:
		v := x.Value
		return &Tree{Kind: "number", Value: &v}
	case VarRef:
		return &Tree{Kind: "var", Name: x.Name}
	case BinaryExpr:
		return &Tree{Kind: "binary", Op: x.Op.String(), Children: []*Tree{Describe(x.Left), Describe(x.Right)}}
	case AssignStmt:
		return &Tree{Kind: "assign", Name: x.Name, Children: []*Tree{Describe(x.Expr)}}
	case PrintStmt:
		return &Tree{Kind: "print", Children: []*Tree{Describe(x.Expr)}}
	case InputStmt:
		return &Tree{Kind: "input", Name: x.Name}
	case IfStmt:
		t := &Tree{Kind: "if", Children: []*Tree{Describe(x.Cond), Describe(x.Then)}}
		if x.Else != nil {
			t.Children = append(t.Children, Describe(x.Else))
		}
		return t
	case WhileStmt:
		return &Tree{Kind: "while", Children: []*Tree{Describe(x.Cond), Describe(x.Body)}}
	default:
		return nil
	}
}
