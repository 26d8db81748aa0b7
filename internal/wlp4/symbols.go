// Package wlp4 implements the WLP4-specific semantic passes: symbol
// collection (C6), type annotation (C7), and MIPS code generation (C8).
//
// symbols.go is grounded directly on the Variable/VariableTable/Procedure/
// ProcedureTable structs in original_source/wlp4gen.cc: a Variable is read
// off a "dcl" node's shape (one child under the leading type node means
// "int", two means "int*"), wain's first parameter is always "int" or
// "int*" and its second parameter is forced to "int", and a procedure's
// local declarations are walked down the left-recursive "dcls" spine,
// checking each initializer literal (NUM vs NULL) against the declared
// type.
package wlp4

import (
	"github.com/rheo5/WLP4-compiler/internal/compileerr"
	"github.com/rheo5/WLP4-compiler/internal/ptree"
)

// Variable is one declared name: its static type ("int" or "int*") and
// source name.
type Variable struct {
	Name string
	Type string
}

// NewVariable reads a Variable off a "dcl" parse tree node: dcl -> type ID,
// where type's child count (1 for "type -> INT", 2 for "type -> INT STAR")
// determines Variable.Type.
func NewVariable(dcl *ptree.Tree) (Variable, bool) {
	if dcl.Value != "dcl" {
		return Variable{}, false
	}
	typeNode := dcl.Children[0]
	idNode := dcl.Children[1]

	v := Variable{Name: idNode.Source.Lexeme()}
	if len(typeNode.Children) == 1 {
		v.Type = "int"
	} else {
		v.Type = "int*"
	}
	return v, true
}

// VariableTable maps declared local names (including parameters) to their
// Variable within one procedure.
type VariableTable struct {
	vars map[string]Variable
}

// NewVariableTable returns an empty table.
func NewVariableTable() *VariableTable {
	return &VariableTable{vars: map[string]Variable{}}
}

// Add registers v, erroring if the name is already declared in this scope.
func (vt *VariableTable) Add(v Variable) error {
	if _, ok := vt.vars[v.Name]; ok {
		return compileerr.Sem("duplicate variable declaration: %s", v.Name)
	}
	vt.vars[v.Name] = v
	return nil
}

// Get looks up a declared variable by name, erroring if it is undeclared.
func (vt *VariableTable) Get(name string) (Variable, error) {
	v, ok := vt.vars[name]
	if !ok {
		return Variable{}, compileerr.Sem("use of undeclared variable: %s", name)
	}
	return v, nil
}

// Has reports whether name is declared in this scope.
func (vt *VariableTable) Has(name string) bool {
	_, ok := vt.vars[name]
	return ok
}

// Procedure is one declared procedure: its name, parameter-type signature,
// and local variable table (which also holds its parameters).
type Procedure struct {
	Name      string
	Signature []string
	Locals    *VariableTable
}

// NewProcedure builds a Procedure from a "main" or "procedure" parse tree
// node, collecting its parameters and local declarations.
func NewProcedure(root *ptree.Tree) (*Procedure, error) {
	p := &Procedure{Locals: NewVariableTable()}

	switch root.Value {
	case "main":
		p.Name = "wain"
		dcl1, _ := root.GetChild("dcl", 0)
		dcl2, _ := root.GetChild("dcl", 1)

		v1, ok := NewVariable(dcl1)
		if ok && v1.Name != "" {
			p.Signature = append(p.Signature, v1.Type)
			if err := p.Locals.Add(v1); err != nil {
				return nil, err
			}

			v2, ok2 := NewVariable(dcl2)
			if ok2 && v2.Name != "" {
				if v2.Type != "int" {
					return nil, compileerr.Sem("second parameter of wain must be int")
				}
				p.Signature = append(p.Signature, v2.Type)
				if err := p.Locals.Add(v2); err != nil {
					return nil, err
				}
			}
		}
	case "procedure":
		idNode, _ := root.GetChild("ID", 0)
		p.Name = idNode.Source.Lexeme()

		params, _ := root.GetChild("params", 0)
		if len(params.Children) != 0 {
			paramlist := params.Children[0]
			for len(paramlist.Children) > 1 {
				dcl, _ := paramlist.GetChild("dcl", 0)
				v, _ := NewVariable(dcl)
				p.Signature = append(p.Signature, v.Type)
				if err := p.Locals.Add(v); err != nil {
					return nil, err
				}
				next, _ := paramlist.GetChild("paramlist", 0)
				paramlist = next
			}
			if len(paramlist.Children) == 1 {
				dcl, _ := paramlist.GetChild("dcl", 0)
				v, _ := NewVariable(dcl)
				p.Signature = append(p.Signature, v.Type)
				if err := p.Locals.Add(v); err != nil {
					return nil, err
				}
			}
		}
	default:
		return nil, compileerr.Sem("cannot collect symbols from node %q", root.Value)
	}

	dcls, _ := root.FirstChild("dcls")
	for len(dcls.Production()) != 0 {
		dcl, _ := dcls.GetChild("dcl", 0)
		v, _ := NewVariable(dcl)

		lit := dcls.Children[3]
		if lit.Value == "NUM" && v.Type != "int" {
			return nil, compileerr.Sem("local %s: NUM initializer requires type int", v.Name)
		}
		if lit.Value == "NULL" && v.Type != "int*" {
			return nil, compileerr.Sem("local %s: NULL initializer requires type int*", v.Name)
		}
		if err := p.Locals.Add(v); err != nil {
			return nil, err
		}

		next, _ := dcls.GetChild("dcls", 0)
		dcls = next
	}

	return p, nil
}

// ProcedureTable maps declared procedure names to their Procedure.
type ProcedureTable struct {
	procs map[string]*Procedure
	order []string
}

// NewProcedureTable returns an empty table.
func NewProcedureTable() *ProcedureTable {
	return &ProcedureTable{procs: map[string]*Procedure{}}
}

// Add registers p, erroring if its name is already declared.
func (pt *ProcedureTable) Add(p *Procedure) error {
	if _, ok := pt.procs[p.Name]; ok {
		return compileerr.Sem("duplicate procedure declaration: %s", p.Name)
	}
	pt.procs[p.Name] = p
	pt.order = append(pt.order, p.Name)
	return nil
}

// Get looks up a declared procedure by name, erroring if it is undeclared.
func (pt *ProcedureTable) Get(name string) (*Procedure, error) {
	p, ok := pt.procs[name]
	if !ok {
		return nil, compileerr.Sem("use of undeclared procedure: %s", name)
	}
	return p, nil
}

// Names returns every declared procedure name in declaration order.
func (pt *ProcedureTable) Names() []string {
	names := make([]string, len(pt.order))
	copy(names, pt.order)
	return names
}

// CollectProcedures walks a "start" node's "procedures" spine, collecting
// every declared procedure plus the final "main" procedure, mirroring
// collectProcedures in original_source/wlp4gen.cc.
func CollectProcedures(start *ptree.Tree) (*ProcedureTable, error) {
	table := NewProcedureTable()

	procedures, ok := start.FirstChild("procedures")
	if !ok {
		return nil, compileerr.Sem("malformed tree: missing procedures node")
	}

	for procedures.Value == "procedures" && len(procedures.Children) == 2 {
		procNode, _ := procedures.GetChild("procedure", 0)
		p, err := NewProcedure(procNode)
		if err != nil {
			return nil, err
		}
		if err := table.Add(p); err != nil {
			return nil, err
		}
		next, _ := procedures.GetChild("procedures", 0)
		procedures = next
	}

	mainNode, ok := procedures.FirstChild("main")
	if !ok {
		return nil, compileerr.Sem("malformed tree: missing main node")
	}
	p, err := NewProcedure(mainNode)
	if err != nil {
		return nil, err
	}
	if err := table.Add(p); err != nil {
		return nil, err
	}

	return table, nil
}

// CollectProcedureNodes walks the same "procedures" spine as
// CollectProcedures, but returns a name -> parse-tree-node map instead of a
// ProcedureTable, for callers (the type annotator) that need to revisit
// each procedure's body.
func CollectProcedureNodes(start *ptree.Tree) (map[string]*ptree.Tree, error) {
	nodes := map[string]*ptree.Tree{}

	procedures, ok := start.FirstChild("procedures")
	if !ok {
		return nil, compileerr.Sem("malformed tree: missing procedures node")
	}

	for procedures.Value == "procedures" && len(procedures.Children) == 2 {
		procNode, _ := procedures.GetChild("procedure", 0)
		idNode, _ := procNode.GetChild("ID", 0)
		nodes[idNode.Source.Lexeme()] = procNode
		next, _ := procedures.GetChild("procedures", 0)
		procedures = next
	}

	mainNode, ok := procedures.FirstChild("main")
	if !ok {
		return nil, compileerr.Sem("malformed tree: missing main node")
	}
	nodes["wain"] = mainNode

	return nodes, nil
}
