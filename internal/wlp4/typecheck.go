// typecheck.go implements the WLP4 type annotator (C7), grounded directly
// on annotateNonterms/annotateStatements/nodeAtStatements/annotateTypes in
// original_source/wlp4gen.cc. It walks every expr/term/factor/lvalue/test
// node bottom-up, assigning each expr/term/factor/lvalue a Type ("int" or
// "int*"; test nodes are checked but get no Type) and rejecting the
// pointer-arithmetic and call-signature mismatches the original enforces.
//
// Unlike the original, procedure symbol collection (symbols.go) runs to
// completion for the whole program before any type annotation begins, so a
// procedure may call another declared later in the source; the original's
// single interleaved pass only allows calling an already-processed
// procedure; nothing in this toolchain needs that restriction, so it is
// deliberately not carried forward.
package wlp4

import (
	"github.com/rheo5/WLP4-compiler/internal/compileerr"
	"github.com/rheo5/WLP4-compiler/internal/ptree"
)

// AnnotateProgram type-checks every procedure in table, whose parse tree
// nodes are given by procNodes (name -> its "procedure"/"main" tree node).
// Procedures are visited in declaration order rather than procNodes'
// (nondeterministic) map order, so the first SemError raised on a program
// with multiple type errors is reproducible across runs.
func AnnotateProgram(table *ProcedureTable, procNodes map[string]*ptree.Tree) error {
	for _, name := range table.Names() {
		proc, err := table.Get(name)
		if err != nil {
			return err
		}
		node, ok := procNodes[name]
		if !ok {
			return compileerr.Sem("malformed tree: missing node for procedure %s", name)
		}
		if err := AnnotateProcedure(node, proc, table); err != nil {
			return err
		}
	}
	return nil
}

// AnnotateProcedure type-checks one procedure body: its statements, then
// its trailing return expression, which must have type "int".
func AnnotateProcedure(method *ptree.Tree, current *Procedure, all *ProcedureTable) error {
	statements, ok := method.FirstChild("statements")
	if !ok {
		return compileerr.Sem("malformed tree: missing statements node")
	}
	if len(statements.Production()) != 0 {
		if err := annotateStatementsSpine(statements, current, all); err != nil {
			return err
		}
	}

	retExpr, ok := method.FirstChild("expr")
	if !ok {
		return compileerr.Sem("malformed tree: missing return expr node")
	}
	if err := AnnotateExpr(retExpr, current, all); err != nil {
		return err
	}
	if retExpr.Type != "int" {
		return compileerr.Sem("procedure %s: return expression must be int", current.Name)
	}
	return nil
}

func annotateStatementsSpine(statements *ptree.Tree, current *Procedure, all *ProcedureTable) error {
	for len(statements.Production()) != 0 && statements.Production()[0] == "statements" {
		stmt, _ := statements.FirstChild("statement")
		if err := annotateStatement(stmt, current, all); err != nil {
			return err
		}
		next, _ := statements.FirstChild("statements")
		statements = next
	}
	return nil
}

func annotateStatement(root *ptree.Tree, current *Procedure, all *ProcedureTable) error {
	prod := root.Production()
	switch prod[0] {
	case "lvalue":
		lv, _ := root.GetChild("lvalue", 0)
		expr, _ := root.GetChild("expr", 0)
		if err := AnnotateExpr(lv, current, all); err != nil {
			return err
		}
		if err := AnnotateExpr(expr, current, all); err != nil {
			return err
		}
		if lv.Type != expr.Type {
			return compileerr.Sem("assignment type mismatch: %s = %s", lv.Type, expr.Type)
		}
	case "IF":
		test, _ := root.FirstChild("test")
		if err := AnnotateExpr(test, current, all); err != nil {
			return err
		}
		thenStmts, _ := root.GetChild("statements", 0)
		elseStmts, _ := root.GetChild("statements", 1)
		if err := annotateStatementsSpine(thenStmts, current, all); err != nil {
			return err
		}
		if err := annotateStatementsSpine(elseStmts, current, all); err != nil {
			return err
		}
	case "WHILE":
		test, _ := root.FirstChild("test")
		if err := AnnotateExpr(test, current, all); err != nil {
			return err
		}
		body, _ := root.FirstChild("statements")
		if err := annotateStatementsSpine(body, current, all); err != nil {
			return err
		}
	case "PRINTLN":
		expr, _ := root.FirstChild("expr")
		if err := AnnotateExpr(expr, current, all); err != nil {
			return err
		}
		if expr.Type != "int" {
			return compileerr.Sem("println argument must be int")
		}
	case "DELETE":
		expr, _ := root.FirstChild("expr")
		if err := AnnotateExpr(expr, current, all); err != nil {
			return err
		}
		if expr.Type != "int*" {
			return compileerr.Sem("delete argument must be int*")
		}
	}
	return nil
}

// AnnotateExpr type-checks an expr/term/factor/lvalue/test node and all of
// its descendants, assigning Type to every expr/term/factor/lvalue among
// them; a test node itself is left without a Type.
func AnnotateExpr(root *ptree.Tree, current *Procedure, all *ProcedureTable) error {
	prod := root.Production()

	switch root.Value {
	case "expr":
		if prod[0] == "term" {
			t, _ := root.GetChild("term", 0)
			if err := AnnotateExpr(t, current, all); err != nil {
				return err
			}
			root.Type = t.Type
			return nil
		}
		first, _ := root.GetChild("expr", 0)
		second, _ := root.GetChild("term", 0)
		if err := AnnotateExpr(second, current, all); err != nil {
			return err
		}
		if err := AnnotateExpr(first, current, all); err != nil {
			return err
		}

		op := prod[1]
		switch {
		case first.Type == "int" && second.Type == "int":
			root.Type = "int"
		case first.Type == "int*" && second.Type == "int":
			root.Type = "int*"
		case first.Type == "int" && second.Type == "int*":
			if op != "PLUS" {
				return compileerr.Sem("invalid operand types for MINUS: int and int*")
			}
			root.Type = "int*"
		case first.Type == "int*" && second.Type == "int*":
			if op != "MINUS" {
				return compileerr.Sem("invalid operand types for PLUS: int* and int*")
			}
			root.Type = "int"
		default:
			return compileerr.Sem("invalid operand types for expr: %s and %s", first.Type, second.Type)
		}

	case "term":
		if prod[0] == "factor" {
			f, _ := root.GetChild("factor", 0)
			if err := AnnotateExpr(f, current, all); err != nil {
				return err
			}
			root.Type = f.Type
			return nil
		}
		first, _ := root.GetChild("term", 0)
		second, _ := root.GetChild("factor", 0)
		if err := AnnotateExpr(second, current, all); err != nil {
			return err
		}
		if err := AnnotateExpr(first, current, all); err != nil {
			return err
		}
		if first.Type != "int" || second.Type != "int" {
			return compileerr.Sem("term operands must be int")
		}
		root.Type = "int"

	case "factor":
		return annotateFactor(root, current, all)

	case "lvalue":
		return annotateLvalue(root, current, all)

	case "test":
		first, _ := root.GetChild("expr", 0)
		second, _ := root.GetChild("expr", 1)
		if err := AnnotateExpr(first, current, all); err != nil {
			return err
		}
		if err := AnnotateExpr(second, current, all); err != nil {
			return err
		}
		if first.Type != second.Type {
			return compileerr.Sem("comparison operands must have the same type")
		}
	}
	return nil
}

func annotateFactor(root *ptree.Tree, current *Procedure, all *ProcedureTable) error {
	prod := root.Production()

	switch {
	case prod[0] == "ID" && len(prod) == 1:
		v, err := current.Locals.Get(root.Children[0].Source.Lexeme())
		if err != nil {
			return err
		}
		root.Type = v.Type

	case prod[0] == "NUM":
		root.Type = "int"

	case prod[0] == "NULL":
		root.Type = "int*"

	case prod[0] == "LPAREN":
		e, _ := root.FirstChild("expr")
		if err := AnnotateExpr(e, current, all); err != nil {
			return err
		}
		root.Type = e.Type

	case prod[0] == "AMP":
		lv, _ := root.FirstChild("lvalue")
		if err := AnnotateExpr(lv, current, all); err != nil {
			return err
		}
		if lv.Type != "int" {
			return compileerr.Sem("& requires an int lvalue")
		}
		root.Type = "int*"

	case prod[0] == "STAR":
		f, _ := root.FirstChild("factor")
		if err := AnnotateExpr(f, current, all); err != nil {
			return err
		}
		if f.Type != "int*" {
			return compileerr.Sem("* requires an int* operand")
		}
		root.Type = "int"

	case prod[0] == "NEW":
		e, _ := root.FirstChild("expr")
		if err := AnnotateExpr(e, current, all); err != nil {
			return err
		}
		if e.Type != "int" {
			return compileerr.Sem("new int[...] requires an int size")
		}
		root.Type = "int*"

	case prod[0] == "ID" && prod[len(prod)-1] == "RPAREN":
		name := root.Children[0].Source.Lexeme()
		callee, err := all.Get(name)
		if err != nil {
			return err
		}
		if current.Locals.Has(name) {
			return compileerr.Sem("procedure name %s overlaps with a variable", name)
		}

		var argTypes []string
		if len(prod) == 4 {
			arglist, _ := root.FirstChild("arglist")
			for len(arglist.Children) == 3 {
				e, _ := arglist.GetChild("expr", 0)
				if err := AnnotateExpr(e, current, all); err != nil {
					return err
				}
				argTypes = append(argTypes, e.Type)
				arglist = arglist.Children[2]
			}
			if len(arglist.Production()) == 1 {
				e, _ := arglist.GetChild("expr", 0)
				if err := AnnotateExpr(e, current, all); err != nil {
					return err
				}
				argTypes = append(argTypes, e.Type)
			}
		}

		if len(argTypes) != len(callee.Signature) {
			return compileerr.Sem("call to %s: expected %d arguments, got %d", name, len(callee.Signature), len(argTypes))
		}
		for i := range argTypes {
			if argTypes[i] != callee.Signature[i] {
				return compileerr.Sem("call to %s: argument %d has type %s, expected %s", name, i+1, argTypes[i], callee.Signature[i])
			}
		}
		root.Type = "int"
	}
	return nil
}

func annotateLvalue(root *ptree.Tree, current *Procedure, all *ProcedureTable) error {
	prod := root.Production()
	switch prod[0] {
	case "ID":
		v, err := current.Locals.Get(root.Children[0].Source.Lexeme())
		if err != nil {
			return err
		}
		root.Type = v.Type
	case "STAR":
		f, _ := root.GetChild("factor", 0)
		if err := AnnotateExpr(f, current, all); err != nil {
			return err
		}
		if f.Type != "int*" {
			return compileerr.Sem("* requires an int* operand")
		}
		root.Type = "int"
	case "LPAREN":
		lv, _ := root.FirstChild("lvalue")
		if err := AnnotateExpr(lv, current, all); err != nil {
			return err
		}
		root.Type = lv.Type
	}
	return nil
}
