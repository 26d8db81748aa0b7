// codegen.go implements the WLP4 code generator (C8), grounded directly on
// codeExpr/codeLvalue/codeTest/codeStatement/codeStatementsToStatement/
// codeProcedure/codegen in original_source/wlp4gen.cc, including its exact
// register convention: $3 holds an expr's result, $4 is the constant 4, $5
// is scratch for the right operand of a binary op, $6/$9/$10/$12/$13 hold
// the wain/delete/new/init/print entry-point addresses, $7 is scratch for a
// procedure-call target, $11 holds the constant 1 (used as NULL and as a
// comparison sentinel), $14 is scratch for computed jump targets, $29 is
// the frame pointer, $30 the stack pointer, $31 the link register.
package wlp4

import (
	"io"
	"strconv"

	"github.com/rheo5/WLP4-compiler/internal/ptree"
)

// offsetTable maps a local/parameter name to its frame-pointer-relative
// byte offset, exactly map<string,int> offset_table in the original.
type offsetTable map[string]int

// codegenState threads the if/while label counters through a whole
// program's generation, mirroring the original's globalifcount/
// globalwhilecount reference parameters.
type codegenState struct {
	ifCount    int
	whileCount int
}

// Generate emits the full assembly program for start (the parse tree root
// for the "start" symbol) given its collected procedure table.
func Generate(w io.Writer, start *ptree.Tree, table *ProcedureTable) error {
	e := newEmitter(w)
	st := &codegenState{}

	e.importSym("print")
	e.importSym("init")
	e.importSym("new")
	e.importSym("delete")

	e.lis(13)
	e.wordLabel("print")
	e.lis(12)
	e.wordLabel("init")
	e.lis(10)
	e.wordLabel("new")
	e.lis(9)
	e.wordLabel("delete")
	e.lis(4)
	e.wordInt(4)
	e.lis(11)
	e.wordInt(1)
	e.lis(6)
	e.wordLabel("wain")
	e.jr(6)

	procedures, _ := start.FirstChild("procedures")
	for len(procedures.Production()) > 1 {
		procNode, _ := procedures.FirstChild("procedure")
		idNode, _ := procNode.GetChild("ID", 0)
		method, err := table.Get(idNode.Source.Lexeme())
		if err != nil {
			return err
		}
		if err := codeProcedure(e, procNode, st, method); err != nil {
			return err
		}
		next, _ := procedures.FirstChild("procedures")
		procedures = next
	}

	main, _ := procedures.FirstChild("main")

	e.label("wain")

	wainOffsets := offsetTable{}
	dcl1, _ := main.GetChild("dcl", 0)
	dcl2, _ := main.GetChild("dcl", 1)
	wainOffsets[dcl1.Children[1].Source.Lexeme()] = 8
	wainOffsets[dcl2.Children[1].Source.Lexeme()] = 4

	e.push(1)
	e.push(2)

	wain, err := table.Get("wain")
	if err != nil {
		return err
	}
	e.push(31)
	if len(wain.Signature) > 0 && wain.Signature[0] == "int" {
		e.push(2)
		e.add(2, 0, 0)
		e.jalr(12)
		e.pop(2)
	} else {
		e.jalr(12)
	}
	e.pop(31)

	e.sub(29, 30, 4)

	localVarCount := 0
	vars, _ := main.FirstChild("dcls")
	for len(vars.Children) > 1 {
		dcl, _ := vars.GetChild("dcl", 0)
		wainOffsets[dcl.Children[1].Source.Lexeme()] = -4 * localVarCount
		e.lis(5)
		lit := vars.Children[3]
		if lit.Value == "NULL" {
			e.wordInt(1)
		} else {
			e.wordLexeme(lit.Source.Lexeme())
		}
		e.push(5)
		localVarCount++
		next, _ := vars.FirstChild("dcls")
		vars = next
	}

	statements, _ := main.FirstChild("statements")
	if err := codeStatementsToStatement(e, statements, wainOffsets, st); err != nil {
		return err
	}

	retExpr, _ := main.FirstChild("expr")
	if err := codeExpr(e, retExpr, wainOffsets); err != nil {
		return err
	}

	for i := 0; i < localVarCount; i++ {
		e.popDiscard()
	}
	e.jr(31)

	return e.err
}

func codeProcedure(e *emitter, root *ptree.Tree, st *codegenState, method *Procedure) error {
	offsets := offsetTable{}

	idNode, _ := root.GetChild("ID", 0)
	e.label("P" + idNode.Source.Lexeme())

	i := len(method.Signature)
	params, _ := root.FirstChild("params")
	if len(params.Production()) != 0 && params.Production()[0] == "paramlist" {
		paramlist := params.Children[0]
		for len(paramlist.Production()) > 1 {
			dcl, _ := paramlist.GetChild("dcl", 0)
			offsets[dcl.Children[1].Source.Lexeme()] = i * 4
			i--
			next, _ := paramlist.FirstChild("paramlist")
			paramlist = next
		}
		dcl, _ := paramlist.GetChild("dcl", 0)
		offsets[dcl.Children[1].Source.Lexeme()] = i * 4
		i--
	}

	e.sub(29, 30, 4)

	localVarCount := 0
	vars, _ := root.FirstChild("dcls")
	for len(vars.Children) > 1 {
		dcl, _ := vars.GetChild("dcl", 0)
		offsets[dcl.Children[1].Source.Lexeme()] = -4 * localVarCount
		e.lis(5)
		lit := vars.Children[3]
		if lit.Value == "NULL" {
			e.wordInt(1)
		} else {
			dclNum, _ := vars.GetChild("NUM", 0)
			e.wordLexeme(dclNum.Source.Lexeme())
		}
		e.push(5)
		localVarCount++
		next, _ := vars.FirstChild("dcls")
		vars = next
	}

	statements, _ := root.FirstChild("statements")
	if err := codeStatementsToStatement(e, statements, offsets, st); err != nil {
		return err
	}

	retExpr, _ := root.FirstChild("expr")
	if err := codeExpr(e, retExpr, offsets); err != nil {
		return err
	}

	for i := 0; i < localVarCount; i++ {
		e.popDiscard()
	}
	e.jr(31)
	return nil
}

func codeStatementsToStatement(e *emitter, root *ptree.Tree, offsets offsetTable, st *codegenState) error {
	if len(root.Production()) == 0 {
		return nil
	}
	rest, _ := root.FirstChild("statements")
	if err := codeStatementsToStatement(e, rest, offsets, st); err != nil {
		return err
	}
	stmt, _ := root.FirstChild("statement")
	return codeStatement(e, stmt, offsets, st)
}

func codeStatement(e *emitter, root *ptree.Tree, offsets offsetTable, st *codegenState) error {
	prod := root.Production()
	switch prod[0] {
	case "lvalue":
		lv, _ := root.GetChild("lvalue", 0)
		if err := codeLvalue(e, lv, offsets); err != nil {
			return err
		}
		e.push(3)
		expr, _ := root.GetChild("expr", 0)
		if err := codeExpr(e, expr, offsets); err != nil {
			return err
		}
		e.pop(5)
		e.sw(3, 0, 5)

	case "PRINTLN":
		expr, _ := root.FirstChild("expr")
		if err := codeExpr(e, expr, offsets); err != nil {
			return err
		}
		e.add(1, 0, 3)
		e.push(31)
		e.jalr(13)
		e.pop(31)

	case "IF":
		idx := st.ifCount
		st.ifCount++
		test, _ := root.FirstChild("test")
		if err := codeTest(e, test, offsets, "if", idx); err != nil {
			return err
		}
		thenStmts, _ := root.GetChild("statements", 0)
		if err := codeStatementsToStatement(e, thenStmts, offsets, st); err != nil {
			return err
		}
		e.lis(14)
		e.wordLabel(labelName("afterelse", idx))
		e.jr(14)
		e.label(labelName("afterif", idx))
		elseStmts, _ := root.GetChild("statements", 1)
		if err := codeStatementsToStatement(e, elseStmts, offsets, st); err != nil {
			return err
		}
		e.label(labelName("afterelse", idx))

	case "WHILE":
		idx := st.whileCount
		st.whileCount++
		e.label(labelName("while", idx))
		test, _ := root.FirstChild("test")
		if err := codeTest(e, test, offsets, "while", idx); err != nil {
			return err
		}
		body, _ := root.FirstChild("statements")
		if err := codeStatementsToStatement(e, body, offsets, st); err != nil {
			return err
		}
		e.lis(14)
		e.wordLabel(labelName("while", idx))
		e.jr(14)
		e.label(labelName("afterwhile", idx))

	case "DELETE":
		expr, _ := root.FirstChild("expr")
		if err := codeExpr(e, expr, offsets); err != nil {
			return err
		}
		e.add(1, 0, 3)
		e.beq(1, 11, "5")
		e.push(31)
		e.jalr(9)
		e.pop(31)
	}
	return nil
}

func labelName(prefix string, idx int) string {
	return prefix + strconv.Itoa(idx)
}

func codeTest(e *emitter, root *ptree.Tree, offsets offsetTable, stmKind string, idx int) error {
	first, _ := root.GetChild("expr", 0)
	second, _ := root.GetChild("expr", 1)

	if err := codeExpr(e, first, offsets); err != nil {
		return err
	}
	e.push(3)
	if err := codeExpr(e, second, offsets); err != nil {
		return err
	}
	e.pop(5)

	label := "after" + stmKind + strconv.Itoa(idx)
	op := root.Production()[1]
	ptrCompare := first.Type == "int*"

	switch op {
	case "EQ":
		e.bne(3, 5, label)
	case "NE":
		e.beq(3, 5, label)
	case "LT":
		if ptrCompare {
			e.sltu(3, 5, 3)
		} else {
			e.slt(3, 5, 3)
		}
		e.beq(3, 0, label)
	case "LE":
		if ptrCompare {
			e.sltu(3, 3, 5)
		} else {
			e.slt(3, 3, 5)
		}
		e.beq(3, 11, label)
	case "GT":
		if ptrCompare {
			e.sltu(3, 3, 5)
		} else {
			e.slt(3, 3, 5)
		}
		e.beq(3, 0, label)
	case "GE":
		if ptrCompare {
			e.sltu(3, 5, 3)
		} else {
			e.slt(3, 5, 3)
		}
		e.beq(3, 11, label)
	}
	return nil
}

func codeExpr(e *emitter, root *ptree.Tree, offsets offsetTable) error {
	prod := root.Production()

	switch root.Value {
	case "expr":
		if prod[0] == "term" {
			t, _ := root.GetChild("term", 0)
			return codeExpr(e, t, offsets)
		}
		first, _ := root.GetChild("expr", 0)
		second, _ := root.GetChild("term", 0)
		if err := codeExpr(e, first, offsets); err != nil {
			return err
		}
		e.push(3)
		if err := codeExpr(e, second, offsets); err != nil {
			return err
		}
		e.pop(5)

		op := root.Children[1].Value
		switch op {
		case "PLUS":
			if first.Type == "int*" {
				e.mult(3, 4)
				e.mflo(3)
			}
			if second.Type == "int*" {
				e.mult(5, 4)
				e.mflo(5)
			}
			e.add(3, 5, 3)
		case "MINUS":
			switch {
			case first.Type == "int*" && second.Type == "int":
				e.mult(3, 4)
				e.mflo(3)
				e.sub(3, 5, 3)
			case first.Type == "int*" && second.Type == "int*":
				e.sub(3, 5, 3)
				e.divide(3, 4)
				e.mflo(3)
			default:
				e.sub(3, 5, 3)
			}
		}
		return nil

	case "term":
		if prod[0] == "factor" {
			f, _ := root.GetChild("factor", 0)
			return codeExpr(e, f, offsets)
		}
		first, _ := root.GetChild("term", 0)
		second, _ := root.GetChild("factor", 0)
		if err := codeExpr(e, first, offsets); err != nil {
			return err
		}
		e.push(3)
		if err := codeExpr(e, second, offsets); err != nil {
			return err
		}
		e.pop(5)

		switch root.Children[1].Value {
		case "STAR":
			e.mult(3, 5)
			e.mflo(3)
		case "SLASH":
			e.divide(5, 3)
			e.mflo(3)
		case "PCT":
			e.divide(5, 3)
			e.mfhi(3)
		}
		return nil

	case "factor":
		return codeFactor(e, root, offsets)

	case "lvalue":
		return codeLvalue(e, root, offsets)
	}
	return nil
}

func codeFactor(e *emitter, root *ptree.Tree, offsets offsetTable) error {
	prod := root.Production()

	switch {
	case prod[0] == "ID" && len(prod) == 1:
		offset := offsets[root.Children[0].Source.Lexeme()]
		e.lw(3, offset, 29)

	case prod[0] == "NUM":
		e.lis(3)
		e.wordLexeme(root.Children[0].Source.Lexeme())

	case prod[0] == "NULL":
		e.lis(3)
		e.wordInt(1)

	case prod[0] == "LPAREN":
		expr, _ := root.FirstChild("expr")
		return codeExpr(e, expr, offsets)

	case prod[0] == "AMP":
		lv, _ := root.FirstChild("lvalue")
		return codeLvalue(e, lv, offsets)

	case prod[0] == "STAR":
		f, _ := root.FirstChild("factor")
		if err := codeExpr(e, f, offsets); err != nil {
			return err
		}
		e.lw(3, 0, 3)

	case prod[0] == "NEW":
		expr, _ := root.FirstChild("expr")
		if err := codeExpr(e, expr, offsets); err != nil {
			return err
		}
		e.add(1, 0, 3)
		e.push(31)
		e.jalr(10)
		e.pop(31)
		e.bne(3, 0, "1")
		e.add(3, 0, 11)

	case prod[0] == "ID" && prod[len(prod)-1] == "RPAREN":
		name := root.Children[0].Source.Lexeme()
		e.push(7)
		e.lis(7)
		e.wordLabel("P" + name)

		if len(prod) == 3 {
			e.push(31)
			e.push(29)
			e.jalr(7)
			e.pop(29)
			e.pop(31)
			e.pop(7)
			return nil
		}

		e.push(31)
		e.push(29)
		arglist, _ := root.FirstChild("arglist")
		count := 0
		for len(arglist.Children) == 3 {
			expr, _ := arglist.GetChild("expr", 0)
			if err := codeExpr(e, expr, offsets); err != nil {
				return err
			}
			e.push(3)
			arglist = arglist.Children[2]
			count++
		}
		if len(arglist.Production()) == 1 {
			expr, _ := arglist.GetChild("expr", 0)
			if err := codeExpr(e, expr, offsets); err != nil {
				return err
			}
			e.push(3)
			count++
		}
		e.jalr(7)
		for i := 0; i < count; i++ {
			e.popDiscard()
		}
		e.pop(29)
		e.pop(31)
		e.pop(7)
	}
	return nil
}

func codeLvalue(e *emitter, root *ptree.Tree, offsets offsetTable) error {
	prod := root.Production()
	switch prod[0] {
	case "ID":
		offset := offsets[root.Children[0].Source.Lexeme()]
		e.lis(3)
		e.wordInt(offset)
		e.add(3, 3, 29)
	case "STAR":
		f, _ := root.GetChild("factor", 0)
		return codeExpr(e, f, offsets)
	case "LPAREN":
		lv, _ := root.FirstChild("lvalue")
		return codeLvalue(e, lv, offsets)
	}
	return nil
}
