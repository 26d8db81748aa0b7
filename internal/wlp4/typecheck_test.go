package wlp4

import (
	"testing"

	"github.com/rheo5/WLP4-compiler/internal/ptree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newWainTable(t *testing.T, aType string) (*ProcedureTable, *Procedure) {
	t.Helper()
	main := mainNode(dclNode(aType, "a"), dclNode("int", "b"), emptyDcls(), emptyStatements(), numExpr("1"))
	table := NewProcedureTable()
	p, err := NewProcedure(main)
	require.NoError(t, err)
	require.NoError(t, table.Add(p))
	return table, p
}

func Test_AnnotateExpr_intPlusInt(t *testing.T) {
	table, proc := newWainTable(t, "int")

	expr := binExpr(idExpr("a"), "PLUS", "+", idExpr("b"))
	// a is already declared as wain's first parameter
	require.Error(t, proc.Locals.Add(Variable{Name: "a", Type: "int"}))
	require.NoError(t, AnnotateExpr(expr, proc, table))
	assert.Equal(t, "int", expr.Type)
}

func Test_AnnotateExpr_pointerPlusInt(t *testing.T) {
	table, proc := newWainTable(t, "int*")

	expr := binExpr(idExpr("a"), "PLUS", "+", idExpr("b"))
	require.NoError(t, AnnotateExpr(expr, proc, table))
	assert.Equal(t, "int*", expr.Type)
}

func Test_AnnotateExpr_intMinusPointerIsInvalid(t *testing.T) {
	table, proc := newWainTable(t, "int*")

	expr := binExpr(idExpr("b"), "MINUS", "-", idExpr("a"))
	err := AnnotateExpr(expr, proc, table)
	assert.Error(t, err)
}

func Test_AnnotateExpr_pointerMinusPointerIsInt(t *testing.T) {
	table, proc := newWainTable(t, "int*")
	require.NoError(t, proc.Locals.Add(Variable{Name: "q", Type: "int*"}))

	expr := binExpr(idExpr("a"), "MINUS", "-", idExpr("q"))
	require.NoError(t, AnnotateExpr(expr, proc, table))
	assert.Equal(t, "int", expr.Type)
}

func Test_AnnotateExpr_pointerPlusPointerIsInvalid(t *testing.T) {
	table, proc := newWainTable(t, "int*")
	require.NoError(t, proc.Locals.Add(Variable{Name: "q", Type: "int*"}))

	expr := binExpr(idExpr("a"), "PLUS", "+", idExpr("q"))
	err := AnnotateExpr(expr, proc, table)
	assert.Error(t, err)
}

func Test_AnnotateExpr_termOperandsMustBeInt(t *testing.T) {
	table, proc := newWainTable(t, "int*")
	require.NoError(t, proc.Locals.Add(Variable{Name: "q", Type: "int*"}))

	left := idExpr("a").Children[0]          // term wrapping factor "a" (int*)
	right := idExpr("q").Children[0].Children[0] // factor "q" (int*)
	termNode := ptree.NewInner("term", []*ptree.Tree{left, leaf("STAR", "*"), right})
	expr := ptree.NewInner("expr", []*ptree.Tree{termNode})

	err := AnnotateExpr(expr, proc, table)
	assert.Error(t, err)
}

func Test_AnnotateFactor_num(t *testing.T) {
	table, proc := newWainTable(t, "int")

	factor := factorNum("42")
	require.NoError(t, annotateFactor(factor, proc, table))
	assert.Equal(t, "int", factor.Type)
}

func Test_AnnotateFactor_null(t *testing.T) {
	table, proc := newWainTable(t, "int")

	factor := factorNull()
	require.NoError(t, annotateFactor(factor, proc, table))
	assert.Equal(t, "int*", factor.Type)
}

func Test_AnnotateFactor_addressOf(t *testing.T) {
	table, proc := newWainTable(t, "int")

	factor := ptree.NewInner("factor", []*ptree.Tree{leaf("AMP", "&"), idLvalue("b")})
	require.NoError(t, annotateFactor(factor, proc, table))
	assert.Equal(t, "int*", factor.Type)
}

func Test_AnnotateFactor_dereferenceRequiresPointer(t *testing.T) {
	table, proc := newWainTable(t, "int")

	badFactor := ptree.NewInner("factor", []*ptree.Tree{leaf("STAR", "*"), ptree.NewInner("factor", []*ptree.Tree{leaf("ID", "b")})})
	err := annotateFactor(badFactor, proc, table)
	assert.Error(t, err)
}

func Test_AnnotateFactor_newRequiresIntSize(t *testing.T) {
	table, proc := newWainTable(t, "int")

	factor := ptree.NewInner("factor", []*ptree.Tree{leaf("NEW", "new"), leaf("INT", "int"), leaf("LBRACK", "["), numExpr("4"), leaf("RBRACK", "]")})
	require.NoError(t, annotateFactor(factor, proc, table))
	assert.Equal(t, "int*", factor.Type)
}

func Test_AnnotateFactor_procedureCall(t *testing.T) {
	table := NewProcedureTable()
	callee, err := NewProcedure(procedureNode("add", []*ptree.Tree{dclNode("int", "x")}, emptyDcls(), emptyStatements(), numExpr("0")))
	require.NoError(t, err)
	require.NoError(t, table.Add(callee))

	main := mainNode(dclNode("int", "a"), dclNode("int", "b"), emptyDcls(), emptyStatements(), numExpr("1"))
	caller, err := NewProcedure(main)
	require.NoError(t, err)
	require.NoError(t, table.Add(caller))

	arglist := ptree.NewInner("arglist", []*ptree.Tree{numExpr("1")})
	call := ptree.NewInner("factor", []*ptree.Tree{leaf("ID", "add"), leaf("LPAREN", "("), arglist, leaf("RPAREN", ")")})

	require.NoError(t, annotateFactor(call, caller, table))
	assert.Equal(t, "int", call.Type)
}

func Test_AnnotateFactor_procedureCallWrongArgCount(t *testing.T) {
	table := NewProcedureTable()
	callee, err := NewProcedure(procedureNode("add", []*ptree.Tree{dclNode("int", "x")}, emptyDcls(), emptyStatements(), numExpr("0")))
	require.NoError(t, err)
	require.NoError(t, table.Add(callee))

	main := mainNode(dclNode("int", "a"), dclNode("int", "b"), emptyDcls(), emptyStatements(), numExpr("1"))
	caller, err := NewProcedure(main)
	require.NoError(t, err)
	require.NoError(t, table.Add(caller))

	call := ptree.NewInner("factor", []*ptree.Tree{leaf("ID", "add"), leaf("LPAREN", "("), leaf("RPAREN", ")")})

	err = annotateFactor(call, caller, table)
	assert.Error(t, err)
}

func Test_AnnotateStatement_assignmentTypeMismatch(t *testing.T) {
	table, proc := newWainTable(t, "int*")

	stmt := assignStatement(idLvalue("b"), idExpr("a"))
	err := annotateStatement(stmt, proc, table)
	assert.Error(t, err)
}

func Test_AnnotateStatement_printlnRequiresInt(t *testing.T) {
	table, proc := newWainTable(t, "int*")

	stmt := printlnStatement(idExpr("a"))
	err := annotateStatement(stmt, proc, table)
	assert.Error(t, err)
}

func Test_AnnotateStatement_deleteRequiresPointer(t *testing.T) {
	table, proc := newWainTable(t, "int")

	stmt := deleteStatement(idExpr("b"))
	err := annotateStatement(stmt, proc, table)
	assert.Error(t, err)
}

func Test_AnnotateStatement_whileAndIf(t *testing.T) {
	table, proc := newWainTable(t, "int")

	test := testNode(idExpr("a"), "LT", "<", idExpr("b"))
	whileStmt := whileStatement(test, emptyStatements())
	require.NoError(t, annotateStatement(whileStmt, proc, table))

	ifStmt := ifStatement(test, emptyStatements(), emptyStatements())
	require.NoError(t, annotateStatement(ifStmt, proc, table))
}

func Test_AnnotateProgram_callsForwardDeclaredProcedure(t *testing.T) {
	callStmt := printlnStatement(exprFromFactor(ptree.NewInner("factor", []*ptree.Tree{
		leaf("ID", "helper"), leaf("LPAREN", "("), leaf("RPAREN", ")"),
	})))
	mainStatements := pushStatement(emptyStatements(), callStmt)
	main := mainNode(dclNode("int", "a"), dclNode("int", "b"), emptyDcls(), mainStatements, numExpr("1"))

	helper := procedureNode("helper", nil, emptyDcls(), emptyStatements(), numExpr("0"))
	start := programTree([]*ptree.Tree{helper}, main)

	table, err := CollectProcedures(start)
	require.NoError(t, err)
	nodes, err := CollectProcedureNodes(start)
	require.NoError(t, err)

	require.NoError(t, AnnotateProgram(table, nodes))
}
