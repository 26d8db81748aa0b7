package wlp4

import (
	"github.com/rheo5/WLP4-compiler/internal/ptree"
	"github.com/rheo5/WLP4-compiler/internal/token"
)

// Hand-built parse tree fixtures, grounded directly on the tree shapes
// original_source/wlp4gen.cc's grammar produces, used to exercise symbol
// collection, type annotation, and code generation without driving the
// bundled demo SLR(1) table (which is not the real WLP4 grammar).

func leaf(class, lexeme string) *ptree.Tree {
	return ptree.NewLeaf(token.New(token.NewClass(class), lexeme, 1, 1))
}

func dclNode(typ, name string) *ptree.Tree {
	var typeNode *ptree.Tree
	if typ == "int*" {
		typeNode = ptree.NewInner("type", []*ptree.Tree{leaf("INT", "int"), leaf("STAR", "*")})
	} else {
		typeNode = ptree.NewInner("type", []*ptree.Tree{leaf("INT", "int")})
	}
	return ptree.NewInner("dcl", []*ptree.Tree{typeNode, leaf("ID", name)})
}

func emptyDcls() *ptree.Tree {
	return ptree.NewInner("dcls", nil)
}

func pushDcl(prev *ptree.Tree, typ, name, litClass, litLexeme string) *ptree.Tree {
	var lit *ptree.Tree
	if litClass == "NULL" {
		lit = leaf("NULL", "NULL")
	} else {
		lit = leaf("NUM", litLexeme)
	}
	return ptree.NewInner("dcls", []*ptree.Tree{prev, dclNode(typ, name), leaf("BECOMES", "="), lit, leaf("SEMI", ";")})
}

func emptyStatements() *ptree.Tree {
	return ptree.NewInner("statements", nil)
}

func pushStatement(prev, stmt *ptree.Tree) *ptree.Tree {
	return ptree.NewInner("statements", []*ptree.Tree{prev, stmt})
}

func exprFromFactor(factor *ptree.Tree) *ptree.Tree {
	term := ptree.NewInner("term", []*ptree.Tree{factor})
	return ptree.NewInner("expr", []*ptree.Tree{term})
}

func numExpr(lexeme string) *ptree.Tree {
	return exprFromFactor(ptree.NewInner("factor", []*ptree.Tree{leaf("NUM", lexeme)}))
}

func nullExpr() *ptree.Tree {
	return exprFromFactor(ptree.NewInner("factor", []*ptree.Tree{leaf("NULL", "NULL")}))
}

func idExpr(name string) *ptree.Tree {
	return exprFromFactor(ptree.NewInner("factor", []*ptree.Tree{leaf("ID", name)}))
}

func factorNum(lexeme string) *ptree.Tree {
	return ptree.NewInner("factor", []*ptree.Tree{leaf("NUM", lexeme)})
}

func factorNull() *ptree.Tree {
	return ptree.NewInner("factor", []*ptree.Tree{leaf("NULL", "NULL")})
}

func binExpr(left *ptree.Tree, op, opLexeme string, right *ptree.Tree) *ptree.Tree {
	rightTerm := right.Children[0]
	return ptree.NewInner("expr", []*ptree.Tree{left, leaf(op, opLexeme), rightTerm})
}

func idLvalue(name string) *ptree.Tree {
	return ptree.NewInner("lvalue", []*ptree.Tree{leaf("ID", name)})
}

func assignStatement(lv, expr *ptree.Tree) *ptree.Tree {
	return ptree.NewInner("statement", []*ptree.Tree{lv, leaf("BECOMES", "="), expr, leaf("SEMI", ";")})
}

func testNode(left *ptree.Tree, cmp, cmpLexeme string, right *ptree.Tree) *ptree.Tree {
	return ptree.NewInner("test", []*ptree.Tree{left, leaf(cmp, cmpLexeme), right})
}

func ifStatement(test, thenStmts, elseStmts *ptree.Tree) *ptree.Tree {
	return ptree.NewInner("statement", []*ptree.Tree{
		leaf("IF", "if"), leaf("LPAREN", "("), test, leaf("RPAREN", ")"),
		leaf("LBRACE", "{"), thenStmts, leaf("RBRACE", "}"),
		leaf("ELSE", "else"), leaf("LBRACE", "{"), elseStmts, leaf("RBRACE", "}"),
	})
}

func whileStatement(test, body *ptree.Tree) *ptree.Tree {
	return ptree.NewInner("statement", []*ptree.Tree{
		leaf("WHILE", "while"), leaf("LPAREN", "("), test, leaf("RPAREN", ")"),
		leaf("LBRACE", "{"), body, leaf("RBRACE", "}"),
	})
}

func printlnStatement(expr *ptree.Tree) *ptree.Tree {
	return ptree.NewInner("statement", []*ptree.Tree{
		leaf("PRINTLN", "println"), leaf("LPAREN", "("), expr, leaf("RPAREN", ")"), leaf("SEMI", ";"),
	})
}

func deleteStatement(expr *ptree.Tree) *ptree.Tree {
	return ptree.NewInner("statement", []*ptree.Tree{
		leaf("DELETE", "delete"), leaf("LBRACK", "["), leaf("RBRACK", "]"), expr, leaf("SEMI", ";"),
	})
}

func mainNode(dcl1, dcl2, dcls, statements, retExpr *ptree.Tree) *ptree.Tree {
	return ptree.NewInner("main", []*ptree.Tree{dcl1, dcl2, dcls, statements, retExpr})
}

func procedureNode(name string, params []*ptree.Tree, dcls, statements, retExpr *ptree.Tree) *ptree.Tree {
	var paramsNode *ptree.Tree
	if len(params) == 0 {
		paramsNode = ptree.NewInner("params", nil)
	} else {
		var list *ptree.Tree
		for i := len(params) - 1; i >= 0; i-- {
			if list == nil {
				list = ptree.NewInner("paramlist", []*ptree.Tree{params[i]})
			} else {
				list = ptree.NewInner("paramlist", []*ptree.Tree{params[i], leaf("COMMA", ","), list})
			}
		}
		paramsNode = ptree.NewInner("params", []*ptree.Tree{list})
	}
	return ptree.NewInner("procedure", []*ptree.Tree{
		leaf("INT", "int"), leaf("ID", name), leaf("LPAREN", "("), paramsNode, leaf("RPAREN", ")"),
		leaf("LBRACE", "{"), dcls, statements, leaf("RETURN", "return"), retExpr, leaf("SEMI", ";"), leaf("RBRACE", "}"),
	})
}

func programTree(procedures []*ptree.Tree, main *ptree.Tree) *ptree.Tree {
	tail := ptree.NewInner("procedures", []*ptree.Tree{main})
	for i := len(procedures) - 1; i >= 0; i-- {
		tail = ptree.NewInner("procedures", []*ptree.Tree{procedures[i], tail})
	}
	return ptree.NewInner("start", []*ptree.Tree{tail})
}
