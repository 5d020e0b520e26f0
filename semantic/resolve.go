package semantic

import (
	"github.com/dekarrin/minipg/ast"
	"github.com/dekarrin/minipg/diag"
)

// builtinEOF is always defined, even though no rule declares
// it — every grammar's follow set implicitly includes it at the start
// rule.
const builtinEOF = "EOF"

// ResolveReferences is the second sub-analysis: it visits
// every RuleRef and TokenRef in the grammar and reports a reference to a
// name the SymbolTable doesn't know about. Case matters; EOF is always
// considered defined.
func ResolveReferences(g *ast.Grammar, st *SymbolTable) []diag.Diagnostic {
	v := &refResolver{st: st}
	ast.Walk(v, g)
	return v.diags
}

type refResolver struct {
	ast.BaseVisitor
	st    *SymbolTable
	diags []diag.Diagnostic
}

func (v *refResolver) VisitElement(e ast.Element) bool {
	switch el := e.(type) {
	case *ast.RuleRefElement:
		if el.Name == builtinEOF {
			break
		}
		if !v.st.HasRule(el.Name) {
			v.diags = append(v.diags, diag.Error("E-UNDEF-RULE", "undefined rule "+el.Name, locPtr(el.Loc)))
		}
	case *ast.TokenRefElement:
		if el.Name == builtinEOF {
			break
		}
		if !v.st.HasToken(el.Name) {
			v.diags = append(v.diags, diag.Error("E-UNDEF-RULE", "undefined rule "+el.Name, locPtr(el.Loc)))
		}
	}
	return true
}
