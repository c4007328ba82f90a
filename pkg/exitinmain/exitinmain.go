// Package exitinmain defines an Analyzer that reports os.Exit calls
// made directly from the main function of a main package.
package exitinmain

import (
	"go/ast"
	"go/types"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"
	"golang.org/x/tools/go/types/typeutil"
)

// Analyzer reports os.Exit calls inside func main of package main.
var Analyzer = &analysis.Analyzer{
	Name:     "exitinmain",
	Doc:      "reports os.Exit call inside main function of the main package",
	Run:      run,
	Requires: []*analysis.Analyzer{inspect.Analyzer},
}

func run(pass *analysis.Pass) (any, error) {
	if pass.Pkg.Name() != "main" {
		return nil, nil
	}

	// This will not panic because inspect.Analyzer is part of Requires.
	inspect := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)

	nodeFilter := []ast.Node{
		(*ast.FuncDecl)(nil),
	}

	inspect.Preorder(nodeFilter, func(n ast.Node) {
		fn := n.(*ast.FuncDecl)
		if fn.Recv != nil || fn.Name.Name != "main" || fn.Body == nil {
			return
		}

		ast.Inspect(fn.Body, func(n ast.Node) bool {
			call, ok := n.(*ast.CallExpr)
			if ok && isOsExit(pass.TypesInfo, call) {
				pass.Reportf(call.Pos(), "os.Exit call inside main function")
			}
			return true
		})
	})

	return nil, nil
}

// isOsExit resolves the callee, so renamed imports are caught
// and local identifiers named os are not.
func isOsExit(info *types.Info, call *ast.CallExpr) bool {
	fn, ok := typeutil.Callee(info, call).(*types.Func)
	if !ok || fn.Pkg() == nil {
		return false
	}
	return fn.Pkg().Path() == "os" && fn.Name() == "Exit"
}
