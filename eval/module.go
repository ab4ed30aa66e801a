// Import and file-I/O statement evaluation, delegating to the
// capability package's external collaborators (spec.md §6).
package eval

import (
	"github.com/akaoio/xmd/ast"
	"github.com/akaoio/xmd/value"
)

// evalImport resolves Path to a module and merges its exported
// bindings into the current store. A missing ModuleLoader, an
// unresolvable path, or a load failure is silently ignored: an import
// the host never configured a loader for should not abort the whole
// document.
func (e *Evaluator) evalImport(n *ast.Import) (*value.Value, Signal, error) {
	if e.Modules == nil {
		return value.Null(), none, nil
	}
	path, sig, err := e.Eval(n.Path)
	if err != nil || !sig.IsNone() {
		return path, sig, err
	}
	mod, err := e.Modules.Load(path.String())
	if err != nil {
		return value.Null(), none, nil
	}
	for name, v := range mod.Exports {
		e.Store.Set(name, v)
	}
	return value.Null(), none, nil
}

// evalFileStmt dispatches the five file operations to the FileIO
// capability. Every failure mode documented in spec.md §6 degrades to a
// fallback value rather than erroring: Read/List return empty
// string/array, Exists/Delete return false, Write returns false.
func (e *Evaluator) evalFileStmt(n *ast.FileStmt) (*value.Value, Signal, error) {
	path, sig, err := e.Eval(n.Path)
	if err != nil || !sig.IsNone() {
		return path, sig, err
	}
	p := path.String()

	if e.Files == nil {
		return e.fileStmtFallback(n.Op), none, nil
	}

	switch n.Op {
	case ast.FileRead:
		content, err := e.Files.Read(p)
		if err != nil {
			return value.String(""), none, nil
		}
		return value.String(content), none, nil

	case ast.FileWrite:
		content, sig, err := e.Eval(n.Content)
		if err != nil || !sig.IsNone() {
			return content, sig, err
		}
		if werr := e.Files.Write(p, content.String()); werr != nil {
			return value.Boolean(false), none, nil
		}
		return value.Boolean(true), none, nil

	case ast.FileExists:
		return value.Boolean(e.Files.Exists(p)), none, nil

	case ast.FileDelete:
		if err := e.Files.Delete(p); err != nil {
			return value.Boolean(false), none, nil
		}
		return value.Boolean(true), none, nil

	case ast.FileList:
		includeHidden := false
		if n.IncludeHidden != nil {
			hv, sig, err := e.Eval(n.IncludeHidden)
			if err != nil || !sig.IsNone() {
				return hv, sig, err
			}
			includeHidden = hv.IsTrue()
		}
		names, err := e.Files.List(p, includeHidden)
		if err != nil {
			return value.EmptyArray(), none, nil
		}
		items := make([]*value.Value, len(names))
		for i, name := range names {
			items[i] = value.String(name)
		}
		return value.Array(items), none, nil

	default:
		return value.Null(), none, &Error{Pos: n.Pos(), Message: "unknown file operation"}
	}
}

func (e *Evaluator) fileStmtFallback(op ast.FileOp) *value.Value {
	switch op {
	case ast.FileRead:
		return value.String("")
	case ast.FileWrite, ast.FileExists, ast.FileDelete:
		return value.Boolean(false)
	case ast.FileList:
		return value.EmptyArray()
	default:
		return value.Null()
	}
}
