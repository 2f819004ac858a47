package ast

// UsedNames returns every identifier appearing anywhere under node: reads,
// writes, parameters and def/class names, nested bodies included.
func UsedNames(node Node) map[string]bool {
	names := make(map[string]bool)
	Inspect(node, func(n Node) bool {
		switch n := n.(type) {
		case *Identifier:
			names[n.Value] = true
		case *FunctionDef:
			names[n.Name] = true
		case *ClassDef:
			names[n.Name] = true
		}
		return true
	})
	return names
}

// BoundNames lists, in first-binding order, the names a statement sequence
// binds in its own scope. Nested def and class bodies are a separate scope and
// only contribute their own name.
func BoundNames(body []Statement) []string {
	var out []string
	seen := make(map[string]bool)
	bind := func(name string) {
		if !seen[name] {
			seen[name] = true
			out = append(out, name)
		}
	}
	var walk func(stmts []Statement)
	walk = func(stmts []Statement) {
		for _, stmt := range stmts {
			switch s := stmt.(type) {
			case *AssignStatement:
				bind(s.Target.Value)
			case *FunctionDef:
				bind(s.Name)
			case *ClassDef:
				bind(s.Name)
			case *IfStatement:
				walk(s.Body)
				walk(s.Orelse)
			case *WhileStatement:
				walk(s.Body)
			case *ForStatement:
				bind(s.Target.Value)
				walk(s.Body)
			case *TryStatement:
				walk(s.Body)
				for _, h := range s.Handlers {
					if h.Name != nil {
						bind(h.Name.Value)
					}
					walk(h.Body)
				}
				walk(s.Finally)
			case *WithStatement:
				if s.Alias != nil {
					bind(s.Alias.Value)
				}
				walk(s.Body)
			}
		}
	}
	walk(body)
	return out
}

// FreeNames lists, in first-use order, the names a def or class body reads
// without binding them itself. Reads inside deeper nested definitions count
// when they are free there and not bound here.
func FreeNames(def Statement) []string {
	var params []string
	var body []Statement
	switch d := def.(type) {
	case *FunctionDef:
		params = d.ParamNames()
		body = d.Body
	case *ClassDef:
		body = d.Body
	default:
		return nil
	}

	local := make(map[string]bool)
	for _, p := range params {
		local[p] = true
	}
	for _, b := range BoundNames(body) {
		local[b] = true
	}

	var out []string
	seen := make(map[string]bool)
	use := func(name string) {
		if !local[name] && !seen[name] {
			seen[name] = true
			out = append(out, name)
		}
	}
	for _, stmt := range body {
		Inspect(stmt, func(n Node) bool {
			switch n := n.(type) {
			case *FunctionDef, *ClassDef:
				for _, name := range FreeNames(n.(Statement)) {
					use(name)
				}
				return false
			case *Identifier:
				if n.Ctx == Load {
					use(n.Value)
				}
			}
			return true
		})
	}
	return out
}
