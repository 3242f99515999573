// FILE: eventweaver/src/internal/dsl/validate.go
package dsl

// allowedIdents is the closed set of event field identifiers.
var allowedIdents = map[string]bool{
	"timestamp": true,
	"source":    true,
	"severity":  true,
	"message":   true,
	"metadata":  true,
}

// validate walks the whole tree and rejects every construct outside
// the whitelist. It runs to completion before any evaluation; a tree
// that passes can express nothing beyond field reads, literals,
// additive arithmetic, comparisons and boolean combination.
func validate(n Node) error {
	switch node := n.(type) {
	case Literal:
		return nil
	case Ident:
		if !allowedIdents[node.Name] {
			return compileErrf("unknown identifier '%s' in expression", node.Name)
		}
		return nil
	case Unary:
		return validate(node.Operand)
	case Binary:
		if err := validate(node.Left); err != nil {
			return err
		}
		return validate(node.Right)
	case BoolExpr:
		for _, v := range node.Values {
			if err := validate(v); err != nil {
				return err
			}
		}
		return nil
	case Compare:
		if err := validate(node.Left); err != nil {
			return err
		}
		for _, r := range node.Rights {
			if err := validate(r); err != nil {
				return err
			}
		}
		return nil
	case Subscript:
		base, ok := node.Value.(Ident)
		if !ok || base.Name != "metadata" {
			return compileErrf("subscripting is only allowed on metadata")
		}
		return validate(node.Key)
	case Call:
		return compileErrf("function calls are not allowed in expressions")
	case Attribute:
		return compileErrf("attribute access is not allowed in expressions")
	}
	return compileErrf("unsupported syntax node")
}
