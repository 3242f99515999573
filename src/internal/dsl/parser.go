// FILE: eventweaver/src/internal/dsl/parser.go
package dsl

import (
	"strconv"
)

// Parser builds an expression tree from filter expression text.
// Precedence, loosest first: or, and, not, comparison chains,
// additive, unary sign, postfix (subscript/call/attribute), primary.
type Parser struct {
	lexer   *Lexer
	current Token
}

// Parse parses the input and returns the expression tree root.
// The grammar deliberately accepts calls, attribute access and
// arbitrary identifiers; the validation pass rejects them so the
// error can name the offending construct rather than a stray token.
func Parse(input string) (Node, error) {
	p := &Parser{lexer: NewLexer(input)}
	p.advance()
	root, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if p.current.Type != TokenEOF {
		if p.current.Type == TokenIllegal {
			return nil, compileErrf("%s", p.current.Value)
		}
		return nil, compileErrf("unexpected token %s after expression", p.current)
	}
	return root, nil
}

func (p *Parser) advance() {
	p.current = p.lexer.NextToken()
}

func (p *Parser) parseOr() (Node, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	if p.current.Type != TokenOr {
		return left, nil
	}
	values := []Node{left}
	for p.current.Type == TokenOr {
		p.advance()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		values = append(values, right)
	}
	return BoolExpr{Op: BoolOr, Values: values}, nil
}

func (p *Parser) parseAnd() (Node, error) {
	left, err := p.parseNot()
	if err != nil {
		return nil, err
	}
	if p.current.Type != TokenAnd {
		return left, nil
	}
	values := []Node{left}
	for p.current.Type == TokenAnd {
		p.advance()
		right, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		values = append(values, right)
	}
	return BoolExpr{Op: BoolAnd, Values: values}, nil
}

func (p *Parser) parseNot() (Node, error) {
	if p.current.Type == TokenNot {
		p.advance()
		operand, err := p.parseNot() // right-associative
		if err != nil {
			return nil, err
		}
		return Unary{Op: UnaryNot, Operand: operand}, nil
	}
	return p.parseComparison()
}

func (p *Parser) parseComparison() (Node, error) {
	left, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}

	var ops []CmpOp
	var rights []Node
	for {
		var op CmpOp
		switch p.current.Type {
		case TokenEq:
			op = CmpEq
		case TokenNeq:
			op = CmpNeq
		case TokenGt:
			op = CmpGt
		case TokenGte:
			op = CmpGte
		case TokenLt:
			op = CmpLt
		case TokenLte:
			op = CmpLte
		case TokenIn:
			op = CmpIn
		case TokenNot:
			p.advance()
			if p.current.Type != TokenIn {
				return nil, compileErrf("expected 'in' after 'not', got %s", p.current)
			}
			op = CmpNotIn
		default:
			if len(ops) == 0 {
				return left, nil
			}
			return Compare{Left: left, Ops: ops, Rights: rights}, nil
		}
		p.advance()
		right, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
		rights = append(rights, right)
	}
}

func (p *Parser) parseAdditive() (Node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.current.Type == TokenPlus || p.current.Type == TokenMinus {
		op := BinAdd
		if p.current.Type == TokenMinus {
			op = BinSub
		}
		p.advance()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = Binary{Op: op, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseUnary() (Node, error) {
	switch p.current.Type {
	case TokenPlus:
		p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return Unary{Op: UnaryPos, Operand: operand}, nil
	case TokenMinus:
		p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return Unary{Op: UnaryNeg, Operand: operand}, nil
	}
	return p.parsePostfix()
}

func (p *Parser) parsePostfix() (Node, error) {
	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		switch p.current.Type {
		case TokenLBrack:
			p.advance()
			key, err := p.parseOr()
			if err != nil {
				return nil, err
			}
			if p.current.Type != TokenRBrack {
				return nil, compileErrf("expected ']', got %s", p.current)
			}
			p.advance()
			expr = Subscript{Value: expr, Key: key}
		case TokenLParen:
			p.advance()
			var args []Node
			if p.current.Type != TokenRParen {
				for {
					arg, err := p.parseOr()
					if err != nil {
						return nil, err
					}
					args = append(args, arg)
					if p.current.Type != TokenComma {
						break
					}
					p.advance()
				}
			}
			if p.current.Type != TokenRParen {
				return nil, compileErrf("expected ')', got %s", p.current)
			}
			p.advance()
			expr = Call{Fn: expr, Args: args}
		case TokenDot:
			p.advance()
			if p.current.Type != TokenIdent {
				return nil, compileErrf("expected identifier after '.', got %s", p.current)
			}
			expr = Attribute{Value: expr, Name: p.current.Value}
			p.advance()
		default:
			return expr, nil
		}
	}
}

func (p *Parser) parsePrimary() (Node, error) {
	tok := p.current
	switch tok.Type {
	case TokenNumber:
		v, err := strconv.ParseFloat(tok.Value, 64)
		if err != nil {
			return nil, compileErrf("invalid number literal '%s'", tok.Value)
		}
		p.advance()
		return Literal{Value: v}, nil
	case TokenString:
		p.advance()
		return Literal{Value: tok.Value}, nil
	case TokenTrue:
		p.advance()
		return Literal{Value: true}, nil
	case TokenFalse:
		p.advance()
		return Literal{Value: false}, nil
	case TokenNull:
		p.advance()
		return Literal{Value: nil}, nil
	case TokenIdent:
		p.advance()
		return Ident{Name: tok.Value}, nil
	case TokenLParen:
		p.advance()
		expr, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if p.current.Type != TokenRParen {
			return nil, compileErrf("expected ')', got %s", p.current)
		}
		p.advance()
		return expr, nil
	case TokenIllegal:
		return nil, compileErrf("%s", tok.Value)
	case TokenEOF:
		return nil, compileErrf("unexpected end of expression")
	}
	return nil, compileErrf("unexpected token %s", tok)
}
