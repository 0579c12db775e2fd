package expr

import "fmt"

type node interface {
	eval(env *Env) (any, error)
}

type literalNode struct {
	value any
}

type identNode struct {
	name string
}

type callNode struct {
	name string
	args []node
}

type unaryNode struct {
	op      tokenKind
	operand node
}

type binaryNode struct {
	op    tokenKind
	left  node
	right node
}

type parser struct {
	tokens []token
	pos    int
}

func parse(input string) (node, error) {
	tokens, err := lex(input)
	if err != nil {
		return nil, err
	}

	p := &parser{tokens: tokens}
	root, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if p.peek().kind != tokenEOF {
		return nil, fmt.Errorf("unexpected input after expression: %q", p.peek().text)
	}

	return root, nil
}

func (p *parser) parseOr() (node, error) {
	return p.parseBinary(p.parseAnd, tokenOr)
}

func (p *parser) parseAnd() (node, error) {
	return p.parseBinary(p.parseEquality, tokenAnd)
}

func (p *parser) parseEquality() (node, error) {
	return p.parseBinary(p.parseComparison, tokenEq, tokenNotEq)
}

func (p *parser) parseComparison() (node, error) {
	return p.parseBinary(p.parseAdditive, tokenLess, tokenLessEq, tokenGreater, tokenGreaterEq)
}

func (p *parser) parseAdditive() (node, error) {
	return p.parseBinary(p.parseMultiplicative, tokenPlus, tokenMinus)
}

func (p *parser) parseMultiplicative() (node, error) {
	return p.parseBinary(p.parseUnary, tokenStar, tokenSlash, tokenPercent)
}

// parseBinary parses a left-associative run of the given operators, with
// operands produced by the next-tighter level.
func (p *parser) parseBinary(next func() (node, error), ops ...tokenKind) (node, error) {
	left, err := next()
	if err != nil {
		return nil, err
	}

	for matchesKind(p.peek().kind, ops) {
		op := p.advance().kind
		right, err := next()
		if err != nil {
			return nil, err
		}
		left = &binaryNode{op: op, left: left, right: right}
	}

	return left, nil
}

func (p *parser) parseUnary() (node, error) {
	if kind := p.peek().kind; kind == tokenNot || kind == tokenMinus {
		op := p.advance().kind
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &unaryNode{op: op, operand: operand}, nil
	}

	return p.parsePrimary()
}

func (p *parser) parsePrimary() (node, error) {
	tok := p.advance()

	switch tok.kind {
	case tokenNumber:
		return &literalNode{value: tok.num}, nil

	case tokenString:
		return &literalNode{value: tok.text}, nil

	case tokenIdent:
		switch tok.text {
		case "true":
			return &literalNode{value: true}, nil
		case "false":
			return &literalNode{value: false}, nil
		}
		if p.peek().kind == tokenLeftParen {
			p.advance()
			args, err := p.parseArgs()
			if err != nil {
				return nil, err
			}
			return &callNode{name: tok.text, args: args}, nil
		}
		return &identNode{name: tok.text}, nil

	case tokenLeftParen:
		inner, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if p.advance().kind != tokenRightParen {
			return nil, fmt.Errorf("expected closing parenthesis")
		}
		return inner, nil
	}

	return nil, fmt.Errorf("unexpected token %q", tok.text)
}

func (p *parser) parseArgs() ([]node, error) {
	var args []node

	if p.peek().kind == tokenRightParen {
		p.advance()
		return args, nil
	}

	for {
		arg, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)

		switch p.advance().kind {
		case tokenComma:
		case tokenRightParen:
			return args, nil
		default:
			return nil, fmt.Errorf("expected ',' or ')' in argument list")
		}
	}
}

func (p *parser) peek() token {
	return p.tokens[p.pos]
}

func (p *parser) advance() token {
	tok := p.tokens[p.pos]
	if tok.kind != tokenEOF {
		p.pos++
	}
	return tok
}

func matchesKind(kind tokenKind, ops []tokenKind) bool {
	for _, op := range ops {
		if kind == op {
			return true
		}
	}
	return false
}
