package expr

import (
	"fmt"
	"strconv"
)

type tokenKind int

const (
	tokenEOF tokenKind = iota
	tokenNumber
	tokenString
	tokenIdent
	tokenLeftParen
	tokenRightParen
	tokenComma
	tokenAnd
	tokenOr
	tokenNot
	tokenEq
	tokenNotEq
	tokenLess
	tokenLessEq
	tokenGreater
	tokenGreaterEq
	tokenPlus
	tokenMinus
	tokenStar
	tokenSlash
	tokenPercent
)

type token struct {
	kind tokenKind
	text string
	num  float64
}

func lex(input string) ([]token, error) {
	var tokens []token

	i := 0
	for i < len(input) {
		ch := input[i]

		switch {
		case ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r':
			i++

		case ch >= '0' && ch <= '9':
			start := i
			for i < len(input) && (input[i] >= '0' && input[i] <= '9' || input[i] == '.') {
				i++
			}
			num, err := strconv.ParseFloat(input[start:i], 64)
			if err != nil {
				return nil, fmt.Errorf("invalid number %q: %w", input[start:i], err)
			}
			tokens = append(tokens, token{kind: tokenNumber, text: input[start:i], num: num})

		case isIdentStart(ch):
			start := i
			for i < len(input) && isIdentPart(input[i]) {
				i++
			}
			tokens = append(tokens, token{kind: tokenIdent, text: input[start:i]})

		case ch == '"' || ch == '\'':
			quote := ch
			i++
			start := i
			for i < len(input) && input[i] != quote {
				i++
			}
			if i >= len(input) {
				return nil, fmt.Errorf("unterminated string literal")
			}
			tokens = append(tokens, token{kind: tokenString, text: input[start:i]})
			i++

		default:
			kind, width, err := lexOperator(input, i)
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, token{kind: kind, text: input[i : i+width]})
			i += width
		}
	}

	tokens = append(tokens, token{kind: tokenEOF})
	return tokens, nil
}

func lexOperator(input string, i int) (tokenKind, int, error) {
	rest := input[i:]

	twoChar := map[string]tokenKind{
		"&&": tokenAnd,
		"||": tokenOr,
		"==": tokenEq,
		"!=": tokenNotEq,
		"<=": tokenLessEq,
		">=": tokenGreaterEq,
	}
	if len(rest) >= 2 {
		if kind, ok := twoChar[rest[:2]]; ok {
			return kind, 2, nil
		}
	}

	oneChar := map[byte]tokenKind{
		'(': tokenLeftParen,
		')': tokenRightParen,
		',': tokenComma,
		'!': tokenNot,
		'<': tokenLess,
		'>': tokenGreater,
		'+': tokenPlus,
		'-': tokenMinus,
		'*': tokenStar,
		'/': tokenSlash,
		'%': tokenPercent,
	}
	if kind, ok := oneChar[rest[0]]; ok {
		return kind, 1, nil
	}

	return tokenEOF, 0, fmt.Errorf("unexpected character %q", rest[0])
}

func isIdentStart(ch byte) bool {
	return ch == '_' || ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z'
}

func isIdentPart(ch byte) bool {
	return isIdentStart(ch) || ch >= '0' && ch <= '9'
}
