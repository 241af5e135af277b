package schema

import (
	"go/scanner"
	"go/token"
	"strings"
)

// TokenKind classifies a token inside a raw annotation group.
type TokenKind string

const (
	TokenIdent   TokenKind = "ident"
	TokenPunct   TokenKind = "punct"
	TokenLiteral TokenKind = "literal"
)

// Token is one lexical element of an annotation argument group.
type Token struct {
	Kind TokenKind `json:"kind"`
	Text string    `json:"text"`
}

// RawAnnotation is an unparsed per-field directive. Path is the directive name
// (for example "builder"); Args holds the tokens of its argument group and is
// nil when the directive carries no group at all.
type RawAnnotation struct {
	Path string  `json:"path"`
	Args []Token `json:"args,omitempty"`
}

// ParseDirective recognises a comment of the form //<name> or //<name>:<args>.
// The comment text is the raw text including the leading slashes, as found in
// ast.Comment.Text.
func ParseDirective(comment, name string) (RawAnnotation, bool) {
	if name == "" {
		return RawAnnotation{}, false
	}
	rest, ok := strings.CutPrefix(comment, "//"+name)
	if !ok {
		return RawAnnotation{}, false
	}
	if rest == "" {
		return RawAnnotation{Path: name}, true
	}
	args, ok := strings.CutPrefix(rest, ":")
	if !ok {
		return RawAnnotation{}, false
	}
	return RawAnnotation{Path: name, Args: TokenizeArgs(args)}, true
}

// TokenizeArgs splits annotation arguments into tokens using Go lexical rules.
// It never fails: characters the scanner rejects become punctuation tokens so
// the annotation parser can decide what to do with them.
func TokenizeArgs(text string) []Token {
	src := []byte(text)
	fset := token.NewFileSet()
	file := fset.AddFile("", fset.Base(), len(src))

	var s scanner.Scanner
	s.Init(file, src, func(token.Position, string) {}, 0)

	tokens := []Token{}
	for {
		_, tok, lit := s.Scan()
		switch {
		case tok == token.EOF:
			return tokens
		case tok == token.SEMICOLON && lit == "\n":
			continue
		case tok == token.IDENT || tok.IsKeyword():
			text := lit
			if text == "" {
				text = tok.String()
			}
			tokens = append(tokens, Token{Kind: TokenIdent, Text: text})
		case tok.IsLiteral():
			tokens = append(tokens, Token{Kind: TokenLiteral, Text: lit})
		case tok == token.ILLEGAL:
			tokens = append(tokens, Token{Kind: TokenPunct, Text: lit})
		default:
			tokens = append(tokens, Token{Kind: TokenPunct, Text: tok.String()})
		}
	}
}
