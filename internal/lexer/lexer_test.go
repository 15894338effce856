package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tokenTypes(toks []Token) []TokenType {
	types := make([]TokenType, len(toks))
	for i, t := range toks {
		types[i] = t.Type
	}
	return types
}

func TestTokenizeSimpleAssignment(t *testing.T) {
	toks, errs := New("x = 1\n").Tokenize()
	require.Empty(t, errs)
	assert.Equal(t, []TokenType{IDENT, ASSIGN, INT, NEWLINE, EOF}, tokenTypes(toks))
	assert.Equal(t, "x", toks[0].Literal)
	assert.Equal(t, "1", toks[2].Literal)
}

func TestTokenizeKeywordsAndOperators(t *testing.T) {
	toks, errs := New("if x == 1 and not y:\n").Tokenize()
	require.Empty(t, errs)
	assert.Equal(t, []TokenType{
		IF, IDENT, EQ, INT, AND, NOT, IDENT, COLON, NEWLINE, EOF,
	}, tokenTypes(toks))
}

func TestTokenizeIndentationProducesIndentDedent(t *testing.T) {
	src := "if true:\n    x = 1\n    y = 2\nz = 3\n"
	toks, errs := New(src).Tokenize()
	require.Empty(t, errs)
	types := tokenTypes(toks)
	require.Contains(t, types, INDENT)
	require.Contains(t, types, DEDENT)

	// the dedent must appear before the final top-level statement
	var indentIdx, dedentIdx, lastIdentIdx int
	for i, ty := range types {
		if ty == INDENT && indentIdx == 0 {
			indentIdx = i
		}
		if ty == DEDENT && dedentIdx == 0 {
			dedentIdx = i
		}
	}
	for i, tok := range toks {
		if tok.Type == IDENT && tok.Literal == "z" {
			lastIdentIdx = i
		}
	}
	assert.Less(t, indentIdx, dedentIdx)
	assert.Less(t, dedentIdx, lastIdentIdx)
}

func TestTokenizeNestedIndentationMultipleDedents(t *testing.T) {
	src := "if true:\n    if true:\n        x = 1\ny = 2\n"
	toks, _ := New(src).Tokenize()
	dedents := 0
	for _, tok := range toks {
		if tok.Type == DEDENT {
			dedents++
		}
	}
	assert.Equal(t, 2, dedents)
}

func TestTokenizeBlankLinesAreIgnoredForIndentation(t *testing.T) {
	src := "x = 1\n\n   \ny = 2\n"
	toks, errs := New(src).Tokenize()
	require.Empty(t, errs)
	types := tokenTypes(toks)
	assert.NotContains(t, types, INDENT)
	assert.NotContains(t, types, DEDENT)
}

func TestTokenizeBracketsSuppressNewlines(t *testing.T) {
	src := "x = [1,\n2,\n3]\n"
	toks, errs := New(src).Tokenize()
	require.Empty(t, errs)
	newlineCount := 0
	for _, tok := range toks {
		if tok.Type == NEWLINE {
			newlineCount++
		}
	}
	assert.Equal(t, 1, newlineCount)
}

func TestTokenizeStringEscapesAndTripleQuoted(t *testing.T) {
	toks, errs := New(`s = "a\nb"` + "\n").Tokenize()
	require.Empty(t, errs)
	require.Len(t, toks, 5)
	assert.Equal(t, "a\nb", toks[2].Literal)

	toks2, errs2 := New(`s = """multi
line"""` + "\n").Tokenize()
	require.Empty(t, errs2)
	assert.Equal(t, "multi\nline", toks2[2].Literal)
}

func TestTokenizeTwoCharOperatorsPreferredOverOneChar(t *testing.T) {
	toks, errs := New("a <= b\na < b\n").Tokenize()
	require.Empty(t, errs)
	assert.Equal(t, LT_EQ, toks[1].Type)
	assert.Equal(t, LT, toks[5].Type)
}

func TestTokenizeFloatLiteral(t *testing.T) {
	toks, errs := New("x = 3.14\n").Tokenize()
	require.Empty(t, errs)
	assert.Equal(t, FLOAT, toks[2].Type)
	assert.Equal(t, "3.14", toks[2].Literal)
}

func TestTokenizeLineCommentIsSkipped(t *testing.T) {
	toks, errs := New("x = 1 # a comment\ny = 2\n").Tokenize()
	require.Empty(t, errs)
	types := tokenTypes(toks)
	assert.Equal(t, []TokenType{IDENT, ASSIGN, INT, NEWLINE, IDENT, ASSIGN, INT, NEWLINE, EOF}, types)
}

func TestTokenizeIllegalCharacterRecordsError(t *testing.T) {
	_, errs := New("x = 1 $ 2\n").Tokenize()
	require.NotEmpty(t, errs)
}

func TestTokenizeMismatchedDedentIsIndentationError(t *testing.T) {
	src := "if true:\n    x = 1\n  y = 2\n"
	_, errs := New(src).Tokenize()
	require.Len(t, errs, 1)
	assert.True(t, errs[0].Indentation)
}

func TestLookupIdentRecognizesKeywords(t *testing.T) {
	assert.Equal(t, IF, LookupIdent("if"))
	assert.Equal(t, IDENT, LookupIdent("ifx"))
	assert.Equal(t, TRUE, LookupIdent("true"))
}
