package tombi

import "testing"

func TestTokenizeKinds(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []TokenKind
	}{
		{
			name: "simple key value",
			src:  "a = 1\n",
			want: []TokenKind{TokBareKey, TokWhitespace, TokEquals, TokWhitespace, TokIntegerDec, TokNewline, TokEOF},
		},
		{
			name: "hex integer",
			src:  "x = 0xDEAD\n",
			want: []TokenKind{TokBareKey, TokWhitespace, TokEquals, TokWhitespace, TokIntegerHex, TokNewline, TokEOF},
		},
		{
			name: "float",
			src:  "x = 3.14\n",
			want: []TokenKind{TokBareKey, TokWhitespace, TokEquals, TokWhitespace, TokFloat, TokNewline, TokEOF},
		},
		{
			name: "boolean",
			src:  "x = true\n",
			want: []TokenKind{TokBareKey, TokWhitespace, TokEquals, TokWhitespace, TokBoolean, TokNewline, TokEOF},
		},
		{
			name: "offset date time",
			src:  "x = 1979-05-27T07:32:00Z\n",
			want: []TokenKind{TokBareKey, TokWhitespace, TokEquals, TokWhitespace, TokOffsetDateTime, TokNewline, TokEOF},
		},
		{
			name: "local date",
			src:  "x = 1979-05-27\n",
			want: []TokenKind{TokBareKey, TokWhitespace, TokEquals, TokWhitespace, TokLocalDate, TokNewline, TokEOF},
		},
		{
			name: "table header",
			src:  "[a.b]\n",
			want: []TokenKind{TokLBracket, TokBareKey, TokDot, TokBareKey, TokRBracket, TokNewline, TokEOF},
		},
		{
			name: "array of tables",
			src:  "[[a]]\n",
			want: []TokenKind{TokLBracket, TokLBracket, TokBareKey, TokRBracket, TokRBracket, TokNewline, TokEOF},
		},
		{
			name: "basic string",
			src:  `s = "hi"` + "\n",
			want: []TokenKind{TokBareKey, TokWhitespace, TokEquals, TokWhitespace, TokBasicString, TokNewline, TokEOF},
		},
		{
			name: "comment",
			src:  "# hello\n",
			want: []TokenKind{TokComment, TokNewline, TokEOF},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			toks := tokenize(tc.src)
			if len(toks) != len(tc.want) {
				t.Fatalf("tokenize(%q) produced %d tokens, want %d: %+v", tc.src, len(toks), len(tc.want), toks)
			}
			for i, tok := range toks {
				if tok.Kind != tc.want[i] {
					t.Errorf("token %d: got kind %d, want %d (text %q)", i, tok.Kind, tc.want[i], tok.Text)
				}
			}
		})
	}
}

func TestTokenizeIsRestartable(t *testing.T) {
	src := "a = 1\nb = 2\n"
	first := tokenize(src)
	second := tokenize(src)
	if len(first) != len(second) {
		t.Fatalf("tokenize not restartable: got %d vs %d tokens", len(first), len(second))
	}
	for i := range first {
		if first[i].Kind != second[i].Kind || first[i].Text != second[i].Text {
			t.Fatalf("tokenize not restartable at index %d: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestMultiLineBasicStringTrailingQuotes(t *testing.T) {
	// Four trailing quotes: the first is content, the last three close.
	src := `s = """abc""""` + "\n"
	toks := tokenize(src)
	var found bool
	for _, tok := range toks {
		if tok.Kind == TokMultiLineBasicStr {
			found = true
			if tok.Text != `"""abc""""` {
				t.Errorf("got text %q", tok.Text)
			}
		}
	}
	if !found {
		t.Fatalf("no multi-line basic string token found in %+v", toks)
	}
}

func TestMultiLineBasicStringSixQuotesInvalid(t *testing.T) {
	src := `s = """abc""""""` + "\n"
	toks := tokenize(src)
	for _, tok := range toks {
		if tok.Kind == TokInvalid {
			return
		}
	}
	t.Fatalf("expected an invalid token for six trailing quotes, got %+v", toks)
}

func TestUTF16ColumnTracking(t *testing.T) {
	// U+1F600 (outside the BMP) counts as two UTF-16 code units, so the
	// newline after `s = "😀"` starts at column 9 (bytes would give 11,
	// runes 8).
	src := "s = \"\U0001F600\"\n"
	lx := newLexer(src)
	lx.valueMode = true
	var last Token
	for {
		tok := lx.Next()
		if tok.Kind == TokEOF {
			break
		}
		last = tok
	}
	if last.Kind != TokNewline || last.Pos.Start.Col != 9 {
		t.Fatalf("expected the newline token at UTF-16 column 9, got %+v", last)
	}
}
