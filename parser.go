package tombi

// parser drives a GreenBuilder from a token stream via recursive
// descent with single-token lookahead, grounded on the teacher's
// parser.go (parse/parseTableOrArrayHeader/parseKeyInHeader/parseKeyVal/
// parseValue) but emitting CST builder events instead of constructing
// AST structs directly.
type parser struct {
	lex     *lexer
	cur     Token
	source  string
	b       *GreenBuilder
	errors  []*ParseError
}

// ParseResult is the outcome of Parse: a completed green tree plus any
// recoverable errors collected along the way (spec §4.1/§4.2: lexing
// and parsing never abort on malformed input, they record and recover).
type ParseResult struct {
	Green  *GreenNode
	Root   *RedNode
	Errors []*ParseError
}

// Parse lexes and parses source into a lossless CST. It never returns a
// nil Green tree: malformed input still yields a best-effort tree with
// KindErrorNode wrappers around the parts that could not be attached,
// plus non-empty Errors.
func Parse(source string) *ParseResult {
	p := &parser{
		lex:    newLexer(source),
		source: source,
		b:      NewGreenBuilder(),
	}
	p.lex.valueMode = true

	// The root must be open before the first nextSignificant call, which
	// emits any leading trivia into the current node.
	p.b.StartNode(KindRoot)
	p.cur = p.nextSignificant()
	for p.cur.Kind != TokEOF {
		p.parseItem()
	}
	p.emitTrivia(p.cur) // trailing trivia before EOF, if any was buffered
	root := p.b.FinishNode()

	red := NewRoot(root)
	return &ParseResult{Green: root, Root: red, Errors: p.errors}
}

// nextSignificant buffers whitespace/newline/comment tokens seen while
// looking for the next significant token, emitting each directly into
// the builder so trivia stays attached to whatever precedes it.
func (p *parser) nextSignificant() Token {
	for {
		tok := p.lex.Next()
		if !tok.IsTrivia() {
			return tok
		}
		p.b.Token(kindFromToken(tok.Kind), tok.Text)
	}
}

// emitTrivia is a no-op hook kept for symmetry with nextSignificant;
// trivia is emitted eagerly as it's consumed, matching the teacher's
// collectLeadingTrivia/addTrailingTrivia being folded into one pass.
func (p *parser) emitTrivia(Token) {}

func (p *parser) advance() Token {
	prev := p.cur
	p.emitCurrentToken(prev)
	p.cur = p.nextSignificant()
	return prev
}

func (p *parser) emitCurrentToken(tok Token) {
	if tok.Kind == TokEOF {
		return
	}
	p.b.Token(kindFromToken(tok.Kind), tok.Text)
}

func (p *parser) at(k TokenKind) bool { return p.cur.Kind == k }

func (p *parser) addError(msg string) {
	p.errors = append(p.errors, newParseError(msg, p.cur.Pos, p.source))
}

// parseItem parses one top-level production: a table header, an
// array-of-table header, a key/value line, or a blank/comment line
// (trivia only, already emitted by nextSignificant).
func (p *parser) parseItem() {
	switch {
	case p.at(TokLBracket):
		p.parseTableOrArrayHeader()
	case p.at(TokNewline):
		p.advance()
	case p.isKeyStart():
		p.parseTopKeyValue()
	default:
		p.recoverUnexpected()
	}
}

func (p *parser) isKeyStart() bool {
	switch p.cur.Kind { //nolint:exhaustive
	case TokBareKey, TokBasicString, TokMultiLineBasicStr, TokLiteralString, TokMultiLineLiteralStr,
		TokIntegerDec, TokIntegerBin, TokIntegerOct, TokIntegerHex, TokFloat, TokBoolean,
		TokOffsetDateTime, TokLocalDateTime, TokLocalDate, TokLocalTime:
		return true
	default:
		return false
	}
}

// parseTableOrArrayHeader disambiguates `[table]` from `[[array]]` on a
// single extra lookahead byte, per the teacher's
// parseTableOrArrayHeader.
func (p *parser) parseTableOrArrayHeader() {
	if p.lex.peekByte() == '[' {
		p.parseArrayOfTableHeader()
		return
	}
	p.parseTableHeader()
}

func (p *parser) parseTableHeader() {
	p.b.StartNode(KindTable)
	p.advance() // '['
	p.parseKeyInHeader()
	p.expect(TokRBracket, "expected ']' to close table header")
	p.skipToLineEnd()
	p.parseHeaderBody()
	p.b.FinishNode()
}

func (p *parser) parseArrayOfTableHeader() {
	p.b.StartNode(KindArrayOfTable)
	p.advance() // '['
	p.advance() // '['
	p.parseKeyInHeader()
	p.expect(TokRBracket, "expected ']' to close array-of-table header")
	p.expect(TokRBracket, "expected ']]' to close array-of-table header")
	p.skipToLineEnd()
	p.parseHeaderBody()
	p.b.FinishNode()
}

// parseHeaderBody consumes key/value lines and blank/comment lines
// until the next header or EOF, attaching them as this header's
// children — mirroring the teacher's tableTarget.addEntry loop.
func (p *parser) parseHeaderBody() {
	for {
		switch {
		case p.at(TokEOF), p.at(TokLBracket):
			return
		case p.at(TokNewline):
			p.advance()
		case p.isKeyStart():
			p.parseKeyValue()
		default:
			p.recoverUnexpected()
			if p.at(TokEOF) {
				return
			}
		}
	}
}

func (p *parser) parseTopKeyValue() {
	p.parseKeyValue()
}

func (p *parser) parseKeyValue() {
	p.b.StartNode(KindKeyValue)
	p.parseKey()
	p.expect(TokEquals, "expected '=' after key")
	p.parseValue()
	p.skipToLineEnd()
	p.b.FinishNode()
}

// parseKeyInHeader parses the dotted key inside `[ ... ]`/`[[ ... ]]`,
// without requiring a following '='.
func (p *parser) parseKeyInHeader() {
	p.parseKey()
}

// parseKey parses one or more dot-separated key segments into a Keys
// node, per the teacher's parseSimpleKey dotted-key loop.
func (p *parser) parseKey() {
	p.b.StartNode(KindKeys)
	p.parseKeyPart()
	for p.at(TokDot) {
		p.advance()
		p.parseKeyPart()
	}
	p.b.FinishNode()
}

func (p *parser) parseKeyPart() {
	switch p.cur.Kind { //nolint:exhaustive
	case TokBareKey, TokIntegerDec, TokBoolean, TokFloat:
		// Bare keys that happen to lex as another kind (e.g. "1" as an
		// integer, "true" as a boolean) are still valid bare keys in key
		// position; re-tag them as KindBareKey.
		p.b.StartNode(KindBareKey)
		p.advance()
		p.b.FinishNode()
	case TokBasicString, TokMultiLineBasicStr, TokLiteralString, TokMultiLineLiteralStr:
		p.b.StartNode(KindQuotedKey)
		p.advance()
		p.b.FinishNode()
	default:
		p.addError("expected key")
		p.b.StartNode(KindErrorNode)
		if !p.at(TokEOF) {
			p.advance()
		}
		p.b.FinishNode()
	}
}

// parseValue dispatches on the current token to produce exactly one
// value-shaped node/token, per the teacher's parseValue.
func (p *parser) parseValue() {
	switch p.cur.Kind { //nolint:exhaustive
	case TokBasicString, TokMultiLineBasicStr, TokLiteralString, TokMultiLineLiteralStr:
		p.b.StartNode(KindStringValue)
		p.advance()
		p.b.FinishNode()
	case TokIntegerDec, TokIntegerBin, TokIntegerOct, TokIntegerHex:
		p.b.StartNode(KindIntegerValue)
		p.advance()
		p.b.FinishNode()
	case TokFloat:
		p.b.StartNode(KindFloatValue)
		p.advance()
		p.b.FinishNode()
	case TokBoolean:
		p.b.StartNode(KindBoolean)
		p.advance()
		p.b.FinishNode()
	case TokOffsetDateTime:
		p.b.StartNode(KindOffsetDateTimeValue)
		p.advance()
		p.b.FinishNode()
	case TokLocalDateTime:
		p.b.StartNode(KindLocalDateTimeValue)
		p.advance()
		p.b.FinishNode()
	case TokLocalDate:
		p.b.StartNode(KindLocalDateValue)
		p.advance()
		p.b.FinishNode()
	case TokLocalTime:
		p.b.StartNode(KindLocalTimeValue)
		p.advance()
		p.b.FinishNode()
	case TokLBracket:
		p.parseArray()
	case TokLBrace:
		p.parseInlineTable()
	default:
		p.addError("expected a value")
		p.b.StartNode(KindErrorNode)
		if !p.at(TokEOF) {
			p.advance()
		}
		p.b.FinishNode()
	}
}

func (p *parser) parseArray() {
	p.b.StartNode(KindArray)
	p.advance() // '['
	for !p.at(TokRBracket) && !p.at(TokEOF) {
		if p.at(TokNewline) {
			p.advance()
			continue
		}
		p.parseValue()
		if p.at(TokComma) {
			p.advance()
			continue
		}
		if p.at(TokNewline) {
			continue
		}
		break
	}
	p.expect(TokRBracket, "expected ']' to close array")
	p.b.FinishNode()
}

func (p *parser) parseInlineTable() {
	p.b.StartNode(KindInlineTable)
	p.advance() // '{'
	for !p.at(TokRBrace) && !p.at(TokEOF) {
		p.parseKeyValueNoNewline()
		if p.at(TokComma) {
			p.advance()
			continue
		}
		break
	}
	p.expect(TokRBrace, "expected '}' to close inline table")
	p.b.FinishNode()
}

// parseKeyValueNoNewline is parseKeyValue without the trailing-newline
// skip, since inline tables are single-line productions.
func (p *parser) parseKeyValueNoNewline() {
	p.b.StartNode(KindKeyValue)
	p.parseKey()
	p.expect(TokEquals, "expected '=' after key")
	p.parseValue()
	p.b.FinishNode()
}

func (p *parser) expect(k TokenKind, msg string) {
	if p.at(k) {
		p.advance()
		return
	}
	p.addError(msg)
}

// skipToLineEnd consumes trailing whitespace/comment and, if present,
// the terminating newline — trivia is already being emitted as it's
// lexed by nextSignificant, so this only needs to step past the
// newline token itself once it becomes current.
func (p *parser) skipToLineEnd() {
	if p.at(TokNewline) {
		p.advance()
	}
}

// recoverUnexpected implements panic-mode recovery: skip tokens until a
// line break, a `[` or EOF, wrapping the skipped run in a KindErrorNode
// so the tree stays lossless. Newlines are trivia here, so the line
// break is detected as the next significant token starting on a later
// line. `]`, `{`, `}` and `,` do not stop the skip.
func (p *parser) recoverUnexpected() {
	p.addError("unexpected token")
	p.b.StartNode(KindErrorNode)
	line := p.cur.Pos.Start.Line
	for !p.at(TokEOF) && !p.at(TokNewline) && !p.at(TokLBracket) {
		p.advance()
		if p.cur.Pos.Start.Line != line {
			break
		}
	}
	p.b.FinishNode()
}
