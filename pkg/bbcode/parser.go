package bbcode

import (
	"github.com/charmbracelet/log"

	"github.com/yaklabco/gobbcode/pkg/bbast"
)

// CommandResolver maps a link URI to a registered command.
type CommandResolver interface {
	Resolve(uri string) (bbast.CommandRef, bool)
}

// ElementFinder locates a named element, used as the target of a command link.
type ElementFinder interface {
	FindByName(name string) (bbast.ElementRef, bool)
}

// Option configures a Parser.
type Option func(*Parser)

// WithCommands sets the resolver consulted for url tags.
func WithCommands(resolver CommandResolver) Option {
	return func(p *Parser) {
		p.commands = resolver
	}
}

// WithElements sets the finder used to resolve command link targets.
func WithElements(finder ElementFinder) Option {
	return func(p *Parser) {
		p.elements = finder
	}
}

// WithQuoteBackground sets the background applied inside quote tags.
func WithQuoteBackground(color bbast.Color) Option {
	return func(p *Parser) {
		p.quote = &color
	}
}

// WithLogger enables debug logging of ignored tags.
func WithLogger(logger *log.Logger) Option {
	return func(p *Parser) {
		p.logger = logger
	}
}

// Parser builds an inline tree from markup in a single pass with one token
// of lookahead. A Parser is single-use and not safe for concurrent use.
type Parser struct {
	input     string
	lexer     *Lexer
	lookahead *Token

	commands CommandResolver
	elements ElementFinder
	quote    *bbast.Color
	logger   *log.Logger

	ctx  StyleContext
	root *bbast.Node
	used bool
}

// NewParser creates a parser over input.
func NewParser(input string, opts ...Option) *Parser {
	p := &Parser{
		input: input,
		lexer: NewLexer(input),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse parses markup with a fresh Parser.
func Parse(input string, opts ...Option) (*bbast.Node, error) {
	return NewParser(input, opts...).Parse()
}

// Parse consumes the whole input and returns the root Span. On error the
// tree is discarded and nil is returned.
func (p *Parser) Parse() (*bbast.Node, error) {
	if p.used {
		return nil, ErrParserReused
	}
	p.used = true
	p.root = bbast.NewSpan()

	for {
		tok, err := p.peek()
		if err != nil {
			return nil, err
		}
		p.consume()

		switch tok.Kind {
		case TokStartTag:
			err = p.startTag(tok)
		case TokEndTag:
			err = p.endTag(tok)
		case TokText:
			p.text(tok.Value)
		case TokLineBreak:
			p.root.AppendChild(bbast.NewLineBreak())
		case TokAttribute:
			line, col := lineColumn(p.input, tok.Offset)
			err = &UnexpectedTokenError{Token: tok, Line: line, Column: col}
		case TokEnd:
			return p.root, nil
		default:
			err = &UnknownTokenTypeError{Kind: tok.Kind}
		}
		if err != nil {
			return nil, err
		}
	}
}

func (p *Parser) peek() (Token, error) {
	if p.lookahead == nil {
		tok, err := p.lexer.Next()
		if err != nil {
			return Token{}, err
		}
		p.lookahead = &tok
	}
	return *p.lookahead, nil
}

func (p *Parser) consume() {
	p.lookahead = nil
}

func (p *Parser) startTag(tok Token) error {
	tag := p.lookupTag(tok)

	switch tag {
	case TagLineBreak:
		p.root.AppendChild(bbast.NewLineBreak())
		return nil
	case TagListItem:
		if p.ctx.FirstListItem {
			p.ctx.FirstListItem = false
			p.root.AppendChild(bbast.NewLineBreak())
		}
		p.root.AppendChild(bbast.NewRun(p.ctx.nextListMarker(), nil))
	}

	var attr *string
	if tag.TakesAttribute() {
		next, err := p.peek()
		if err != nil {
			return err
		}
		if next.Kind == TokAttribute {
			value := next.Value
			attr = &value
			p.consume()
		}
	}

	return p.ctx.apply(tag, true, attr, p.quote)
}

func (p *Parser) endTag(tok Token) error {
	tag := p.lookupTag(tok)
	if tag == TagListItem && p.ctx.InListItem {
		p.root.AppendChild(bbast.NewLineBreak())
	}
	return p.ctx.apply(tag, false, nil, p.quote)
}

func (p *Parser) text(value string) {
	run := bbast.NewRun(value, p.ctx.Snapshot())

	if p.ctx.NavigateTarget == "" {
		p.root.AppendChild(run)
		return
	}

	target, err := ParseNavigateTarget(p.ctx.NavigateTarget)
	if err != nil {
		if p.logger != nil {
			p.logger.Debug("url target not usable, emitting plain text",
				"uri", p.ctx.NavigateTarget, "error", err)
		}
		p.root.AppendChild(run)
		return
	}

	link := bbast.NewLink(p.linkAttrs(target))
	link.AppendChild(run)
	p.root.AppendChild(link)
}

func (p *Parser) linkAttrs(target NavigateTarget) *bbast.LinkAttrs {
	attrs := &bbast.LinkAttrs{URI: target.URI, Parameter: target.Parameter}
	if p.ctx.Foreground != nil {
		fg := *p.ctx.Foreground
		attrs.Foreground = &fg
	}
	if p.commands == nil {
		return attrs
	}

	cmd, ok := p.commands.Resolve(target.URI)
	if !ok {
		return attrs
	}
	attrs.Command = &cmd
	attrs.TargetName = target.TargetName
	if target.TargetName != nil && p.elements != nil {
		if element, found := p.elements.FindByName(*target.TargetName); found {
			attrs.Target = &element
		}
	}
	return attrs
}

func (p *Parser) lookupTag(tok Token) Tag {
	tag := LookupTag(tok.Value)
	if tag == TagUnknown && p.logger != nil {
		p.logger.Debug("ignoring unknown tag", "tag", tok.Value, "offset", tok.Offset)
	}
	return tag
}
