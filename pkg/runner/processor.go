package runner

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/gobbcode/pkg/bbast"
	"github.com/yaklabco/gobbcode/pkg/bbcode"
	"github.com/yaklabco/gobbcode/pkg/command"
	"github.com/yaklabco/gobbcode/pkg/config"
	"github.com/yaklabco/gobbcode/pkg/convert"
	"github.com/yaklabco/gobbcode/pkg/fsutil"
	"github.com/yaklabco/gobbcode/pkg/langdetect"
)

// Processor turns one source into a tree. It holds only read-only state
// and may be shared by any number of workers.
type Processor struct {
	Commands *command.Dictionary
	Elements *command.Elements

	// QuoteBackground is applied inside quote tags. Nil disables it.
	QuoteBackground *bbast.Color

	// From selects the input markup.
	From config.InputFormat

	Logger *log.Logger

	markdown *convert.Markdown
}

// NewProcessor builds a Processor from a resolved config. The command
// dictionary and element registry are created from the config's commands
// and elements sections.
func NewProcessor(cfg *config.Config, logger *log.Logger) (*Processor, error) {
	if cfg == nil {
		cfg = config.NewConfig()
	}

	quote, err := QuoteBackground(cfg.QuoteBackground)
	if err != nil {
		return nil, err
	}

	commands, err := command.FromConfig(cfg.Commands)
	if err != nil {
		return nil, fmt.Errorf("build command dictionary: %w", err)
	}

	elements, err := command.ElementsFromConfig(cfg.Elements)
	if err != nil {
		return nil, fmt.Errorf("build element registry: %w", err)
	}

	from := cfg.From
	if from == "" {
		from = config.InputBBCode
	}

	return &Processor{
		Commands:        commands,
		Elements:        elements,
		QuoteBackground: quote,
		From:            from,
		Logger:          logger,
		markdown:        convert.NewMarkdown(),
	}, nil
}

// QuoteBackground converts a configured quote color. An empty value or
// config.QuoteBackgroundNone yields nil.
func QuoteBackground(value string) (*bbast.Color, error) {
	value = strings.TrimSpace(value)
	if value == "" || strings.EqualFold(value, config.QuoteBackgroundNone) {
		return nil, nil //nolint:nilnil // No background is a valid result.
	}
	color, err := bbcode.ParseColor(value)
	if err != nil {
		return nil, fmt.Errorf("quote background: %w", err)
	}
	return &color, nil
}

// ProcessFile reads and parses src. The outcome always carries the path;
// Info is set once the file was read, and Markup whenever parsing failed.
func (p *Processor) ProcessFile(ctx context.Context, src Source) FileOutcome {
	outcome := FileOutcome{Path: src.Path, Root: src.Root}

	content, info, err := fsutil.ReadFile(ctx, src.Path)
	if err != nil {
		outcome.Error = err
		return outcome
	}
	outcome.Info = info

	p.parseInto(ctx, &outcome, content)
	return outcome
}

// ProcessSource parses content that did not come from a discovered file,
// such as standard input. name is used as the outcome path.
func (p *Processor) ProcessSource(ctx context.Context, name string, content []byte) FileOutcome {
	outcome := FileOutcome{Path: name}
	p.parseInto(ctx, &outcome, content)
	return outcome
}

// Process parses content, converting it from Markdown first when the
// processor reads Markdown.
func (p *Processor) Process(ctx context.Context, content []byte) (*bbast.Node, error) {
	_, tree, err := p.parse(ctx, "", content)
	return tree, err
}

func (p *Processor) parseInto(ctx context.Context, outcome *FileOutcome, content []byte) {
	source, tree, err := p.parse(ctx, outcome.Path, content)
	if err != nil {
		outcome.Error = fmt.Errorf("%s: %w", outcome.Path, err)
		outcome.Markup = source
		return
	}
	outcome.Tree = tree
}

// InputFormat resolves the markup of one input. path may be empty or
// StdinPath.
func (p *Processor) InputFormat(path string, content []byte) config.InputFormat {
	switch p.From {
	case config.InputAuto:
		if path == StdinPath {
			path = ""
		}
		return langdetect.Detect(path, content)
	case "":
		return config.InputBBCode
	default:
		return p.From
	}
}

// parse returns the bbcode that was handed to the parser along with the
// tree, so error positions can be shown against it.
func (p *Processor) parse(ctx context.Context, path string, content []byte) (string, *bbast.Node, error) {
	if err := ctx.Err(); err != nil {
		return "", nil, fmt.Errorf("process cancelled: %w", err)
	}

	source := string(content)
	from := p.InputFormat(path, content)
	if p.Logger != nil && p.From == config.InputAuto {
		p.Logger.Debug("detected input format", "path", path, "from", from)
	}
	if from == config.InputMarkdown {
		md := p.markdown
		if md == nil {
			md = convert.NewMarkdown()
		}
		converted, err := md.Convert(ctx, content)
		if err != nil {
			return "", nil, err
		}
		source = converted
	}

	tree, err := bbcode.Parse(source, p.parseOptions()...)
	return source, tree, err
}

func (p *Processor) parseOptions() []bbcode.Option {
	var opts []bbcode.Option
	if p.Commands != nil {
		opts = append(opts, bbcode.WithCommands(p.Commands))
	}
	if p.Elements != nil {
		opts = append(opts, bbcode.WithElements(p.Elements))
	}
	if p.QuoteBackground != nil {
		opts = append(opts, bbcode.WithQuoteBackground(*p.QuoteBackground))
	}
	if p.Logger != nil {
		opts = append(opts, bbcode.WithLogger(p.Logger))
	}
	return opts
}
