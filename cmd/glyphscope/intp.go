package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/glyphscope/core"
	"github.com/npillmayer/glyphscope/core/glyphs"
	"github.com/npillmayer/glyphscope/core/locate/resources"
	"github.com/npillmayer/glyphscope/engine/jsonflat"
	"github.com/npillmayer/glyphscope/engine/session"
	"github.com/npillmayer/schuko"
	"github.com/pterm/pterm"
)

// Intp is our interpreter object
type Intp struct {
	repl     *readline.Instance
	session  *session.Session
	conf     schuko.Configuration
	ctx      context.Context
	json     *jsonflat.Document
	jsonTerm string
}

// Command is a parsed input line.
type Command struct {
	code int
	arg  string
}

const (
	QUIT int = iota
	HELP
	GOOGLE
	TYPEKIT
	FILE
	CSS
	FONT
	WEIGHT
	STYLE
	SCAN
	GLYPHS
	SEARCH
	CATEGORY
	CATEGORIES
	PREVIEW
	JSON
	FILTER
	EXPORT
	GFONTS
	FAMILIES
	STATUS
	RESET
)

var commands = map[string]int{
	"quit":       QUIT,
	"exit":       QUIT,
	"help":       HELP,
	"google":     GOOGLE,
	"typekit":    TYPEKIT,
	"file":       FILE,
	"import":     FILE,
	"css":        CSS,
	"font":       FONT,
	"weight":     WEIGHT,
	"style":      STYLE,
	"scan":       SCAN,
	"glyphs":     GLYPHS,
	"search":     SEARCH,
	"category":   CATEGORY,
	"categories": CATEGORIES,
	"preview":    PREVIEW,
	"json":       JSON,
	"filter":     FILTER,
	"export":     EXPORT,
	"gfonts":     GFONTS,
	"families":   FAMILIES,
	"status":     STATUS,
	"reset":      RESET,
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		cmd, err := parseCommand(line)
		if err != nil {
			pterm.Error.Println(err.Error())
			continue
		}
		err, quit := intp.execute(cmd)
		if err != nil {
			pterm.Error.Println(core.UserMessage(err))
			tracer().Debugf(err.Error())
			continue
		}
		if quit {
			break
		}
	}
	pterm.Info.Println("Good bye!")
}

func parseCommand(line string) (*Command, error) {
	word, arg, _ := strings.Cut(line, " ")
	code, ok := commands[strings.ToLower(word)]
	if !ok {
		return nil, fmt.Errorf("unknown command %q, type 'help' for a list of commands", word)
	}
	tracer().Debugf("command %s(%q)", word, arg)
	return &Command{code: code, arg: strings.TrimSpace(arg)}, nil
}

func (intp *Intp) execute(cmd *Command) (error, bool) {
	s := intp.session
	var err error
	switch cmd.code {
	case QUIT:
		return nil, true
	case HELP:
		help(cmd.arg)
	case GOOGLE:
		err = intp.load(func() error { return s.LoadGoogleFonts(intp.ctx, cmd.arg) })
	case TYPEKIT:
		err = intp.load(func() error { return s.LoadTypekit(intp.ctx, cmd.arg) })
	case FILE:
		err = intp.load(func() error { return s.ImportFile(cmd.arg) })
	case CSS:
		err = intp.load(func() error { return s.InjectCSSFile(intp.ctx, cmd.arg) })
	case FONT:
		err = intp.load(func() error { return s.SelectFont(intp.ctx, cmd.arg) })
	case WEIGHT:
		err = intp.load(func() error { return s.SelectWeight(intp.ctx, cmd.arg) })
	case STYLE:
		err = intp.load(func() error { return s.SelectStyle(intp.ctx, cmd.arg) })
	case SCAN:
		intp.awaitScan()
	case GLYPHS:
		intp.awaitScan()
		if cmd.arg == "table" {
			showGlyphTable(s.Visible())
		} else {
			showGlyphs(s.Visible(), terminalWidth())
		}
	case SEARCH:
		s.SetQuery(cmd.arg)
		pterm.Printfln("%d of %d glyphs match", len(s.Visible()), len(s.Records()))
	case CATEGORY:
		err = intp.selectCategory(cmd.arg)
	case CATEGORIES:
		showCategories(s.Categories(), s.Category())
	case PREVIEW:
		p, perr := s.Preview(cmd.arg)
		if err = perr; err == nil {
			showPreview(p)
		}
	case JSON:
		if intp.json, err = jsonflat.Load(cmd.arg); err == nil {
			intp.jsonTerm = ""
			intp.showJSON()
		}
	case FILTER:
		if intp.json == nil {
			return core.Error(core.EMISSING, "Please load a JSON file first"), false
		}
		intp.jsonTerm = cmd.arg
		intp.showJSON()
	case EXPORT:
		err = intp.export(cmd.arg)
	case GFONTS:
		err = intp.googleFonts(cmd.arg)
	case FAMILIES:
		showFamilies(s.Registry().Families())
	case STATUS:
		showState(s.State(), s.Scanning(), len(s.Records()))
	case RESET:
		s.ResetAll()
		intp.json, intp.jsonTerm = nil, ""
		pterm.Info.Println("Font context reset")
	}
	return err, false
}

// load runs a font loading operation and reports the new font context.
func (intp *Intp) load(op func() error) error {
	if err := op(); err != nil {
		return err
	}
	st := intp.session.State()
	if st.Family == "" {
		pterm.Warning.Println("No font family found")
		return nil
	}
	pterm.Success.Printfln("Loaded %s (%s, %s)", st.Family, st.Weight, st.Style)
	if len(st.FontInfos) > 1 {
		showFontInfos(st.FontInfos, st.Family)
	}
	return nil
}

func (intp *Intp) awaitScan() {
	s := intp.session
	if !s.Scanning() {
		return
	}
	spinner, err := pterm.DefaultSpinner.Start("Scanning glyphs of " + s.State().Family)
	s.Scanner().Wait()
	if err == nil {
		spinner.Success(fmt.Sprintf("Found %d glyphs", len(s.Records())))
	}
}

func (intp *Intp) selectCategory(arg string) error {
	s := intp.session
	if arg == "" {
		s.SetCategory(glyphs.CategoryAll)
		return nil
	}
	for _, opt := range glyphs.AllCategories() {
		if strings.EqualFold(arg, string(opt.Value)) || strings.EqualFold(arg, opt.Label) {
			s.SetCategory(opt.Value)
			pterm.Printfln("%d glyphs in %s", len(s.Visible()), opt.Label)
			return nil
		}
	}
	return core.Error(core.EINVALID, "Unknown category %q, see 'categories'", arg)
}

func (intp *Intp) showJSON() {
	entries := jsonflat.Filter(intp.json.Entries, intp.jsonTerm)
	pterm.Printfln("Showing %d of %d entries", len(entries), len(intp.json.Entries))
	var missing func(string) []string
	if intp.session.State().Family != "" {
		missing = func(text string) []string {
			if p, err := intp.session.Preview(text); err == nil {
				return p.Missing()
			}
			return nil
		}
	}
	showEntries(entries, missing)
}

func (intp *Intp) export(dir string) error {
	if intp.json == nil {
		return core.Error(core.EMISSING, "Please load a JSON file first")
	}
	if dir == "" {
		dir = "."
	}
	path, err := intp.json.Export(dir, intp.jsonTerm)
	if err == nil {
		pterm.Success.Printfln("Exported to %s", path)
	}
	return err
}

func (intp *Intp) googleFonts(pattern string) error {
	if pattern == "" {
		return errors.New("please provide a pattern for family names")
	}
	dir, err := resources.LoadGoogleFontsDirectory(intp.ctx, intp.conf)
	if err != nil {
		return err
	}
	infos, err := dir.List(pattern)
	if err != nil {
		return err
	}
	showGoogleFonts(infos)
	return nil
}

// completer creates tab completion for commands and font families.
func completer(s *session.Session) *readline.PrefixCompleter {
	families := readline.PcItemDynamic(func(line string) []string {
		_, prefix, _ := strings.Cut(line, " ")
		return s.Registry().Complete(strings.TrimSpace(prefix))
	})
	categories := make([]readline.PrefixCompleterInterface, 0, 16)
	for _, opt := range glyphs.AllCategories() {
		categories = append(categories, readline.PcItem(string(opt.Value)))
	}
	items := []readline.PrefixCompleterInterface{
		readline.PcItem("font", families),
		readline.PcItem("category", categories...),
		readline.PcItem("glyphs", readline.PcItem("table")),
		readline.PcItem("style", readline.PcItem("normal"), readline.PcItem("italic")),
	}
	for cmd := range commands {
		switch cmd {
		case "font", "category", "glyphs", "style":
			continue
		}
		items = append(items, readline.PcItem(cmd))
	}
	return readline.NewPrefixCompleter(items...)
}

func help(topic string) {
	tracer().Infof("help %v", topic)
	pterm.Info.Println("Commands")
	pterm.Println(`
	google <url|embed code>   load a Google Fonts stylesheet
	typekit <url|embed code>  load an Adobe Typekit stylesheet
	file <path>               import a font file (.ttf, .otf, .woff)
	css <path>                load the fonts of a @font-face stylesheet
	font <family>             select a family (of the stylesheet, the system or Google Fonts)
	weight <w>                select a weight, e.g. 700
	style <s>                 select a style: normal or italic
	scan                      wait for the glyph scan to finish
	glyphs [table]            show the glyphs found
	search <query>            search glyphs by character, code point or name
	category <c>              show glyphs of a category only
	categories                list the categories of the glyphs found
	preview [text]            render a sample text at 16, 24 and 32 px
	json <path>               flatten a JSON file, showing glyphs missing in the font
	filter <term>             filter the JSON entries
	export [dir]              export the filtered JSON entries as CSV
	gfonts <pattern>          search the Google Fonts directory (needs an API key)
	families                  list the font families loaded
	status                    show the font context
	reset                     unload every font
	quit                      leave glyphscope
	`)
}
