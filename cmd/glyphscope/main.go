/*
Command glyphscope is an interactive explorer for the character coverage
of fonts.

Fonts are loaded from Google Fonts or Adobe Typekit stylesheets, from font
files or from @font-face stylesheets on disk. glyphscope then scans a
fixed list of candidate characters and shows the ones the font supplies,
grouped into categories and searchable by character, code point or name.

Usage:

	glyphscope [-trace level] [-url google-css-url | -typekit css-url | -file font-file | -css stylesheet] [-size px]

Configuration keys may be set in the environment as GLYPHSCOPE_<KEY>, with
dashes in keys replaced by underscores (e.g. GLYPHSCOPE_FALLBACK_FONT).

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2021–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/glyphscope/core"
	"github.com/npillmayer/glyphscope/engine/session"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/pterm/pterm"
)

// tracer traces with key 'glyphscope.cli'
func tracer() tracing.Trace {
	return tracing.Select("glyphscope.cli")
}

// traceKeys are the tracers of glyphscope's packages.
var traceKeys = []string{
	"glyphscope.cli",
	"glyphscope.fonts",
	"glyphscope.resources",
	"glyphscope.glyphs",
	"glyphscope.scan",
	"glyphscope.loader",
	"glyphscope.session",
	"glyphscope.json",
}

func main() {
	initDisplay()

	// command line flags
	tlevel := flag.String("trace", "Error", "Trace level [Debug|Info|Error]")
	googleURL := flag.String("url", "", "Google Fonts CSS URL to load")
	typekitURL := flag.String("typekit", "", "Typekit CSS URL to load")
	fontfile := flag.String("file", "", "Font file to import")
	cssfile := flag.String("css", "", "@font-face stylesheet to load")
	size := flag.Int("size", 0, "Pixel size used for measuring glyphs")
	flag.Parse()

	// set up logging
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := configure(*tlevel, *size)
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		fmt.Printf("error configuring tracing")
		os.Exit(1)
	}
	tracing.SetTraceSelector(trace2go.Selector())
	pterm.Info.Println("Welcome to glyphscope") // colored welcome message
	tracer().Infof("Trace level is %s", *tlevel)
	//
	// set up REPL
	sess := session.New(conf)
	defer sess.Close()
	repl, err := readline.NewEx(&readline.Config{
		Prompt:       "glyphs > ",
		AutoComplete: completer(sess),
	})
	if err != nil {
		tracer().Errorf(err.Error())
		os.Exit(3)
	}
	defer repl.Close()
	intp := &Intp{repl: repl, session: sess, conf: conf, ctx: context.Background()}
	//
	// load font given by flags
	var cmd *Command
	switch {
	case *googleURL != "":
		cmd = &Command{code: GOOGLE, arg: *googleURL}
	case *typekitURL != "":
		cmd = &Command{code: TYPEKIT, arg: *typekitURL}
	case *fontfile != "":
		cmd = &Command{code: FILE, arg: *fontfile}
	case *cssfile != "":
		cmd = &Command{code: CSS, arg: *cssfile}
	}
	if cmd != nil {
		if err, _ := intp.execute(cmd); err != nil {
			core.UserError(err)
			os.Exit(4)
		}
	}
	//
	// start receiving commands
	pterm.Info.Println("Type 'help' for a list of commands, quit with <ctrl>D")
	intp.REPL() // go into interactive mode
}

// configure assembles the configuration from built-in defaults, the
// environment and command-line flags.
func configure(tlevel string, size int) testconfig.Conf {
	conf := testconfig.Conf{
		"tracing.adapter": "go",
	}
	for key, value := range core.DefaultSettings() {
		conf[key] = value
	}
	for _, key := range []string{"app-key", "fallback-font", "fontconfig", "google-api-key",
		"probe-size", "scan-batch", "scan-delay-ms", "http-timeout-s", "cache-dir",
		"google-fonts-api"} {
		env := "GLYPHSCOPE_" + strings.ToUpper(strings.ReplaceAll(key, "-", "_"))
		if value, ok := os.LookupEnv(env); ok {
			conf[key] = value
		}
	}
	if _, set := conf["google-api-key"]; !set {
		if key, ok := os.LookupEnv("GOOGLE_API_KEY"); ok {
			conf["google-api-key"] = key
		}
	}
	if size > 0 {
		conf["probe-size"] = strconv.Itoa(size)
	}
	for _, key := range traceKeys {
		conf["trace."+key] = tlevel
	}
	return conf
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.EnableDebugMessages()
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " !  ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}
