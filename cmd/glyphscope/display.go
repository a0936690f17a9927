package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/npillmayer/glyphscope/core/glyphs"
	"github.com/npillmayer/glyphscope/core/locate/resources"
	"github.com/npillmayer/glyphscope/engine/fontcss"
	"github.com/npillmayer/glyphscope/engine/jsonflat"
	"github.com/npillmayer/glyphscope/engine/preview"
	"github.com/npillmayer/glyphscope/engine/session"
	"github.com/pterm/pterm"
	"golang.org/x/term"
)

// maxRows limits the rows of tables.
const maxRows = 200

func terminalWidth() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return 80
}

func renderTable(data pterm.TableData) {
	if err := pterm.DefaultTable.WithHasHeader().WithData(data).Render(); err != nil {
		tracer().Errorf("cannot render table: %v", err)
	}
}

func showState(st session.State, scanning bool, found int) {
	loaded := "no"
	if st.Loaded {
		loaded = "yes"
	}
	status := fmt.Sprintf("%d glyphs", found)
	if scanning {
		status += " (scanning)"
	}
	data := pterm.TableData{
		{"Property", "Value"},
		{"Family", st.Family},
		{"Weight", st.Weight},
		{"Style", st.Style},
		{"Loaded", loaded},
		{"Source", string(st.Source)},
		{"Generation", fmt.Sprintf("%d", st.Generation)},
		{"Glyphs", status},
	}
	if st.URL != "" {
		data = append(data, []string{"Google Fonts URL", st.URL})
	}
	if st.TypekitURL != "" {
		data = append(data, []string{"Typekit URL", st.TypekitURL})
	}
	if st.Error != "" {
		data = append(data, []string{"Error", st.Error})
	}
	renderTable(data)
}

func showFontInfos(infos []fontcss.FontInfo, selected string) {
	data := pterm.TableData{{"", "Family", "Weights", "Styles"}}
	for _, fi := range infos {
		mark := ""
		if fi.Family == selected {
			mark = "*"
		}
		data = append(data, []string{mark, fi.Family, strings.Join(fi.Weights, " "),
			strings.Join(fi.Styles, " ")})
	}
	renderTable(data)
}

// showGlyphs prints glyphs as a grid fitting the terminal width.
func showGlyphs(records []glyphs.Record, width int) {
	if len(records) == 0 {
		pterm.Info.Println("No glyphs to show")
		return
	}
	const cell = 3
	perRow := width / cell
	if perRow < 1 {
		perRow = 1
	}
	var b strings.Builder
	for i, rec := range records {
		b.WriteString(rec.Character)
		b.WriteString("  ")
		if (i+1)%perRow == 0 {
			b.WriteByte('\n')
		}
	}
	pterm.Println(b.String())
	pterm.Printfln("%d glyphs", len(records))
}

func showGlyphTable(records []glyphs.Record) {
	data := pterm.TableData{{"Char", "Code point", "Name", "Category"}}
	for i, rec := range records {
		if i == maxRows {
			data = append(data, []string{"…", "", fmt.Sprintf("%d more", len(records)-maxRows), ""})
			break
		}
		data = append(data, []string{rec.Character, rec.Unicode, rec.Name, rec.Category.Label()})
	}
	renderTable(data)
}

func showCategories(opts []glyphs.CategoryOption, selected glyphs.Category) {
	if len(opts) == 0 {
		pterm.Info.Println("No glyphs found yet")
		return
	}
	data := pterm.TableData{{"", "Category", "Label"}}
	for _, opt := range opts {
		mark := ""
		if opt.Value == selected {
			mark = "*"
		}
		data = append(data, []string{mark, string(opt.Value), opt.Label})
	}
	renderTable(data)
}

func showPreview(p *preview.Preview) {
	data := pterm.TableData{{"Size", "Width", "Height"}}
	for _, r := range p.Renderings {
		data = append(data, []string{fmt.Sprintf("%gpx", r.Size), fmt.Sprintf("%.0f", r.Box.Width),
			fmt.Sprintf("%.0f", r.Box.Height)})
	}
	renderTable(data)
	var b strings.Builder
	for _, c := range p.Clusters {
		switch {
		case c.Blank:
			b.WriteString(c.Text)
		case c.Covered:
			b.WriteString(pterm.FgGreen.Sprint(c.Text))
		default:
			b.WriteString(pterm.FgRed.Sprint(c.Text))
		}
	}
	pterm.Println(b.String())
	covered, total := p.Coverage()
	pterm.Printfln("%s supplies %d of %d characters", p.Family, covered, total)
}

func showEntries(entries []jsonflat.Entry, missing func(string) []string) {
	header := []string{"Key", "Value"}
	if missing != nil {
		header = append(header, "Missing glyphs")
	}
	data := pterm.TableData{header}
	for i, e := range entries {
		if i == maxRows {
			more := make([]string, len(header))
			more[0], more[1] = "…", fmt.Sprintf("%d more", len(entries)-maxRows)
			data = append(data, more)
			break
		}
		row := []string{e.Key, e.Value}
		if missing != nil {
			row = append(row, strings.Join(missing(e.Value), " "))
		}
		data = append(data, row)
	}
	renderTable(data)
}

func showGoogleFonts(infos []resources.GoogleFontInfo) {
	data := pterm.TableData{{"Family", "Variants", "Subsets"}}
	for i, fi := range infos {
		if i == maxRows {
			break
		}
		data = append(data, []string{fi.Family, strings.Join(fi.Variants, " "), strings.Join(fi.Subsets, " ")})
	}
	renderTable(data)
}

func showFamilies(families []string) {
	data := pterm.TableData{{"Family"}}
	for _, f := range families {
		data = append(data, []string{f})
	}
	renderTable(data)
}
