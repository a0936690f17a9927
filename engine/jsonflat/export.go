package jsonflat

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/npillmayer/glyphscope/core"
)

var csvQuote = strings.NewReplacer(`"`, `""`)

// WriteCSV writes entries as CSV with a `Key,Value` header. Every field is
// enclosed in double quotes; lines are separated by a single newline.
func WriteCSV(w io.Writer, entries []Entry) error {
	bw := bufio.NewWriter(w)
	bw.WriteString("Key,Value")
	for _, e := range entries {
		bw.WriteString("\n\"")
		csvQuote.WriteString(bw, e.Key)
		bw.WriteString("\",\"")
		csvQuote.WriteString(bw, e.Value)
		bw.WriteString("\"")
	}
	return bw.Flush()
}

// ExportName is the name of the CSV file a document is exported to.
func ExportName(name string) string {
	base := filepath.Base(name)
	if ext := filepath.Ext(base); strings.EqualFold(ext, ".json") {
		base = base[:len(base)-len(ext)]
	}
	return base + "_flattened.csv"
}

// Export writes the entries of d matching term (see Filter) as CSV into
// directory dir and returns the path of the CSV file.
func (d *Document) Export(dir, term string) (string, error) {
	path := filepath.Join(dir, ExportName(d.Name))
	f, err := os.Create(path)
	if err != nil {
		return "", core.WrapError(err, core.EINTERNAL, "Cannot create %s", path)
	}
	entries := Filter(d.Entries, term)
	if err = WriteCSV(f, entries); err != nil {
		f.Close()
		return "", core.WrapError(err, core.EINTERNAL, "Cannot write %s", path)
	}
	if err = f.Close(); err != nil {
		return "", core.WrapError(err, core.EINTERNAL, "Cannot write %s", path)
	}
	tracer().Infof("exported %d entries to %s", len(entries), path)
	return path, nil
}
