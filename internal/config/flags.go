package config

import (
	"flag"
	"strings"
)

// parses CLI flags for the pdftext utility; positional args are extra directories
func ParsePDFTextFlags(args []string) (PDFTextFlags, error) {
	fs := flag.NewFlagSet("pdftext", flag.ContinueOnError)
	dirs := fs.String("dirs", "", "comma separated list of directories containing PDF files")
	separator := fs.Bool("separator", true, "print START/END markers around each document")

	if err := fs.Parse(args); err != nil {
		return PDFTextFlags{}, err
	}

	out := PDFTextFlags{Dirs: splitList(*dirs), Separator: *separator}

	for _, arg := range fs.Args() {
		if arg = strings.TrimSpace(arg); arg != "" {
			out.Dirs = append(out.Dirs, arg)
		}
	}

	return out, nil
}
