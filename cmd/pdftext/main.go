package main

import (
	"fmt"
	"os"

	"codeberg.org/scholargo/server/internal/config"
	"codeberg.org/scholargo/server/internal/logger"
)

func main() {
	flags, err := config.ParsePDFTextFlags(os.Args[1:])
	if err != nil {
		os.Exit(2)
	}

	if len(flags.Dirs) == 0 {
		fmt.Fprintln(os.Stderr, "Usage: pdftext [--separator=false] [--dirs a,b] <dir>...")
		os.Exit(1)
	}

	files := collectPDFs(flags.Dirs)
	logger.Debug("collected reference essays", "files", len(files))

	failed := 0

	for _, path := range files {
		if err := printDocument(os.Stdout, path, flags.Separator); err != nil {
			fmt.Fprintf(os.Stderr, "Error reading %s: %v\n", path, err)
			failed++
		}
	}

	if failed > 0 {
		logger.Warn("some documents could not be read", "failed", failed, "total", len(files))
	}
}
