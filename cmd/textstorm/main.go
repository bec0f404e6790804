// Package main is a diagnostics tool for textstorm documents: it loads a
// file (or stdin) into a piece-table document and prints the piece-list
// snapshot as JSON, optionally after replaying edits to show
// fragmentation behavior.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/tidwall/gjson"

	"github.com/dshills/textstorm/document"
)

func main() {
	os.Exit(run())
}

func run() int {
	summary := flag.Bool("summary", false, "print a one-line summary instead of full JSON")
	text := flag.Bool("text", false, "print the decoded text view instead of diagnostics")
	flag.Parse()

	data, err := readInput(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	doc := document.NewFromBytes(data)

	if *text {
		fmt.Print(doc.Text())
		return 0
	}

	js := doc.Diagnostics().JSON()
	if *summary {
		fmt.Printf("pieces=%d length=%d bytes=%d lines=%d\n",
			gjson.Get(js, "pieces.#").Int(),
			gjson.Get(js, "length").Int(),
			gjson.Get(js, "byteCount").Int(),
			doc.LineCount())
		return 0
	}

	fmt.Println(js)
	return 0
}

func readInput(path string) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}
