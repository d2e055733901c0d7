// Command nrbfdump decodes a .NET Remoting Binary Format stream — typically
// recovered from an ASP.NET ViewState hidden field — into an object graph
// and prints it as JSON or as an indented text tree.
package main

import (
	"encoding/base64"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/zeroed-tech/viewstate-decoder/compress"
	"github.com/zeroed-tech/viewstate-decoder/decode"
	"github.com/zeroed-tech/viewstate-decoder/render"
)

const (
	exitOK = 0
	// exitUsage and exitParse share exit code 1: spec.md §6 mandates code 1
	// for "parse error" and doesn't carve out a separate code for a bad
	// invocation, so an unusable command line gets the same code as a
	// well-formed one whose stream fails to decode.
	exitUsage = 1
	exitParse = 1
	exitIO    = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) < 1 || args[0] != "decode" {
		fmt.Fprintln(stderr, "usage: nrbfdump decode [flags] <path>")

		return exitUsage
	}

	fs := flag.NewFlagSet("decode", flag.ContinueOnError)
	fs.SetOutput(stderr)
	base64Input := fs.Bool("base64", false, "treat the input file as base64-encoded")
	decompressFlag := fs.String("decompress", "none", "decompression envelope: none|zstd|s2|lz4|gzip")
	formatFlag := fs.String("format", "json", "output format: json|text")
	nestedFlag := fs.String("nested", "inline", "nested-blob handling: inline|separate")

	if err := fs.Parse(args[1:]); err != nil {
		return exitUsage
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(stderr, "usage: nrbfdump decode [flags] <path>")

		return exitUsage
	}
	path := fs.Arg(0)

	raw, err := readInput(path)
	if err != nil {
		log.New(stderr, "", 0).Printf("nrbfdump: %v", err)

		return exitIO
	}

	raw, err = unwrap(raw, *base64Input, *decompressFlag)
	if err != nil {
		log.New(stderr, "", 0).Printf("nrbfdump: %v", err)

		return exitIO
	}

	mode, err := parseNestedMode(*nestedFlag)
	if err != nil {
		fmt.Fprintln(stderr, err)

		return exitUsage
	}

	result, err := decode.New(raw, decode.NewNestedBlobDetector()).WithNestedMode(mode).Decode()
	if err != nil {
		log.New(stderr, "", 0).Printf("nrbfdump: %v", err)

		return exitParse
	}

	if err := printResult(stdout, result, *formatFlag); err != nil {
		log.New(stderr, "", 0).Printf("nrbfdump: %v", err)

		return exitIO
	}

	return exitOK
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}

	return os.ReadFile(path)
}

func unwrap(raw []byte, isBase64 bool, algorithm string) ([]byte, error) {
	if isBase64 {
		decoded := make([]byte, base64.StdEncoding.DecodedLen(len(raw)))
		n, err := base64.StdEncoding.Decode(decoded, raw)
		if err != nil {
			return nil, fmt.Errorf("base64 decode: %w", err)
		}
		raw = decoded[:n]
	}

	codec, err := compress.GetCodec(compress.Algorithm(algorithm))
	if err != nil {
		return nil, err
	}

	out, err := codec.Decompress(raw)
	if err != nil {
		return nil, fmt.Errorf("decompress (%s): %w", algorithm, err)
	}

	return out, nil
}

func parseNestedMode(s string) (decode.NestedMode, error) {
	switch s {
	case "inline":
		return decode.NestedInline, nil
	case "separate":
		return decode.NestedSeparate, nil
	default:
		return 0, fmt.Errorf("nrbfdump: unknown --nested value %q (want inline|separate)", s)
	}
}

func printResult(w io.Writer, result *decode.Result, format string) error {
	switch format {
	case "json":
		return printJSON(w, result)
	case "text":
		return printText(w, result)
	default:
		return fmt.Errorf("unknown --format value %q (want json|text)", format)
	}
}

func printJSON(w io.Writer, result *decode.Result) error {
	out, err := render.JSON(result.Graph.Root())
	if err != nil {
		return err
	}
	if _, err := w.Write(out); err != nil {
		return err
	}

	for _, nested := range result.Nested {
		fmt.Fprintf(w, "--- nested blob, object id %d ---\n", nested.ObjectId)
		out, err := render.JSON(nested.Graph.Root())
		if err != nil {
			return err
		}
		if _, err := w.Write(out); err != nil {
			return err
		}
	}

	return nil
}

func printText(w io.Writer, result *decode.Result) error {
	out, err := render.Text(result.Graph.Root())
	if err != nil {
		return err
	}
	if _, err := w.Write(out); err != nil {
		return err
	}

	for _, nested := range result.Nested {
		fmt.Fprintf(w, "--- nested blob, object id %d ---\n", nested.ObjectId)
		out, err := render.Text(nested.Graph.Root())
		if err != nil {
			return err
		}
		if _, err := w.Write(out); err != nil {
			return err
		}
	}

	return nil
}
