// squash encodes PNG images to the .sqh container format and decodes them
// back.
//
// Usage:
//
//	squash encode [-q=<0..1>] [-f] <input.png> <output.sqh>
//	squash decode [-f] <input.sqh> <output.png>
//
// Options:
//
//	-q=<value>  Target quality score in [0,1] (encode only, default 0.5).
//	-f          Overwrite output if it already exists.
//	-h, --help  Show this help message.
//
// Exit codes:
//
//	0: success
//	1: usage error
//	2: codec or I/O error
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/efondere/squash"
	"github.com/efondere/squash/raster"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "encode":
		os.Exit(runEncode(os.Args[2:]))
	case "decode":
		os.Exit(runDecode(os.Args[2:]))
	case "-h", "--help":
		printUsage()
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "squash: unknown command %q\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func runEncode(args []string) int {
	quality := squash.DefaultQuality
	force := false
	files := []string{}

	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "-f":
			force = true
		case strings.HasPrefix(arg, "-q="):
			v, err := strconv.ParseFloat(strings.TrimPrefix(arg, "-q="), 64)
			if err != nil {
				fmt.Fprintf(os.Stderr, "squash: invalid -q value: %v\n", err)
				return 1
			}
			quality = v
		case arg == "-h", arg == "--help":
			printUsage()
			return 0
		case strings.HasPrefix(arg, "-"):
			fmt.Fprintf(os.Stderr, "squash: unknown option: %s\n", arg)
			return 1
		default:
			files = append(files, arg)
		}
	}

	if len(files) != 2 {
		fmt.Fprintln(os.Stderr, "squash: encode requires <input.png> <output.sqh>")
		return 1
	}
	inPath, outPath := files[0], files[1]

	if err := raster.DispatchExtension(inPath); err != nil {
		fmt.Fprintf(os.Stderr, "squash: %s: %v\n", inPath, err)
		return 1
	}
	if !strings.HasSuffix(strings.ToLower(outPath), ".sqh") {
		fmt.Fprintf(os.Stderr, "squash: %s: %v\n", outPath, squash.ErrUnsupportedExtension)
		return 1
	}

	if !force {
		if _, err := os.Stat(outPath); err == nil {
			fmt.Fprintf(os.Stderr, "squash: %s: %v\n", outPath, squash.ErrOverwriteRefused)
			return 2
		}
	}

	cfg := squash.NewEncodeConfig()
	cfg.Quality = quality

	stats, err := squash.EncodeFile(raster.PNGFile{Path: inPath}, outPath, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "squash: encode %s: %v\n", inPath, err)
		return 2
	}

	fmt.Printf("%s -> %s: mean score %.4f, %d DCT blocks, %d Haar blocks\n",
		inPath, outPath, stats.MeanScore, stats.DCTBlocks, stats.HaarBlocks)
	return 0
}

func runDecode(args []string) int {
	force := false
	files := []string{}

	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "-f":
			force = true
		case arg == "-h", arg == "--help":
			printUsage()
			return 0
		case strings.HasPrefix(arg, "-"):
			fmt.Fprintf(os.Stderr, "squash: unknown option: %s\n", arg)
			return 1
		default:
			files = append(files, arg)
		}
	}

	if len(files) != 2 {
		fmt.Fprintln(os.Stderr, "squash: decode requires <input.sqh> <output.png>")
		return 1
	}
	inPath, outPath := files[0], files[1]

	if err := raster.DispatchExtension(outPath); err != nil {
		fmt.Fprintf(os.Stderr, "squash: %s: %v\n", outPath, err)
		return 1
	}

	if err := squash.DecodeFile(inPath, raster.PNGFile{Path: outPath}, force); err != nil {
		fmt.Fprintf(os.Stderr, "squash: decode %s: %v\n", inPath, err)
		return 2
	}

	fmt.Printf("%s -> %s\n", inPath, outPath)
	return 0
}

func printUsage() {
	fmt.Println(`Usage:
  squash encode [-q=<0..1>] [-f] <input.png> <output.sqh>
  squash decode [-f] <input.sqh> <output.png>

Options:
  -q=<value>   Target quality score in [0,1] (encode only, default 0.5)
  -f           Overwrite output if it already exists
  -h, --help   Show this help message`)
}
