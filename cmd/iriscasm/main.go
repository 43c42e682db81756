package main

import (
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"maps"
	"math"
	"os"
	"slices"
	"strings"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Urethramancer/irisc/assembler"
	"github.com/Urethramancer/irisc/preprocessor"
)

var (
	baseFlag   string
	intArgs    []string
	strArgs    []string
	jsonOut    bool
	showLabels bool
	listing    bool
	verbose    bool
)

var log = logrus.New()

var rootCmd = &cobra.Command{
	Use:          "iriscasm [flags] input output",
	Short:        "Assembles irisc source files",
	Args:         cobra.ExactArgs(2),
	SilenceUsage: true,
	RunE:         runAssemble,
}

func init() {
	rootCmd.Flags().StringVarP(&baseFlag, "base", "b", "0", "load address of the first instruction")
	rootCmd.Flags().StringArrayVar(&intArgs, "int-arg", nil, "integer template parameter key=value, where value may be a comma list, lo-hi range or randN")
	rootCmd.Flags().StringArrayVar(&strArgs, "str-arg", nil, "string template parameter key=value")
	rootCmd.Flags().BoolVar(&jsonOut, "json", false, "write one JSON record per parameter combination instead of raw code")
	rootCmd.Flags().BoolVar(&showLabels, "labels", false, "print the resolved label table to stderr")
	rootCmd.Flags().BoolVarP(&listing, "listing", "l", false, "print an address-annotated listing to stderr")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// record is one assembly result in --json mode.
type record struct {
	Parameters preprocessor.Params `json:"parameters"`
	Code       string              `json:"code"`
	Labels     map[string]uint32   `json:"labels"`
}

func runAssemble(cmd *cobra.Command, args []string) error {
	log.SetLevel(logrus.WarnLevel)
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	base, err := assembler.ParseNumber(baseFlag)
	if err != nil {
		return fmt.Errorf("base address: %w", err)
	}
	if base < 0 || base > math.MaxUint32 {
		return fmt.Errorf("base address 0x%x does not fit in 32 bits", base)
	}

	fixed := preprocessor.Params{}
	for _, arg := range strArgs {
		name, value, err := preprocessor.ParseStrParam(arg)
		if err != nil {
			return err
		}
		fixed[name] = value
	}

	var sweeps []preprocessor.Sweep
	for _, arg := range intArgs {
		sw, err := preprocessor.ParseIntParam(arg)
		if err != nil {
			return err
		}
		sweeps = append(sweeps, sw)
	}

	combos := preprocessor.Combinations(sweeps)
	if len(combos) > 1 && !jsonOut {
		return fmt.Errorf("%d parameter combinations produce more than one binary, use --json", len(combos))
	}
	if len(combos) == 0 {
		log.Warn("a parameter sweep is empty, nothing to assemble")
	}

	out := os.Stdout
	if args[1] != "-" {
		f, err := os.Create(args[1])
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}
	enc := json.NewEncoder(out)

	for _, combo := range combos {
		params := preprocessor.Params{}
		maps.Copy(params, fixed)
		maps.Copy(params, combo)

		src, err := preprocessor.ExpandFile(args[0], params)
		if err != nil {
			return err
		}

		asm := assembler.New()
		code, err := asm.Assemble(src, uint32(base))
		if err != nil {
			return err
		}
		log.WithFields(logrus.Fields{
			"bytes":  len(code),
			"labels": len(asm.Labels()),
			"params": params,
		}).Debug("assembled")

		if jsonOut {
			rec := record{
				Parameters: params,
				Code:       hex.EncodeToString(code),
				Labels:     asm.Labels(),
			}
			if err := enc.Encode(rec); err != nil {
				return err
			}
		} else if _, err := out.Write(code); err != nil {
			return err
		}

		if showLabels {
			printLabels(asm.Labels())
		}
		if listing {
			printListing(src, code, uint32(base))
		}
	}
	return nil
}

func printLabels(labels map[string]uint32) {
	name := color.New(color.FgGreen)
	for _, k := range slices.Sorted(maps.Keys(labels)) {
		name.Fprintf(color.Error, "%-16s", k)
		fmt.Fprintf(color.Error, " 0x%08x\n", labels[k])
	}
}

// printListing pairs each source line with the address and word it produced.
// Label lines bind an address without emitting code, so they advance nothing.
func printListing(src string, code []byte, base uint32) {
	addr := color.New(color.FgCyan)
	word := color.New(color.FgYellow)
	pc := base
	for _, ln := range assembler.Lines(src) {
		if strings.Fields(ln.Text)[0] == "lbl" {
			fmt.Fprintf(color.Error, "%s\n", ln.Text)
			continue
		}
		addr.Fprintf(color.Error, "%08x  ", pc)
		word.Fprintf(color.Error, "%08x  ", binary.BigEndian.Uint32(code[pc-base:]))
		fmt.Fprintln(color.Error, ln.Text)
		pc += 4
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
