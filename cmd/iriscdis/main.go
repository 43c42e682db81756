package main

import (
	"fmt"
	"math"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Urethramancer/irisc/assembler"
	"github.com/Urethramancer/irisc/disassembler"
)

var (
	baseFlag string
	verbose  bool
)

var log = logrus.New()

var rootCmd = &cobra.Command{
	Use:          "iriscdis [flags] input [output]",
	Short:        "Disassembles irisc machine code",
	Args:         cobra.RangeArgs(1, 2),
	SilenceUsage: true,
	RunE:         runDisassemble,
}

func init() {
	rootCmd.Flags().StringVarP(&baseFlag, "base", "b", "0", "load address of the first word")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

func runDisassemble(cmd *cobra.Command, args []string) error {
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

	code, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	log.WithFields(logrus.Fields{
		"bytes": len(code),
		"base":  fmt.Sprintf("0x%x", base),
	}).Debug("disassembling")

	src, err := disassembler.Disassemble(code, uint32(base))
	if err != nil {
		return err
	}

	if len(args) == 2 && args[1] != "-" {
		return os.WriteFile(args[1], []byte(src), 0o644)
	}
	_, err = os.Stdout.WriteString(src)
	return err
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
