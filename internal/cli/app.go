// Package cli implements the tabconv command-line tool.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/hokaccha/go-prettyjson"
	"github.com/mattn/go-colorable"
	"github.com/spf13/cobra"

	"github.com/JonMunkholm/tabconv/internal/core"
	"github.com/JonMunkholm/tabconv/internal/logging"
	"github.com/JonMunkholm/tabconv/internal/tabular"
	"github.com/JonMunkholm/tabconv/internal/textio"
)

// App holds the I/O streams and flag state for one invocation.
type App struct {
	// I/O
	OutWriter    io.Writer
	ErrWriter    io.Writer
	InReader     io.Reader
	ColorableOut io.Writer

	// Persistent flags
	LogLevel     string
	LogFormat    string
	MaxInputSize int64

	// Conversion flags shared by decode and encode
	Comma  string
	Strict bool

	Pretty *prettyjson.Formatter
}

// New creates an App writing to the process streams.
func New() *App {
	return &App{
		OutWriter:    os.Stdout,
		ErrWriter:    os.Stderr,
		InReader:     os.Stdin,
		ColorableOut: colorable.NewColorableStdout(),
		Pretty:       prettyjson.NewFormatter(),
	}
}

// NewRootCmd builds the command tree bound to a.
func NewRootCmd(a *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "tabconv",
		Short:         "Convert between delimited text and JSON records",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if a.OutWriter != os.Stdout {
				a.ColorableOut = a.OutWriter
			}
			logging.Setup(a.ErrWriter, a.LogLevel, a.LogFormat)
		},
	}
	root.SetOut(a.OutWriter)
	root.SetErr(a.ErrWriter)
	root.SetIn(a.InReader)

	root.PersistentFlags().StringVar(&a.LogLevel, "log-level", "warn", "Log level: debug, info, warn, error")
	root.PersistentFlags().StringVar(&a.LogFormat, "log-format", "text", "Log format: text or json")
	root.PersistentFlags().Int64Var(&a.MaxInputSize, "max-size", core.DefaultMaxInputSize, "Maximum input size in bytes")

	root.AddCommand(a.newDecodeCmd(), a.newEncodeCmd(), a.newFunctionsCmd())
	return root
}

// addConversionFlags registers --comma and --strict on cmd.
func (a *App) addConversionFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&a.Comma, "comma", "d", ",", `Field delimiter, a single character ("tab" for tab)`)
	cmd.Flags().BoolVar(&a.Strict, "strict", false, "Reject ragged rows and non-record elements")
}

// service builds a conversion service from the flags.
func (a *App) service() (*core.Service, error) {
	comma, err := tabular.ParseComma(a.Comma)
	if err != nil {
		return nil, err
	}
	return core.NewService(nil, core.Options{
		Comma:         comma,
		Strict:        a.Strict,
		MaxInputSize:  a.MaxInputSize,
		MaxConcurrent: 1,
	}), nil
}

// readInput reads the named file, or stdin when args is empty or "-".
func (a *App) readInput(args []string) (data []byte, name string, err error) {
	r, name := a.InReader, "stdin"
	if len(args) > 0 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return nil, "", err
		}
		defer f.Close()
		r, name = f, args[0]
	}

	counter := textio.NewCountingReader(r)
	data, err = textio.ReadLimited(counter, a.MaxInputSize)
	if err != nil {
		return nil, "", fmt.Errorf("read %s: %w", name, err)
	}
	slog.Debug("input read", "source", name, "bytes", counter.BytesRead)
	return data, name, nil
}
