package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/JonMunkholm/tabconv/internal/core"
	"github.com/JonMunkholm/tabconv/internal/tabular"
	"github.com/JonMunkholm/tabconv/internal/textio"
	"github.com/JonMunkholm/tabconv/internal/value"
)

func (a *App) newEncodeCmd() *cobra.Command {
	var input string

	cmd := &cobra.Command{
		Use:   "encode [FILE]",
		Short: "Encode a JSON or YAML array of records as delimited text",
		Long: `Encode reads an array of objects from FILE (or stdin) and prints delimited
text. The header is the first object's keys in order; later objects are
projected onto it and non-objects are skipped unless --strict is set.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, name, err := a.readInput(args)
			if err != nil {
				return err
			}

			data = textio.TrimBOM(data)

			format := input
			if format == "" {
				format = formatFromName(name)
			}

			var v value.Value
			switch format {
			case "json":
				v, err = value.ParseJSON(data)
			case "yaml":
				v, err = value.ParseYAML(data)
			default:
				return fmt.Errorf("unknown input format %q (want json or yaml)", format)
			}
			if err != nil {
				return fmt.Errorf("%w: %v", core.ErrInvalidInput, err)
			}

			rows, ok := v.(value.List)
			if !ok {
				return &tabular.Error{
					Kind: tabular.KindArityOrType,
					Msg:  fmt.Sprintf("encode expects a list of records, got %s", value.KindOf(v)),
				}
			}

			svc, err := a.service()
			if err != nil {
				return err
			}

			res, err := svc.Encode(cmdContext(cmd), rows, core.Source{Name: name})
			if err != nil {
				return err
			}

			_, err = fmt.Fprint(a.OutWriter, res.Text)
			return err
		},
	}

	a.addConversionFlags(cmd)
	cmd.Flags().StringVarP(&input, "input", "i", "", "Input format: json or yaml (default from file extension, else json)")
	return cmd
}

func formatFromName(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return "yaml"
	default:
		return "json"
	}
}
