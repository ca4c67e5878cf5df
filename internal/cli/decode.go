package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"

	"github.com/JonMunkholm/tabconv/internal/core"
	"github.com/JonMunkholm/tabconv/internal/value"
)

func (a *App) newDecodeCmd() *cobra.Command {
	var (
		pretty bool
		format string
	)

	cmd := &cobra.Command{
		Use:   "decode [FILE]",
		Short: "Decode delimited text into a JSON array of records",
		Long: `Decode reads delimited text from FILE (or stdin) and prints one record per
data row. The first row is the header. Every value stays text; short rows
omit their missing keys and extra fields are dropped.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, name, err := a.readInput(args)
			if err != nil {
				return err
			}

			svc, err := a.service()
			if err != nil {
				return err
			}

			res, err := svc.Decode(cmdContext(cmd), string(data), core.Source{Name: name})
			if err != nil {
				return err
			}

			return a.printRecords(value.TableFromRecords(res.Records), format, pretty)
		},
	}

	a.addConversionFlags(cmd)
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Indent and colorize JSON output")
	cmd.Flags().StringVarP(&format, "output", "o", "json", "Output format: json or yaml")
	return cmd
}

func (a *App) printRecords(rows value.List, format string, pretty bool) error {
	switch format {
	case "json":
		out, err := json.Marshal(rows)
		if err != nil {
			return err
		}
		if pretty {
			colored, err := a.Pretty.Format(out)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(a.ColorableOut, string(colored))
			return err
		}
		_, err = fmt.Fprintln(a.OutWriter, string(out))
		return err

	case "yaml":
		out, err := yaml.Marshal(rows)
		if err != nil {
			return err
		}
		_, err = a.OutWriter.Write(out)
		return err

	default:
		return fmt.Errorf("unknown output format %q (want json or yaml)", format)
	}
}

func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
