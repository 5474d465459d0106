// Command iatischema inspects a flattened IATI schema from the command line.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	iati "github.com/IATI/iati.core"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var schemaPath string
	var rootName string

	cmd := &cobra.Command{
		Use:          "iatischema",
		Short:        "Inspect a flattened IATI schema",
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVar(&schemaPath, "schema", "", "path to the schema file")
	cmd.PersistentFlags().StringVar(&rootName, "root", iati.RootElementNameActivity,
		"expected document root element name")

	load := func() (*iati.Schema, error) {
		if schemaPath == "" {
			return nil, fmt.Errorf("--schema is required")
		}
		return iati.LoadFile(schemaPath, rootName)
	}

	cmd.AddCommand(newDumpCmd(load))
	cmd.AddCommand(newElementCmd(load))
	return cmd
}

// newDumpCmd prints the flattened schema document.
func newDumpCmd(load func() (*iati.Schema, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "dump",
		Short: "Print the flattened schema XML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			schema, err := load()
			if err != nil {
				return err
			}
			out, err := schema.WriteToString()
			if err != nil {
				return fmt.Errorf("serialise schema: %w", err)
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}
}

// newElementCmd lists the children and attributes of a named element.
func newElementCmd(load func() (*iati.Schema, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "element <name>",
		Short: "Show the children and attributes of a named element",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			schema, err := load()
			if err != nil {
				return err
			}

			el := schema.FindElementByName(args[0])
			if el == nil {
				return fmt.Errorf("element %q not found", args[0])
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "element: %s\n", args[0])

			fmt.Fprintln(out, "children:")
			for _, child := range schema.ChildElements(el) {
				if name, ok := schema.ElementName(child); ok {
					fmt.Fprintf(out, "  %s\n", name)
				}
			}

			fmt.Fprintln(out, "attributes:")
			for _, attr := range schema.AttributeElements(el) {
				if name, ok := schema.ElementName(attr); ok {
					fmt.Fprintf(out, "  %s\n", name)
				}
			}
			return nil
		},
	}
}
