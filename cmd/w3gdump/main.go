// Command w3gdump decodes a .w3g replay and prints it as JSON, for
// inspecting the decoder's output against a known-good sample.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/islanddefense/w3g-platform/pkg/w3g"
)

func main() {
	var indent bool

	root := &cobra.Command{
		Use:   "w3gdump <replay.w3g>",
		Short: "Decode a Warcraft III replay and print it as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}

			replay, err := w3g.Decode(data)
			if err != nil {
				return fmt.Errorf("decode %s: %w", args[0], err)
			}

			enc := json.NewEncoder(os.Stdout)
			if indent {
				enc.SetIndent("", "  ")
			}
			return enc.Encode(replay)
		},
	}
	root.Flags().BoolVar(&indent, "pretty", true, "pretty-print the JSON output")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
