package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-buildergen/pkg/generator"
	"github.com/goliatone/go-buildergen/pkg/record"
)

// inspection is the YAML document printed per source.
type inspection struct {
	Source  string          `yaml:"source"`
	Records []inspectedUnit `yaml:"records"`
}

type inspectedUnit struct {
	Record  record.Descriptor        `yaml:"record"`
	Fields  []record.FieldDescriptor `yaml:"fields"`
	Builder record.BuilderDescriptor `yaml:"builder"`
}

// InspectCmd returns the inspect command.
func InspectCmd(sess *session) *cobra.Command {
	var (
		types   []string
		adapter string
	)
	cmd := &cobra.Command{
		Use:   "inspect [files...]",
		Short: "Print classified records and builder shapes as YAML",
		RunE: func(cmd *cobra.Command, args []string) error {
			sources, err := sourceArgs(args)
			if err != nil {
				return err
			}
			gen := generator.New(
				generator.WithConfig(sess.cfg),
				generator.WithLogger(sess.log),
			)

			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			defer enc.Close()

			for _, src := range sources {
				units, err := gen.Inspect(cmd.Context(), generator.Request{
					Source:    src,
					Adapter:   adapter,
					TypeNames: types,
				})
				if err != nil {
					return err
				}
				doc := inspection{Source: src.Location()}
				for _, unit := range units {
					doc.Records = append(doc.Records, inspectedUnit{
						Record:  unit.Record,
						Fields:  unit.Fields,
						Builder: unit.Builder,
					})
				}
				if err := enc.Encode(doc); err != nil {
					return fmt.Errorf("encode inspection: %w", err)
				}
			}
			return nil
		},
	}
	cmd.Flags().StringSliceVarP(&types, "type", "t", nil, "record names to inspect")
	cmd.Flags().StringVar(&adapter, "adapter", "", "source adapter (default: detect)")
	return cmd
}
