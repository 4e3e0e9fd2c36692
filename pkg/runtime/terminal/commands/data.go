package commands

import (
	"bytes"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/unsovich/BBDashboard/pkg/services/export"
)

type ExportCmd struct {
	out string
	env *Env
}

func NewExportCmd(env *Env) *cobra.Command {
	ec := &ExportCmd{env: env}
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the observation table as CSV",
		Args:  cobra.NoArgs,
		RunE:  ec.run,
	}

	cmd.Flags().StringVar(&ec.out, "out", "-", "Target file, s3://bucket/key or - for stdout")

	return cmd
}

func (ec *ExportCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	var buf bytes.Buffer
	if err := ec.env.Dashboard.Export(ctx, &buf); err != nil {
		return fmt.Errorf("failed to export observations: %w", err)
	}

	var sink export.Sink
	if ec.out == "-" {
		sink = export.NewWriterSink(ec.env.Output)
	} else {
		var err error
		sink, err = export.Open(ctx, ec.out)
		if err != nil {
			return err
		}
	}

	if err := sink.Write(ctx, buf.Bytes()); err != nil {
		return fmt.Errorf("failed to write export to %s: %w", sink, err)
	}
	zerolog.Ctx(ctx).Info().Str("target", sink.String()).Int("bytes", buf.Len()).Msg("export written")
	return nil
}

type ImportCmd struct {
	file string
	env  *Env
}

func NewImportCmd(env *Env) *cobra.Command {
	ic := &ImportCmd{env: env}
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Replace the observation table with a CSV file",
		Args:  cobra.NoArgs,
		RunE:  ic.run,
	}

	cmd.Flags().StringVar(&ic.file, "file", "", "CSV file to import")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func (ic *ImportCmd) run(cmd *cobra.Command, _ []string) error {
	f, err := os.Open(ic.file)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", ic.file, err)
	}
	defer f.Close()

	rows, err := export.ReadCSV(f)
	if err != nil {
		return err
	}

	res, err := ic.env.Dashboard.ReplaceObservations(cmd.Context(), rows)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(ic.env.Output, "Imported %d observations, dropped %d rows\n", res.Rows, res.Dropped)
	return err
}

func NewGenerateCmd(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "generate",
		Short: "Discard the observation table and generate a new one",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			size, err := env.Dashboard.Reset(cmd.Context())
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(env.Output, "Generated %d observations\n", size)
			return err
		},
	}
}
