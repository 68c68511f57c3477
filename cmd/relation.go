package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	"relation-manager/core/reconcile"
	"relation-manager/core/storage"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags for the apply command
	applyFile   string
	applyObject string
	applyDryRun bool

	// Flags for the export command
	exportObject string
)

// showCmd prints the current content of a relation.
var showCmd = &cobra.Command{
	Use:   "show <homepage-id> <relation>",
	Short: "Print the current relation content as JSON",
	Args:  cobra.ExactArgs(2),
	RunE:  runShow,
}

// applyCmd reconciles a relation with a JSON payload.
var applyCmd = &cobra.Command{
	Use:   "apply <homepage-id> <relation>",
	Short: "Apply a JSON payload to a homepage relation",
	Long: `Apply a JSON payload to a homepage relation.

The payload is an array of {"id": "<type>-<id>", "position": n} objects.
Unknown ids are skipped. Collections are only rewritten when the resulting
order differs from the stored one; an empty array clears a singular relation.

Examples:
  # Reorder homepage 1 from a file
  apply 1 content --file content.json

  # Read the payload from stdin
  echo '[{"id":"alert-3"}]' | apply 1 alert --file -

  # Preview a payload stored in the bucket
  apply 1 content --object homepage/1/content.json --dry-run`,
	Args: cobra.ExactArgs(2),
	RunE: runApply,
}

// exportCmd writes the current relation content to object storage.
var exportCmd = &cobra.Command{
	Use:   "export <homepage-id> <relation>",
	Short: "Write the current relation content to object storage",
	Args:  cobra.ExactArgs(2),
	RunE:  runExport,
}

func init() {
	applyCmd.Flags().StringVar(&applyFile, "file", "-", "Payload file, or - for stdin")
	applyCmd.Flags().StringVar(&applyObject, "object", "", "Read the payload from this object in the storage bucket")
	applyCmd.Flags().BoolVar(&applyDryRun, "dry-run", false, "Report the action without writing")
	applyCmd.MarkFlagsMutuallyExclusive("file", "object")

	exportCmd.Flags().StringVar(&exportObject, "object", "", "Object name to write")
	_ = exportCmd.MarkFlagRequired("object")

	RootCmd.AddCommand(showCmd)
	RootCmd.AddCommand(applyCmd)
	RootCmd.AddCommand(exportCmd)
}

func parseHomepageID(arg string) (uint, error) {
	id, err := strconv.ParseUint(arg, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid homepage id %q", arg)
	}
	return uint(id), nil
}

func runShow(cmd *cobra.Command, args []string) error {
	id, err := parseHomepageID(args[0])
	if err != nil {
		return err
	}

	a, err := bootstrap()
	if err != nil {
		return err
	}
	defer a.close()

	text, err := a.service.Show(context.Background(), id, args[1])
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), text)
	return nil
}

func runApply(cmd *cobra.Command, args []string) error {
	id, err := parseHomepageID(args[0])
	if err != nil {
		return err
	}

	a, err := bootstrap()
	if err != nil {
		return err
	}
	defer a.close()

	ctx := context.Background()
	var result *reconcile.Result

	if applyObject != "" {
		client, err := storage.NewClient(a.cfg.Storage)
		if err != nil {
			return fmt.Errorf("failed to connect to storage: %w", err)
		}
		result, err = a.service.ApplyObject(ctx, client, a.cfg.Storage.Bucket, applyObject, id, args[1], applyDryRun)
		if err != nil {
			return err
		}
	} else {
		text, err := readPayload(cmd, applyFile)
		if err != nil {
			return err
		}
		result, err = a.service.Apply(ctx, id, args[1], text, applyDryRun)
		if err != nil {
			return err
		}
	}

	printApplyReport(a.logger, result, applyDryRun || a.cfg.Relations.DryRun)

	// Empty payloads return no value, so print what is stored
	text, err := a.service.Show(ctx, id, args[1])
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), text)
	return nil
}

func runExport(cmd *cobra.Command, args []string) error {
	id, err := parseHomepageID(args[0])
	if err != nil {
		return err
	}

	a, err := bootstrap()
	if err != nil {
		return err
	}
	defer a.close()

	client, err := storage.NewClient(a.cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to connect to storage: %w", err)
	}

	if err := a.service.Export(context.Background(), client, a.cfg.Storage.Bucket, exportObject, id, args[1]); err != nil {
		return err
	}
	a.logger.Info("Relation exported",
		zap.String("bucket", a.cfg.Storage.Bucket),
		zap.String("object", exportObject),
	)
	return nil
}

// readPayload reads the payload from path, or from the command's stdin for "-".
func readPayload(cmd *cobra.Command, path string) (string, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read payload: %w", err)
	}
	return string(data), nil
}

// printApplyReport logs the outcome of an apply.
func printApplyReport(l *zap.Logger, result *reconcile.Result, dryRun bool) {
	l.Info("Apply report",
		zap.String("relation", result.Relation),
		zap.String("cardinality", result.Cardinality.String()),
		zap.String("action", string(result.Action)),
		zap.Int("count", len(result.Value)),
		zap.Strings("skipped", result.Skipped),
	)
	if dryRun && result.Action != reconcile.ActionNone {
		l.Info("Dry-run mode: No changes were made.")
	}
}
