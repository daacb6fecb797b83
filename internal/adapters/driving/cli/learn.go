package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/specforge/internal/core/domain"
)

var (
	learnCategory string
	learnTags     string
)

var learnCmd = &cobra.Command{
	Use:   "learn [file]",
	Short: "Index a reference document",
	Long: `Extract, chunk and index a reference document so it can inform
generated specifications. Supported formats: .txt, .md, .pdf, .docx, .xlsx.`,
	Args: cobra.ExactArgs(1),
	RunE: runLearn,
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all learned data",
	RunE:  runClear,
}

func init() {
	learnCmd.Flags().StringVarP(&learnCategory, "category", "c", "", "category stored with the chunks")
	learnCmd.Flags().StringVarP(&learnTags, "tags", "t", "", "comma-separated tags stored with the chunks")

	rootCmd.AddCommand(learnCmd)
	rootCmd.AddCommand(clearCmd)
}

func runLearn(cmd *cobra.Command, args []string) error {
	if learnerService == nil {
		return errors.New("learner service not configured: set an embedding provider")
	}

	path := args[0]
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	count, err := learnerService.LearnFile(context.Background(), filepath.Base(path), content, learnCategory, learnTags)
	if err != nil {
		if errors.Is(err, domain.ErrUnsupportedFormat) {
			return fmt.Errorf("unsupported file format: %s", filepath.Ext(path))
		}
		return fmt.Errorf("learning failed: %w", err)
	}

	cmd.Printf("Learned %d chunks from %s\n", count, filepath.Base(path))
	return nil
}

func runClear(cmd *cobra.Command, _ []string) error {
	if learnerService == nil {
		return errors.New("learner service not configured: set an embedding provider")
	}

	if err := learnerService.Clear(context.Background()); err != nil {
		return fmt.Errorf("clearing learned data: %w", err)
	}

	cmd.Println("All learned data deleted.")
	return nil
}
