package report

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"yakugen/domain/puzzle"
)

// Writer renders batch results to the output directory: the raw payload,
// the selected puzzles, and a human-readable report in markdown and HTML.
type Writer struct {
	dir string
}

// NewWriter creates a report writer rooted at dir.
func NewWriter(dir string) *Writer {
	return &Writer{dir: dir}
}

// WriteBatch writes every artifact for the batch and returns the paths.
func (w *Writer) WriteBatch(result *puzzle.BatchResult) ([]string, error) {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output dir: %w", err)
	}

	id := result.ID.String()
	var paths []string

	batchPath := filepath.Join(w.dir, fmt.Sprintf("batch_%s.json", id))
	if err := writeJSON(batchPath, result); err != nil {
		return nil, err
	}
	paths = append(paths, batchPath)

	puzzlesPath := filepath.Join(w.dir, fmt.Sprintf("puzzles_%s.json", id))
	if err := writeJSON(puzzlesPath, selectedItems(result)); err != nil {
		return nil, err
	}
	paths = append(paths, puzzlesPath)

	md := renderMarkdown(result)
	mdPath := filepath.Join(w.dir, fmt.Sprintf("report_%s.md", id))
	if err := os.WriteFile(mdPath, []byte(md), 0o644); err != nil {
		return nil, fmt.Errorf("failed to write markdown report: %w", err)
	}
	paths = append(paths, mdPath)

	htmlPath := filepath.Join(w.dir, fmt.Sprintf("report_%s.html", id))
	if err := os.WriteFile(htmlPath, RenderHTML(md), 0o644); err != nil {
		return nil, fmt.Errorf("failed to write HTML report: %w", err)
	}
	paths = append(paths, htmlPath)

	log.Printf("[ReportWriter] wrote %d artifacts for batch %s to %s", len(paths), id, w.dir)
	return paths, nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
	}
	return nil
}

// selectedItems flattens each instruction's winning candidate into its
// persisted item shape. Instructions with no winner are skipped.
func selectedItems(result *puzzle.BatchResult) []puzzle.GeneratedItem {
	items := make([]puzzle.GeneratedItem, 0, len(result.PerInstruction))
	for i := range result.PerInstruction {
		r := &result.PerInstruction[i]
		if r.Selected == nil {
			continue
		}
		items = append(items, r.Selected.Record(r.Instruction.ExpectedScore))
	}
	return items
}

// renderMarkdown builds the human-readable summary.
func renderMarkdown(result *puzzle.BatchResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Puzzle Generation Report\n\n")
	fmt.Fprintf(&b, "Batch `%s`\n\n", result.ID.String())

	fmt.Fprintf(&b, "## Summary\n\n")
	fmt.Fprintf(&b, "| Metric | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| Instructions | %d |\n", result.TotalInstructions)
	fmt.Fprintf(&b, "| Candidates | %d |\n", result.TotalCandidates)
	fmt.Fprintf(&b, "| Valid candidates | %d (%.1f%%) |\n", result.TotalSuccesses, result.SuccessRate*100)
	fmt.Fprintf(&b, "| Instructions with a puzzle | %.1f%% |\n", result.InstructionSuccessRate*100)
	fmt.Fprintf(&b, "| Mean successes per instruction | %.2f (min %d, max %d) |\n",
		result.MeanSuccessesPerInstruction, result.MinSuccesses, result.MaxSuccesses)
	if result.ComplianceRate >= 0 {
		fmt.Fprintf(&b, "| Judge compliance | %.1f%% |\n", result.ComplianceRate*100)
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "## Instructions\n\n")
	fmt.Fprintf(&b, "| # | Instruction | Valid | Selected | Failure categories |\n|---|---|---|---|---|\n")
	for i := range result.PerInstruction {
		r := &result.PerInstruction[i]
		selected := "-"
		if r.Selected != nil {
			selected = fmt.Sprintf("#%d", r.Selected.Index)
		}
		fmt.Fprintf(&b, "| %d | %s | %d/%d | %s | %s |\n",
			i+1, escapePipes(r.Instruction.Text), r.SuccessCount, len(r.Candidates),
			selected, categorySummary(r.CategoryCounts))
	}
	b.WriteString("\n")

	for i := range result.PerInstruction {
		r := &result.PerInstruction[i]
		if r.Selected == nil {
			continue
		}
		fmt.Fprintf(&b, "### Puzzle %d\n\n", i+1)
		fmt.Fprintf(&b, "%s\n\n", r.Selected.Question)
		if r.Selected.Score != nil {
			fmt.Fprintf(&b, "**Answer:** %d points (%d han %d fu, %s)\n\n",
				r.Selected.Score.Points, r.Selected.Score.Han, r.Selected.Score.Fu,
				strings.Join(r.Selected.Score.Yaku, ", "))
		}
	}

	return b.String()
}

func categorySummary(counts map[puzzle.ErrorCategory]int) string {
	if len(counts) == 0 {
		return "-"
	}
	parts := make([]string, 0, len(counts))
	for _, category := range []puzzle.ErrorCategory{
		puzzle.GenerationError, puzzle.ExtractionError, puzzle.FormatError,
		puzzle.NoYakuError, puzzle.ScoreMismatchError,
	} {
		if n := counts[category]; n > 0 {
			parts = append(parts, fmt.Sprintf("%s: %d", category, n))
		}
	}
	return strings.Join(parts, ", ")
}

func escapePipes(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}

// RenderBatchHTML renders a batch result straight to its HTML report.
func RenderBatchHTML(result *puzzle.BatchResult) []byte {
	return RenderHTML(renderMarkdown(result))
}

// RenderHTML converts a markdown report to a standalone HTML page.
func RenderHTML(md string) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.Tables)
	renderer := html.NewRenderer(html.RendererOptions{
		Title: "Puzzle Generation Report",
		Flags: html.CommonFlags | html.CompletePage,
	})
	return markdown.ToHTML([]byte(md), p, renderer)
}
