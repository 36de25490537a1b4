package report

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/kenneds6/LLM-cognitive-flexibility/internal/runner"
)

// RenderHTML renders the report page into a string.
func RenderHTML(results runner.Results) (string, error) {
	var builder strings.Builder
	if err := ReportPage(results).Render(context.Background(), &builder); err != nil {
		return "", err
	}
	return builder.String(), nil
}

// WriteReport renders the report and writes it to path.
func WriteReport(results runner.Results, path string) error {
	html, err := RenderHTML(results)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(html), 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
