package config

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"
)

// ScaffoldConfig renders the default config with a custom output directory.
func ScaffoldConfig(outputDir string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		content := strings.Replace(defaultConfig, `output_dir: "`+DefaultOutputDir+`"`, `output_dir: "`+outputDir+`"`, 1)
		_, err := io.WriteString(w, content)
		return err
	})
}

// renderScaffoldConfig builds the scaffold YAML via the component.
func renderScaffoldConfig(outputDir string) (string, error) {
	var builder strings.Builder
	if err := ScaffoldConfig(outputDir).Render(context.Background(), &builder); err != nil {
		return "", err
	}
	return builder.String(), nil
}
