package steps

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/bmatcuk/doublestar/v4"

	"github.com/systemstart/conveyor/pkg/pipeline"
)

const defaultInclude = "**/*"

// RenderTemplates renders files under the working directory in place
// as Go templates with sprig functions, using Data as template input.
// Include/Exclude are doublestar glob patterns; an empty Include
// matches every file. Its output is the list of rendered files.
type RenderTemplates struct {
	Include []string
	Exclude []string
	Data    map[string]any
}

func (s *RenderTemplates) Name() string { return "render-templates" }

func (s *RenderTemplates) Run(ctx *pipeline.Context) ([]string, error) {
	files, err := filterFiles(os.DirFS(ctx.WorkDir), s.Include, s.Exclude)
	if err != nil {
		return nil, fmt.Errorf("filtering files: %w", err)
	}

	ctx.Logger.Info("rendering templates", "count", len(files))

	for _, file := range files {
		if err := renderFile(ctx.WorkDir, file, s.Data); err != nil {
			return nil, fmt.Errorf("rendering %s: %w", file, err)
		}
		ctx.Logger.Debug("template rendered", "file", file)
	}

	return files, nil
}

func globFS(fsys fs.FS, patterns []string) ([]string, error) {
	var result []string
	for _, pattern := range patterns {
		matches, err := doublestar.Glob(fsys, pattern)
		if err != nil {
			return nil, fmt.Errorf("glob %q: %w", pattern, err)
		}
		result = append(result, matches...)
	}
	slices.Sort(result)
	result = slices.Compact(result)
	return result, nil
}

func filterFiles(fsys fs.FS, include, exclude []string) ([]string, error) {
	if len(include) == 0 {
		include = []string{defaultInclude}
	}

	included, err := globFS(fsys, include)
	if err != nil {
		return nil, fmt.Errorf("include filter: %w", err)
	}

	excluded, err := globFS(fsys, exclude)
	if err != nil {
		return nil, fmt.Errorf("exclude filter: %w", err)
	}

	var result []string
	for _, f := range included {
		info, err := fs.Stat(fsys, f)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", f, err)
		}
		if info.IsDir() {
			continue
		}
		if slices.Contains(excluded, f) {
			continue
		}
		result = append(result, f)
	}
	return result, nil
}

func renderFile(workDir, filename string, data map[string]any) error {
	absPath := filepath.Join(workDir, filename)

	content, err := os.ReadFile(absPath)
	if err != nil {
		return fmt.Errorf("reading file: %w", err)
	}

	tmpl, err := template.New(filepath.Base(filename)).Funcs(sprig.FuncMap()).Parse(string(content))
	if err != nil {
		return fmt.Errorf("parsing template: %w", err)
	}

	out, err := os.Create(absPath)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}

	execErr := tmpl.Execute(out, data)

	if closeErr := out.Close(); closeErr != nil {
		if execErr != nil {
			return fmt.Errorf("executing template: %w", execErr)
		}
		return fmt.Errorf("closing output file: %w", closeErr)
	}
	if execErr != nil {
		return fmt.Errorf("executing template: %w", execErr)
	}

	return nil
}
