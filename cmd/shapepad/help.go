package main

import (
	"bytes"
	"embed"
	"flag"
	"fmt"
	"os"
	"sync"
	"text/template"
)

//go:embed templates/*.txt
var helpFS embed.FS

var (
	helpOnce sync.Once
	helpTmpl *template.Template
)

func parseHelpTemplates() {
	helpTmpl = template.Must(template.New("").Funcs(map[string]any{
		"flags": func(fs *flag.FlagSet) []flagInfo {
			result := []flagInfo{}
			if fs == nil {
				return result
			}
			fs.VisitAll(func(f *flag.Flag) {
				result = append(result, flagInfo{f.Name, f.DefValue, f.Usage})
			})
			return result
		},
	}).ParseFS(helpFS, "templates/*.txt"))
}

type flagInfo struct {
	Name     string
	DefValue string
	Usage    string
}

type HelpData interface {
	Program() string
	Template() string
	FlagSet() *flag.FlagSet
}

type UsageError struct {
	of HelpData
}

func (e *UsageError) Error() string {
	help, err := renderHelp(e.of)
	if err != nil {
		return err.Error()
	}
	return help
}

func renderHelp(h HelpData) (string, error) {
	helpOnce.Do(parseHelpTemplates)
	var buf bytes.Buffer
	if err := helpTmpl.ExecuteTemplate(&buf, h.Template(), h); err != nil {
		return "", fmt.Errorf("render help template %s: %w", h.Template(), err)
	}
	return buf.String(), nil
}

// usageFunc adapts a command's help template to flag.FlagSet.Usage.
func usageFunc(h HelpData) func() {
	return func() {
		help, err := renderHelp(h)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return
		}
		fmt.Fprint(os.Stderr, help)
	}
}

func (r *root) Template() string {
	return "root.txt"
}

func (d *drawCmd) Template() string {
	return "draw.txt"
}

func (c *replayCmd) Template() string {
	return "replay.txt"
}

func (c *interactiveCmd) Template() string {
	return "interactive.txt"
}

func (c *colorsCmd) Template() string {
	return "colors.txt"
}

func (c *shapesCmd) Template() string {
	return "shapes.txt"
}

func (c *configCmd) Template() string {
	return "config.txt"
}

func (v *versionCmd) Template() string {
	return "version.txt"
}
