// Command goshape evaluates shape declaration documents.
//
//	goshape eval -f shapes.yaml -schema TestOmit [-format ts|jsonschema|ir]
//	goshape check shapes.yaml more.yaml
//	goshape gen -f shapes.yaml -schema Test,Value -pkg models -o models/shapes.go
//	goshape import -f crd.yaml [-kind Widget] [-format ts|ir]
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/reoring/goshape"
	"github.com/reoring/goshape/decl"
	"github.com/reoring/goshape/i18n"
	"github.com/reoring/goshape/internal/gen"
	"github.com/reoring/goshape/jsonschema"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

const usageText = `goshape CLI

Usage:
  goshape eval -f file.yaml -schema Name [-format ts|jsonschema|ir] [-lang en|ja] [-v]
  goshape check [-lang en|ja] [-v] file.yaml...
  goshape gen -f file.yaml -schema Name1[,Name2,...] -pkg name [-o out.go] [-v]
  goshape import -f schema.(json|yaml) [-kind CRDKind] [-format ts|ir]`

// exit codes
const (
	exitOK     = 0
	exitIssues = 1
	exitUsage  = 2
)

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		fmt.Fprintln(stderr, usageText)
		return exitUsage
	}
	c := &cli{stdout: stdout, stderr: stderr}
	switch args[0] {
	case "eval":
		return c.eval(args[1:])
	case "check":
		return c.check(args[1:])
	case "gen":
		return c.gen(args[1:])
	case "import":
		return c.importCmd(args[1:])
	case "help", "-h", "--help":
		fmt.Fprintln(stdout, usageText)
		return exitOK
	}
	fmt.Fprintln(stderr, usageText)
	return exitUsage
}

type cli struct {
	stdout, stderr io.Writer
	verbose        bool
	mu             sync.Mutex
}

func (c *cli) flags(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	fs.BoolVar(&c.verbose, "v", false, "enable verbose logs")
	return fs
}

func (c *cli) logf(format string, a ...any) {
	if c.verbose {
		c.mu.Lock()
		defer c.mu.Unlock()
		fmt.Fprintf(c.stderr, format+"\n", a...)
	}
}

func (c *cli) errorf(format string, a ...any) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.stderr, format+"\n", a...)
	return exitIssues
}

// report prints err, one line per issue when it carries issues.
func (c *cli) report(file string, err error) int {
	iss, ok := goshape.AsIssues(err)
	if !ok {
		return c.errorf("%s: %v", file, err)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, it := range iss {
		line := fmt.Sprintf("%s:%s: %s [%s]", file, it.Path, it.Message, it.Code)
		if it.Hint != "" {
			line += " (" + it.Hint + ")"
		}
		fmt.Fprintln(c.stderr, line)
	}
	return exitIssues
}

func setLanguage(lang string) error {
	switch lang {
	case "en", "ja":
		i18n.SetLanguage(lang)
		return nil
	}
	return fmt.Errorf("unsupported language %q", lang)
}

func (c *cli) load(file string, cache *goshape.Cache) (*decl.Document, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	c.logf("load: file=%s bytes=%d", file, len(data))
	return decl.LoadWithOptions(data, decl.Options{Cache: cache})
}

func (c *cli) eval(args []string) int {
	fs := c.flags("eval")
	var file, name, format, lang string
	fs.StringVar(&file, "f", "", "declaration file")
	fs.StringVar(&name, "schema", "", "declared name to print")
	fs.StringVar(&format, "format", "ts", "output format: ts, jsonschema or ir")
	fs.StringVar(&lang, "lang", "en", "message language: en or ja")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if file == "" || name == "" {
		fs.Usage()
		return exitUsage
	}
	if err := setLanguage(lang); err != nil {
		c.errorf("eval: %v", err)
		return exitUsage
	}
	doc, err := c.load(file, nil)
	if err != nil {
		return c.report(file, err)
	}
	s, ok := doc.Shape(name)
	if !ok {
		return c.errorf("eval: %s does not declare %q (have %s)", file, name, strings.Join(doc.Names(), ", "))
	}
	out, err := formatShape(s, format)
	if err != nil {
		if errors.Is(err, errFormat) {
			c.errorf("eval: %v", err)
			return exitUsage
		}
		return c.report(file, err)
	}
	fmt.Fprintln(c.stdout, out)
	return exitOK
}

var errFormat = errors.New("unknown format")

func formatShape(s goshape.Shape, format string) (string, error) {
	switch format {
	case "ts":
		return s.String(), nil
	case "ir":
		b, err := goshape.Canonical(s)
		return string(b), err
	case "jsonschema":
		js, err := jsonschema.FromShape(s)
		if err != nil {
			return "", err
		}
		b, err := js.MarshalIndent()
		return string(b), err
	}
	return "", fmt.Errorf("%w %q", errFormat, format)
}

// check loads every file concurrently with a shared operator cache and
// prints the declared names of each valid file.
func (c *cli) check(args []string) int {
	fs := c.flags("check")
	var lang string
	fs.StringVar(&lang, "lang", "en", "message language: en or ja")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	files := fs.Args()
	if len(files) == 0 {
		fs.Usage()
		return exitUsage
	}
	if err := setLanguage(lang); err != nil {
		c.errorf("check: %v", err)
		return exitUsage
	}
	cache := goshape.NewCache()
	docs := make([]*decl.Document, len(files))
	errs := make([]error, len(files))
	var g errgroup.Group
	g.SetLimit(8)
	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			docs[i], errs[i] = c.load(file, cache)
			return nil
		})
	}
	_ = g.Wait()

	code := exitOK
	for i, file := range files {
		if errs[i] != nil {
			code = c.report(file, errs[i])
			continue
		}
		fmt.Fprintf(c.stdout, "%s: ok (%s)\n", file, strings.Join(docs[i].Names(), ", "))
	}
	hits, misses := cache.Stats()
	c.logf("check: files=%d cache entries=%d hits=%d misses=%d", len(files), cache.Len(), hits, misses)
	return code
}

func (c *cli) gen(args []string) int {
	fs := c.flags("gen")
	var file, names, pkg, out string
	fs.StringVar(&file, "f", "", "declaration file")
	fs.StringVar(&names, "schema", "", "comma-separated object schemas to generate")
	fs.StringVar(&pkg, "pkg", "", "package name of the generated file")
	fs.StringVar(&out, "o", "", "output filename (default stdout)")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if file == "" || names == "" || pkg == "" {
		fs.Usage()
		return exitUsage
	}
	doc, err := c.load(file, nil)
	if err != nil {
		return c.report(file, err)
	}
	var defs []gen.TypeDef
	for _, name := range splitCSV(names) {
		s, ok := doc.Schema(name)
		if !ok {
			return c.errorf("gen: %s: %q is not a declared object schema", file, name)
		}
		defs = append(defs, gen.TypeDef{Name: name, Schema: s})
	}
	code, err := gen.RenderFile(gen.File{Package: pkg, Types: defs})
	if err != nil {
		return c.errorf("gen: %v", err)
	}
	if out == "" {
		_, _ = c.stdout.Write(code)
		return exitOK
	}
	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return c.errorf("gen: creating output dir: %v", err)
	}
	if err := os.WriteFile(out, code, 0o644); err != nil {
		return c.errorf("gen: writing output: %v", err)
	}
	c.logf("gen: wrote %s (%d types)", out, len(defs))
	return exitOK
}

func (c *cli) importCmd(args []string) int {
	fs := c.flags("import")
	var file, kind, format string
	fs.StringVar(&file, "f", "", "JSON Schema, OpenAPI schema or CRD file")
	fs.StringVar(&kind, "kind", "", "CRD kind to select from a multi-document YAML")
	fs.StringVar(&format, "format", "ts", "output format: ts or ir")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if file == "" || format == "jsonschema" {
		fs.Usage()
		return exitUsage
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return c.errorf("import: %v", err)
	}
	var s goshape.Shape
	if kind != "" {
		c.logf("import: file=%s kind=%s", file, kind)
		s, err = jsonschema.ImportCRD(data, kind)
	} else {
		s, err = jsonschema.Import(data)
	}
	if err != nil {
		return c.report(file, err)
	}
	out, err := formatShape(s, format)
	if err != nil {
		if errors.Is(err, errFormat) {
			c.errorf("import: %v", err)
			return exitUsage
		}
		return c.report(file, err)
	}
	fmt.Fprintln(c.stdout, out)
	return exitOK
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
