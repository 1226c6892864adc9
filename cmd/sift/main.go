package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/sift"
	"github.com/GriffinCanCode/sift/internal/config"
	"github.com/GriffinCanCode/sift/internal/fetch"
	"github.com/GriffinCanCode/sift/internal/logging"
	"github.com/GriffinCanCode/sift/internal/recipe"
	"github.com/GriffinCanCode/sift/internal/source"
)

func main() {
	var (
		recipePath = flag.String("recipe", "", "YAML recipe file")
		selector   = flag.String("selector", "", "CSS selector to extract")
		xpathExpr  = flag.String("xpath", "", "XPath expression instead of a CSS selector")
		attr       = flag.String("attr", "", "attribute to extract (default: trimmed text)")
		all        = flag.Bool("all", false, "extract every match instead of the first")
		sanitize   = flag.Bool("sanitize", false, "emit sanitized HTML instead of text")
		pretty     = flag.Bool("pretty", false, "indent JSON output")
		dev        = flag.Bool("dev", false, "development logging")
	)
	flag.Parse()

	cfg := config.LoadOrDefault()
	if *dev {
		cfg.Logging.Level = "debug"
		cfg.Logging.Development = true
	}

	log := logging.NewOrNop(logging.Config{
		Level:       cfg.Logging.Level,
		Development: cfg.Logging.Development,
	})
	defer log.Sync()

	if err := run(cfg, log, *recipePath, *selector, *xpathExpr, *attr, *all, *sanitize, *pretty, flag.Args()); err != nil {
		log.Fatal("sift failed", zap.Error(err))
	}
}

func run(cfg *config.Config, log *logging.Logger, recipePath, selector, xpathExpr, attr string, all, sanitize, pretty bool, args []string) error {
	if recipePath == "" && selector == "" && xpathExpr == "" {
		return fmt.Errorf("one of -recipe, -selector or -xpath is required")
	}
	if len(args) == 0 {
		args = []string{"-"}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var rec *recipe.Recipe
	if recipePath != "" {
		var err error
		if rec, err = recipe.Load(recipePath); err != nil {
			return err
		}
	}

	resolver := source.NewResolver(fetch.New(cfg.Fetch), log, cfg.Limits.MaxBodyBytes)
	docs, err := resolver.Resolve(ctx, args)
	if err != nil {
		return err
	}
	log.Debug("inputs resolved", zap.Int("documents", len(docs)))

	results := make([]map[string]any, 0, len(docs))
	for _, d := range docs {
		doc, err := sift.ParseBytes(d.Data)
		if err != nil {
			return fmt.Errorf("parse %s: %w", d.Name, err)
		}

		var values any
		if rec != nil {
			values, err = rec.Extract(doc)
		} else {
			values, err = extractAdhoc(doc, selector, xpathExpr, attr, all, sanitize)
		}
		if err != nil {
			return fmt.Errorf("extract %s: %w", d.Name, err)
		}
		results = append(results, map[string]any{"source": d.Name, "values": values})
	}

	return emit(results, pretty)
}

// extractAdhoc runs a one-off extraction built from the CLI flags.
func extractAdhoc(doc *sift.Node, selector, xpathExpr, attr string, all, sanitize bool) (any, error) {
	text := sift.Q.Method("Text").TrimSpace()
	value := func(n *sift.Node) sift.Wrapper {
		switch {
		case sanitize:
			return n.Sanitize(nil)
		case attr != "":
			return n.Attr(attr)
		default:
			return n.Apply(text)
		}
	}

	if all {
		var col *sift.Collection
		if xpathExpr != "" {
			col = doc.XPath(xpathExpr)
		} else {
			col = doc.FindAll(selector)
		}
		kept := col.Each(value).Filter(func(w sift.Wrapper) bool { return !w.IsNull() })
		if kept.IsNull() {
			return []any{}, nil
		}
		return kept.Val()
	}

	var node *sift.Node
	if xpathExpr != "" {
		node = doc.XPathOne(xpathExpr)
	} else {
		node = doc.Find(selector)
	}
	w := value(node)
	if w.IsNull() {
		return nil, nil
	}
	return w.Val()
}

func emit(results []map[string]any, pretty bool) error {
	var (
		out []byte
		err error
	)
	if pretty {
		out, err = sonic.ConfigDefault.MarshalIndent(results, "", "  ")
	} else {
		out, err = sonic.Marshal(results)
	}
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	out = append(out, '\n')
	_, err = os.Stdout.Write(out)
	return err
}
