package source

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charlievieth/fastwalk"
	"github.com/gabriel-vasile/mimetype"
	"github.com/klauspost/compress/gzip"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/sift/internal/fetch"
	"github.com/GriffinCanCode/sift/internal/logging"
)

// Doc is one resolved input document ready to parse.
type Doc struct {
	Name string
	Data []byte
}

// Resolver expands CLI arguments into documents.
type Resolver struct {
	fetcher  *fetch.Client
	log      *logging.Logger
	maxBytes int64
	stdin    io.Reader
}

// NewResolver creates a resolver. fetcher may be nil when remote inputs
// are not expected.
func NewResolver(fetcher *fetch.Client, log *logging.Logger, maxBytes int64) *Resolver {
	if log == nil {
		log = logging.Nop()
	}
	return &Resolver{fetcher: fetcher, log: log, maxBytes: maxBytes, stdin: os.Stdin}
}

// Resolve expands arguments into documents. "-" reads stdin, http(s)
// URLs are fetched, glob patterns expand, directories walk recursively.
// Gzipped files are decompressed and non-HTML files are skipped.
func (r *Resolver) Resolve(ctx context.Context, args []string) ([]Doc, error) {
	var docs []Doc
	for _, arg := range args {
		switch {
		case arg == "-":
			data, err := io.ReadAll(io.LimitReader(r.stdin, r.maxBytes))
			if err != nil {
				return nil, fmt.Errorf("read stdin: %w", err)
			}
			docs = append(docs, Doc{Name: "stdin", Data: data})

		case strings.HasPrefix(arg, "http://") || strings.HasPrefix(arg, "https://"):
			if r.fetcher == nil {
				return nil, fmt.Errorf("remote input %s: no fetcher configured", arg)
			}
			data, err := r.fetcher.Get(ctx, arg)
			if err != nil {
				return nil, err
			}
			docs = append(docs, Doc{Name: arg, Data: data})

		case strings.ContainsAny(arg, "*?["):
			matches, err := doublestar.FilepathGlob(arg)
			if err != nil {
				return nil, fmt.Errorf("glob %s: %w", arg, err)
			}
			for _, m := range matches {
				doc, ok, err := r.loadFile(m)
				if err != nil {
					return nil, err
				}
				if ok {
					docs = append(docs, doc)
				}
			}

		default:
			info, err := os.Stat(arg)
			if err != nil {
				return nil, fmt.Errorf("stat %s: %w", arg, err)
			}
			if info.IsDir() {
				found, err := r.walkDir(arg)
				if err != nil {
					return nil, err
				}
				docs = append(docs, found...)
				continue
			}
			doc, ok, err := r.loadFile(arg)
			if err != nil {
				return nil, err
			}
			if ok {
				docs = append(docs, doc)
			}
		}
	}
	return docs, nil
}

// walkDir collects HTML documents under root. fastwalk invokes the
// callback concurrently, so appends are guarded.
func (r *Resolver) walkDir(root string) ([]Doc, error) {
	var (
		mu   sync.Mutex
		docs []Doc
	)
	conf := fastwalk.Config{Follow: false}
	err := fastwalk.Walk(&conf, root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			r.log.Debug("skipping unreadable entry", zap.String("path", path), zap.Error(err))
			return nil
		}
		if d.IsDir() {
			return nil
		}
		doc, ok, loadErr := r.loadFile(path)
		if loadErr != nil {
			return loadErr
		}
		if ok {
			mu.Lock()
			docs = append(docs, doc)
			mu.Unlock()
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].Name < docs[j].Name })
	return docs, nil
}

func (r *Resolver) loadFile(path string) (Doc, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Doc{}, false, fmt.Errorf("read %s: %w", path, err)
	}

	if strings.HasSuffix(path, ".gz") {
		gr, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return Doc{}, false, fmt.Errorf("gunzip %s: %w", path, err)
		}
		data, err = io.ReadAll(io.LimitReader(gr, r.maxBytes))
		if cerr := gr.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return Doc{}, false, fmt.Errorf("gunzip %s: %w", path, err)
		}
	}

	if int64(len(data)) > r.maxBytes {
		r.log.Warn("skipping oversized file",
			zap.String("path", path), zap.Int("bytes", len(data)))
		return Doc{}, false, nil
	}
	if !looksLikeMarkup(data) {
		r.log.Debug("skipping non-HTML file", zap.String("path", path))
		return Doc{}, false, nil
	}
	return Doc{Name: path, Data: data}, true, nil
}

// looksLikeMarkup sniffs content. Fragments without a doctype detect as
// plain text, so text/plain is allowed through and left to the parser.
func looksLikeMarkup(data []byte) bool {
	mt := mimetype.Detect(data)
	for m := mt; m != nil; m = m.Parent() {
		if m.Is("text/html") || m.Is("text/xml") || m.Is("text/plain") {
			return true
		}
	}
	return false
}
