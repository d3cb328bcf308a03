package corpus

import (
	"context"
	"io"
	"io/fs"
	"net/url"
	"path"
	"regexp"
	"strings"

	multierror "github.com/hashicorp/go-multierror"
	"github.com/prashannakc/PAGE-RANK/linkgraph"
	"github.com/sirupsen/logrus"
	"golang.org/x/xerrors"
)

var findLinkRegex = regexp.MustCompile(`(?i)<a\s+[^>]*?href\s*=\s*"([^"]*)"`)

// Config encapsulates the settings for configuring the corpus loader.
type Config struct {
	// The file system holding the corpus pages. Only the top-level
	// *.html files are considered.
	FS fs.FS

	// The logger to use. If not defined an output-discarding logger will
	// be used instead.
	Logger *logrus.Entry
}

func (cfg *Config) validate() error {
	var err error
	if cfg.FS == nil {
		err = multierror.Append(err, xerrors.Errorf("corpus file system has not been provided"))
	}
	if cfg.Logger == nil {
		cfg.Logger = logrus.NewEntry(&logrus.Logger{Out: io.Discard})
	}
	return err
}

// Loader builds a link graph out of a directory of HTML pages. Each page
// becomes a node; each <a href="..."> pointing to another page of the same
// corpus becomes an outbound link. Self links and links leaving the corpus
// are dropped.
type Loader struct {
	cfg Config
}

// NewLoader creates a new corpus loader instance with the specified config.
func NewLoader(cfg Config) (*Loader, error) {
	if err := cfg.validate(); err != nil {
		return nil, xerrors.Errorf("corpus loader: config validation failed: %w", err)
	}
	return &Loader{cfg: cfg}, nil
}

// Load reads the corpus and returns its link graph.
func (l *Loader) Load(ctx context.Context) (linkgraph.Graph, error) {
	entries, err := fs.ReadDir(l.cfg.FS, ".")
	if err != nil {
		return nil, xerrors.Errorf("read corpus: %w", err)
	}

	rawLinks := make(map[string][]string)
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(path.Ext(entry.Name()), ".html") {
			continue
		}
		if err = ctx.Err(); err != nil {
			return nil, err
		}

		content, err := fs.ReadFile(l.cfg.FS, entry.Name())
		if err != nil {
			return nil, xerrors.Errorf("read page %q: %w", entry.Name(), err)
		}
		rawLinks[entry.Name()] = extractLinks(string(content))
	}

	if len(rawLinks) == 0 {
		return nil, xerrors.Errorf("read corpus: %w", linkgraph.ErrEmptyGraph)
	}

	// Register all pages first so that links can be filtered against the
	// full corpus.
	g := linkgraph.New()
	for page := range rawLinks {
		g.AddNode(page)
	}

	var numLinks, numDropped int
	for page, links := range rawLinks {
		for _, link := range links {
			if !g.Has(link) || link == page {
				numDropped++
				continue
			}
			if err := g.AddLink(page, link); err != nil {
				return nil, err
			}
			numLinks++
		}
	}

	l.cfg.Logger.WithFields(logrus.Fields{
		"pages":         len(g),
		"links":         numLinks,
		"dropped_links": numDropped,
	}).Debug("loaded corpus")

	return g, nil
}

// extractLinks returns the unique set of page names referenced by anchors
// in content. Absolute URLs are skipped; relative targets are cleaned and
// stripped of any query or fragment.
func extractLinks(content string) []string {
	var (
		links   []string
		seenMap = make(map[string]struct{})
	)
	for _, match := range findLinkRegex.FindAllStringSubmatch(content, -1) {
		target, err := url.Parse(strings.TrimSpace(match[1]))
		if err != nil || target.Scheme != "" || target.Host != "" || target.Path == "" {
			continue
		}

		link := path.Clean(target.Path)
		if _, seen := seenMap[link]; seen {
			continue
		}
		seenMap[link] = struct{}{}
		links = append(links, link)
	}
	return links
}
