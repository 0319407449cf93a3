package generator

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/zht7063/iblog/internal/config"
	"github.com/zht7063/iblog/internal/corpus"
	"github.com/zht7063/iblog/internal/facets"
	"github.com/zht7063/iblog/internal/logging"
	"github.com/zht7063/iblog/internal/scanner"
	"github.com/zht7063/iblog/internal/toc"
	"github.com/zht7063/iblog/pkg/interfaces"
)

var (
	// ErrSiteConfigRequired indicates the generator was built without site configuration.
	ErrSiteConfigRequired = errors.New("generator: site configuration is required")
	// ErrScannerRequired indicates the generator was built without a scanner.
	ErrScannerRequired = errors.New("generator: scanner is required")
	// ErrParserRequired indicates the generator was built without a markdown parser.
	ErrParserRequired = errors.New("generator: markdown parser is required")
	// ErrRendererRequired indicates the generator was built without a template renderer.
	ErrRendererRequired = errors.New("generator: template renderer is required")
)

// Service describes the static site generator contract.
type Service interface {
	Build(ctx context.Context, opts BuildOptions) (*BuildResult, error)
	Clean(ctx context.Context) error
}

// Config captures runtime behaviour toggles for the generator.
type Config struct {
	// ContentDir is the directory scanned for source documents, relative to
	// the scanner's filesystem root.
	ContentDir string
	CleanBuild bool
	CopyAssets bool
	// Parallel renders post pages concurrently, one worker per document batch.
	// Safe because documents are read-only after normalization and each
	// extraction pass owns its anchor registry.
	Parallel bool
	Workers  int
}

// Dependencies lists the collaborators required by the generator.
type Dependencies struct {
	Site     *config.Config
	Scanner  *scanner.Scanner
	Parser   interfaces.MarkdownParser
	Renderer interfaces.TemplateRenderer
	Writer   ArtifactWriter
	// Assets optionally supplies static files mirrored into the output.
	Assets fs.FS
	Logger interfaces.Logger
}

// BuildOptions narrows the scope of a generator run.
type BuildOptions struct {
	// DryRun renders every page but writes nothing.
	DryRun bool
	// Workers overrides the configured worker count when positive.
	Workers int
}

// BuildResult reports aggregated build metadata.
type BuildResult struct {
	BuildID      uuid.UUID
	Documents    int
	PagesBuilt   int
	PagesFailed  int
	Categories   int
	Tags         int
	AssetsCopied int
	Duration     time.Duration
	DryRun       bool
}

// NewService wires a generator with the provided configuration and
// dependencies. Missing collaborators fail construction, not the build.
func NewService(cfg Config, deps Dependencies) (Service, error) {
	if deps.Site == nil {
		return nil, ErrSiteConfigRequired
	}
	if deps.Scanner == nil {
		return nil, ErrScannerRequired
	}
	if deps.Parser == nil {
		return nil, ErrParserRequired
	}
	if deps.Renderer == nil {
		return nil, ErrRendererRequired
	}
	if deps.Writer == nil {
		deps.Writer = NewDiscardWriter()
	}
	if deps.Logger == nil {
		deps.Logger = logging.NoOp()
	}

	out := deps.Site.Paths.Output
	return &service{
		cfg:  cfg,
		deps: deps,
		layout: outputLayout{
			Posts:      normalizeSegment(out.Posts, "blogs"),
			Categories: normalizeSegment(out.Categories, "categories"),
			Tags:       normalizeSegment(out.Tags, "tags"),
			About:      normalizeSegment(out.About, "about"),
			Assets:     normalizeSegment(out.Assets, "assets"),
		},
		now: time.Now,
	}, nil
}

type service struct {
	cfg    Config
	deps   Dependencies
	layout outputLayout
	now    func() time.Time
}

// Build runs the full pipeline: scan, normalize, snapshot, sort, and generate
// every enabled page family. Per-document failures are absorbed locally; an
// empty corpus is a no-op terminal state, not an error.
func (s *service) Build(ctx context.Context, opts BuildOptions) (*BuildResult, error) {
	start := s.now()
	logger := s.deps.Logger
	result := &BuildResult{BuildID: uuid.New(), DryRun: opts.DryRun}

	key, order, err := s.deps.Site.SortSpec()
	if err != nil {
		return nil, err
	}

	scan, err := s.deps.Scanner.Scan(ctx, s.cfg.ContentDir)
	if err != nil {
		return nil, err
	}
	result.Documents = len(scan.Documents)

	writer := s.deps.Writer
	if opts.DryRun {
		writer = NewDiscardWriter()
	}

	if s.cfg.CleanBuild && !opts.DryRun {
		if err := writer.RemoveAll(ctx, "."); err != nil {
			return nil, fmt.Errorf("generator: clean output: %w", err)
		}
	}

	snapshot := corpus.NewSnapshot(scan.Documents)
	if snapshot.Len() == 0 {
		logger.Warn("build.empty_corpus")
		result.Duration = time.Since(start)
		return result, nil
	}

	index := corpus.NewIndex(snapshot)
	sorted := index.SortedBy(key, order, true)
	total := snapshot.Len()
	gens := s.deps.Site.Features.Generators

	if gens.Posts {
		built, failed := s.buildPosts(ctx, writer, sorted, total, opts.Workers)
		result.PagesBuilt += built
		result.PagesFailed += failed
	}

	if gens.Index {
		if err := s.buildIndex(ctx, writer, sorted, total); err != nil {
			return result, err
		}
		result.PagesBuilt++
	}

	if gens.Categories {
		pages, count, err := s.buildCategories(ctx, writer, index, total)
		if err != nil {
			return result, err
		}
		result.PagesBuilt += pages
		result.Categories = count
	}

	if gens.Tags {
		pages, count, err := s.buildTags(ctx, writer, index, total)
		if err != nil {
			return result, err
		}
		result.PagesBuilt += pages
		result.Tags = count
	}

	if gens.About && scan.About != nil {
		if err := s.buildAbout(ctx, writer, scan.About, total); err != nil {
			return result, err
		}
		result.PagesBuilt++
	}

	if s.cfg.CopyAssets {
		copied, err := s.copyAssets(ctx, writer)
		if err != nil {
			return result, fmt.Errorf("generator: copy assets: %w", err)
		}
		result.AssetsCopied = copied
	}

	result.Duration = time.Since(start)
	logger.Info("build.complete",
		"build_id", result.BuildID.String(),
		"documents", result.Documents,
		"pages", result.PagesBuilt,
		"failed", result.PagesFailed,
		"duration", result.Duration.String(),
	)
	return result, nil
}

// Clean removes every generated artifact from the output directory.
func (s *service) Clean(ctx context.Context) error {
	return s.deps.Writer.RemoveAll(ctx, ".")
}

// buildPosts renders each document page, optionally in parallel. A failed
// post is logged and counted; it never aborts the rest of the corpus.
func (s *service) buildPosts(ctx context.Context, writer ArtifactWriter, docs []*corpus.Document, total int, workerOverride int) (built, failed int) {
	workers := 1
	if s.cfg.Parallel || workerOverride > 0 {
		workers = s.effectiveWorkerCount(len(docs), workerOverride)
	}

	if workers <= 1 {
		for _, doc := range docs {
			if err := s.renderPost(ctx, writer, doc, total); err != nil {
				s.deps.Logger.Error("build.post_failed", "identity", doc.Identity, "error", err)
				failed++
				continue
			}
			built++
		}
		return built, failed
	}

	var mu sync.Mutex
	collect := func(err error, identity string) {
		mu.Lock()
		defer mu.Unlock()
		if err != nil {
			s.deps.Logger.Error("build.post_failed", "identity", identity, "error", err)
			failed++
			return
		}
		built++
	}

	jobs := make(chan *corpus.Document)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for doc := range jobs {
				select {
				case <-ctx.Done():
					collect(ctx.Err(), doc.Identity)
				default:
					collect(s.renderPost(ctx, writer, doc, total), doc.Identity)
				}
			}
		}()
	}

	for _, doc := range docs {
		select {
		case <-ctx.Done():
			close(jobs)
			wg.Wait()
			return built, failed
		case jobs <- doc:
		}
	}
	close(jobs)
	wg.Wait()
	return built, failed
}

// renderPost converts one document's body to HTML, extracts its table of
// contents, injects anchor IDs, and renders the post template.
func (s *service) renderPost(ctx context.Context, writer ArtifactWriter, doc *corpus.Document, total int) error {
	body, err := s.deps.Parser.Parse([]byte(doc.Body))
	if err != nil {
		return fmt.Errorf("parse body: %w", err)
	}

	entries, withIDs := toc.Extract(string(body))

	data := baseContext(s.deps.Site, s.layout, depthSection, total)
	data["content_html"] = withIDs
	data["metadata"] = postCard(doc, "")
	data["toc"] = tocContext(entries)

	page, err := s.deps.Renderer.Render("blog_post.html", data)
	if err != nil {
		return fmt.Errorf("render template: %w", err)
	}

	return writer.WriteFile(ctx, s.layout.postPage(doc.Identity), []byte(page))
}

func (s *service) buildIndex(ctx context.Context, writer ArtifactWriter, sorted []*corpus.Document, total int) error {
	data := baseContext(s.deps.Site, s.layout, depthRoot, total)
	data["posts"] = postCards(sorted, func(doc *corpus.Document) string {
		return postURLFromRoot(s.layout, doc)
	})

	page, err := s.deps.Renderer.Render("index.html", data)
	if err != nil {
		return fmt.Errorf("generator: render index: %w", err)
	}
	return writer.WriteFile(ctx, "index.html", []byte(page))
}

func (s *service) buildCategories(ctx context.Context, writer ArtifactWriter, index *corpus.Index, total int) (pages, count int, err error) {
	buckets := index.GroupByCategory()
	summaries := facets.Aggregate(buckets, false)

	data := baseContext(s.deps.Site, s.layout, depthSection, total)
	categories := make([]map[string]any, 0, len(summaries))
	for _, summary := range summaries {
		categories = append(categories, categoryContext(summary))
	}
	data["categories"] = categories

	page, err := s.deps.Renderer.Render("categories.html", data)
	if err != nil {
		return pages, 0, fmt.Errorf("generator: render categories index: %w", err)
	}
	if err := writer.WriteFile(ctx, s.layout.categoryIndex(), []byte(page)); err != nil {
		return pages, 0, err
	}
	pages++

	members := bucketMembers(buckets)
	for _, summary := range summaries {
		docs := sortedByDateDesc(members[summary.Name])
		detail := baseContext(s.deps.Site, s.layout, depthSection, total)
		detail["category"] = summary.Name
		detail["posts"] = postCards(docs, func(doc *corpus.Document) string {
			return relPrefix(depthSection) + postURLFromRoot(s.layout, doc)
		})

		out, err := s.deps.Renderer.Render("category_detail.html", detail)
		if err != nil {
			return pages, 0, fmt.Errorf("generator: render category %s: %w", summary.Name, err)
		}
		if err := writer.WriteFile(ctx, s.layout.categoryPage(summary.Slug), []byte(out)); err != nil {
			return pages, 0, err
		}
		pages++
	}

	return pages, len(summaries), nil
}

func (s *service) buildTags(ctx context.Context, writer ArtifactWriter, index *corpus.Index, total int) (pages, count int, err error) {
	buckets := index.GroupByTags()
	if len(buckets) == 0 {
		s.deps.Logger.Warn("build.no_tags")
		return 0, 0, nil
	}
	summaries := facets.Aggregate(buckets, true)

	data := baseContext(s.deps.Site, s.layout, depthSection, total)
	tags := make([]map[string]any, 0, len(summaries))
	for _, summary := range summaries {
		tags = append(tags, tagContext(summary))
	}
	data["tags"] = tags

	page, err := s.deps.Renderer.Render("tags.html", data)
	if err != nil {
		return pages, 0, fmt.Errorf("generator: render tags index: %w", err)
	}
	if err := writer.WriteFile(ctx, s.layout.tagIndex(), []byte(page)); err != nil {
		return pages, 0, err
	}
	pages++

	members := bucketMembers(buckets)
	for _, summary := range summaries {
		docs := sortedByDateDesc(members[summary.Name])
		detail := baseContext(s.deps.Site, s.layout, depthSection, total)
		detail["tag"] = summary.Name
		detail["posts"] = postCards(docs, func(doc *corpus.Document) string {
			return relPrefix(depthSection) + postURLFromRoot(s.layout, doc)
		})

		out, err := s.deps.Renderer.Render("tag_detail.html", detail)
		if err != nil {
			return pages, 0, fmt.Errorf("generator: render tag %s: %w", summary.Name, err)
		}
		if err := writer.WriteFile(ctx, s.layout.tagPage(summary.Slug), []byte(out)); err != nil {
			return pages, 0, err
		}
		pages++
	}

	return pages, len(summaries), nil
}

func (s *service) buildAbout(ctx context.Context, writer ArtifactWriter, about *corpus.Document, total int) error {
	body, err := s.deps.Parser.Parse([]byte(about.Body))
	if err != nil {
		return fmt.Errorf("generator: parse about body: %w", err)
	}

	data := baseContext(s.deps.Site, s.layout, depthSection, total)
	data["content_html"] = string(body)
	data["metadata"] = postCard(about, "")

	page, err := s.deps.Renderer.Render("about.html", data)
	if err != nil {
		return fmt.Errorf("generator: render about: %w", err)
	}
	return writer.WriteFile(ctx, s.layout.aboutPage(), []byte(page))
}

func (s *service) effectiveWorkerCount(docCount, override int) int {
	workers := override
	if workers <= 0 {
		workers = s.cfg.Workers
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers < 1 {
		workers = 1
	}
	if docCount > 0 && workers > docCount {
		return docCount
	}
	return workers
}

func bucketMembers(buckets []corpus.FacetBucket) map[string][]*corpus.Document {
	members := make(map[string][]*corpus.Document, len(buckets))
	for _, bucket := range buckets {
		members[bucket.Name] = bucket.Members
	}
	return members
}

// sortedByDateDesc orders detail-page members newest first, preserving input
// order for equal dates.
func sortedByDateDesc(docs []*corpus.Document) []*corpus.Document {
	out := make([]*corpus.Document, len(docs))
	copy(out, docs)
	sort.SliceStable(out, func(a, b int) bool {
		return out[a].Date > out[b].Date
	})
	return out
}
