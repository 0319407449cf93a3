package generator

import (
	"fmt"
	"path"

	"github.com/zht7063/iblog/internal/config"
	"github.com/zht7063/iblog/internal/corpus"
	"github.com/zht7063/iblog/internal/facets"
	"github.com/zht7063/iblog/internal/toc"
)

// baseContext assembles the fields every template expects: site identity,
// navigation, footer, theme values, and depth-aware link prefixes.
func baseContext(site *config.Config, out outputLayout, depth pageDepth, totalPosts int) map[string]any {
	navItems := make([]map[string]any, 0, len(site.Navigation.Items))
	for _, item := range site.Navigation.Items {
		navItems = append(navItems, map[string]any{
			"name": item.Name,
			"url":  item.URL,
			"icon": item.Icon,
		})
	}

	socialLinks := make([]map[string]any, 0, len(site.Footer.SocialLinks))
	for _, link := range site.Footer.SocialLinks {
		socialLinks = append(socialLinks, map[string]any{
			"name": link.Name,
			"url":  link.URL,
			"icon": link.Icon,
		})
	}

	return map[string]any{
		"site": map[string]any{
			"title":       site.Site.Title,
			"subtitle":    site.Site.Subtitle,
			"author":      site.Site.Author,
			"description": site.Site.Description,
			"language":    site.Site.Language,
			"url":         site.Site.URL,
			"start_date":  site.Site.StartDate,
		},
		"nav":       navLinks(depth, out),
		"nav_items": navItems,
		"footer": map[string]any{
			"copyright":       site.Footer.Copyright,
			"show_powered_by": site.Footer.ShowPoweredBy,
			"powered_by_text": site.Footer.PoweredByText,
			"show_post_count": site.Footer.ShowPostCount,
			"social_links":    socialLinks,
		},
		"theme": map[string]any{
			"colors": site.Theme.Colors,
			"layout": site.Theme.Layout,
			"fonts":  site.Theme.Fonts,
			"cdn":    site.Theme.CDN,
		},
		"post_card": map[string]any{
			"show_description": site.Features.PostCard.ShowDescription,
			"show_category":    site.Features.PostCard.ShowCategory,
			"show_tags":        site.Features.PostCard.ShowTags,
			"show_date":        site.Features.PostCard.ShowDate,
			"show_updated":     site.Features.PostCard.ShowUpdated,
		},
		"total_posts": totalPosts,
	}
}

// postCard shapes one document for listing templates. The URL is relative to
// the page that embeds the card.
func postCard(doc *corpus.Document, url string) map[string]any {
	return map[string]any{
		"identity": doc.Identity,
		"title":    doc.Title,
		"date":     doc.Date,
		"updated":  doc.Updated,
		"category": doc.Category,
		"tags":     doc.Tags,
		"author":   doc.Author,
		"pinned":   doc.Pinned,
		"url":      url,
	}
}

func postCards(docs []*corpus.Document, urlFor func(*corpus.Document) string) []map[string]any {
	cards := make([]map[string]any, 0, len(docs))
	for _, doc := range docs {
		cards = append(cards, postCard(doc, urlFor(doc)))
	}
	return cards
}

// tocContext shapes heading entries for in-page navigation.
func tocContext(entries []toc.HeadingEntry) []map[string]any {
	items := make([]map[string]any, 0, len(entries))
	for _, entry := range entries {
		items = append(items, map[string]any{
			"level": entry.Level,
			"text":  entry.Text,
			"id":    entry.AnchorID,
		})
	}
	return items
}

// categoryContext shapes one category summary for the categories index page.
func categoryContext(summary facets.Summary) map[string]any {
	ctx := map[string]any{
		"name":  summary.Name,
		"slug":  summary.Slug,
		"count": summary.Count,
		"url":   summary.Slug + ".html",
	}
	if summary.Representative != nil {
		ctx["latest_post"] = map[string]any{
			"title": summary.Representative.Title,
			"date":  summary.Representative.Date,
		}
	}
	return ctx
}

// tagContext shapes one tag summary for the tag cloud. The display weight is
// formatted as a CSS font size.
func tagContext(summary facets.Summary) map[string]any {
	return map[string]any{
		"name":      summary.Name,
		"slug":      summary.Slug,
		"count":     summary.Count,
		"url":       summary.Slug + ".html",
		"font_size": fmt.Sprintf("%.2fem", summary.DisplayWeight),
	}
}

// postURLFromRoot resolves a post page URL relative to the output root.
func postURLFromRoot(out outputLayout, doc *corpus.Document) string {
	return path.Join(out.Posts, doc.Identity+".html")
}
