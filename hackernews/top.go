package hackernews

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/techstacks/newsroom/model"
	"github.com/techstacks/newsroom/utils"
)

var (
	pointsRe     = regexp.MustCompile(`(\d+)\s*point`)
	// HN separates the count from "comments" with a non-breaking space.
	commentCntRe = regexp.MustCompile(`(\d+)[\s\x{00a0}]*comment`)
)

// FetchFrontPage scrapes one page of the HN front page and returns its
// posts sorted by points, highest first. page 0 means the default page.
func (c *Client) FetchFrontPage(ctx context.Context, page int) ([]model.Post, error) {
	url := c.siteBase + "/"
	if page > 0 {
		url = fmt.Sprintf("%s/?p=%d", c.siteBase, page)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d from %s", resp.StatusCode, url)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing front page: %w", err)
	}
	return c.parseFrontPage(doc), nil
}

func (c *Client) parseFrontPage(doc *goquery.Document) []model.Post {
	var posts []model.Post

	doc.Find("tr.athing").Each(func(_ int, row *goquery.Selection) {
		post := model.Post{ID: row.AttrOr("id", "")}

		titleLink := row.Find("span.titleline > a").First()
		post.Title = strings.TrimSpace(titleLink.Text())
		post.URL = titleLink.AttrOr("href", "")
		if post.URL != "" && !strings.HasPrefix(post.URL, "http") {
			post.URL = c.siteBase + "/" + post.URL
		}

		// Points and the comments link live in the subtext row that
		// immediately follows the title row.
		subtext := row.Next().Find("td.subtext")
		if m := pointsRe.FindStringSubmatch(subtext.Find("span.score").Text()); m != nil {
			post.Points, _ = strconv.Atoi(m[1])
		}
		subtext.Find("a").Each(func(_ int, a *goquery.Selection) {
			href := a.AttrOr("href", "")
			if !strings.Contains(href, "item?id=") {
				return
			}
			post.CommentsURL = c.siteBase + "/" + href
			if m := commentCntRe.FindStringSubmatch(a.Text()); m != nil {
				post.Comments, _ = strconv.Atoi(m[1])
			}
		})

		if post.ID == "" {
			if id, err := ParseItemID(post.CommentsURL); err == nil {
				post.ID = strconv.Itoa(id)
			}
		}
		if post.ID == "" || post.Title == "" || post.URL == "" {
			return
		}
		post.Slug = utils.Slugify(post.Title)
		posts = append(posts, post)
	})

	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].Points > posts[j].Points
	})
	return posts
}
