// Package scrape pulls replay ids, player rosters and lobby membership
// out of the Island Defense stats site's HTML, and normalizes the
// realm names it finds there (spec.md §4.4).
package scrape

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/islanddefense/w3g-platform/pkg/errs"
	"github.com/islanddefense/w3g-platform/pkg/model"
)

// Client fetches and parses the stats site's pages over HTTP.
type Client struct {
	http *http.Client
}

// NewClient builds a scrape client with a bounded request timeout.
func NewClient(timeout time.Duration) *Client {
	return &Client{http: &http.Client{Timeout: timeout}}
}

func (c *Client) get(ctx context.Context, url string) (*html.Node, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errs.IO(err, "build request for %s", url)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errs.IO(err, "fetch %s", url)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errs.IO(nil, "fetch %s: unexpected status %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errs.IO(err, "read body of %s", url)
	}

	root, err := html.Parse(strings.NewReader(string(body)))
	if err != nil {
		return nil, errs.IO(err, "parse html from %s", url)
	}
	return root, nil
}

// ReplayIndexIDs extracts every replay id linked from one page of the
// paginated replay index.
func (c *Client) ReplayIndexIDs(ctx context.Context, indexURL string, page int) ([]int64, error) {
	root, err := c.get(ctx, pageURL(indexURL, page))
	if err != nil {
		return nil, err
	}

	var ids []int64
	forEachNode(root, func(n *html.Node) {
		if n.Type != html.ElementNode || n.Data != "a" {
			return
		}
		href := attr(n, "href")
		id, ok := replayIDFromHref(href)
		if ok {
			ids = append(ids, id)
		}
	})
	return ids, nil
}

// GameRoster scrapes a per-game page's roster rows, returning each
// player's (name, realm). Realms are left un-normalized here; callers
// apply NormalizeRealm.
func (c *Client) GameRoster(ctx context.Context, gameURL string) ([]model.Player, error) {
	root, err := c.get(ctx, gameURL)
	if err != nil {
		return nil, err
	}
	return gameRows(root), nil
}

// LobbyRoster scrapes a live lobby page's membership rows the same way
// GameRoster scrapes a finished game's.
func (c *Client) LobbyRoster(ctx context.Context, lobbyURL string) ([]model.Player, error) {
	root, err := c.get(ctx, lobbyURL)
	if err != nil {
		return nil, err
	}
	return gameRows(root), nil
}

// gameRows walks every <tr class="GameRow"> and reads the (name,
// realm) pair from its first <a>, matching the stats site's markup.
func gameRows(root *html.Node) []model.Player {
	var players []model.Player
	forEachNode(root, func(n *html.Node) {
		if n.Type != html.ElementNode || n.Data != "tr" || !hasClass(n, "GameRow") {
			return
		}
		a := firstDescendant(n, "a")
		if a == nil {
			return
		}
		name, realm := splitNameRealm(textContent(a))
		if name == "" {
			return
		}
		players = append(players, model.Player{Name: name, Realm: realm})
	})
	return players
}

// splitNameRealm parses "name@realm" or "name (realm)" anchor text
// into its two parts; unparseable text is treated as a bare name.
func splitNameRealm(text string) (name, realm string) {
	text = strings.TrimSpace(text)
	if i := strings.Index(text, "@"); i >= 0 {
		return strings.TrimSpace(text[:i]), strings.TrimSpace(text[i+1:])
	}
	if i := strings.Index(text, "("); i >= 0 && strings.HasSuffix(text, ")") {
		return strings.TrimSpace(text[:i]), strings.TrimSpace(text[i+1 : len(text)-1])
	}
	return text, ""
}

func pageURL(base string, page int) string {
	sep := "?"
	if strings.Contains(base, "?") {
		sep = "&"
	}
	return base + sep + "page=" + strconv.Itoa(page)
}

func replayIDFromHref(href string) (int64, bool) {
	i := strings.LastIndex(href, "/")
	if i < 0 || i == len(href)-1 {
		return 0, false
	}
	id, err := strconv.ParseInt(href[i+1:], 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

func forEachNode(n *html.Node, fn func(*html.Node)) {
	fn(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		forEachNode(c, fn)
	}
}

func firstDescendant(n *html.Node, tag string) *html.Node {
	var found *html.Node
	forEachNode(n, func(c *html.Node) {
		if found == nil && c.Type == html.ElementNode && c.Data == tag {
			found = c
		}
	})
	return found
}

func hasClass(n *html.Node, class string) bool {
	for _, f := range strings.Fields(attr(n, "class")) {
		if f == class {
			return true
		}
	}
	return false
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	forEachNode(n, func(c *html.Node) {
		if c.Type == html.TextNode {
			sb.WriteString(c.Data)
		}
	})
	return sb.String()
}
