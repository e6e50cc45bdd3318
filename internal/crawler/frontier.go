package crawler

import "github.com/samvad-hq/samvad-site-scraper/internal/urlnorm"

// crawlState is owned by a single Discover call.
// Invariants: visited ⊆ discovered, len(discovered) never exceeds the quota the caller enforces.
type crawlState struct {
	visited    map[urlnorm.NormalizedURL]struct{}
	discovered map[urlnorm.NormalizedURL]struct{}
	order      []urlnorm.NormalizedURL
	frontier   []urlnorm.NormalizedURL
}

func newCrawlState(root urlnorm.NormalizedURL) *crawlState {
	s := &crawlState{
		visited:    make(map[urlnorm.NormalizedURL]struct{}),
		discovered: make(map[urlnorm.NormalizedURL]struct{}),
	}
	s.discover(root)
	return s
}

// discover records u and queues it. It reports false if u was already known.
func (s *crawlState) discover(u urlnorm.NormalizedURL) bool {
	if s.isDiscovered(u) {
		return false
	}
	s.discovered[u] = struct{}{}
	s.order = append(s.order, u)
	s.frontier = append(s.frontier, u)
	return true
}

func (s *crawlState) pop() (urlnorm.NormalizedURL, bool) {
	if len(s.frontier) == 0 {
		return "", false
	}
	u := s.frontier[0]
	s.frontier = s.frontier[1:]
	return u, true
}

func (s *crawlState) pending() int { return len(s.frontier) }

func (s *crawlState) markVisited(u urlnorm.NormalizedURL) { s.visited[u] = struct{}{} }

func (s *crawlState) isVisited(u urlnorm.NormalizedURL) bool {
	_, ok := s.visited[u]
	return ok
}

func (s *crawlState) isDiscovered(u urlnorm.NormalizedURL) bool {
	_, ok := s.discovered[u]
	return ok
}

func (s *crawlState) discoveredCount() int { return len(s.order) }

func (s *crawlState) visitedCount() int { return len(s.visited) }

// discoveredURLs returns the discovered set in discovery order.
func (s *crawlState) discoveredURLs() []urlnorm.NormalizedURL {
	return append([]urlnorm.NormalizedURL(nil), s.order...)
}
