package suggest

import (
	"context"
	"sort"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/bastiangx/pathserve/pkg/highlight"
	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"
)

// TrieSource is an in-memory prefix source. A token without a slash matches
// paths whose basename starts with it; a token with a slash matches paths that
// start with it. Matching ignores case and results come shortest path first.
type TrieSource struct {
	byBase *patricia.Trie
	byPath *patricia.Trie
	count  int
	mu     sync.RWMutex
}

func NewTrieSource(paths []string) *TrieSource {
	s := &TrieSource{
		byBase: patricia.NewTrie(),
		byPath: patricia.NewTrie(),
	}
	for _, p := range paths {
		s.Add(p)
	}
	return s
}

// Add indexes path. Empty and duplicate paths are ignored.
func (s *TrieSource) Add(path string) {
	if path == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	lower := strings.ToLower(path)
	if !appendItem(s.byPath, lower, path) {
		return
	}
	appendItem(s.byBase, strings.ToLower(basename(path)), path)
	s.count++
}

// appendItem adds path to the bucket stored under key and reports whether it
// was not there yet.
func appendItem(trie *patricia.Trie, key, path string) bool {
	k := patricia.Prefix(key)
	bucket, _ := trie.Get(k).([]string)
	for _, existing := range bucket {
		if existing == path {
			return false
		}
	}
	trie.Set(k, append(bucket, path))
	return true
}

func (s *TrieSource) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.count
}

func (s *TrieSource) Suggest(ctx context.Context, token string, limit int) ([]Candidate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if token == "" {
		return nil, nil
	}

	trie, full := s.byBase, false
	if strings.Contains(token, "/") {
		trie, full = s.byPath, true
	}
	tokenLen := utf8.RuneCountInString(token)

	s.mu.RLock()
	var matches []string
	err := trie.VisitSubtree(patricia.Prefix(strings.ToLower(token)), func(_ patricia.Prefix, item patricia.Item) error {
		matches = append(matches, item.([]string)...)
		return nil
	})
	s.mu.RUnlock()
	if err != nil {
		log.Errorf("Error visiting path trie: %v", err)
		return nil, err
	}

	sort.Slice(matches, func(i, j int) bool {
		if len(matches[i]) != len(matches[j]) {
			return len(matches[i]) < len(matches[j])
		}
		return matches[i] < matches[j]
	})
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}

	out := make([]Candidate, 0, len(matches))
	for _, p := range matches {
		offset := 0
		if !full {
			offset = utf8.RuneCountInString(p) - utf8.RuneCountInString(basename(p))
		}
		end := min(offset+tokenLen, utf8.RuneCountInString(p)) - 1
		out = append(out, NewCandidate(p, highlight.Range{Start: offset, End: end}))
	}
	return out, nil
}

func basename(path string) string {
	return path[strings.LastIndex(path, "/")+1:]
}
