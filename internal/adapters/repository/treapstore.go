package repository

import (
	"context"
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/okian/paddock/pkg/metrics"
)

// Treap-based, in-memory Store implementation.
//
// Ordering: rating DESC, then teamID ASC (deterministic).
// The BST comparator treats "less" as "ranks earlier", so in-order traversal
// produces the standings from best to worst.

// ratingScale fixes ratings to 9 decimal places so that sums that differ only
// by float rounding compare equal.
const ratingScale = 1_000_000_000

type ratingFP int64

func toFixedPoint(x float64) ratingFP {
	return ratingFP(math.Round(x * ratingScale))
}

func toFloat(x ratingFP) float64 {
	return float64(x) / ratingScale
}

// record stores the fixed-point rating plus metadata for a team.
type record struct {
	rating ratingFP
	name   string
}

// treap node
type node struct {
	id     string
	rating ratingFP
	prio   uint64
	left   *node
	right  *node
	size   int
}

func nsize(n *node) int {
	if n == nil {
		return 0
	}
	return n.size
}

func fix(n *node) {
	if n != nil {
		n.size = 1 + nsize(n.left) + nsize(n.right)
	}
}

// less returns true if (aRating, aID) should appear before (bRating, bID)
// in the standings (higher ranks first).
func less(aRating ratingFP, aID string, bRating ratingFP, bID string) bool {
	if aRating != bRating {
		return aRating > bRating
	}
	return aID < bID
}

func rotateRight(y *node) *node {
	x := y.left
	t2 := x.right
	x.right = y
	y.left = t2
	fix(y)
	fix(x)
	return x
}

func rotateLeft(x *node) *node {
	y := x.right
	t2 := y.left
	y.left = x
	x.right = t2
	fix(x)
	fix(y)
	return y
}

func insert(n *node, id string, r ratingFP, prio uint64) *node {
	if n == nil {
		return &node{id: id, rating: r, prio: prio, size: 1}
	}
	if less(r, id, n.rating, n.id) {
		n.left = insert(n.left, id, r, prio)
		if n.left.prio > n.prio {
			n = rotateRight(n)
		}
	} else {
		n.right = insert(n.right, id, r, prio)
		if n.right.prio > n.prio {
			n = rotateLeft(n)
		}
	}
	fix(n)
	return n
}

func deleteNode(n *node, id string, r ratingFP) *node {
	if n == nil {
		return nil
	}
	switch {
	case r == n.rating && id == n.id:
		// Merge children by rotating the higher priority up until leaf.
		if n.left == nil {
			return n.right
		}
		if n.right == nil {
			return n.left
		}
		if n.left.prio > n.right.prio {
			n = rotateRight(n)
			n.right = deleteNode(n.right, id, r)
		} else {
			n = rotateLeft(n)
			n.left = deleteNode(n.left, id, r)
		}
	case less(r, id, n.rating, n.id):
		n.left = deleteNode(n.left, id, r)
	default:
		n.right = deleteNode(n.right, id, r)
	}
	fix(n)
	return n
}

// countAbove returns the number of nodes rated strictly higher than r.
func countAbove(n *node, r ratingFP) int {
	count := 0
	for n != nil {
		if n.rating > r {
			count += nsize(n.left) + 1
			n = n.right
		} else {
			n = n.left
		}
	}
	return count
}

// collectTopN appends up to limit entries in rank order (highest ratings first).
func collectTopN(n *node, limit int, records map[string]record, out *[]Entry) {
	if n == nil || len(*out) >= limit {
		return
	}
	collectTopN(n.left, limit, records, out)
	if len(*out) < limit {
		if rec, ok := records[n.id]; ok {
			*out = append(*out, Entry{TeamID: n.id, TeamName: rec.name, Rating: toFloat(rec.rating)})
		}
	}
	if len(*out) < limit {
		collectTopN(n.right, limit, records, out)
	}
}

// TreapStore keeps the standings ordered in a treap with subtree sizes.
// It is safe for concurrent use.
type TreapStore struct {
	mu      sync.RWMutex
	root    *node
	byID    map[string]record
	rng     *rand.Rand
	metrics bool
}

var _ Store = (*TreapStore)(nil)

// NewTreapStore constructs a treap store with configuration options.
func NewTreapStore(opts ...Option) *TreapStore {
	s := &TreapStore{
		byID:    make(map[string]record),
		rng:     rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		metrics: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Set implements Store.Set with O(log n) expected time.
func (s *TreapStore) Set(ctx context.Context, teamID, teamName string, rating float64) error {
	if math.IsNaN(rating) || math.IsInf(rating, 0) {
		s.recordError("invalid_rating")
		return ErrInvalidRating
	}
	start := time.Now()
	r := toFixedPoint(rating)

	s.mu.Lock()
	if old, ok := s.byID[teamID]; ok {
		if old.rating == r && old.name == teamName {
			s.mu.Unlock()
			return nil
		}
		s.root = deleteNode(s.root, teamID, old.rating)
	}
	s.byID[teamID] = record{rating: r, name: teamName}
	s.root = insert(s.root, teamID, r, s.rng.Uint64())
	count := len(s.byID)
	s.mu.Unlock()

	if s.metrics {
		metrics.RecordRepositoryUpdateLatency(float64(time.Since(start).Microseconds()) / 1000)
		metrics.UpdateStandingsTeams(count)
	}
	return nil
}

// Rank returns the current rank and rating for a team in O(log n). Teams
// with equal ratings share a rank and the next rank skips accordingly.
func (s *TreapStore) Rank(ctx context.Context, teamID string) (Entry, error) {
	start := time.Now()
	defer s.recordQuery(start)

	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.byID[teamID]
	if !ok {
		s.recordError("not_found")
		return Entry{}, ErrNotFound
	}
	return Entry{
		Rank:     countAbove(s.root, rec.rating) + 1,
		TeamID:   teamID,
		TeamName: rec.name,
		Rating:   toFloat(rec.rating),
	}, nil
}

// TopN returns the top N entries ordered by rating desc.
func (s *TreapStore) TopN(ctx context.Context, n int) ([]Entry, error) {
	start := time.Now()
	defer s.recordQuery(start)

	if n < 1 {
		s.recordError("invalid_limit")
		return nil, ErrInvalidLimit
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Entry, 0, min(n, len(s.byID)))
	collectTopN(s.root, n, s.byID, &out)
	assignRanksWithTies(out)
	return out, nil
}

// Count returns the total number of teams.
func (s *TreapStore) Count(ctx context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byID)
}

func (s *TreapStore) recordQuery(start time.Time) {
	if s.metrics {
		metrics.RecordRepositoryQueryLatency(float64(time.Since(start).Microseconds()) / 1000)
	}
}

func (s *TreapStore) recordError(kind string) {
	if s.metrics {
		metrics.RecordErrorByComponent("repository", kind)
	}
}

// assignRanksWithTies assigns competition ranks to entries already in
// standings order: equal ratings share a rank and the next distinct rating
// takes its 1-based position.
func assignRanksWithTies(entries []Entry) {
	for i := range entries {
		if i > 0 && entries[i].Rating == entries[i-1].Rating {
			entries[i].Rank = entries[i-1].Rank
			continue
		}
		entries[i].Rank = i + 1
	}
}
