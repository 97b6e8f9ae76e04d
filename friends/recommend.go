package friends

import (
	"context"
	"sort"
)

const (
	DefaultRecommendDepth   = 2
	DefaultRecommendResults = 10
)

// Recommendation is a candidate friend with the number of friends shared
// with the requesting user.
type Recommendation struct {
	UserID        string `json:"user_id"`
	MutualFriends int    `json:"mutual_friends"`
}

// Recommender ranks friends-of-friends by mutual-friend count.
type Recommender struct {
	graph *Graph
}

func NewRecommender(graph *Graph) *Recommender {
	return &Recommender{graph: graph}
}

// Recommend walks the accepted-friendship graph breadth-first from userID
// up to maxDepth hops and scores every reachable user beyond direct
// friends by |friends(userID) ∩ friends(candidate)|, keeping the maximum
// score seen across discovery paths. Excluded: the user, direct friends,
// and anyone with a pending edge to or from the user. Results are sorted
// by mutual count descending, then user id ascending, truncated to
// maxResults. The snapshot is one consistent read; it may trail a
// concurrent edge write by one edge.
func (r *Recommender) Recommend(ctx context.Context, userID string, maxDepth, maxResults int) ([]Recommendation, error) {
	if maxDepth <= 0 {
		maxDepth = DefaultRecommendDepth
	}
	if maxResults <= 0 {
		maxResults = DefaultRecommendResults
	}

	adj, err := r.graph.Adjacency(ctx)
	if err != nil {
		return nil, err
	}

	pending, err := r.graph.PendingInvolving(ctx, userID)
	if err != nil {
		return nil, err
	}

	excluded := map[string]bool{userID: true}
	for friend := range adj[userID] {
		excluded[friend] = true
	}
	for i := range pending {
		excluded[pending[i].Other(userID)] = true
	}

	best := make(map[string]int)
	visited := map[string]bool{userID: true}
	frontier := []string{userID}

	for depth := 1; depth <= maxDepth && len(frontier) > 0; depth++ {
		var next []string
		for _, node := range frontier {
			for neighbor := range adj[node] {
				if visited[neighbor] {
					continue
				}
				visited[neighbor] = true
				next = append(next, neighbor)

				if excluded[neighbor] {
					continue
				}
				count := mutualCount(adj[userID], adj[neighbor])
				if prev, ok := best[neighbor]; !ok || count > prev {
					best[neighbor] = count
				}
			}
		}
		frontier = next
	}

	recs := make([]Recommendation, 0, len(best))
	for id, count := range best {
		recs = append(recs, Recommendation{UserID: id, MutualFriends: count})
	}
	sort.Slice(recs, func(i, j int) bool {
		if recs[i].MutualFriends != recs[j].MutualFriends {
			return recs[i].MutualFriends > recs[j].MutualFriends
		}
		return recs[i].UserID < recs[j].UserID
	})
	if len(recs) > maxResults {
		recs = recs[:maxResults]
	}
	return recs, nil
}

func mutualCount(a, b map[string]bool) int {
	if len(b) < len(a) {
		a, b = b, a
	}
	count := 0
	for id := range a {
		if b[id] {
			count++
		}
	}
	return count
}
