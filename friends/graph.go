// Package friends owns the friendship graph: edge lifecycle, the
// authorization predicate for messaging, and friend recommendations.
package friends

import (
	"context"
	"errors"
	"fmt"

	"lingochat/models"
	"lingochat/store"
)

// ErrSelfRequest rejects friend requests a user sends to themselves.
var ErrSelfRequest = errors.New("cannot send friend request to yourself")

// Outcome classifies the result of a friend request.
type Outcome int

const (
	// OutcomeCreated: a new pending edge was created.
	OutcomeCreated Outcome = iota
	// OutcomeAccepted: the target had already asked; the edge was
	// auto-accepted (symmetric confirmation).
	OutcomeAccepted
	// OutcomeAlreadyFriends: an accepted edge already exists.
	OutcomeAlreadyFriends
	// OutcomeDuplicateRequest: the same requester already has a pending
	// edge to this target; idempotent no-op.
	OutcomeDuplicateRequest
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCreated:
		return "created"
	case OutcomeAccepted:
		return "accepted"
	case OutcomeAlreadyFriends:
		return "already_friends"
	case OutcomeDuplicateRequest:
		return "duplicate_request"
	}
	return fmt.Sprintf("outcome(%d)", int(o))
}

// EdgeStore is the storage the graph needs. *store.FriendshipStore
// satisfies it; tests use in-memory fakes.
type EdgeStore interface {
	FindBetween(ctx context.Context, a, b string) (*models.Friendship, error)
	CreatePending(ctx context.Context, from, to string) (*models.Friendship, error)
	Accept(ctx context.Context, id string) error
	ListAccepted(ctx context.Context) ([]models.Friendship, error)
	ListAcceptedFor(ctx context.Context, userID string) ([]models.Friendship, error)
	ListPendingTo(ctx context.Context, userID string) ([]models.Friendship, error)
	ListPendingInvolving(ctx context.Context, userID string) ([]models.Friendship, error)
}

type Graph struct {
	edges EdgeStore
}

func NewGraph(edges EdgeStore) *Graph {
	return &Graph{edges: edges}
}

// AreFriends reports whether an accepted edge connects a and b, in either
// direction.
func (g *Graph) AreFriends(ctx context.Context, a, b string) (bool, error) {
	edge, err := g.edges.FindBetween(ctx, a, b)
	if errors.Is(err, store.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return edge.Accepted, nil
}

// PendingBetween returns the pending edge between a and b in either
// direction, or nil if there is none.
func (g *Graph) PendingBetween(ctx context.Context, a, b string) (*models.Friendship, error) {
	edge, err := g.edges.FindBetween(ctx, a, b)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if edge.Accepted {
		return nil, nil
	}
	return edge, nil
}

// Request runs the friend-request state machine for requester -> target.
// A reverse pending request is auto-accepted; a same-direction pending
// request is an idempotent no-op. Losing a creation race against a
// concurrent request for the same pair reclassifies against the winner's
// row instead of failing.
func (g *Graph) Request(ctx context.Context, requester, target string) (Outcome, *models.Friendship, error) {
	if requester == target {
		return 0, nil, ErrSelfRequest
	}

	edge, err := g.edges.FindBetween(ctx, requester, target)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return 0, nil, err
	}
	if err == nil {
		return g.classifyExisting(ctx, requester, edge)
	}

	created, err := g.edges.CreatePending(ctx, requester, target)
	if errors.Is(err, store.ErrDuplicateEdge) {
		edge, err = g.edges.FindBetween(ctx, requester, target)
		if err != nil {
			return 0, nil, err
		}
		return g.classifyExisting(ctx, requester, edge)
	}
	if err != nil {
		return 0, nil, err
	}
	return OutcomeCreated, created, nil
}

func (g *Graph) classifyExisting(ctx context.Context, requester string, edge *models.Friendship) (Outcome, *models.Friendship, error) {
	if edge.Accepted {
		return OutcomeAlreadyFriends, edge, nil
	}
	if edge.FromUserID == requester {
		return OutcomeDuplicateRequest, edge, nil
	}

	// The target asked first; this request is the acceptance.
	err := g.edges.Accept(ctx, edge.ID)
	if errors.Is(err, store.ErrNotFound) {
		// Accepted concurrently; same end state.
		edge.Accepted = true
		return OutcomeAccepted, edge, nil
	}
	if err != nil {
		return 0, nil, err
	}
	edge.Accepted = true
	return OutcomeAccepted, edge, nil
}

// AcceptFrom accepts the pending request fromUser sent to userID. Only the
// non-requesting party may accept.
func (g *Graph) AcceptFrom(ctx context.Context, userID, fromUser string) (*models.Friendship, error) {
	edge, err := g.edges.FindBetween(ctx, userID, fromUser)
	if err != nil {
		return nil, err
	}
	if edge.Accepted {
		return edge, nil
	}
	if edge.FromUserID != fromUser {
		return nil, store.ErrNotFound
	}
	if err := g.edges.Accept(ctx, edge.ID); err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}
	edge.Accepted = true
	return edge, nil
}

// FriendIDs returns the ids of userID's accepted friends.
func (g *Graph) FriendIDs(ctx context.Context, userID string) ([]string, error) {
	edges, err := g.edges.ListAcceptedFor(ctx, userID)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(edges))
	for i := range edges {
		ids = append(ids, edges[i].Other(userID))
	}
	return ids, nil
}

// PendingTo returns pending requests addressed to userID, newest first.
func (g *Graph) PendingTo(ctx context.Context, userID string) ([]models.Friendship, error) {
	return g.edges.ListPendingTo(ctx, userID)
}

// PendingInvolving returns pending edges touching userID in either
// direction.
func (g *Graph) PendingInvolving(ctx context.Context, userID string) ([]models.Friendship, error) {
	return g.edges.ListPendingInvolving(ctx, userID)
}

// Adjacency builds the symmetric accepted-edges adjacency view from all
// friendship rows. Rebuilt from scratch on every call; always derivable
// from the rows alone.
func (g *Graph) Adjacency(ctx context.Context) (map[string]map[string]bool, error) {
	edges, err := g.edges.ListAccepted(ctx)
	if err != nil {
		return nil, err
	}

	adj := make(map[string]map[string]bool)
	add := func(a, b string) {
		if adj[a] == nil {
			adj[a] = make(map[string]bool)
		}
		adj[a][b] = true
	}
	for i := range edges {
		add(edges[i].FromUserID, edges[i].ToUserID)
		add(edges[i].ToUserID, edges[i].FromUserID)
	}
	return adj, nil
}
