package handlers

import (
	"lingochat/friends"
	"lingochat/store"
)

// Package-level collaborators, wired once at startup.
var (
	users       *store.UserStore
	messages    *store.MessageStore
	graph       *friends.Graph
	recommender *friends.Recommender
)

func Init(u *store.UserStore, m *store.MessageStore, g *friends.Graph, r *friends.Recommender) {
	users = u
	messages = m
	graph = g
	recommender = r
}
