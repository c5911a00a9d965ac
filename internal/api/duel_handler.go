package api

import (
	"github.com/M1tsumi/arc-duels/internal/duel"
	"github.com/M1tsumi/arc-duels/internal/storage"
)

// DuelHandler groups all duel-related HTTP handlers.
type DuelHandler struct {
	duels *duel.Service
	repo  storage.Repository
}

// NewDuelHandler creates a DuelHandler backed by the duel service and the
// archive repository.
func NewDuelHandler(duels *duel.Service, repo storage.Repository) *DuelHandler {
	return &DuelHandler{duels: duels, repo: repo}
}
