package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Dosada05/tournament-fixtures/models"
	"github.com/google/uuid"
)

type publishedSchedule struct {
	TournamentID uuid.UUID      `json:"tournamentId"`
	Name         string         `json:"name"`
	Format       string         `json:"format"`
	PublishedAt  time.Time      `json:"publishedAt"`
	Matches      []models.Match `json:"matches"`
}

// SchedulePublisher writes a tournament's fixture list as a public JSON document.
type SchedulePublisher struct {
	store ObjectStore
	now   func() time.Time
}

func NewSchedulePublisher(store ObjectStore) *SchedulePublisher {
	return &SchedulePublisher{store: store, now: time.Now}
}

func ScheduleKey(tournamentID uuid.UUID) string {
	return fmt.Sprintf("tournaments/%s/fixtures.json", tournamentID)
}

// Publish overwrites the schedule document and returns its public URL.
func (p *SchedulePublisher) Publish(ctx context.Context, tournament *models.Tournament, matches []models.Match) (string, error) {
	doc := publishedSchedule{
		TournamentID: tournament.ID,
		Name:         tournament.Name,
		Format:       string(tournament.Format),
		PublishedAt:  p.now().UTC(),
		Matches:      matches,
	}
	body, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("failed to encode schedule for tournament %s: %w", tournament.ID, err)
	}

	stored, err := p.store.Put(ctx, ScheduleKey(tournament.ID), "application/json", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	return stored.URL, nil
}

// Unpublish removes the schedule document of a deleted tournament.
func (p *SchedulePublisher) Unpublish(ctx context.Context, tournamentID uuid.UUID) error {
	return p.store.Remove(ctx, ScheduleKey(tournamentID))
}
