package services

import (
	"context"

	"github.com/halftime-club/paddock-predict/models"
	"github.com/halftime-club/paddock-predict/repositories"
)

// Простые in-memory заглушки репозиториев для тестов сервисного слоя.

type mockPlayerRepo struct {
	players []models.Player
	created []models.Player
}

func (m *mockPlayerRepo) Create(ctx context.Context, player *models.Player) error {
	for _, p := range m.players {
		if p.Name == player.Name {
			return repositories.ErrPlayerNameConflict
		}
	}
	player.ID = len(m.players) + len(m.created) + 1
	m.created = append(m.created, *player)
	return nil
}

func (m *mockPlayerRepo) GetByID(ctx context.Context, id int) (*models.Player, error) {
	for i := range m.players {
		if m.players[i].ID == id {
			p := m.players[i]
			return &p, nil
		}
	}
	return nil, repositories.ErrPlayerNotFound
}

func (m *mockPlayerRepo) GetByName(ctx context.Context, name string) (*models.Player, error) {
	for i := range m.players {
		if m.players[i].Name == name {
			p := m.players[i]
			return &p, nil
		}
	}
	return nil, repositories.ErrPlayerNotFound
}

func (m *mockPlayerRepo) UpdateAvatarKey(ctx context.Context, id int, avatarKey *string) error {
	for i := range m.players {
		if m.players[i].ID == id {
			m.players[i].AvatarKey = avatarKey
			return nil
		}
	}
	return repositories.ErrPlayerNotFound
}

func (m *mockPlayerRepo) List(ctx context.Context) ([]models.Player, error) {
	return append([]models.Player(nil), m.players...), nil
}

type mockRaceRepo struct {
	races         []models.Race
	statusUpdates map[int]models.RaceStatus
}

func (m *mockRaceRepo) GetByID(ctx context.Context, id int) (*models.Race, error) {
	for i := range m.races {
		if m.races[i].ID == id {
			r := m.races[i]
			return &r, nil
		}
	}
	return nil, repositories.ErrRaceNotFound
}

func (m *mockRaceRepo) ListBySeason(ctx context.Context, seasonYear int) ([]models.Race, error) {
	var out []models.Race
	for _, r := range m.races {
		if r.SeasonYear == seasonYear {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *mockRaceRepo) UpsertByRound(ctx context.Context, race *models.Race) error {
	for i := range m.races {
		if m.races[i].SeasonYear == race.SeasonYear && m.races[i].RoundNumber == race.RoundNumber {
			race.ID = m.races[i].ID
			race.Status = m.races[i].Status
			m.races[i] = *race
			return nil
		}
	}
	race.ID = len(m.races) + 1
	m.races = append(m.races, *race)
	return nil
}

func (m *mockRaceRepo) UpdateStatus(ctx context.Context, id int, status models.RaceStatus) error {
	if m.statusUpdates == nil {
		m.statusUpdates = make(map[int]models.RaceStatus)
	}
	for i := range m.races {
		if m.races[i].ID == id {
			m.races[i].Status = status
			m.statusUpdates[id] = status
			return nil
		}
	}
	return repositories.ErrRaceNotFound
}

type mockPredictionRepo struct {
	predictions []models.RacePrediction
	late        []models.RacePrediction
	upserted    []models.RacePrediction
}

func (m *mockPredictionRepo) Upsert(ctx context.Context, prediction *models.RacePrediction) error {
	prediction.ID = len(m.upserted) + 1
	m.upserted = append(m.upserted, *prediction)
	return nil
}

func (m *mockPredictionRepo) GetByPlayerAndRace(ctx context.Context, playerID, raceID int) (*models.RacePrediction, error) {
	for i := range m.predictions {
		if m.predictions[i].PlayerID == playerID && m.predictions[i].RaceID == raceID {
			p := m.predictions[i]
			return &p, nil
		}
	}
	return nil, repositories.ErrPredictionNotFound
}

func (m *mockPredictionRepo) ListByRace(ctx context.Context, raceID int) ([]models.RacePrediction, error) {
	var out []models.RacePrediction
	for _, p := range m.predictions {
		if p.RaceID == raceID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *mockPredictionRepo) ListLateBySeason(ctx context.Context, seasonYear int) ([]models.RacePrediction, error) {
	return append([]models.RacePrediction(nil), m.late...), nil
}

type mockResultRepo struct {
	byType        map[models.ResultType][]models.RaceResult
	seasonResults []models.RaceResult
	replaced      map[models.ResultType][]models.RaceResult
}

func (m *mockResultRepo) ListByRace(ctx context.Context, raceID int, resultType models.ResultType) ([]models.RaceResult, error) {
	return append([]models.RaceResult(nil), m.byType[resultType]...), nil
}

func (m *mockResultRepo) ListBySeason(ctx context.Context, seasonYear int) ([]models.RaceResult, error) {
	return append([]models.RaceResult(nil), m.seasonResults...), nil
}

func (m *mockResultRepo) ReplaceForRace(ctx context.Context, raceID int, resultType models.ResultType, results []models.RaceResult) error {
	if m.replaced == nil {
		m.replaced = make(map[models.ResultType][]models.RaceResult)
	}
	m.replaced[resultType] = results
	if m.byType == nil {
		m.byType = make(map[models.ResultType][]models.RaceResult)
	}
	m.byType[resultType] = results
	return nil
}

type mockGloriousRepo struct {
	entries  []models.GloriousSevenEntry
	replaced []models.GloriousSevenEntry
}

func (m *mockGloriousRepo) ListByRace(ctx context.Context, raceID int) ([]models.GloriousSevenEntry, error) {
	return append([]models.GloriousSevenEntry(nil), m.entries...), nil
}

func (m *mockGloriousRepo) ReplaceForRace(ctx context.Context, raceID int, entries []models.GloriousSevenEntry) error {
	m.replaced = entries
	m.entries = entries
	return nil
}

type mockScoreRepo struct {
	seasonScores    []models.PlayerScore
	raceScores      []models.PlayerScore
	storedScores    []models.PlayerScore
	storedPenalties []models.Penalty
	replaceCalls    int
}

func (m *mockScoreRepo) ListByRace(ctx context.Context, raceID int) ([]models.PlayerScore, error) {
	return append([]models.PlayerScore(nil), m.raceScores...), nil
}

func (m *mockScoreRepo) ListBySeason(ctx context.Context, seasonYear int) ([]models.PlayerScore, error) {
	return append([]models.PlayerScore(nil), m.seasonScores...), nil
}

func (m *mockScoreRepo) ReplaceForRace(ctx context.Context, scores []models.PlayerScore, penalties []models.Penalty) error {
	m.replaceCalls++
	m.storedScores = scores
	m.storedPenalties = penalties
	return nil
}

func (m *mockScoreRepo) ListPenaltiesByPlayer(ctx context.Context, playerID int) ([]models.Penalty, error) {
	var out []models.Penalty
	for _, p := range m.storedPenalties {
		if p.PlayerID == playerID {
			out = append(out, p)
		}
	}
	return out, nil
}

type mockChampionshipRepo struct {
	predictions []models.ChampionshipPrediction
	result      *models.ChampionshipResult
	upsertedRes *models.ChampionshipResult
}

func (m *mockChampionshipRepo) UpsertPrediction(ctx context.Context, prediction *models.ChampionshipPrediction) error {
	prediction.ID = len(m.predictions) + 1
	m.predictions = append(m.predictions, *prediction)
	return nil
}

func (m *mockChampionshipRepo) GetPredictionByPlayer(ctx context.Context, playerID, seasonYear int) (*models.ChampionshipPrediction, error) {
	for i := range m.predictions {
		if m.predictions[i].PlayerID == playerID && m.predictions[i].SeasonYear == seasonYear {
			p := m.predictions[i]
			return &p, nil
		}
	}
	return nil, repositories.ErrChampionshipPredictionNotFound
}

func (m *mockChampionshipRepo) ListPredictionsBySeason(ctx context.Context, seasonYear int) ([]models.ChampionshipPrediction, error) {
	var out []models.ChampionshipPrediction
	for _, p := range m.predictions {
		if p.SeasonYear == seasonYear {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *mockChampionshipRepo) UpsertResult(ctx context.Context, result *models.ChampionshipResult) error {
	result.ID = 1
	m.result = result
	m.upsertedRes = result
	return nil
}

func (m *mockChampionshipRepo) GetResultBySeason(ctx context.Context, seasonYear int) (*models.ChampionshipResult, error) {
	if m.result == nil || m.result.SeasonYear != seasonYear {
		return nil, repositories.ErrChampionshipResultNotFound
	}
	r := *m.result
	return &r, nil
}

type mockRiderRepo struct {
	riders []models.Rider
}

func (m *mockRiderRepo) GetByID(ctx context.Context, id int) (*models.Rider, error) {
	for i := range m.riders {
		if m.riders[i].ID == id {
			r := m.riders[i]
			return &r, nil
		}
	}
	return nil, repositories.ErrRiderNotFound
}

func (m *mockRiderRepo) List(ctx context.Context, activeOnly bool) ([]models.Rider, error) {
	var out []models.Rider
	for _, r := range m.riders {
		if activeOnly && !r.Active {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (m *mockRiderRepo) UpsertByExternalID(ctx context.Context, rider *models.Rider) error {
	for i := range m.riders {
		if m.riders[i].ExternalID == rider.ExternalID {
			rider.ID = m.riders[i].ID
			m.riders[i] = *rider
			return nil
		}
	}
	rider.ID = len(m.riders) + 1
	m.riders = append(m.riders, *rider)
	return nil
}

func (m *mockRiderRepo) DeactivateExcept(ctx context.Context, activeExternalIDs []string) (int, error) {
	keep := make(map[string]bool, len(activeExternalIDs))
	for _, id := range activeExternalIDs {
		keep[id] = true
	}
	deactivated := 0
	for i := range m.riders {
		if m.riders[i].Active && !keep[m.riders[i].ExternalID] {
			m.riders[i].Active = false
			deactivated++
		}
	}
	return deactivated, nil
}
