package services

import (
	"game_mate/models"
	"game_mate/repository"
)

// dbStore implements Store over the repository package.
type dbStore struct{}

// NewStore returns the MySQL-backed Store.
func NewStore() Store { return dbStore{} }

func (dbStore) GetAccountByID(id int64) (*models.Account, error) {
	return repository.GetAccountByID(id)
}

func (dbStore) CountAccounts() (int, error) {
	return repository.CountAccounts()
}

func (dbStore) ListAccountIDs() ([]int64, error) {
	return repository.ListAccountIDs()
}

func (dbStore) ListSteamLinkedAccounts() ([]models.Account, error) {
	return repository.ListSteamLinkedAccounts()
}

func (dbStore) ListInterestTagGroups(accountID int64) ([][]int64, error) {
	return repository.ListInterestTagGroups(accountID)
}

func (dbStore) GetSteamProfile(accountID int64) (*models.SteamProfile, error) {
	return repository.GetSteamProfile(accountID)
}

func (dbStore) UpsertSteamProfile(accountID int64, isReview, isPlaytime bool) error {
	return repository.UpsertSteamProfile(accountID, isReview, isPlaytime)
}

func (dbStore) ListReviewedAppIDs(accountID int64) ([]int64, error) {
	return repository.ListReviewedAppIDs(accountID)
}

func (dbStore) ListPlaytimeAppIDs(accountID int64) ([]int64, error) {
	return repository.ListPlaytimeAppIDs(accountID)
}

func (dbStore) InsertReviewedGame(accountID, appID int64) error {
	return repository.InsertReviewedGame(accountID, appID)
}

func (dbStore) InsertPlaytimeGame(accountID, appID int64) error {
	return repository.InsertPlaytimeGame(accountID, appID)
}

func (dbStore) GetTagOptions() ([]models.TagOption, error) {
	return repository.GetTagOptions()
}

func (dbStore) GetTagOptionsBySteamIDs(steamTagIDs []int64) ([]models.TagOption, error) {
	return repository.GetTagOptionsBySteamIDs(steamTagIDs)
}

func (dbStore) GetSteamTagIDsByNamesEN(names []string) ([]int64, error) {
	return repository.GetSteamTagIDsByNamesEN(names)
}

func (dbStore) GetInterestTagNamesEN(accountID int64) ([]string, error) {
	return repository.GetInterestTagNamesEN(accountID)
}

func (dbStore) ListScorableGames(maxAge int) ([]models.Game, error) {
	return repository.ListScorableGames(maxAge)
}
