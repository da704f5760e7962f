package services

import (
	"context"
	"sync"

	"game_mate/config"
	"game_mate/logger"
	"game_mate/models"
)

// SyncService refreshes every linked user's Steam signal: profile
// visibility, top reviewed games, and top playtime games. A private profile
// clears both availability flags.
type SyncService struct {
	store   Store
	player  PlayerClient
	similar *SimilarUserFinder
	cfg     *config.Config
}

func NewSyncService(store Store, player PlayerClient, similar *SimilarUserFinder, cfg *config.Config) *SyncService {
	return &SyncService{store: store, player: player, similar: similar, cfg: cfg}
}

// SyncAll syncs every Steam-linked account with bounded concurrency.
// Per-account failures are logged and do not stop the run.
func (s *SyncService) SyncAll(ctx context.Context) error {
	accounts, err := s.store.ListSteamLinkedAccounts()
	if err != nil {
		return err
	}
	logger.Info("steam signal sync started", "accounts", len(accounts))

	var wg sync.WaitGroup
	semaphore := make(chan struct{}, s.cfg.Sync.Concurrency)
	for _, account := range accounts {
		wg.Add(1)
		go func(account models.Account) {
			defer wg.Done()
			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			if err := s.SyncAccount(ctx, account); err != nil {
				logger.Error("account sync failed", "account_id", account.ID, "error", err)
			}
		}(account)
	}
	wg.Wait()

	logger.Info("steam signal sync finished", "accounts", len(accounts))
	return nil
}

// SyncAccount refreshes one account's signal rows and flags, then drops
// its cached tag fingerprint so the next similarity scan recomputes it.
func (s *SyncService) SyncAccount(ctx context.Context, account models.Account) error {
	visible, err := s.player.ProfileVisible(ctx, account.SteamID)
	if err != nil {
		return err
	}
	if !visible {
		if err := s.store.UpsertSteamProfile(account.ID, false, false); err != nil {
			return err
		}
		s.similar.Invalidate(account.ID)
		return nil
	}

	reviewed, err := s.player.RecommendedAppIDs(ctx, account.SteamID, maxReviewedGames)
	if err != nil {
		logger.Warn("reviewed games unavailable", "account_id", account.ID, "error", err)
		reviewed = nil
	}
	played, err := s.player.TopPlaytimeAppIDs(ctx, account.SteamID, maxPlaytimeGames)
	if err != nil {
		logger.Warn("playtime games unavailable", "account_id", account.ID, "error", err)
		played = nil
	}

	if err := s.store.UpsertSteamProfile(account.ID, len(reviewed) > 0, len(played) > 0); err != nil {
		return err
	}
	for _, appID := range reviewed {
		if err := s.store.InsertReviewedGame(account.ID, appID); err != nil {
			return err
		}
	}
	for _, appID := range played {
		if err := s.store.InsertPlaytimeGame(account.ID, appID); err != nil {
			return err
		}
	}

	s.similar.Invalidate(account.ID)
	return nil
}
