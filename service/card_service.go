// file: service/card_service.go

package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"card-bank-api/model"
	"card-bank-api/repository"

	"github.com/redis/go-redis/v9"
)

// ErrNoCards is returned when a user has no cards at all.
var ErrNoCards = errors.New("no cards found for this user")

// CardService serves the card-listing read path with a cache-aside strategy.
// Card numbers and IBANs never change, and the balance in this response is a
// point-in-time snapshot, so a short TTL is the only invalidation needed.
type CardService struct {
	repo        repository.ICardRepository
	redisClient *redis.Client
}

func NewCardService(repo repository.ICardRepository, redisClient *redis.Client) *CardService {
	return &CardService{
		repo:        repo,
		redisClient: redisClient,
	}
}

// ListCardsForUser returns every card of the user joined with its account.
func (s *CardService) ListCardsForUser(ctx context.Context, userID int) ([]*model.CardSummary, error) {
	cacheKey := fmt.Sprintf("cards:%d", userID)

	if s.redisClient != nil {
		cached, err := s.redisClient.Get(ctx, cacheKey).Result()
		if err == nil {
			var summaries []*model.CardSummary
			if err := json.Unmarshal([]byte(cached), &summaries); err == nil {
				return summaries, nil
			}
		}
	}

	summaries, err := s.repo.ListCardSummariesByUserID(userID)
	if err != nil {
		return nil, err
	}
	if len(summaries) == 0 {
		return nil, ErrNoCards
	}

	if s.redisClient != nil {
		if data, err := json.Marshal(summaries); err == nil {
			s.redisClient.Set(ctx, cacheKey, data, 1*time.Minute)
		}
	}

	return summaries, nil
}
