package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/krys2fa/gbrapp-sub001/internal/model/entity"
	"github.com/krys2fa/gbrapp-sub001/internal/pricefeed"
	"github.com/krys2fa/gbrapp-sub001/internal/repository"
	"github.com/redis/go-redis/v9"
)

const priceCacheTTL = 5 * time.Minute

// PriceService manages the daily commodity prices used for valuations.
type PriceService struct {
	repo *repository.PriceRepository
	rdb  *redis.Client
	feed *pricefeed.Client
}

func NewPriceService(repo *repository.PriceRepository, rdb *redis.Client, feed *pricefeed.Client) *PriceService {
	return &PriceService{repo: repo, rdb: rdb, feed: feed}
}

// SetDailyPriceRequest records the prices for one calendar date.
type SetDailyPriceRequest struct {
	Date           time.Time `json:"date" binding:"required"`
	GoldPriceUsd   float64   `json:"gold_price_usd" binding:"required,gt=0"`
	SilverPriceUsd float64   `json:"silver_price_usd" binding:"gte=0"`
	ExchangeRate   float64   `json:"exchange_rate" binding:"required,gt=0"`
}

// GetByDate returns the price row for a date, checking Redis first.
func (s *PriceService) GetByDate(ctx context.Context, date time.Time) (*entity.DailyPrice, error) {
	cacheKey := "price:daily:" + date.Format("2006-01-02")
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil && cached != "" {
			var price entity.DailyPrice
			if err := json.Unmarshal([]byte(cached), &price); err == nil {
				return &price, nil
			}
		}
	}

	price, err := s.repo.FindByDate(ctx, date)
	if err != nil {
		return nil, err
	}

	if s.rdb != nil {
		if data, err := json.Marshal(price); err == nil {
			s.rdb.Set(ctx, cacheKey, data, priceCacheTTL)
		}
	}
	return price, nil
}

// GetLatest returns the most recent price row.
func (s *PriceService) GetLatest(ctx context.Context) (*entity.DailyPrice, error) {
	return s.repo.FindLatest(ctx)
}

// GetForValuation returns the prices to use for a valuation on the
// given date: the exact day's row when present, otherwise the latest.
func (s *PriceService) GetForValuation(ctx context.Context, date time.Time) (*entity.DailyPrice, error) {
	price, err := s.GetByDate(ctx, date)
	if err == nil {
		return price, nil
	}
	if err != repository.ErrNotFound {
		return nil, err
	}
	price, err = s.repo.FindLatest(ctx)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, fmt.Errorf("no daily prices recorded yet")
		}
		return nil, err
	}
	return price, nil
}

// Set records or overwrites the prices for a date.
func (s *PriceService) Set(ctx context.Context, req *SetDailyPriceRequest) (*entity.DailyPrice, error) {
	day := req.Date.Truncate(24 * time.Hour)
	now := time.Now()
	price := &entity.DailyPrice{
		ID:             generateID(),
		Date:           day,
		GoldPriceUsd:   req.GoldPriceUsd,
		SilverPriceUsd: req.SilverPriceUsd,
		ExchangeRate:   req.ExchangeRate,
		Source:         entity.PriceSourceManual,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.repo.Upsert(ctx, price); err != nil {
		return nil, fmt.Errorf("save daily price: %w", err)
	}

	if s.rdb != nil {
		s.rdb.Del(ctx, "price:daily:"+day.Format("2006-01-02"))
	}

	return s.repo.FindByDate(ctx, day)
}

// List returns price rows between two dates.
func (s *PriceService) List(ctx context.Context, from, to time.Time, limit int) ([]entity.DailyPrice, error) {
	return s.repo.List(ctx, from, to, limit)
}

// Delete removes one price row.
func (s *PriceService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// RefreshFromFeed pulls today's spot prices from the external feed and
// stores them. The exchange rate is kept from the latest stored row
// because the feed quotes USD only.
func (s *PriceService) RefreshFromFeed(ctx context.Context) (*entity.DailyPrice, error) {
	if s.feed == nil {
		return nil, fmt.Errorf("price feed is not configured")
	}

	spot, err := s.feed.FetchSpotPrices(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch spot prices: %w", err)
	}

	latest, err := s.repo.FindLatest(ctx)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, fmt.Errorf("set an exchange rate manually before refreshing from the feed")
		}
		return nil, err
	}

	day := time.Now().Truncate(24 * time.Hour)
	now := time.Now()
	price := &entity.DailyPrice{
		ID:             generateID(),
		Date:           day,
		GoldPriceUsd:   spot.GoldUsdPerOz,
		SilverPriceUsd: spot.SilverUsdPerOz,
		ExchangeRate:   latest.ExchangeRate,
		Source:         entity.PriceSourceFeed,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.repo.Upsert(ctx, price); err != nil {
		return nil, fmt.Errorf("save daily price: %w", err)
	}

	if s.rdb != nil {
		s.rdb.Del(ctx, "price:daily:"+day.Format("2006-01-02"))
	}

	return s.repo.FindByDate(ctx, day)
}
