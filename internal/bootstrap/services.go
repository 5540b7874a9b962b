package bootstrap

import (
	"github.com/osse101/StudyGarden_Go/internal/accrual"
	"github.com/osse101/StudyGarden_Go/internal/catalog"
	"github.com/osse101/StudyGarden_Go/internal/clock"
	"github.com/osse101/StudyGarden_Go/internal/config"
	"github.com/osse101/StudyGarden_Go/internal/economy"
	"github.com/osse101/StudyGarden_Go/internal/event"
	"github.com/osse101/StudyGarden_Go/internal/eventlog"
	"github.com/osse101/StudyGarden_Go/internal/garden"
	"github.com/osse101/StudyGarden_Go/internal/handler"
	"github.com/osse101/StudyGarden_Go/internal/inventory"
	"github.com/osse101/StudyGarden_Go/internal/leaderboard"
	"github.com/osse101/StudyGarden_Go/internal/lootbox"
	"github.com/osse101/StudyGarden_Go/internal/server"
	"github.com/osse101/StudyGarden_Go/internal/timer"
	"github.com/osse101/StudyGarden_Go/internal/wallet"
)

// BuildServices wires every domain service over st. Services publish
// through bus, which in production is the resilient publisher.
func BuildServices(cfg *config.Config, st *Storage, clk clock.Clock, bus event.Bus) server.Services {
	catalogSvc := catalog.NewService(st.Items, cfg.CatalogCacheSize, cfg.CatalogCacheTTL)
	walletSvc := wallet.NewService(st.Wallets, clk)
	inventorySvc := inventory.NewService(st.Inventories, catalogSvc)

	return server.Services{
		Timer: timer.NewService(st.Timers, st.Subjects, clk, cfg.TimerGrace, bus),
		Accrual: accrual.NewService(st.Timers, walletSvc, accrual.Config{
			CoinsPerMinute:   cfg.CoinsPerMinute,
			MinCreditMinutes: cfg.MinCreditMinutes,
		}, bus),
		Wallet:    walletSvc,
		Inventory: inventorySvc,
		Economy:   economy.NewService(st.Inventories, inventorySvc, walletSvc, catalogSvc, bus),
		Lootbox:   lootbox.NewService(st.Inventories, inventorySvc, catalogSvc, nil, bus),
		Garden: garden.NewService(st.Gardens, inventorySvc, catalogSvc, walletSvc, clk, garden.Config{
			Size:         cfg.GardenSize,
			RewardSource: garden.RewardSource(cfg.HarvestRewardSource),
		}, bus),
		Leaderboard: leaderboard.NewService(st.Leaderboard, clk),
		EventLog:    eventlog.NewService(st.EventLog),
	}
}

// ServerConfig maps application config onto transport settings
func ServerConfig(cfg *config.Config) server.Config {
	return server.Config{
		Port:           cfg.Port,
		APIKey:         cfg.APIKey,
		TrustedProxies: cfg.TrustedProxies,
		TimerBounds: handler.DurationBounds{
			MinSec: cfg.TimerMinDurationSec,
			MaxSec: cfg.TimerMaxDurationSec,
		},
		RateLimits: server.DefaultRateLimits(),
	}
}
