// Package jobs provides scheduled background tasks for the freight system.
//
// Jobs use github.com/robfig/cron/v3 with a seconds field.
//
// # Available Jobs
//
// ExchangeRateRefreshJob refreshes the cached KRW rate of every known
// currency, by default daily at 09:00 ("0 0 9 * * *"). Each run is bounded
// by a timeout; a failed run is logged and the cache keeps its previous
// rates, falling back to the default table once they expire.
//
// # Usage
//
//	refresh := jobs.NewExchangeRateRefreshJob(handler, cfg.RatesRefreshCron, time.Minute, logger)
//	jobManager := jobs.NewJobManager(refresh)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
package jobs
