// Package rates resolves KRW exchange rates for the freight core.
//
// Provider keeps one cached rate per currency. A cached rate is served until
// the configured TTL has passed since it was stored; after that the remote
// API is asked, with every call bounded by a timeout. When the API cannot
// answer, the static default table is served and cached for a short retry
// window, so a broken API is neither hammered nor trusted over a day.
//
// Lifecycle:
//
//	provider, err := rates.NewProvider(source, history, rates.DefaultOptions(), logger)
//	provider.Init()                  // seed the fallback, the first lookup still fetches
//	err = provider.Refresh(ctx)      // fetch every known currency, e.g. from a cron job
//	rate := provider.GetRate(ctx, kernel.THB, nil)
//	provider.Shutdown()
//
// Point-in-time lookups (asOf != nil) bypass the cache: they read the rate
// history first, then ask the API for that day, then fall back to the table.
package rates
