package config

// Example usage of the configuration system:
//
// 1. Load configuration with all sources:
//
//     cfg, err := config.Load("", nil)
//     if err != nil {
//         log.Fatal(err)
//     }
//
// 2. Load with custom config file:
//
//     cfg, err := config.Load("/path/to/config.yaml", nil)
//     if err != nil {
//         log.Fatal(err)
//     }
//
// 3. Load with command line flags:
//
//     flags := map[string]interface{}{
//         "output": "posts.json",
//         "concurrent": 3,
//         "log-level": "debug",
//     }
//     cfg, err := config.Load("", flags)
//     if err != nil {
//         log.Fatal(err)
//     }
//
// 4. Programmatic configuration:
//
//     cfg := config.DefaultConfig()
//     cfg.Scrape.ConcurrentFetches = 3
//     cfg.Scrape.PostStallLimit = 8
//
//     if err := cfg.Validate(); err != nil {
//         log.Fatal(err)
//     }
//
// 5. Save configuration to file:
//
//     if err := cfg.Save(".redscraper.yaml"); err != nil {
//         log.Fatal(err)
//     }
//
// 6. Environment variables:
//
//     export REDSCRAPER_REDDIT_BASE_URL="https://reddit.com"
//     export REDSCRAPER_SCRAPE_CONCURRENT_FETCHES="5"
//     export REDSCRAPER_SCRAPE_SCROLL_DELAY="2s"
//     export REDSCRAPER_OUTPUT="posts.json"
//     export REDSCRAPER_LOG_LEVEL="debug"
//
// 7. Using configuration in your application:
//
//     log, err := logger.New(&cfg.Logging)
//     if err != nil {
//         return err
//     }
//
//     engine, err := scraper.New(cfg, log)
//     if err != nil {
//         return err
//     }
//     defer engine.Close()
