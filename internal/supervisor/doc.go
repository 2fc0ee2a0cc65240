// Marquee - Item-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package supervisor provides process supervision for Marquee using suture v4.

The supervisor tree organizes long-running services into two layers:

	RootSupervisor ("marquee")
	├── APISupervisor ("api-layer")
	│   └── HTTPServerService
	└── MaintenanceSupervisor ("maintenance-layer")
	    ├── cache.LRU janitor (memory cache backend only)
	    └── StatsReporterService (if SUPERVISOR_STATS_INTERVAL > 0)

Crashed services are restarted with suture's failure counting and backoff.
A failure in the maintenance layer does not restart the HTTP server.

Supervisor events are logged through sutureslog, bridged to zerolog by
logging.NewSlogLogger.

# Usage

	tree, err := supervisor.NewSupervisorTree(
	    logging.NewSlogLogger("supervisor"),
	    supervisor.TreeConfigFromConfig(cfg.Supervisor),
	)
	tree.AddAPIService(services.NewHTTPServerService(server, addr, timeout, logger))
	tree.AddMaintenanceService(lru)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	err = tree.Serve(ctx)
*/
package supervisor
