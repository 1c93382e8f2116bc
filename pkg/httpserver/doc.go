// Package httpserver runs an http.Handler with context-driven graceful
// shutdown.
//
//	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
//	defer stop()
//
//	srv := httpserver.New(cfg.HTTP, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, router); err != nil {
//	    log.Error("server exited", logger.Error(err))
//	}
//
// Run returns nil after a clean shutdown; start failures wrap ErrStart and
// drain timeouts wrap ErrShutdown. HealthHandler serves liveness and
// readiness checks.
package httpserver
