// Package requestid propagates a per-request identifier through HTTP headers,
// request contexts and logs.
//
// Middleware accepts a client-supplied X-Request-ID only if it is 1 to 128
// characters of [A-Za-z0-9_-]; otherwise it generates a UUID. The id is
// echoed on the response so clients can quote it in bug reports.
//
//	r := chi.NewRouter()
//	r.Use(requestid.Middleware)
//
//	log := logger.New(logger.WithContextExtractors(requestid.LoggerExtractor()))
package requestid
