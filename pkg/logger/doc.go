// Package logger builds *slog.Logger values with a consistent setup across
// the service: JSON or text encoding, an environment preset, static
// attributes, and context extractors that copy request-scoped values (request
// id, environment) onto every record.
//
// # Usage
//
//	log := logger.New(
//	    logger.WithEnvironment(cfg.Env, "fieldrulesd"),
//	    logger.WithContextExtractors(
//	        requestid.LoggerExtractor(),
//	    ),
//	)
//	log.WarnContext(ctx, "profile rejected",
//	    logger.CatalogVersion(cat.Version()),
//	    logger.Rejected([2]string{"username", "too_short"}),
//	)
//
// Attribute helpers in attr.go keep key names stable: "error", "component",
// "request_id", "field", "reason", "catalog_version" and "rejected". Helpers
// given a zero value return an empty slog.Attr, which handlers omit.
package logger
