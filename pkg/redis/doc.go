// Package redis connects to Redis with go-redis and retries until the server
// answers a PING.
//
//	client, err := redis.Connect(ctx, cfg.Redis)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
// Config decodes from REDIS_URL and friends via pkg/config. Healthcheck
// adapts a client into an httpserver readiness check.
package redis
