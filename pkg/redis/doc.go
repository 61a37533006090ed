// Package redis connects to Redis and stores sessions in it.
//
// Connect retries the connection according to Config. SessionStore implements
// session.Store with JSON values and per-key TTLs, and its Healthcheck
// pings the server and writes a short-lived key under the session prefix:
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	store := redis.NewSessionStoreFromConfig(client, cfg)
//	ready := httpserver.HealthCheckHandler(log, store.Healthcheck())
//
// Errors from Connect and Healthcheck wrap the go-redis cause with errors.Join.
package redis
