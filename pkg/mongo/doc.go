// Package mongo connects to MongoDB with the v2 driver and stores sessions in it.
//
// New retries the connection according to Config and pings the server;
// Healthcheck wraps Ping for readiness checks. SessionStore implements
// session.Store with one document per session keyed by token, upserted on
// every flush. EnsureIndexes adds a TTL index so MongoDB expires documents
// on its own; DeleteExpired covers deployments without it.
//
//	db, err := mongo.NewWithDatabase(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	store := mongo.NewSessionStore(db, cfg.Collection)
//	if err := store.EnsureIndexes(ctx); err != nil {
//	    return err
//	}
package mongo
