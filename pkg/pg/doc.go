// Package pg connects to PostgreSQL with pgx/v5 and stores sessions in it.
//
//   - Connect opens a *pgxpool.Pool from Config and retries until the
//     database answers a ping.
//   - Migrate applies the embedded sessions schema with goose/v3, logging
//     through the application logger.
//   - Healthcheck returns a check for readiness endpoints.
//   - SessionStore implements session.Store with an upsert per flush and a
//     single DELETE for garbage collection.
//
// Usage:
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	defer pool.Close()
//
//	if err := pg.Migrate(ctx, pool, cfg, log); err != nil {
//	    return err
//	}
//	store := pg.NewSessionStore(pool)
//
// IsNotFoundError and IsDuplicateKeyError classify pgx errors.
package pg
