// Package history records the outcome of SMS dispatch attempts.
//
// A Recorder receives one Outcome per client operation, successful or
// not. The package ships an in-memory recorder for tests and small
// tools; subpackages gormstore and redisstore persist outcomes to
// PostgreSQL and Redis.
package history
