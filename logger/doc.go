// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package logger wraps a zap SugaredLogger with key/value redaction.

Values logged under keys containing password, token, secret, cookie,
authorization, or email are replaced with "[REDACTED]". Set
LOG_REDACTION_ENABLED=false to disable this in local development.

	log, err := logger.New("prod")
	if err != nil {
		return err
	}
	defer log.Sync()
	log.Info("listening", "port", 3318)
*/
package logger
