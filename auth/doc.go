// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides password hashing and privacy helpers.

# Passwords

Passwords are hashed with bcrypt at the default cost:

	hash, err := auth.HashPassword(password)
	if errors.Is(err, auth.ErrPasswordTooLong) {
		// more than 72 bytes; bcrypt would silently truncate
	}
	ok := auth.CheckPassword(password, hash)

Passwords longer than 72 bytes are rejected instead of truncated.

# IP Hashing

Client addresses are never logged in the clear:

	hash := auth.HashIP(ipAddress, salt)

Returns first 8 bytes (16 hex chars) of HMAC-SHA256.
*/
package auth
