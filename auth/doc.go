// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth derives and validates the HMAC admin key that gates
destructive operations (event and sweeper deletion).

The key is derived from a configured salt and a scope string, so it is
verifiable without being stored anywhere:

	key := auth.GenerateAdminKey(auth.AdminScope, cfg.AdminKeySalt)
	err := auth.ValidateAdminKey(auth.AdminScope, presented, cfg.AdminKeySalt)

Sweeper identity is intentionally unauthenticated: sweepers are untrusted
reporters and the ingestion model tolerates bad data by design.
*/
package auth
