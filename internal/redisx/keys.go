package redisx

import (
	"fmt"
	"time"
)

const (
	// Session local storage: ls:{session} -> hash of key -> JSON blob
	KeyLocal = "ls:%s"

	// Dedup event processing: dedup:{service}:{event_id}
	KeyDedup = "dedup:%s:%s"
)

var TTLDedup = 48 * time.Hour

func LocalKey(session string) string { return fmt.Sprintf(KeyLocal, session) }

func DedupKey(service, id string) string { return fmt.Sprintf(KeyDedup, service, id) }
