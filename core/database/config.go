package database

import (
	coreconfig "dropmail/core/config"
)

// Config holds database connection settings. It aliases the struct defined in
// core/config so the settings can be embedded in the app config without a
// config -> database import edge.
type Config = coreconfig.DatabaseConfig
