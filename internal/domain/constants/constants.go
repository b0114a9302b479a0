// Package constants holds configuration vocabulary shared across layers.
package constants

// Environment names.
const (
	EnvDevelop    = "develop"
	EnvProduction = "production"
)

// Event publisher providers.
const (
	PubSubProviderLocal  = "local"
	PubSubProviderGoogle = "google"
)

// Storage prefixes of uploaded files.
const (
	StoragePrefixProfiles = "profiles"
	StoragePrefixOffers   = "offers"
)
