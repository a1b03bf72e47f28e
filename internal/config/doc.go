// Package config provides configuration structures and utilities for nanumcorp.
// It defines the endpoint and request settings used when collecting the
// public-benefit corporation registry, the search criteria of a run, and
// where snapshots are written.
package config
