// Package main provides the entry point for the nanumcorp CLI.
//
// nanumcorp collects the public-benefit corporation registry published on
// the nanumkorea portal and saves it as JSON and CSV (optionally XLSX).
//
// Usage:
//
//	nanumcorp collect
//	nanumcorp check
//
// See --help for all available options.
package main

func main() {
	Execute()
}
