// Package commands defines the poke-search CLI.
//
// Commands
//
//   - search   Look up one Pokemon and print it
//   - prompt   Read names from stdin, newest search wins
//   - serve    Serve lookups over HTTP
//   - archive  Store a batch of Pokemon in S3 as Parquet and CSV
//
// The root command builds the PokeAPI client from the environment
// configuration and the global flags before any subcommand runs.
package commands
