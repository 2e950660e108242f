// Package commands defines the fleetctl CLI, an administration console for
// the tourfleet API.
//
// Commands
//
//   - vehicles, drivers, routes, assignments   List records, optionally filtered with --search
//   - get <entity> <id>                        Show one record as stored on the server
//   - stats                                    Print the dashboard summary
//   - alerts                                   List license and maintenance alerts
//
// vehicles and drivers take --available, routes --active and assignments
// --today to list the subset selected by the server. stats and alerts take
// --server to print the server's aggregates instead of computing them from
// the downloaded collections.
//
// Editing commands
//
//   - delete <entity> <id>                     Delete a record after confirmation
//   - set-status <entity> <id> <status>        Change a record's status
//   - login                                    Exchange credentials for a token
//
// The root command builds the REST client, the write-through store and the
// dashboard before any subcommand runs. --api and --token default to
// API_BASE_URL and FLEET_TOKEN.
package commands
