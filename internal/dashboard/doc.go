// Package dashboard is the view layer of the fleet back office. It reads
// from a store, narrows the collections with the fleet filters, gates
// deletes behind a confirmation and renders plain-text tables.
package dashboard
