// Package fleet holds the pure computations over fleet collections:
// search filters, statistics and license/maintenance alerts.
package fleet
