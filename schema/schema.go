// Package schema defines the shared data model for the heat-trap figure
// pipeline: logger frames, experiment periods, aligned series, spectra and
// run-archive records.
package schema
