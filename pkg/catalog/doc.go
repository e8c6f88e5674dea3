// Package catalog serves named machines out of a ports.MachineLoader or
// ports.MachineStore, validating every document as it is loaded or stored.
package catalog
