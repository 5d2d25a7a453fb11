// Package model defines shared data types used across the tracker.
//
// Conventions:
//   - Inventory identifiers (assetid, classid, instanceid) are strings,
//     exactly as Steam returns them
//   - Prices are float64 in the configured market currency
//   - Event correlation IDs are uuid.UUID
package model
