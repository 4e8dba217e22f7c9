// Package model defines core types used throughout stargo.
//
// # Identity Types
//
//   - SystemID: Dense, store-local system identifier (uint32)
//   - Category: Star classification (Fuel, Neutron)
//
// # Data Types
//
//   - System: One immutable dataset point (name, position, category, range)
//   - Hop: A single traversal between two route systems
//   - Route: An alternating-category system sequence with hop metadata
//   - Stop: A formatted route waypoint
package model
