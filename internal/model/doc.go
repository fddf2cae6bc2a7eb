// Package model defines the trade record shared across the exporter.
package model
