// Package export turns fetched trades into the TradeZella Generic Template
// CSV and orchestrates a full export run: checkpoint load, fetch, normalize,
// write, archive, checkpoint save.
package export
