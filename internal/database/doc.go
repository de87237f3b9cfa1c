// Package database stores certified equipment records in SQLite.
//
// EquipmentDB is written by the load command and read by the serve
// command. It uses modernc.org/sqlite, a CGO-free driver, so the binary
// cross-compiles without a C toolchain.
//
// A record is unique on certified name, equipment type, model, auth
// number, radio type and auth date. Re-importing a spreadsheet therefore
// adds nothing.
package database
