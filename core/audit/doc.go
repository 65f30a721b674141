// Package audit persists merge reports.
//
// Each merged group becomes a row in merge_runs carrying its summary counts,
// and every audit decision a row in merge_records linked by run id. The store
// works on any gorm connection; the service uses SQLite by default and MySQL
// when configured.
package audit
