// Package fileutil provides filesystem enumeration and filename token
// extraction for financial document trees.
//
// Documents are PDF files whose base names begin with a YYYY-MM-DD date
// token. The scanner tolerates unreadable directories: errors are collected
// and the walk continues, so one bad directory never aborts a search.
package fileutil
