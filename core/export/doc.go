// Package export writes reconciliation results as styled Excel workbooks.
package export
