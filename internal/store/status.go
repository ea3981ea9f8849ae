package store

import (
	"fmt"
	"io"

	"github.com/adsabs/adsboost/schema"
)

// PrintStoreStatus writes store status information.
func PrintStoreStatus(w io.Writer, status schema.StoreStatus) {
	_, _ = fmt.Fprintf(w, "Store Backend: %s\n", status.Backend)
	_, _ = fmt.Fprintf(w, "Connected: %t\n", status.Connected)
	if !status.Connected {
		return
	}
	_, _ = fmt.Fprintf(w, "Total Records: %d\n", status.TotalRecords)
	if status.LastModified != nil {
		_, _ = fmt.Fprintf(w, "Last Modified: %s\n", status.LastModified.Format("2006-01-02 15:04:05"))
	}
	if status.OldestRecord != nil {
		_, _ = fmt.Fprintf(w, "Oldest Record: %s\n", status.OldestRecord.Format("2006-01-02 15:04:05"))
	}
	_, _ = fmt.Fprintf(w, "Table Size: %d bytes\n", status.TableSize)
}
