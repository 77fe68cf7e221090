// internal/writers/jsonl.go
package writers

import (
	"encoding/json"
	"io"

	"mirscan-core/scan"
	"mirscan/internal/jsonlutil"
	"mirscan/internal/output"
)

// StartJSONLWriter streams each scan.Report as one JSON line (v1).
func StartJSONLWriter(out io.Writer, bufSize int) (chan<- scan.Report, <-chan error) {
	return jsonlutil.Start[scan.Report](out, bufSize,
		func(enc *json.Encoder, r scan.Report) error {
			return enc.Encode(output.ToAPIReport(r))
		},
		IsBrokenPipe,
	)
}
