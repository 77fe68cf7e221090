package appcore

import (
	"io"

	"mirscan-core/scan"
	"mirscan/internal/writers"
)

// FormatWriterFactory starts the writer registered for Format.
type FormatWriterFactory struct {
	Format string
}

func NewFormatWriterFactory(format string) FormatWriterFactory {
	return FormatWriterFactory{Format: format}
}

func (w FormatWriterFactory) Start(out io.Writer, bufSize int) (chan<- scan.Report, <-chan error) {
	return writers.Start(out, w.Format, bufSize)
}
