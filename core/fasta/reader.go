// core/fasta/reader.go
package fasta

// Record is one parsed FASTA sequence.
type Record struct {
	ID   string
	Desc string // header text after the ID
	Seq  []byte
}
